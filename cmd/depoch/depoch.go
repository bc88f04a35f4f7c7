// Copyright (c) 2017-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// depoch converts unix epoch timestamps found in lines of text to a human
// readable format.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/decred/depoch/epoch"
	"github.com/decred/depoch/filter"
	"github.com/decred/depoch/source"
	"github.com/decred/depoch/util"

	_ "time/tzdata"
)

// convert prints the conversion of every argument.  Integers are rendered
// with the output template, anything else is parsed with it and printed as
// epoch seconds.
func convert(t *epoch.Transformer, args []string, stdout io.Writer) error {
	for _, a := range args {
		// Try number first
		if sec, err := strconv.ParseInt(a, 10, 64); err == nil {
			s, err := t.Convert(sec)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, s)
			continue
		}

		// Try formatted date second
		sec, err := t.Unix(a)
		if err != nil {
			return fmt.Errorf("unrecognized timestamp: %w", err)
		}
		fmt.Fprintln(stdout, sec)
	}
	return nil
}

// run executes depoch with the passed command line arguments.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, remainingArgs, err := loadConfig(args, stdout)
	if err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
			logRotator = nil
		}
	}()

	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "%s version %s\n", appName, version())
		return nil
	}

	ec, err := cfg.transformerConfig()
	if err != nil {
		return err
	}
	t, err := epoch.New(ec)
	if err != nil {
		return err
	}

	if cfg.Convert {
		return convert(t, remainingArgs, stdout)
	}

	inputs, err := util.ExpandInputs(remainingArgs)
	if err != nil {
		return err
	}
	if len(inputs) > 0 {
		log.Debugf("Input files: %v", inputs)
	}

	src := source.Open(inputs, stdin, nil)
	defer src.Close()

	f := filter.New(t, stdout, filter.Options{
		SkipInvalid: cfg.SkipInvalid,
	})
	err = f.Run(context.Background(), src)
	if err != nil {
		return err
	}

	stats := f.Stats()
	if stats.Skipped > 0 {
		log.Warnf("Skipped %v of %v lines", stats.Skipped, stats.Lines)
	}

	return nil
}

func _main() error {
	return run(os.Args[1:], os.Stdin, os.Stdout)
}

func main() {
	err := _main()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
