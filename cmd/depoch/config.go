// Copyright (c) 2015-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/decred/dcrd/dcrutil/v2"
	"github.com/decred/depoch/epoch"
	flags "github.com/jessevdk/go-flags"
)

const (
	appName = "depoch"

	defaultConfigFilename = "depoch.conf"
	defaultLogFilename    = "depoch.log"
	defaultLogLevel       = "info"
)

var (
	defaultHomeDir    = dcrutil.AppDataDir(appName, false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
)

// errHelp is returned by loadConfig once the usage message was written.
var errHelp = errors.New("help requested")

// config defines the configuration options for depoch.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir      string `long:"logdir" description:"Directory to log output in addition to standard error"`
	Regex       string `short:"r" long:"regex" description:"Regex to use to extract the timestamp from input; exactly one capturing group"`
	Format      string `short:"f" long:"format" description:"Output date string in strftime(3) format"`
	Local       bool   `long:"local" description:"Treat timestamp as in local timezone (default is UTC)"`
	Timezone    string `long:"timezone" description:"IANA timezone used instead of the system one; implies --local"`
	SkipInvalid bool   `long:"skipinvalid" description:"Warn about and pass through lines whose timestamp can not be converted instead of failing"`
	Convert     bool   `long:"convert" description:"Convert the arguments, epoch seconds or formatted dates, instead of reading files"`
}

// newConfigParser returns a new command line parser for the passed config.
func newConfigParser(cfg *config, options flags.Options) *flags.Parser {
	parser := flags.NewParser(cfg, options)
	parser.Name = appName
	parser.Usage = "[OPTIONS] [input...]"
	return parser
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in depoch functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.  The remaining arguments are the inputs.
func loadConfig(args []string, stdout io.Writer) (*config, []string, error) {
	// Default config.
	cfg := config{
		ConfigFile: defaultConfigFile,
		DebugLevel: defaultLogLevel,
		Regex:      epoch.DefaultPattern,
		Format:     epoch.DefaultFormat,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.  Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := cfg
	preParser := newConfigParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return nil, nil, errHelp
		}
	}

	// Show the version and exit if the version flag was specified.
	if preCfg.ShowVersion {
		return &preCfg, nil, nil
	}

	// Load additional config from file.  A missing default config file is
	// not an error.
	parser := newConfigParser(&cfg, flags.PassDoubleDash)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) ||
			preCfg.ConfigFile != defaultConfigFile {
			return nil, nil, fmt.Errorf("error parsing config "+
				"file: %w", err)
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Fprintln(stdout, "Supported subsystems",
			supportedSubsystems())
		return nil, nil, errHelp
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, err
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	if cfg.LogDir != "" {
		cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
		err := initLogRotator(filepath.Join(cfg.LogDir,
			defaultLogFilename))
		if err != nil {
			return nil, nil, err
		}
	}

	if cfg.Timezone != "" {
		cfg.Local = true
	}

	return &cfg, remainingArgs, nil
}

// transformerConfig returns the epoch configuration described by cfg.
func (cfg *config) transformerConfig() (epoch.Config, error) {
	ec := epoch.Config{
		Pattern: cfg.Regex,
		Format:  cfg.Format,
		Mode:    epoch.UTC,
	}
	if !cfg.Local {
		return ec, nil
	}

	ec.Mode = epoch.Local
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return ec, fmt.Errorf("invalid timezone %q: %w",
				cfg.Timezone, err)
		}
		ec.Location = loc
	}
	return ec, nil
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if len(path) > 0 && path[0] == '~' {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
