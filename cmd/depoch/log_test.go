// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/decred/slog"
)

func TestParseAndSetDebugLevels(t *testing.T) {
	defer setLogLevels(defaultLogLevel)

	if err := parseAndSetDebugLevels("debug"); err != nil {
		t.Fatal(err)
	}
	for id, logger := range subsystemLoggers {
		if logger.Level() != slog.LevelDebug {
			t.Fatalf("%v: got %v want %v", id, logger.Level(),
				slog.LevelDebug)
		}
	}

	if err := parseAndSetDebugLevels("EPCH=trace,FLTR=warn"); err != nil {
		t.Fatal(err)
	}
	if epchLog.Level() != slog.LevelTrace ||
		fltrLog.Level() != slog.LevelWarn ||
		srceLog.Level() != slog.LevelDebug {
		t.Fatalf("unexpected levels %v %v %v", epchLog.Level(),
			fltrLog.Level(), srceLog.Level())
	}

	// Unknown subsystems are only rejected when named in pairs.
	setLogLevel("NOPE", "trace")
	if len(subsystemLoggers) != 4 {
		t.Fatalf("subsystem created: %v", supportedSubsystems())
	}
	for _, bad := range []string{"loud", "NOPE=info", "EPCH", "EPCH=loud"} {
		if err := parseAndSetDebugLevels(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
