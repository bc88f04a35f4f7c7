// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package source

import "github.com/decred/slog"

// log is a logger that is initialized with no output filters.  This
// means the package will not perform any logging by default until the caller
// requests it.
var log = slog.Disabled

// UseLogger sets the package-wide logger.  Any calls to this function must be
// made before a Reader is opened.
func UseLogger(logger slog.Logger) {
	log = logger
}
