// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/logging.go
// Summary: Debug logging switch for the viewer and the view model.
// Usage: cmd/memview enables it with -verbose once -log has set the standard logger's output.

package viewer

import (
	"io"
	"log"

	"github.com/framegrace/memview/internal/view"
)

var debugLog = log.New(io.Discard, "viewer: ", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging toggles debug output of the viewer and the view model.
// When enabled, output goes wherever the standard logger currently writes.
func SetVerboseLogging(enable bool) {
	w := io.Discard
	if enable {
		w = log.Writer()
	}
	debugLog.SetOutput(w)
	view.SetDebugOutput(w)
}
