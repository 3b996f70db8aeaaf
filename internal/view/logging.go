// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/view/logging.go
// Summary: Silent-by-default debug logger for clamp and change tracing.
// Usage: viewer.SetVerboseLogging routes it next to the standard logger.

package view

import (
	"io"
	"log"
)

var debugLog = log.New(io.Discard, "view: ", log.LstdFlags|log.Lmicroseconds)

// SetDebugOutput routes clamp diagnostics to w. Pass nil to silence them.
func SetDebugOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	debugLog.SetOutput(w)
}
