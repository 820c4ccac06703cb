// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package notify

import (
	"sync"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// Spinner shows a terminal spinner until LoadingFinished is called.
// The cursor is hidden while it spins.
type Spinner struct {
	mu      sync.Mutex
	printer *pterm.SpinnerPrinter
	done    bool
}

// StartSpinner starts a spinner with text.
func StartSpinner(text string) *Spinner {
	cursor.Hide()

	printer, err := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		WithShowTimer(false).
		Start(text)
	if err != nil {
		cursor.Show()
		return &Spinner{done: true}
	}

	return &Spinner{printer: printer}
}

// LoadingFinished stops the spinner. Extra calls are ignored.
func (s *Spinner) LoadingFinished() {
	s.Stop()
}

// Stop removes the spinner and restores the cursor. It is idempotent so it
// can also be deferred for the case where no signal ever arrives.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true

	if s.printer != nil {
		_ = s.printer.Stop()
	}
	cursor.Show()
}
