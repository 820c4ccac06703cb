// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package notify carries the "initial loading finished" signal a session emits
// once its bootstrap has settled.
package notify

// Sink receives the loading-finished signal. Implementations must be safe to
// call from any goroutine.
type Sink interface {
	LoadingFinished()
}

// SinkFunc adapts a function to Sink.
type SinkFunc func()

// LoadingFinished calls f.
func (f SinkFunc) LoadingFinished() { f() }

// Nop ignores the signal.
type Nop struct{}

// LoadingFinished does nothing.
func (Nop) LoadingFinished() {}
