// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logger provides structured logging on top of zap.
// A single global logger with an atomic level is shared by the whole CLI;
// helpers accept a context so call sites stay uniform.
package logger
