// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the langflow-session CLI.
// It manages the local authentication session against a Langflow identity service.
package main

import (
	"github.com/zkfarmoor/langflow/cmd"
)

func main() {
	cmd.Execute()
}
