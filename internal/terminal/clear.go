// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal provides small terminal helpers for interactive prompts.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadSecret prints prompt to w and reads a line from stdin without echo.
// When stdin is not a terminal the line is read as plain text.
func ReadSecret(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ClearPreviousLines removes a prompt of textLength characters from the terminal.
// Wrapping is computed from the current width (80 when unknown), plus the
// empty line left behind by Enter.
func ClearPreviousLines(w io.Writer, textLength int) {
	fmt.Fprint(w, clearSequence(textLength, width()))
}

func width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func clearSequence(textLength, termWidth int) string {
	totalLines := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if totalLines < 1 {
		totalLines = 1
	}
	linesToClear := totalLines + 1

	var sb strings.Builder
	for i := 0; i < linesToClear; i++ {
		sb.WriteString("\r\x1b[2K")
		if i < linesToClear-1 {
			sb.WriteString("\x1b[1A")
		}
	}
	return sb.String()
}
