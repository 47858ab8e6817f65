// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ReadFromPath reads a secret from a file, or from stdin when path is
// "-". Surrounding whitespace is trimmed. An empty result is an error.
func ReadFromPath(path string) (*Buffer, error) {
	var data []byte

	if path == "-" {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("secret: reading stdin: %w", err)
			}
			return nil, fmt.Errorf("secret: stdin is empty")
		}
		data = scanner.Bytes()
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("secret: %w", err)
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret: %s is empty", describeSource(path))
	}

	buffer, err := NewFromBytes(trimmed)
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

// Prompt writes label to out and reads one line from the terminal on
// input with echo disabled. Fails when input is not a terminal.
func Prompt(input *os.File, out io.Writer, label string) (*Buffer, error) {
	fileDescriptor := int(input.Fd())
	if !term.IsTerminal(fileDescriptor) {
		return nil, fmt.Errorf("secret: no terminal available for interactive prompt")
	}

	fmt.Fprint(out, label)
	data, err := term.ReadPassword(fileDescriptor)
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("secret: reading from terminal: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("secret: empty input")
	}

	buffer, err := NewFromBytes(data)
	if err != nil {
		Zero(data)
		return nil, err
	}
	return buffer, nil
}

func describeSource(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
