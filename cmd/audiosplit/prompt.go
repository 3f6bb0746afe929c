package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

func promptLine(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptBlock reads lines until an empty line or EOF.
func promptBlock(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintln(out, label)
	var lines []string
	for {
		line, err := in.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) != "" {
			lines = append(lines, trimmed)
		} else if err == nil {
			break
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}

// confirm accepts only "y" or "yes"; anything else, including EOF, declines.
func confirm(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	answer, err := promptLine(in, out, question+" [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
