// Package ui provides a secure fzf launcher abstraction.
// All items are piped to fzf via stdin as plain text — no shell-interpreted
// preview strings or commands with remote data.
package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user aborts a selection.
var ErrCancelled = errors.New("selection cancelled")

// Select presents items to the user via fzf and returns the selected item's
// index. Items are passed as plain text via stdin; no --preview or
// shell-evaluated strings.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return -1, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	// Numbered items make index extraction reliable regardless of display text
	var input strings.Builder
	for i, item := range items {
		fmt.Fprintf(&input, "%d\t%s\n", i, item)
	}

	cmd := exec.Command(fzfPath,
		"--prompt", prompt+" > ",
		"--height", "40%",
		"--reverse",
		"--with-nth", "2..",
		"--delimiter", "\t",
		"--no-multi",
		"--cycle",
	)

	cmd.Stdin = strings.NewReader(input.String())
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 130 {
			return -1, ErrCancelled
		}
		return -1, fmt.Errorf("fzf failed: %w", err)
	}

	selected := strings.TrimSpace(stdout.String())
	if selected == "" {
		return -1, ErrCancelled
	}

	parts := strings.SplitN(selected, "\t", 2)
	var idx int
	if _, err := fmt.Sscanf(parts[0], "%d", &idx); err != nil {
		return -1, fmt.Errorf("parsing selection index: %w", err)
	}

	if idx < 0 || idx >= len(items) {
		return -1, fmt.Errorf("selection index %d out of range", idx)
	}

	return idx, nil
}

// Confirm asks the user a yes/no question via fzf.
func Confirm(prompt string) (bool, error) {
	idx, err := Select(prompt, []string{"Yes", "No"})
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}
