package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readLine reads one line from the input. A final line without a newline
// is returned; io.EOF is only reported when nothing was read.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prints label and returns the trimmed answer.
func (a *App) ask(label string) (string, error) {
	a.printf("%s: ", label)
	line, err := a.readLine()
	return strings.TrimSpace(line), err
}

// askPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line otherwise.
func (a *App) askPassword() (string, error) {
	a.printf("Password: ")
	if a.inFd >= 0 && isTerminal(a.inFd) {
		pw, err := readPassword(a.inFd)
		a.println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}
	return a.readLine()
}

// Confirm asks a y/N question. Anything but y or yes declines.
func (a *App) Confirm(prompt string) bool {
	a.printf("%s [y/N]: ", prompt)
	line, err := a.readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
