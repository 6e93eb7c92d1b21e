// Package shared provides common utilities shared between mode controllers.
package shared

import (
	"os/exec"
	"runtime"
)

// Clipboard defines the interface for clipboard operations. Copy sends the
// TSV payload to the system clipboard; Paste reads it back for terminals
// where bracketed paste is unavailable.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// SystemClipboard implements Clipboard using the system clipboard.
type SystemClipboard struct{}

// MockClipboard is an in-memory clipboard for testing.
type MockClipboard struct {
	Contents string
}

// Copy stores the text in memory.
func (c *MockClipboard) Copy(text string) error {
	c.Contents = text
	return nil
}

// Paste returns the stored text.
func (c *MockClipboard) Paste() (string, error) {
	return c.Contents, nil
}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard")
	}

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	if _, err := pipe.Write([]byte(text)); err != nil {
		return err
	}

	if err := pipe.Close(); err != nil {
		return err
	}

	return cmd.Wait()
}

// Paste reads text from the system clipboard.
func (SystemClipboard) Paste() (string, error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbpaste")
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard", "-o")
	}

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
