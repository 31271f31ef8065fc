package output

import (
	"os"

	"golang.org/x/term"
)

// ttyOverride forces IsTTY's answer in tests. Nil means detect.
var ttyOverride *bool

// IsTTY reports whether both stdin and stdout are attached to a terminal.
// Interactive prompts and spinners are only used when this is true.
func IsTTY() bool {
	if ttyOverride != nil {
		return *ttyOverride
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// SetTTY forces IsTTY to return v and returns a function restoring detection.
func SetTTY(v bool) (restore func()) {
	prev := ttyOverride
	ttyOverride = &v
	return func() { ttyOverride = prev }
}
