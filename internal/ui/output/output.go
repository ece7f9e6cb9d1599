// Package output builds termenv outputs with the color rules shared by the
// logger and the command reports.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile picks the color profile. NO_COLOR always wins. In CI mode plain
// ANSI is used so logs stay readable in build consoles.
func Profile(ci bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if ci {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates an output for w, defaulting to stderr.
func New(w io.Writer) *termenv.Output {
	return NewWithProfile(w, Profile(false))
}

// NewWithProfile creates an output for w with a fixed profile.
func NewWithProfile(w io.Writer, p termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(p), termenv.WithTTY(true))
}
