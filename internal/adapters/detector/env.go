// Package detector picks the log output mode from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how diagnostics are rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty renders colored lines for an interactive terminal.
	ModePretty
	// ModeCI renders with the basic ANSI palette for build consoles.
	ModeCI
	// ModeJSON renders one JSON object per log record.
	ModeJSON
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeCI:
		return "ci"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode.
// It checks whether stderr is a TTY and whether CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	if !isTTY || IsCI() {
		return ModeCI
	}
	return ModePretty
}

// IsCI reports whether a CI environment variable is set.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "ci", "plain", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "ci", "plain":
		return ModeCI
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
