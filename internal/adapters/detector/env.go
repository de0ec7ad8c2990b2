// Package detector picks the log format from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogMode is the format used for diagnostics on stderr.
type LogMode int

const (
	// ModePretty prints colored, human-readable lines.
	ModePretty LogMode = iota
	// ModeJSON prints one JSON object per record.
	ModeJSON
)

// String returns the setting name of the mode.
func (m LogMode) String() string {
	if m == ModeJSON {
		return "json"
	}
	return "pretty"
}

// DetectEnvironment returns ModeJSON when stderr is not a terminal or a CI
// environment variable is set, and ModePretty otherwise.
func DetectEnvironment() LogMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	return detect(isTTY, os.Getenv("CI"))
}

func detect(isTTY bool, ci string) LogMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies the HANDOFF_LOG_FORMAT setting to the detected mode.
// setting is one of "auto", "pretty", "json" or empty.
func ResolveMode(autoDetected LogMode, setting string) LogMode {
	switch setting {
	case "pretty":
		return ModePretty
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
