package cli

import (
	"fmt"
	"io"
	"strings"
)

const (
	ModeInteractive = "interactive"
	ModeQuote       = "quote"
)

// isKnownMode checks if the provided mode name is known.
func isKnownMode(s string) (string, bool) {
	switch s {
	case ModeInteractive, "i":
		return ModeInteractive, true
	case ModeQuote, "q":
		return ModeQuote, true
	default:
		return "", false
	}
}

// ParseMode supports:
//
//	--mode=<value>
//	<value> (subcommand shorthand), e.g., `quote --vehicle=bike --distance=3`
//
// With no mode given it falls back to interactive.
func ParseMode(args []string) (string, []string, error) {
	var mode string
	var out []string

	for i := range args {
		arg := args[i]
		if after, ok := strings.CutPrefix(arg, "--mode="); ok {
			mode = after
			continue
		}

		if mode == "" {
			if m, ok := isKnownMode(arg); ok {
				mode = m
				continue
			}
		}
		out = append(out, arg)
	}

	if mode == "" {
		return ModeInteractive, out, nil
	}

	m, ok := isKnownMode(mode)
	if !ok {
		return "", out, fmt.Errorf("unknown mode %q", mode)
	}
	return m, out, nil
}

// PrintUsage prints the usage information with examples.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage:
  farecalc [--mode=<mode>] [flags]

Modes:
  interactive   Menu-driven fare calculator on stdin/stdout (default)
  quote         Price a single trip from flags and exit

Examples:
  farecalc
  farecalc quote --vehicle=economy --distance=10 --duration=15 --peak --promo=GRAB10
  farecalc --mode=quote --vehicle=bike --distance=3 --json
  farecalc --catalog=./rates.yaml --log-level=info`)
}
