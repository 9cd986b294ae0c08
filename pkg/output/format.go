package output

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/raykroeker/vimfiles/pkg/errors"
)

// Format selects how command results are written.
type Format int

const (
	// FormatAuto picks terminal or text depending on the output stream
	FormatAuto Format = iota
	// FormatTerminal renders styled output with colors and badges
	FormatTerminal
	// FormatText renders plain text
	FormatText
	// FormatJSON renders machine-readable JSON
	FormatJSON
)

// Formats lists the accepted --format values.
var Formats = []string{"auto", "term", "text", "json"}

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput,
			"unknown format %q (expected one of %s)", s, strings.Join(Formats, ", "))
	}
}

// DetectFormat chooses terminal output only when f is a color capable tty
// and NO_COLOR is unset.
func DetectFormat(f *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if f == nil || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
