// Package output renders command results for the terminal, for plain text
// consumers and as JSON.
package output

import (
	"io"
	"os"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// Renderer writes command results, errors and messages to one stream.
type Renderer interface {
	// RenderResult renders the outcome of a command
	RenderResult(result *types.CommandResult) error

	// RenderError renders an error including any captured process output
	RenderError(err error) error

	// RenderMessage renders a single informational line
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format writing to w. FormatAuto is
// resolved with DetectFormat when w is a file and falls back to text
// otherwise.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if f, ok := w.(*os.File); ok {
			return NewRenderer(DetectFormat(f), w)
		}
		return NewRenderer(FormatText, w)
	case FormatTerminal:
		return NewTerminal(w)
	case FormatText:
		return NewText(w)
	case FormatJSON:
		return NewJSON(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
