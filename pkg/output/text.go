package output

import (
	"fmt"
	"io"
	"text/template"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// Text renders plain, unstyled output.
type Text struct {
	w    io.Writer
	tmpl *template.Template
}

// NewText creates a plain text renderer.
func NewText(w io.Writer) (*Text, error) {
	tmpl, err := parseTemplates(styleFuncs{
		style: func(_, text string) string { return text },
		badge: func(status string) string { return "[" + status + "]" },
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot parse output templates")
	}
	return &Text{w: w, tmpl: tmpl}, nil
}

func (r *Text) RenderResult(result *types.CommandResult) error {
	return executeResult(r.tmpl, r.w, newResultView(result))
}

func (r *Text) RenderError(err error) error {
	msg, out := splitOutput(err)
	if _, werr := fmt.Fprintf(r.w, "error: %s\n", msg); werr != nil {
		return werr
	}
	for _, line := range out {
		if _, werr := fmt.Fprintf(r.w, "  | %s\n", line); werr != nil {
			return werr
		}
	}
	return nil
}

func (r *Text) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}
