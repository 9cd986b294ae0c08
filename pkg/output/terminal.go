package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// badgeStyles colors the per-plugin status badges.
var badgeStyles = map[string]*pterm.Style{
	string(types.FetchCloned):  pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	string(types.FetchPulled):  pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	string(types.FetchCached):  pterm.NewStyle(pterm.BgBlue, pterm.FgWhite),
	string(types.FetchPlanned): pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	string(types.FetchSkipped): pterm.NewStyle(pterm.BgGray, pterm.FgWhite),
	"failed":                   pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold),
}

// Terminal renders styled output for interactive terminals.
type Terminal struct {
	w      io.Writer
	styles styleRegistry
	tmpl   *template.Template
}

// NewTerminal creates a terminal renderer whose styles are resolved
// against the color profile of w.
func NewTerminal(w io.Writer) (*Terminal, error) {
	styles, err := loadStyles(stylesYAML, lipgloss.NewRenderer(w))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot load output styles")
	}

	t := &Terminal{w: w, styles: styles}
	t.tmpl, err = parseTemplates(styleFuncs{style: styles.render, badge: badge})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot parse output templates")
	}
	return t, nil
}

func badge(status string) string {
	label := fmt.Sprintf(" %-7s ", strings.ToUpper(status))
	if style, ok := badgeStyles[status]; ok {
		return style.Sprint(label)
	}
	return label
}

func (r *Terminal) RenderResult(result *types.CommandResult) error {
	return executeResult(r.tmpl, r.w, newResultView(result))
}

func (r *Terminal) RenderError(err error) error {
	msg, out := splitOutput(err)
	if _, werr := fmt.Fprintln(r.w, pterm.Error.Sprint(msg)); werr != nil {
		return werr
	}
	for _, line := range out {
		if _, werr := fmt.Fprintf(r.w, "  %s %s\n", r.styles.render("muted", "|"), line); werr != nil {
			return werr
		}
	}
	return nil
}

func (r *Terminal) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, pterm.Info.Sprint(msg))
	return err
}
