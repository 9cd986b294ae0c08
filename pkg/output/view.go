package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// resultView is the flattened shape the templates render.
type resultView struct {
	Title     string
	Plugins   []pluginView
	Actions   []types.HomeAction
	HasReport bool
	Summary   string
}

type pluginView struct {
	Name       string
	Repository string
	Status     string
	HasLinks   bool
	Created    int
	Skipped    int
	Planned    int
	Error      string
	Output     []string
}

func newResultView(r *types.CommandResult) resultView {
	v := resultView{Title: r.Command, Actions: r.Actions}
	if r.DryRun {
		v.Title += " (dry run)"
	}
	if r.Report == nil {
		return v
	}

	v.HasReport = true
	for i := range r.Report.Plugins {
		p := &r.Report.Plugins[i]
		pv := pluginView{
			Name:       p.Name,
			Repository: p.Owner + "/" + p.Repository,
			Status:     pluginStatus(p),
			HasLinks:   len(p.Links) > 0,
			Created:    p.CountLinks(types.LinkCreated),
			Skipped:    p.CountLinks(types.LinkSkipped),
			Planned:    p.CountLinks(types.LinkPlanned),
		}
		if p.Err != nil {
			pv.Error, pv.Output = splitOutput(p.Err)
		} else if p.Error != "" {
			pv.Error = p.Error
		}
		v.Plugins = append(v.Plugins, pv)
	}
	v.Summary = summaryLine(r.Report)
	return v
}

func pluginStatus(p *types.PluginReport) string {
	switch {
	case p.Failed():
		return "failed"
	case p.Fetch == "":
		return string(types.FetchSkipped)
	default:
		return string(p.Fetch)
	}
}

func summaryLine(r *types.Report) string {
	s := r.Summarize()
	noun := "plugins"
	if s.Plugins == 1 {
		noun = "plugin"
	}
	line := fmt.Sprintf("%d %s: %d cloned, %d pulled, %d cached, %d failed; links: %d created, %d skipped",
		s.Plugins, noun, s.Cloned, s.Pulled, s.Cached, s.Failed, s.Created, s.Skipped)
	if s.Planned > 0 {
		line += fmt.Sprintf(", %d planned", s.Planned)
	}
	if r.Duration > 0 {
		line += fmt.Sprintf(" (%s)", r.Duration.Round(time.Millisecond))
	}
	return line
}

// splitOutput separates captured process output from the error message.
func splitOutput(err error) (string, []string) {
	msg := err.Error()
	out := strings.TrimRight(errors.GetOutput(err), "\n")
	if strings.TrimSpace(out) == "" {
		return msg, nil
	}
	msg = strings.TrimSuffix(msg, "\n"+out)
	return msg, strings.Split(out, "\n")
}
