package types

import "time"

// FetchOutcome describes what the fetcher did for one repository.
type FetchOutcome string

const (
	FetchCloned  FetchOutcome = "cloned"
	FetchPulled  FetchOutcome = "pulled"
	FetchCached  FetchOutcome = "cached"
	FetchPlanned FetchOutcome = "planned"
	FetchSkipped FetchOutcome = "skipped"
)

// LinkStatus describes what the reconciler did for one link.
type LinkStatus string

const (
	LinkCreated LinkStatus = "created"
	LinkSkipped LinkStatus = "skipped"
	LinkPlanned LinkStatus = "planned"
	LinkFailed  LinkStatus = "failed"
)

// LinkResult is the outcome of reconciling a single link specification.
type LinkResult struct {
	Source string     `json:"source"`
	Target string     `json:"target"`
	Status LinkStatus `json:"status"`
}

// PluginReport collects everything that happened to one manifest entry.
type PluginReport struct {
	Name        string       `json:"name"`
	Owner       string       `json:"owner"`
	Repository  string       `json:"repository"`
	InstallPath string       `json:"installPath"`
	Fetch       FetchOutcome `json:"fetch,omitempty"`
	Links       []LinkResult `json:"links"`
	Err         error        `json:"-"`
	Error       string       `json:"error,omitempty"`
}

// Failed reports whether the plugin's pipeline stopped with an error.
func (p *PluginReport) Failed() bool {
	return p.Err != nil
}

// CountLinks returns how many links ended with the given status.
func (p *PluginReport) CountLinks(status LinkStatus) int {
	n := 0
	for _, l := range p.Links {
		if l.Status == status {
			n++
		}
	}
	return n
}

// Report is the result of one synchronizer run, in manifest order.
type Report struct {
	Command   string         `json:"command"`
	DryRun    bool           `json:"dryRun"`
	Plugins   []PluginReport `json:"plugins"`
	StartedAt time.Time      `json:"startedAt"`
	Duration  time.Duration  `json:"duration"`
}

// Summary aggregates counters over all plugins of a report.
type Summary struct {
	Plugins int `json:"plugins"`
	Failed  int `json:"failed"`
	Cloned  int `json:"cloned"`
	Pulled  int `json:"pulled"`
	Cached  int `json:"cached"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Planned int `json:"planned"`
}

// Summarize computes the run summary.
func (r *Report) Summarize() Summary {
	s := Summary{Plugins: len(r.Plugins)}
	for i := range r.Plugins {
		p := &r.Plugins[i]
		if p.Failed() {
			s.Failed++
		}
		switch p.Fetch {
		case FetchCloned:
			s.Cloned++
		case FetchPulled:
			s.Pulled++
		case FetchCached:
			s.Cached++
		}
		s.Created += p.CountLinks(LinkCreated)
		s.Skipped += p.CountLinks(LinkSkipped)
		s.Planned += p.CountLinks(LinkPlanned)
	}
	return s
}

// HomeAction is one change to the activation links in the home directory or
// to the install tree made by the install and remove commands.
type HomeAction struct {
	Action  string `json:"action"`
	Path    string `json:"path"`
	Target  string `json:"target,omitempty"`
	Planned bool   `json:"planned,omitempty"`
}

// Home actions.
const (
	ActionMkdir  = "mkdir"
	ActionLink   = "link"
	ActionUnlink = "unlink"
	ActionRemove = "remove"
	ActionKeep   = "keep"
)

// CommandResult is what a command hands to the output layer.
type CommandResult struct {
	Command string       `json:"command"`
	DryRun  bool         `json:"dryRun"`
	Report  *Report      `json:"report,omitempty"`
	Actions []HomeAction `json:"actions"`
}
