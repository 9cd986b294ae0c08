package config

import (
	"time"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/fetcher"
	"github.com/raykroeker/vimfiles/pkg/paths"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	InstallRoot     string `koanf:"install_root"`
	ConfigRoot      string `koanf:"config_root"`
	Manifest        string `koanf:"manifest"`
	Home            string `koanf:"home"`
	Namespace       string `koanf:"namespace"`
	Force           bool   `koanf:"force"`
	DryRun          bool   `koanf:"dry_run"`
	Jobs            int    `koanf:"jobs"`
	ContinueOnError bool   `koanf:"continue_on_error"`
	Remote          Remote `koanf:"remote"`
	Git             Git    `koanf:"git"`

	// Source lists the files that contributed, for diagnostics.
	Source []string `koanf:"-"`
}

// Remote describes how plugin repositories are addressed.
type Remote struct {
	URLFormat string `koanf:"url_format"`
	Name      string `koanf:"name"`
	Branch    string `koanf:"branch"`
}

// Git configures the git client.
type Git struct {
	Binary  string        `koanf:"binary"`
	Timeout time.Duration `koanf:"timeout"`
}

// Layout returns the on-disk layout described by c.
func (c *Config) Layout() (paths.Layout, error) {
	return paths.NewLayout(c.InstallRoot, c.ConfigRoot, c.Namespace, c.Home)
}

// FetcherOptions returns the fetcher settings described by c.
func (c *Config) FetcherOptions() fetcher.Options {
	return fetcher.Options{
		URLFormat:  c.Remote.URLFormat,
		RemoteName: c.Remote.Name,
		Branch:     c.Remote.Branch,
		DryRun:     c.DryRun,
	}
}

// normalize fills derived defaults and makes every path absolute.
func (c *Config) normalize() error {
	if c.Home == "" {
		c.Home = paths.GetHomeDirectoryWithDefault("")
	}
	if c.Home == "" {
		return errors.New(errors.ErrConfigValid, "cannot determine home directory; set home or $HOME")
	}

	layout, err := c.Layout()
	if err != nil {
		return err
	}
	c.InstallRoot = layout.InstallRoot
	c.ConfigRoot = layout.ConfigRoot
	c.Namespace = layout.Namespace
	c.Home = layout.Home

	if c.Manifest == "" {
		c.Manifest = layout.DefaultManifestPath()
	}
	if c.Manifest, err = paths.NormalizePath(c.Manifest); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid manifest path")
	}
	return nil
}

// Validate checks the values a user can get wrong.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return errors.Newf(errors.ErrConfigValid, "jobs must be at least 1, got %d", c.Jobs).
			WithDetail("field", "jobs")
	}
	if c.Git.Timeout < 0 {
		return errors.Newf(errors.ErrConfigValid, "git.timeout cannot be negative, got %s", c.Git.Timeout).
			WithDetail("field", "git.timeout")
	}
	if c.Git.Binary == "" {
		return errors.New(errors.ErrConfigValid, "git.binary cannot be empty").
			WithDetail("field", "git.binary")
	}
	if c.Remote.Name == "" || c.Remote.Branch == "" {
		return errors.New(errors.ErrConfigValid, "remote.name and remote.branch cannot be empty").
			WithDetail("field", "remote")
	}
	if c.Remote.URLFormat == "" {
		return errors.New(errors.ErrConfigValid, "remote.url_format cannot be empty").
			WithDetail("field", "remote.url_format")
	}
	return nil
}
