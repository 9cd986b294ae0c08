package manifest

import (
	"strings"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/paths"
)

// PluginEntry is one declared plugin.
type PluginEntry struct {
	Name        string
	Owner       string
	Repository  string
	Description string
	Links       []LinkSpec
}

// Slug returns owner/repository.
func (p PluginEntry) Slug() string {
	return p.Owner + "/" + p.Repository
}

func (p PluginEntry) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New(errors.ErrManifestInvalid, "plugin name cannot be empty")
	}
	if p.Owner == "" || p.Repository == "" {
		return errors.Newf(errors.ErrManifestInvalid,
			"plugin %q must declare owner and repository", p.Name).
			WithDetail("plugin", p.Name)
	}
	if err := paths.ValidateSegment(p.Owner); err != nil {
		return errors.Wrapf(err, errors.ErrManifestInvalid, "plugin %q has an invalid owner", p.Name)
	}
	if err := paths.ValidateSegment(p.Repository); err != nil {
		return errors.Wrapf(err, errors.ErrManifestInvalid, "plugin %q has an invalid repository", p.Name)
	}
	for i, l := range p.Links {
		if err := l.validate(); err != nil {
			return errors.Wrapf(err, errors.ErrManifestInvalid, "plugin %q link %d", p.Name, i+1).
				WithDetail("plugin", p.Name)
		}
	}
	return nil
}

// Manifest is the ordered, immutable set of declared plugins.
type Manifest struct {
	entries []PluginEntry
	index   map[string]int
	source  string
}

// New builds a manifest from entries in the given order. Names must be
// unique and every entry must carry an owner/repository identity.
func New(entries ...PluginEntry) (*Manifest, error) {
	m := &Manifest{
		entries: make([]PluginEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, dup := m.index[e.Name]; dup {
			return nil, errors.Newf(errors.ErrManifestInvalid, "plugin %q declared twice", e.Name).
				WithDetail("plugin", e.Name)
		}
		e.Links = append([]LinkSpec(nil), e.Links...)
		m.index[e.Name] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return m, nil
}

// MustNew is New for statically known entries; it panics on error.
func MustNew(entries ...PluginEntry) *Manifest {
	m, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of plugins.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Source returns the path the manifest was loaded from, if any.
func (m *Manifest) Source() string {
	return m.source
}

// Entries returns the plugins in declaration order. The slice is a copy.
func (m *Manifest) Entries() []PluginEntry {
	out := make([]PluginEntry, len(m.entries))
	for i, e := range m.entries {
		e.Links = append([]LinkSpec(nil), e.Links...)
		out[i] = e
	}
	return out
}

// Names returns the plugin names in declaration order.
func (m *Manifest) Names() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Name
	}
	return out
}

// Get returns the plugin with the given name.
func (m *Manifest) Get(name string) (PluginEntry, bool) {
	i, ok := m.index[name]
	if !ok {
		return PluginEntry{}, false
	}
	e := m.entries[i]
	e.Links = append([]LinkSpec(nil), e.Links...)
	return e, true
}

// Select returns a manifest restricted to names, kept in declaration order.
// Unknown names are a ManifestError.
func (m *Manifest) Select(names ...string) (*Manifest, error) {
	if len(names) == 0 {
		return m, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := m.index[n]; !ok {
			return nil, errors.Newf(errors.ErrManifestInvalid, "plugin %q is not declared in the manifest", n).
				WithDetail("plugin", n)
		}
		want[n] = true
	}
	var picked []PluginEntry
	for _, e := range m.entries {
		if want[e.Name] {
			picked = append(picked, e)
		}
	}
	sub, err := New(picked...)
	if err != nil {
		return nil, err
	}
	sub.source = m.source
	return sub, nil
}
