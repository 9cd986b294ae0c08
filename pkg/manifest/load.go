package manifest

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/filesystem"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// Format identifies the manifest document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension. JSON is read
// with the YAML parser.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	return LoadFS(filesystem.NewOS(), path)
}

// LoadFS reads and parses the manifest at path from fsys.
func LoadFS(fsys types.FS, path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read manifest %s", path).
			WithDetail("path", path)
	}

	m, err := Parse(data, FormatFromPath(path))
	if err != nil {
		var vErr *errors.VimfilesError
		if stderrors.As(err, &vErr) {
			vErr.WithDetail("path", path)
		}
		return nil, err
	}
	m.source = path

	logger.Debug().
		Str("path", path).
		Int("plugins", m.Len()).
		Msg("Manifest loaded")
	return m, nil
}

// document is the format-neutral result of parsing: decoded records plus
// the key order the decoders themselves do not keep.
type document struct {
	order     []string
	linkOrder map[string][]string
	records   map[string]interface{}
}

func newDocument() *document {
	return &document{
		linkOrder: make(map[string][]string),
		records:   make(map[string]interface{}),
	}
}

func (d *document) addPlugin(name string) {
	for _, n := range d.order {
		if n == name {
			return
		}
	}
	d.order = append(d.order, name)
}

func (d *document) addLinkKey(plugin, key string) {
	for _, k := range d.linkOrder[plugin] {
		if k == key {
			return
		}
	}
	d.linkOrder[plugin] = append(d.linkOrder[plugin], key)
}

// Parse parses a manifest document.
func Parse(data []byte, format Format) (*Manifest, error) {
	var (
		doc *document
		err error
	)
	switch format {
	case FormatTOML:
		doc, err = parseTOML(data)
	default:
		doc, err = parseYAML(data)
	}
	if err != nil {
		var vErr *errors.VimfilesError
		if stderrors.As(err, &vErr) {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "malformed %s manifest", format)
	}
	return build(doc)
}

func build(doc *document) (*Manifest, error) {
	entries := make([]PluginEntry, 0, len(doc.order))
	for _, name := range doc.order {
		raw, ok := doc.records[name]
		if !ok {
			continue
		}
		rec, ok := asStringMap(raw)
		if !ok {
			return nil, errors.Newf(errors.ErrManifestInvalid,
				"plugin %q must be a record with owner and repository", name).
				WithDetail("plugin", name)
		}
		entry, err := buildEntry(name, rec, doc.linkOrder[name])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return New(entries...)
}

func buildEntry(name string, rec map[string]interface{}, linkOrder []string) (PluginEntry, error) {
	e := PluginEntry{Name: name}
	invalid := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrManifestInvalid, "plugin %q: "+format, append([]interface{}{name}, args...)...).
			WithDetail("plugin", name)
	}

	setIdentity := func(field *string, key string, val interface{}) error {
		s, ok := val.(string)
		if !ok || s == "" {
			return invalid("%s must be a non-empty string", key)
		}
		if *field != "" && *field != s {
			return invalid("conflicting %s values %q and %q", key, *field, s)
		}
		*field = s
		return nil
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := rec[key]
		var err error
		switch key {
		case "owner", "source_owner":
			err = setIdentity(&e.Owner, "owner", val)
		case "repository", "source_repository":
			err = setIdentity(&e.Repository, "repository", val)
		case "source":
			s, ok := val.(string)
			parts := strings.Split(s, "/")
			if !ok || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return e, invalid("source must have the form owner/repository")
			}
			if err = setIdentity(&e.Owner, "owner", parts[0]); err == nil {
				err = setIdentity(&e.Repository, "repository", parts[1])
			}
		case "description":
			s, ok := val.(string)
			if !ok {
				return e, invalid("description must be a string")
			}
			e.Description = s
		case "links":
			e.Links, err = parseLinks(val, linkOrder)
			if err != nil {
				return e, invalid("%v", err)
			}
		default:
			return e, invalid("unknown field %q", key)
		}
		if err != nil {
			return e, err
		}
	}
	return e, nil
}

// parseLinks accepts a list of bare paths, a list of single-key
// source: target maps, a list of {source, target} records, or a mapping of
// source to target ordered by order.
func parseLinks(val interface{}, order []string) ([]LinkSpec, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, fmt.Errorf("link entries must be non-empty strings")
		}
		return []LinkSpec{Simple(v)}, nil
	case []interface{}:
		links := make([]LinkSpec, 0, len(v))
		for i, item := range v {
			l, err := parseLinkItem(item)
			if err != nil {
				return nil, fmt.Errorf("link %d: %w", i+1, err)
			}
			links = append(links, l)
		}
		return links, nil
	}

	m, ok := asStringMap(val)
	if !ok {
		return nil, fmt.Errorf("links must be a list or a mapping of source to target")
	}
	links := make([]LinkSpec, 0, len(m))
	for _, src := range orderedKeys(m, order) {
		tgt, ok := m[src].(string)
		if !ok || src == "" || tgt == "" {
			return nil, fmt.Errorf("link %q must map to a non-empty target path", src)
		}
		links = append(links, Mapped(src, tgt))
	}
	return links, nil
}

func parseLinkItem(item interface{}) (LinkSpec, error) {
	if s, ok := item.(string); ok {
		if s == "" {
			return LinkSpec{}, fmt.Errorf("link entries must be non-empty strings")
		}
		return Simple(s), nil
	}

	m, ok := asStringMap(item)
	if !ok || len(m) == 0 {
		return LinkSpec{}, fmt.Errorf("link must be a path or a source: target mapping")
	}

	if src, isRecord := m["source"]; isRecord && onlyKeys(m, "source", "target") {
		s, ok := src.(string)
		if !ok || s == "" {
			return LinkSpec{}, fmt.Errorf("link source must be a non-empty string")
		}
		tgt, hasTarget := m["target"]
		if !hasTarget {
			return Simple(s), nil
		}
		t, ok := tgt.(string)
		if !ok || t == "" {
			return LinkSpec{}, fmt.Errorf("link target must be a non-empty string")
		}
		return Mapped(s, t), nil
	}

	if len(m) != 1 {
		return LinkSpec{}, fmt.Errorf("link mapping must have exactly one source: target pair")
	}
	for src, tgt := range m {
		t, ok := tgt.(string)
		if !ok || src == "" || t == "" {
			return LinkSpec{}, fmt.Errorf("link %q must map to a non-empty target path", src)
		}
		return Mapped(src, t), nil
	}
	return LinkSpec{}, nil
}

func onlyKeys(m map[string]interface{}, allowed ...string) bool {
	for k := range m {
		ok := false
		for _, a := range allowed {
			if k == a {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// orderedKeys lists m's keys in the recorded order, then any keys the
// order missed, sorted.
func orderedKeys(m map[string]interface{}, order []string) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func asStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}
