// Package topics extends cobra's help command with free-form help topics
// read from a file system, typically one embedded in the binary.
package topics

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help document.
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Manager.
type Options struct {
	// Extensions lists the file extensions treated as topics.
	// Defaults to .md and .txt.
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics found under a directory of fsys.
type Manager struct {
	fsys       fs.FS
	dir        string
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New creates a Manager for dir inside fsys. Call Scan before use.
func New(fsys fs.FS, dir string, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		dir:        dir,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}
	return m
}

// Scan loads every topic file. A missing directory yields no topics.
func (m *Manager) Scan() error {
	if _, err := fs.Stat(m.fsys, m.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	return fs.WalkDir(m.fsys, m.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get looks a topic up by name. Flag-style names such as --dry-run also
// match a topic named option-dry-run.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names returns the sorted topic names.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the formatted content of t.
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, path.Ext(t.Path))
}

// Install scans the topics and replaces root's help command with one that
// also serves topics. --help on a topic name shows the topic too.
func Install(root *cobra.Command, fsys fs.FS, dir string, opts Options) (*Manager, error) {
	m := New(fsys, dir, opts)
	if err := m.Scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic.
Run ` + root.Name() + ` help topics to list the available topics.`,
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				originalHelp(root, nil)
			case args[0] == "topics":
				m.writeList(cmd, root.Name())
			default:
				if t, ok := m.Get(args[0]); ok {
					fmt.Fprint(out, m.Render(t))
					return
				}
				target, _, err := root.Find(args)
				if err != nil || target == nil {
					target = root
				}
				originalHelp(target, args)
			}
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := m.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(t))
				return
			}
		}
		originalHelp(cmd, args)
	})

	return m, nil
}

func (m *Manager) writeList(cmd *cobra.Command, rootName string) {
	out := cmd.OutOrStdout()
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, "option-"); ok {
			options = append(options, opt)
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(out, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(out, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(out, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(out, "  --%s\n", name)
		}
	}
	fmt.Fprintf(out, "\nUse '%s help <topic>' to read about a specific topic.\n", rootName)
}
