package output

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef is an adaptive color from styles.yaml.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one named style in styles.yaml.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// StyleConfig is the root of styles.yaml.
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// styleRegistry maps style names to lipgloss styles bound to one renderer.
type styleRegistry map[string]lipgloss.Style

func loadStyles(data []byte, r *lipgloss.Renderer) (styleRegistry, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	reg := make(styleRegistry, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style, err := buildStyle(r, def, colors)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		reg[name] = style
	}
	return reg, nil
}

func buildStyle(r *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	style := r.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline)

	if def.Foreground != "" {
		c, ok := colors[def.Foreground]
		if !ok {
			return style, fmt.Errorf("unknown color %q", def.Foreground)
		}
		style = style.Foreground(c)
	}
	if def.Background != "" {
		c, ok := colors[def.Background]
		if !ok {
			return style, fmt.Errorf("unknown color %q", def.Background)
		}
		style = style.Background(c)
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	return style, nil
}

// render applies the named style, leaving text untouched for unknown names.
func (s styleRegistry) render(name, text string) string {
	if style, ok := s[name]; ok {
		return style.Render(text)
	}
	return text
}
