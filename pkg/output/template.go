package output

import (
	"embed"
	"io"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// styleFuncs decorate template text. Plain renderers pass the text through.
type styleFuncs struct {
	style func(name, text string) string
	badge func(status string) string
}

func parseTemplates(f styleFuncs) (*template.Template, error) {
	return template.New("output").Funcs(template.FuncMap{
		"style": f.style,
		"badge": f.badge,
	}).ParseFS(templateFS, "templates/*.tmpl")
}

func executeResult(t *template.Template, w io.Writer, v resultView) error {
	return t.ExecuteTemplate(w, "result", v)
}
