package topics

// Renderer formats topic content for display.
type Renderer interface {
	// Render returns content formatted for the terminal. ext is the topic
	// file extension including the dot.
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, _ string) string {
	return content
}
