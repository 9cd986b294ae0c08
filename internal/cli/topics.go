package cli

import (
	"embed"

	"github.com/spf13/cobra"

	"github.com/raykroeker/vimfiles/pkg/cobrax/topics"
)

//go:embed topics/*.md
var topicFS embed.FS

func installTopics(root *cobra.Command) error {
	_, err := topics.Install(root, topicFS, "topics", topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
	return err
}
