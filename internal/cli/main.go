package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raykroeker/vimfiles/pkg/output"
)

// Main runs the command line and returns the process exit code.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, NewRootCmd(), args, stdout, stderr)
}

func execute(ctx context.Context, root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	format := output.FormatAuto
	if f := root.PersistentFlags().Lookup("format"); f != nil {
		if parsed, perr := output.ParseFormat(f.Value.String()); perr == nil {
			format = parsed
		}
	}
	renderer, rerr := output.NewRenderer(format, stderr)
	if rerr != nil || renderer.RenderError(err) != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return 1
}
