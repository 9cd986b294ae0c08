package vcs

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/rs/zerolog"
)

// GitClient runs the git binary.
type GitClient struct {
	Binary  string
	Timeout time.Duration
	// Env is appended to the inherited environment of every invocation.
	Env []string

	logger zerolog.Logger
}

// NewGitClient creates a git client. An empty binary means "git" from PATH;
// a zero timeout disables the per-call deadline.
func NewGitClient(binary string, timeout time.Duration) *GitClient {
	if binary == "" {
		binary = "git"
	}
	return &GitClient{
		Binary:  binary,
		Timeout: timeout,
		logger:  logging.GetLogger("vcs.git"),
	}
}

// Clone runs `git clone <remote> <path>`.
func (g *GitClient) Clone(ctx context.Context, remote, path string) error {
	_, err := g.run(ctx, "", "clone", remote, path)
	return err
}

// Pull runs `git pull <remoteName> <branch>` inside path.
func (g *GitClient) Pull(ctx context.Context, path, remoteName, branch string) error {
	_, err := g.run(ctx, path, "pull", remoteName, branch)
	return err
}

func (g *GitClient) run(ctx context.Context, dir string, args ...string) (string, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	logging.LogCommand(g.logger, g.Binary, args, dir)

	cmd := exec.CommandContext(ctx, g.Binary, args...)
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_SSH_COMMAND=ssh -o BatchMode=yes",
	)
	cmd.Env = append(cmd.Env, g.Env...)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		g.logger.Debug().
			Err(err).
			Strs("args", args).
			Str("output", output).
			Msg("git failed")
		return output, &CommandError{
			Args:   append([]string{g.Binary}, args...),
			Dir:    dir,
			Output: output,
			Err:    err,
		}
	}

	g.logger.Trace().
		Strs("args", args).
		Dur("duration", time.Since(start)).
		Str("output", output).
		Msg("git succeeded")
	return output, nil
}
