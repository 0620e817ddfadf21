package vcs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fyntora/fyn/internal/runner"
)

// ExecSyncer drives the git executable
type ExecSyncer struct {
	runner runner.Runner
	git    string
}

// NewExecSyncer creates a syncer running gitBin through r
func NewExecSyncer(r runner.Runner, gitBin string) *ExecSyncer {
	if gitBin == "" {
		gitBin = "git"
	}
	return &ExecSyncer{runner: r, git: gitBin}
}

// Update runs git pull inside dir
func (s *ExecSyncer) Update(ctx context.Context, dir string) error {
	return s.run(ctx, runner.Command{
		Name: s.git,
		Args: []string{"pull"},
		Dir:  dir,
		Mode: runner.ModeStream,
	})
}

// Clone runs git clone <url> inside the parent of dest. git names the
// checkout after the URL, so dest's base name must match it.
func (s *ExecSyncer) Clone(ctx context.Context, url, dest string) error {
	return s.run(ctx, runner.Command{
		Name: s.git,
		Args: []string{"clone", url},
		Dir:  filepath.Dir(dest),
		Mode: runner.ModeStream,
	})
}

func (s *ExecSyncer) run(ctx context.Context, cmd runner.Command) error {
	res, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return runner.CheckExit(cmd, res)
}
