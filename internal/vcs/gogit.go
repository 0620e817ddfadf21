package vcs

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
)

// GoGitSyncer syncs repositories in-process with go-git
type GoGitSyncer struct {
	l *logrus.Entry
}

// NewGoGitSyncer creates a go-git backed syncer
func NewGoGitSyncer() *GoGitSyncer {
	return &GoGitSyncer{l: logrus.WithField("vcs", "builtin")}
}

// Update pulls origin into the checkout at dir
func (s *GoGitSyncer) Update(ctx context.Context, dir string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	s.l.Debugf("Pulling origin in %s", dir)
	err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.l.Debug("Already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to pull %s: %w", dir, err)
	}
	return nil
}

// Clone clones url into dest
func (s *GoGitSyncer) Clone(ctx context.Context, url, dest string) error {
	s.l.Debugf("Cloning %s into %s", url, dest)
	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{URL: url})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}
