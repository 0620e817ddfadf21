// Package vcs keeps AUR package-base checkouts in sync.
package vcs

import (
	"context"
	"fmt"

	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/runner"
)

// Syncer clones and updates package-base repositories
type Syncer interface {
	// Update brings the checkout in dir up to date with its remote
	Update(ctx context.Context, dir string) error
	// Clone creates dest from url; dest must not exist
	Clone(ctx context.Context, url, dest string) error
}

// New returns the syncer for a configured backend
func New(backend string, r runner.Runner, gitBin string) (Syncer, error) {
	switch backend {
	case "", models.VCSGit:
		return NewExecSyncer(r, gitBin), nil
	case models.VCSBuiltin:
		return NewGoGitSyncer(), nil
	default:
		return nil, fmt.Errorf("unknown vcs backend %q", backend)
	}
}
