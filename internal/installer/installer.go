// Package installer installs a selected package, either from the official
// repositories through pacman or from the AUR by building it with makepkg.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/runner"
	"github.com/fyntora/fyn/internal/scanner"
	"github.com/fyntora/fyn/internal/signer"
	"github.com/fyntora/fyn/internal/utils"
	"github.com/fyntora/fyn/internal/vcs"
	"github.com/sirupsen/logrus"
)

// RecipeFile is the build recipe reviewed before building
const RecipeFile = "PKGBUILD"

// reviewDir holds digests of accepted recipes, relative to the cache root
const reviewDir = ".reviewed"

// ErrInstallCancelled is returned when the user declines the build
var ErrInstallCancelled = errors.New("installation cancelled")

// AURClient resolves package bases and their clone URLs
type AURClient interface {
	FetchBuildBase(ctx context.Context, name string) (string, error)
	CloneURL(base string) string
}

// Console is the user channel of an install
type Console interface {
	Printf(format string, a ...any)
	Warnf(format string, a ...any)
	Errorf(format string, a ...any)
	Successf(format string, a ...any)
	Headerf(format string, a ...any)
	Confirm(prompt string) (bool, error)
	ShowText(title, text string)
}

// Orchestrator runs the install flow for one package
type Orchestrator struct {
	cfg      *models.Config
	runner   runner.Runner
	aur      AURClient
	syncer   vcs.Syncer
	console  Console
	scanner  scanner.Scanner
	verifier signer.Verifier
}

// New creates an orchestrator
func New(cfg *models.Config, r runner.Runner, aur AURClient, syncer vcs.Syncer, console Console) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		runner:  r,
		aur:     aur,
		syncer:  syncer,
		console: console,
		scanner: scanner.NewDirScanner(),
	}
}

// SetVerifier enables signature checks of built packages
func (o *Orchestrator) SetVerifier(v signer.Verifier) {
	o.verifier = v
}

// Install installs pkg from its source
func (o *Orchestrator) Install(ctx context.Context, pkg models.Package) error {
	o.console.Printf("\nInstalling %s/%s %s...\n\n", pkg.Repo, pkg.Name, pkg.Version)

	switch pkg.Source {
	case models.SourceOfficial:
		return o.installOfficial(ctx, pkg.Name)
	case models.SourceAUR:
		return o.installAUR(ctx, pkg.Name)
	default:
		return models.NewError(models.ErrInstall, pkg.Name, fmt.Errorf("unknown package source %s", pkg.Source))
	}
}

func (o *Orchestrator) installOfficial(ctx context.Context, name string) error {
	o.console.Printf("Installing from official repository using pacman...\n")

	cmd := runner.Command{
		Name:       o.cfg.Pacman,
		Args:       []string{"-S", name},
		Privileged: true,
		Mode:       runner.ModeStream,
	}
	logrus.Debugf("Running %s", cmd)

	res, err := o.runner.Run(ctx, cmd)
	if err != nil {
		o.console.Errorf("Error: Could not start %s\n", o.cfg.Pacman)
		return models.NewError(models.ErrInstall, name, err)
	}
	if err := runner.CheckExit(cmd, res); err != nil {
		o.console.Errorf("\nError: Failed to install %s\n", name)
		return models.NewError(models.ErrInstall, name, err)
	}

	o.console.Successf("\n%s installed successfully!\n", name)
	return nil
}

func (o *Orchestrator) installAUR(ctx context.Context, name string) error {
	base := o.resolveBase(ctx, name)
	if err := checkBase(base); err != nil {
		o.console.Errorf("Error: Refusing to use package base '%s'.\n", base)
		return models.NewError(models.ErrSourceSync, name, err)
	}

	if err := utils.EnsureDir(o.cfg.CacheDir); err != nil {
		return models.NewError(models.ErrFileOp, name, fmt.Errorf("failed to create cache directory: %w", err))
	}
	packageDir := filepath.Join(o.cfg.CacheDir, base)

	if err := o.syncSource(ctx, base, packageDir); err != nil {
		return err
	}

	digest, err := o.review(base, packageDir)
	if err != nil {
		return models.NewError(models.ErrFileOp, name, err)
	}

	ok, err := o.console.Confirm("Proceed with installation? [Y/n] ")
	if err == nil {
		// An interrupt during the prompt must not count as consent
		err = ctx.Err()
	}
	if errors.Is(err, context.Canceled) {
		return models.NewError(models.ErrCancelled, name, ErrInstallCancelled)
	}
	if err != nil {
		return models.NewError(models.ErrUnknown, name, fmt.Errorf("failed to read answer: %w", err))
	}
	if !ok {
		return models.NewError(models.ErrCancelled, name, ErrInstallCancelled)
	}

	if digest != "" {
		o.rememberReview(base, digest)
	}

	start := time.Now()
	if err := o.build(ctx, name, packageDir); err != nil {
		return err
	}

	o.console.Successf("\n%s installed successfully!\n", name)

	o.report(ctx, packageDir, start)
	return nil
}

// resolveBase never fails: on error the package name is used as the base
func (o *Orchestrator) resolveBase(ctx context.Context, name string) string {
	base, err := o.aur.FetchBuildBase(ctx, name)
	if err != nil {
		logrus.Debugf("Build base lookup for %s failed: %v", name, err)
		o.console.Warnf("Warning: Could not fetch package info from AUR API: %v\n", err)
		o.console.Printf("Attempting to use package name '%s' for cloning...\n", name)
		return name
	}
	if base == "" || base == models.NotAvailable {
		return name
	}
	return base
}

// checkBase rejects build bases that would not name a single entry directly
// under the cache directory. Bases starting with a dot are never valid
// package names and would collide with the review records.
func checkBase(base string) error {
	if base == "" || strings.HasPrefix(base, ".") ||
		strings.ContainsAny(base, `/\`) || !filepath.IsLocal(base) {
		return fmt.Errorf("invalid package base %q", base)
	}
	return nil
}

// syncSource updates packageDir in place or clones it. A failed update is
// retried once as a fresh clone.
func (o *Orchestrator) syncSource(ctx context.Context, base, packageDir string) error {
	exists, err := utils.DirExists(packageDir)
	if err != nil {
		return models.NewError(models.ErrFileOp, base, err)
	}

	if exists {
		o.console.Printf("Package directory exists in cache. Updating...\n")
		err := o.syncer.Update(ctx, packageDir)
		if err == nil {
			return nil
		}

		logrus.Debugf("Update of %s failed: %v", packageDir, err)
		o.console.Warnf("Error updating repository. Trying fresh clone...\n")
		if err := os.RemoveAll(packageDir); err != nil {
			return models.NewError(models.ErrFileOp, base, fmt.Errorf("failed to remove %s: %w", packageDir, err))
		}
	} else {
		o.console.Printf("Cloning AUR repository for %s...\n", base)
	}

	if err := o.syncer.Clone(ctx, o.aur.CloneURL(base), packageDir); err != nil {
		o.console.Errorf("Error: Failed to clone repository.\n")
		return models.NewError(models.ErrSourceSync, base, err)
	}
	return nil
}

// review prints the recipe and returns its digest, or "" when there is none
func (o *Orchestrator) review(base, packageDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(packageDir, RecipeFile))
	if errors.Is(err, os.ErrNotExist) {
		logrus.Debugf("No %s in %s", RecipeFile, packageDir)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", RecipeFile, err)
	}

	digest := utils.Blake3Hex(data)

	o.console.Headerf("\n==> %s:\n", RecipeFile)
	o.console.ShowText(RecipeFile, string(data))
	o.console.Printf("\n")

	switch previous := o.reviewedDigest(base); {
	case previous == "":
	case previous == digest:
		o.console.Printf("==> %s is unchanged since you last accepted it.\n\n", RecipeFile)
	default:
		o.console.Warnf("==> %s has changed since you last accepted it.\n\n", RecipeFile)
	}

	return digest, nil
}

func (o *Orchestrator) reviewPath(base string) string {
	return filepath.Join(o.cfg.CacheDir, reviewDir, base)
}

func (o *Orchestrator) reviewedDigest(base string) string {
	data, err := os.ReadFile(o.reviewPath(base))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (o *Orchestrator) rememberReview(base, digest string) {
	path := o.reviewPath(base)
	if err := utils.WriteFile(path, []byte(digest+"\n"), 0644); err != nil {
		logrus.Warnf("Failed to record review of %s: %v", base, err)
	}
}

func (o *Orchestrator) build(ctx context.Context, name, packageDir string) error {
	o.console.Printf("\nBuilding package...\n")

	cmd := runner.Command{
		Name: o.cfg.Makepkg,
		Args: o.cfg.MakepkgFlags,
		Dir:  packageDir,
		Mode: runner.ModeStream,
	}
	logrus.Debugf("Running %s in %s", cmd, packageDir)

	res, err := o.runner.Run(ctx, cmd)
	if err != nil {
		o.console.Errorf("Error: Could not start %s\n", o.cfg.Makepkg)
		return models.NewError(models.ErrBuild, name, err)
	}
	if err := runner.CheckExit(cmd, res); err != nil {
		o.console.Errorf("\nError: Failed to build/install %s\n", name)
		return models.NewError(models.ErrBuild, name, err)
	}
	return nil
}
