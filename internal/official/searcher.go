// Package official searches the sync repositories through pacman.
package official

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/runner"
	"github.com/sirupsen/logrus"
)

// headerPattern matches "repo/name version [...]"
var headerPattern = regexp.MustCompile(`^(\S+)/(\S+)\s+(\S+)(.*)$`)

// Searcher runs pacman -Ss
type Searcher struct {
	runner runner.Runner
	pacman string
}

// NewSearcher creates a searcher using the given pacman binary
func NewSearcher(r runner.Runner, pacman string) *Searcher {
	if pacman == "" {
		pacman = "pacman"
	}
	return &Searcher{runner: r, pacman: pacman}
}

// Name identifies the source in logs
func (s *Searcher) Name() string {
	return "official repositories"
}

// Search queries the sync databases for query
func (s *Searcher) Search(ctx context.Context, query string) ([]models.Package, error) {
	cmd := runner.Command{
		Name: s.pacman,
		Args: []string{"-Ss", query},
		Mode: runner.ModeCapture,
	}

	res, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}

	// pacman exits 1 when nothing matches
	if !res.Success() {
		if res.ExitCode == 1 && strings.TrimSpace(res.Stdout) == "" {
			logrus.Debugf("pacman found no match for %q", query)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", runner.CheckExit(cmd, res), strings.TrimSpace(res.Stderr))
	}

	packages := ParseSearchOutput(res.Stdout)
	logrus.Debugf("pacman returned %d package(s) for %q", len(packages), query)
	return packages, nil
}

// ParseSearchOutput parses pacman -Ss output. Each result spans two lines,
// the header and an indented description; the line after a header is always
// consumed as its description.
func ParseSearchOutput(output string) []models.Package {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")

	var packages []models.Package
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		match := headerPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		description := ""
		if i+1 < len(lines) {
			description = strings.TrimSpace(lines[i+1])
			i++
		}

		packages = append(packages, models.Package{
			Source:      models.SourceOfficial,
			Repo:        match[1],
			Name:        match[2],
			Version:     match[3],
			Description: description,
			Installed:   strings.Contains(match[4], "[installed"),
		})
	}

	return packages
}
