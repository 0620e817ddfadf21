package official

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/runner"
	"github.com/fyntora/fyn/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firefoxOutput = `extra/firefox 118.0-1
    Standalone web browser from mozilla.org
`

func TestParseSearchOutputSingle(t *testing.T) {
	pkgs := ParseSearchOutput(firefoxOutput)
	require.Len(t, pkgs, 1)

	assert.Equal(t, models.Package{
		Source:      models.SourceOfficial,
		Repo:        "extra",
		Name:        "firefox",
		Version:     "118.0-1",
		Description: "Standalone web browser from mozilla.org",
	}, pkgs[0])
}

func TestParseSearchOutputMultipleWithMarkers(t *testing.T) {
	output := `core/linux 6.5.7.arch1-1 [installed]
    The Linux kernel and modules

extra/linux-docs 6.5.7.arch1-1
    Documentation for the Linux kernel
multilib/lib32-glibc 2.38-5 (multilib-devel) [installed: 2.38-4]
    GNU C Library (32-bit)
`
	pkgs := ParseSearchOutput(output)
	require.Len(t, pkgs, 3)

	assert.Equal(t, "linux", pkgs[0].Name)
	assert.True(t, pkgs[0].Installed)
	assert.Equal(t, "The Linux kernel and modules", pkgs[0].Description)

	assert.Equal(t, "extra", pkgs[1].Repo)
	assert.Equal(t, "linux-docs", pkgs[1].Name)
	assert.False(t, pkgs[1].Installed)

	assert.Equal(t, "lib32-glibc", pkgs[2].Name)
	assert.Equal(t, "2.38-5", pkgs[2].Version)
	assert.True(t, pkgs[2].Installed)
	assert.Equal(t, "GNU C Library (32-bit)", pkgs[2].Description)
}

func TestParseSearchOutputHeaderOnLastLine(t *testing.T) {
	pkgs := ParseSearchOutput("extra/foo 1.0-1")
	require.Len(t, pkgs, 1)
	assert.Equal(t, "", pkgs[0].Description)
}

func TestParseSearchOutputDescriptionIsConsumed(t *testing.T) {
	// A description that looks like a header must not become a result.
	output := "extra/foo 1.0-1\n    bar/baz 2.0 is what foo wraps\n"
	pkgs := ParseSearchOutput(output)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "bar/baz 2.0 is what foo wraps", pkgs[0].Description)
}

func TestParseSearchOutputSkipsNoise(t *testing.T) {
	output := "\n\nwarning: database file for 'testing' does not exist\n"
	assert.Empty(t, ParseSearchOutput(output))
	assert.Empty(t, ParseSearchOutput(""))
}

func TestParseSearchOutputLongDescription(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	output := "extra/big 1.0-1\n    " + long + "\nextra/after 2.0-1\n    Still listed\n"

	pkgs := ParseSearchOutput(output)
	require.Len(t, pkgs, 2)
	assert.Equal(t, long, pkgs[0].Description)
	assert.Equal(t, "after", pkgs[1].Name)
	assert.Equal(t, "Still listed", pkgs[1].Description)
}

func TestParseSearchOutputCRLF(t *testing.T) {
	pkgs := ParseSearchOutput("extra/foo 1.0-1\r\n    Foo tool\r\n")
	require.Len(t, pkgs, 1)
	assert.Equal(t, "Foo tool", pkgs[0].Description)
}

func TestSearchRunsPacman(t *testing.T) {
	r := runnertest.New().On("pacman", runnertest.Output(firefoxOutput))
	s := NewSearcher(r, "")

	pkgs, err := s.Search(context.Background(), "firefox")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	calls := r.CallsTo("pacman")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"-Ss", "firefox"}, calls[0].Args)
	assert.Equal(t, runner.ModeCapture, calls[0].Mode)
	assert.False(t, calls[0].Privileged)
}

func TestSearchNoMatchIsEmpty(t *testing.T) {
	r := runnertest.New().On("pacman", runnertest.Exit(1))

	pkgs, err := NewSearcher(r, "pacman").Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, pkgs)
}

func TestSearchFailures(t *testing.T) {
	r := runnertest.New().
		On("pacman", runnertest.Response{Result: &runner.Result{ExitCode: 2, Stderr: "error: invalid regex"}}).
		On("pacman", runnertest.Response{Err: errors.New("failed to start pacman")})
	s := NewSearcher(r, "pacman")

	_, err := s.Search(context.Background(), "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with status 2")
	assert.Contains(t, err.Error(), "invalid regex")

	_, err = s.Search(context.Background(), "foo")
	require.Error(t, err)
}
