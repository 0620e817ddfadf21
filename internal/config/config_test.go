package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fyntora/fyn/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "none.toml"), env(nil))
	require.Error(t, err, "explicit missing file")
	assert.Nil(t, cfg)

	cfg = Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, DefaultAURURL, cfg.AURURL)
	assert.Equal(t, []string{"-si"}, cfg.MakepkgFlags)
	assert.Equal(t, models.VCSGit, cfg.VCS)
	assert.Equal(t, "fyn", filepath.Base(cfg.CacheDir))
	assert.True(t, cfg.Color)
	assert.False(t, cfg.Pager)
	assert.Zero(t, cfg.HTTPTimeout)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
aur_url = "https://aur.example.org/"
cache_dir = "/var/cache/fyn"
makepkg_flags = ["-si", "--noconfirm"]
vcs = "builtin"
pager = true
color = false
keyring = "/etc/fyn/trusted.gpg"
http_timeout = "30s"
`)

	cfg, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "https://aur.example.org", cfg.AURURL)
	assert.Equal(t, "/var/cache/fyn", cfg.CacheDir)
	assert.Equal(t, []string{"-si", "--noconfirm"}, cfg.MakepkgFlags)
	assert.Equal(t, models.VCSBuiltin, cfg.VCS)
	assert.True(t, cfg.Pager)
	assert.False(t, cfg.Color)
	assert.Equal(t, "/etc/fyn/trusted.gpg", cfg.Keyring)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	// Untouched keys keep defaults
	assert.Equal(t, "pacman", cfg.Pacman)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "vcs = \"builtin\"\npager = true\n")

	cfg, err := LoadWithEnv(path, env(map[string]string{
		"FYN_VCS":           "git",
		"FYN_PAGER":         "false",
		"FYN_MAKEPKG_FLAGS": "-s -i --needed",
		"FYN_HTTP_TIMEOUT":  "5s",
		"FYN_SUDO":          "doas",
	}))
	require.NoError(t, err)

	assert.Equal(t, models.VCSGit, cfg.VCS)
	assert.False(t, cfg.Pager)
	assert.Equal(t, []string{"-s", "-i", "--needed"}, cfg.MakepkgFlags)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "doas", cfg.Sudo)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "unknown vcs", file: `vcs = "svn"`},
		{name: "bad duration", file: `http_timeout = "soon"`},
		{name: "unknown key", file: `colour = true`},
		{name: "not toml", file: `this is = not = toml`},
		{name: "empty url", env: map[string]string{"FYN_AUR_URL": ""}},
		{name: "bad url", env: map[string]string{"FYN_AUR_URL": "aur.archlinux.org"}},
		{name: "bad bool", env: map[string]string{"FYN_COLOR": "sometimes"}},
		{name: "negative timeout", env: map[string]string{"FYN_HTTP_TIMEOUT": "-1s"}},
		{name: "empty tool", env: map[string]string{"FYN_MAKEPKG": " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file)
			_, err := LoadWithEnv(path, env(tt.env))
			require.Error(t, err)
			assert.Equal(t, models.ErrInvalidConfig, models.TypeOf(err))
		})
	}
}
