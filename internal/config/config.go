// Package config loads fyn's configuration from defaults, an optional TOML
// file and FYN_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fyntora/fyn/internal/models"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// DefaultAURURL is the public AUR endpoint
const DefaultAURURL = "https://aur.archlinux.org"

// EnvPrefix prefixes every environment override
const EnvPrefix = "FYN_"

// fileConfig mirrors the TOML file. Pointers tell unset keys from zero values.
type fileConfig struct {
	AURURL       *string  `toml:"aur_url"`
	HTTPTimeout  *string  `toml:"http_timeout"`
	CacheDir     *string  `toml:"cache_dir"`
	Pacman       *string  `toml:"pacman"`
	Sudo         *string  `toml:"sudo"`
	Git          *string  `toml:"git"`
	Makepkg      *string  `toml:"makepkg"`
	MakepkgFlags []string `toml:"makepkg_flags"`
	VCS          *string  `toml:"vcs"`
	Pager        *bool    `toml:"pager"`
	Color        *bool    `toml:"color"`
	Keyring      *string  `toml:"keyring"`
}

// LookupFunc reads one environment variable
type LookupFunc func(key string) (string, bool)

// Default returns the built-in configuration
func Default() *models.Config {
	return &models.Config{
		AURURL:       DefaultAURURL,
		CacheDir:     defaultCacheDir(),
		Pacman:       "pacman",
		Sudo:         "sudo",
		Git:          "git",
		Makepkg:      "makepkg",
		MakepkgFlags: []string{"-si"},
		VCS:          models.VCSGit,
		Color:        true,
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "fyn")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "fyn")
	}
	return filepath.Join(os.TempDir(), "fyn")
}

// DefaultPath returns the config file location used when none is given
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fyn", "config.toml")
}

// LoadWithEnv reads configuration from path, or from DefaultPath when path
// is empty, and applies overrides found through lookup. A missing default
// file is not an error; a missing explicit file is.
func LoadWithEnv(path string, lookup LookupFunc) (*models.Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := mergeFile(cfg, path, explicit); err != nil {
			return nil, models.NewError(models.ErrInvalidConfig, "", err)
		}
	}

	if err := mergeEnv(cfg, lookup); err != nil {
		return nil, models.NewError(models.ErrInvalidConfig, "", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, models.NewError(models.ErrInvalidConfig, "", err)
	}

	return cfg, nil
}

func mergeFile(cfg *models.Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logrus.Debugf("No config file at %s, using defaults", path)
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	setString(&cfg.AURURL, fc.AURURL)
	setString(&cfg.CacheDir, fc.CacheDir)
	setString(&cfg.Pacman, fc.Pacman)
	setString(&cfg.Sudo, fc.Sudo)
	setString(&cfg.Git, fc.Git)
	setString(&cfg.Makepkg, fc.Makepkg)
	setString(&cfg.VCS, fc.VCS)
	setString(&cfg.Keyring, fc.Keyring)

	if fc.MakepkgFlags != nil {
		cfg.MakepkgFlags = fc.MakepkgFlags
	}
	if fc.Pager != nil {
		cfg.Pager = *fc.Pager
	}
	if fc.Color != nil {
		cfg.Color = *fc.Color
	}
	if fc.HTTPTimeout != nil {
		d, err := time.ParseDuration(*fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid http_timeout %q: %w", *fc.HTTPTimeout, err)
		}
		cfg.HTTPTimeout = d
	}

	logrus.Debugf("Loaded config file %s", path)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// mergeEnv applies FYN_* overrides
func mergeEnv(cfg *models.Config, lookup LookupFunc) error {
	strs := map[string]*string{
		"AUR_URL":   &cfg.AURURL,
		"CACHE_DIR": &cfg.CacheDir,
		"PACMAN":    &cfg.Pacman,
		"SUDO":      &cfg.Sudo,
		"GIT":       &cfg.Git,
		"MAKEPKG":   &cfg.Makepkg,
		"VCS":       &cfg.VCS,
		"KEYRING":   &cfg.Keyring,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"PAGER": &cfg.Pager,
		"COLOR": &cfg.Color,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
		}
		*dst = b
	}

	if v, ok := lookup(EnvPrefix + "MAKEPKG_FLAGS"); ok {
		cfg.MakepkgFlags = strings.Fields(v)
	}

	if v, ok := lookup(EnvPrefix + "HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sHTTP_TIMEOUT %q: %w", EnvPrefix, v, err)
		}
		cfg.HTTPTimeout = d
	}

	return nil
}

// Validate checks cfg and normalises the AUR URL
func Validate(cfg *models.Config) error {
	cfg.AURURL = strings.TrimRight(strings.TrimSpace(cfg.AURURL), "/")
	if cfg.AURURL == "" {
		return fmt.Errorf("aur_url must not be empty")
	}
	if !strings.HasPrefix(cfg.AURURL, "http://") && !strings.HasPrefix(cfg.AURURL, "https://") {
		return fmt.Errorf("aur_url must be an http(s) URL: %q", cfg.AURURL)
	}

	if cfg.CacheDir == "" {
		return fmt.Errorf("cache_dir must not be empty")
	}

	tools := map[string]string{
		"pacman":  cfg.Pacman,
		"sudo":    cfg.Sudo,
		"git":     cfg.Git,
		"makepkg": cfg.Makepkg,
	}
	for key, v := range tools {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	switch cfg.VCS {
	case models.VCSGit, models.VCSBuiltin:
	default:
		return fmt.Errorf("unknown vcs %q (want %q or %q)", cfg.VCS, models.VCSGit, models.VCSBuiltin)
	}

	if cfg.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}

	return nil
}
