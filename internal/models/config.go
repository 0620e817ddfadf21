package models

import "time"

// VCS backends for syncing AUR package bases
const (
	VCSGit     = "git"
	VCSBuiltin = "builtin"
)

// Config contains the runtime configuration of fyn
type Config struct {
	// AUR
	AURURL      string
	HTTPTimeout time.Duration // zero means no timeout

	// Build-source cache root, package bases are cloned below it
	CacheDir string

	// External tools
	Pacman       string
	Sudo         string
	Git          string
	Makepkg      string
	MakepkgFlags []string

	// VCS backend: "git" runs the git executable, "builtin" uses go-git
	VCS string

	// Console
	Pager bool
	Color bool

	// Keyring used to verify signatures of built packages, optional
	Keyring string
}
