package models

import "fmt"

// Source identifies where a package record came from
type Source int

const (
	SourceOfficial Source = iota
	SourceAUR
)

// String returns the string representation of Source
func (s Source) String() string {
	switch s {
	case SourceOfficial:
		return "official"
	case SourceAUR:
		return "aur"
	default:
		return "unknown"
	}
}

// NotAvailable is substituted for fields the AUR omits
const NotAvailable = "N/A"

// Package is a search result from either the official repositories or the AUR.
// Records are produced by a searcher and only read afterwards.
type Package struct {
	Source      Source
	Repo        string // core, extra, ... or aur
	Name        string
	Version     string
	Description string
	PackageBase string // AUR build base, empty for official packages
	Installed   bool   // pacman reported the package as installed
}

// BuildBase returns the AUR package base, defaulting to the package name.
func (p Package) BuildBase() string {
	if p.PackageBase == "" {
		return p.Name
	}
	return p.PackageBase
}

// Label returns the "repo/name version" form used in listings.
func (p Package) Label() string {
	label := fmt.Sprintf("%s/%s %s", p.Repo, p.Name, p.Version)
	if p.Installed {
		label += " [installed]"
	}
	return label
}

// BuiltPackage represents a package file produced by makepkg
type BuiltPackage struct {
	// Core metadata from .PKGINFO
	Name         string
	Base         string
	Version      string
	Architecture string
	Description  string
	Packager     string
	Dependencies []string

	// File information
	Filename  string
	Size      int64
	SHA256Sum string

	// Signature information
	Signed bool
	Signer string

	// Other .PKGINFO fields
	Metadata map[string]string
}
