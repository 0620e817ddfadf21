// Package scanner finds the package files makepkg leaves in a build directory.
package scanner

import (
	"context"
	"time"
)

// Compression represents the compression of a package archive
type Compression int

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionZstd
	CompressionXz
	CompressionGzip
)

// String returns the string representation of Compression
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionXz:
		return "xz"
	case CompressionGzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// Artifact represents a package file found during scanning
type Artifact struct {
	Path        string
	Compression Compression
	Size        int64
	ModTime     time.Time
	// Signature is the detached .sig next to the package, if any
	Signature string
}

// Scanner interface for finding built packages
type Scanner interface {
	// Scan lists the package files directly inside dir
	Scan(ctx context.Context, dir string) ([]Artifact, error)
}
