// Package pacman reads metadata from built pacman packages.
package pacman

import (
	"archive/tar"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/utils"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Extensions lists the package file suffixes makepkg can produce
var Extensions = []string{".pkg.tar.zst", ".pkg.tar.xz", ".pkg.tar.gz", ".pkg.tar"}

// IsPackageFile reports whether name looks like a built package
func IsPackageFile(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ReadPackage reads a package file and returns its metadata
func ReadPackage(path string) (*models.BuiltPackage, error) {
	checksums, err := utils.CalculateChecksums(path)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksums: %w", err)
	}

	pkginfo, err := extractPKGINFO(path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract .PKGINFO: %w", err)
	}

	pkg, err := ParsePKGINFO(pkginfo)
	if err != nil {
		return nil, fmt.Errorf("failed to parse .PKGINFO: %w", err)
	}

	pkg.Filename = path
	pkg.Size = checksums.Size
	pkg.SHA256Sum = checksums.SHA256

	return pkg, nil
}

// extractPKGINFO returns the .PKGINFO member of a package archive
func extractPKGINFO(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tarReader *tar.Reader

	switch {
	case strings.HasSuffix(path, ".pkg.tar.zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		tarReader = tar.NewReader(zr)
	case strings.HasSuffix(path, ".pkg.tar.xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, err
		}
		tarReader = tar.NewReader(xr)
	case strings.HasSuffix(path, ".pkg.tar.gz"):
		gr, err := utils.GzipReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		tarReader = tar.NewReader(gr)
	case strings.HasSuffix(path, ".pkg.tar"):
		tarReader = tar.NewReader(f)
	default:
		return nil, fmt.Errorf("unsupported package format: %s", filepath.Base(path))
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == ".PKGINFO" {
			return io.ReadAll(tarReader)
		}
	}

	return nil, fmt.Errorf(".PKGINFO not found in package")
}

// ParsePKGINFO parses "key = value" lines of a .PKGINFO file
func ParsePKGINFO(data []byte) (*models.BuiltPackage, error) {
	pkg := &models.BuiltPackage{
		Metadata: make(map[string]string),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "pkgname":
			pkg.Name = value
		case "pkgbase":
			pkg.Base = value
		case "pkgver":
			pkg.Version = value
		case "pkgdesc":
			pkg.Description = value
		case "arch":
			pkg.Architecture = value
		case "packager":
			pkg.Packager = value
		case "depend":
			pkg.Dependencies = append(pkg.Dependencies, value)
		default:
			// Repeated keys keep the last value
			pkg.Metadata[key] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if pkg.Name == "" {
		return nil, fmt.Errorf("missing pkgname")
	}
	if pkg.Base == "" {
		pkg.Base = pkg.Name
	}

	return pkg, nil
}
