package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fyntora/fyn/internal/pacman"
	"github.com/fyntora/fyn/internal/utils"
	"github.com/sirupsen/logrus"
)

// DirScanner implements Scanner for a makepkg build directory
type DirScanner struct{}

// NewDirScanner creates a new build directory scanner
func NewDirScanner() *DirScanner {
	return &DirScanner{}
}

// Scan lists package files in dir. makepkg writes them next to the
// PKGBUILD, so subdirectories (src/, pkg/) are not visited.
func (s *DirScanner) Scan(ctx context.Context, dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	var artifacts []Artifact
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() || !pacman.IsPackageFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		comp, err := DetectCompression(path)
		if err != nil {
			logrus.Warnf("Failed to inspect %s: %v", path, err)
			continue
		}
		if comp == CompressionUnknown {
			logrus.Warnf("Skipping %s: content does not match its extension", path)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logrus.Warnf("Failed to stat %s: %v", path, err)
			continue
		}

		artifact := Artifact{
			Path:        path,
			Compression: comp,
			Size:        info.Size(),
			ModTime:     info.ModTime(),
		}
		if ok, _ := utils.FileExists(path + ".sig"); ok {
			artifact.Signature = path + ".sig"
		}

		logrus.Debugf("Found %s package: %s", comp, path)
		artifacts = append(artifacts, artifact)
	}

	logrus.Debugf("Found %d packages in %s", len(artifacts), dir)
	return artifacts, nil
}
