package installer

import (
	"context"
	"time"

	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/pacman"
	"github.com/sirupsen/logrus"
)

// mtimeSlack absorbs filesystems with coarse timestamps
const mtimeSlack = time.Second

// report logs the packages makepkg wrote to packageDir since start. It only
// warns; the install has already succeeded.
func (o *Orchestrator) report(ctx context.Context, packageDir string, start time.Time) []models.BuiltPackage {
	artifacts, err := o.scanner.Scan(ctx, packageDir)
	if err != nil {
		logrus.Warnf("Could not list built packages: %v", err)
		return nil
	}

	var built []models.BuiltPackage
	for _, a := range artifacts {
		if a.ModTime.Before(start.Add(-mtimeSlack)) {
			logrus.Debugf("Skipping %s from an earlier build", a.Path)
			continue
		}

		pkg, err := pacman.ReadPackage(a.Path)
		if err != nil {
			logrus.Warnf("Could not read %s: %v", a.Path, err)
			continue
		}

		if o.verifier != nil && a.Signature != "" {
			who, err := o.verifier.VerifyFile(a.Path, a.Signature)
			if err != nil {
				logrus.Warnf("Signature of %s did not verify: %v", a.Path, err)
			} else {
				pkg.Signed = true
				pkg.Signer = who
			}
		}

		logrus.WithFields(logrus.Fields{
			"name":    pkg.Name,
			"version": pkg.Version,
			"arch":    pkg.Architecture,
			"size":    pkg.Size,
			"sha256":  pkg.SHA256Sum,
			"signed":  pkg.Signed,
		}).Info("Built package")
		if pkg.Signed {
			logrus.Infof("%s signed by %s", pkg.Name, pkg.Signer)
		}

		built = append(built, *pkg)
	}

	return built
}
