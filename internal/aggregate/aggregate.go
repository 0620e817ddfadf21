// Package aggregate merges the official repositories and the AUR into one
// result list.
package aggregate

import (
	"context"
	"fmt"

	"github.com/fyntora/fyn/internal/models"
	"github.com/sirupsen/logrus"
)

// Source is one package searcher
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.Package, error)
}

// Aggregator queries its sources in order and concatenates the results
type Aggregator struct {
	sources []Source

	// OnSource, when set, is called after each source has been queried
	OnSource func(name string, count int)
}

// New creates an aggregator. Results keep the order of sources.
func New(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Aggregate returns every source's results for query, in source order and
// without de-duplication. A failing source is logged and contributes nothing.
// An empty result is a NotFound error.
func (a *Aggregator) Aggregate(ctx context.Context, query string) ([]models.Package, error) {
	var all []models.Package

	for _, src := range a.sources {
		pkgs, err := src.Search(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logrus.Warnf("Error searching %s: %v", src.Name(), err)
			pkgs = nil
		}

		all = append(all, pkgs...)
		if a.OnSource != nil {
			a.OnSource(src.Name(), len(pkgs))
		}
	}

	logrus.Debugf("Found %d package(s) for %q", len(all), query)

	if len(all) == 0 {
		return nil, models.NewError(models.ErrNotFound, query, fmt.Errorf("package '%s' not found", query))
	}

	return all, nil
}

// SourceCount returns the number of configured sources
func (a *Aggregator) SourceCount() int {
	return len(a.sources)
}
