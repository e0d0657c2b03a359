// Package catalog supplies the ordered list of item identifiers games are
// dealt from.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrEmptyCatalog       = errors.New("catalog is empty")
)

// Provider returns the full catalog in its canonical order. The order matters:
// the same seed over a differently ordered catalog deals a different grid.
type Provider interface {
	FetchCatalog(ctx context.Context) ([]string, error)
}

// Load fetches the catalog once and refuses to hand back an empty one.
func Load(ctx context.Context, p Provider) ([]string, error) {
	items, err := p.FetchCatalog(ctx)
	if err != nil {
		if errors.Is(err, ErrCatalogUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	return items, nil
}
