package store

import (
	"context"

	"github.com/tharagrowth/allocation"
)

// Noop is used when history is disabled. It saves nothing and finds nothing.
type Noop struct{}

func (Noop) Save(context.Context, allocation.Profile, *allocation.PortfolioResult) error {
	return nil
}

func (Noop) Get(_ context.Context, id string) (*Record, error) {
	return nil, ErrNotFound
}

func (Noop) List(context.Context, int) ([]Summary, error) { return nil, nil }
func (Noop) Close() error                                 { return nil }
