// Package store keeps the history of recommendations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/tharagrowth/allocation"
)

// ErrNotFound is returned when no recommendation has the requested id.
var ErrNotFound = errors.New("recommendation not found")

// Record is a saved recommendation with the profile it was computed for.
type Record struct {
	ID      string
	SavedAt time.Time
	Profile allocation.Profile
	Result  *allocation.PortfolioResult
}

// Summary is the listing form of a record.
type Summary struct {
	ID        string
	SavedAt   time.Time
	Strategy  allocation.StrategyName
	Segment   string
	Budget    allocation.Money
	Allocated allocation.Money
}

// Store persists recommendations keyed by their caller supplied id.
type Store interface {
	// Save inserts or replaces the recommendation with the same id.
	Save(ctx context.Context, p allocation.Profile, r *allocation.PortfolioResult) error
	Get(ctx context.Context, id string) (*Record, error)
	// List returns the most recent recommendations first, at most limit (all if limit <= 0).
	List(ctx context.Context, limit int) ([]Summary, error)
	Close() error
}
