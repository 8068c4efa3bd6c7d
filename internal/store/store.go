package store

import (
	"context"
	"errors"
	"time"

	"github.com/restoboard/restoboard/internal/models"
)

// ErrUnknownStore marks a store id with no configured targets. An unconfigured
// store is a caller error, not something the engine recovers from.
var ErrUnknownStore = errors.New("unknown store")

// Store is the row store behind the engine: daily entries keyed by
// (store_id, business_date) with upsert-replace semantics, plus per-store
// target configuration. Implementations must return at most one entry per key
// and range results ordered by business date ascending.
type Store interface {
	UpsertEntry(ctx context.Context, rec models.RawDailyRecord) error
	EntriesInRange(ctx context.Context, storeID string, from, to time.Time) ([]models.RawDailyRecord, error)
	Targets(ctx context.Context, storeID string) (models.StoreTargets, error)
	AllTargets(ctx context.Context) ([]models.StoreTargets, error)
	SaveTargets(ctx context.Context, t models.StoreTargets) error
}
