package store

import (
	"context"
	"errors"

	"plank-cli/internal/model"
)

// Gateway failure taxonomy. Callers match with errors.Is; the core treats
// all of them as "save/load failed" and keeps editing in memory. Retry
// policy belongs to the caller.
var (
	ErrQuotaExceeded   = errors.New("storage quota exceeded")
	ErrUnavailable     = errors.New("storage medium unavailable")
	ErrMalformed       = errors.New("stored snapshot is malformed")
	ErrWriteFailed     = errors.New("snapshot write failed")
	ErrReadFailed      = errors.New("snapshot read failed")
	ErrSizeUnavailable = errors.New("storage size unknown")
)

// Usage reports storage occupancy when the medium can measure it.
type Usage struct {
	Used      int64 `json:"used"`
	Available int64 `json:"available"`
}

// Gateway is the durable storage contract the core depends on. Load reports
// absence through the bool, not an error; all other failures carry one of
// the taxonomy sentinels in their chain.
type Gateway interface {
	Save(ctx context.Context, key string, snapshot model.Snapshot) error
	Load(ctx context.Context, key string) (model.Snapshot, bool, error)
	Remove(ctx context.Context, key string) error
	Size(ctx context.Context) (Usage, error)
}
