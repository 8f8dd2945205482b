package interfaces

import (
	"context"

	"github.com/bobmcallan/toolgate/internal/models"
)

// InvocationStore records completed invocations and serves recent history.
// Implementations can be swapped (in-memory now, BadgerDB when storage is
// enabled).
type InvocationStore interface {
	Record(ctx context.Context, rec models.InvocationRecord) error
	Recent(ctx context.Context, limit int) ([]models.InvocationRecord, error)
	Close() error
}
