package vitrina

import (
	"context"

	"vitrina/catalog"
)

// Store specifies a backing vehicle store.
type Store interface {
	// Name returns the name of the data source
	Name() string
	// Vehicles returns a snapshot with status, or all for empty status, newest first
	Vehicles(ctx context.Context, status catalog.Status) (vehicles []catalog.Vehicle, err error)
	// Close releases the store
	Close()
}
