// Package user is the persistence boundary for user records. The pipeline
// only ever needs two operations: a read of the suitability flag and an
// update of the declaration fields, both keyed by unique_id.
package user

import (
	"context"
	"errors"

	"pepgate/internal/pep/models"
)

// ErrUserNotFound signals an explicit not-updated / not-found outcome. The
// orchestrator treats it like any other store failure: by the time the
// pipeline reaches the store, the user's existence has already been
// established by the step check.
var ErrUserNotFound = errors.New("user not found")

// Store is the user store gateway.
type Store interface {
	// FindSuitability reports whether the user has an established
	// suitability/risk profile.
	FindSuitability(ctx context.Context, uniqueID string) (bool, error)
	// UpdateDeclaration applies the declaration fields to the user record.
	// Idempotent by unique_id: reapplying the same record is a no-op in
	// effect, and concurrent writers race with last-write-wins.
	UpdateDeclaration(ctx context.Context, record models.Record) error
}
