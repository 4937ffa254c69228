package checks

import (
	"context"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// Check is a single posture rule evaluated against one cloud resource
// category. Checks must be stateless and safe to call concurrently; all
// resource access goes through the supplied CloudInventory.
//
// Run returns zero or more findings. An account with no resources of the
// checked category is not an error: the check returns an empty slice.
// Errors the check does not handle locally are returned so the Runner can
// convert them into a scanner-level finding; a check must never let a
// locally recoverable condition (such as the storage check's per-bucket
// access denial) escape as an error.
type Check interface {
	// ID returns the unique, stable identifier for this check
	// (e.g. "S3_PUBLIC_BUCKET").
	ID() string

	// Name returns a short human-readable check name, used in the
	// check-failure finding description.
	Name() string

	// Run evaluates the check against the inventory.
	Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error)
}
