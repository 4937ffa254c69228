package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// UnusedAccessKeyCheck flags long-lived access keys that have never been
// used. A never-used key is pure attack surface: it authenticates but serves
// no workload. Rated MEDIUM because exploitation requires the key to leak
// first.
//
// A failed last-used lookup skips that key only; the remaining keys are
// still evaluated.
type UnusedAccessKeyCheck struct{}

func (c UnusedAccessKeyCheck) ID() string   { return "IAM_UNUSED_ACCESS_KEY" }
func (c UnusedAccessKeyCheck) Name() string { return "Unused Access Key Check" }

func (c UnusedAccessKeyCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	users, err := inv.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var findings []models.Finding
	for _, u := range users {
		keys, err := inv.ListAccessKeys(ctx, u.UserName)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			lastUsed, err := inv.AccessKeyLastUsed(ctx, key.ID)
			if err != nil {
				continue // lookup unavailable for this key only
			}
			if lastUsed != nil {
				continue
			}
			findings = append(findings, models.Finding{
				ID:             fmt.Sprintf("%s-%s", c.ID(), key.ID),
				CheckID:        c.ID(),
				Service:        models.ServiceIAM,
				IssueType:      "Unused Access Key",
				Description:    fmt.Sprintf("Access key for user %q has never been used", u.UserName),
				Severity:       models.SeverityMedium,
				Resource:       fmt.Sprintf("%s (%s...)", u.UserName, keyPrefix(key.ID)),
				Recommendation: "Remove unused access keys to reduce attack surface",
				Region:         "global",
				DetectedAt:     time.Now().UTC(),
			})
		}
	}
	return findings, nil
}

// keyPrefix returns the first eight characters of a key ID for display, so
// findings identify the key without reproducing it in full.
func keyPrefix(keyID string) string {
	if len(keyID) <= 8 {
		return keyID
	}
	return keyID[:8]
}
