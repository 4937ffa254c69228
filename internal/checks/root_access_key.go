package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// RootAccessKeyCheck flags root accounts that still carry active access keys.
// Root keys cannot be permission-scoped, so their presence alone is CRITICAL.
type RootAccessKeyCheck struct{}

func (c RootAccessKeyCheck) ID() string   { return "ROOT_ACCESS_KEY" }
func (c RootAccessKeyCheck) Name() string { return "Root Access Key Check" }

func (c RootAccessKeyCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	summary, err := inv.RootAccountSummary(ctx)
	if err != nil {
		return nil, err
	}
	if !summary.DataAvailable || !summary.HasAccessKeys {
		return nil, nil
	}

	return []models.Finding{{
		ID:             fmt.Sprintf("%s-root", c.ID()),
		CheckID:        c.ID(),
		Service:        models.ServiceIAM,
		IssueType:      "Root Access Key",
		Description:    "Root account has active access keys",
		Severity:       models.SeverityCritical,
		Resource:       "Root Account",
		Recommendation: "Delete root access keys and use IAM roles for programmatic access",
		Region:         "global",
		DetectedAt:     time.Now().UTC(),
	}}, nil
}
