package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// rootEventWindow caps the audit-log lookup at the ten most recent events.
const rootEventWindow = 10

// RootActivityCheck flags any recent use of the root account. Root sessions
// bypass IAM policy boundaries entirely, so a single recent event is rated
// CRITICAL. The check emits at most one finding carrying the event count.
type RootActivityCheck struct{}

func (c RootActivityCheck) ID() string   { return "ROOT_ACCOUNT_USAGE" }
func (c RootActivityCheck) Name() string { return "Root Account Usage Check" }

func (c RootActivityCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	events, err := inv.LookupRootEvents(ctx, rootEventWindow)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	return []models.Finding{{
		ID:             fmt.Sprintf("%s-root", c.ID()),
		CheckID:        c.ID(),
		Service:        models.ServiceIAM,
		IssueType:      "Root Account Usage",
		Description:    fmt.Sprintf("Root account has been used %d times recently", len(events)),
		Severity:       models.SeverityCritical,
		Resource:       "Root Account",
		Recommendation: "Use IAM users with appropriate permissions instead of root account",
		Region:         "global",
		DetectedAt:     time.Now().UTC(),
	}}, nil
}
