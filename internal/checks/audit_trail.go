package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// MultiRegionTrailCheck flags accounts without a multi-region CloudTrail
// trail. Without one, management events in unwatched regions leave no audit
// record.
type MultiRegionTrailCheck struct{}

func (c MultiRegionTrailCheck) ID() string   { return "CLOUDTRAIL_NOT_MULTI_REGION" }
func (c MultiRegionTrailCheck) Name() string { return "Multi-Region Trail Check" }

func (c MultiRegionTrailCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	status, err := inv.TrailStatus(ctx)
	if err != nil {
		return nil, err
	}
	if status.HasMultiRegionTrail {
		return nil, nil
	}

	return []models.Finding{{
		ID:             fmt.Sprintf("%s-account", c.ID()),
		CheckID:        c.ID(),
		Service:        models.ServiceCloudTrail,
		IssueType:      "No Multi-Region Trail",
		Description:    "No multi-region CloudTrail trail is configured for the account",
		Severity:       models.SeverityHigh,
		Resource:       "CloudTrail",
		Recommendation: "Create a multi-region trail so management events are captured in every region",
		Region:         "global",
		DetectedAt:     time.Now().UTC(),
	}}, nil
}
