package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// ConfigRecorderDisabledCheck flags audited regions where AWS Config has no
// actively recording configuration recorder, one finding per region.
type ConfigRecorderDisabledCheck struct{}

func (c ConfigRecorderDisabledCheck) ID() string   { return "CONFIG_RECORDER_DISABLED" }
func (c ConfigRecorderDisabledCheck) Name() string { return "Config Recorder Check" }

func (c ConfigRecorderDisabledCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	statuses, err := inv.ConfigRecorderStatus(ctx)
	if err != nil {
		return nil, err
	}

	var findings []models.Finding
	for _, s := range statuses {
		if s.Enabled {
			continue
		}
		findings = append(findings, models.Finding{
			ID:             fmt.Sprintf("%s-%s", c.ID(), s.Region),
			CheckID:        c.ID(),
			Service:        models.ServiceConfig,
			IssueType:      "Configuration Recording Disabled",
			Description:    fmt.Sprintf("AWS Config has no active recorder in region %s", s.Region),
			Severity:       models.SeverityHigh,
			Resource:       fmt.Sprintf("config:%s", s.Region),
			Recommendation: "Enable an AWS Config recorder in all active regions",
			Region:         s.Region,
			DetectedAt:     time.Now().UTC(),
		})
	}
	return findings, nil
}
