package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// GuardDutyDisabledCheck flags audited regions with no enabled GuardDuty
// detector, one finding per region.
type GuardDutyDisabledCheck struct{}

func (c GuardDutyDisabledCheck) ID() string   { return "GUARDDUTY_DISABLED" }
func (c GuardDutyDisabledCheck) Name() string { return "GuardDuty Status Check" }

func (c GuardDutyDisabledCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	statuses, err := inv.GuardDutyStatus(ctx)
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
			Service:        models.ServiceGuardDuty,
			IssueType:      "Threat Detection Disabled",
			Description:    fmt.Sprintf("GuardDuty is not enabled in region %s", s.Region),
			Severity:       models.SeverityHigh,
			Resource:       fmt.Sprintf("guardduty:%s", s.Region),
			Recommendation: "Enable GuardDuty in all active regions",
			Region:         s.Region,
			DetectedAt:     time.Now().UTC(),
		})
	}
	return findings, nil
}
