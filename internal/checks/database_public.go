package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// PublicDBInstanceCheck flags RDS instances whose public-accessibility flag
// is set. A database reachable from the internet is always CRITICAL.
type PublicDBInstanceCheck struct{}

func (c PublicDBInstanceCheck) ID() string   { return "RDS_PUBLIC_INSTANCE" }
func (c PublicDBInstanceCheck) Name() string { return "Public RDS Instance Check" }

func (c PublicDBInstanceCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	instances, err := inv.ListDBInstances(ctx)
	if err != nil {
		return nil, err
	}

	var findings []models.Finding
	for _, db := range instances {
		if !db.PubliclyAccessible {
			continue
		}
		findings = append(findings, models.Finding{
			ID:             fmt.Sprintf("%s-%s", c.ID(), db.Identifier),
			CheckID:        c.ID(),
			Service:        models.ServiceRDS,
			IssueType:      "Public Database",
			Description:    fmt.Sprintf("RDS instance %q is publicly accessible", db.Identifier),
			Severity:       models.SeverityCritical,
			Resource:       db.Identifier,
			Recommendation: "Disable public accessibility and use VPC security groups",
			Region:         db.Region,
			DetectedAt:     time.Now().UTC(),
		})
	}
	return findings, nil
}
