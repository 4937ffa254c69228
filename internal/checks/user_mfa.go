package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// UserWithoutMFACheck flags IAM users that have no MFA device registered.
// A password or access key alone is a single stolen credential away from
// account access, so every user is expected to carry a second factor.
type UserWithoutMFACheck struct{}

func (c UserWithoutMFACheck) ID() string   { return "IAM_USER_NO_MFA" }
func (c UserWithoutMFACheck) Name() string { return "IAM User MFA Check" }

func (c UserWithoutMFACheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	users, err := inv.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var findings []models.Finding
	for _, u := range users {
		devices, err := inv.ListMFADevices(ctx, u.UserName)
		if err != nil {
			return nil, err
		}
		if len(devices) > 0 {
			continue
		}
		findings = append(findings, models.Finding{
			ID:             fmt.Sprintf("%s-%s", c.ID(), u.UserName),
			CheckID:        c.ID(),
			Service:        models.ServiceIAM,
			IssueType:      "No MFA",
			Description:    fmt.Sprintf("User %q does not have MFA configured", u.UserName),
			Severity:       models.SeverityHigh,
			Resource:       u.UserName,
			Recommendation: "Enable MFA for all IAM users with console access",
			Region:         "global",
			DetectedAt:     time.Now().UTC(),
		})
	}
	return findings, nil
}
