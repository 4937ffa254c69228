package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// openToWorld is the unrestricted IPv4 source range.
const openToWorld = "0.0.0.0/0"

// sensitivePorts are direct remote-access and database ports. An ingress
// rule opening one of these to the internet is immediately actionable and
// rated CRITICAL; any other open port is HIGH.
var sensitivePorts = map[int]bool{
	22:   true, // SSH
	3389: true, // RDP
	1433: true, // SQL Server
	3306: true, // MySQL
	5432: true, // PostgreSQL
}

// OpenIngressCheck flags security-group ingress rules whose source CIDR is
// the unrestricted range. It is the only check whose severity depends on a
// data value (the port) rather than being fixed per rule.
type OpenIngressCheck struct{}

func (c OpenIngressCheck) ID() string   { return "SG_OPEN_INGRESS" }
func (c OpenIngressCheck) Name() string { return "Security Group Ingress Check" }

func (c OpenIngressCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	rules, err := inv.ListIngressRules(ctx)
	if err != nil {
		return nil, err
	}

	var findings []models.Finding
	for _, rule := range rules {
		if rule.SourceCIDR != openToWorld {
			continue
		}

		severity := models.SeverityHigh
		if sensitivePorts[rule.FromPort] {
			severity = models.SeverityCritical
		}

		portInfo := fmt.Sprintf("port %d", rule.FromPort)
		if rule.FromPort != rule.ToPort {
			portInfo = fmt.Sprintf("ports %d-%d", rule.FromPort, rule.ToPort)
		}

		findings = append(findings, models.Finding{
			ID:             fmt.Sprintf("%s-%s-%d", c.ID(), rule.GroupID, rule.FromPort),
			CheckID:        c.ID(),
			Service:        models.ServiceEC2,
			IssueType:      "Permissive Security Group",
			Description:    fmt.Sprintf("Security group allows %s traffic on %s from anywhere", rule.Protocol, portInfo),
			Severity:       severity,
			Resource:       rule.GroupID,
			Recommendation: "Restrict source IP ranges to specific networks or addresses",
			Region:         rule.Region,
			DetectedAt:     time.Now().UTC(),
		})
	}
	return findings, nil
}
