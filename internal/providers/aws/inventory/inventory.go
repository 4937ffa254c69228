// Package awsinventory implements the CloudInventory capability against a
// live AWS account using the AWS SDK v2.
//
// Global services (S3, IAM, CloudTrail) are enumerated once against
// us-east-1; regional services (EC2 security groups, RDS, GuardDuty, AWS
// Config) are enumerated per audited region and aggregated, with each record
// stamped with its Region. The inventory applies no posture rules: it only
// returns records for the checks to evaluate.
package awsinventory

import (
	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/providers/aws/common"
)

// AWSInventory is the production CloudInventory. All clients are constructed
// up front so enumeration methods are safe for concurrent use.
type AWSInventory struct {
	global   *invClients
	regional map[string]*invClients
	regions  []string
}

var _ inventory.CloudInventory = (*AWSInventory)(nil)

// New returns an AWSInventory wired to production AWS SDK clients for the
// given profile and region list.
func New(profile *common.ProfileConfig, provider common.AWSClientProvider, regions []string) *AWSInventory {
	return NewWithFactory(profile, provider, regions, newDefaultInvClients)
}

// NewWithFactory returns an AWSInventory that uses the supplied factory,
// allowing tests to inject fake clients.
func NewWithFactory(
	profile *common.ProfileConfig,
	provider common.AWSClientProvider,
	regions []string,
	factory invClientFactory,
) *AWSInventory {
	// us-east-1 is the canonical region for the global services.
	globalCfg := provider.ConfigForRegion(profile, "us-east-1")

	regional := make(map[string]*invClients, len(regions))
	ordered := make([]string, 0, len(regions))
	for _, region := range regions {
		if _, dup := regional[region]; dup {
			continue
		}
		regional[region] = factory(provider.ConfigForRegion(profile, region))
		ordered = append(ordered, region)
	}

	return &AWSInventory{
		global:   factory(globalCfg),
		regional: regional,
		regions:  ordered,
	}
}

// Regions returns the audited regions in their configured order.
func (a *AWSInventory) Regions() []string {
	return a.regions
}
