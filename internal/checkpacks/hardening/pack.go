// Package hardening provides the supplemental account-hardening check pack,
// enabled with the scan command's --hardening flag.
package hardening

import "github.com/posturescan/posturescan/internal/checks"

// New returns the account-hardening check pack.
func New() []checks.Check {
	return []checks.Check{
		checks.RootAccessKeyCheck{},          // CRITICAL: root access keys present
		checks.MultiRegionTrailCheck{},       // HIGH:     no multi-region CloudTrail trail
		checks.GuardDutyDisabledCheck{},      // HIGH:     GuardDuty not enabled in region
		checks.ConfigRecorderDisabledCheck{}, // HIGH:     AWS Config not recording in region
	}
}
