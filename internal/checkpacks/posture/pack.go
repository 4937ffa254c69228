// Package posture provides the core posture check pack.
// It groups the default checks into a single New() function that the CLI
// wires into a checks.Registry before invoking the scanner.
//
// Convention: every check pack lives in internal/checkpacks/<domain>/pack.go
// and exposes a single New() func returning []checks.Check. Future posture
// checks should be added to the slice returned by New().
package posture

import "github.com/posturescan/posturescan/internal/checks"

// New returns the default posture check pack in its fixed evaluation order.
func New() []checks.Check {
	return []checks.Check{
		checks.StoragePublicBucketCheck{}, // CRITICAL: publicly accessible S3 bucket
		checks.OpenIngressCheck{},         // CRITICAL/HIGH: security group open to the internet
		checks.RootActivityCheck{},        // CRITICAL: recent root account usage
		checks.UserWithoutMFACheck{},      // HIGH:     IAM user has no MFA device
		checks.UnusedAccessKeyCheck{},     // MEDIUM:   access key never used
		checks.PublicDBInstanceCheck{},    // CRITICAL: publicly accessible RDS instance
	}
}
