// Package inventory defines the cloud resource enumeration capability that
// posture checks depend on. Checks never hold an SDK client; they receive a
// CloudInventory and apply their rule to the records it returns, which keeps
// every check substitutable with a test fake.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/posturescan/posturescan/internal/models"
)

// ErrAccessDenied marks an enumeration call that failed because the scanning
// credentials lack permission for the target resource. Implementations wrap
// it so callers can test with errors.Is. The storage-exposure check downgrades
// it to a MEDIUM finding instead of aborting; other checks let it propagate.
var ErrAccessDenied = errors.New("access denied")

// CloudInventory enumerates the resource categories inspected by the posture
// checks, one method per category or sub-item lookup.
//
// Contract for all methods: an account with zero resources of a category
// returns an empty slice and a nil error; absence of data is never an error.
// Implementations must be safe for concurrent use because checks may run in
// parallel.
type CloudInventory interface {
	// ListStorageBuckets returns every S3 bucket in the account.
	ListStorageBuckets(ctx context.Context) ([]models.StorageBucket, error)

	// BucketACL returns the ACL grants for the named bucket. A bucket the
	// credentials cannot read returns an error wrapping ErrAccessDenied.
	BucketACL(ctx context.Context, bucket string) ([]models.ACLGrant, error)

	// BucketPolicy returns the bucket policy document and whether a policy
	// exists. A bucket without a policy returns ("", false, nil).
	BucketPolicy(ctx context.Context, bucket string) (string, bool, error)

	// ListIngressRules returns all inbound IPv4 security-group rules across
	// the audited regions.
	ListIngressRules(ctx context.Context) ([]models.IngressRule, error)

	// LookupRootEvents returns up to max recent CloudTrail events recorded
	// for the root identity.
	LookupRootEvents(ctx context.Context, max int) ([]models.AuditEvent, error)

	// ListUsers returns every IAM user in the account.
	ListUsers(ctx context.Context) ([]models.IAMUser, error)

	// ListMFADevices returns the MFA devices registered to one IAM user.
	ListMFADevices(ctx context.Context, userName string) ([]models.MFADevice, error)

	// ListAccessKeys returns the access keys belonging to one IAM user.
	ListAccessKeys(ctx context.Context, userName string) ([]models.AccessKey, error)

	// AccessKeyLastUsed returns the last-used timestamp for an access key.
	// A nil time with a nil error means the key has never been used. An
	// error means the lookup is unavailable; callers skip that key only.
	AccessKeyLastUsed(ctx context.Context, keyID string) (*time.Time, error)

	// ListDBInstances returns all RDS instances across the audited regions.
	ListDBInstances(ctx context.Context) ([]models.DBInstance, error)

	// RootAccountSummary returns root-account credential attributes.
	RootAccountSummary(ctx context.Context) (models.RootAccountSummary, error)

	// TrailStatus reports whether a multi-region CloudTrail trail exists.
	TrailStatus(ctx context.Context) (models.TrailStatus, error)

	// GuardDutyStatus returns detector state for each audited region.
	GuardDutyStatus(ctx context.Context) ([]models.DetectorStatus, error)

	// ConfigRecorderStatus returns Config recorder state for each audited region.
	ConfigRecorderStatus(ctx context.Context) ([]models.RecorderStatus, error)
}
