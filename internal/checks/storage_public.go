package checks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// StoragePublicBucketCheck flags S3 buckets whose ACL grants access to the
// AllUsers or AuthenticatedUsers groups, or whose bucket policy grants to
// Principal "*". A public bucket risks unintended data exposure and is
// always rated CRITICAL.
//
// This is the one check that handles authorization failures itself: a bucket
// whose ACL the scanning credentials cannot read produces a MEDIUM
// "Access Denied" finding for that bucket and the check moves on.
type StoragePublicBucketCheck struct{}

func (c StoragePublicBucketCheck) ID() string   { return "S3_PUBLIC_BUCKET" }
func (c StoragePublicBucketCheck) Name() string { return "S3 Public Bucket Check" }

func (c StoragePublicBucketCheck) Run(ctx context.Context, inv inventory.CloudInventory) ([]models.Finding, error) {
	buckets, err := inv.ListStorageBuckets(ctx)
	if err != nil {
		return nil, err
	}

	var findings []models.Finding
	for _, b := range buckets {
		grants, err := inv.BucketACL(ctx, b.Name)
		if errors.Is(err, inventory.ErrAccessDenied) {
			findings = append(findings, models.Finding{
				ID:             fmt.Sprintf("%s-denied-%s", c.ID(), b.Name),
				CheckID:        c.ID(),
				Service:        models.ServiceS3,
				IssueType:      "Access Denied",
				Description:    fmt.Sprintf("Cannot access bucket %q for security analysis", b.Name),
				Severity:       models.SeverityMedium,
				Resource:       b.Name,
				Recommendation: "Ensure appropriate permissions for security scanning",
				Region:         "global",
				DetectedAt:     time.Now().UTC(),
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		public := aclGrantsPublicAccess(grants)
		if !public {
			// Policy lookup is a sub-item: a failure here skips only the
			// policy signal for this bucket, never the whole check.
			if doc, present, perr := inv.BucketPolicy(ctx, b.Name); perr == nil && present && policyGrantsAnyPrincipal(doc) {
				public = true
			}
		}
		if !public {
			continue
		}

		findings = append(findings, models.Finding{
			ID:             fmt.Sprintf("%s-%s", c.ID(), b.Name),
			CheckID:        c.ID(),
			Service:        models.ServiceS3,
			IssueType:      "Public Bucket",
			Description:    fmt.Sprintf("Bucket %q is publicly accessible", b.Name),
			Severity:       models.SeverityCritical,
			Resource:       b.Name,
			Recommendation: "Review bucket permissions and restrict public access",
			Region:         "global",
			DetectedAt:     time.Now().UTC(),
		})
	}
	return findings, nil
}

// aclGrantsPublicAccess reports whether any grant targets the global
// AllUsers or AuthenticatedUsers grantee groups.
func aclGrantsPublicAccess(grants []models.ACLGrant) bool {
	for _, g := range grants {
		if strings.Contains(g.GranteeURI, "AllUsers") || strings.Contains(g.GranteeURI, "AuthenticatedUsers") {
			return true
		}
	}
	return false
}

// policyGrantsAnyPrincipal reports whether the policy document contains a
// wildcard principal grant. Both JSON spacings are matched because policy
// documents are stored as raw text.
func policyGrantsAnyPrincipal(doc string) bool {
	return strings.Contains(doc, `"Principal": "*"`) || strings.Contains(doc, `"Principal":"*"`)
}
