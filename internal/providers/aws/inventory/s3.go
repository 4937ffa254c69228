package awsinventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/posturescan/posturescan/internal/models"
)

// ListStorageBuckets lists all S3 buckets in the account. S3 bucket listing
// is account-global, so the global client is used.
func (a *AWSInventory) ListStorageBuckets(ctx context.Context) ([]models.StorageBucket, error) {
	out, err := a.global.S3.ListBuckets(ctx, &s3svc.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list S3 buckets: %w", err)
	}

	buckets := make([]models.StorageBucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, models.StorageBucket{Name: aws.ToString(b.Name)})
	}
	return buckets, nil
}

// BucketACL returns the ACL grants for the named bucket. An authorization
// failure is mapped to inventory.ErrAccessDenied so the storage-exposure
// check can downgrade it to a finding instead of aborting.
func (a *AWSInventory) BucketACL(ctx context.Context, bucket string) ([]models.ACLGrant, error) {
	out, err := a.global.S3.GetBucketAcl(ctx, &s3svc.GetBucketAclInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, wrapAccessDenied(fmt.Errorf("get ACL for bucket %q: %w", bucket, err))
	}

	grants := make([]models.ACLGrant, 0, len(out.Grants))
	for _, g := range out.Grants {
		grant := models.ACLGrant{Permission: string(g.Permission)}
		if g.Grantee != nil {
			grant.GranteeURI = aws.ToString(g.Grantee.URI)
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

// BucketPolicy returns the bucket policy document and whether one exists.
// NoSuchBucketPolicy means the bucket simply has no policy and is reported
// as ("", false, nil), not as an error.
func (a *AWSInventory) BucketPolicy(ctx context.Context, bucket string) (string, bool, error) {
	out, err := a.global.S3.GetBucketPolicy(ctx, &s3svc.GetBucketPolicyInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if hasErrorCode(err, "NoSuchBucketPolicy") {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get policy for bucket %q: %w", bucket, err)
	}
	return aws.ToString(out.Policy), true, nil
}
