package awsinventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	configsvc "github.com/aws/aws-sdk-go-v2/service/configservice"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	guardduty "github.com/aws/aws-sdk-go-v2/service/guardduty"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3APIClient is the narrow S3 interface used by the inventory.
// It covers bucket listing, ACL inspection, and policy retrieval.
type s3APIClient interface {
	ListBuckets(ctx context.Context, params *s3svc.ListBucketsInput, optFns ...func(*s3svc.Options)) (*s3svc.ListBucketsOutput, error)
	GetBucketAcl(ctx context.Context, params *s3svc.GetBucketAclInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketAclOutput, error)
	GetBucketPolicy(ctx context.Context, params *s3svc.GetBucketPolicyInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketPolicyOutput, error)
}

// ec2APIClient is the narrow EC2 interface used for security-group
// enumeration. Only DescribeSecurityGroups is required.
type ec2APIClient interface {
	DescribeSecurityGroups(ctx context.Context, params *ec2svc.DescribeSecurityGroupsInput, optFns ...func(*ec2svc.Options)) (*ec2svc.DescribeSecurityGroupsOutput, error)
}

// iamAPIClient is the narrow IAM interface used for user, MFA, access-key,
// and account-level enumeration. It embeds ListUsersAPIClient so the SDK
// paginator can be used directly.
type iamAPIClient interface {
	iamsvc.ListUsersAPIClient
	ListMFADevices(ctx context.Context, params *iamsvc.ListMFADevicesInput, optFns ...func(*iamsvc.Options)) (*iamsvc.ListMFADevicesOutput, error)
	ListAccessKeys(ctx context.Context, params *iamsvc.ListAccessKeysInput, optFns ...func(*iamsvc.Options)) (*iamsvc.ListAccessKeysOutput, error)
	GetAccessKeyLastUsed(ctx context.Context, params *iamsvc.GetAccessKeyLastUsedInput, optFns ...func(*iamsvc.Options)) (*iamsvc.GetAccessKeyLastUsedOutput, error)
	GetAccountSummary(ctx context.Context, params *iamsvc.GetAccountSummaryInput, optFns ...func(*iamsvc.Options)) (*iamsvc.GetAccountSummaryOutput, error)
}

// cloudTrailAPIClient is the narrow CloudTrail interface for event lookup and
// trail configuration.
type cloudTrailAPIClient interface {
	LookupEvents(ctx context.Context, params *cloudtrailsvc.LookupEventsInput, optFns ...func(*cloudtrailsvc.Options)) (*cloudtrailsvc.LookupEventsOutput, error)
	DescribeTrails(ctx context.Context, params *cloudtrailsvc.DescribeTrailsInput, optFns ...func(*cloudtrailsvc.Options)) (*cloudtrailsvc.DescribeTrailsOutput, error)
}

// rdsAPIClient is the narrow RDS interface for instance enumeration.
type rdsAPIClient interface {
	DescribeDBInstances(ctx context.Context, params *rdssvc.DescribeDBInstancesInput, optFns ...func(*rdssvc.Options)) (*rdssvc.DescribeDBInstancesOutput, error)
}

// guardDutyAPIClient is the narrow GuardDuty interface for detector status.
type guardDutyAPIClient interface {
	ListDetectors(ctx context.Context, params *guardduty.ListDetectorsInput, optFns ...func(*guardduty.Options)) (*guardduty.ListDetectorsOutput, error)
	GetDetector(ctx context.Context, params *guardduty.GetDetectorInput, optFns ...func(*guardduty.Options)) (*guardduty.GetDetectorOutput, error)
}

// awsConfigAPIClient is the narrow AWS Config interface for recorder status.
type awsConfigAPIClient interface {
	DescribeConfigurationRecorderStatus(ctx context.Context, params *configsvc.DescribeConfigurationRecorderStatusInput, optFns ...func(*configsvc.Options)) (*configsvc.DescribeConfigurationRecorderStatusOutput, error)
}

// invClients bundles all AWS service clients used by the inventory for one
// region scope.
type invClients struct {
	S3         s3APIClient
	EC2        ec2APIClient
	IAM        iamAPIClient
	CloudTrail cloudTrailAPIClient
	RDS        rdsAPIClient
	GuardDuty  guardDutyAPIClient
	Config     awsConfigAPIClient
}

// invClientFactory creates invClients from an AWS config.
// Injection point: tests replace this with a function returning fake clients.
type invClientFactory func(cfg aws.Config) *invClients

// newDefaultInvClients creates production AWS SDK clients from the given config.
func newDefaultInvClients(cfg aws.Config) *invClients {
	return &invClients{
		S3:         s3svc.NewFromConfig(cfg),
		EC2:        ec2svc.NewFromConfig(cfg),
		IAM:        iamsvc.NewFromConfig(cfg),
		CloudTrail: cloudtrailsvc.NewFromConfig(cfg),
		RDS:        rdssvc.NewFromConfig(cfg),
		GuardDuty:  guardduty.NewFromConfig(cfg),
		Config:     configsvc.NewFromConfig(cfg),
	}
}
