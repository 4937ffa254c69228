package models

import "time"

// StorageBucket identifies one S3 bucket in the account.
type StorageBucket struct {
	Name string `json:"name"`
}

// ACLGrant is a single grant from a bucket ACL. GranteeURI is the group URI
// for group grantees (e.g. .../groups/global/AllUsers) and empty for
// canonical-user grantees.
type ACLGrant struct {
	GranteeURI string `json:"grantee_uri"`
	Permission string `json:"permission"`
}

// IngressRule represents a single inbound IPv4 rule in an EC2 security group.
// Region carries the AWS region of the security group so that findings can be
// attributed to the correct region.
type IngressRule struct {
	GroupID    string `json:"group_id"`
	Protocol   string `json:"protocol"`
	FromPort   int    `json:"from_port"`
	ToPort     int    `json:"to_port"`
	SourceCIDR string `json:"source_cidr"`
	Region     string `json:"region"`
}

// AuditEvent is one CloudTrail management event.
type AuditEvent struct {
	EventName string    `json:"event_name"`
	Username  string    `json:"username"`
	EventTime time.Time `json:"event_time"`
}

// IAMUser identifies one IAM user in the account.
type IAMUser struct {
	UserName string `json:"user_name"`
}

// MFADevice is one MFA device registered to an IAM user.
type MFADevice struct {
	SerialNumber string `json:"serial_number"`
}

// AccessKey is one long-lived access key belonging to an IAM user.
type AccessKey struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Active   bool   `json:"active"`
}

// DBInstance represents a managed RDS database instance and its
// public-accessibility flag.
type DBInstance struct {
	Identifier         string `json:"identifier"`
	Engine             string `json:"engine"`
	PubliclyAccessible bool   `json:"publicly_accessible"`
	Region             string `json:"region"`
}

// RootAccountSummary captures security attributes of the AWS root account.
// DataAvailable distinguishes "collection failed (zero value)" from
// "actually no keys".
type RootAccountSummary struct {
	HasAccessKeys bool `json:"has_access_keys"`
	MFAEnabled    bool `json:"mfa_enabled"`
	DataAvailable bool `json:"data_available"`
}

// TrailStatus reports whether the account has at least one multi-region
// CloudTrail trail.
type TrailStatus struct {
	HasMultiRegionTrail bool `json:"has_multi_region_trail"`
}

// DetectorStatus reports GuardDuty detector state for one region.
type DetectorStatus struct {
	Region  string `json:"region"`
	Enabled bool   `json:"enabled"`
}

// RecorderStatus reports AWS Config recorder state for one region.
type RecorderStatus struct {
	Region  string `json:"region"`
	Enabled bool   `json:"enabled"`
}
