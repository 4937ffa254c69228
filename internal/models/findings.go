package models

import "time"

// Severity represents the impact level of a finding.
// The posture rule set uses exactly three levels; there is no LOW tier.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
)

// Service identifies the cloud service a finding refers to.
type Service string

const (
	ServiceS3         Service = "S3"
	ServiceEC2        Service = "EC2"
	ServiceIAM        Service = "IAM"
	ServiceRDS        Service = "RDS"
	ServiceCloudTrail Service = "CloudTrail"
	ServiceGuardDuty  Service = "GuardDuty"
	ServiceConfig     Service = "Config"

	// ServiceSystem is the sentinel service tag for scanner-internal
	// findings, e.g. a check that failed to run.
	ServiceSystem Service = "System"
)

// Finding is a single detected configuration issue.
// It is the atomic output unit of the check runner and is never mutated
// after creation: checks (and the runner, for check failures) are the only
// producers, and everything downstream treats the record as read-only.
type Finding struct {
	ID             string    `json:"id"`
	CheckID        string    `json:"check_id"`
	Service        Service   `json:"service"`
	IssueType      string    `json:"issue_type"`
	Description    string    `json:"description"`
	Severity       Severity  `json:"severity"`
	Resource       string    `json:"resource"`
	Recommendation string    `json:"recommendation"`
	Region         string    `json:"region,omitempty"`
	AccountID      string    `json:"account_id,omitempty"`
	Profile        string    `json:"profile,omitempty"`
	DetectedAt     time.Time `json:"detected_at"`
}

// ScanSummary aggregates counts across one findings collection.
// It is recomputed in full on every request and never cached.
type ScanSummary struct {
	TotalIssues      int       `json:"total_issues"`
	CriticalIssues   int       `json:"critical_issues"`
	HighIssues       int       `json:"high_issues"`
	MediumIssues     int       `json:"medium_issues"`
	ServicesAffected int       `json:"services_affected"`
	ScanTimestamp    time.Time `json:"scan_timestamp"`
}

// ScanReport is the top-level output of a posture scan run.
type ScanReport struct {
	ReportID    string      `json:"report_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Profile     string      `json:"profile"`
	AccountID   string      `json:"account_id"`
	Regions     []string    `json:"regions"`
	Summary     ScanSummary `json:"summary"`
	Findings    []Finding   `json:"findings"`
}
