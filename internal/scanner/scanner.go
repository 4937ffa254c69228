// Package scanner exposes the posture-scan entry points consumed by
// presentation collaborators: a detailed-findings operation and a
// summary-statistics operation. Both are stateless; every invocation runs a
// fresh scan and nothing is cached between calls, so collaborators can
// rebuild their state from scratch on every refresh without coordination.
package scanner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/posturescan/posturescan/internal/checks"
	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// Scanner runs the registered check suite against one cloud inventory.
// It never calls the AWS SDK directly; all resource access is delegated to
// the CloudInventory and all rule logic to the checks.
type Scanner struct {
	inv       inventory.CloudInventory
	runner    *checks.Runner
	accountID string
	profile   string
	regions   []string
	log       zerolog.Logger
}

// New constructs a Scanner over the given inventory and runner.
// accountID, profile, and regions are attribution metadata stamped onto the
// report; they carry no behavior.
func New(inv inventory.CloudInventory, runner *checks.Runner, accountID, profile string, regions []string) *Scanner {
	return &Scanner{
		inv:       inv,
		runner:    runner,
		accountID: accountID,
		profile:   profile,
		regions:   regions,
		log:       zerolog.Nop(),
	}
}

// WithLogger attaches a logger for scan lifecycle events.
func (s *Scanner) WithLogger(log zerolog.Logger) *Scanner {
	s.log = log
	return s
}

// DetailedFindings runs the full check suite and returns the merged,
// normalized findings collection. It never fails: the worst case is a
// collection describing internal check errors. An empty collection is the
// explicit "no issues found" state.
func (s *Scanner) DetailedFindings(ctx context.Context) []models.Finding {
	s.log.Info().Str("account", s.accountID).Str("profile", s.profile).Msg("starting posture scan")
	findings := s.runner.Run(ctx, s.inv)
	stampAttribution(findings, s.accountID, s.profile)
	s.log.Info().Int("findings", len(findings)).Msg("posture scan complete")
	return findings
}

// SummaryStats runs the full check suite and reduces the result to summary
// counts. Equivalent to Summarize(DetailedFindings(ctx)).
func (s *Scanner) SummaryStats(ctx context.Context) models.ScanSummary {
	return Summarize(s.DetailedFindings(ctx))
}

// Scan runs the full check suite and assembles the complete report for
// rendering: findings sorted by severity plus summary and attribution.
func (s *Scanner) Scan(ctx context.Context) *models.ScanReport {
	return BuildReport(s.profile, s.accountID, s.regions, s.DetailedFindings(ctx))
}

// BuildReport assembles a ScanReport from an already collected findings
// slice. Findings are sorted in-place by severity, CRITICAL first. The CLI
// uses it directly when merging multi-profile scans into one report.
func BuildReport(profile, accountID string, regions []string, findings []models.Finding) *models.ScanReport {
	sortFindings(findings)
	return &models.ScanReport{
		ReportID:    fmt.Sprintf("scan-%d", time.Now().UnixNano()),
		GeneratedAt: time.Now().UTC(),
		Profile:     profile,
		AccountID:   accountID,
		Regions:     regions,
		Summary:     Summarize(findings),
		Findings:    findings,
	}
}

// Summarize reduces a findings collection to its summary counts. It is a
// pure function: no side effects, safe to call repeatedly and concurrently
// on the same immutable collection.
func Summarize(findings []models.Finding) models.ScanSummary {
	summary := models.ScanSummary{
		TotalIssues:   len(findings),
		ScanTimestamp: time.Now().UTC(),
	}

	services := make(map[models.Service]struct{})
	for _, f := range findings {
		services[f.Service] = struct{}{}
		switch f.Severity {
		case models.SeverityCritical:
			summary.CriticalIssues++
		case models.SeverityHigh:
			summary.HighIssues++
		case models.SeverityMedium:
			summary.MediumIssues++
		}
	}
	summary.ServicesAffected = len(services)
	return summary
}

// severityRank maps Severity values to sort keys (lower = higher priority).
var severityRank = map[models.Severity]int{
	models.SeverityCritical: 0,
	models.SeverityHigh:     1,
	models.SeverityMedium:   2,
}

// sortFindings sorts findings in-place by severity, CRITICAL first. The sort
// is stable so check registration order is preserved within one severity.
func sortFindings(findings []models.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return severityRank[findings[i].Severity] < severityRank[findings[j].Severity]
	})
}

// stampAttribution fills the account and profile fields on freshly created
// findings before they leave the scanner.
func stampAttribution(findings []models.Finding, accountID, profile string) {
	for i := range findings {
		findings[i].AccountID = accountID
		findings[i].Profile = profile
	}
}
