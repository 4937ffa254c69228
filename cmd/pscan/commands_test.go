package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/posturescan/posturescan/internal/models"
	"github.com/posturescan/posturescan/internal/scanner"
)

func makeReport(findings []models.Finding) *models.ScanReport {
	report := scanner.BuildReport("staging", "111122223333", []string{"us-east-1", "eu-west-1"}, findings)
	report.ReportID = "scan-test"
	report.GeneratedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return report
}

func sampleFindings() []models.Finding {
	return []models.Finding{
		{
			ID:          "S3_PUBLIC_BUCKET-data",
			CheckID:     "S3_PUBLIC_BUCKET",
			Service:     models.ServiceS3,
			IssueType:   "Public Bucket",
			Description: `Bucket "data" is publicly accessible`,
			Severity:    models.SeverityCritical,
			Resource:    "data",
			Region:      "global",
		},
		{
			ID:          "IAM_USER_NO_MFA-bob",
			CheckID:     "IAM_USER_NO_MFA",
			Service:     models.ServiceIAM,
			IssueType:   "No MFA",
			Description: `User "bob" does not have MFA configured`,
			Severity:    models.SeverityHigh,
			Resource:    "bob",
			Region:      "global",
		},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, makeReport(sampleFindings()), false)

	out := buf.String()
	for _, want := range []string{"staging", "111122223333", "Issues: 2", "critical: 1", "data", "bob", "CRITICAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestPrintTable_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, makeReport(nil), false)
	if !strings.Contains(buf.String(), "No issues found.") {
		t.Errorf("expected clean-scan message; got:\n%s", buf.String())
	}
}

func TestPrintJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, makeReport(sampleFindings())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed models.ScanReport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\nraw:\n%s", err, buf.String())
	}
	if parsed.AccountID != "111122223333" || len(parsed.Findings) != 2 {
		t.Errorf("parsed report = %+v", parsed)
	}
	if parsed.Summary.TotalIssues != 2 || parsed.Summary.CriticalIssues != 1 {
		t.Errorf("parsed summary = %+v", parsed.Summary)
	}
}

func TestWriteReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := writeReportToFile(path, makeReport(sampleFindings())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed models.ScanReport
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON in report file: %v", err)
	}
	if parsed.ReportID != "scan-test" {
		t.Errorf("report ID = %q, want scan-test", parsed.ReportID)
	}
}

func TestRunScan_SingleProfileAttribution(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	provider := goodMockAWS()
	opts := scanOptions{profile: "default", regions: []string{"us-east-1"}}

	report, err := runScan(context.Background(), provider, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Profile != "default" || report.AccountID != "123456789012" {
		t.Errorf("attribution = %q/%q", report.Profile, report.AccountID)
	}
	if len(report.Regions) != 1 || report.Regions[0] != "us-east-1" {
		t.Errorf("regions = %v", report.Regions)
	}
	// The mock provider hands out empty SDK configs, so every check degrades
	// to its failure finding instead of aborting the scan.
	if len(report.Findings) != 6 {
		t.Fatalf("expected 6 findings, got %d", len(report.Findings))
	}
	for _, f := range report.Findings {
		if f.IssueType != "Check Error" || f.Service != models.ServiceSystem {
			t.Errorf("finding %q = %s/%s, want System/Check Error", f.ID, f.Service, f.IssueType)
		}
		if f.Profile != "default" || f.AccountID != "123456789012" {
			t.Errorf("finding %q attribution = %q/%q", f.ID, f.Profile, f.AccountID)
		}
	}
}

func TestRunScan_HardeningExpandsSuite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	provider := goodMockAWS()
	opts := scanOptions{profile: "default", regions: []string{"us-east-1"}, hardening: true}

	report, err := runScan(context.Background(), provider, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Findings) != 10 {
		t.Fatalf("expected 10 findings with hardening pack, got %d", len(report.Findings))
	}
}

func TestRunScan_ExplicitRegionsSkipDiscovery(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	provider := goodMockAWS()
	provider.regionsErr = nil
	provider.regionsResult = nil // discovery would return nothing
	opts := scanOptions{profile: "default", regions: []string{"ap-south-1"}}

	report, err := runScan(context.Background(), provider, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Regions) != 1 || report.Regions[0] != "ap-south-1" {
		t.Errorf("regions = %v, want explicit ap-south-1", report.Regions)
	}
}

func TestRunScan_AllProfilesMergesIntoOneReport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	provider := goodMockAWS()
	opts := scanOptions{allProfiles: true, regions: []string{"us-east-1"}}

	report, err := runScan(context.Background(), provider, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Profile != "multi" {
		t.Errorf("profile = %q, want multi", report.Profile)
	}
	if len(report.Findings) != 6 {
		t.Errorf("expected 6 findings, got %d", len(report.Findings))
	}
}

func TestRunScan_AllProfilesNoneFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	provider := &mockAWSProvider{}
	opts := scanOptions{allProfiles: true}

	if _, err := runScan(context.Background(), provider, opts, zerolog.Nop()); err == nil {
		t.Fatal("expected error when no profiles are configured")
	}
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{"scan": false, "doctor": false, "version": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestNewScanCmd_FlagDefaults(t *testing.T) {
	cmd := newScanCmd()
	tests := []struct {
		flag string
		want string
	}{
		{"profile", ""},
		{"report", "table"},
		{"hardening", "false"},
		{"parallel", "false"},
		{"workers", "0"},
	}
	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("missing flag --%s", tt.flag)
			continue
		}
		if f.DefValue != tt.want {
			t.Errorf("--%s default = %q, want %q", tt.flag, f.DefValue, tt.want)
		}
	}
}
