package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/posturescan/posturescan/internal/checkpacks/hardening"
	"github.com/posturescan/posturescan/internal/checkpacks/posture"
	"github.com/posturescan/posturescan/internal/checks"
	"github.com/posturescan/posturescan/internal/config"
	"github.com/posturescan/posturescan/internal/models"
	"github.com/posturescan/posturescan/internal/output"
	"github.com/posturescan/posturescan/internal/providers/aws/common"
	awsinventory "github.com/posturescan/posturescan/internal/providers/aws/inventory"
	"github.com/posturescan/posturescan/internal/scanner"
	"github.com/posturescan/posturescan/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pscan",
		Short: "posturescan — AWS security posture scanner",
	}
	root.AddCommand(newScanCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// scanOptions carries the resolved scan configuration after merging the
// config file with command-line flags (flags win).
type scanOptions struct {
	profile     string
	allProfiles bool
	regions     []string
	hardening   bool
	parallel    bool
	workers     int
}

func newScanCmd() *cobra.Command {
	var (
		profile     string
		allProfiles bool
		regions     []string
		reportFmt   string
		summary     bool
		outPath     string
		hardeningOn bool
		parallel    bool
		workers     int
		colored     bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan an AWS account for security posture issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)

			cfg := loadFileConfig(log)
			if !cmd.Flags().Changed("profile") && cfg.AWS.DefaultProfile != "" {
				profile = cfg.AWS.DefaultProfile
			}
			if !cmd.Flags().Changed("region") && len(cfg.AWS.DefaultRegions) > 0 {
				regions = cfg.AWS.DefaultRegions
			}
			if !cmd.Flags().Changed("report") && cfg.Output.Format != "" {
				reportFmt = cfg.Output.Format
			}
			if !cmd.Flags().Changed("colored") {
				colored = cfg.Output.Colored
			}

			opts := scanOptions{
				profile:     profile,
				allProfiles: allProfiles,
				regions:     regions,
				hardening:   hardeningOn || cfg.Scan.Hardening,
				parallel:    parallel || cfg.Scan.Parallel,
				workers:     workers,
			}
			if opts.workers == 0 {
				opts.workers = cfg.Scan.Workers
			}

			report, err := runScan(cmd.Context(), common.NewDefaultAWSClientProvider(), opts, log)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if outPath != "" {
				if err := writeReportToFile(outPath, report); err != nil {
					return err
				}
			}
			if summary {
				output.RenderSummary(cmd.OutOrStdout(), report)
				return nil
			}
			if reportFmt == "json" {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printTable(cmd.OutOrStdout(), report, colored)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "AWS profile name (default: environment / default profile)")
	cmd.Flags().BoolVar(&allProfiles, "all-profiles", false, "Scan all configured AWS profiles")
	cmd.Flags().StringSliceVar(&regions, "region", nil, "AWS region(s) to scan (default: all active regions)")
	cmd.Flags().StringVar(&reportFmt, "report", "table", "Output format: json or table")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print compact summary: totals and severity breakdown")
	cmd.Flags().StringVar(&outPath, "output", "", "Write full JSON report to this file path (in addition to stdout output)")
	cmd.Flags().BoolVar(&hardeningOn, "hardening", false, "Also run the account-hardening check pack")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run checks on a bounded worker pool")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size with --parallel (0 = default)")
	cmd.Flags().BoolVar(&colored, "colored", false, "Colour severity labels in table output")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log per-check progress to stderr")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// newLogger builds the stderr console logger. Warnings and errors only by
// default; --verbose lowers the level to debug for per-check progress.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// loadFileConfig reads the optional app config file. Config problems are
// logged and ignored so a broken file never blocks a scan with flags.
func loadFileConfig(log zerolog.Logger) *config.Config {
	loader, err := config.NewFileLoader()
	if err != nil {
		log.Warn().Err(err).Msg("config path unavailable; using defaults")
		return &config.Config{}
	}
	cfg, err := loader.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", loader.ConfigPath()).Msg("config unreadable; using defaults")
		return &config.Config{}
	}
	return cfg
}

// newCheckRunner wires the registered check packs into a Runner.
func newCheckRunner(opts scanOptions, log zerolog.Logger) *checks.Runner {
	registry := checks.NewRegistry()
	registry.RegisterAll(posture.New())
	if opts.hardening {
		registry.RegisterAll(hardening.New())
	}

	runner := checks.NewRunner(registry.All()).WithLogger(log)
	if opts.parallel {
		runner = runner.WithParallel(opts.workers)
	}
	return runner
}

// runScan executes a posture scan for one profile or, with --all-profiles,
// for every configured profile merged into a single report.
func runScan(ctx context.Context, provider common.AWSClientProvider, opts scanOptions, log zerolog.Logger) (*models.ScanReport, error) {
	if opts.allProfiles {
		return runAllProfiles(ctx, provider, opts, log)
	}
	return runSingleProfile(ctx, provider, opts, log)
}

// runSingleProfile scans one AWS profile.
func runSingleProfile(ctx context.Context, provider common.AWSClientProvider, opts scanOptions, log zerolog.Logger) (*models.ScanReport, error) {
	profileCfg, err := provider.LoadProfile(ctx, opts.profile)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", opts.profile, err)
	}

	regions, err := resolveRegions(ctx, provider, profileCfg, opts.regions)
	if err != nil {
		return nil, fmt.Errorf("resolve regions for profile %q: %w", profileCfg.ProfileName, err)
	}

	inv := awsinventory.New(profileCfg, provider, regions)
	sc := scanner.New(inv, newCheckRunner(opts, log), profileCfg.AccountID, profileCfg.ProfileName, regions).
		WithLogger(log)
	return sc.Scan(ctx), nil
}

// runAllProfiles scans every configured AWS profile and merges findings into
// a single report. Profile failures are skipped non-fatally; an error is
// returned only when no profile can be scanned at all.
func runAllProfiles(ctx context.Context, provider common.AWSClientProvider, opts scanOptions, log zerolog.Logger) (*models.ScanReport, error) {
	profiles, err := provider.LoadAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load all profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no AWS profiles found")
	}

	var (
		allFindings []models.Finding
		allRegions  []string
		seenRegions = make(map[string]struct{})
		scanned     int
	)

	for _, profileCfg := range profiles {
		regions, err := resolveRegions(ctx, provider, profileCfg, opts.regions)
		if err != nil {
			log.Warn().Err(err).Str("profile", profileCfg.ProfileName).Msg("skipping profile")
			continue
		}
		scanned++

		inv := awsinventory.New(profileCfg, provider, regions)
		sc := scanner.New(inv, newCheckRunner(opts, log), profileCfg.AccountID, profileCfg.ProfileName, regions).
			WithLogger(log)
		allFindings = append(allFindings, sc.DetailedFindings(ctx)...)

		for _, r := range regions {
			if _, seen := seenRegions[r]; !seen {
				seenRegions[r] = struct{}{}
				allRegions = append(allRegions, r)
			}
		}
	}

	if scanned == 0 {
		return nil, fmt.Errorf("all profiles failed; nothing scanned")
	}
	return scanner.BuildReport("multi", "", allRegions, allFindings), nil
}

// resolveRegions returns the explicit region list or discovers active regions.
func resolveRegions(ctx context.Context, provider common.AWSClientProvider, profileCfg *common.ProfileConfig, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	return provider.GetActiveRegions(ctx, profileCfg)
}

// printJSON writes the report as indented JSON to w.
func printJSON(w io.Writer, report *models.ScanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeReportToFile serialises report as indented JSON and writes it to path,
// creating or overwriting the file. It does not affect stdout output.
func writeReportToFile(path string, report *models.ScanReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file %q: %w", path, err)
	}
	return nil
}

// printTable renders a one-line scan header followed by the findings table.
func printTable(w io.Writer, report *models.ScanReport, colored bool) {
	s := report.Summary
	fmt.Fprintf(w,
		"Profile: %-20s  Account: %-14s  Regions: %d  Issues: %d  (critical: %d, high: %d, medium: %d)\n\n",
		report.Profile,
		report.AccountID,
		len(report.Regions),
		s.TotalIssues,
		s.CriticalIssues,
		s.HighIssues,
		s.MediumIssues,
	)
	output.RenderTable(w, report.Findings, output.TableOptions{
		Colored:       colored,
		IncludeRegion: true,
	})
}
