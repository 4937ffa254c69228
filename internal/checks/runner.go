package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/posturescan/posturescan/internal/inventory"
	"github.com/posturescan/posturescan/internal/models"
)

// defaultMaxWorkers bounds the parallel runner: one goroutine per check up
// to this limit.
const defaultMaxWorkers = 4

// Runner executes an ordered list of checks against one inventory and merges
// their findings. It isolates per-check failures: a check that returns an
// error (or panics) contributes exactly one System finding instead of
// aborting the scan, so partial failure of one rule category never blocks
// visibility into the others.
type Runner struct {
	checks     []Check
	parallel   bool
	maxWorkers int
	log        zerolog.Logger
}

// NewRunner returns a sequential Runner over the given checks.
func NewRunner(checks []Check) *Runner {
	return &Runner{
		checks:     checks,
		maxWorkers: defaultMaxWorkers,
		log:        zerolog.Nop(),
	}
}

// WithParallel enables the bounded worker pool, one task per check.
// workers <= 0 keeps the default bound.
func (r *Runner) WithParallel(workers int) *Runner {
	r.parallel = true
	if workers > 0 {
		r.maxWorkers = workers
	}
	return r
}

// WithLogger attaches a logger for per-check progress and failure events.
func (r *Runner) WithLogger(log zerolog.Logger) *Runner {
	r.log = log
	return r
}

// Run executes every check and returns the merged findings collection.
// It never returns an error: the worst case is a collection composed
// entirely of check-failure findings. Findings are merged in check
// registration order regardless of execution mode, so output order is
// deterministic.
func (r *Runner) Run(ctx context.Context, inv inventory.CloudInventory) []models.Finding {
	results := make([][]models.Finding, len(r.checks))

	if r.parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.maxWorkers)
		for i, check := range r.checks {
			i, check := i, check
			g.Go(func() error {
				results[i] = r.runOne(gctx, check, inv)
				return nil
			})
		}
		// runOne never returns an error; Wait only joins the pool.
		_ = g.Wait()
	} else {
		for i, check := range r.checks {
			results[i] = r.runOne(ctx, check, inv)
		}
	}

	var merged []models.Finding
	for _, fs := range results {
		merged = append(merged, fs...)
	}
	return merged
}

// runOne executes a single check, converting any error or panic into the
// synthetic check-failure finding.
func (r *Runner) runOne(ctx context.Context, check Check, inv inventory.CloudInventory) (findings []models.Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Str("check", check.ID()).Any("panic", rec).Msg("check panicked")
			findings = []models.Finding{checkFailureFinding(check, fmt.Errorf("panic: %v", rec))}
		}
	}()

	r.log.Debug().Str("check", check.ID()).Msg("running check")
	findings, err := check.Run(ctx, inv)
	if err != nil {
		r.log.Warn().Str("check", check.ID()).Err(err).Msg("check failed")
		return []models.Finding{checkFailureFinding(check, err)}
	}
	r.log.Debug().Str("check", check.ID()).Int("findings", len(findings)).Msg("check complete")
	return findings
}

// checkFailureFinding is the single synthetic finding emitted when a check
// fails to run. It keeps the scan result well-formed while signalling
// degraded confidence for that rule category.
func checkFailureFinding(check Check, err error) models.Finding {
	return models.Finding{
		ID:             fmt.Sprintf("CHECK_ERROR-%s", check.ID()),
		CheckID:        check.ID(),
		Service:        models.ServiceSystem,
		IssueType:      "Check Error",
		Description:    fmt.Sprintf("Error running %s: %v", check.Name(), err),
		Severity:       models.SeverityMedium,
		Resource:       "Security Scanner",
		Recommendation: "Check AWS credentials and permissions",
		Region:         "global",
		DetectedAt:     time.Now().UTC(),
	}
}
