package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/cambiosoft/exchange_backend/internal/core/ports/repositories"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
)

const lockKey = "exchange_backend:jobs"

var (
	jobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exchange_backend",
			Name:      "job_runs_total",
			Help:      "Total number of background job executions",
		},
		[]string{"job", "result"},
	)
	jobItemsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exchange_backend",
			Name:      "job_items_processed_total",
			Help:      "Total number of items processed by background jobs",
		},
		[]string{"job"},
	)
)

// Runner executes the periodic maintenance jobs: interest accrual, tenant
// expiry and API token cleanup. When a Redis client is provided, a
// distributed lock ensures only one instance runs the sweep at a time.
type Runner struct {
	interestService portssvc.InterestSvcFacade
	tenantService   portssvc.TenantSvcFacade
	tokenRepo       portsrepo.APITokenRepository
	locker          *redislock.Client
	interval        time.Duration
	logger          *slog.Logger
}

// NewRunner builds a job runner. redisClient may be nil for single-instance
// deployments; the jobs then run unguarded.
func NewRunner(
	interestService portssvc.InterestSvcFacade,
	tenantService portssvc.TenantSvcFacade,
	tokenRepo portsrepo.APITokenRepository,
	redisClient *redis.Client,
	interval time.Duration,
	logger *slog.Logger,
) *Runner {
	r := &Runner{
		interestService: interestService,
		tenantService:   tenantService,
		tokenRepo:       tokenRepo,
		interval:        interval,
		logger:          logger,
	}
	if redisClient != nil {
		r.locker = redislock.New(redisClient)
	}
	return r
}

// Run blocks until ctx is cancelled, executing the job set once immediately
// and then on every tick.
func (r *Runner) Run(ctx context.Context) {
	ctx = middleware.ContextWithLogger(ctx, r.logger)

	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Job runner stopping")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	if r.locker != nil {
		// Lock TTL covers a slow sweep; a crashed holder frees it by expiry.
		lock, err := r.locker.Obtain(ctx, lockKey, 10*time.Minute, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			r.logger.Debug("Job lock held elsewhere, skipping run")
			return
		}
		if err != nil {
			r.logger.Error("Failed to obtain job lock", slog.String("error", err.Error()))
			return
		}
		defer func() {
			if err := lock.Release(ctx); err != nil {
				r.logger.Warn("Failed to release job lock", slog.String("error", err.Error()))
			}
		}()
	}

	now := time.Now().UTC()
	r.runAccrualSweep(ctx, now)
	r.runTenantExpiry(ctx, now)
	r.runTokenCleanup(ctx, now)
}

func (r *Runner) runAccrualSweep(ctx context.Context, now time.Time) {
	accrued, err := r.interestService.RunAccrualSweep(ctx, now)
	if err != nil {
		jobRuns.WithLabelValues("interest_accrual", "error").Inc()
		r.logger.Error("Interest accrual sweep failed", slog.String("error", err.Error()))
		return
	}
	jobRuns.WithLabelValues("interest_accrual", "ok").Inc()
	jobItemsProcessed.WithLabelValues("interest_accrual").Add(float64(accrued))
	if accrued > 0 {
		r.logger.Info("Interest accrual sweep completed", slog.Int("entries_accrued", accrued))
	}
}

func (r *Runner) runTenantExpiry(ctx context.Context, now time.Time) {
	deactivated, err := r.tenantService.DeactivateExpired(ctx, now)
	if err != nil {
		jobRuns.WithLabelValues("tenant_expiry", "error").Inc()
		r.logger.Error("Tenant expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	jobRuns.WithLabelValues("tenant_expiry", "ok").Inc()
	jobItemsProcessed.WithLabelValues("tenant_expiry").Add(float64(deactivated))
	if deactivated > 0 {
		r.logger.Info("Expired tenants deactivated", slog.Int64("count", deactivated))
	}
}

func (r *Runner) runTokenCleanup(ctx context.Context, now time.Time) {
	removed, err := r.tokenRepo.DeleteExpired(ctx, now)
	if err != nil {
		jobRuns.WithLabelValues("token_cleanup", "error").Inc()
		r.logger.Error("API token cleanup failed", slog.String("error", err.Error()))
		return
	}
	jobRuns.WithLabelValues("token_cleanup", "ok").Inc()
	jobItemsProcessed.WithLabelValues("token_cleanup").Add(float64(removed))
	if removed > 0 {
		r.logger.Info("Expired API tokens removed", slog.Int64("count", removed))
	}
}
