package jobs

import (
	"context"
	"time"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RetentionJobName is the name of the archived account retention job
const RetentionJobName = "account_retention"

// DefaultRetentionTimeout bounds one purge sweep
const DefaultRetentionTimeout = 5 * time.Minute

// AccountPurger defines the repository surface the retention job needs.
// An interface here keeps the job package from importing the repository
// package directly.
type AccountPurger interface {
	// ListPurgeable returns archived accounts whose archive date is before
	// the cutoff and which have no remaining projects.
	ListPurgeable(ctx context.Context, cutoff time.Time) ([]domain.Account, error)

	// HardDelete removes an account and its transaction log.
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// RetentionJob purges archived accounts once they have aged past the
// retention window. Accounts that still have projects are never touched;
// archival exists to preserve those references.
type RetentionJob struct {
	accounts      AccountPurger
	retentionDays int
	logger        *zap.Logger
	timeout       time.Duration
}

// NewRetentionJob creates a new retention job.
func NewRetentionJob(accounts AccountPurger, retentionDays int, logger *zap.Logger) *RetentionJob {
	return &RetentionJob{
		accounts:      accounts,
		retentionDays: retentionDays,
		logger:        logger,
		timeout:       DefaultRetentionTimeout,
	}
}

// Run executes one purge sweep. Called by the scheduler according to the
// cron expression.
func (j *RetentionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	accounts, err := j.accounts.ListPurgeable(ctx, cutoff)
	if err != nil {
		j.logger.Error("retention sweep failed to list accounts",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	purged := 0
	for i := range accounts {
		if err := j.accounts.HardDelete(ctx, accounts[i].ID); err != nil {
			j.logger.Error("retention sweep failed to purge account",
				zap.Error(err),
				zap.String("account_id", accounts[i].ID.String()))
			continue
		}
		purged++
	}

	j.logger.Info("retention sweep completed",
		zap.Int("eligible", len(accounts)),
		zap.Int("purged", purged),
		zap.Time("cutoff", cutoff),
		zap.Duration("duration", time.Since(start)))
}
