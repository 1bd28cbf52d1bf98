package app

import (
	"context"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/sirupsen/logrus"
)

type ReconcileRepository interface {
	Transitioner
	// CancelExpired moves every pending_payment booking whose deadline is
	// before now to cancelled in a single conditional statement.
	CancelExpired(ctx context.Context, now time.Time) (int64, error)
	ListCompletable(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
}

// SweepResult summarizes one sweep.
type SweepResult struct {
	Affected int64
	Skipped  int64
	Failed   int64
}

// ReconcileService enforces the time-based transitions nobody requests.
type ReconcileService struct {
	repo  ReconcileRepository
	clock clock.Clock
	opts  options
}

func NewReconcileService(repo ReconcileRepository, clk clock.Clock, opts ...Option) *ReconcileService {
	return &ReconcileService{
		repo:  repo,
		clock: clk,
		opts:  buildOptions(opts),
	}
}

// CancelExpired cancels unpaid bookings past their payment deadline.
// Rows that left pending_payment in the meantime are not touched.
func (s *ReconcileService) CancelExpired(ctx context.Context) (SweepResult, error) {
	n, err := s.repo.CancelExpired(ctx, s.clock.Now())
	if err != nil {
		return SweepResult{}, err
	}
	return SweepResult{Affected: n}, nil
}

// CompleteFinished completes confirmed bookings whose check-out is older
// than the grace period. A row that fails is logged and skipped.
func (s *ReconcileService) CompleteFinished(ctx context.Context) (SweepResult, error) {
	now := s.clock.Now()
	due, err := s.repo.ListCompletable(ctx, now.Add(-s.opts.completeGrace))
	if err != nil {
		return SweepResult{}, err
	}

	var res SweepResult
	for _, b := range due {
		log := s.opts.logger.WithField("booking_uid", b.UID)

		from := b.Status
		if err := b.Apply(domain.TransitionAutoComplete, domain.Change{At: now}); err != nil {
			res.Skipped++
			continue
		}
		applied, err := s.repo.UpdateTransition(ctx, b, from)
		if err != nil {
			res.Failed++
			log.WithError(err).Error("auto-complete failed")
			continue
		}
		if !applied {
			res.Skipped++
			continue
		}
		res.Affected++
		notify(ctx, s.opts, b, domain.TransitionAutoComplete)
	}

	if res.Failed > 0 {
		s.opts.logger.WithFields(logrus.Fields{
			"affected": res.Affected,
			"failed":   res.Failed,
		}).Warn("auto-complete sweep finished with failures")
	}
	return res, nil
}
