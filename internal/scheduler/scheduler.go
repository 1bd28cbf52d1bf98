// Package scheduler runs the reconciliation sweeps on their cron cadence.
// Each tick is isolated: a failing or panicking sweep is logged and the
// next tick runs as usual.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/app"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/storage/redislock"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Job string

const (
	JobAutoCancel   Job = "auto-cancel"
	JobAutoComplete Job = "auto-complete"
)

// Jobs lists every sweep in a stable order.
func Jobs() []Job {
	return []Job{JobAutoCancel, JobAutoComplete}
}

func ParseJob(s string) (Job, error) {
	for _, j := range Jobs() {
		if string(j) == s {
			return j, nil
		}
	}
	return "", fmt.Errorf("unknown sweep %q", s)
}

// Sweeper is implemented by app.ReconcileService.
type Sweeper interface {
	CancelExpired(ctx context.Context) (app.SweepResult, error)
	CompleteFinished(ctx context.Context) (app.SweepResult, error)
}

// Locker hands out a named lease. A nil Locker runs every tick locally.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, error)
}

// ErrSkipped is returned by Run when another instance holds the lease.
var ErrSkipped = errors.New("sweep skipped")

type Config struct {
	AutoCancelSpec   string
	AutoCompleteSpec string
	// LeaseTTL bounds both the lease and a single sweep's run time.
	LeaseTTL time.Duration
	Location *time.Location
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	locker  Locker
	log     logrus.FieldLogger
	ttl     time.Duration
}

func New(sweeper Sweeper, locker Locker, cfg Config, log logrus.FieldLogger) (*Scheduler, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	ttl := cfg.LeaseTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log))),
		),
		sweeper: sweeper,
		locker:  locker,
		log:     log,
		ttl:     ttl,
	}

	specs := map[Job]string{
		JobAutoCancel:   cfg.AutoCancelSpec,
		JobAutoComplete: cfg.AutoCompleteSpec,
	}
	for _, job := range Jobs() {
		job := job
		if _, err := s.cron.AddFunc(specs[job], func() { s.tick(job) }); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", job, specs[job], err)
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.WithField("next_run", e.Next.Format(time.RFC3339)).Debug("sweep scheduled")
	}
	s.log.Info("reconciliation scheduler started")
}

// Stop prevents new ticks and waits for running sweeps until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("reconciliation scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) tick(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.ttl)
	defer cancel()
	_, _ = s.Run(ctx, job)
}

// Run executes one sweep under the lease, if any. Errors and panics are
// logged before being returned.
func (s *Scheduler) Run(ctx context.Context, job Job) (res app.SweepResult, err error) {
	log := s.log.WithField("sweep", string(job))
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sweep %s panicked: %v", job, r)
		}
		switch {
		case errors.Is(err, ErrSkipped):
			log.Debug("sweep skipped: lease held elsewhere")
		case err != nil:
			log.WithError(err).Error("sweep failed")
		default:
			log.WithFields(logrus.Fields{
				"affected": res.Affected,
				"skipped":  res.Skipped,
				"failed":   res.Failed,
				"duration": time.Since(started).String(),
			}).Info("sweep finished")
		}
	}()

	if s.locker != nil {
		release, lerr := s.locker.Acquire(ctx, string(job), s.ttl)
		if lerr != nil {
			if errors.Is(lerr, redislock.ErrNotAcquired) {
				return app.SweepResult{}, ErrSkipped
			}
			return app.SweepResult{}, fmt.Errorf("acquire lease: %w", lerr)
		}
		defer func() {
			if rerr := release(context.Background()); rerr != nil {
				log.WithError(rerr).Warn("lease release failed")
			}
		}()
	}

	switch job {
	case JobAutoCancel:
		return s.sweeper.CancelExpired(ctx)
	case JobAutoComplete:
		return s.sweeper.CompleteFinished(ctx)
	}
	return app.SweepResult{}, fmt.Errorf("unknown sweep %q", job)
}
