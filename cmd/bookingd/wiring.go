package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/app"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/notify"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/scheduler"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/storage/redislock"
	"github.com/dixheptagon/property-renting-app-api-sub001/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const startupTimeout = 5 * time.Second

func (rt *runtime) openPool(ctx context.Context, migrate bool) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, rt.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if migrate {
		if _, err := migrations.Apply(ctx, pool, rt.log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}
	return pool, nil
}

func (rt *runtime) local() clock.Local {
	return clock.NewLocal(rt.cfg.LocalOffset)
}

func (rt *runtime) serviceOptions() []app.Option {
	return []app.Option{
		app.WithLogger(rt.log),
		app.WithNotifier(notify.New(notify.LogSender{Log: rt.log.WithField("component", "notify")})),
		app.WithLocal(rt.local()),
		app.WithPaymentWindow(rt.cfg.PaymentWindow),
		app.WithCompleteGrace(rt.cfg.CompleteGrace),
	}
}

// locker returns nil when REDIS_URL is unset or unreachable; sweeps then
// rely on conditional updates alone.
func (rt *runtime) locker(ctx context.Context) (scheduler.Locker, func()) {
	if rt.cfg.RedisURL == "" {
		return nil, func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	client, err := redislock.Connect(ctx, rt.cfg.RedisURL)
	if err != nil {
		rt.log.WithError(err).Warn("redis unavailable, sweeps run without a lease")
		return nil, func() {}
	}
	return redislock.New(client), func() { _ = client.Close() }
}

func (rt *runtime) scheduler(svc scheduler.Sweeper, locker scheduler.Locker) (*scheduler.Scheduler, error) {
	offset := rt.cfg.LocalOffset
	zone := time.FixedZone(fmt.Sprintf("UTC%+d", int(offset.Hours())), int(offset.Seconds()))
	return scheduler.New(svc, locker, scheduler.Config{
		AutoCancelSpec:   rt.cfg.AutoCancelSchedule,
		AutoCompleteSpec: rt.cfg.AutoCompleteSchedule,
		LeaseTTL:         rt.cfg.SweepLeaseTTL,
		Location:         zone,
	}, rt.log.WithField("component", "scheduler"))
}
