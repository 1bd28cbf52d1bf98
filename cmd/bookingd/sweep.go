package main

import (
	"errors"
	"fmt"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/app"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/scheduler"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/storage/postgres"
	"github.com/spf13/cobra"
)

func sweepCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "sweep auto-cancel|auto-complete",
		Short:     "Run one reconciliation sweep now and exit",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(scheduler.JobAutoCancel), string(scheduler.JobAutoComplete)},
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := scheduler.ParseJob(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			pool, err := rt.openPool(ctx, false)
			if err != nil {
				return err
			}
			defer pool.Close()

			locker, closeLocker := rt.locker(ctx)
			defer closeLocker()

			svc := app.NewReconcileService(postgres.NewBookingRepository(pool), clock.NewSystem(), rt.serviceOptions()...)
			sched, err := rt.scheduler(svc, locker)
			if err != nil {
				return err
			}

			res, err := sched.Run(ctx, job)
			if errors.Is(err, scheduler.ErrSkipped) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s skipped: another instance holds the lease\n", job)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: affected=%d skipped=%d failed=%d\n", job, res.Affected, res.Skipped, res.Failed)
			return nil
		},
	}
}
