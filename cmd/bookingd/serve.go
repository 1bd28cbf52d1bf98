package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/app"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/payment"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/pricing"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/storage/catalog"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/storage/postgres"
	transporthttp "github.com/dixheptagon/property-renting-app-api-sub001/internal/transport/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(rt *runtime) *cobra.Command {
	var noScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reconciliation scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.cfg.ValidateServe(); err != nil {
				return err
			}
			log := rt.log
			ctx := cmd.Context()

			pool, err := rt.openPool(ctx, true)
			if err != nil {
				return err
			}
			defer pool.Close()

			catalogDB, err := catalog.Open(rt.cfg.DatabaseURL, log.WithField("component", "catalog"))
			if err != nil {
				return err
			}
			if sqlDB, err := catalogDB.DB(); err == nil {
				defer sqlDB.Close()
			}

			clk := clock.NewSystem()
			opts := rt.serviceOptions()
			repo := postgres.NewBookingRepository(pool)
			calc := pricing.NewCalculator(catalog.NewRepository(catalogDB), rt.local())

			bookingSvc := app.NewBookingService(repo, calc, clk, opts...)
			tenantSvc := app.NewTenantService(repo, clk, opts...)
			paymentSvc := app.NewPaymentService(repo, payment.NewVerifier(rt.cfg.PaymentServerKey), clk, opts...)
			reconcileSvc := app.NewReconcileService(repo, clk, opts...)

			if !noScheduler {
				locker, closeLocker := rt.locker(ctx)
				defer closeLocker()
				sched, err := rt.scheduler(reconcileSvc, locker)
				if err != nil {
					return err
				}
				sched.Start()
				defer func() {
					stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					if err := sched.Stop(stopCtx); err != nil {
						log.WithError(err).Warn("scheduler stop timed out")
					}
				}()
			}

			handler := transporthttp.NewRouter(transporthttp.Services{
				Guest:    bookingSvc,
				Tenant:   tenantSvc,
				Payments: paymentSvc,
				DB:       pool,
			}, transporthttp.RouterConfig{
				Auth:        transporthttp.NewAuthenticator(rt.cfg.JWTSecret, log),
				Local:       rt.local(),
				CORSOrigins: rt.cfg.CORSOrigins,
				Logger:      log,
			})

			server := &http.Server{
				Addr:              ":" + rt.cfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			log.Infof("api listening on :%s", rt.cfg.Port)

			srvErr := make(chan error, 1)
			go func() {
				srvErr <- server.ListenAndServe()
			}()

			stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-srvErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.WithError(err).Error("server error")
				}
			case <-stopCtx.Done():
				log.Info("shutdown signal received, stopping server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("server shutdown error")
			}
			log.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "serve the API without running sweeps in this process")
	return cmd
}
