package main

import (
	"fmt"
	"os"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/config"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runtime is filled by the root command before any subcommand runs.
type runtime struct {
	cfg config.Config
	log *logrus.Logger
}

func main() {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "bookingd",
		Short:         "Property booking API and reconciliation worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			boot := logrus.New()
			config.LoadEnvFile(boot)

			cfg, err := config.Load(boot)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			rt.cfg, rt.log = cfg, log
			return nil
		},
	}

	rootCmd.AddCommand(
		serveCmd(rt),
		sweepCmd(rt),
		migrateCmd(rt),
		tokenCmd(rt),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
