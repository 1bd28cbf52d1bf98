package main

import (
	"fmt"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/migrations"
	"github.com/spf13/cobra"
)

func migrateCmd(rt *runtime) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := rt.openPool(ctx, false)
			if err != nil {
				return err
			}
			defer pool.Close()

			out := cmd.OutOrStdout()
			if status {
				list, err := migrations.Status(ctx, pool)
				if err != nil {
					return err
				}
				for _, m := range list {
					applied := "pending"
					if m.AppliedAt != nil {
						applied = m.AppliedAt.UTC().Format(time.RFC3339)
					}
					fmt.Fprintf(out, "%-40s %s\n", m.Name, applied)
				}
				return nil
			}

			ran, err := migrations.Apply(ctx, pool, rt.log)
			if err != nil {
				return err
			}
			if len(ran) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
				return nil
			}
			fmt.Fprintf(out, "Applied %d migration(s).\n", len(ran))
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "list migrations and when they were applied")
	return cmd
}
