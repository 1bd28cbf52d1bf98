package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	transporthttp "github.com/dixheptagon/property-renting-app-api-sub001/internal/transport/http"
	"github.com/spf13/cobra"
)

// tokenCmd mints bearer tokens for local development against JWT_SECRET.
func tokenCmd(rt *runtime) *cobra.Command {
	var (
		userID int64
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token for a guest or tenant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}
			p := domain.Principal{UserID: userID, Role: domain.Role(role)}
			if !p.Valid() {
				return fmt.Errorf("invalid principal: user %d role %q", userID, role)
			}
			token, err := transporthttp.NewAuthenticator(rt.cfg.JWTSecret, rt.log).Issue(p, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id placed in the sub claim")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleGuest), "guest or tenant")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
