package cli

import (
	"fmt"
	"time"

	"connector-hub/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// TokenOptions holds flags for the token command.
type TokenOptions struct {
	*RootOptions
	TenantID string
	UserID   string
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a tenant API bearer token",
		Long: `Issue a signed bearer token for the tenant API.

Example:
  chub-worker token --tenant 0b6e1f3a-1111-4c2d-8e9f-123456789abc --user ops`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(opts.TenantID)
			if err != nil {
				return fmt.Errorf("invalid tenant id %q: %w", opts.TenantID, err)
			}

			cfg, _, err := opts.load()
			if err != nil {
				return err
			}

			tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
			token, expiry, err := tokenSvc.Generate(tenantID, opts.UserID)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiry.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.TenantID, "tenant", "", "tenant id (required)")
	cmd.Flags().StringVar(&opts.UserID, "user", "cli", "user id recorded in the token")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
