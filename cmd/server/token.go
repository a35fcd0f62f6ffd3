package main

import (
	"fmt"

	"resume-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser  string
	tokenEmail string
)

// tokenCmd issues access tokens for local testing. It only needs the JWT
// secret, so it does not connect to any backend.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a user id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}

		userID := uuid.New()
		if tokenUser != "" {
			if userID, err = uuid.Parse(tokenUser); err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
		}

		token, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn).GenerateAccessToken(userID, tokenEmail)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id (random when empty)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim used for match notifications")
}
