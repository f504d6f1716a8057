package main

import (
	"fmt"

	"github.com/huangang/sitecraft/internal/config"
	"github.com/huangang/sitecraft/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCmd(load func() (*config.Config, error)) *cobra.Command {
	var userID, username string
	var hours int

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			utils.SetJWTSecret(cfg.JWT.Secret)

			if hours <= 0 {
				hours = cfg.JWT.ExpireHour
			}
			if username == "" {
				username = userID
			}
			token, err := utils.GenerateToken(userID, username, hours)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id the token acts for")
	cmd.Flags().StringVar(&username, "name", "", "display name (defaults to the user id)")
	cmd.Flags().IntVar(&hours, "hours", 0, "validity in hours (defaults to jwt.expire_hour)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
