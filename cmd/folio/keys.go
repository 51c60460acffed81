package main

import (
	"fmt"

	"github.com/rpggio/folio/internal/sqlite"
	"github.com/spf13/cobra"
)

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
	}
	cmd.AddCommand(keysCreateCmd())
	return cmd
}

func keysCreateCmd() *cobra.Command {
	var user, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue an API key for a user and print it once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			token, err := sqlite.NewAPIKeyRepository(a.db).Create(cmd.Context(), user, description)
			if err != nil {
				return fmt.Errorf("create key for %q: %w", user, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user the key authenticates as")
	cmd.Flags().StringVar(&description, "description", "", "note stored with the key")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
