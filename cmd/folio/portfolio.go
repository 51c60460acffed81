package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/identity"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var user, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a user's projects as a JSON bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			bundle, err := a.workspaces.For(identity.Identity{UserID: user}).Projects.Export(cmd.Context(), user)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := project.EncodeBundle(w, bundle); err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %d projects to %s\n", len(bundle.Projects), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", identity.LocalUserID, "owner of the projects")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	var user, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a JSON bundle into a user's projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open %s: %w", file, err)
				}
				defer f.Close()
				r = f
			}
			bundle, err := project.DecodeBundle(r)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.workspaces.For(identity.Identity{UserID: user}).Projects.Import(cmd.Context(), user, bundle)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, updated %d\n", result.Created, result.Updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", identity.LocalUserID, "owner of the projects")
	cmd.Flags().StringVarP(&file, "file", "f", "", "bundle to read, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
