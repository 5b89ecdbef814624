// AngelaMos | 2026
// commands.go

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gborh1/CRM-real-estate/internal/auth"
	"github.com/gborh1/CRM-real-estate/internal/avatar"
	"github.com/gborh1/CRM-real-estate/internal/config"
	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/importer"
	"github.com/gborh1/CRM-real-estate/migrations"
)

func openDB(cmd *cobra.Command) (*config.Config, *core.Database, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	db, err := core.NewDatabase(cmd.Context(), cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			done, err := migrations.Up(cmd.Context(), db.DB, newLogger())
			if err != nil {
				return err
			}

			if len(done) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending migrations.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s).\n", len(done))
			return nil
		},
	}
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			all, err := migrations.Load()
			if err != nil {
				return err
			}
			applied, err := migrations.Applied(cmd.Context(), db.DB)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range all {
				state := "pending"
				if applied[m.Version] {
					state = "applied"
				}
				fmt.Fprintf(out, "%s  %-20s %s\n", m.Version, m.Name, state)
			}
			return nil
		},
	}
}

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ES256 key pair for signing access tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, _ := cmd.Flags().GetString("private")
			pub, _ := cmd.Flags().GetString("public")

			if err := auth.GenerateKeyPair(priv, pub); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", priv, pub)
			return nil
		},
	}
	cmd.Flags().String("private", "keys/private.pem", "private key output path")
	cmd.Flags().String("public", "keys/public.pem", "public key output path")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a contact spreadsheet (.xlsx or .csv) for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			cfg, db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			pipeline := importer.NewPipeline(
				importer.NewSQLStore(db.DB),
				importer.NewHTTPFetcher(cfg.Import),
				avatar.New(),
				newLogger(),
			)

			report, err := pipeline.ImportFile(cmd.Context(), userID, data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().String("user", "", "ID of the user who owns the imported contacts")
	_ = cmd.MarkFlagRequired("user") //nolint:errcheck
	return cmd
}
