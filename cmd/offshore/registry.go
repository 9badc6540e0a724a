package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/medetshatayev/offshore/internal/cli"
	"github.com/medetshatayev/offshore/internal/registry"
	"github.com/medetshatayev/offshore/internal/storage"
)

func registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage the offshore jurisdiction list",
	}

	cmd.AddCommand(registryImportCmd())
	cmd.AddCommand(registryListCmd())

	return cmd
}

func registryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.md>",
		Short: "Import the jurisdiction list from a markdown table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open jurisdiction file: %w", err)
			}
			defer func() { _ = f.Close() }()

			entries, err := registry.ParseMarkdownTable(f)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no jurisdiction rows found in %s", args[0])
			}

			dbPath, err := databasePath()
			if err != nil {
				return err
			}
			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open reference database: %w", err)
			}
			defer func() { _ = store.Close() }()
			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate reference database: %w", err)
			}

			if err := store.ReplaceJurisdictions(ctx, entries); err != nil {
				return err
			}

			slog.Info("jurisdiction list imported", "entries", len(entries), "database", dbPath)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("imported %d jurisdictions", len(entries))))
			return nil
		},
	}
}

func registryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the current jurisdiction list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbPath, err := databasePath()
			if err != nil {
				return err
			}
			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open reference database: %w", err)
			}
			defer func() { _ = store.Close() }()
			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate reference database: %w", err)
			}

			entries, err := store.ListJurisdictions(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderJurisdictionList(entries))
			return nil
		},
	}
}
