package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
)

var migrationsDir string

func main() {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the recipeshare database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "directory holding the SQL migrations")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  runUp,
		},
		&cobra.Command{
			Use:   "rollback",
			Short: "Roll back the last applied migration",
			RunE:  runRollback,
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE:  runStatus,
		},
		&cobra.Command{
			Use:   "automigrate",
			Short: "Sync the schema from the gorm models (development only)",
			RunE:  runAutoMigrate,
		},
	)

	if err := root.Execute(); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
}

// openSQL connects with DATABASE_URL when set, otherwise with the loaded config.
func openSQL() (*sql.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, m *database.Migrator, migrations []database.Migration) error) error {
	migrations, err := database.LoadMigrations(migrationsDir)
	if err != nil {
		return err
	}
	db, err := openSQL()
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(cmd.Context(), database.NewMigrator(db), migrations)
}

func runUp(cmd *cobra.Command, _ []string) error {
	return withMigrator(cmd, func(ctx context.Context, m *database.Migrator, migrations []database.Migration) error {
		applied, err := m.Up(ctx, migrations)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No pending migrations")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "Applied migration: %s\n", name)
		}
		return nil
	})
}

func runRollback(cmd *cobra.Command, _ []string) error {
	return withMigrator(cmd, func(ctx context.Context, m *database.Migrator, migrations []database.Migration) error {
		name, err := m.Rollback(ctx, migrations)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully rolled back migration: %s\n", name)
		return nil
	})
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withMigrator(cmd, func(ctx context.Context, m *database.Migrator, migrations []database.Migration) error {
		status, err := m.Status(ctx, migrations)
		if err != nil {
			return err
		}
		for _, s := range status {
			applied := "pending"
			if s.AppliedAt != nil {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", s.Name, applied)
		}
		return nil
	})
}

func runAutoMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Schema synced from models")
	return nil
}
