package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/migration"
	"helpdesk/internal/shared/logger"
)

var (
	env     string
	name    string
	steps   int
	version int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newForceCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := initMigrator()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := mg.Up(); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := initMigrator()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := mg.Down(steps); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			logger.Info("migrations rolled back", "steps", steps)
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := initMigrator()
			if err != nil {
				return err
			}
			defer database.Close()

			current, dirty, err := mg.Status()
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}
			fmt.Printf("version: %d\ndirty: %t\n", current, dirty)
			return nil
		},
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			up, down, err := migration.Generate(name)
			if err != nil {
				return fmt.Errorf("failed to create migration: %w", err)
			}
			fmt.Printf("created:\n  %s\n  %s\n", up, down)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the migration version",
		Long:  `Set the migration version without running migrations. Use to recover from a dirty state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := initMigrator()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := mg.Force(version); err != nil {
				return fmt.Errorf("failed to force version: %w", err)
			}
			logger.Info("migration version forced", "version", version)
			return nil
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "Version to force (required)")
	cmd.MarkFlagRequired("version")
	return cmd
}

func initMigrator() (*migration.Migrator, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return migration.NewMigrator(database.Get())
}
