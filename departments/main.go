package main

import (
	"context"
	"os"

	"github.com/brequin/brequin/classinfo/catalog"
	"github.com/brequin/brequin/classinfo/config"
	"github.com/brequin/brequin/classinfo/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func main() {
	command := &cobra.Command{
		Use:   "departments",
		Short: "Scrape the registrar's department list into the departments table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	if err := cfg.RequireDatabase(); err != nil {
		logger.Error().Err(err).Send()
		return err
	}

	client := catalog.NewClient(cfg.CatalogBaseUrl, logger)
	departments, err := client.ScrapeDepartments(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to scrape departments")
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseConnectionString)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to connect to database")
		return err
	}
	defer pool.Close()
	database := db.Database{Pool: pool}

	if err := database.EnsureSchema(ctx); err != nil {
		logger.Error().Err(err).Msg("Unable to create tables")
		return err
	}

	if err := database.InsertDepartments(ctx, departments); err != nil {
		logger.Error().Err(err).Msg("Unable to insert departments")
		return err
	}

	logger.Info().Int("departments", len(departments)).Msg("departments saved")
	return nil
}
