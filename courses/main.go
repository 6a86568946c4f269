package main

import (
	"context"
	"os"

	"github.com/brequin/brequin/classinfo/catalog"
	"github.com/brequin/brequin/classinfo/config"
	"github.com/brequin/brequin/classinfo/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	var only []string

	command := &cobra.Command{
		Use:   "courses",
		Short: "Scrape every department's course descriptions into the courses table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), only)
		},
	}
	command.Flags().StringSliceVar(&only, "department", nil, "scrape only these department codes")

	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// selectDepartments keeps the stored departments named in only, adding unknown codes
// without a name. An empty only keeps everything.
func selectDepartments(stored []db.Department, only []string) []db.Department {
	if len(only) == 0 {
		return stored
	}

	byCode := make(map[string]db.Department, len(stored))
	for _, department := range stored {
		byCode[department.Code] = department
	}

	var selected []db.Department
	for _, code := range only {
		department, found := byCode[code]
		if !found {
			department = db.Department{Code: code}
		}
		selected = append(selected, department)
	}
	return selected
}

func run(ctx context.Context, only []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	if err := cfg.RequireDatabase(); err != nil {
		logger.Error().Err(err).Send()
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

	stored, err := database.ListDepartments(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to list departments")
		return err
	}

	departments := selectDepartments(stored, only)
	if len(departments) == 0 {
		logger.Warn().Msg("No departments to scrape; run departments first")
		return nil
	}

	client := catalog.NewClient(cfg.CatalogBaseUrl, logger)
	courseDatabase, err := client.BuildDatabase(ctx, departments, cfg.Workers)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to build course database")
		return err
	}

	return save(ctx, database, courseDatabase, logger)
}

func save(ctx context.Context, database db.Database, courseDatabase *db.CourseDatabase, logger zerolog.Logger) error {
	courses := courseDatabase.Courses()
	if err := database.InsertCourses(ctx, courses); err != nil {
		logger.Error().Err(err).Msg("Unable to insert courses")
		return err
	}

	logger.Info().Int("departments", len(courseDatabase.Departments)).Int("courses", len(courses)).Msg("courses saved")
	return nil
}
