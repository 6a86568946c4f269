package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brequin/brequin/classinfo/comment"
	"github.com/brequin/brequin/classinfo/config"
	"github.com/brequin/brequin/classinfo/db"
	"github.com/brequin/brequin/classinfo/mention"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	var limit int

	command := &cobra.Command{
		Use:   "comments",
		Short: "Build course info replies for posts with mentions (dry run)",
		Long: "Builds course info replies for stored post mentions and prints one tab separated row per post. " +
			"Replies are logged, not sent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), limit)
		},
	}
	command.Flags().IntVarP(&limit, "limit", "n", 0, "handle at most this many posts, 0 for all")

	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, limit int) error {
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
	database := &db.Database{Pool: pool}

	if err := database.EnsureSchema(ctx); err != nil {
		logger.Error().Err(err).Msg("Unable to create tables")
		return err
	}

	courseDatabase, err := database.LoadCourseDatabase(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load course database")
		return err
	}

	existing, err := database.ListExistingComments(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load existing comments")
		return err
	}

	postsMentions, err := database.ListPostsMentions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load post mentions")
		return err
	}
	if limit > 0 && len(postsMentions) > limit {
		postsMentions = postsMentions[:limit]
	}

	vocabulary, err := mention.LoadVocabularyFile(cfg.VocabularyPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.VocabularyPath).Msg("Unable to load vocabulary")
		return err
	}

	normalizer := mention.NewNormalizer(vocabulary, db.PadCatalogNumber)
	formatter, err := comment.NewFormatter(courseDatabase, normalizer)
	if err != nil {
		return err
	}

	poster := comment.NewPoster(formatter, comment.DryRunSubmitter{Logger: logger}, database, existing, os.Stdout, logger)

	return postAll(ctx, poster, postsMentions, logger)
}

// postAll handles every post even when some fail, and reports an error if any did.
func postAll(ctx context.Context, poster *comment.Poster, postsMentions []db.PostMentions, logger zerolog.Logger) error {
	failed := 0
	for _, postMentions := range postsMentions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := poster.Post(ctx, postMentions); err != nil {
			logger.Error().Err(err).Str("post", postMentions.PostId).Msg("Unable to post comment")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%v of %v posts failed", failed, len(postsMentions))
	}
	return nil
}
