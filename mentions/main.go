package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/brequin/brequin/classinfo/config"
	"github.com/brequin/brequin/classinfo/db"
	"github.com/brequin/brequin/classinfo/mention"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// Post is one line of the input, as exported from the forum.
type Post struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	SelfText string `json:"selftext"`
}

func main() {
	var input string
	var followDepartments bool

	command := &cobra.Command{
		Use:   "mentions",
		Short: "Find course mentions in posts (JSON lines) and store them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), input, followDepartments)
		},
	}
	command.Flags().StringVarP(&input, "input", "i", "-", "JSON lines file of posts, - for stdin")
	command.Flags().BoolVar(&followDepartments, "follow-departments", false, "pick up later department names in the same text")

	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func readPosts(r io.Reader) ([]Post, error) {
	var posts []Post

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var post Post
		if err := json.Unmarshal(scanner.Bytes(), &post); err != nil {
			return nil, fmt.Errorf("line %v: %w", line, err)
		}
		posts = append(posts, post)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// findMentions scans every post's title and body. Posts without mentions are left out.
// Stored mentions are normalized but not padded, e.g. "cmps 10A".
func findMentions(ctx context.Context, scanner *mention.Scanner, posts []Post, workers int) ([]db.PostMentions, error) {
	texts := make([]string, 0, 2*len(posts))
	for _, post := range posts {
		texts = append(texts, post.Title, post.SelfText)
	}

	sequences, err := scanner.ScanAll(ctx, texts, workers)
	if err != nil {
		return nil, err
	}

	normalizer := mention.NewNormalizer(scanner.Vocabulary, nil)

	var postsMentions []db.PostMentions
	for i, post := range posts {
		found := append(append(mention.Sequence{}, sequences[2*i]...), sequences[2*i+1]...)
		if len(found) == 0 {
			continue
		}
		postsMentions = append(postsMentions, db.PostMentions{
			PostId:   post.Id,
			Title:    post.Title,
			Mentions: normalizer.NormalizeAll(found).Keys(),
		})
	}
	return postsMentions, nil
}

func run(ctx context.Context, input string, followDepartments bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	if err := cfg.RequireDatabase(); err != nil {
		logger.Error().Err(err).Send()
		return err
	}

	vocabulary, err := mention.LoadVocabularyFile(cfg.VocabularyPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.VocabularyPath).Msg("Unable to load vocabulary")
		return err
	}

	var r io.Reader = os.Stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			logger.Error().Err(err).Msg("Unable to open input")
			return err
		}
		defer file.Close()
		r = file
	}

	posts, err := readPosts(r)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to read posts")
		return err
	}

	scanner := mention.NewScanner(vocabulary)
	scanner.FollowDepartments = followDepartments

	postsMentions, err := findMentions(ctx, scanner, posts, cfg.Workers)
	if err != nil {
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

	if err := database.InsertPostsMentions(ctx, postsMentions); err != nil {
		logger.Error().Err(err).Msg("Unable to insert mentions")
		return err
	}

	logger.Info().Int("posts", len(posts)).Int("with_mentions", len(postsMentions)).Msg("mentions saved")
	return nil
}
