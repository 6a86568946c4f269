package comment

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brequin/brequin/classinfo/db"
	"github.com/rs/zerolog"
)

type Action int

const (
	ActionAdd Action = iota
	ActionEdit
	ActionNone
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "Comment added."
	case ActionEdit:
		return "Edited comment."
	case ActionNone:
		return "No new mentions."
	case ActionSkip:
		return "No known courses."
	}
	return "Unknown."
}

// Decide picks what to do with a post given the comment already posted on it, if any.
func Decide(mentions []string, existing *db.ExistingComment) Action {
	if existing == nil {
		return ActionAdd
	}
	if db.SameMentions(mentions, existing.Mentions) {
		return ActionNone
	}
	return ActionEdit
}

// Submitter talks to the site the replies are posted on.
type Submitter interface {
	Add(ctx context.Context, postId string, body string) (commentId string, err error)
	Edit(ctx context.Context, commentId string, body string) error
}

// DryRunSubmitter logs replies instead of sending them.
type DryRunSubmitter struct {
	Logger zerolog.Logger
}

func (d DryRunSubmitter) Add(ctx context.Context, postId string, body string) (string, error) {
	d.Logger.Info().Str("post", postId).Int("bytes", len(body)).Msg("dry run: would add comment")
	return "", nil
}

func (d DryRunSubmitter) Edit(ctx context.Context, commentId string, body string) error {
	d.Logger.Info().Str("comment", commentId).Int("bytes", len(body)).Msg("dry run: would edit comment")
	return nil
}

// CommentStore persists the comments already posted.
type CommentStore interface {
	UpsertExistingComment(ctx context.Context, existingComment db.ExistingComment) error
}

// Poster applies the decision for each post and records what happened as a
// tab separated row: post id, title, action, current mentions, previous mentions.
type Poster struct {
	Formatter *Formatter
	Submitter Submitter
	Store     CommentStore
	Existing  map[string]db.ExistingComment
	// Persist saves each submitted comment to Store and Existing so the next run edits
	// it instead of adding another. It needs a Submitter that returns real comment ids,
	// so the dry run leaves it false.
	Persist bool
	Logger  zerolog.Logger

	rows *csv.Writer
}

func NewPoster(formatter *Formatter, submitter Submitter, store CommentStore, existing map[string]db.ExistingComment, out io.Writer, logger zerolog.Logger) *Poster {
	rows := csv.NewWriter(out)
	rows.Comma = '\t'
	if existing == nil {
		existing = make(map[string]db.ExistingComment)
	}
	return &Poster{
		Formatter: formatter,
		Submitter: submitter,
		Store:     store,
		Existing:  existing,
		Logger:    logger,
		rows:      rows,
	}
}

func (p *Poster) Post(ctx context.Context, postMentions db.PostMentions) (Action, error) {
	var existing *db.ExistingComment
	var previous []string
	if found, ok := p.Existing[postMentions.PostId]; ok {
		existing = &found
		previous = found.Mentions
	}

	action := Decide(postMentions.Mentions, existing)
	if action == ActionNone {
		return action, p.writeRow(postMentions, action, previous)
	}

	body, ok := p.Formatter.Format(postMentions.Mentions)
	if !ok {
		return ActionSkip, p.writeRow(postMentions, ActionSkip, previous)
	}

	commentId := ""
	switch action {
	case ActionAdd:
		id, err := p.Submitter.Add(ctx, postMentions.PostId, body)
		if err != nil {
			return action, fmt.Errorf("add comment to %v: %w", postMentions.PostId, err)
		}
		commentId = id
	case ActionEdit:
		commentId = existing.CommentId
		if err := p.Submitter.Edit(ctx, commentId, body); err != nil {
			return action, fmt.Errorf("edit comment %v: %w", commentId, err)
		}
	}

	if p.Persist {
		if err := p.remember(ctx, db.ExistingComment{PostId: postMentions.PostId, CommentId: commentId, Mentions: postMentions.Mentions}); err != nil {
			return action, err
		}
	}

	return action, p.writeRow(postMentions, action, previous)
}

func (p *Poster) remember(ctx context.Context, existingComment db.ExistingComment) error {
	if existingComment.CommentId == "" {
		return errors.New("submitter returned no comment id")
	}
	if p.Store != nil {
		if err := p.Store.UpsertExistingComment(ctx, existingComment); err != nil {
			return fmt.Errorf("save comment %v: %w", existingComment.CommentId, err)
		}
	}
	p.Existing[existingComment.PostId] = existingComment
	return nil
}

func (p *Poster) writeRow(postMentions db.PostMentions, action Action, previous []string) error {
	p.Logger.Debug().Str("post", postMentions.PostId).Stringer("action", action).Msg("post handled")

	row := []string{
		postMentions.PostId,
		postMentions.Title,
		action.String(),
		strings.Join(postMentions.Mentions, ", "),
		strings.Join(previous, ", "),
	}
	if err := p.rows.Write(row); err != nil {
		return err
	}
	p.rows.Flush()
	return p.rows.Error()
}
