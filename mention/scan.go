package mention

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Scanner finds mentions using a fixed vocabulary. It holds no mutable state and can
// be shared between goroutines.
type Scanner struct {
	Vocabulary *Vocabulary

	// FollowDepartments restarts the department search after each number run, so
	// "CS 10 and MATH 5" yields cs 10 and math 5. When false only the first
	// department token in the text is used.
	FollowDepartments bool
}

func NewScanner(vocabulary *Vocabulary) *Scanner {
	return &Scanner{Vocabulary: vocabulary}
}

// Scan scans text with the first-department-only behavior.
func Scan(text string, vocabulary *Vocabulary) Sequence {
	return NewScanner(vocabulary).Scan(text)
}

// Scan returns the mentions in text in order of appearance. Text without a
// department token yields an empty sequence.
func (s *Scanner) Scan(text string) Sequence {
	mentions := Sequence{}

	pos := 0
	for pos < len(text) {
		department, _, end, found := s.Vocabulary.find(text, pos)
		if !found {
			break
		}

		tokens := Tokenize(text, end)
		mentions = append(mentions, mentionsFromTokens(department, tokens)...)

		if !s.FollowDepartments {
			break
		}
		pos = tokens[len(tokens)-1].Span.End
		if pos <= end {
			pos = end
		}
	}

	return mentions
}

func mentionsFromTokens(department string, tokens []Token) Sequence {
	var mentions Sequence
	for _, token := range tokens {
		switch token.Type {
		case TokenSharedList:
			mentions = append(mentions, Expand(department, *token.List)...)
		case TokenNumber:
			mentions = append(mentions, Mention{Department: department, Number: token.Value, Span: token.Span})
		}
	}
	return mentions
}

// ScanAll scans independent texts in parallel with at most workers goroutines. The
// result at index i belongs to texts[i].
func (s *Scanner) ScanAll(ctx context.Context, texts []string, workers int) ([]Sequence, error) {
	results := make([]Sequence, len(texts))

	group, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	for i, text := range texts {
		i, text := i, text
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Scan(text)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
