package mention

import (
	"fmt"
	"strings"
)

// Expand produces one mention per letter of list, all sharing its number. Every
// mention carries the span of the whole list. Calling Expand with fewer than two
// letters is a programming error.
func Expand(department string, list SharedNumberList) Sequence {
	if len(list.Letters) < 2 {
		panic(fmt.Sprintf("mention: shared number list %q has %d letters", list.Number, len(list.Letters)))
	}

	number := strings.TrimSpace(list.Number)
	mentions := make(Sequence, 0, len(list.Letters))
	for _, letter := range list.Letters {
		mentions = append(mentions, Mention{
			Department: department,
			Number:     number + strings.TrimSpace(letter),
			Span:       list.Span,
		})
	}
	return mentions
}
