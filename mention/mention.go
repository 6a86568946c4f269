// Package mention finds informal course mentions such as "CS 10a/b/c" or
// "ECON 1 & 102" in free text and turns them into catalog keys.
package mention

import "fmt"

// Span is a half-open byte range into the scanned text.
type Span struct {
	Start int
	End   int
}

// Mention is one referenced course. Number holds the digits and the optional letter.
type Mention struct {
	Department string
	Number     string
	Span       Span
}

// Key renders the mention the way it is stored, e.g. "econ 1".
func (m Mention) Key() string {
	return fmt.Sprintf("%v %v", m.Department, m.Number)
}

func (m Mention) String() string {
	return m.Key()
}

// SharedNumberList is a course number followed by two or more letters, as in "129A/B/C".
type SharedNumberList struct {
	Number  string
	Letters []string
	Span    Span
}

// Sequence is the ordered result of scanning one text. Duplicates are kept.
type Sequence []Mention

func (s Sequence) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, m := range s {
		keys = append(keys, m.Key())
	}
	return keys
}
