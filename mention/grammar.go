package mention

import (
	"strings"
)

type TokenType int

const (
	TokenSharedList TokenType = iota
	TokenNumber
	TokenDelimiter
	TokenEnd
)

func (t TokenType) String() string {
	switch t {
	case TokenSharedList:
		return "shared-list"
	case TokenNumber:
		return "number"
	case TokenDelimiter:
		return "delimiter"
	case TokenEnd:
		return "end"
	}
	return "unknown"
}

type Token struct {
	Type  TokenType
	Value string
	Span  Span
	// Set for TokenSharedList only
	List *SharedNumberList
}

var delimiterWords = []string{"and", "with", "or"}

// lexer walks the number run that follows a department token.
type lexer struct {
	text string
	pos  int
}

// Tokenize consumes the maximal run of number tokens and delimiters starting at byte
// offset pos of text. The returned slice always ends with a TokenEnd whose span marks
// where the run stopped.
func Tokenize(text string, pos int) []Token {
	l := lexer{text: text, pos: pos}

	var tokens []Token
	for {
		if token, ok := l.sharedNumberList(); ok {
			tokens = append(tokens, token)
			continue
		}
		if token, ok := l.numberToken(); ok {
			tokens = append(tokens, token)
			continue
		}
		if token, ok := l.delimiterRun(); ok {
			tokens = append(tokens, token)
			continue
		}
		break
	}

	tokens = append(tokens, Token{Type: TokenEnd, Value: "$", Span: Span{Start: l.pos, End: l.pos}})
	return tokens
}

// sharedNumberList matches `spaces? digits spaces? (letter spaces? / spaces?)+ letter`.
// It only advances the lexer when at least two letters were found.
func (l *lexer) sharedNumberList() (Token, bool) {
	pos := skipSpaces(l.text, l.pos)
	start := pos

	digitsEnd := skipDigits(l.text, pos)
	if digitsEnd == pos {
		return Token{}, false
	}
	number := l.text[pos:digitsEnd]
	pos = skipSpaces(l.text, digitsEnd)

	var letters []string
	end := pos
	for {
		if !isLetterAt(l.text, pos) || isLetterAt(l.text, pos+1) {
			break
		}
		letters = append(letters, l.text[pos:pos+1])
		end = pos + 1

		next := skipSpaces(l.text, end)
		if next >= len(l.text) || l.text[next] != '/' {
			break
		}
		pos = skipSpaces(l.text, next+1)
	}

	// A single letter is a plain numbered course, not a list
	if len(letters) < 2 {
		return Token{}, false
	}

	l.pos = end
	span := Span{Start: start, End: end}
	return Token{
		Type:  TokenSharedList,
		Value: l.text[start:end],
		Span:  span,
		List:  &SharedNumberList{Number: number, Letters: letters, Span: span},
	}, true
}

// numberToken matches digits with an optional single attached letter.
func (l *lexer) numberToken() (Token, bool) {
	start := l.pos
	end := skipDigits(l.text, start)
	if end == start {
		return Token{}, false
	}
	if isLetterAt(l.text, end) && !isLetterAt(l.text, end+1) {
		end++
	}

	l.pos = end
	return Token{Type: TokenNumber, Value: l.text[start:end], Span: Span{Start: start, End: end}}, true
}

// delimiterRun matches any repetition of , / & + blanks and the words or/and/with.
func (l *lexer) delimiterRun() (Token, bool) {
	start := l.pos
	pos := start

loop:
	for pos < len(l.text) {
		switch l.text[pos] {
		case ',', '/', ' ', '\t', '&', '+':
			pos++
			continue loop
		}
		for _, word := range delimiterWords {
			end := pos + len(word)
			if end <= len(l.text) && strings.EqualFold(l.text[pos:end], word) && !isLetterAt(l.text, end) {
				pos = end
				continue loop
			}
		}
		break
	}

	if pos == start {
		return Token{}, false
	}

	l.pos = pos
	return Token{Type: TokenDelimiter, Value: l.text[start:pos], Span: Span{Start: start, End: pos}}, true
}

func skipSpaces(text string, pos int) int {
	for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t') {
		pos++
	}
	return pos
}

func skipDigits(text string, pos int) int {
	for pos < len(text) && text[pos] >= '0' && text[pos] <= '9' {
		pos++
	}
	return pos
}

func isLetterAt(text string, pos int) bool {
	if pos < 0 || pos >= len(text) {
		return false
	}
	c := text[pos]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
