package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	var types []TokenType
	for _, token := range tokens {
		types = append(types, token.Type)
	}
	return types
}

func TestTokenizeSharedList(t *testing.T) {
	tokens := Tokenize("10 a/ b /c, 11", 0)

	require.Equal(t, []TokenType{TokenSharedList, TokenDelimiter, TokenNumber, TokenEnd}, tokenTypes(tokens))

	list := tokens[0].List
	require.NotNil(t, list)
	assert.Equal(t, "10", list.Number)
	assert.Equal(t, []string{"a", "b", "c"}, list.Letters)
	assert.Equal(t, Span{Start: 0, End: 10}, tokens[0].Span)

	assert.Equal(t, ", ", tokens[1].Value)
	assert.Equal(t, "11", tokens[2].Value)
	assert.Equal(t, Span{Start: 14, End: 14}, tokens[3].Span)
}

func TestTokenizePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		types  []TokenType
		values []string
	}{
		{
			name:   "single letter is a number",
			text:   "10a",
			types:  []TokenType{TokenNumber, TokenEnd},
			values: []string{"10a", "$"},
		},
		{
			name:   "detached single letter is not taken",
			text:   "10 a",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenEnd},
			values: []string{"10", " ", "$"},
		},
		{
			name:   "list needs letters on both sides of the slash",
			text:   "15a/16a",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenNumber, TokenEnd},
			values: []string{"15a", "/", "16a", "$"},
		},
		{
			name:   "dangling slash is a delimiter",
			text:   "10a/",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenEnd},
			values: []string{"10a", "/", "$"},
		},
		{
			name:   "number after a dangling slash",
			text:   "10a/ 11",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenNumber, TokenEnd},
			values: []string{"10a", "/ ", "11", "$"},
		},
		{
			name:   "list keeps letters before a dangling slash",
			text:   "10a/b/",
			types:  []TokenType{TokenSharedList, TokenDelimiter, TokenEnd},
			values: []string{"10a/b", "/", "$"},
		},
		{
			name:   "word glued to number",
			text:   "10and 11",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenNumber, TokenEnd},
			values: []string{"10", "and ", "11", "$"},
		},
		{
			name:   "delimiter words are case insensitive",
			text:   "1, AND 2 With 3 Or 4",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenNumber, TokenDelimiter, TokenNumber, TokenDelimiter, TokenNumber, TokenEnd},
			values: []string{"1", ", AND ", "2", " With ", "3", " Or ", "4", "$"},
		},
		{
			name:   "delimiter word must end",
			text:   "10 order",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenEnd},
			values: []string{"10", " ", "$"},
		},
		{
			name:   "plus",
			text:   "1+2",
			types:  []TokenType{TokenNumber, TokenDelimiter, TokenNumber, TokenEnd},
			values: []string{"1", "+", "2", "$"},
		},
		{
			name:   "nothing to consume",
			text:   "is fun",
			types:  []TokenType{TokenEnd},
			values: []string{"$"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.text, 0)
			assert.Equal(t, tt.types, tokenTypes(tokens))

			var values []string
			for _, token := range tokens {
				values = append(values, token.Value)
			}
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestTokenizeFromOffset(t *testing.T) {
	text := "CS 101"
	tokens := Tokenize(text, 2)

	require.Equal(t, []TokenType{TokenDelimiter, TokenNumber, TokenEnd}, tokenTypes(tokens))
	assert.Equal(t, Span{Start: 3, End: 6}, tokens[1].Span)
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "shared-list", TokenSharedList.String())
	assert.Equal(t, "end", TokenEnd.String())
	assert.Equal(t, "unknown", TokenType(42).String())
}
