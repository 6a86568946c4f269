package main

import (
	"context"
	"strings"
	"testing"

	"github.com/brequin/brequin/classinfo/mention"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsInput = `{"id": "a1", "title": "CS 10a/b/c worth it?", "selftext": "Also thinking about ECON 1 & 102"}

{"id": "a2", "title": "Where is the library", "selftext": "115, 116, and 117"}
{"id": "a3", "title": "Schedule", "selftext": "take CE 12 and MATH 19a"}
`

func TestReadPosts(t *testing.T) {
	posts, err := readPosts(strings.NewReader(postsInput))
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, Post{Id: "a1", Title: "CS 10a/b/c worth it?", SelfText: "Also thinking about ECON 1 & 102"}, posts[0])

	_, err = readPosts(strings.NewReader("{\"id\": \n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestFindMentions(t *testing.T) {
	posts, err := readPosts(strings.NewReader(postsInput))
	require.NoError(t, err)

	postsMentions, err := findMentions(context.Background(), mention.NewScanner(mention.DefaultVocabulary()), posts, 2)
	require.NoError(t, err)

	require.Len(t, postsMentions, 2)
	assert.Equal(t, "a1", postsMentions[0].PostId)
	assert.Equal(t, []string{"cmps 10A", "cmps 10B", "cmps 10C", "econ 1", "econ 102"}, postsMentions[0].Mentions)
	assert.Equal(t, "a3", postsMentions[1].PostId)
	assert.Equal(t, []string{"cmpe 12"}, postsMentions[1].Mentions)
}

func TestFindMentionsFollowDepartments(t *testing.T) {
	scanner := mention.NewScanner(mention.DefaultVocabulary())
	scanner.FollowDepartments = true

	postsMentions, err := findMentions(context.Background(), scanner, []Post{{Id: "a3", SelfText: "take CE 12 and MATH 19a"}}, 1)
	require.NoError(t, err)

	require.Len(t, postsMentions, 1)
	assert.Equal(t, []string{"cmpe 12", "math 19A"}, postsMentions[0].Mentions)
}
