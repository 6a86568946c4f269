package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapCatalog map[string]map[string]CourseInfo

func (c mapCatalog) Course(department, number string) (CourseInfo, bool) {
	courses, found := c[department]
	if !found {
		return CourseInfo{}, false
	}
	course, found := courses[number]
	return course, found
}

func TestLookup(t *testing.T) {
	catalog := mapCatalog{
		"econ": {
			"001": {Name: "Introductory Microeconomics", Description: "Supply and demand."},
		},
	}

	course, found := Lookup(Mention{Department: "econ", Number: "001"}, catalog)
	assert.True(t, found)
	assert.Equal(t, "Introductory Microeconomics", course.Name)
	assert.Equal(t, "Supply and demand.", course.Description)

	_, found = Lookup(Mention{Department: "econ", Number: "999"}, catalog)
	assert.False(t, found)

	_, found = Lookup(Mention{Department: "cmps", Number: "001"}, catalog)
	assert.False(t, found)

	_, found = Lookup(Mention{Department: "econ", Number: "001"}, nil)
	assert.False(t, found)
}

func TestLookupAllSkipsMissing(t *testing.T) {
	catalog := mapCatalog{
		"cmps": {
			"010A": {Name: "Intro A"},
			"010C": {Name: "Intro C"},
		},
	}
	vocabulary := DefaultVocabulary()
	mentions := NewNormalizer(vocabulary, padThree).NormalizeAll(Scan("CS 10a/b/c", vocabulary))

	resolved := LookupAll(mentions, catalog)

	var names []string
	for _, r := range resolved {
		names = append(names, r.Course.Name)
	}
	assert.Equal(t, []string{"Intro A", "Intro C"}, names)
	assert.Equal(t, "010C", resolved[1].Mention.Number)
}
