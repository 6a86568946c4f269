// Package comment builds the course info replies posted under threads that mention
// courses, and decides whether an existing reply needs to change.
package comment

import (
	"fmt"
	"strings"

	"github.com/brequin/brequin/classinfo/db"
	"github.com/brequin/brequin/classinfo/mention"
	lru "github.com/hashicorp/golang-lru/v2"
)

const header = "Classes mentioned in this thread:\n\n&nbsp;\n\n"
const spacer = "&nbsp;\n\n"
const footer = "---------------\n\n&nbsp;\n\n" +
	"*I am a bot. If I screw up, please comment or message me. " +
	"[I'm open source!](https://github.com/pfroud/ucsc-class-info-bot)*"

const courseCacheSize = 512

// Formatter renders replies from a course catalog. Stored mention strings such as
// "econ 1" are parsed, normalized and looked up before rendering.
type Formatter struct {
	catalog    mention.Catalog
	normalizer mention.Normalizer
	courses    *lru.Cache[string, string]
}

func NewFormatter(catalog mention.Catalog, normalizer mention.Normalizer) (*Formatter, error) {
	courses, err := lru.New[string, string](courseCacheSize)
	if err != nil {
		return nil, err
	}
	return &Formatter{catalog: catalog, normalizer: normalizer, courses: courses}, nil
}

// ParseMentionKey turns a stored mention string like "cmps 5j" back into a Mention.
func ParseMentionKey(key string) (mention.Mention, bool) {
	department, number, found := strings.Cut(strings.TrimSpace(key), " ")
	if !found || department == "" || strings.TrimSpace(number) == "" {
		return mention.Mention{}, false
	}
	return mention.Mention{Department: department, Number: strings.TrimSpace(number)}, true
}

// CourseMarkdown renders one course, e.g.
//
//	**ECON 1: Intro to Stuff**
//	>We learn about econ and things.
func CourseMarkdown(department, number string, course mention.CourseInfo) string {
	return fmt.Sprintf("**%v %v: %v**\n>%v\n\n", strings.ToUpper(department), db.UnpadCatalogNumber(number), course.Name, course.Description)
}

// course returns the catalog key and markdown for a stored mention string.
func (f *Formatter) course(key string) (string, string, bool) {
	m, ok := ParseMentionKey(key)
	if !ok {
		return "", "", false
	}
	m = f.normalizer.Normalize(m)

	courseKey := db.CourseKey(m.Department, m.Number)
	if markdown, found := f.courses.Get(courseKey); found {
		return courseKey, markdown, true
	}

	course, found := mention.Lookup(m, f.catalog)
	if !found {
		return "", "", false
	}

	markdown := CourseMarkdown(m.Department, m.Number, course)
	f.courses.Add(courseKey, markdown)
	return courseKey, markdown, true
}

// Format returns the reply for mentions. Mentions missing from the catalog are
// skipped, and a course named more than once is written once, where it first appears.
// It reports false when there is nothing to say.
func (f *Formatter) Format(mentions []string) (string, bool) {
	if len(mentions) == 0 {
		return "", false
	}

	var builder strings.Builder
	builder.WriteString(header)

	written := make(map[string]bool, len(mentions))
	for _, key := range mentions {
		courseKey, markdown, ok := f.course(key)
		if !ok || written[courseKey] {
			continue
		}
		written[courseKey] = true
		builder.WriteString(markdown)
		builder.WriteString(spacer)
	}

	if len(written) == 0 {
		return "", false
	}

	builder.WriteString(footer)
	return builder.String(), true
}
