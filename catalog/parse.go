package catalog

import (
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brequin/brequin/classinfo/db"
	"golang.org/x/net/html"
)

const indentedStyle = "margin-left: 30px;"

var courseNumberRegexp = regexp.MustCompile(`^[0-9]+[A-Za-z]?\.`)
var departmentCodeRegexp = regexp.MustCompile(`^[a-z]+$`)

// HasCourseNumber reports whether text starts like a course number heading, e.g. "1." or "1A.".
func HasCourseNumber(text string) bool {
	return courseNumberRegexp.MatchString(strings.TrimSpace(text))
}

// ParseDepartmentIndex reads the departments linked from the course descriptions index.
func ParseDepartmentIndex(r io.Reader) ([]db.Department, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var departments []db.Department
	seen := make(map[string]bool)

	document.Find("div.main-content a[href]").Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		parsed, err := url.Parse(href)
		if err != nil {
			return
		}

		file := path.Base(parsed.Path)
		code, found := strings.CutSuffix(file, ".html")
		if !found || code == "index" || !departmentCodeRegexp.MatchString(code) || seen[code] {
			return
		}
		seen[code] = true

		name := strings.Join(strings.Fields(link.Text()), " ")
		departments = append(departments, db.Department{Code: code, Name: name})
	})

	return departments, nil
}

// ParseDepartment extracts the courses of one department page. Each course starts
// with a <strong> holding its number ("10A."), followed by a <strong> holding its
// name and then the description text.
func ParseDepartment(departmentCode string, r io.Reader) ([]db.Course, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var courses []db.Course

	document.Find("div.main-content strong").Each(func(i int, numberTag *goquery.Selection) {
		numberText := strings.TrimSpace(numberTag.Text())
		if !HasCourseNumber(numberText) {
			return
		}

		// Headers of a block of indented sub-courses have no description of their own
		if isLastNumberInParagraph(numberTag) && isNextParagraphIndented(numberTag) && !inIndentedParagraph(numberTag) {
			return
		}

		nameTag := numberTag.Next()
		if nameTag.Length() == 0 || goquery.NodeName(nameTag) != "strong" {
			return
		}

		number, _, _ := strings.Cut(numberText, ".")
		name := strings.TrimSuffix(strings.TrimSpace(nameTag.Text()), ".")

		courses = append(courses, db.Course{
			DepartmentCode: departmentCode,
			Number:         db.PadCatalogNumber(number),
			Name:           name,
			Description:    descriptionAfter(nameTag.Get(0)),
		})
	})

	return courses, nil
}

func isLastNumberInParagraph(numberTag *goquery.Selection) bool {
	following := numberTag.NextAllFiltered("strong").FilterFunction(func(i int, s *goquery.Selection) bool {
		return HasCourseNumber(s.Text())
	})
	return following.Length() == 0
}

func isNextParagraphIndented(numberTag *goquery.Selection) bool {
	style, _ := numberTag.Parent().Next().Attr("style")
	return style == indentedStyle
}

func inIndentedParagraph(numberTag *goquery.Selection) bool {
	style, _ := numberTag.Parent().Attr("style")
	return style == indentedStyle
}

// descriptionAfter collects the text following node up to the next course number.
func descriptionAfter(node *html.Node) string {
	var builder strings.Builder

	for sibling := node.NextSibling; sibling != nil; sibling = sibling.NextSibling {
		switch sibling.Type {
		case html.TextNode:
			builder.WriteString(sibling.Data)
		case html.ElementNode:
			text := goquery.NewDocumentFromNode(sibling).Text()
			if sibling.Data == "strong" && HasCourseNumber(text) {
				return cleanDescription(builder.String())
			}
			if sibling.Data == "br" {
				builder.WriteString(" ")
				continue
			}
			builder.WriteString(text)
		}
	}

	return cleanDescription(builder.String())
}

func cleanDescription(description string) string {
	description = strings.Join(strings.Fields(description), " ")
	return strings.TrimLeft(description, ". ")
}
