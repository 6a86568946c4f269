package db

import (
	"sort"

	"github.com/brequin/brequin/classinfo/mention"
)

type Course struct {
	DepartmentCode string
	Number         string
	Name           string
	Description    string
}

type Department struct {
	Code    string
	Name    string
	Courses map[string]Course
}

func NewDepartment(code, name string) *Department {
	return &Department{Code: code, Name: name, Courses: make(map[string]Course)}
}

func (d *Department) AddCourse(course Course) {
	d.Courses[course.Number] = course
}

// CourseDatabase maps department code -> padded course number -> course. It is
// filled once and only read afterwards.
type CourseDatabase struct {
	Departments map[string]*Department
}

func NewCourseDatabase() *CourseDatabase {
	return &CourseDatabase{Departments: make(map[string]*Department)}
}

func (c *CourseDatabase) AddDepartment(department *Department) {
	c.Departments[department.Code] = department
}

func (c *CourseDatabase) Course(departmentCode, number string) (mention.CourseInfo, bool) {
	department, found := c.Departments[departmentCode]
	if !found {
		return mention.CourseInfo{}, false
	}
	course, found := department.Courses[number]
	if !found {
		return mention.CourseInfo{}, false
	}
	return mention.CourseInfo{Name: course.Name, Description: course.Description}, true
}

// Courses returns every course ordered by department and number.
func (c *CourseDatabase) Courses() []Course {
	var courses []Course
	for _, department := range c.Departments {
		for _, course := range department.Courses {
			courses = append(courses, course)
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].DepartmentCode != courses[j].DepartmentCode {
			return courses[i].DepartmentCode < courses[j].DepartmentCode
		}
		return courses[i].Number < courses[j].Number
	})
	return courses
}

// PostMentions is the list of mentions found in one post, e.g. ["econ 1", "cmps 5j"].
type PostMentions struct {
	PostId   string
	Title    string
	Mentions []string
}

// ExistingComment is a comment already posted with course info.
type ExistingComment struct {
	PostId    string
	CommentId string
	Mentions  []string
}

func SameMentions(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
