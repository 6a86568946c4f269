package mention

type CourseInfo struct {
	Name        string
	Description string
}

// Catalog is a read-only course table keyed by normalized department and number.
type Catalog interface {
	Course(department, number string) (CourseInfo, bool)
}

// Lookup reports the course for a normalized mention. A missing department or
// number is reported as not found.
func Lookup(m Mention, catalog Catalog) (CourseInfo, bool) {
	if catalog == nil {
		return CourseInfo{}, false
	}
	return catalog.Course(m.Department, m.Number)
}

type Resolved struct {
	Mention Mention
	Course  CourseInfo
}

// LookupAll resolves mentions in order, skipping the ones the catalog lacks.
func LookupAll(mentions Sequence, catalog Catalog) []Resolved {
	var resolved []Resolved
	for _, m := range mentions {
		course, found := Lookup(m, catalog)
		if !found {
			continue
		}
		resolved = append(resolved, Resolved{Mention: m, Course: course})
	}
	return resolved
}
