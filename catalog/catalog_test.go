package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brequin/brequin/classinfo/db"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexPage = `<html><body>
<div class="header"><a href="/about.html">About</a></div>
<div class="main-content">
<ul>
<li><a href="acen.html">Academic English</a></li>
<li><a href="/catalog/programs-courses/course-descriptions/econ.html">Economics</a></li>
<li><a href="https://registrar.ucsc.edu/catalog/programs-courses/course-descriptions/econ.html">Economics (again)</a></li>
<li><a href="index.html">All departments</a></li>
<li><a href="lit-2.html">Literature, part two</a></li>
<li><a href="catalog.pdf">Catalog PDF</a></li>
</ul>
</div>
</body></html>`

const econPage = `<html><body>
<div class="main-content">
<h2>Lower-Division Courses</h2>
<p><strong>1.</strong> <strong>Introductory Microeconomics.</strong> F,W,S<br/>Introduction to markets &amp; prices. <em>The Staff</em></p>
<p><strong>10A.</strong> <strong>Economic Analysis.</strong> Covers analysis. <strong>10B.</strong> <strong>More Analysis.</strong> Continues 10A.</p>
<h2>Upper-Division Courses</h2>
<p><strong>194.</strong> <strong>Senior Seminar.</strong> Topics vary.</p>
<p style="margin-left: 30px;"><strong>194A.</strong> <strong>Seminar in Trade.</strong> Trade topics.</p>
<p style="margin-left: 30px;"><strong>194B.</strong> <strong>Seminar in Money.</strong> Money topics.</p>
</div>
</body></html>`

func TestParseDepartmentIndex(t *testing.T) {
	departments, err := ParseDepartmentIndex(strings.NewReader(indexPage))
	require.NoError(t, err)

	want := []db.Department{
		{Code: "acen", Name: "Academic English"},
		{Code: "econ", Name: "Economics"},
	}
	if diff := cmp.Diff(want, departments); diff != "" {
		t.Errorf("ParseDepartmentIndex() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDepartment(t *testing.T) {
	courses, err := ParseDepartment("econ", strings.NewReader(econPage))
	require.NoError(t, err)

	want := []db.Course{
		{DepartmentCode: "econ", Number: "001", Name: "Introductory Microeconomics", Description: "F,W,S Introduction to markets & prices. The Staff"},
		{DepartmentCode: "econ", Number: "010A", Name: "Economic Analysis", Description: "Covers analysis."},
		{DepartmentCode: "econ", Number: "010B", Name: "More Analysis", Description: "Continues 10A."},
		{DepartmentCode: "econ", Number: "194A", Name: "Seminar in Trade", Description: "Trade topics."},
		{DepartmentCode: "econ", Number: "194B", Name: "Seminar in Money", Description: "Money topics."},
	}
	if diff := cmp.Diff(want, courses); diff != "" {
		t.Errorf("ParseDepartment() mismatch (-want +got):\n%s", diff)
	}
}

func TestHasCourseNumber(t *testing.T) {
	assert.True(t, HasCourseNumber("1."))
	assert.True(t, HasCourseNumber(" 10A. "))
	assert.False(t, HasCourseNumber("Introductory Microeconomics."))
	assert.False(t, HasCourseNumber("3D Modeling."))
	assert.False(t, HasCourseNumber("10AB."))
}

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexPage))
	})
	mux.HandleFunc("/econ.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(econPage))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClientScrapeDepartments(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL+"/", zerolog.Nop())

	departments, err := client.ScrapeDepartments(context.Background())
	require.NoError(t, err)
	assert.Len(t, departments, 2)
}

func TestClientScrapeDepartmentNotFound(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, zerolog.Nop())

	_, err := client.ScrapeDepartment(context.Background(), "acen")
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestClientBuildDatabase(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, zerolog.Nop())

	departments := []db.Department{{Code: "acen", Name: "Academic English"}, {Code: "econ", Name: "Economics"}}
	courseDatabase, err := client.BuildDatabase(context.Background(), departments, 2)
	require.NoError(t, err)

	assert.NotContains(t, courseDatabase.Departments, "acen")
	require.Contains(t, courseDatabase.Departments, "econ")
	assert.Equal(t, "Economics", courseDatabase.Departments["econ"].Name)

	course, found := courseDatabase.Course("econ", "010B")
	require.True(t, found)
	assert.Equal(t, "More Analysis", course.Name)
}

func TestClientBuildDatabaseCancelled(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.BuildDatabase(ctx, []db.Department{{Code: "econ"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultBaseUrl(t *testing.T) {
	client := NewClient("", zerolog.Nop())
	assert.Equal(t, DefaultBaseUrl+"/cmps.html", client.DepartmentUrl("cmps"))
}
