// Package catalog scrapes the registrar's course description pages into course tables.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/brequin/brequin/classinfo/db"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseUrl = "https://registrar.ucsc.edu/catalog/programs-courses/course-descriptions"

var ErrUnexpectedStatus = errors.New("unexpected status")

type Client struct {
	HTTP    *http.Client
	BaseUrl string
	Logger  zerolog.Logger
}

func NewClient(baseUrl string, logger zerolog.Logger) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{HTTP: http.DefaultClient, BaseUrl: strings.TrimSuffix(baseUrl, "/"), Logger: logger}
}

func (c *Client) IndexUrl() string {
	return c.BaseUrl + "/index.html"
}

func (c *Client) DepartmentUrl(code string) string {
	return c.BaseUrl + "/" + code + ".html"
}

func (c *Client) fetch(ctx context.Context, url string, parse func(io.Reader) error) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	response, err := c.HTTP.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %v returned %v", ErrUnexpectedStatus, url, response.StatusCode)
	}

	return parse(response.Body)
}

// ScrapeDepartments lists the departments linked from the course descriptions index.
func (c *Client) ScrapeDepartments(ctx context.Context) ([]db.Department, error) {
	var departments []db.Department
	err := c.fetch(ctx, c.IndexUrl(), func(r io.Reader) error {
		var err error
		departments, err = ParseDepartmentIndex(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("scrape department index: %w", err)
	}
	return departments, nil
}

// ScrapeDepartment fetches and parses the course descriptions of one department.
func (c *Client) ScrapeDepartment(ctx context.Context, code string) ([]db.Course, error) {
	c.Logger.Debug().Str("department", code).Msg("scraping department")

	var courses []db.Course
	err := c.fetch(ctx, c.DepartmentUrl(code), func(r io.Reader) error {
		var err error
		courses, err = ParseDepartment(code, r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("scrape department %v: %w", code, err)
	}
	return courses, nil
}

// BuildDatabase scrapes every department with at most workers concurrent requests.
// A department that fails to scrape is logged and left out.
func (c *Client) BuildDatabase(ctx context.Context, departments []db.Department, workers int) (*db.CourseDatabase, error) {
	courseDatabase := db.NewCourseDatabase()
	var databaseMutex sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	for _, department := range departments {
		department := department
		group.Go(func() error {
			courses, err := c.ScrapeDepartment(ctx, department.Code)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.Logger.Warn().Err(err).Str("department", department.Code).Msg("Unable to scrape department; skipping")
				return nil
			}

			scraped := db.NewDepartment(department.Code, department.Name)
			for _, course := range courses {
				scraped.AddCourse(course)
			}

			databaseMutex.Lock()
			courseDatabase.AddDepartment(scraped)
			databaseMutex.Unlock()

			c.Logger.Info().Str("department", department.Code).Int("courses", len(courses)).Msg("scraped department")
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return courseDatabase, nil
}
