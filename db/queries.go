package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const listDepartments = `SELECT code, name FROM departments ORDER BY code`
const insertDepartment = `INSERT INTO departments (code, name) VALUES ($1, $2) ON CONFLICT (code) DO UPDATE SET name=EXCLUDED.name`

const listCourses = `SELECT department_code, catalog_number, name, description FROM courses ORDER BY department_code, catalog_number`
const insertCourse = `INSERT INTO courses (department_code, catalog_number, name, description) VALUES ($1, $2, $3, $4) ON CONFLICT (department_code, catalog_number) DO UPDATE SET name=EXCLUDED.name, description=EXCLUDED.description`

const listPostsMentions = `SELECT post_id, title, mentions FROM posts_mentions ORDER BY post_id`
const insertPostMentions = `INSERT INTO posts_mentions (post_id, title, mentions) VALUES ($1, $2, $3) ON CONFLICT (post_id) DO UPDATE SET title=EXCLUDED.title, mentions=EXCLUDED.mentions`

const listExistingComments = `SELECT post_id, comment_id, mentions FROM posts_comments ORDER BY post_id`
const upsertExistingComment = `INSERT INTO posts_comments (post_id, comment_id, mentions) VALUES ($1, $2, $3) ON CONFLICT (post_id) DO UPDATE SET comment_id=EXCLUDED.comment_id, mentions=EXCLUDED.mentions`

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

func (d *Database) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if err := d.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return nil
}

func (d *Database) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := d.Pool.Query(ctx, listDepartments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var department Department
		if err := rows.Scan(&department.Code, &department.Name); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

func (d *Database) InsertDepartments(ctx context.Context, departments []Department) error {
	if len(departments) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	for _, department := range departments {
		batch.Queue(insertDepartment, department.Code, department.Name).Exec(insertCallback)
	}

	return d.sendBatch(ctx, &batch)
}

// LoadCourseDatabase reads every stored course into memory.
func (d *Database) LoadCourseDatabase(ctx context.Context) (*CourseDatabase, error) {
	departments, err := d.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	courseDatabase := NewCourseDatabase()
	for _, department := range departments {
		courseDatabase.AddDepartment(NewDepartment(department.Code, department.Name))
	}

	rows, err := d.Pool.Query(ctx, listCourses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.DepartmentCode, &course.Number, &course.Name, &course.Description); err != nil {
			return nil, err
		}

		department, found := courseDatabase.Departments[course.DepartmentCode]
		if !found {
			department = NewDepartment(course.DepartmentCode, "")
			courseDatabase.AddDepartment(department)
		}
		department.AddCourse(course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courseDatabase, nil
}

func (d *Database) InsertCourses(ctx context.Context, courses []Course) error {
	if len(courses) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	for _, course := range courses {
		batch.Queue(
			insertCourse,
			course.DepartmentCode,
			course.Number,
			course.Name,
			strings.ReplaceAll(course.Description, "\x00", ""),
		).Exec(insertCallback)
	}

	return d.sendBatch(ctx, &batch)
}

func (d *Database) ListPostsMentions(ctx context.Context) ([]PostMentions, error) {
	rows, err := d.Pool.Query(ctx, listPostsMentions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postsMentions []PostMentions
	for rows.Next() {
		var postMentions PostMentions
		if err := rows.Scan(&postMentions.PostId, &postMentions.Title, &postMentions.Mentions); err != nil {
			return nil, err
		}
		postsMentions = append(postsMentions, postMentions)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return postsMentions, nil
}

func (d *Database) InsertPostsMentions(ctx context.Context, postsMentions []PostMentions) error {
	if len(postsMentions) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	for _, postMentions := range postsMentions {
		batch.Queue(insertPostMentions, postMentions.PostId, postMentions.Title, postMentions.Mentions).Exec(insertCallback)
	}

	return d.sendBatch(ctx, &batch)
}

func (d *Database) ListExistingComments(ctx context.Context) (map[string]ExistingComment, error) {
	rows, err := d.Pool.Query(ctx, listExistingComments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existingComments := make(map[string]ExistingComment)
	for rows.Next() {
		var existingComment ExistingComment
		if err := rows.Scan(&existingComment.PostId, &existingComment.CommentId, &existingComment.Mentions); err != nil {
			return nil, err
		}
		existingComments[existingComment.PostId] = existingComment
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return existingComments, nil
}

func (d *Database) UpsertExistingComment(ctx context.Context, existingComment ExistingComment) error {
	_, err := d.Pool.Exec(ctx, upsertExistingComment, existingComment.PostId, existingComment.CommentId, existingComment.Mentions)
	return err
}
