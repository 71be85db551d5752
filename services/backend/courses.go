package backendsvc

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"
)

type Course struct {
	ID           int         `json:"id"`
	CourseCode   string      `json:"course_code"`
	CourseName   string      `json:"course_name"`
	Description  null.String `json:"description,omitempty"`
	Credits      int         `json:"credits"`
	Semester     null.String `json:"semester,omitempty"`
	AcademicYear null.String `json:"academic_year,omitempty"`
	FacultyID    null.Int    `json:"faculty_id,omitempty"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`

	// present on responses joined with the faculty record
	FacultyName  null.String `json:"faculty_name,omitempty"`
	FacultyEmail null.String `json:"faculty_email,omitempty"`
}

type NewCourse struct {
	CourseCode   string      `json:"course_code" validate:"required"`
	CourseName   string      `json:"course_name" validate:"required"`
	Description  null.String `json:"description,omitempty"`
	Credits      int         `json:"credits" validate:"min=1,max=6"`
	Semester     null.String `json:"semester,omitempty"`
	AcademicYear null.String `json:"academic_year,omitempty"`
	FacultyID    null.Int    `json:"faculty_id,omitempty"`
}

type UpdateCourse struct {
	CourseName   null.String `json:"course_name,omitempty"`
	Description  null.String `json:"description,omitempty"`
	Credits      null.Int    `json:"credits,omitempty"`
	FacultyID    null.Int    `json:"faculty_id,omitempty"`
	Semester     null.String `json:"semester,omitempty"`
	AcademicYear null.String `json:"academic_year,omitempty"`
	IsActive     null.Bool   `json:"is_active,omitempty"`
}

type CourseFilter struct {
	Search   string
	Semester string
}

func (f CourseFilter) values() url.Values {
	v := make(url.Values)
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Semester != "" {
		v.Set("semester", f.Semester)
	}
	return v
}

func (c *Client) QueryCourses(ctx context.Context, filter CourseFilter) ([]Course, error) {
	var courses []Course
	if err := c.get(ctx, "/courses/", filter.values(), &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, id int) (Course, error) {
	var crs Course
	if err := c.get(ctx, "/courses/"+strconv.Itoa(id), nil, &crs); err != nil {
		return Course{}, err
	}
	return crs, nil
}

func (c *Client) CreateCourse(ctx context.Context, data NewCourse) (Course, error) {
	var crs Course
	if err := c.post(ctx, "/courses/", data, &crs); err != nil {
		return Course{}, err
	}
	return crs, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id int, data UpdateCourse) (Course, error) {
	var crs Course
	if err := c.patch(ctx, "/courses/"+strconv.Itoa(id), data, &crs); err != nil {
		return Course{}, err
	}
	return crs, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.delete(ctx, "/courses/"+strconv.Itoa(id))
}

// MyCourses returns the courses taught by the current faculty session.
func (c *Client) MyCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.get(ctx, "/courses/faculty/my-courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
