package backendsvc

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"
)

type Student struct {
	ID              int         `json:"id"`
	UserID          int         `json:"user_id"`
	StudentID       string      `json:"student_id"`
	DateOfBirth     null.String `json:"date_of_birth,omitempty"`
	Phone           null.String `json:"phone,omitempty"`
	Address         null.String `json:"address,omitempty"`
	EnrollmentYear  null.Int    `json:"enrollment_year,omitempty"`
	Program         null.String `json:"program,omitempty"`
	CurrentSemester null.Int    `json:"current_semester,omitempty"`
	GPA             null.Float64 `json:"gpa,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`

	// present on detail/list responses joined with the user record
	Email          null.String `json:"email,omitempty"`
	FullName       null.String `json:"full_name,omitempty"`
	ProfilePicture null.String `json:"profile_picture,omitempty"`
	IsActive       null.Bool   `json:"is_active,omitempty"`
}

type NewStudent struct {
	UserID          int         `json:"user_id" validate:"required"`
	StudentID       string      `json:"student_id" validate:"required"`
	DateOfBirth     null.String `json:"date_of_birth,omitempty"`
	Phone           null.String `json:"phone,omitempty"`
	Address         null.String `json:"address,omitempty"`
	EnrollmentYear  null.Int    `json:"enrollment_year,omitempty"`
	Program         null.String `json:"program,omitempty"`
	CurrentSemester null.Int    `json:"current_semester,omitempty"`
}

type UpdateStudent struct {
	DateOfBirth     null.String  `json:"date_of_birth,omitempty"`
	Phone           null.String  `json:"phone,omitempty"`
	Address         null.String  `json:"address,omitempty"`
	EnrollmentYear  null.Int     `json:"enrollment_year,omitempty"`
	Program         null.String  `json:"program,omitempty"`
	CurrentSemester null.Int     `json:"current_semester,omitempty"`
	GPA             null.Float64 `json:"gpa,omitempty"`
}

type StudentFilter struct {
	Search  string
	Program string
}

func (f StudentFilter) values() url.Values {
	v := make(url.Values)
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Program != "" {
		v.Set("program", f.Program)
	}
	return v
}

func (c *Client) QueryStudents(ctx context.Context, filter StudentFilter) ([]Student, error) {
	var students []Student
	if err := c.get(ctx, "/students/", filter.values(), &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetStudent(ctx context.Context, id int) (Student, error) {
	var st Student
	if err := c.get(ctx, "/students/"+strconv.Itoa(id), nil, &st); err != nil {
		return Student{}, err
	}
	return st, nil
}

func (c *Client) CreateStudent(ctx context.Context, data NewStudent) (Student, error) {
	var st Student
	if err := c.post(ctx, "/students/", data, &st); err != nil {
		return Student{}, err
	}
	return st, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id int, data UpdateStudent) (Student, error) {
	var st Student
	if err := c.patch(ctx, "/students/"+strconv.Itoa(id), data, &st); err != nil {
		return Student{}, err
	}
	return st, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.delete(ctx, "/students/"+strconv.Itoa(id))
}

// MyStudentProfile returns the student record linked to the current session.
func (c *Client) MyStudentProfile(ctx context.Context) (Student, error) {
	var st Student
	if err := c.get(ctx, "/students/me/profile", nil, &st); err != nil {
		return Student{}, err
	}
	return st, nil
}
