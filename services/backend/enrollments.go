package backendsvc

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"
)

type Enrollment struct {
	ID             int       `json:"id"`
	StudentID      int       `json:"student_id"`
	CourseID       int       `json:"course_id"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Status         string    `json:"status"` // active, completed, dropped, withdrawn
	CreatedAt      time.Time `json:"created_at"`

	// present on responses joined with student and course records
	StudentName  null.String `json:"student_name,omitempty"`
	StudentEmail null.String `json:"student_email,omitempty"`
	CourseName   null.String `json:"course_name,omitempty"`
	CourseCode   null.String `json:"course_code,omitempty"`
}

type NewEnrollment struct {
	StudentID int `json:"student_id" validate:"required"`
	CourseID  int `json:"course_id" validate:"required"`
}

type UpdateEnrollment struct {
	Status null.String `json:"status,omitempty"`
}

type EnrollmentFilter struct {
	StudentID int
	CourseID  int
	Status    string
}

func (f EnrollmentFilter) values() url.Values {
	v := make(url.Values)
	if f.StudentID != 0 {
		v.Set("student_id", strconv.Itoa(f.StudentID))
	}
	if f.CourseID != 0 {
		v.Set("course_id", strconv.Itoa(f.CourseID))
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	return v
}

func (c *Client) QueryEnrollments(ctx context.Context, filter EnrollmentFilter) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := c.get(ctx, "/enrollments/", filter.values(), &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (c *Client) CreateEnrollment(ctx context.Context, data NewEnrollment) (Enrollment, error) {
	var enr Enrollment
	if err := c.post(ctx, "/enrollments/", data, &enr); err != nil {
		return Enrollment{}, err
	}
	return enr, nil
}

func (c *Client) UpdateEnrollment(ctx context.Context, id int, data UpdateEnrollment) (Enrollment, error) {
	var enr Enrollment
	if err := c.patch(ctx, "/enrollments/"+strconv.Itoa(id), data, &enr); err != nil {
		return Enrollment{}, err
	}
	return enr, nil
}

func (c *Client) DeleteEnrollment(ctx context.Context, id int) error {
	return c.delete(ctx, "/enrollments/"+strconv.Itoa(id))
}

// StudentCourses returns the enrollments of one student with course details.
func (c *Client) StudentCourses(ctx context.Context, studentID int) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := c.get(ctx, "/enrollments/student/"+strconv.Itoa(studentID)+"/courses", nil, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
