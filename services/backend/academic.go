package backendsvc

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"
)

type Attendance struct {
	ID        int         `json:"id"`
	StudentID int         `json:"student_id"`
	CourseID  int         `json:"course_id"`
	Date      string      `json:"date"`
	Status    string      `json:"status"` // present, absent, late, excused
	Notes     null.String `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type NewAttendance struct {
	StudentID int         `json:"student_id" validate:"required"`
	CourseID  int         `json:"course_id" validate:"required"`
	Date      string      `json:"date" validate:"required"`
	Status    string      `json:"status" validate:"required"`
	Notes     null.String `json:"notes,omitempty"`
}

type UpdateAttendance struct {
	Status null.String `json:"status,omitempty"`
	Notes  null.String `json:"notes,omitempty"`
}

type Grade struct {
	ID             int          `json:"id"`
	StudentID      int          `json:"student_id"`
	CourseID       int          `json:"course_id"`
	AssessmentType string       `json:"assessment_type"` // midterm, final, assignment, quiz, project
	AssessmentName string       `json:"assessment_name"`
	Score          float64      `json:"score"`
	MaxScore       float64      `json:"max_score"`
	Percentage     null.Float64 `json:"percentage,omitempty"`
	LetterGrade    null.String  `json:"letter_grade,omitempty"`
	DateAssessed   null.String  `json:"date_assessed,omitempty"`
	Remarks        null.String  `json:"remarks,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type NewGrade struct {
	StudentID      int         `json:"student_id" validate:"required"`
	CourseID       int         `json:"course_id" validate:"required"`
	AssessmentType string      `json:"assessment_type" validate:"required"`
	AssessmentName string      `json:"assessment_name" validate:"required"`
	Score          float64     `json:"score"`
	MaxScore       float64     `json:"max_score" validate:"required"`
	DateAssessed   null.String `json:"date_assessed,omitempty"`
	Remarks        null.String `json:"remarks,omitempty"`
}

type UpdateGrade struct {
	Score       null.Float64 `json:"score,omitempty"`
	MaxScore    null.Float64 `json:"max_score,omitempty"`
	LetterGrade null.String  `json:"letter_grade,omitempty"`
	Remarks     null.String  `json:"remarks,omitempty"`
}

type AcademicFilter struct {
	StudentID int
	CourseID  int
}

func (f AcademicFilter) values() url.Values {
	v := make(url.Values)
	if f.StudentID != 0 {
		v.Set("student_id", strconv.Itoa(f.StudentID))
	}
	if f.CourseID != 0 {
		v.Set("course_id", strconv.Itoa(f.CourseID))
	}
	return v
}

func (c *Client) QueryAttendance(ctx context.Context, filter AcademicFilter) ([]Attendance, error) {
	var records []Attendance
	if err := c.get(ctx, "/academic/attendance/", filter.values(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateAttendance(ctx context.Context, data NewAttendance) (Attendance, error) {
	var att Attendance
	if err := c.post(ctx, "/academic/attendance/", data, &att); err != nil {
		return Attendance{}, err
	}
	return att, nil
}

func (c *Client) UpdateAttendance(ctx context.Context, id int, data UpdateAttendance) (Attendance, error) {
	var att Attendance
	if err := c.patch(ctx, "/academic/attendance/"+strconv.Itoa(id), data, &att); err != nil {
		return Attendance{}, err
	}
	return att, nil
}

func (c *Client) QueryGrades(ctx context.Context, filter AcademicFilter) ([]Grade, error) {
	var grades []Grade
	if err := c.get(ctx, "/academic/grades/", filter.values(), &grades); err != nil {
		return nil, err
	}
	return grades, nil
}

func (c *Client) CreateGrade(ctx context.Context, data NewGrade) (Grade, error) {
	var grd Grade
	if err := c.post(ctx, "/academic/grades/", data, &grd); err != nil {
		return Grade{}, err
	}
	return grd, nil
}

func (c *Client) UpdateGrade(ctx context.Context, id int, data UpdateGrade) (Grade, error) {
	var grd Grade
	if err := c.patch(ctx, "/academic/grades/"+strconv.Itoa(id), data, &grd); err != nil {
		return Grade{}, err
	}
	return grd, nil
}

func (c *Client) DeleteGrade(ctx context.Context, id int) error {
	return c.delete(ctx, "/academic/grades/"+strconv.Itoa(id))
}
