package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/DrumilPatell/sms-system/core/session"
	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
)

type (
	pageData struct {
		Title string
		User  *session.User
		Nav   []NavItem
	}

	dashboardData struct {
		pageData
		Stats    []stat
		Courses  []backendsvc.Course
		Profile  *backendsvc.Student
		Enrolled []backendsvc.Enrollment
	}

	stat struct {
		Name  string
		Value int
	}

	tableData struct {
		pageData
		Columns []string
		Rows    [][]string
	}
)

func (s *server) page(ctx echo.Context, title string) pageData {
	sess := s.contextSession(ctx)
	data := pageData{Title: title, User: sess.User}
	if sess.User != nil {
		data.Nav = navigationFor(sess.User.Role)
	}
	return data
}

func (s *server) landing(ctx echo.Context) error {
	if s.deps.Store.Read().IsAuthenticated() {
		return ctx.Redirect(http.StatusFound, dashboardPath)
	}
	return ctx.Render(http.StatusOK, "landing", pageData{Title: s.deps.Conf.AppName})
}

func (s *server) unauthorizedPage(ctx echo.Context) error {
	return ctx.Render(http.StatusForbidden, "unauthorized", s.page(ctx, "403"))
}

// dashboard renders one of three fixed variants. The switch is exhaustive
// over session.Role so adding a role is a compile-visible change here.
func (s *server) dashboard(ctx echo.Context) error {
	sess := s.contextSession(ctx)
	usr := sess.User

	switch usr.Role {
	case session.RoleAdmin:
		return s.adminDashboard(ctx)
	case session.RoleFaculty:
		return s.facultyDashboard(ctx)
	case session.RoleStudent:
		return s.studentDashboard(ctx)
	}
	return errors.Errorf("unhandled role %q", usr.Role)
}

func (s *server) adminDashboard(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	users, err := s.deps.Backend.QueryUsers(reqCtx, backendsvc.UserFilter{})
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	students, err := s.deps.Backend.QueryStudents(reqCtx, backendsvc.StudentFilter{})
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	courses, err := s.deps.Backend.QueryCourses(reqCtx, backendsvc.CourseFilter{})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	enrollments, err := s.deps.Backend.QueryEnrollments(reqCtx, backendsvc.EnrollmentFilter{})
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}

	return ctx.Render(http.StatusOK, "dashboard_admin", dashboardData{
		pageData: s.page(ctx, "Admin Dashboard"),
		Stats: []stat{
			{Name: "Users", Value: len(users)},
			{Name: "Students", Value: len(students)},
			{Name: "Courses", Value: len(courses)},
			{Name: "Enrollments", Value: len(enrollments)},
		},
	})
}

func (s *server) facultyDashboard(ctx echo.Context) error {
	courses, err := s.deps.Backend.MyCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying faculty courses")
	}
	return ctx.Render(http.StatusOK, "dashboard_faculty", dashboardData{
		pageData: s.page(ctx, "Faculty Dashboard"),
		Courses:  courses,
	})
}

func (s *server) studentDashboard(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	profile, err := s.deps.Backend.MyStudentProfile(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying student profile")
	}
	enrolled, err := s.deps.Backend.StudentCourses(reqCtx, profile.ID)
	if err != nil {
		return errors.Wrap(err, "querying student courses")
	}
	return ctx.Render(http.StatusOK, "dashboard_student", dashboardData{
		pageData: s.page(ctx, "Student Dashboard"),
		Profile:  &profile,
		Enrolled: enrolled,
	})
}

// Resource list pages. The backend scopes results by the bearer token, the
// console only renders what comes back.

func (s *server) usersPage(ctx echo.Context) error {
	users, err := s.deps.Backend.QueryUsers(ctx.Request().Context(), backendsvc.UserFilter{
		Search: ctx.QueryParam("search"),
	})
	if err != nil {
		return errors.Wrap(err, "querying users")
	}

	rows := make([][]string, 0, len(users))
	for _, usr := range users {
		rows = append(rows, []string{
			strconv.Itoa(usr.ID), usr.FullName, usr.Email, usr.Role.String(), strconv.FormatBool(usr.IsActive),
		})
	}
	return ctx.Render(http.StatusOK, "table", tableData{
		pageData: s.page(ctx, "Users"),
		Columns:  []string{"ID", "Name", "Email", "Role", "Active"},
		Rows:     rows,
	})
}

func (s *server) studentsPage(ctx echo.Context) error {
	students, err := s.deps.Backend.QueryStudents(ctx.Request().Context(), backendsvc.StudentFilter{
		Search:  ctx.QueryParam("search"),
		Program: ctx.QueryParam("program"),
	})
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	rows := make([][]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, []string{
			st.StudentID, st.FullName.String, st.Email.String, st.Program.String, nullIntStr(st.CurrentSemester),
		})
	}
	return ctx.Render(http.StatusOK, "table", tableData{
		pageData: s.page(ctx, "Students"),
		Columns:  []string{"Student ID", "Name", "Email", "Program", "Semester"},
		Rows:     rows,
	})
}

func (s *server) coursesPage(ctx echo.Context) error {
	courses, err := s.deps.Backend.QueryCourses(ctx.Request().Context(), backendsvc.CourseFilter{
		Search:   ctx.QueryParam("search"),
		Semester: ctx.QueryParam("semester"),
	})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	rows := make([][]string, 0, len(courses))
	for _, crs := range courses {
		rows = append(rows, []string{
			crs.CourseCode, crs.CourseName, strconv.Itoa(crs.Credits), crs.Semester.String, crs.FacultyName.String,
		})
	}
	return ctx.Render(http.StatusOK, "table", tableData{
		pageData: s.page(ctx, "Courses"),
		Columns:  []string{"Code", "Name", "Credits", "Semester", "Faculty"},
		Rows:     rows,
	})
}

func (s *server) enrollmentsPage(ctx echo.Context) error {
	enrollments, err := s.deps.Backend.QueryEnrollments(ctx.Request().Context(), backendsvc.EnrollmentFilter{
		Status: ctx.QueryParam("status"),
	})
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}

	rows := make([][]string, 0, len(enrollments))
	for _, enr := range enrollments {
		rows = append(rows, []string{
			strconv.Itoa(enr.ID), enr.StudentName.String, enr.CourseCode.String, enr.CourseName.String, enr.Status,
		})
	}
	return ctx.Render(http.StatusOK, "table", tableData{
		pageData: s.page(ctx, "Enrollments"),
		Columns:  []string{"ID", "Student", "Course Code", "Course", "Status"},
		Rows:     rows,
	})
}

func (s *server) attendancePage(ctx echo.Context) error {
	records, err := s.deps.Backend.QueryAttendance(ctx.Request().Context(), academicFilter(ctx))
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}

	rows := make([][]string, 0, len(records))
	for _, att := range records {
		rows = append(rows, []string{
			att.Date, strconv.Itoa(att.StudentID), strconv.Itoa(att.CourseID), att.Status, att.Notes.String,
		})
	}
	return ctx.Render(http.StatusOK, "table", tableData{
		pageData: s.page(ctx, "Attendance"),
		Columns:  []string{"Date", "Student", "Course", "Status", "Notes"},
		Rows:     rows,
	})
}

func (s *server) gradesPage(ctx echo.Context) error {
	grades, err := s.deps.Backend.QueryGrades(ctx.Request().Context(), academicFilter(ctx))
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}

	rows := make([][]string, 0, len(grades))
	for _, grd := range grades {
		rows = append(rows, []string{
			grd.AssessmentName,
			grd.AssessmentType,
			strconv.FormatFloat(grd.Score, 'f', -1, 64) + "/" + strconv.FormatFloat(grd.MaxScore, 'f', -1, 64),
			grd.LetterGrade.String,
			grd.Remarks.String,
		})
	}
	return ctx.Render(http.StatusOK, "table", tableData{
		pageData: s.page(ctx, "Grades"),
		Columns:  []string{"Assessment", "Type", "Score", "Grade", "Remarks"},
		Rows:     rows,
	})
}

func academicFilter(ctx echo.Context) backendsvc.AcademicFilter {
	var filter backendsvc.AcademicFilter
	if id, err := strconv.Atoi(ctx.QueryParam("student_id")); err == nil {
		filter.StudentID = id
	}
	if id, err := strconv.Atoi(ctx.QueryParam("course_id")); err == nil {
		filter.CourseID = id
	}
	return filter
}

func nullIntStr(n null.Int) string {
	if !n.Valid {
		return ""
	}
	return strconv.Itoa(n.Int)
}
