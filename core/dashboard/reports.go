package dashboard

import (
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/export"
	"github.com/trezcool/academia/core/report"
	"github.com/trezcool/academia/core/student"
)

// Report names a tabular report of the dashboard.
type Report string

const (
	ReportLeaderboard         Report = "leaderboard"
	ReportPopularCourses      Report = "popular"
	ReportEnrollments         Report = "enrollments" // by month
	ReportEnrollmentsByCourse Report = "enrollments-by-course"
	ReportTopByCourse         Report = "top-by-course"
)

var ErrUnknownReport = errors.New("unknown report")

// Summary returns the home page of the dashboard.
func (c *Controller) Summary() report.Summary {
	s := c.store.State()
	return report.NewSummary(s.Students, s.Courses, s.Faculty, s.Grades, report.SummarySizes{
		TopStudents:    c.conf.TopStudents,
		PopularCourses: c.conf.TopCourses,
		RecentGrades:   c.conf.RecentGrades,
	})
}

func (c *Controller) Profile(studentID int) (report.Profile, error) {
	s := c.store.State()
	for _, st := range s.Students {
		if st.ID == studentID {
			return report.NewProfile(st, s.Courses, s.Grades), nil
		}
	}
	return report.Profile{}, student.ErrNotFound
}

// Records returns the rows of the report; n limits the rankings (configured size if n < 1).
func (c *Controller) Records(r Report, n int) ([]export.Record, error) {
	if n < 1 {
		n = c.conf.ReportLeaderboard
	}
	s := c.store.State()

	switch r {
	case ReportLeaderboard:
		return report.StandingRecords(report.TopStudents(s.Students, s.Grades, n)), nil
	case ReportPopularCourses:
		return report.CourseEnrollmentRecords(report.PopularCourses(s.Courses, s.Grades, n)), nil
	case ReportEnrollments:
		return report.MonthRecords(report.EnrollmentByMonth(s.Grades)), nil
	case ReportEnrollmentsByCourse:
		return report.CourseEnrollmentRecords(report.CourseEnrollments(s.Courses, report.EnrollmentByCourse(s.Grades))), nil
	case ReportTopByCourse:
		return report.TopStudentRecords(report.TopStudentByCourse(s.Courses, s.Students, s.Grades)), nil
	default:
		return nil, errors.Wrap(ErrUnknownReport, string(r))
	}
}

// FileName returns the default export file name of the report.
func (r Report) FileName(format string) string {
	name := report.EnrollmentsReportFile
	switch r {
	case ReportLeaderboard:
		name = report.LeaderboardReportFile
	case ReportPopularCourses:
		name = report.PopularCoursesFile
	case ReportTopByCourse:
		name = report.TopStudentsReportFile
	}
	return name + "." + format
}

// Export writes the report to filename (its default CSV name if empty) in the export directory,
// and returns the file path. Nothing is written for an empty report; the path is then "".
func (c *Controller) Export(r Report, n int, filename string) (string, error) {
	rows, err := c.Records(r, n)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = r.FileName(export.FormatCSV)
	}
	path, err := export.WriteFile(c.exportDir, filename, rows)
	if err != nil {
		return "", errors.Wrapf(err, "exporting %s", r)
	}
	return path, nil
}
