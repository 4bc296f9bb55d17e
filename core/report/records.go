package report

import "github.com/trezcool/academia/core/export"

// Export file names.
const (
	EnrollmentsReportFile = "course-enrollments-report"
	TopStudentsReportFile = "top-students-by-course"
	LeaderboardReportFile = "student-leaderboard"
	PopularCoursesFile    = "popular-courses"
)

func MonthRecords(months []MonthCount) []export.Record {
	rows := make([]export.Record, len(months))
	for i, m := range months {
		rows[i] = export.NewRecord("Month", m.Label, "Enrollments", m.Count)
	}
	return rows
}

func TopStudentRecords(tops []CourseTopStudent) []export.Record {
	rows := make([]export.Record, len(tops))
	for i, t := range tops {
		rows[i] = export.NewRecord(
			"Course", t.Course.Title,
			"Code", t.Course.Code,
			"Top Student", t.StudentName,
			"Top Score", t.Score,
		)
	}
	return rows
}

func StandingRecords(standings []StudentStanding) []export.Record {
	rows := make([]export.Record, len(standings))
	for i, s := range standings {
		rows[i] = export.NewRecord(
			"Rank", i+1,
			"Student", s.Student.FullName(),
			"Email", s.Student.Email,
			"Year", s.Student.Year,
			"Courses", s.Courses,
			"GPA", s.GPA,
		)
	}
	return rows
}

func CourseEnrollmentRecords(ces []CourseEnrollment) []export.Record {
	rows := make([]export.Record, len(ces))
	for i, ce := range ces {
		rows[i] = export.NewRecord(
			"Code", ce.Course.Code,
			"Course", ce.Course.Title,
			"Department", ce.Course.Department,
			"Enrollments", ce.Enrollments,
		)
	}
	return rows
}
