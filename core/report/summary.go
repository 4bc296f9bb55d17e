package report

import (
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/faculty"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

type Counts struct {
	Students     int `json:"students"`
	Courses      int `json:"courses"`
	Faculty      int `json:"faculty"`
	Grades       int `json:"grades"`
	AverageScore int `json:"average_score"`
}

// Summary is the dashboard home page.
type Summary struct {
	Counts            Counts             `json:"counts"`
	TopStudents       []StudentStanding  `json:"top_students"`
	PopularCourses    []CourseEnrollment `json:"popular_courses"`
	RecentGrades      []grade.Grade      `json:"recent_grades"`
	EnrollmentByMonth []MonthCount       `json:"enrollment_by_month"`
}

type SummarySizes struct {
	TopStudents    int
	PopularCourses int
	RecentGrades   int
}

func NewSummary(
	students []student.Student,
	courses []course.Course,
	fclty []faculty.Faculty,
	grades []grade.Grade,
	sizes SummarySizes,
) Summary {
	return Summary{
		Counts: Counts{
			Students:     len(students),
			Courses:      len(courses),
			Faculty:      len(fclty),
			Grades:       len(grades),
			AverageScore: grade.AverageScore(grades),
		},
		TopStudents:       TopStudents(students, grades, sizes.TopStudents),
		PopularCourses:    PopularCourses(courses, grades, sizes.PopularCourses),
		RecentGrades:      RecentGrades(grades, sizes.RecentGrades),
		EnrollmentByMonth: EnrollmentByMonth(grades),
	}
}

// EnrolledCourse is a course a student has a grade in.
type EnrolledCourse struct {
	Course course.Course `json:"course"`
	Grade  grade.Grade   `json:"grade"`
}

// Profile is a student's detail page.
type Profile struct {
	Student      student.Student  `json:"student"`
	Courses      []EnrolledCourse `json:"courses"`
	GPA          float64          `json:"gpa"`
	AverageScore int              `json:"average_score"`
}

// NewProfile builds the profile of s from its grades. Grades of missing courses are skipped.
// Out of range scores do not count toward the GPA.
func NewProfile(s student.Student, courses []course.Course, grades []grade.Grade) Profile {
	byID := make(map[int]course.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	var own []grade.Grade
	enrolled := make([]EnrolledCourse, 0)
	for _, g := range grades {
		if g.StudentID != s.ID {
			continue
		}
		own = append(own, g)
		if c, ok := byID[g.CourseID]; ok {
			enrolled = append(enrolled, EnrolledCourse{Course: c, Grade: g})
		}
	}
	return Profile{Student: s, Courses: enrolled, GPA: gpaOf(own), AverageScore: grade.AverageScore(own)}
}
