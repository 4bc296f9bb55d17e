package report

import (
	"sort"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

// TopN returns the n items with the highest metric, highest first.
// Ties keep their original relative order. The input is left untouched.
func TopN[T any](items []T, n int, metric func(T) float64) []T {
	if n <= 0 {
		return []T{}
	}
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return metric(sorted[i]) > metric(sorted[j]) })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

type StudentStanding struct {
	Student      student.Student `json:"student"`
	GPA          float64         `json:"gpa"`
	AverageScore int             `json:"average_score"`
	Courses      int             `json:"courses"`
}

// StudentStandings computes every student's GPA from their grades, in students order.
// Students without grades have a GPA of 0.
func StudentStandings(students []student.Student, grades []grade.Grade) []StudentStanding {
	byStudent := make(map[int][]grade.Grade)
	for _, g := range grades {
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}

	standings := make([]StudentStanding, len(students))
	for i, s := range students {
		standings[i] = StudentStanding{
			Student:      s,
			GPA:          gpaOf(byStudent[s.ID]),
			AverageScore: grade.AverageScore(byStudent[s.ID]),
			Courses:      len(byStudent[s.ID]),
		}
	}
	return standings
}

// gpaOf is the GPA of the grades whose score is within range; the others are left out.
func gpaOf(grades []grade.Grade) float64 {
	valid := make([]grade.Grade, 0, len(grades))
	for _, g := range grades {
		if grade.CheckScore(g.Score) == nil {
			valid = append(valid, g)
		}
	}
	gpa, _ := grade.CalculateGPA(valid) // every score was checked
	return gpa
}

// CorruptGrades returns the grades whose score is out of range.
func CorruptGrades(grades []grade.Grade) []grade.Grade {
	var corrupt []grade.Grade
	for _, g := range grades {
		if grade.CheckScore(g.Score) != nil {
			corrupt = append(corrupt, g)
		}
	}
	return corrupt
}

// TopStudents ranks students by GPA.
func TopStudents(students []student.Student, grades []grade.Grade, n int) []StudentStanding {
	return TopN(StudentStandings(students, grades), n, func(s StudentStanding) float64 { return s.GPA })
}

// PopularCourses ranks courses by enrollment count.
func PopularCourses(courses []course.Course, grades []grade.Grade, n int) []CourseEnrollment {
	ces := CourseEnrollments(courses, EnrollmentByCourse(grades))
	return TopN(ces, n, func(ce CourseEnrollment) float64 { return float64(ce.Enrollments) })
}

// UnknownStudentName stands in for a top student missing from the student list.
const UnknownStudentName = "Student"

type CourseTopStudent struct {
	Course      course.Course `json:"course"`
	StudentID   int           `json:"student_id"`
	StudentName string        `json:"student_name"`
	Score       float64       `json:"score"`
}

// TopStudentByCourse returns, for every course having grades, the student with the highest score.
// The first grade wins a tie. Courses are in catalog order.
func TopStudentByCourse(courses []course.Course, students []student.Student, grades []grade.Grade) []CourseTopStudent {
	best := make(map[int]grade.Grade)
	for _, g := range grades {
		if cur, ok := best[g.CourseID]; !ok || g.Score > cur.Score {
			best[g.CourseID] = g
		}
	}
	names := make(map[int]string, len(students))
	for _, s := range students {
		names[s.ID] = s.FullName()
	}

	tops := make([]CourseTopStudent, 0, len(best))
	for _, c := range courses {
		g, ok := best[c.ID]
		if !ok {
			continue
		}
		name, ok := names[g.StudentID]
		if !ok {
			name = UnknownStudentName
		}
		tops = append(tops, CourseTopStudent{Course: c, StudentID: g.StudentID, StudentName: name, Score: g.Score})
	}
	return tops
}

// RecentGrades returns the n most recently updated grades, newest first.
func RecentGrades(grades []grade.Grade, n int) []grade.Grade {
	sorted := make([]grade.Grade, len(grades))
	copy(sorted, grades)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt) })
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
