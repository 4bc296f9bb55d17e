package view

import (
	"time"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

var (
	ada   = student.Student{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@uni.edu", Year: student.YearSenior}
	alan  = student.Student{ID: 2, FirstName: "Alan", LastName: "Turing", Email: "alan@uni.edu", Year: student.YearGraduate}
	grace = student.Student{ID: 3, FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil", Year: student.YearFreshman}

	cs101 = course.Course{ID: 10, Code: "CS101", Title: "Intro to Programming", Department: "Computer Science", Credits: 4}
	ma201 = course.Course{ID: 20, Code: "MA201", Title: "Linear Algebra", Department: "Mathematics", Credits: 3}
)

func mkGrade(id, studentID, courseID int, score float64) grade.Grade {
	letter, _ := grade.ScoreToLetter(score)
	ts := time.Date(2024, 1, id, 0, 0, 0, 0, time.UTC)
	return grade.Grade{ID: id, StudentID: studentID, CourseID: courseID, Score: score, Letter: letter, CreatedAt: ts, UpdatedAt: ts}
}

func fixtures() ([]student.Student, []course.Course, []grade.Grade) {
	students := []student.Student{ada, alan, grace}
	courses := []course.Course{cs101, ma201}
	grades := []grade.Grade{
		mkGrade(1, ada.ID, cs101.ID, 95),
		mkGrade(2, alan.ID, cs101.ID, 88),
		mkGrade(3, ada.ID, ma201.ID, 72),
		mkGrade(4, 99, cs101.ID, 50), // orphaned student
		mkGrade(5, grace.ID, 77, 61), // orphaned course
		mkGrade(6, grace.ID, ma201.ID, 90),
	}
	return students, courses, grades
}

func gradeIDs(rows []Row) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.Grade.ID
	}
	return ids
}

func studentIDs(students []student.Student) []int {
	ids := make([]int, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	return ids
}
