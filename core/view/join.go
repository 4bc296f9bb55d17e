// Package view derives dashboard view state from snapshots of the store's collections.
// Every function is pure: inputs are never mutated.
package view

import (
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/grade"
	"github.com/trezcool/academia/core/student"
)

// Row is a grade denormalized with its student and course.
type Row struct {
	Grade   grade.Grade     `json:"grade"`
	Student student.Student `json:"student"`
	Course  course.Course   `json:"course"`
}

// JoinStats counts the grades Join dropped because their student or course is missing.
type JoinStats struct {
	Joined          int `json:"joined"`
	MissingStudents int `json:"missing_students"`
	MissingCourses  int `json:"missing_courses"`
}

func (js JoinStats) Dropped() int {
	return js.MissingStudents + js.MissingCourses
}

// Join inner-joins grades with their student and course, in grades order.
// Orphaned grades are dropped silently.
func Join(grades []grade.Grade, students []student.Student, courses []course.Course) []Row {
	rows, _ := JoinWithStats(grades, students, courses)
	return rows
}

// JoinWithStats is Join reporting how many grades were dropped.
func JoinWithStats(grades []grade.Grade, students []student.Student, courses []course.Course) ([]Row, JoinStats) {
	studentsByID := StudentsByID(students)
	coursesByID := CoursesByID(courses)

	var stats JoinStats
	rows := make([]Row, 0, len(grades))
	for _, g := range grades {
		s, ok := studentsByID[g.StudentID]
		if !ok {
			stats.MissingStudents++
			continue
		}
		c, ok := coursesByID[g.CourseID]
		if !ok {
			stats.MissingCourses++
			continue
		}
		rows = append(rows, Row{Grade: g, Student: s, Course: c})
	}
	stats.Joined = len(rows)
	return rows, stats
}

func StudentsByID(students []student.Student) map[int]student.Student {
	m := make(map[int]student.Student, len(students))
	for _, s := range students {
		m[s.ID] = s
	}
	return m
}

func CoursesByID(courses []course.Course) map[int]course.Course {
	m := make(map[int]course.Course, len(courses))
	for _, c := range courses {
		m[c.ID] = c
	}
	return m
}

// GradesByStudent groups grades by student ID, keeping their order.
func GradesByStudent(grades []grade.Grade) map[int][]grade.Grade {
	m := make(map[int][]grade.Grade)
	for _, g := range grades {
		m[g.StudentID] = append(m[g.StudentID], g)
	}
	return m
}
