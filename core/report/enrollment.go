// Package report aggregates grades into enrollment counts, rankings and dashboard summaries.
package report

import (
	"sort"
	"time"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/grade"
)

// MonthLayout formats month labels, e.g. "Jan 2024".
const MonthLayout = "Jan 2006"

// EnrollmentByCourse counts grades per course ID. Courses without grades are absent.
func EnrollmentByCourse(grades []grade.Grade) map[int]int {
	counts := make(map[int]int)
	for _, g := range grades {
		counts[g.CourseID]++
	}
	return counts
}

type CourseEnrollment struct {
	Course      course.Course `json:"course"`
	Enrollments int           `json:"enrollments"`
}

// CourseEnrollments pairs every course of the catalog with its count, 0 if it has none, in catalog order.
func CourseEnrollments(courses []course.Course, counts map[int]int) []CourseEnrollment {
	ces := make([]CourseEnrollment, len(courses))
	for i, c := range courses {
		ces[i] = CourseEnrollment{Course: c, Enrollments: counts[c.ID]}
	}
	return ces
}

type MonthCount struct {
	Month time.Time `json:"-"` // first day of the month, UTC
	Label string    `json:"month"`
	Count int       `json:"enrollments"`
}

// EnrollmentByMonth counts grades per calendar month of their creation (UTC), oldest month first.
func EnrollmentByMonth(grades []grade.Grade) []MonthCount {
	counts := make(map[time.Time]int)
	for _, g := range grades {
		created := g.CreatedAt.UTC()
		month := time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, time.UTC)
		counts[month]++
	}

	months := make([]MonthCount, 0, len(counts))
	for month, n := range counts {
		months = append(months, MonthCount{Month: month, Label: month.Format(MonthLayout), Count: n})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month.Before(months[j].Month) })
	return months
}
