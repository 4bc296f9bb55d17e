package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core"
)

func grades(scores ...float64) []Grade {
	gs := make([]Grade, len(scores))
	for i, s := range scores {
		gs[i] = Grade{ID: i + 1, Score: s}
	}
	return gs
}

func TestCalculateGPA(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{name: "no grades", scores: nil, want: 0},
		{name: "single A", scores: []float64{95}, want: 4.0},
		{name: "A and D-", scores: []float64{93, 60}, want: 2.35},
		{name: "thirds round down", scores: []float64{93, 93, 60}, want: 2.9},                  // 8.7/3 = 2.9
		{name: "repeating", scores: []float64{93, 90, 90}, want: 3.8},                          // 11.4/3 = 3.8
		{name: "two thirds", scores: []float64{93, 93, 50}, want: 2.67},                        // 8/3 = 2.666..
		{name: "exact half rounds up", scores: []float64{63, 0, 0, 0, 0, 0, 0, 0}, want: 0.13}, // 0.125
		{name: "all F", scores: []float64{10, 20, 59.9}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateGPA(grades(tt.scores...))
			if err != nil {
				t.Fatalf("CalculateGPA() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculateGPA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateGPA_dependsOnScoresOnly(t *testing.T) {
	a := grades(93, 60)
	b := []Grade{{ID: 42, StudentID: 7, CourseID: 9, Score: 60}, {ID: 1, Score: 93, Letter: "F"}}
	gpaA, _ := CalculateGPA(a)
	gpaB, _ := CalculateGPA(b)
	assert.Equal(t, gpaA, gpaB)
}

func TestCalculateGPA_invalidScore(t *testing.T) {
	_, err := CalculateGPA(grades(90, 101))
	assert.True(t, core.IsValidationError(err))
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, 0, AverageScore(nil))
	assert.Equal(t, 92, AverageScore(grades(95, 88, 93)))     // 92
	assert.Equal(t, 89, AverageScore(grades(88, 89)))         // 88.5
	assert.Equal(t, 78, AverageScore(grades(77.4, 77.6, 79))) // 78
}
