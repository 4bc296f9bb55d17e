package grade

import (
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

const (
	MinScore = 0
	MaxScore = 100
)

var ErrScoreOutOfRange = errors.Errorf("score must be between %d and %d", MinScore, MaxScore)

// Bucket is one row of the grading scale: every score >= Threshold (and below the previous
// bucket's threshold) gets Letter and Points tenths of a GPA point.
type Bucket struct {
	Threshold float64
	Letter    string
	Points    int // tenths: 37 == 3.7
}

func (b Bucket) GPA() float64 {
	return float64(b.Points) / 10
}

// Buckets is the grading scale, by descending threshold. The last bucket catches everything else.
var Buckets = []Bucket{
	{Threshold: 93, Letter: "A", Points: 40},
	{Threshold: 90, Letter: "A-", Points: 37},
	{Threshold: 87, Letter: "B+", Points: 33},
	{Threshold: 83, Letter: "B", Points: 30},
	{Threshold: 80, Letter: "B-", Points: 27},
	{Threshold: 77, Letter: "C+", Points: 23},
	{Threshold: 73, Letter: "C", Points: 20},
	{Threshold: 70, Letter: "C-", Points: 17},
	{Threshold: 67, Letter: "D+", Points: 13},
	{Threshold: 63, Letter: "D", Points: 10},
	{Threshold: 60, Letter: "D-", Points: 7},
	{Threshold: MinScore, Letter: "F", Points: 0},
}

// CheckScore returns a *core.ValidationError if score is not a number within [MinScore, MaxScore].
func CheckScore(score float64) error {
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return core.NewFieldValidationError("score", ErrScoreOutOfRange)
	}
	return nil
}

// Classify returns the bucket score falls into.
func Classify(score float64) (Bucket, error) {
	if err := CheckScore(score); err != nil {
		return Bucket{}, err
	}
	for _, b := range Buckets {
		if score >= b.Threshold {
			return b, nil
		}
	}
	return Buckets[len(Buckets)-1], nil
}

func ScoreToLetter(score float64) (string, error) {
	b, err := Classify(score)
	if err != nil {
		return "", err
	}
	return b.Letter, nil
}

func ScoreToGPA(score float64) (float64, error) {
	b, err := Classify(score)
	if err != nil {
		return 0, err
	}
	return b.GPA(), nil
}

// Letters lists every letter of the scale, best first.
func Letters() []string {
	letters := make([]string, len(Buckets))
	for i, b := range Buckets {
		letters[i] = b.Letter
	}
	return letters
}
