package grade

import "math"

// CalculateGPA returns the mean GPA points of grades rounded half away from zero to 2 decimals.
// It returns 0 for no grades.
func CalculateGPA(grades []Grade) (float64, error) {
	scores := make([]float64, len(grades))
	for i, g := range grades {
		scores[i] = g.Score
	}
	return ScoresGPA(scores...)
}

// ScoresGPA is CalculateGPA over raw scores.
func ScoresGPA(scores ...float64) (float64, error) {
	if len(scores) == 0 {
		return 0, nil
	}

	// the mean is computed on integer tenths so the rounding applies to the exact value
	var sum int
	for _, s := range scores {
		b, err := Classify(s)
		if err != nil {
			return 0, err
		}
		sum += b.Points
	}
	n := len(scores)
	hundredths := (sum*10*2 + n) / (2 * n) // round(sum*10/n), all terms >= 0
	return float64(hundredths) / 100, nil
}

// AverageScore returns the mean score of grades rounded to the nearest integer, 0 for no grades.
func AverageScore(grades []Grade) int {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.Score
	}
	return int(math.Round(sum / float64(len(grades))))
}
