package report

import "math"

// CircleRadius is the radius of the score ring in a 100x100 viewBox.
const CircleRadius = 45

// Circle is the geometry of the score ring.
type Circle struct {
	Score         float64
	Radius        float64
	Circumference float64
	// DashOffset hides the unfilled part of the ring.
	DashOffset float64
	Color      string
}

// NewCircle returns the ring for a 0-10 score. Scores outside the range are
// clamped for the geometry; Score keeps the original value for display.
func NewCircle(score float64) Circle {
	c := 2 * math.Pi * CircleRadius
	clamped := math.Max(0, math.Min(10, score))
	return Circle{
		Score:         score,
		Radius:        CircleRadius,
		Circumference: c,
		DashOffset:    c - (clamped/10)*c,
		Color:         ScoreColor(score),
	}
}

// Percent returns the filled share of the ring, 0-100.
func (c Circle) Percent() float64 {
	return math.Max(0, math.Min(10, c.Score)) * 10
}
