package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreColors(t *testing.T) {
	tests := []struct {
		score       float64
		report      string
		table       string
		description string
	}{
		{10, ColorGreen, TableGreen, "top"},
		{8, ColorGreen, TableGreen, "green boundary"},
		{7.9, ColorYellow, TableOrange, "just below green"},
		{6, ColorYellow, TableOrange, "yellow boundary"},
		{5.99, ColorRed, TableRed, "just below yellow"},
		{0, ColorRed, TableRed, "zero"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.report, ScoreColor(tt.score))
			assert.Equal(t, tt.table, TableColor(tt.score))
		})
	}
}

func TestPercentColor(t *testing.T) {
	assert.Equal(t, ColorGreen, PercentColor(80))
	assert.Equal(t, ColorYellow, PercentColor(78))
	assert.Equal(t, ColorYellow, PercentColor(60))
	assert.Equal(t, ColorRed, PercentColor(59))
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, TableGreen, StatusColor("MATCHED"))
	assert.Equal(t, TableRed, StatusColor("UNMATCHED"))
	assert.Equal(t, TableRed, StatusColor(""))
}

func TestNewCircle(t *testing.T) {
	c := NewCircle(7.5)
	circumference := 2 * math.Pi * 45
	assert.InDelta(t, circumference, c.Circumference, 1e-9)
	assert.InDelta(t, circumference*0.25, c.DashOffset, 1e-9)
	assert.Equal(t, ColorYellow, c.Color)
	assert.InDelta(t, 75, c.Percent(), 1e-9)

	full := NewCircle(10)
	assert.InDelta(t, 0, full.DashOffset, 1e-9)

	empty := NewCircle(0)
	assert.InDelta(t, circumference, empty.DashOffset, 1e-9)
}

func TestNewCircle_Clamps(t *testing.T) {
	over := NewCircle(12)
	assert.InDelta(t, 0, over.DashOffset, 1e-9)
	assert.Equal(t, 12.0, over.Score)

	under := NewCircle(-3)
	assert.InDelta(t, under.Circumference, under.DashOffset, 1e-9)
	assert.Zero(t, under.Percent())
}
