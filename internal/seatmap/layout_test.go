package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowLabelFor(t *testing.T) {
	assert.Equal(t, "A", RowLabelFor(0))
	assert.Equal(t, "J", RowLabelFor(9))
	assert.Equal(t, "Z", RowLabelFor(25))
	assert.Equal(t, "AA", RowLabelFor(26))
	assert.Equal(t, "AB", RowLabelFor(27))
	assert.Equal(t, "", RowLabelFor(-1))
}

func TestConfigFromLayout(t *testing.T) {
	cfg := ConfigFromLayout(10, 14, "F,G,H", " i , j ")

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}, cfg.Rows)
	assert.Equal(t, 14, cfg.SeatsPerRow)
	assert.Equal(t, []string{"F", "G", "H"}, cfg.VIPRows)
	assert.Equal(t, []string{"I", "J"}, cfg.CoupleRows)
	assert.NoError(t, cfg.Validate())

	empty := ConfigFromLayout(2, 4, "", "")
	assert.Nil(t, empty.VIPRows)
	assert.Nil(t, empty.CoupleRows)
	assert.Equal(t, SeatRegular, Classify("A", empty))
}
