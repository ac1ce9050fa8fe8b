package seatmap

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPartition(t *testing.T) {
	cfg := DefaultConfig()

	for _, row := range cfg.VIPRows {
		assert.Equal(t, SeatVIP, Classify(row, cfg), "row %s", row)
	}
	for _, row := range cfg.CoupleRows {
		assert.Equal(t, SeatCouple, Classify(row, cfg), "row %s", row)
	}
	for _, row := range []string{"A", "B", "C", "D", "E"} {
		assert.Equal(t, SeatRegular, Classify(row, cfg), "row %s", row)
	}
	// Rows outside the map are well-defined as regular too.
	assert.Equal(t, SeatRegular, Classify("Z", cfg))
}

func TestValidateRejectsOverlappingSets(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.RegularRows = []string{"F"}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.CoupleRows = append(cfg.CoupleRows, "G")
	assert.Error(t, cfg.Validate())
}

func TestSeatPriceScenario(t *testing.T) {
	cfg := DefaultConfig()
	const base = int64(100000)

	tests := []struct {
		seat string
		want int64
	}{
		{"A1", 100000},
		{"F5", 150000},
		{"J10", 200000},
	}
	for _, tc := range tests {
		t.Run(tc.seat, func(t *testing.T) {
			assert.Equal(t, tc.want, SeatPrice(tc.seat, base, cfg))
		})
	}
}

func TestSeatPriceMonotonicity(t *testing.T) {
	cfg := DefaultConfig()
	const base = int64(12345)

	regular := SeatPrice("A1", base, cfg)
	vip := SeatPrice("F1", base, cfg)
	couple := SeatPrice("I1", base, cfg)

	assert.GreaterOrEqual(t, vip, regular)
	assert.GreaterOrEqual(t, couple, vip)
}

func TestSeatPriceRounding(t *testing.T) {
	cfg := DefaultConfig()
	// 101 * 1.5 = 151.5 -> rounds to 152
	assert.Equal(t, int64(152), SeatPrice("F1", 101, cfg))
}

func TestSeatPriceCustomMultiplier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Multipliers = map[SeatType]decimal.Decimal{
		SeatVIP: decimal.NewFromFloat(1.25),
	}
	assert.Equal(t, int64(125), SeatPrice("F1", 100, cfg))
	// Types without an override fall back to the defaults.
	assert.Equal(t, int64(200), SeatPrice("I1", 100, cfg))
}

func TestTotalPriceAdditiveAndOrderIndependent(t *testing.T) {
	cfg := DefaultConfig()
	const base = int64(100000)

	seats := []string{"A1", "A2", "F1"}
	assert.Equal(t, int64(350000), TotalPrice(seats, base, cfg))

	reordered := []string{"F1", "A2", "A1"}
	assert.Equal(t, TotalPrice(seats, base, cfg), TotalPrice(reordered, base, cfg))

	sum := int64(0)
	for _, s := range seats {
		sum += SeatPrice(s, base, cfg)
	}
	assert.Equal(t, sum, TotalPrice(seats, base, cfg))

	assert.Equal(t, int64(0), TotalPrice(nil, base, cfg))
}

func TestBuildDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	first := Build(cfg)
	second := Build(cfg)
	require.Equal(t, first, second)

	require.Len(t, first, len(cfg.Rows))
	seen := make(map[string]bool)
	for i, row := range first {
		assert.Equal(t, cfg.Rows[i], row.Label)
		assert.Len(t, append(append([]string{}, row.Left...), row.Right...), cfg.SeatsPerRow)
		assert.NotEmpty(t, row.Left)
		assert.NotEmpty(t, row.Right)
		for _, id := range append(append([]string{}, row.Left...), row.Right...) {
			assert.False(t, seen[id], "duplicate seat id %s", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, len(cfg.Rows)*cfg.SeatsPerRow)
}

func TestBuildDefaultSplit(t *testing.T) {
	cfg := DefaultConfig() // 14 seats per row -> 6 left of the aisle
	rows := Build(cfg)
	require.NotEmpty(t, rows)
	assert.Len(t, rows[0].Left, 6)
	assert.Len(t, rows[0].Right, 8)

	cfg.LeftBlock = 4
	rows = Build(cfg)
	assert.Len(t, rows[0].Left, 4)
	assert.Len(t, rows[0].Right, 10)
}

func TestRowLetter(t *testing.T) {
	assert.Equal(t, "F", RowLetter("F7"))
	assert.Equal(t, "AA", RowLetter("AA12"))
	assert.Equal(t, "", RowLetter("7"))
}

func TestContains(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, Contains("A1", cfg))
	assert.True(t, Contains("J14", cfg))
	assert.False(t, Contains("J15", cfg))
	assert.False(t, Contains("K1", cfg))
	assert.False(t, Contains("A0", cfg))
	assert.False(t, Contains("A", cfg))
	assert.False(t, Contains("", cfg))
}

func TestIsSelectable(t *testing.T) {
	occupied := map[string]string{"B3": "booking-41"}
	assert.False(t, IsSelectable("B3", occupied))
	assert.True(t, IsSelectable("B4", occupied))
}
