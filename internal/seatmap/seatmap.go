// Package seatmap builds the addressable seat grid for an auditorium and
// classifies seats into price tiers.  It is pure: the same RowConfig always
// yields the same map, the same classification and the same prices, which is
// what the availability overlay and the booking session rely on.
package seatmap

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SeatType is the price tier of a seat.  Every row is classified into
// exactly one type via RowConfig.
type SeatType string

const (
	SeatRegular SeatType = "REGULAR"
	SeatVIP     SeatType = "VIP"
	SeatCouple  SeatType = "COUPLE"
)

// Default price multipliers per seat type.  They can be overridden per
// auditorium through RowConfig.Multipliers.
var defaultMultipliers = map[SeatType]decimal.Decimal{
	SeatRegular: decimal.NewFromFloat(1.0),
	SeatVIP:     decimal.NewFromFloat(1.5),
	SeatCouple:  decimal.NewFromFloat(2.0),
}

// RowConfig describes the seating layout of one auditorium.
//
// Fields:
//  Rows        – ordered row letters present in the map (e.g. A..J).
//  SeatsPerRow – number of seats generated per row.
//  VIPRows     – rows classified as VIP.
//  CoupleRows  – rows classified as couple seats.
//  RegularRows – rows explicitly classified regular; rows absent from all
//                three sets default to regular as well.
//  Multipliers – optional per-type price multipliers; nil uses the defaults
//                (regular 1.0, VIP 1.5, couple 2.0).
//  LeftBlock   – seats placed left of the centre aisle; 0 means the default
//                split of SeatsPerRow/2 - 1.
type RowConfig struct {
	Rows        []string
	SeatsPerRow int
	VIPRows     []string
	CoupleRows  []string
	RegularRows []string
	Multipliers map[SeatType]decimal.Decimal
	LeftBlock   int
}

// DefaultConfig returns the standard 10x14 auditorium layout: rows A..J with
// 14 seats each, VIP in F..H and couple seats in the back rows I and J.
func DefaultConfig() RowConfig {
	return RowConfig{
		Rows:        []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		SeatsPerRow: 14,
		VIPRows:     []string{"F", "G", "H"},
		CoupleRows:  []string{"I", "J"},
	}
}

// Validate checks that the VIP, couple and regular row sets are pairwise
// disjoint.  Rows listed in none of the sets are fine (they default to
// regular), but a row listed in two sets is a configuration error.
func (c RowConfig) Validate() error {
	seen := make(map[string]string)
	check := func(rows []string, set string) error {
		for _, r := range rows {
			if prev, ok := seen[r]; ok {
				return fmt.Errorf("row %s listed in both %s and %s", r, prev, set)
			}
			seen[r] = set
		}
		return nil
	}
	if err := check(c.VIPRows, "vip"); err != nil {
		return err
	}
	if err := check(c.CoupleRows, "couple"); err != nil {
		return err
	}
	return check(c.RegularRows, "regular")
}

// Classify returns the seat type for a row letter.  VIP wins over couple;
// anything not listed in either set is regular, whether or not it appears
// in RegularRows.
func Classify(row string, cfg RowConfig) SeatType {
	for _, r := range cfg.VIPRows {
		if r == row {
			return SeatVIP
		}
	}
	for _, r := range cfg.CoupleRows {
		if r == row {
			return SeatCouple
		}
	}
	return SeatRegular
}

// Multiplier returns the price multiplier for a seat type under this config.
func (c RowConfig) Multiplier(t SeatType) decimal.Decimal {
	if c.Multipliers != nil {
		if m, ok := c.Multipliers[t]; ok {
			return m
		}
	}
	if m, ok := defaultMultipliers[t]; ok {
		return m
	}
	return defaultMultipliers[SeatRegular]
}

// RowLetter extracts the row portion of a seat id such as "F7" or "AA12".
// The row is the leading run of letters; an id without letters yields "".
func RowLetter(seatID string) string {
	i := 0
	for i < len(seatID) {
		ch := seatID[i]
		if ch < 'A' || ch > 'Z' {
			break
		}
		i++
	}
	return seatID[:i]
}

// SeatPrice computes the price in cents for one seat: the showtime base
// price scaled by the multiplier of the seat's row type, rounded to a whole
// cent.  Callers supply a valid non-negative base price.
func SeatPrice(seatID string, baseCents int64, cfg RowConfig) int64 {
	t := Classify(RowLetter(seatID), cfg)
	return decimal.NewFromInt(baseCents).Mul(cfg.Multiplier(t)).Round(0).IntPart()
}

// TotalPrice sums SeatPrice over the given seats.  An empty selection costs
// zero, and the result does not depend on the order of the slice.
func TotalPrice(seats []string, baseCents int64, cfg RowConfig) int64 {
	var total int64
	for _, s := range seats {
		total += SeatPrice(s, baseCents, cfg)
	}
	return total
}

// Row is one generated seating row: the seat ids on either side of the
// centre aisle, in left-to-right order.
type Row struct {
	Label string   `json:"label"`
	Type  SeatType `json:"type"`
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// Build generates the full seat grid for a config.  Seat ids are the row
// letter followed by the 1-based seat number and are unique across the map.
// The split point between the left and right blocks is cosmetic; the total
// per row always equals SeatsPerRow.
func Build(cfg RowConfig) []Row {
	split := cfg.LeftBlock
	if split <= 0 {
		split = cfg.SeatsPerRow/2 - 1
	}
	if split >= cfg.SeatsPerRow {
		split = cfg.SeatsPerRow - 1
	}
	rows := make([]Row, 0, len(cfg.Rows))
	for _, label := range cfg.Rows {
		r := Row{
			Label: label,
			Type:  Classify(label, cfg),
			Left:  make([]string, 0, split),
			Right: make([]string, 0, cfg.SeatsPerRow-split),
		}
		for n := 1; n <= cfg.SeatsPerRow; n++ {
			id := fmt.Sprintf("%s%d", label, n)
			if n <= split {
				r.Left = append(r.Left, id)
			} else {
				r.Right = append(r.Right, id)
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// SeatIDs flattens the grid into the ordered list of all seat ids.
func SeatIDs(cfg RowConfig) []string {
	ids := make([]string, 0, len(cfg.Rows)*cfg.SeatsPerRow)
	for _, row := range Build(cfg) {
		ids = append(ids, row.Left...)
		ids = append(ids, row.Right...)
	}
	return ids
}

// Contains reports whether the seat id belongs to the configured map.
func Contains(seatID string, cfg RowConfig) bool {
	row := RowLetter(seatID)
	if row == "" || !strings.HasPrefix(seatID, row) {
		return false
	}
	found := false
	for _, r := range cfg.Rows {
		if r == row {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	num := seatID[len(row):]
	if num == "" {
		return false
	}
	n := 0
	for i := 0; i < len(num); i++ {
		if num[i] < '0' || num[i] > '9' {
			return false
		}
		n = n*10 + int(num[i]-'0')
	}
	return n >= 1 && n <= cfg.SeatsPerRow
}

// IsSelectable reports whether a seat can still be picked: it must not be a
// key of the occupied set.
func IsSelectable(seatID string, occupied map[string]string) bool {
	_, taken := occupied[seatID]
	return !taken
}
