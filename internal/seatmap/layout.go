package seatmap

import "strings"

// RowLabelFor converts a zero-based row index to an alphabetical label
// like A, B, …, Z, AA, AB.  Negative indices yield "".
func RowLabelFor(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// ConfigFromLayout builds a RowConfig from a room's stored layout: the
// number of rows (labelled A, B, C…), seats per row, and comma-separated
// VIP/couple row letters.  Unknown or empty entries in the CSV lists are
// dropped; rows listed in neither set classify as regular.
func ConfigFromLayout(rowCount, seatsPerRow int, vipCSV, coupleCSV string) RowConfig {
	rows := make([]string, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		rows = append(rows, RowLabelFor(i))
	}
	return RowConfig{
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		VIPRows:     splitRows(vipCSV),
		CoupleRows:  splitRows(coupleCSV),
	}
}

func splitRows(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
