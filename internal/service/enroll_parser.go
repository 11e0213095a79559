package service

import (
	"strings"

	"github.com/Zxun2/teammates/internal/models"
)

// Canonical spreadsheet column headers, in enroll field order. The
// existing-students grid always renders columns in this order; the
// new-students grid may not.
var enrollColumnHeaders = []string{"Section", "Team", "Name", "Email", "Comments"}

// ParseGrid extracts candidate enroll requests from raw grid rows, keyed
// by their originating row index. The header sequence declares which cell
// position holds which field, so the on-screen column order does not
// matter. Rows whose cells are all empty are not candidates and are
// skipped; any present cell is trimmed, with the empty string as the
// canonical absent value.
func ParseGrid(rows [][]string, headers []string) map[int]models.EnrollRequest {
	positions := make(map[string]int, len(enrollColumnHeaders))
	for _, canonical := range enrollColumnHeaders {
		positions[canonical] = headerIndex(headers, canonical)
	}

	requests := make(map[int]models.EnrollRequest)
	for index, row := range rows {
		if rowIsBlank(row) {
			continue
		}
		requests[index] = models.EnrollRequest{
			Section:  cellAt(row, positions["Section"]),
			Team:     cellAt(row, positions["Team"]),
			Name:     cellAt(row, positions["Name"]),
			Email:    cellAt(row, positions["Email"]),
			Comments: cellAt(row, positions["Comments"]),
		}
	}
	return requests
}

func headerIndex(headers []string, name string) int {
	for i, header := range headers {
		if strings.EqualFold(strings.TrimSpace(header), name) {
			return i
		}
	}
	return -1
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// cellAt returns the trimmed cell value, or the canonical empty string
// when the column is absent or the row is short.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
