package calcsheet

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Header names looked up in the takeoff export.
const (
	HeaderDigitizerItem = "Digitizer Item"
	HeaderTotal         = "Total"
	HeaderUnits         = "Units"
	HeaderEstimate      = "Estimate"
	HeaderPage          = "Page"
	HeaderCount         = "Count"
)

var headerFolder = cases.Fold()

func foldHeader(s string) string {
	return headerFolder.String(strings.Join(strings.Fields(s), " "))
}

// RawData is the takeoff table: a header row followed by data rows.
type RawData struct {
	Headers []string
	Rows    [][]any
}

// NewRawData splits rawData[0] off as the header row. An empty input
// produces a table with no headers, which every processor treats as
// "required column missing".
func NewRawData(rawData [][]any) *RawData {
	if len(rawData) == 0 {
		return &RawData{}
	}
	headers := make([]string, len(rawData[0]))
	for i, h := range rawData[0] {
		headers[i] = cellString(h)
	}
	return &RawData{Headers: headers, Rows: rawData[1:]}
}

// Column returns the index of the named header (case-insensitive,
// whitespace-trimmed) or -1.
func (d *RawData) Column(name string) int {
	want := foldHeader(name)
	for i, h := range d.Headers {
		if foldHeader(h) == want {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), nil when out of range.
func (d *RawData) Cell(row, col int) any {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return nil
	}
	return d.Rows[row][col]
}

// columns holds the resolved positions of the columns processors use.
type columns struct {
	item, total, units, estimate int
}

// requiredColumns resolves the three mandatory columns; ok is false when
// any of them is missing.
func (d *RawData) requiredColumns() (columns, bool) {
	c := columns{
		item:     d.Column(HeaderDigitizerItem),
		total:    d.Column(HeaderTotal),
		units:    d.Column(HeaderUnits),
		estimate: d.Column(HeaderEstimate),
	}
	return c, c.item >= 0 && c.total >= 0 && c.units >= 0
}

// isBlankRow reports whether the row acts as a group separator: no item
// text, or no quantity.
func (d *RawData) isBlankRow(row int, c columns) bool {
	return strings.TrimSpace(cellString(d.Cell(row, c.item))) == "" ||
		strings.TrimSpace(cellString(d.Cell(row, c.total))) == ""
}

// blankBetween reports whether any separator row lies strictly between two
// raw row indexes.
func (d *RawData) blankBetween(from, to int, c columns) bool {
	for r := from + 1; r < to; r++ {
		if d.isBlankRow(r, c) {
			return true
		}
	}
	return false
}

// cellString renders a cell as text. Whole floats print without decimals.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// cellNumber coerces a cell to a number; blanks and text give 0.
func cellNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// RowClaimTracker records which raw rows a processor has consumed so that
// broader processors later in the pipeline skip them.
type RowClaimTracker struct {
	claimed map[int]string
}

// NewRowClaimTracker returns an empty tracker.
func NewRowClaimTracker() *RowClaimTracker {
	return &RowClaimTracker{claimed: make(map[int]string)}
}

// Claim marks row as used by the named category. It returns false when the
// row was already claimed.
func (t *RowClaimTracker) Claim(row int, by string) bool {
	if _, ok := t.claimed[row]; ok {
		return false
	}
	t.claimed[row] = by
	return true
}

// IsClaimed reports whether row has been consumed.
func (t *RowClaimTracker) IsClaimed(row int) bool {
	_, ok := t.claimed[row]
	return ok
}

// ClaimedBy returns the category that consumed row.
func (t *RowClaimTracker) ClaimedBy(row int) string {
	return t.claimed[row]
}

// Len returns the number of claimed rows.
func (t *RowClaimTracker) Len() int {
	return len(t.claimed)
}
