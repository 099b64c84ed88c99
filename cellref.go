package calcsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Sheet column positions, 0-based.
const (
	ColEstimate = iota
	ColParticulars
	ColTakeoff
	ColUnit
	ColQty
	ColLength
	ColWidth
	ColHeight
	ColFT
	ColSqFt
	ColLbs
	ColCY
	ColQtyFinal
)

// RowRef is a 1-based sheet row number handed out by SheetBuilder. The
// zero value means "no row".
type RowRef int

// Valid reports whether r points at a row.
func (r RowRef) Valid() bool { return r > 0 }

func (r RowRef) String() string { return strconv.Itoa(int(r)) }

// Cell returns the A1 name of column col on this row, e.g. "H12".
func (r RowRef) Cell(col int) string { return ColToName(col) + r.String() }

// CellRef represents a single cell reference in a workbook.
type CellRef struct {
	Sheet string // sheet name (empty = current sheet)
	Row   int    // 0-based row index
	Col   int    // 0-based column index
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// ParseCellRef parses a cell reference string like "A1", "Sheet1!B5", or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	var sheet string
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}
	cellPart = strings.ReplaceAll(cellPart, "$", "")

	i := 0
	for i < len(cellPart) && isAlpha(cellPart[i]) {
		i++
	}
	if i == 0 || i == len(cellPart) {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}
	col, err := NameToCol(cellPart[:i])
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}
	row, err := strconv.Atoi(cellPart[i:])
	if err != nil || row < 1 {
		return CellRef{}, fmt.Errorf("invalid row in cell reference: %q", s)
	}
	return CellRef{Sheet: sheet, Row: row - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the CellRef as "Sheet1!A1" or "A1" if no sheet.
func (c CellRef) String() string {
	if c.Sheet != "" {
		return c.Sheet + "!" + c.CellName()
	}
	return c.CellName()
}

// CellName returns just the cell part like "A1" without sheet name.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + strconv.Itoa(c.Row+1)
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA"
func ColToName(col int) string {
	result := ""
	col++
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}
