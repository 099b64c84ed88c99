package calcsheet

import (
	"fmt"
	"sort"
)

// CellWrite is one cell of the rendered sheet: a value, or a formula
// without the leading "=".
type CellWrite struct {
	Ref     string
	Row     int // 1-based
	Col     int // 0-based
	Value   any
	Formula string
}

// Cells applies every formula spec to the emitted rows and returns the
// non-empty cells in row-major order. Formulas replace values in the same
// cell.
func (r *Result) Cells() []CellWrite {
	cells := make(map[[2]int]CellWrite)
	put := func(row, col int, v any, formula string) {
		cells[[2]int{row, col}] = CellWrite{
			Ref:     RowRef(row).Cell(col),
			Row:     row,
			Col:     col,
			Value:   v,
			Formula: formula,
		}
	}
	for i, row := range r.Rows {
		for col, v := range row {
			if v == nil {
				continue
			}
			put(i+1, col, v, "")
		}
	}
	for _, spec := range r.Formulas {
		fs := GenerateFormulas(spec)
		for _, col := range formulaColumns {
			switch v := fs.Get(col).(type) {
			case string:
				put(int(spec.Row), col, nil, v)
			case float64:
				put(int(spec.Row), col, v, "")
			}
		}
	}

	out := make([]CellWrite, 0, len(cells))
	for _, c := range cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Sink receives rendered cells. Refs are A1 names.
type Sink interface {
	SetCellValue(ref string, value any) error
	SetCellFormula(ref string, formula string) error
}

// Render writes every cell of the result to sink.
func Render(r *Result, sink Sink) error {
	for _, c := range r.Cells() {
		var err error
		if c.Formula != "" {
			err = sink.SetCellFormula(c.Ref, c.Formula)
		} else {
			err = sink.SetCellValue(c.Ref, c.Value)
		}
		if err != nil {
			return fmt.Errorf("write cell %s: %w", c.Ref, err)
		}
	}
	return nil
}
