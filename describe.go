package calcsheet

import (
	"fmt"
	"strings"
)

type outlineEntry struct {
	subsection  string
	first, last RowRef
	items, sums int
}

// Describe returns a human-readable outline of a generated sheet: every
// section and subsection with the rows it occupies and how many items and
// sum rows it holds. Useful for checking a takeoff without opening Excel.
func Describe(r *Result) string {
	var (
		sections []string
		entries  = make(map[string][]*outlineEntry)
		totals   = make(map[string]RowRef)
	)
	for _, f := range r.Formulas {
		if f.Section == "" {
			continue
		}
		if f.Kind == KindSectionTotal {
			totals[f.Section] = f.Row
			continue
		}
		list, ok := entries[f.Section]
		if !ok {
			sections = append(sections, f.Section)
		}
		var e *outlineEntry
		if n := len(list); n > 0 && list[n-1].subsection == f.Subsection {
			e = list[n-1]
		} else {
			e = &outlineEntry{subsection: f.Subsection, first: f.Row}
			entries[f.Section] = append(list, e)
		}
		if f.Row > e.last {
			e.last = f.Row
		}
		switch f.Kind {
		case KindData:
			e.items++
		case KindSum:
			e.sums++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\n", r.TemplateID)
	fmt.Fprintf(&b, "Rows: %d, formulas: %d\n", len(r.Rows), len(r.Formulas))
	for _, sec := range sections {
		b.WriteString(sec)
		if row, ok := totals[sec]; ok {
			fmt.Fprintf(&b, " (CY total at %s)", row.Cell(ColCY))
		}
		b.WriteByte('\n')
		for _, e := range entries[sec] {
			name := e.subsection
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(&b, "  %s rows %d-%d items=%d sums=%d\n", name, e.first, e.last, e.items, e.sums)
		}
	}
	if t := r.RockExcavationTotals; t.TotalSQFT > 0 {
		fmt.Fprintf(&b, "Rock excavation: %s SQ FT, %s CY\n", formatNum(roundTo(t.TotalSQFT, 2)), formatNum(roundTo(t.TotalCY, 2)))
	}
	if r.LineDrillTotalFT > 0 {
		fmt.Fprintf(&b, "Line drill: %s FT\n", formatNum(roundTo(r.LineDrillTotalFT, 2)))
	}
	return b.String()
}
