package calcsheet

import (
	"errors"
	"fmt"
)

// ErrRowOutOfRange is returned when a formula points past the emitted rows.
var ErrRowOutOfRange = errors.New("formula row out of range")

// SheetRow is one output row with named columns. Cells is the only place
// the named fields are mapped onto column positions.
type SheetRow struct {
	Estimate    any
	Particulars any
	Takeoff     any
	Unit        any
	Qty         any
	Length      any
	Width       any
	Height      any
	FT          any
	SqFt        any
	Lbs         any
	CY          any
	QtyFinal    any
}

// Cells serializes the row to the 13 positional cells A through M.
func (r SheetRow) Cells() []any {
	return []any{
		r.Estimate, r.Particulars, r.Takeoff, r.Unit, r.Qty, r.Length,
		r.Width, r.Height, r.FT, r.SqFt, r.Lbs, r.CY, r.QtyFinal,
	}
}

// set stores v in the named column position.
func (r *SheetRow) set(col int, v any) {
	switch col {
	case ColEstimate:
		r.Estimate = v
	case ColParticulars:
		r.Particulars = v
	case ColTakeoff:
		r.Takeoff = v
	case ColUnit:
		r.Unit = v
	case ColQty:
		r.Qty = v
	case ColLength:
		r.Length = v
	case ColWidth:
		r.Width = v
	case ColHeight:
		r.Height = v
	case ColFT:
		r.FT = v
	case ColSqFt:
		r.SqFt = v
	case ColLbs:
		r.Lbs = v
	case ColCY:
		r.CY = v
	case ColQtyFinal:
		r.QtyFinal = v
	}
}

// FormulaKind selects the generator applied to a FormulaSpec.
type FormulaKind string

const (
	KindData         FormulaKind = "data"
	KindSum          FormulaKind = "sum"
	KindHavg         FormulaKind = "havg"
	KindTrench       FormulaKind = "trench"
	KindSectionTotal FormulaKind = "section_total"
)

// TrenchConstants are the fixed width and depth multipliers of a
// synthetic trench line.
type TrenchConstants struct {
	Width  float64
	Height float64
}

// FormulaSpec describes what one sheet row needs computed.
type FormulaSpec struct {
	Row        RowRef
	Kind       FormulaKind
	ItemType   ItemType
	Section    string
	Subsection string
	Parsed     ParsedItem

	// Sum rows aggregate FirstDataRow..LastDataRow.
	FirstDataRow RowRef
	LastDataRow  RowRef
	// SumColumns are the derived columns a sum row totals.
	SumColumns []int
	// SumRows lists the rows a section total adds up.
	SumRows []RowRef
	// SourceRow is the row a Havg or trench line reads from.
	SourceRow RowRef
	Constants TrenchConstants
	// CYEligible marks sum rows that feed the Foundation total.
	CYEligible bool
}

// SheetBuilder accumulates rows and their formula specs. Row numbers are
// handed out at append time, so every spec it records points at an
// already emitted row.
type SheetBuilder struct {
	rows     [][]any
	formulas []FormulaSpec
}

// NewSheetBuilder returns an empty builder.
func NewSheetBuilder() *SheetBuilder {
	return &SheetBuilder{}
}

// AppendRow emits a row without a formula and returns its row number.
func (b *SheetBuilder) AppendRow(r SheetRow) RowRef {
	b.rows = append(b.rows, r.Cells())
	return RowRef(len(b.rows))
}

// AppendBlank emits an empty spacer row.
func (b *SheetBuilder) AppendBlank() RowRef {
	return b.AppendRow(SheetRow{})
}

// AppendWithFormula emits a row and records spec against it.
func (b *SheetBuilder) AppendWithFormula(r SheetRow, spec FormulaSpec) RowRef {
	ref := b.AppendRow(r)
	spec.Row = ref
	b.formulas = append(b.formulas, spec)
	return ref
}

// AppendFormula records a spec for a row emitted earlier, such as a
// section header whose total is known only after its subsections.
func (b *SheetBuilder) AppendFormula(spec FormulaSpec) error {
	if !spec.Row.Valid() || int(spec.Row) > len(b.rows) {
		return fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, spec.Row, len(b.rows))
	}
	b.formulas = append(b.formulas, spec)
	return nil
}

// Len returns the number of emitted rows.
func (b *SheetBuilder) Len() int { return len(b.rows) }

// Rows returns the emitted rows.
func (b *SheetBuilder) Rows() [][]any { return b.rows }

// Formulas returns the recorded specs in recording order.
func (b *SheetBuilder) Formulas() []FormulaSpec { return b.formulas }
