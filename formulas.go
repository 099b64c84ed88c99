package calcsheet

import (
	"fmt"
	"strings"
)

// FormulaSet holds what one row's cells should contain. Each field is nil
// (left blank for manual entry), a float64 literal, or a formula string
// without the leading "=".
type FormulaSet struct {
	Takeoff  any
	Qty      any
	Length   any
	Width    any
	Height   any
	FT       any
	SqFt     any
	Lbs      any
	CY       any
	QtyFinal any
}

// Get returns the entry for a column position.
func (fs FormulaSet) Get(col int) any {
	switch col {
	case ColTakeoff:
		return fs.Takeoff
	case ColQty:
		return fs.Qty
	case ColLength:
		return fs.Length
	case ColWidth:
		return fs.Width
	case ColHeight:
		return fs.Height
	case ColFT:
		return fs.FT
	case ColSqFt:
		return fs.SqFt
	case ColLbs:
		return fs.Lbs
	case ColCY:
		return fs.CY
	case ColQtyFinal:
		return fs.QtyFinal
	}
	return nil
}

func (fs *FormulaSet) set(col int, v any) {
	switch col {
	case ColTakeoff:
		fs.Takeoff = v
	case ColQty:
		fs.Qty = v
	case ColLength:
		fs.Length = v
	case ColWidth:
		fs.Width = v
	case ColHeight:
		fs.Height = v
	case ColFT:
		fs.FT = v
	case ColSqFt:
		fs.SqFt = v
	case ColLbs:
		fs.Lbs = v
	case ColCY:
		fs.CY = v
	case ColQtyFinal:
		fs.QtyFinal = v
	}
}

// formulaColumns are the columns a FormulaSet can fill, C through M.
var formulaColumns = []int{
	ColTakeoff, ColQty, ColLength, ColWidth, ColHeight,
	ColFT, ColSqFt, ColLbs, ColCY, ColQtyFinal,
}

// derivedColumns are the computed columns a sum row can total.
var derivedColumns = []int{ColFT, ColSqFt, ColLbs, ColCY, ColQtyFinal}

// FormulaFunc builds the cell contents for one row.
type FormulaFunc func(spec FormulaSpec) FormulaSet

// rowf expands "{r}" in a formula template to the row number.
func rowf(tmpl string, r RowRef) string {
	return strings.ReplaceAll(tmpl, "{r}", r.String())
}

// lit returns v as a literal, or nil for zero so the cell stays blank.
func lit(v float64) any {
	if v == 0 {
		return nil
	}
	return roundTo(v, 6)
}

// TrenchFactors are the width and depth multipliers of the synthetic
// trench lines, in emission order.
var TrenchFactors = []struct {
	Type  ItemType
	Label string
	TrenchConstants
}{
	{TypeTrenchDemo, "Demo", TrenchConstants{Width: 2.5, Height: 0.5}},
	{TypeTrenchExcavation, "Excavation", TrenchConstants{Width: 2.5, Height: 2.5}},
	{TypeTrenchBackfill, "Backfill", TrenchConstants{Width: 2.5, Height: 1.67}},
	{TypeTrenchGravel, "Gravel", TrenchConstants{Width: 2.5, Height: 0.33}},
	{TypeTrenchPatchback, "Patchback", TrenchConstants{Width: 2.5, Height: 0.5}},
}

// Area items: the takeoff is square feet.
func areaFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{Height: lit(s.Parsed.Height), SqFt: rowf("C{r}", s.Row)}
}

// Slab items: square feet times thickness.
func slabFormulas(s FormulaSpec) FormulaSet {
	fs := areaFormulas(s)
	fs.CY = rowf("J{r}*H{r}/27", s.Row)
	return fs
}

// Bulk excavation adds the 1.3 swell factor.
func excavationFormulas(s FormulaSpec) FormulaSet {
	fs := slabFormulas(s)
	fs.QtyFinal = rowf("L{r}*1.3", s.Row)
	return fs
}

func lineDrillFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{
		Height: lit(s.Parsed.Height),
		FT:     rowf("C{r}", s.Row),
		SqFt:   rowf("I{r}*H{r}", s.Row),
	}
}

func linearFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{FT: rowf("C{r}", s.Row)}
}

func countFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{QtyFinal: rowf("C{r}", s.Row)}
}

// Wall and beam items: FT = takeoff, SQ FT = FT x H, CY = SQ FT x W / 27.
func wallFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{
		Width:  lit(s.Parsed.Width),
		Height: lit(s.Parsed.Height),
		FT:     rowf("C{r}", s.Row),
		SqFt:   rowf("I{r}*H{r}", s.Row),
		CY:     rowf("J{r}*G{r}/27", s.Row),
	}
}

// Footing and box items: SQ FT = count x L x W, CY = SQ FT x H / 27.
func boxFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{
		Length:   lit(s.Parsed.Length),
		Width:    lit(s.Parsed.Width),
		Height:   lit(s.Parsed.Height),
		SqFt:     rowf("C{r}*F{r}*G{r}", s.Row),
		CY:       rowf("J{r}*H{r}/27", s.Row),
		QtyFinal: rowf("C{r}", s.Row),
	}
}

// Pile items: FT = height x count, LBS = FT x unit weight.
func pileFormulas(s FormulaSpec) FormulaSet {
	fs := FormulaSet{
		Height:   lit(s.Parsed.CalculatedHeight),
		FT:       rowf("H{r}*C{r}", s.Row),
		QtyFinal: rowf("C{r}", s.Row),
	}
	if s.Parsed.Weight > 0 {
		fs.Lbs = rowf("I{r}*", s.Row) + formatNum(s.Parsed.Weight)
	}
	return fs
}

// Concrete-filled piles add the shaft volume.
func concretePileFormulas(s FormulaSpec) FormulaSet {
	fs := pileFormulas(s)
	if s.Parsed.Diameter > 0 {
		fs.CY = rowf("I{r}*", s.Row) + formatNum(roundTo(circleArea(s.Parsed.Diameter), 6)) + "/27"
	}
	return fs
}

// Dual-diameter piles weigh the casing over H and the socket over RS.
func drilledFoundationPileFormulas(s FormulaSpec) FormulaSet {
	fs := concretePileFormulas(s)
	p := s.Parsed
	if p.Dual {
		fs.Lbs = fmt.Sprintf("C%s*(%s*%s+%s*%s)", s.Row,
			formatNum(p.HeightRaw), formatNum(p.Weight),
			formatNum(p.RockSocket), formatNum(p.Weight2))
	}
	return fs
}

func anchorFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{
		Height:   lit(s.Parsed.CalculatedHeight),
		FT:       rowf("H{r}*C{r}", s.Row),
		QtyFinal: rowf("C{r}", s.Row),
	}
}

// Sheet piles weigh by wall area.
func sheetPileFormulas(s FormulaSpec) FormulaSet {
	fs := FormulaSet{
		Height: lit(s.Parsed.CalculatedHeight),
		FT:     rowf("C{r}", s.Row),
		SqFt:   rowf("I{r}*H{r}", s.Row),
	}
	if s.Parsed.Weight > 0 {
		fs.Lbs = rowf("J{r}*", s.Row) + formatNum(s.Parsed.Weight)
	}
	return fs
}

// Walers and supporting angles: FT = takeoff x multiplier.
func steelMemberFormulas(s FormulaSpec) FormulaSet {
	fs := FormulaSet{
		Qty: lit(s.Parsed.Qty),
		FT:  rowf("C{r}*E{r}", s.Row),
	}
	if s.Parsed.Weight > 0 {
		fs.Lbs = rowf("I{r}*", s.Row) + formatNum(s.Parsed.Weight)
	}
	return fs
}

// Rakers are counted; each is L long.
func rakerFormulas(s FormulaSpec) FormulaSet {
	fs := steelMemberFormulas(s)
	fs.Length = lit(s.Parsed.Length)
	fs.FT = rowf("C{r}*E{r}*F{r}", s.Row)
	fs.QtyFinal = rowf("C{r}*E{r}", s.Row)
	return fs
}

// Rock bolts: the takeoff is face area, bolts are laid out on a square
// grid at the O.C. spacing.
func rockBoltFormulas(s FormulaSpec) FormulaSet {
	fs := FormulaSet{
		Length: lit(s.Parsed.CalculatedLength),
		FT:     rowf("F{r}*M{r}", s.Row),
	}
	if s.Parsed.Spacing > 0 {
		fs.Width = lit(s.Parsed.Spacing)
		fs.QtyFinal = rowf("ROUNDUP(C{r}/(G{r}*G{r}),0)", s.Row)
	} else {
		fs.QtyFinal = rowf("C{r}", s.Row)
	}
	return fs
}

// Guide walls keep the exact width expression.
func guideWallFormulas(s FormulaSpec) FormulaSet {
	fs := wallFormulas(s)
	if strings.ContainsAny(s.Parsed.WidthFormula, "+/") {
		fs.Width = s.Parsed.WidthFormula
	}
	return fs
}

// Strip footings: ST is W x H, SF and WF carry the first dimension in F.
func stripFootingFormulas(s FormulaSpec) FormulaSet {
	p := s.Parsed
	fs := FormulaSet{
		Height: lit(p.Height),
		FT:     rowf("C{r}", s.Row),
		CY:     rowf("J{r}*H{r}/27", s.Row),
	}
	if p.SubType == StripFootingSF || p.SubType == StripFootingWF {
		fs.Length = lit(p.Length)
		fs.SqFt = rowf("I{r}*F{r}", s.Row)
	} else {
		fs.Width = lit(p.Width)
		fs.SqFt = rowf("I{r}*G{r}", s.Row)
	}
	return fs
}

// Trench lines take the previous row's takeoff and fixed multipliers.
func trenchLineFormulas(s FormulaSpec) FormulaSet {
	return FormulaSet{
		Takeoff: "C" + s.SourceRow.String(),
		Width:   lit(s.Constants.Width),
		Height:  lit(s.Constants.Height),
		SqFt:    rowf("C{r}*G{r}", s.Row),
		CY:      rowf("J{r}*H{r}/27", s.Row),
	}
}

var formulaTable = map[ItemType]FormulaFunc{
	TypeExcavation:     excavationFormulas,
	TypeBackfill:       excavationFormulas,
	TypeRockExcavation: excavationFormulas,
	TypeLineDrill:      lineDrillFormulas,

	TypeTrench:           linearFormulas,
	TypeTrenchDemo:       trenchLineFormulas,
	TypeTrenchExcavation: trenchLineFormulas,
	TypeTrenchBackfill:   trenchLineFormulas,
	TypeTrenchGravel:     trenchLineFormulas,
	TypeTrenchPatchback:  trenchLineFormulas,

	TypeDrilledSoldierPile: pileFormulas,
	TypeHPSoldierPile:      pileFormulas,
	TypeSheetPile:          sheetPileFormulas,
	TypeTimberLagging:      areaFormulas,
	TypeTimberSheeting:     areaFormulas,
	TypeWaler:              steelMemberFormulas,
	TypeRaker:              rakerFormulas,
	TypeSupportingAngle:    steelMemberFormulas,
	TypeRockAnchor:         anchorFormulas,
	TypeTieBack:            anchorFormulas,
	TypeAnchor:             anchorFormulas,
	TypeRockBolt:           rockBoltFormulas,
	TypeGuideWall:          guideWallFormulas,
	TypeHeelBlock:          boxFormulas,
	TypeButton:             boxFormulas,
	TypeSoilRetentionPier:  boxFormulas,
	TypeShotcrete:          slabFormulas,

	TypeDrilledFoundationPile: drilledFoundationPileFormulas,
	TypeDrivenPile:            pileFormulas,
	TypeCFAPile:               concretePileFormulas,
	TypeStelcorPile:           pileFormulas,
	TypeMiscPile:              pileFormulas,
	TypePileCap:               boxFormulas,
	TypeStripFooting:          stripFootingFormulas,
	TypeIsolatedFooting:       boxFormulas,
	TypePier:                  boxFormulas,
	TypeGradeBeam:             wallFormulas,
	TypeTieBeam:               wallFormulas,
	TypeFoundationWall:        wallFormulas,
	TypeRetainingWall:         wallFormulas,
	TypePitSlab:               slabFormulas,
	TypePitWall:               wallFormulas,
	TypePitSump:               boxFormulas,
	TypeMat:                   slabFormulas,
	TypeHaunch:                wallFormulas,
	TypeSOG:                   slabFormulas,
	TypeSlopeTransition:       wallFormulas,

	TypeWaterproofingExterior:   areaFormulas,
	TypeWaterproofingNegative:   areaFormulas,
	TypeWaterproofingHorizontal: areaFormulas,

	TypeCIPSlab:      slabFormulas,
	TypeColumn:       boxFormulas,
	TypeBeam:         wallFormulas,
	TypeConcreteWall: wallFormulas,
	TypeStair:        countFormulas,

	TypeBPPSidewalk: slabFormulas,
	TypeBPPCurb:     linearFormulas,
	TypeBPPDriveway: slabFormulas,
	TypeBPPRamp:     countFormulas,
}

func init() {
	for _, t := range AllItemTypes {
		if _, ok := formulaTable[t]; !ok {
			panic(fmt.Sprintf("calcsheet: no formula generator for item type %q", t))
		}
	}
}

// FormulaFor returns the generator registered for an item type.
func FormulaFor(t ItemType) (FormulaFunc, bool) {
	fn, ok := formulaTable[t]
	return fn, ok
}

// GenerateFormulas turns one spec into cell contents.
func GenerateFormulas(spec FormulaSpec) FormulaSet {
	switch spec.Kind {
	case KindData, KindTrench:
		if fn, ok := formulaTable[spec.ItemType]; ok {
			return fn(spec)
		}
	case KindSum:
		return sumFormulas(spec)
	case KindHavg:
		return havgFormulas(spec)
	case KindSectionTotal:
		return sectionTotalFormulas(spec)
	}
	return FormulaSet{}
}

func sumFormulas(s FormulaSpec) FormulaSet {
	var fs FormulaSet
	for _, col := range s.SumColumns {
		name := ColToName(col)
		fs.set(col, fmt.Sprintf("SUM(%s%s:%s%s)", name, s.FirstDataRow, name, s.LastDataRow))
	}
	return fs
}

// Havg is the volume-weighted average depth of the sum row it follows.
func havgFormulas(s FormulaSpec) FormulaSet {
	src := s.SourceRow.String()
	return FormulaSet{
		Height: fmt.Sprintf("IF(J%s>0,L%s*27/J%s,0)", src, src, src),
	}
}

func sectionTotalFormulas(s FormulaSpec) FormulaSet {
	if len(s.SumRows) == 0 {
		return FormulaSet{}
	}
	refs := make([]string, len(s.SumRows))
	for i, r := range s.SumRows {
		refs[i] = r.Cell(ColCY)
	}
	return FormulaSet{CY: "SUM(" + strings.Join(refs, ",") + ")"}
}

// populatedColumns lists the derived columns a FormulaSet fills.
func populatedColumns(fs FormulaSet) []int {
	var cols []int
	for _, col := range derivedColumns {
		if fs.Get(col) != nil {
			cols = append(cols, col)
		}
	}
	return cols
}
