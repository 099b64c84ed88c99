package calcsheet

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Result is a generated calculation sheet plus the intermediate data other
// sheet builders reuse.
type Result struct {
	TemplateID string
	// Rows are the 13-wide sheet rows; Rows[i] is sheet row i+1.
	Rows [][]any
	// Formulas point into Rows by 1-based row number.
	Formulas             []FormulaSpec
	RockExcavationTotals RockExcavationTotals
	LineDrillTotalFT     float64
	// Items and Groups are keyed by category name.
	Items  map[string][]Item
	Groups map[string][]Group
}

// Generator builds calculation sheets from takeoff tables.
type Generator struct {
	opts     *Options
	registry *Registry
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	o := buildOptions(opts)
	return &Generator{opts: o, registry: NewRegistry(o.templates...)}
}

// Generate builds the sheet for templateID. An unknown id falls back to
// capstone unless strict template resolution is enabled.
func (g *Generator) Generate(templateID string, rawData [][]any) (*Result, error) {
	tmpl, found := g.registry.Lookup(templateID)
	if !found {
		if g.opts.strictTemplate {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
		}
		g.opts.logger.Debug().
			Str("template", templateID).
			Str("fallback", tmpl.ID).
			Msg("unknown template, using fallback")
	}
	return g.assemble(tmpl, rawData), nil
}

// GenerateCalculationSheet builds the sheet for templateID from rawData,
// where rawData[0] is the header row. It never fails: missing columns and
// unparseable rows only leave parts of the sheet empty.
func GenerateCalculationSheet(templateID string, rawData [][]any, opts ...Option) *Result {
	all := append(append([]Option{}, opts...), WithStrictTemplate(false))
	r, _ := NewGenerator(all...).Generate(templateID, rawData)
	return r
}

func (g *Generator) assemble(tmpl *Template, rawData [][]any) *Result {
	log := g.opts.logger.With().Str("template", tmpl.ID).Logger()
	raw := NewRawData(rawData)
	proc := RunPipeline(raw, log)

	a := &assembler{b: NewSheetBuilder(), proc: proc, raw: raw, log: log}
	var header SheetRow
	for i, name := range tmpl.Columns {
		if i < ColumnCount {
			header.set(i, name)
		}
	}
	a.b.AppendRow(header)
	a.b.AppendBlank()
	for _, sec := range tmpl.Structure {
		a.section(sec)
	}

	return &Result{
		TemplateID:           tmpl.ID,
		Rows:                 a.b.Rows(),
		Formulas:             a.b.Formulas(),
		RockExcavationTotals: RockTotals(proc.Items["rock_excavation"]),
		LineDrillTotalFT:     LineDrillTotal(proc.Items["line_drill"]),
		Items:                proc.Items,
		Groups:               proc.Groups,
	}
}

// assembler walks a template and emits rows through a SheetBuilder.
type assembler struct {
	b    *SheetBuilder
	proc *Processed
	raw  *RawData
	log  zerolog.Logger
}

func (a *assembler) section(sec Section) {
	start := a.b.Len()
	header := SheetRow{Particulars: sec.Section}
	if sec.Section == SectionExcavation || sec.Section == SectionRockExcavation {
		header.CY = "CY"
		header.QtyFinal = "1.3×CY"
	}
	hdr := a.b.AppendRow(header)

	switch sec.Section {
	case SectionTrenching:
		a.trenching()
	case SectionBPP:
		a.streets()
	default:
		var cyRows []RowRef
		for _, sub := range sec.Subsections {
			sums, eligible := a.subsection(sec.Section, sub)
			if eligible {
				cyRows = append(cyRows, sums...)
			}
		}
		if sec.Section == SectionFoundation && len(cyRows) > 0 {
			err := a.b.AppendFormula(FormulaSpec{
				Row:     hdr,
				Kind:    KindSectionTotal,
				Section: sec.Section,
				SumRows: cyRows,
			})
			if err != nil {
				a.log.Error().Err(err).Str("section", sec.Section).Msg("section total")
			}
		}
	}
	a.b.AppendBlank()
	a.log.Debug().Str("section", sec.Section).Int("rows", a.b.Len()-start).Msg("section emitted")
}

// subsection emits the header, every group and its sum row. It returns the
// sum rows and whether they count toward the Foundation total.
func (a *assembler) subsection(section string, sub Subsection) ([]RowRef, bool) {
	a.b.AppendRow(SheetRow{Particulars: sub.Name})
	cat, ok := CategoryFor(section, sub.Name)
	if !ok {
		return nil, false
	}
	var sums []RowRef
	for i, g := range a.proc.Groups[cat.Name] {
		if i > 0 {
			a.b.AppendBlank()
		}
		sums = append(sums, a.group(section, sub.Name, g, cat.CYEligible))
	}
	if section == SectionExcavation && sub.Name == SubExcavation && len(sums) > 0 {
		src := sums[len(sums)-1]
		a.b.AppendWithFormula(SheetRow{Particulars: "Havg"}, FormulaSpec{
			Kind:       KindHavg,
			Section:    section,
			Subsection: sub.Name,
			SourceRow:  src,
		})
	}
	return sums, cat.CYEligible
}

// group emits one data row per item followed by the group's sum row.
func (a *assembler) group(section, subsection string, g Group, cyEligible bool) RowRef {
	var first, last RowRef
	used := make(map[int]bool)
	for _, it := range g.Items {
		ref := a.item(section, subsection, it, used)
		if !first.Valid() {
			first = ref
		}
		last = ref
	}
	var cols []int
	for _, c := range derivedColumns {
		if used[c] {
			cols = append(cols, c)
		}
	}
	return a.b.AppendWithFormula(SheetRow{}, FormulaSpec{
		Kind:         KindSum,
		ItemType:     g.Parsed.Type,
		Section:      section,
		Subsection:   subsection,
		Parsed:       g.Parsed,
		FirstDataRow: first,
		LastDataRow:  last,
		SumColumns:   cols,
		CYEligible:   cyEligible,
	})
}

// item emits a data row. Literal entries of the row's formula set are
// written into the row so the sheet reads correctly before formulas are
// applied.
func (a *assembler) item(section, subsection string, it Item, used map[int]bool) RowRef {
	spec := FormulaSpec{
		Row:        RowRef(a.b.Len() + 1),
		Kind:       KindData,
		ItemType:   it.Parsed.Type,
		Section:    section,
		Subsection: subsection,
		Parsed:     it.Parsed,
	}
	fs := GenerateFormulas(spec)
	row := SheetRow{
		Particulars: it.Particulars,
		Takeoff:     it.Takeoff,
		Unit:        it.Unit,
	}
	if it.Estimate != "" {
		row.Estimate = it.Estimate
	}
	applyLiterals(&row, fs)
	for _, c := range populatedColumns(fs) {
		used[c] = true
	}
	return a.b.AppendWithFormula(row, spec)
}

func applyLiterals(row *SheetRow, fs FormulaSet) {
	for _, col := range formulaColumns {
		if v, ok := fs.Get(col).(float64); ok {
			row.set(col, v)
		}
	}
}

// trenching emits every trench row followed by the five synthetic lines,
// each reading the takeoff of the line above it.
func (a *assembler) trenching() {
	for i, it := range a.proc.Items["trench"] {
		if i > 0 {
			a.b.AppendBlank()
		}
		prev := a.item(SectionTrenching, "", it, map[int]bool{})
		for _, f := range TrenchFactors {
			row := SheetRow{Particulars: f.Label, Width: f.Width, Height: f.Height}
			prev = a.b.AppendWithFormula(row, FormulaSpec{
				Kind:      KindTrench,
				ItemType:  f.Type,
				Section:   SectionTrenching,
				SourceRow: prev,
				Constants: f.TrenchConstants,
			})
		}
	}
}

// streets emits one subsection per street in order of first appearance.
func (a *assembler) streets() {
	for _, g := range a.proc.Groups["bpp"] {
		a.b.AppendRow(SheetRow{Particulars: g.GroupKey})
		a.group(SectionBPP, g.GroupKey, g, false)
	}
}
