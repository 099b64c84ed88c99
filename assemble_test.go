package calcsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	soldierPileText = `24Ø x1.0 Drilled soldier pile H=27'-6" E=5'-0"`
	footingText     = `Isolated footing F-1 (4'-0"x4'-0"x2'-0")`
	sidewalkText    = `Sidewalk 4" thk @ Main Street`
)

// sampleTakeoff is a small digitizer export touching most sections.
func sampleTakeoff() [][]any {
	return takeoff(
		[]any{"1", `Excavation (2'-0")`, 1000.0, "SF"},
		[]any{"1", `Backfill (1'-0")`, 500.0, "SF"},
		[]any{"1", `Rock excavation (3'-0")`, 300.0, "SF"},
		[]any{"1", `Line drill 10'-0" deep`, 50.0, "FT"},
		[]any{"1", "Trench for utility", 100.0, "FT"},
		[]any{"2", soldierPileText, 10.0, "EA"},
		[]any{"3", footingText, 3.0, "EA"},
		[]any{"4", sidewalkText, 200.0, "SF"},
	)
}

func generateSample(t *testing.T) *Result {
	t.Helper()
	res := GenerateCalculationSheet(CapstoneTemplateID, sampleTakeoff())
	require.NotNil(t, res)
	return res
}

// rowOf returns the first row whose Particulars cell equals text.
func rowOf(t *testing.T, res *Result, text string) RowRef {
	t.Helper()
	for i, row := range res.Rows {
		if row[ColParticulars] == text {
			return RowRef(i + 1)
		}
	}
	t.Fatalf("no row with particulars %q", text)
	return 0
}

func specAt(res *Result, row RowRef, kind FormulaKind) (FormulaSpec, bool) {
	for _, f := range res.Formulas {
		if f.Row == row && f.Kind == kind {
			return f, true
		}
	}
	return FormulaSpec{}, false
}

func TestGenerate_HeaderAndBlankRow(t *testing.T) {
	res := generateSample(t)
	require.GreaterOrEqual(t, len(res.Rows), 2)

	cols := CapstoneTemplate().Columns
	for i, name := range cols {
		assert.Equal(t, name, res.Rows[0][i])
	}
	for _, v := range res.Rows[1] {
		assert.Nil(t, v)
	}
	assert.Equal(t, CapstoneTemplateID, res.TemplateID)
}

func TestGenerate_RowFormulaAlignment(t *testing.T) {
	res := generateSample(t)
	items := make(map[string]bool)
	for _, list := range res.Items {
		for _, it := range list {
			items[it.Particulars] = true
		}
	}
	for _, f := range res.Formulas {
		require.True(t, f.Row.Valid())
		require.LessOrEqual(t, int(f.Row), len(res.Rows))
		row := res.Rows[f.Row-1]
		switch f.Kind {
		case KindData:
			text, ok := row[ColParticulars].(string)
			require.True(t, ok)
			assert.True(t, items[text], "row %d holds %q", f.Row, text)
		case KindSum:
			assert.Nil(t, row[ColParticulars])
			assert.True(t, f.FirstDataRow.Valid())
			assert.LessOrEqual(t, f.FirstDataRow, f.LastDataRow)
			assert.Less(t, f.LastDataRow, f.Row)
		}
	}
}

func TestGenerate_ExcavationLayout(t *testing.T) {
	res := generateSample(t)

	assert.Equal(t, RowRef(3), rowOf(t, res, SectionExcavation))
	assert.Equal(t, "CY", res.Rows[2][ColCY])
	assert.Equal(t, "1.3×CY", res.Rows[2][ColQtyFinal])

	data := rowOf(t, res, `Excavation (2'-0")`)
	assert.Equal(t, RowRef(5), data)
	assert.Equal(t, 1000.0, res.Rows[data-1][ColTakeoff])
	assert.Equal(t, 2.0, res.Rows[data-1][ColHeight])

	sum, ok := specAt(res, data+1, KindSum)
	require.True(t, ok)
	assert.Equal(t, []int{ColSqFt, ColCY, ColQtyFinal}, sum.SumColumns)

	havg := rowOf(t, res, "Havg")
	assert.Equal(t, data+2, havg)
	f, ok := specAt(res, havg, KindHavg)
	require.True(t, ok)
	assert.Equal(t, data+1, f.SourceRow)

	ev := NewEvaluator(res)
	v, err := ev.Value(havg.Cell(ColHeight))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-9)

	v, err = ev.Value(RowRef(data + 1).Cell(ColQtyFinal))
	require.NoError(t, err)
	assert.InDelta(t, 1000*2/27.0*1.3, v, 1e-9)
}

func TestGenerate_RockSectionHeader(t *testing.T) {
	res := generateSample(t)
	hdr := rowOf(t, res, SectionRockExcavation)
	assert.Equal(t, "CY", res.Rows[hdr-1][ColCY])

	assert.Equal(t, 300.0, res.RockExcavationTotals.TotalSQFT)
	assert.InDelta(t, 300*3/27.0, res.RockExcavationTotals.TotalCY, 1e-9)
	assert.Equal(t, 50.0, res.LineDrillTotalFT)
}

func TestGenerate_TrenchLines(t *testing.T) {
	res := generateSample(t)
	trench := rowOf(t, res, "Trench for utility")

	labels := []string{"Demo", "Excavation", "Backfill", "Gravel", "Patchback"}
	for i, label := range labels {
		row := trench + RowRef(i+1)
		assert.Equal(t, label, res.Rows[row-1][ColParticulars])
		f, ok := specAt(res, row, KindTrench)
		require.True(t, ok)
		assert.Equal(t, row-1, f.SourceRow)
	}

	ev := NewEvaluator(res)
	v, err := ev.Value((trench + 5).Cell(ColTakeoff))
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = ev.Value((trench + 2).Cell(ColCY))
	require.NoError(t, err)
	assert.InDelta(t, 100*2.5*2.5/27, v, 1e-9)
}

func TestGenerate_SoldierPileWeight(t *testing.T) {
	res := generateSample(t)
	row := rowOf(t, res, soldierPileText)

	ev := NewEvaluator(res)
	v, err := ev.Value(row.Cell(ColLbs))
	require.NoError(t, err)
	assert.InDelta(t, 300*245.87, v, 1e-6)

	v, err = ev.Value((row + 1).Cell(ColFT))
	require.NoError(t, err)
	assert.Equal(t, 300.0, v)
}

func TestGenerate_FoundationTotal(t *testing.T) {
	res := generateSample(t)
	hdr := rowOf(t, res, SectionFoundation)
	footing := rowOf(t, res, footingText)

	f, ok := specAt(res, hdr, KindSectionTotal)
	require.True(t, ok)
	assert.Equal(t, []RowRef{footing + 1}, f.SumRows)

	ev := NewEvaluator(res)
	v, err := ev.Value(hdr.Cell(ColCY))
	require.NoError(t, err)
	assert.InDelta(t, 3*4*4*2/27.0, v, 1e-9)
}

func TestGenerate_NoFoundationTotalWithoutItems(t *testing.T) {
	res := GenerateCalculationSheet(CapstoneTemplateID, takeoff(
		[]any{"1", `Excavation (2'-0")`, 1000.0, "SF"},
	))
	for _, f := range res.Formulas {
		assert.NotEqual(t, KindSectionTotal, f.Kind)
	}
}

func TestGenerate_BPPStreets(t *testing.T) {
	res := generateSample(t)
	street := rowOf(t, res, "Main Street")
	assert.Greater(t, street, rowOf(t, res, SectionBPP))
	assert.Equal(t, sidewalkText, res.Rows[street][ColParticulars])

	sum, ok := specAt(res, street+2, KindSum)
	require.True(t, ok)
	assert.Equal(t, "Main Street", sum.Subsection)
}

func TestGenerate_UnknownTemplate(t *testing.T) {
	res := GenerateCalculationSheet("no-such-template", sampleTakeoff())
	require.NotNil(t, res)
	assert.Equal(t, CapstoneTemplateID, res.TemplateID)

	_, err := NewGenerator(WithStrictTemplate(true)).Generate("no-such-template", sampleTakeoff())
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestGenerate_CustomTemplate(t *testing.T) {
	mini := &Template{
		ID:      "mini",
		Columns: CapstoneTemplate().Columns,
		Structure: []Section{
			{Section: SectionExcavation, Subsections: []Subsection{{Name: SubExcavation}}},
		},
	}
	res, err := NewGenerator(WithTemplates(mini), WithStrictTemplate(true)).Generate("mini", sampleTakeoff())
	require.NoError(t, err)
	assert.Equal(t, "mini", res.TemplateID)
	// header, blank, section, subsection, data, sum, Havg, trailing blank
	assert.Len(t, res.Rows, 8)
}

func TestGenerate_MissingColumnsStillReturnsSheet(t *testing.T) {
	res := GenerateCalculationSheet(CapstoneTemplateID, [][]any{
		{HeaderDigitizerItem, HeaderTotal},
		{`Excavation (2'-0")`, 1000.0},
	})
	require.NotNil(t, res)
	assert.Equal(t, "Particulars", res.Rows[0][ColParticulars])
	for _, f := range res.Formulas {
		assert.NotEqual(t, KindData, f.Kind)
	}

	res = GenerateCalculationSheet(CapstoneTemplateID, nil)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Rows)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generateSample(t)
	b := generateSample(t)
	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, a.Formulas, b.Formulas)
}
