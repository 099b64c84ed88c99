package calcsheet

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func takeoff(rows ...[]any) [][]any {
	return append([][]any{{"Page", HeaderDigitizerItem, HeaderTotal, HeaderUnits}}, rows...)
}

func TestRowClaimTracker(t *testing.T) {
	tr := NewRowClaimTracker()
	assert.True(t, tr.Claim(3, "piers"))
	assert.False(t, tr.Claim(3, "columns"))
	assert.True(t, tr.IsClaimed(3))
	assert.False(t, tr.IsClaimed(4))
	assert.Equal(t, "piers", tr.ClaimedBy(3))
	assert.Equal(t, 1, tr.Len())
}

func TestRawData_Columns(t *testing.T) {
	raw := NewRawData([][]any{{" digitizer  ITEM ", "TOTAL", "units"}})
	assert.Equal(t, 0, raw.Column(HeaderDigitizerItem))
	assert.Equal(t, 1, raw.Column(HeaderTotal))
	assert.Equal(t, 2, raw.Column(HeaderUnits))
	assert.Equal(t, -1, raw.Column(HeaderEstimate))
	assert.Nil(t, raw.Cell(5, 0))

	_, ok := NewRawData(nil).requiredColumns()
	assert.False(t, ok)
}

func TestRunPipeline_ClaimOrder(t *testing.T) {
	raw := NewRawData(takeoff(
		[]any{"1", `Rock anchor (Free length=13'-3" + Bond length= 10'-6")`, 4.0, "EA"},
		[]any{"1", "2 - Supporting angle L8x4x1/2 @ waler line", 120.0, "FT"},
		[]any{"1", "Trench excavation", 80.0, "FT"},
		[]any{"1", `Rock excavation (3'-0")`, 300.0, "SF"},
		[]any{"1", `Excavation (2'-0")`, 1000.0, "SF"},
		[]any{"1", `Sidewalk 4" thk @ Main Street`, 200.0, "SF"},
		[]any{"1", "Helical anchor", 6.0, "EA"},
	))
	p := RunPipeline(raw, zerolog.Nop())

	want := []string{"rock_anchors", "supporting_angles", "trench", "rock_excavation", "excavation", "bpp", "anchors"}
	for row, name := range want {
		assert.Equal(t, name, p.Claimed.ClaimedBy(row), "row %d", row)
	}
	assert.Equal(t, len(want), p.Claimed.Len())
	require.Len(t, p.Items["excavation"], 1)
	it := p.Items["excavation"][0]
	assert.Equal(t, 1000.0, it.Takeoff)
	assert.Equal(t, "SF", it.Unit)
	assert.Equal(t, 6, it.RawRowNumber)
}

func TestRunPipeline_ClaimOrderCollisions(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{`Timber lagging between soldier piles (3" thk)`, "timber_lagging"},
		{`Timber sheeting at soldier piles (3" thk)`, "timber_sheeting"},
		{"W12x40 waler @ soldier piles", "walers"},
		{`Raker W12x40 to soldier pile L=30'-0"`, "rakers"},
		{`HP12x74 soldier pile H=32'-0"`, "soldier_piles"},
		{`Stelcor driven pile 12Ø H=40'-0"`, "stelcor_piles"},
		{`Driven pile 12Ø H=40'-0"`, "driven_piles"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			raw := NewRawData(takeoff([]any{"1", tt.text, 10.0, "EA"}))
			p := RunPipeline(raw, zerolog.Nop())
			assert.Equal(t, tt.want, p.Claimed.ClaimedBy(0))
			assert.Len(t, p.Items[tt.want], 1)
		})
	}
}

func TestRunPipeline_MissingColumn(t *testing.T) {
	raw := NewRawData([][]any{
		{HeaderDigitizerItem, HeaderTotal},
		{`Excavation (2'-0")`, 1000.0},
	})
	p := RunPipeline(raw, zerolog.Nop())
	assert.Empty(t, p.Items)
	assert.Zero(t, p.Claimed.Len())
}

func TestRunPipeline_MiscPileWithoutHeightDropped(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	raw := NewRawData(takeoff(
		[]any{"1", "Timber pile", 12.0, "EA"},
		[]any{"1", `Timber pile H=20'-0"`, 8.0, "EA"},
	))
	p := RunPipeline(raw, log)

	require.Len(t, p.Items["misc_piles"], 1)
	assert.Equal(t, 3, p.Items["misc_piles"][0].RawRowNumber)
	assert.False(t, p.Claimed.IsClaimed(0))
	assert.Contains(t, buf.String(), "item dropped")
	assert.Contains(t, buf.String(), `"row":2`)
}

func TestRunPipeline_TextTotals(t *testing.T) {
	raw := NewRawData(takeoff(
		[]any{"1", `Excavation (2'-0")`, "1,250.5", "SF"},
	))
	p := RunPipeline(raw, zerolog.Nop())
	require.Len(t, p.Items["excavation"], 1)
	assert.Equal(t, 1250.5, p.Items["excavation"][0].Takeoff)
}

func TestPipeline_NamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Pipeline {
		assert.False(t, seen[c.Name], c.Name)
		seen[c.Name] = true
		assert.NotNil(t, c.Match, c.Name)
		assert.NotNil(t, c.Parse, c.Name)
	}
}

func TestCategoryFor(t *testing.T) {
	c, ok := CategoryFor(SectionFoundation, SubMatSlab)
	require.True(t, ok)
	assert.Equal(t, "mat_slab", c.Name)
	assert.Equal(t, GroupMat, c.Grouping)
	assert.Equal(t, "mat", c.Grouping.String())

	_, ok = CategoryFor(SectionFoundation, "Unicorns")
	assert.False(t, ok)
}

func TestCategory_GroupInfluence(t *testing.T) {
	c, _ := CategoryFor(SectionFoundation, SubDrivenPiles)
	items := []Item{
		{Particulars: "a", Parsed: ParsedItem{GroupKey: "HP12x74"}},
		{Particulars: "b", Parsed: ParsedItem{GroupKey: "HP12x74", HasInfluence: true}},
	}
	groups := c.Group(items, nil)
	require.Len(t, groups, 2)
	assert.Equal(t, "driven_piles", groups[0].GroupKey)
	assert.Equal(t, "driven_piles-influence", groups[1].GroupKey)
}

func TestRockTotals(t *testing.T) {
	items := []Item{
		{Takeoff: 300, Parsed: ParsedItem{Height: 3}},
		{Takeoff: 100, Parsed: ParsedItem{Height: 2.7}},
	}
	tot := RockTotals(items)
	assert.Equal(t, 400.0, tot.TotalSQFT)
	assert.InDelta(t, 300*3/27.0+10, tot.TotalCY, 1e-9)
	assert.Equal(t, 150.0, LineDrillTotal([]Item{{Takeoff: 100}, {Takeoff: 50}}))
}
