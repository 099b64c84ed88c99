package calcsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSoldierPile_Drilled(t *testing.T) {
	p := ParseSoldierPile(`24Ø x1.0 Drilled soldier pile H=27'-6" E=5'-0"`)

	assert.Equal(t, TypeDrilledSoldierPile, p.Type)
	assert.Equal(t, 24.0, p.Diameter)
	assert.Equal(t, 1.0, p.Thickness)
	assert.Equal(t, 27.5, p.HeightRaw)
	assert.Equal(t, 5.0, p.Embedment)
	assert.True(t, p.HasEmbedment)
	assert.False(t, p.HasRockSocket)
	// The embedment never adds to the rounded height.
	assert.Equal(t, 30.0, p.CalculatedHeight)
	assert.Equal(t, "24-1-E-60-0", p.GroupKey)
	assert.InDelta(t, 245.87, p.Weight, 1e-9)
}

func TestParseSoldierPile_RockSocket(t *testing.T) {
	p := ParseSoldierPile(`24Ø x1.0 Drilled soldier pile H=27'-6" RS=4'-0"`)
	assert.Equal(t, 35.0, p.CalculatedHeight)
	assert.Equal(t, "24-1-RS-0-48", p.GroupKey)
}

func TestParseSoldierPile_HP(t *testing.T) {
	p := ParseSoldierPile(`HP12x74 soldier pile H=32'-0"`)
	assert.Equal(t, TypeHPSoldierPile, p.Type)
	assert.Equal(t, "HP12x74", p.Designation)
	assert.Equal(t, 74.0, p.Weight)
	assert.Equal(t, 35.0, p.CalculatedHeight)
	assert.Equal(t, "HP-32", p.GroupKey)
}

func TestParseAnchor_RockAnchor(t *testing.T) {
	p := ParseAnchor(`Rock anchor (Free length=13'-3" + Bond length= 10'-6")`, TypeRockAnchor)
	assert.Equal(t, TypeRockAnchor, p.Type)
	assert.Equal(t, 13.25, p.FreeLength)
	assert.Equal(t, 10.5, p.BondLength)
	assert.Equal(t, 23.75, p.HeightRaw)
	assert.Equal(t, 30.0, p.CalculatedHeight)
	assert.Equal(t, "30", p.GroupKey)
}

func TestParseGuideWall_WidthFormula(t *testing.T) {
	p := ParseGuideWall(`Guide wall (4'-6½"x3'-0")`)
	assert.InDelta(t, 4.5417, p.Width, 1e-4)
	assert.Equal(t, "4+(6.5/12)", p.WidthFormula)
	assert.Equal(t, 3.0, p.HeightRaw)

	p = ParseGuideWall(`Guide wall (4'-0"x3'-0")`)
	assert.Equal(t, "4", p.WidthFormula)
}

func TestParseRockBolt(t *testing.T) {
	p := ParseRockBolt(`Rock bolt @ 4'-0" O.C. (Bond length=10'-0")`)
	assert.Equal(t, 4.0, p.Spacing)
	assert.Equal(t, 10.0, p.BondLength)
	assert.Equal(t, 15.0, p.CalculatedLength)
}

func TestParseSheetPile(t *testing.T) {
	p := ParseSheetPile(`PZ22 sheet pile H=27'-0"`)
	assert.Equal(t, "PZ22", p.Designation)
	assert.Equal(t, 22.0, p.Weight)
	assert.Equal(t, 30.0, p.CalculatedHeight)
	assert.Equal(t, "PZ22-30", p.GroupKey)
}

func TestParseWaler(t *testing.T) {
	p := ParseWaler("(2) - W12x26 waler", TypeWaler)
	assert.Equal(t, 2.0, p.Qty)
	assert.Equal(t, "W12x26", p.Designation)
	assert.Equal(t, 26.0, p.Weight)

	r := ParseWaler(`(1) - W8x31 raker L=20'-0"`, TypeRaker)
	assert.Equal(t, 20.0, r.Length)
	assert.Equal(t, 1.0, r.Qty)

	assert.Equal(t, 1.0, ParseWaler("W12x26 waler", TypeWaler).Qty)
}

func TestParseSupportingAngle(t *testing.T) {
	p := ParseSupportingAngle("2 - Supporting angle L8x4x1/2 @ waler line")
	assert.Equal(t, 2.0, p.Qty)
	assert.Equal(t, "L8x4x0.5", p.Designation)
	assert.Equal(t, 19.6, p.Weight)
	assert.Equal(t, "waler line", p.GroupKey)
}

func TestParseDrilledFoundationPile(t *testing.T) {
	single := ParseDrilledFoundationPile(`24Ø x1.0 drilled caisson H=40'-0" RS=10'-0"`)
	assert.False(t, single.Dual)
	assert.Equal(t, 50.0, single.CalculatedHeight)
	assert.InDelta(t, 245.87, single.Weight, 1e-9)
	assert.Equal(t, "single-24", single.GroupKey)

	dual := ParseDrilledFoundationPile(`36Ø/30Ø x1.0 drilled caisson H=40' RS=10'`)
	assert.True(t, dual.Dual)
	assert.Equal(t, 36.0, dual.Diameter)
	assert.Equal(t, 30.0, dual.Diameter2)
	assert.InDelta(t, 374.15, dual.Weight, 1e-9)
	assert.InDelta(t, 310.01, dual.Weight2, 1e-9)
	assert.Equal(t, "dual-36-30", dual.GroupKey)
}

func TestParsePileItem(t *testing.T) {
	p := parseDrivenPile(`HP12x74 driven pile H=52'-0" (influence)`)
	assert.True(t, p.HasInfluence)
	assert.Equal(t, "HP12x74", p.GroupKey)
	assert.Equal(t, 74.0, p.Weight)
	assert.Equal(t, 55.0, p.CalculatedHeight)

	misc := parseMiscPile("Timber pile")
	assert.Zero(t, misc.CalculatedHeight)
	assert.False(t, hasHeight(misc))
}

func TestParseStripFooting(t *testing.T) {
	st := ParseStripFooting(`ST-1 (2'-0"x1'-0")`)
	assert.Equal(t, StripFootingST, st.SubType)
	assert.Equal(t, 2.0, st.Width)
	assert.Equal(t, 1.0, st.Height)
	assert.Equal(t, "ST-2x1", st.GroupKey)

	sf := ParseStripFooting(`SF-2 (3'-0"x1'-6")`)
	assert.Equal(t, StripFootingSF, sf.SubType)
	assert.Equal(t, 3.0, sf.Length)
	assert.Equal(t, 1.5, sf.Height)
	assert.Equal(t, "SF-3x1.5", sf.GroupKey)
}

func TestParsePitItem(t *testing.T) {
	slab := ParsePitItem(`Elevator pit slab 24" thk`)
	assert.Equal(t, TypePitSlab, slab.Type)
	assert.Equal(t, SubTypeSlab, slab.SubType)
	assert.Equal(t, 2.0, slab.Height)
	assert.Equal(t, "H-24", slab.GroupKey)

	wall := ParsePitItem(`Elevator pit wall (1'-0"x8'-0")`)
	assert.Equal(t, SubTypeWall, wall.SubType)
	assert.Equal(t, 1.0, wall.Width)
	assert.Equal(t, 8.0, wall.Height)

	sump := ParsePitItem(`Elevator pit sump (2'-0"x2'-0"x1'-0")`)
	assert.Equal(t, SubTypeSumpPit, sump.SubType)
	assert.Equal(t, "2x2x1", sump.GroupKey)
}

func TestParseMatSlabAndSOG(t *testing.T) {
	mat := ParseMatSlab(`Mat slab 36" thk`)
	assert.Equal(t, TypeMat, mat.Type)
	assert.Equal(t, "H-36", mat.GroupKey)

	haunch := ParseMatSlab(`Haunch (2'-0"x1'-0")`)
	assert.Equal(t, TypeHaunch, haunch.Type)
	assert.Equal(t, SubTypeHaunch, haunch.SubType)

	sog := ParseSOG(`6" SOG`)
	assert.Equal(t, "H-6", sog.GroupKey)
	assert.Equal(t, 0.5, sog.Height)

	st := ParseSOG(`Slope transition (1'-0"x2'-0")`)
	assert.Equal(t, SubTypeSlopeTransition, st.SubType)
}

func TestParseBPPItem(t *testing.T) {
	tests := []struct {
		in     string
		typ    ItemType
		street string
	}{
		{`Sidewalk 4" thk @ Main Street`, TypeBPPSidewalk, "Main Street"},
		{"Curb - 5th Avenue", TypeBPPCurb, "5th Avenue"},
		{`Driveway 8" thk on Elm St`, TypeBPPDriveway, "Elm St"},
		{"Pedestrian ramp", TypeBPPRamp, UnspecifiedStreet},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := ParseBPPItem(tt.in)
			assert.Equal(t, tt.typ, p.Type)
			assert.Equal(t, tt.street, p.Street)
			assert.Equal(t, tt.street, p.GroupKey)
		})
	}
	assert.InDelta(t, 4.0/12, ParseBPPItem(`Sidewalk 4" thk @ Main Street`).Height, 1e-9)
}

func TestParseBoxItem(t *testing.T) {
	p := parsePileCap(`Pile cap PC-1 (5'-0"x5'-0"x3'-0")`)
	assert.Equal(t, 5.0, p.Length)
	assert.Equal(t, 5.0, p.Width)
	assert.Equal(t, 3.0, p.Height)
	assert.Equal(t, "5x5x3", p.GroupKey)
}

func TestParse_UnparseableDegradesToZero(t *testing.T) {
	p := ParseSoldierPile("soldier pile, see detail")
	assert.Zero(t, p.CalculatedHeight)
	assert.Zero(t, p.Weight)
	assert.Equal(t, "0-0-H-0-0", p.GroupKey)

	assert.Zero(t, parseExcavation("Excavation").Height)
}
