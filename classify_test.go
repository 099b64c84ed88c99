package calcsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Exclusions(t *testing.T) {
	angle := "2 - Supporting angle @ waler line"
	assert.False(t, IsWaler(angle))
	assert.True(t, IsSupportingAngle(angle))

	assert.True(t, IsWaler("(2) - W12x26 waler"))
	assert.True(t, IsWaler("C12x20.7 channel"))
	assert.False(t, IsChannel("Pipe bollard in C8x11.5 channel"))

	assert.False(t, IsAnchor(`Rock anchor (Free length=13'-3" + Bond length= 10'-6")`))
	assert.False(t, IsAnchor("Tie back anchor"))
	assert.False(t, IsAnchor("Hollow down anchor"))
	assert.True(t, IsAnchor("Helical anchor"))

	assert.True(t, IsRockExcavation("Rock excavation"))
	assert.False(t, IsExcavation("Rock excavation"))
	assert.False(t, IsExcavation("Trench excavation"))
	assert.True(t, IsExcavation(`Excavation (2'-0")`))
	assert.False(t, IsBackfill("Trench backfill"))

	assert.False(t, IsDrilledFoundationPile(`24Ø drilled soldier pile`))
	assert.True(t, IsDrilledFoundationPile(`24Ø drilled caisson`))
	assert.False(t, IsMiscPile("Pile cap PC-1"))
	assert.True(t, IsPileCap("Pile cap PC-1"))

	assert.True(t, IsStripFooting(`ST-1 (2'-0"x1'-0")`))
	assert.False(t, IsIsolatedFooting(`ST-1 (2'-0"x1'-0")`))
	assert.True(t, IsIsolatedFooting(`F-1 (4'-0"x4'-0"x2'-0")`))

	assert.False(t, IsPier("Concrete soil retention pier"))
	assert.True(t, IsSoilRetentionPier("Concrete soil retention pier"))
	assert.True(t, IsPier(`Pier P-1 (2'-0"x2'-0"x4'-0")`))

	assert.False(t, IsCIPSlab(`8" SOG`))
	assert.False(t, IsCIPSlab(`Elevator pit slab 24" thk`))
	assert.False(t, IsCIPSlab(`Mat slab 36" thk`))
	assert.True(t, IsCIPSlab(`8" elevated slab`))

	assert.False(t, IsConcreteWall("Foundation wall"))
	assert.False(t, IsConcreteWall("Elevator pit wall"))
	assert.True(t, IsConcreteWall("Shear wall"))
	assert.False(t, IsBeam("Grade beam"))
	assert.True(t, IsBeam("Transfer beam"))

	assert.False(t, IsMatSlab("Drainage mat"))
	assert.True(t, IsMatSlab(`Haunch (2'-0"x1'-0")`))

	assert.True(t, IsTimberLagging("Timber lagging"))
	assert.False(t, IsTimberSheeting("Timber lagging"))

	assert.False(t, IsSoldierPile(`Timber lagging between soldier piles (3" thk)`))
	assert.False(t, IsSoldierPile("Timber sheeting at soldier piles"))
	assert.False(t, IsSoldierPile("W12x40 waler @ soldier piles"))
	assert.True(t, IsSoldierPile(`HP12x74 soldier pile H=32'-0"`))

	assert.False(t, IsDrivenPile(`Stelcor driven pile 12Ø H=40'-0"`))
	assert.True(t, IsStelcorPile(`Stelcor driven pile 12Ø H=40'-0"`))
	assert.True(t, IsDrivenPile(`Driven pile 12Ø H=40'-0"`))
}

func TestClassify_Waterproofing(t *testing.T) {
	tests := []struct {
		in                             string
		negative, horizontal, exterior bool
	}{
		{"Negative side waterproofing", true, false, false},
		{"Horizontal waterproofing under slab", false, true, false},
		{"Vapor barrier", false, true, false},
		{"Exterior waterproofing", false, false, true},
		{"Concrete wall", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.negative, IsNegativeSideWaterproofing(tt.in))
			assert.Equal(t, tt.horizontal, IsHorizontalWaterproofing(tt.in))
			assert.Equal(t, tt.exterior, IsExteriorWaterproofing(tt.in))
		})
	}
}

func TestClassify_BPP(t *testing.T) {
	assert.True(t, IsBPPItem(`Sidewalk 4" thk @ Main Street`))
	assert.True(t, IsBPPItem("Curb - 5th Avenue"))
	assert.True(t, IsBPPItem("Pedestrian ramp"))
	assert.False(t, IsBPPItem("Shear wall"))
}

func TestClassify_NonStringInput(t *testing.T) {
	classifiers := map[string]func(any) bool{
		"excavation": IsExcavation, "backfill": IsBackfill, "rock": IsRockExcavation,
		"line drill": IsLineDrill, "trench": IsTrench, "soldier": IsSoldierPile,
		"sheet pile": IsSheetPile, "waler": IsWaler, "raker": IsRaker,
		"angle": IsSupportingAngle, "anchor": IsAnchor, "rock bolt": IsRockBolt,
		"misc pile": IsMiscPile, "strip": IsStripFooting, "isolated": IsIsolatedFooting,
		"mat": IsMatSlab, "sog": IsSOG, "waterproofing": IsWaterproofing,
		"exterior": IsExteriorWaterproofing, "cip": IsCIPSlab, "wall": IsConcreteWall,
		"stair": IsStair, "bpp": IsBPPItem,
	}
	for name, fn := range classifiers {
		assert.False(t, fn(nil), name)
		assert.False(t, fn(42.0), name)
		assert.False(t, fn("   "), name)
	}
}
