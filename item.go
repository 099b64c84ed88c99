package calcsheet

// ItemType tags the construction category a parsed item belongs to. It
// selects the formula branch applied to the item's row.
type ItemType string

const (
	TypeExcavation     ItemType = "excavation"
	TypeBackfill       ItemType = "backfill"
	TypeRockExcavation ItemType = "rock_excavation"
	TypeLineDrill      ItemType = "line_drill"

	TypeTrench           ItemType = "trench"
	TypeTrenchDemo       ItemType = "trench_demo"
	TypeTrenchExcavation ItemType = "trench_excavation"
	TypeTrenchBackfill   ItemType = "trench_backfill"
	TypeTrenchGravel     ItemType = "trench_gravel"
	TypeTrenchPatchback  ItemType = "trench_patchback"

	TypeDrilledSoldierPile ItemType = "drilled_soldier_pile"
	TypeHPSoldierPile      ItemType = "hp_soldier_pile"
	TypeSheetPile          ItemType = "sheet_pile"
	TypeTimberLagging      ItemType = "timber_lagging"
	TypeTimberSheeting     ItemType = "timber_sheeting"
	TypeWaler              ItemType = "waler"
	TypeRaker              ItemType = "raker"
	TypeSupportingAngle    ItemType = "supporting_angle"
	TypeRockAnchor         ItemType = "rock_anchor"
	TypeTieBack            ItemType = "tie_back"
	TypeAnchor             ItemType = "anchor"
	TypeRockBolt           ItemType = "rock_bolt"
	TypeGuideWall          ItemType = "guide_wall"
	TypeHeelBlock          ItemType = "heel_block"
	TypeButton             ItemType = "button"
	TypeSoilRetentionPier  ItemType = "soil_retention_pier"
	TypeShotcrete          ItemType = "shotcrete"

	TypeDrilledFoundationPile ItemType = "drilled_foundation_pile"
	TypeDrivenPile            ItemType = "driven_pile"
	TypeCFAPile               ItemType = "cfa_pile"
	TypeStelcorPile           ItemType = "stelcor_pile"
	TypeMiscPile              ItemType = "misc_pile"
	TypePileCap               ItemType = "pile_cap"
	TypeStripFooting          ItemType = "strip_footing"
	TypeIsolatedFooting       ItemType = "isolated_footing"
	TypePier                  ItemType = "pier"
	TypeGradeBeam             ItemType = "grade_beam"
	TypeTieBeam               ItemType = "tie_beam"
	TypeFoundationWall        ItemType = "foundation_wall"
	TypeRetainingWall         ItemType = "retaining_wall"
	TypePitSlab               ItemType = "pit_slab"
	TypePitWall               ItemType = "pit_wall"
	TypePitSump               ItemType = "pit_sump"
	TypeMat                   ItemType = "mat"
	TypeHaunch                ItemType = "haunch"
	TypeSOG                   ItemType = "sog"
	TypeSlopeTransition       ItemType = "slope_transition"

	TypeWaterproofingExterior   ItemType = "wp_exterior"
	TypeWaterproofingNegative   ItemType = "wp_negative"
	TypeWaterproofingHorizontal ItemType = "wp_horizontal"

	TypeCIPSlab      ItemType = "cip_slab"
	TypeColumn       ItemType = "column"
	TypeBeam         ItemType = "beam"
	TypeConcreteWall ItemType = "concrete_wall"
	TypeStair        ItemType = "stair"

	TypeBPPSidewalk ItemType = "bpp_sidewalk"
	TypeBPPCurb     ItemType = "bpp_curb"
	TypeBPPDriveway ItemType = "bpp_driveway"
	TypeBPPRamp     ItemType = "bpp_ramp"
)

// AllItemTypes lists every tag a parser can produce. The formula dispatch
// table is checked against it at init.
var AllItemTypes = []ItemType{
	TypeExcavation, TypeBackfill, TypeRockExcavation, TypeLineDrill,
	TypeTrench, TypeTrenchDemo, TypeTrenchExcavation, TypeTrenchBackfill, TypeTrenchGravel, TypeTrenchPatchback,
	TypeDrilledSoldierPile, TypeHPSoldierPile, TypeSheetPile, TypeTimberLagging, TypeTimberSheeting,
	TypeWaler, TypeRaker, TypeSupportingAngle, TypeRockAnchor, TypeTieBack, TypeAnchor, TypeRockBolt,
	TypeGuideWall, TypeHeelBlock, TypeButton, TypeSoilRetentionPier, TypeShotcrete,
	TypeDrilledFoundationPile, TypeDrivenPile, TypeCFAPile, TypeStelcorPile, TypeMiscPile,
	TypePileCap, TypeStripFooting, TypeIsolatedFooting, TypePier, TypeGradeBeam, TypeTieBeam,
	TypeFoundationWall, TypeRetainingWall, TypePitSlab, TypePitWall, TypePitSump,
	TypeMat, TypeHaunch, TypeSOG, TypeSlopeTransition,
	TypeWaterproofingExterior, TypeWaterproofingNegative, TypeWaterproofingHorizontal,
	TypeCIPSlab, TypeColumn, TypeBeam, TypeConcreteWall, TypeStair,
	TypeBPPSidewalk, TypeBPPCurb, TypeBPPDriveway, TypeBPPRamp,
}

// Sub-type tags used by the bucketed processors.
const (
	SubTypeSlab            = "slab"
	SubTypeWall            = "wall"
	SubTypeSumpPit         = "sump_pit"
	SubTypeMat             = "mat"
	SubTypeHaunch          = "haunch"
	SubTypeSlopeTransition = "slope_transition"
)

// Strip footing tags. ST lays the bracket out as width x height, SF and WF
// as length x height.
const (
	StripFootingST = "ST"
	StripFootingSF = "SF"
	StripFootingWF = "WF"
)

// ParsedItem is the structured reading of one item description. Fields a
// parser does not recognise stay at their zero value.
type ParsedItem struct {
	Type     ItemType
	SubType  string
	GroupKey string

	HeightRaw        float64
	CalculatedHeight float64
	CalculatedLength float64
	Length           float64
	Width            float64
	Height           float64
	Diameter         float64
	Diameter2        float64
	Thickness        float64
	Qty              float64
	Weight           float64
	Weight2          float64
	Embedment        float64
	RockSocket       float64
	FreeLength       float64
	BondLength       float64
	Spacing          float64

	// WidthFormula keeps the un-rounded width expression, e.g. "4+(6.5/12)".
	WidthFormula string
	// Designation is a steel shape or sheet pile section such as HP12x74.
	Designation string
	Street      string

	HasEmbedment  bool
	HasRockSocket bool
	HasInfluence  bool
	Dual          bool
}

// Item is one takeoff row claimed by a category processor.
type Item struct {
	Particulars string
	Takeoff     float64
	Unit        string
	Estimate    string
	Parsed      ParsedItem
	// RawRowNumber is the 1-based row in the takeoff sheet; the header is row 1.
	RawRowNumber int
}

// rowIndex converts RawRowNumber back to an index into RawData.Rows.
func (it Item) rowIndex() int { return it.RawRowNumber - 2 }

// MergedSinglesKey is the group key given to merged single-item groups.
const MergedSinglesKey = "MERGED_SINGLES"

// Group is a set of same-category items sharing one sum row.
type Group struct {
	GroupKey     string
	Items        []Item
	Parsed       ParsedItem
	HasInfluence bool
	IsMerged     bool
}
