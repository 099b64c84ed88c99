package calcsheet

import (
	"strings"

	"github.com/rs/zerolog"
)

// GroupMode selects how a category's items are partitioned into sum groups.
type GroupMode int

const (
	GroupNone GroupMode = iota
	GroupByKey
	GroupBlankRows
	GroupBlankRowsInfluence
	GroupInfluence
	GroupSubType
	GroupMat
	GroupStreet
)

func (m GroupMode) String() string {
	switch m {
	case GroupByKey:
		return "key"
	case GroupBlankRows:
		return "blank-rows"
	case GroupBlankRowsInfluence:
		return "blank-rows+influence"
	case GroupInfluence:
		return "influence"
	case GroupSubType:
		return "sub-type"
	case GroupMat:
		return "mat"
	case GroupStreet:
		return "street"
	}
	return "none"
}

// Category describes one construction category: where its rows land in the
// sheet, how rows are recognised and parsed, and how items are grouped.
type Category struct {
	Name       string
	Section    string
	Subsection string
	Match      func(any) bool
	Parse      func(string) ParsedItem
	// Accept rejects parsed items the category cannot price. Rejected rows
	// stay unclaimed.
	Accept   func(ParsedItem) bool
	Grouping GroupMode
	// CYEligible sum rows feed the Foundation section total.
	CYEligible bool
}

// Process claims every unclaimed row the category matches and returns the
// resulting items in row order. A table missing a required column yields
// nil.
func (c Category) Process(raw *RawData, tracker *RowClaimTracker, log zerolog.Logger) []Item {
	cols, ok := raw.requiredColumns()
	if !ok {
		log.Debug().Str("category", c.Name).Msg("required column missing")
		return nil
	}
	var items []Item
	for r := range raw.Rows {
		if tracker.IsClaimed(r) {
			continue
		}
		text := strings.TrimSpace(cellString(raw.Cell(r, cols.item)))
		if text == "" || !c.Match(text) {
			continue
		}
		parsed := c.Parse(text)
		if c.Accept != nil && !c.Accept(parsed) {
			log.Warn().
				Str("category", c.Name).
				Int("row", r+2).
				Str("item", text).
				Msg("item dropped")
			continue
		}
		tracker.Claim(r, c.Name)
		it := Item{
			Particulars:  text,
			Takeoff:      cellNumber(raw.Cell(r, cols.total)),
			Unit:         strings.TrimSpace(cellString(raw.Cell(r, cols.units))),
			Parsed:       parsed,
			RawRowNumber: r + 2,
		}
		if cols.estimate >= 0 {
			it.Estimate = strings.TrimSpace(cellString(raw.Cell(r, cols.estimate)))
		}
		items = append(items, it)
	}
	log.Debug().Str("category", c.Name).Int("claimed", len(items)).Msg("processed")
	return items
}

// Group partitions items according to the category's grouping mode.
func (c Category) Group(items []Item, raw *RawData) []Group {
	if len(items) == 0 {
		return nil
	}
	switch c.Grouping {
	case GroupByKey:
		return GroupItemsByKey(items)
	case GroupBlankRows:
		return GroupByBlankRows(items, raw)
	case GroupBlankRowsInfluence:
		var out []Group
		for _, g := range GroupByBlankRows(items, raw) {
			out = append(out, SplitInfluence(g)...)
		}
		return out
	case GroupInfluence:
		return GroupByInfluence(c.Name, items)
	case GroupSubType:
		return GroupBySubType(items)
	case GroupMat:
		return GroupMatSlabs(items)
	case GroupStreet:
		return GroupByStreet(items)
	}
	return singleGroup(c.Name, items)
}

func withType(t ItemType, fn func(string, ItemType) ParsedItem) func(string) ParsedItem {
	return func(s string) ParsedItem { return fn(s, t) }
}

func hasHeight(p ParsedItem) bool { return p.CalculatedHeight > 0 }

// Pipeline is the fixed processor order. Narrow categories run before the
// broad ones that would otherwise claim their rows: B.P.P. and
// waterproofing first, trench and rock work before bulk excavation, the SOE
// items before foundation concrete, and superstructure last.
var Pipeline = []Category{
	{Name: "bpp", Section: SectionBPP, Match: IsBPPItem, Parse: ParseBPPItem, Grouping: GroupStreet},

	{Name: "wp_negative", Section: SectionWaterproofing, Subsection: SubWPNegative, Match: IsNegativeSideWaterproofing, Parse: parseWaterproofing},
	{Name: "wp_horizontal", Section: SectionWaterproofing, Subsection: SubWPHorizontal, Match: IsHorizontalWaterproofing, Parse: parseWaterproofing},
	{Name: "wp_exterior", Section: SectionWaterproofing, Subsection: SubWPExterior, Match: IsExteriorWaterproofing, Parse: parseWaterproofing},

	{Name: "trench", Section: SectionTrenching, Match: IsTrench, Parse: parseTrench},
	{Name: "line_drill", Section: SectionRockExcavation, Subsection: SubLineDrill, Match: IsLineDrill, Parse: parseLineDrill},
	{Name: "rock_excavation", Section: SectionRockExcavation, Subsection: SubRockExcavation, Match: IsRockExcavation, Parse: parseRockExcavation},

	{Name: "rock_anchors", Section: SectionSOE, Subsection: SubRockAnchors, Match: IsRockAnchor, Parse: withType(TypeRockAnchor, ParseAnchor), Grouping: GroupByKey},
	{Name: "tie_backs", Section: SectionSOE, Subsection: SubTieBacks, Match: IsTieBack, Parse: withType(TypeTieBack, ParseAnchor), Grouping: GroupByKey},
	{Name: "anchors", Section: SectionSOE, Subsection: SubAnchors, Match: IsAnchor, Parse: withType(TypeAnchor, ParseAnchor), Grouping: GroupByKey},
	{Name: "rock_bolts", Section: SectionSOE, Subsection: SubRockBolts, Match: IsRockBolt, Parse: ParseRockBolt, Grouping: GroupByKey},
	{Name: "supporting_angles", Section: SectionSOE, Subsection: SubSupportingAngles, Match: IsSupportingAngle, Parse: ParseSupportingAngle, Grouping: GroupByKey},
	{Name: "timber_lagging", Section: SectionSOE, Subsection: SubTimberLagging, Match: IsTimberLagging, Parse: parseTimberLagging},
	{Name: "timber_sheeting", Section: SectionSOE, Subsection: SubTimberSheeting, Match: IsTimberSheeting, Parse: parseTimberSheeting},
	{Name: "rakers", Section: SectionSOE, Subsection: SubRakers, Match: IsRaker, Parse: withType(TypeRaker, ParseWaler), Grouping: GroupByKey},
	{Name: "walers", Section: SectionSOE, Subsection: SubWalers, Match: IsWaler, Parse: withType(TypeWaler, ParseWaler), Grouping: GroupByKey},
	{Name: "soldier_piles", Section: SectionSOE, Subsection: SubSoldierPiles, Match: IsSoldierPile, Parse: ParseSoldierPile, Grouping: GroupByKey},
	{Name: "sheet_piles", Section: SectionSOE, Subsection: SubSheetPiles, Match: IsSheetPile, Parse: ParseSheetPile, Grouping: GroupByKey},
	{Name: "guide_wall", Section: SectionSOE, Subsection: SubGuideWall, Match: IsGuideWall, Parse: ParseGuideWall, Grouping: GroupByKey},
	{Name: "heel_blocks", Section: SectionSOE, Subsection: SubHeelBlocks, Match: IsHeelBlock, Parse: parseHeelBlock, Grouping: GroupByKey},
	{Name: "buttons", Section: SectionSOE, Subsection: SubButtons, Match: IsButton, Parse: parseButton, Grouping: GroupByKey},
	{Name: "soil_retention_piers", Section: SectionSOE, Subsection: SubSoilRetentionPiers, Match: IsSoilRetentionPier, Parse: parseSoilRetentionPier, Grouping: GroupByKey},
	{Name: "shotcrete", Section: SectionSOE, Subsection: SubShotcrete, Match: IsShotcrete, Parse: parseShotcrete},

	{Name: "excavation", Section: SectionExcavation, Subsection: SubExcavation, Match: IsExcavation, Parse: parseExcavation},
	{Name: "backfill", Section: SectionExcavation, Subsection: SubBackfill, Match: IsBackfill, Parse: parseBackfill},

	{Name: "pile_caps", Section: SectionFoundation, Subsection: SubPileCaps, Match: IsPileCap, Parse: parsePileCap, Grouping: GroupByKey, CYEligible: true},
	{Name: "drilled_foundation_piles", Section: SectionFoundation, Subsection: SubDrilledFoundationPiles, Match: IsDrilledFoundationPile, Parse: ParseDrilledFoundationPile, Grouping: GroupBlankRows, CYEligible: true},
	{Name: "stelcor_piles", Section: SectionFoundation, Subsection: SubStelcorPiles, Match: IsStelcorPile, Parse: parseStelcorPile, Grouping: GroupBlankRowsInfluence},
	{Name: "driven_piles", Section: SectionFoundation, Subsection: SubDrivenPiles, Match: IsDrivenPile, Parse: parseDrivenPile, Grouping: GroupInfluence},
	{Name: "cfa_piles", Section: SectionFoundation, Subsection: SubCFAPiles, Match: IsCFAPile, Parse: parseCFAPile, Grouping: GroupInfluence, CYEligible: true},
	{Name: "misc_piles", Section: SectionFoundation, Subsection: SubMiscPiles, Match: IsMiscPile, Parse: parseMiscPile, Accept: hasHeight, Grouping: GroupByKey},
	{Name: "elevator_pit", Section: SectionFoundation, Subsection: SubElevatorPit, Match: IsElevatorPit, Parse: ParsePitItem, Grouping: GroupSubType, CYEligible: true},
	{Name: "detention_tank", Section: SectionFoundation, Subsection: SubDetentionTank, Match: IsDetentionTank, Parse: ParsePitItem, Grouping: GroupSubType, CYEligible: true},
	{Name: "sewage_ejector_pits", Section: SectionFoundation, Subsection: SubSewageEjectorPits, Match: IsSewageEjectorPit, Parse: ParsePitItem, Grouping: GroupSubType, CYEligible: true},
	{Name: "grease_trap", Section: SectionFoundation, Subsection: SubGreaseTrap, Match: IsGreaseTrap, Parse: ParsePitItem, Grouping: GroupSubType, CYEligible: true},
	{Name: "house_trap", Section: SectionFoundation, Subsection: SubHouseTrap, Match: IsHouseTrap, Parse: ParsePitItem, Grouping: GroupSubType, CYEligible: true},
	{Name: "strip_footings", Section: SectionFoundation, Subsection: SubStripFootings, Match: IsStripFooting, Parse: ParseStripFooting, Grouping: GroupByKey, CYEligible: true},
	{Name: "isolated_footings", Section: SectionFoundation, Subsection: SubIsolatedFootings, Match: IsIsolatedFooting, Parse: parseIsolatedFooting, Grouping: GroupByKey, CYEligible: true},
	{Name: "mat_slab", Section: SectionFoundation, Subsection: SubMatSlab, Match: IsMatSlab, Parse: ParseMatSlab, Grouping: GroupMat, CYEligible: true},
	{Name: "sog", Section: SectionFoundation, Subsection: SubSOG, Match: IsSOG, Parse: ParseSOG, Grouping: GroupSubType, CYEligible: true},
	{Name: "piers", Section: SectionFoundation, Subsection: SubPiers, Match: IsPier, Parse: parsePier, Grouping: GroupByKey, CYEligible: true},
	{Name: "grade_beams", Section: SectionFoundation, Subsection: SubGradeBeams, Match: IsGradeBeam, Parse: parseGradeBeam, Grouping: GroupByKey, CYEligible: true},
	{Name: "tie_beams", Section: SectionFoundation, Subsection: SubTieBeams, Match: IsTieBeam, Parse: parseTieBeam, Grouping: GroupByKey, CYEligible: true},
	{Name: "retaining_walls", Section: SectionFoundation, Subsection: SubRetainingWalls, Match: IsRetainingWall, Parse: parseRetainingWall, Grouping: GroupByKey, CYEligible: true},
	{Name: "foundation_walls", Section: SectionFoundation, Subsection: SubFoundationWalls, Match: IsFoundationWall, Parse: parseFoundationWall, Grouping: GroupByKey, CYEligible: true},

	{Name: "cip_slabs", Section: SectionSuperstructure, Subsection: SubCIPSlabs, Match: IsCIPSlab, Parse: parseCIPSlab, Grouping: GroupByKey},
	{Name: "columns", Section: SectionSuperstructure, Subsection: SubColumns, Match: IsColumn, Parse: parseColumn, Grouping: GroupByKey},
	{Name: "beams", Section: SectionSuperstructure, Subsection: SubBeams, Match: IsBeam, Parse: parseBeam, Grouping: GroupByKey},
	{Name: "concrete_walls", Section: SectionSuperstructure, Subsection: SubConcreteWalls, Match: IsConcreteWall, Parse: parseConcreteWall, Grouping: GroupByKey},
	{Name: "stairs", Section: SectionSuperstructure, Subsection: SubStairs, Match: IsStair, Parse: parseStair},
}

// CategoryFor returns the pipeline entry feeding a section/subsection.
func CategoryFor(section, subsection string) (Category, bool) {
	for _, c := range Pipeline {
		if c.Section == section && c.Subsection == subsection {
			return c, true
		}
	}
	return Category{}, false
}

// Processed is the outcome of running the pipeline over one takeoff.
type Processed struct {
	Items   map[string][]Item
	Groups  map[string][]Group
	Claimed *RowClaimTracker
}

// RunPipeline runs every category in pipeline order against raw.
func RunPipeline(raw *RawData, log zerolog.Logger) *Processed {
	p := &Processed{
		Items:   make(map[string][]Item),
		Groups:  make(map[string][]Group),
		Claimed: NewRowClaimTracker(),
	}
	for _, c := range Pipeline {
		items := c.Process(raw, p.Claimed, log)
		if len(items) == 0 {
			continue
		}
		p.Items[c.Name] = items
		p.Groups[c.Name] = c.Group(items, raw)
	}
	log.Debug().
		Int("rows", len(raw.Rows)).
		Int("claimed", p.Claimed.Len()).
		Msg("pipeline complete")
	return p
}

// RockExcavationTotals summarises rock excavation quantities.
type RockExcavationTotals struct {
	TotalSQFT float64
	TotalCY   float64
}

// RockTotals sums takeoff area and volume over rock excavation items.
func RockTotals(items []Item) RockExcavationTotals {
	var t RockExcavationTotals
	for _, it := range items {
		t.TotalSQFT += it.Takeoff
		t.TotalCY += it.Takeoff * it.Parsed.Height / 27
	}
	return t
}

// LineDrillTotal sums line drill footage.
func LineDrillTotal(items []Item) float64 {
	var ft float64
	for _, it := range items {
		ft += it.Takeoff
	}
	return ft
}
