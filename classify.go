package calcsheet

import (
	"regexp"
	"strings"
)

// itemText lowercases a cell value for keyword matching. Non-string and
// empty values report false so every classifier tolerates nil input.
func itemText(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.ToLower(strings.TrimSpace(normalizeText(s)))
	return s, s != ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var (
	hpShapeRe       = regexp.MustCompile(`(?i)\bHP\s*(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)`)
	wShapeRe        = regexp.MustCompile(`(?i)\bW\s*(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)`)
	channelShapeRe  = regexp.MustCompile(`(?i)\bC\s*(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)`)
	angleShapeRe    = regexp.MustCompile(`(?i)\bL\s*(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*x\s*(\d+\s*/\s*\d+|\d+(?:\.\d+)?(?:\s+\d+/\d+)?)`)
	sheetPileDesRe  = regexp.MustCompile(`(?i)\b((?:PZC|PZ|NZ|AZ)\s*-?\s*\d+(?:\.\d+)?)`)
	stripTagRe      = regexp.MustCompile(`(?i)^\s*(ST|SF|WF)\s*-?\s*\d`)
	isolatedTagRe   = regexp.MustCompile(`(?i)^\s*F\s*-?\s*\d`)
	buttonRe        = regexp.MustCompile(`\bbuttons?\b`)
	pierRe          = regexp.MustCompile(`\bpiers?\b`)
	matRe           = regexp.MustCompile(`\bmats?\b`)
	sogRe           = regexp.MustCompile(`\bsog\b`)
	slabRe          = regexp.MustCompile(`\bslabs?\b`)
	columnRe        = regexp.MustCompile(`\bcolumns?\b`)
	beamRe          = regexp.MustCompile(`\bbeams?\b`)
	wallRe          = regexp.MustCompile(`\bwalls?\b`)
	pileRe          = regexp.MustCompile(`\bpiles?\b`)
	bppRe           = regexp.MustCompile(`\bb\.?p\.?p\.?(\s|$)`)
	cfaRe           = regexp.MustCompile(`\bcfa\b`)
	elevatorPitRe   = regexp.MustCompile(`elev(?:ator|\.)?\s*pit`)
	pitStructureRe  = regexp.MustCompile(`elev(?:ator|\.)?\s*pit|detention tank|ejector|grease trap|house trap`)
	foundationWalls = []string{"foundation wall", "fdn wall", "fnd wall", "retaining wall", "guide wall", "waterproof", "parapet"}
)

// IsExcavation matches bulk soil excavation, never rock or trench work.
func IsExcavation(v any) bool {
	s, ok := itemText(v)
	if !ok || IsRockExcavation(v) || strings.Contains(s, "trench") {
		return false
	}
	return containsAny(s, "excavation", "excavate")
}

// IsBackfill matches backfill outside trenches.
func IsBackfill(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "backfill") && !strings.Contains(s, "trench")
}

// IsRockExcavation matches rock excavation and rock removal.
func IsRockExcavation(v any) bool {
	s, ok := itemText(v)
	if !ok {
		return false
	}
	return containsAny(s, "rock excavation", "rock removal") ||
		(strings.Contains(s, "rock") && strings.Contains(s, "excavat"))
}

// IsLineDrill matches line drilling along the rock face.
func IsLineDrill(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "line drill", "line-drill")
}

// IsTrench matches utility trench lines.
func IsTrench(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "trench")
}

// IsSoldierPile matches drilled and HP soldier piles. Lagging, sheeting
// and walers are often described by the piles they span and are rejected.
func IsSoldierPile(v any) bool {
	s, ok := itemText(v)
	if !ok || containsAny(s, "lagging", "sheeting", "waler") {
		return false
	}
	return containsAny(s, "soldier pile", "soldier beam")
}

// IsSheetPile matches sheet piling by name or by PZ/NZ/AZ designation.
func IsSheetPile(v any) bool {
	s, ok := itemText(v)
	if !ok {
		return false
	}
	return containsAny(s, "sheet pile", "sheet piling", "sheetpile") ||
		(sheetPileDesRe.MatchString(s) && !strings.Contains(s, "waler"))
}

// IsTimberLagging and IsTimberSheeting differ only by their keyword.
func IsTimberLagging(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "lagging") && !strings.Contains(s, "sheeting")
}

// IsTimberSheeting matches timber sheeting.
func IsTimberSheeting(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "sheeting") && !strings.Contains(s, "lagging")
}

// IsChannel matches channel sections; bollards are excluded because they
// are often specified as pipe-in-channel details.
func IsChannel(v any) bool {
	s, ok := itemText(v)
	if !ok || strings.Contains(s, "bollard") {
		return false
	}
	return strings.Contains(s, "channel") || channelShapeRe.MatchString(s)
}

// IsWaler rejects supporting angles, which are routinely described "@ waler".
func IsWaler(v any) bool {
	s, ok := itemText(v)
	if !ok || strings.Contains(s, "supporting angle") {
		return false
	}
	return strings.Contains(s, "waler") || IsChannel(v)
}

// IsRaker matches rakers.
func IsRaker(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "raker")
}

// IsSupportingAngle matches supporting angles by name or by an L-shape with "angle".
func IsSupportingAngle(v any) bool {
	s, ok := itemText(v)
	if !ok {
		return false
	}
	return strings.Contains(s, "supporting angle") ||
		(strings.Contains(s, "angle") && angleShapeRe.MatchString(s))
}

// IsRockAnchor matches rock anchors.
func IsRockAnchor(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "rock anchor")
}

// IsTieBack matches tie backs in any of their spellings.
func IsTieBack(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "tie back", "tieback", "tie-back")
}

// IsAnchor matches generic anchors only; rock anchors, tie backs and
// hollow down anchors have their own categories.
func IsAnchor(v any) bool {
	s, ok := itemText(v)
	if !ok || !strings.Contains(s, "anchor") {
		return false
	}
	return !IsRockAnchor(v) && !IsTieBack(v) && !strings.Contains(s, "hollow down anchor")
}

// IsRockBolt matches rock bolts.
func IsRockBolt(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "rock bolt")
}

// IsGuideWall matches guide walls.
func IsGuideWall(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "guide wall")
}

// IsHeelBlock matches heel blocks.
func IsHeelBlock(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "heel block")
}

// IsButton matches concrete buttons.
func IsButton(v any) bool {
	s, ok := itemText(v)
	return ok && buttonRe.MatchString(s)
}

// IsSoilRetentionPier matches concrete soil retention piers.
func IsSoilRetentionPier(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "soil retention pier", "csrp")
}

// IsShotcrete matches shotcrete and gunite.
func IsShotcrete(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "shotcrete", "gunite")
}

// IsDrilledFoundationPile matches caissons and drilled piles that are not soldier piles.
func IsDrilledFoundationPile(v any) bool {
	s, ok := itemText(v)
	if !ok || strings.Contains(s, "soldier") {
		return false
	}
	return strings.Contains(s, "caisson") || (strings.Contains(s, "drilled") && pileRe.MatchString(s))
}

// IsDrivenPile matches driven piles other than Stelcor piles.
func IsDrivenPile(v any) bool {
	s, ok := itemText(v)
	if !ok || strings.Contains(s, "stelcor") {
		return false
	}
	return strings.Contains(s, "driven") && pileRe.MatchString(s)
}

// IsCFAPile matches continuous flight auger piles.
func IsCFAPile(v any) bool {
	s, ok := itemText(v)
	return ok && (cfaRe.MatchString(s) || containsAny(s, "auger cast", "augercast", "auger-cast"))
}

// IsStelcorPile matches Stelcor piles.
func IsStelcorPile(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "stelcor")
}

// IsMiscPile is the catch-all for piles not claimed by a narrower category.
func IsMiscPile(v any) bool {
	s, ok := itemText(v)
	if !ok || !pileRe.MatchString(s) {
		return false
	}
	return !containsAny(s, "pile cap", "soldier", "sheet pile")
}

// IsPileCap matches pile caps.
func IsPileCap(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "pile cap")
}

// IsStripFooting matches strip, wall and continuous footings and ST/SF/WF tags.
func IsStripFooting(v any) bool {
	s, ok := itemText(v)
	if !ok {
		return false
	}
	return containsAny(s, "strip footing", "wall footing", "continuous footing") || stripTagRe.MatchString(s)
}

// IsIsolatedFooting matches spread footings and F-tags that are not strip footings.
func IsIsolatedFooting(v any) bool {
	s, ok := itemText(v)
	if !ok || IsStripFooting(v) {
		return false
	}
	return strings.Contains(s, "footing") || isolatedTagRe.MatchString(s)
}

// IsPier matches piers other than soil retention piers.
func IsPier(v any) bool {
	s, ok := itemText(v)
	return ok && pierRe.MatchString(s) && !IsSoilRetentionPier(v)
}

// IsGradeBeam matches grade beams.
func IsGradeBeam(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "grade beam", "gradebeam")
}

// IsTieBeam matches tie and strap beams.
func IsTieBeam(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "tie beam", "strap beam")
}

// IsFoundationWall matches foundation walls.
func IsFoundationWall(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "foundation wall", "fdn wall", "fnd wall")
}

// IsRetainingWall matches retaining walls.
func IsRetainingWall(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "retaining wall")
}

// IsElevatorPit matches elevator pit items.
func IsElevatorPit(v any) bool {
	s, ok := itemText(v)
	return ok && elevatorPitRe.MatchString(s)
}

// IsDetentionTank matches detention tank items.
func IsDetentionTank(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "detention tank")
}

// IsSewageEjectorPit matches sewage ejector pit items.
func IsSewageEjectorPit(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "sewage ejector", "ejector pit")
}

// IsGreaseTrap matches grease trap items.
func IsGreaseTrap(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "grease trap")
}

// IsHouseTrap matches house trap items.
func IsHouseTrap(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "house trap")
}

// IsMatSlab matches mat slabs and the haunches documented with them.
func IsMatSlab(v any) bool {
	s, ok := itemText(v)
	if !ok || containsAny(s, "drainage mat", "waterproof") {
		return false
	}
	return matRe.MatchString(s) || strings.Contains(s, "haunch")
}

// IsSOG matches slabs on grade and slope transitions.
func IsSOG(v any) bool {
	s, ok := itemText(v)
	if !ok {
		return false
	}
	return sogRe.MatchString(s) || containsAny(s, "slab on grade", "slab-on-grade", "slope transition")
}

// IsWaterproofing matches any waterproofing, damp proofing or vapor barrier line.
func IsWaterproofing(v any) bool {
	s, ok := itemText(v)
	return ok && containsAny(s, "waterproofing", "vapor barrier", "damp proofing", "dampproofing")
}

// IsNegativeSideWaterproofing matches negative side waterproofing.
func IsNegativeSideWaterproofing(v any) bool {
	s, _ := itemText(v)
	return IsWaterproofing(v) && strings.Contains(s, "negative")
}

// IsHorizontalWaterproofing matches horizontal waterproofing under slabs and mats.
func IsHorizontalWaterproofing(v any) bool {
	s, _ := itemText(v)
	return IsWaterproofing(v) && !IsNegativeSideWaterproofing(v) &&
		containsAny(s, "horizontal", "under slab", "underslab", "below slab", "under mat", "vapor barrier")
}

// IsExteriorWaterproofing matches the remaining waterproofing, applied to the exterior side.
func IsExteriorWaterproofing(v any) bool {
	return IsWaterproofing(v) && !IsNegativeSideWaterproofing(v) && !IsHorizontalWaterproofing(v)
}

// IsCIPSlab matches elevated slabs; slabs on grade, mats and pit slabs
// belong to the foundation categories.
func IsCIPSlab(v any) bool {
	s, ok := itemText(v)
	if !ok || !slabRe.MatchString(s) {
		return false
	}
	return !IsSOG(v) && !matRe.MatchString(s) && !pitStructureRe.MatchString(s)
}

// IsColumn matches superstructure columns.
func IsColumn(v any) bool {
	s, ok := itemText(v)
	return ok && columnRe.MatchString(s) && !strings.Contains(s, "soldier")
}

// IsBeam matches superstructure beams, excluding grade, tie and soldier beams.
func IsBeam(v any) bool {
	s, ok := itemText(v)
	if !ok || !beamRe.MatchString(s) {
		return false
	}
	return !containsAny(s, "grade beam", "tie beam", "strap beam", "soldier beam")
}

// IsConcreteWall matches superstructure walls, excluding foundation and pit walls.
func IsConcreteWall(v any) bool {
	s, ok := itemText(v)
	if !ok || !wallRe.MatchString(s) {
		return false
	}
	return !containsAny(s, foundationWalls...) && !pitStructureRe.MatchString(s)
}

// IsStair matches stairs.
func IsStair(v any) bool {
	s, ok := itemText(v)
	return ok && strings.Contains(s, "stair")
}

// IsBPPItem matches builder's pavement plan work: sidewalks, curbs,
// driveways and pedestrian ramps.
func IsBPPItem(v any) bool {
	s, ok := itemText(v)
	if !ok {
		return false
	}
	return containsAny(s, "sidewalk", "curb", "driveway", "pedestrian ramp", "ped ramp") || bppRe.MatchString(s)
}
