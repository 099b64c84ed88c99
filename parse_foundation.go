package calcsheet

import (
	"strings"
)

// ParseDrilledFoundationPile reads single and dual diameter drilled piles.
// A dual pile lists the casing diameter first and the socket diameter
// second; the casing weight applies over H and the socket weight over RS.
func ParseDrilledFoundationPile(text string) ParsedItem {
	s := normalizeText(text)
	p := ParsedItem{Type: TypeDrilledFoundationPile}

	diameters := diameterRe.FindAllStringSubmatch(s, -1)
	if len(diameters) > 0 {
		p.Diameter = parseFloat(diameters[0][1])
	}
	if len(diameters) > 1 {
		p.Diameter2 = parseFloat(diameters[1][1])
		p.Dual = true
	}
	if m := pipeShapeRe.FindStringSubmatch(s); m != nil {
		p.Thickness = parseFloat(m[2])
	}

	p.HeightRaw, _ = LabeledDimension(s, LabelHeight)
	p.RockSocket, p.HasRockSocket = LabeledDimension(s, LabelRockSocket)
	p.CalculatedHeight = RoundToMultipleOf5(p.HeightRaw + p.RockSocket)

	p.Weight = CalculatePileWeight(p)
	if p.Dual {
		p.Weight2 = CalculatePileWeight(ParsedItem{Diameter: p.Diameter2, Thickness: p.Thickness})
		p.GroupKey = "dual-" + formatNum(p.Diameter) + "-" + formatNum(p.Diameter2)
	} else {
		p.GroupKey = "single-" + formatNum(p.Diameter)
	}
	return p
}

// parsePileItem is shared by driven, CFA, Stelcor and miscellaneous piles:
// a steel designation or diameter, H=, and the influence flag.
func parsePileItem(text string, t ItemType) ParsedItem {
	s := normalizeText(text)
	p := ParsedItem{Type: t, HasInfluence: influenceRe.MatchString(s)}

	switch {
	case hpShapeRe.MatchString(s):
		m := hpShapeRe.FindStringSubmatch(s)
		p.Designation = "HP" + m[1] + "x" + m[2]
		p.Weight = parseFloat(m[2])
	case wShapeRe.MatchString(s):
		m := wShapeRe.FindStringSubmatch(s)
		p.Designation = "W" + m[1] + "x" + m[2]
		p.Weight = parseFloat(m[2])
	case pipeShapeRe.MatchString(s):
		m := pipeShapeRe.FindStringSubmatch(s)
		p.Diameter, p.Thickness = parseFloat(m[1]), parseFloat(m[2])
	case diameterRe.MatchString(s):
		p.Diameter = parseFloat(diameterRe.FindStringSubmatch(s)[1])
	}
	if p.Weight == 0 {
		p.Weight = CalculatePileWeight(p)
	}

	var hasHeight bool
	p.HeightRaw, hasHeight = LabeledDimension(s, LabelHeight)
	p.RockSocket, p.HasRockSocket = LabeledDimension(s, LabelRockSocket)
	if hasHeight {
		p.CalculatedHeight = RoundToMultipleOf5(p.HeightRaw + p.RockSocket)
	}

	key := p.Designation
	if key == "" {
		key = formatNum(p.Diameter) + "Ø"
	}
	p.GroupKey = key
	return p
}

func parseDrivenPile(text string) ParsedItem  { return parsePileItem(text, TypeDrivenPile) }
func parseCFAPile(text string) ParsedItem     { return parsePileItem(text, TypeCFAPile) }
func parseStelcorPile(text string) ParsedItem { return parsePileItem(text, TypeStelcorPile) }
func parseMiscPile(text string) ParsedItem    { return parsePileItem(text, TypeMiscPile) }

func parsePileCap(text string) ParsedItem        { return parseBoxItem(text, TypePileCap) }
func parseIsolatedFooting(text string) ParsedItem { return parseBoxItem(text, TypeIsolatedFooting) }
func parsePier(text string) ParsedItem           { return parseBoxItem(text, TypePier) }
func parseGradeBeam(text string) ParsedItem      { return parseWallItem(text, TypeGradeBeam) }
func parseTieBeam(text string) ParsedItem        { return parseWallItem(text, TypeTieBeam) }
func parseFoundationWall(text string) ParsedItem { return parseWallItem(text, TypeFoundationWall) }
func parseRetainingWall(text string) ParsedItem  { return parseWallItem(text, TypeRetainingWall) }

// ParseStripFooting reads the ST/SF/WF tag. ST brackets are width x height;
// SF and WF brackets put the first dimension in the length column.
func ParseStripFooting(text string) ParsedItem {
	p := ParsedItem{Type: TypeStripFooting, SubType: StripFootingST}
	if m := stripTagRe.FindStringSubmatch(normalizeText(text)); m != nil {
		p.SubType = strings.ToUpper(m[1])
	}
	dims := bracketDimensions(text)
	switch {
	case len(dims) >= 3:
		p.Length, p.Width, p.Height = dims[0], dims[1], dims[2]
	case len(dims) == 2 && p.SubType == StripFootingST:
		p.Width, p.Height = dims[0], dims[1]
	case len(dims) == 2:
		p.Length, p.Height = dims[0], dims[1]
	default:
		p.Height, _ = LabeledDimension(text, LabelHeight)
	}
	p.HeightRaw = p.Height
	p.GroupKey = p.SubType + "-" + dimsKey(p.Length, p.Width, p.Height)
	return p
}

// ParsePitItem reads one line of a pit-like structure (elevator pit,
// detention tank, ejector pits, traps) and tags its sub-type.
func ParsePitItem(text string) ParsedItem {
	switch {
	case pitSumpRe.MatchString(text):
		p := parseBoxItem(text, TypePitSump)
		p.SubType = SubTypeSumpPit
		return p
	case pitWallRe.MatchString(text):
		p := parseWallItem(text, TypePitWall)
		p.SubType = SubTypeWall
		return p
	}
	p := parseThicknessItem(text, TypePitSlab)
	p.SubType = SubTypeSlab
	p.GroupKey = inchesKey(p.Height)
	return p
}

// ParseMatSlab tags mats (grouped by thickness in whole inches) and
// haunches (W x H bracket).
func ParseMatSlab(text string) ParsedItem {
	if haunchRe.MatchString(text) {
		p := parseWallItem(text, TypeHaunch)
		p.SubType = SubTypeHaunch
		return p
	}
	p := parseThicknessItem(text, TypeMat)
	p.SubType = SubTypeMat
	p.GroupKey = inchesKey(p.Height)
	return p
}

// ParseSOG tags slab-on-grade lines and slope transitions.
func ParseSOG(text string) ParsedItem {
	if slopeTransRe.MatchString(text) {
		p := parseWallItem(text, TypeSlopeTransition)
		p.SubType = SubTypeSlopeTransition
		return p
	}
	p := parseThicknessItem(text, TypeSOG)
	p.SubType = SubTypeSlab
	p.GroupKey = inchesKey(p.Height)
	return p
}
