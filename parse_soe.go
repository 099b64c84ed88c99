package calcsheet

import (
	"fmt"
	"math"
	"strings"
)

// ParseSoldierPile reads HP and drilled soldier piles.
//
// HP piles round H up to the next 5 ft and group by the raw height. Drilled
// piles add the rock socket (never the embedment) before rounding, and group
// by diameter, thickness, which of E/RS is present and both lengths in inches.
func ParseSoldierPile(text string) ParsedItem {
	s := normalizeText(text)
	h, _ := LabeledDimension(s, LabelHeight)

	if m := hpShapeRe.FindStringSubmatch(s); m != nil {
		p := ParsedItem{
			Type:        TypeHPSoldierPile,
			Designation: "HP" + m[1] + "x" + m[2],
			Weight:      parseFloat(m[2]),
			HeightRaw:   h,
		}
		p.CalculatedHeight = RoundToMultipleOf5(h)
		p.GroupKey = "HP-" + formatNum(h)
		return p
	}

	p := ParsedItem{Type: TypeDrilledSoldierPile, HeightRaw: h}
	if m := pipeShapeRe.FindStringSubmatch(s); m != nil {
		p.Diameter = parseFloat(m[1])
		p.Thickness = parseFloat(m[2])
	} else if m := diameterRe.FindStringSubmatch(s); m != nil {
		p.Diameter = parseFloat(m[1])
	}
	p.Embedment, p.HasEmbedment = LabeledDimension(s, LabelEmbedment)
	p.RockSocket, p.HasRockSocket = LabeledDimension(s, LabelRockSocket)

	if p.HasRockSocket {
		p.CalculatedHeight = RoundToMultipleOf5(h + p.RockSocket)
	} else {
		p.CalculatedHeight = RoundToMultipleOf5(h)
	}
	p.Weight = CalculatePileWeight(p)
	p.GroupKey = fmt.Sprintf("%s-%s-%s-%d-%d",
		formatNum(p.Diameter), formatNum(p.Thickness), embedmentPattern(p),
		int(math.Round(p.Embedment*12)), int(math.Round(p.RockSocket*12)))
	return p
}

func embedmentPattern(p ParsedItem) string {
	switch {
	case p.HasEmbedment && p.HasRockSocket:
		return "E+RS"
	case p.HasEmbedment:
		return "E"
	case p.HasRockSocket:
		return "RS"
	}
	return "H"
}

// ParseSheetPile reads the section designation and the driven height.
func ParseSheetPile(text string) ParsedItem {
	s := normalizeText(text)
	p := ParsedItem{Type: TypeSheetPile}
	if m := sheetPileDesRe.FindStringSubmatch(s); m != nil {
		p.Designation = strings.ToUpper(strings.Join(strings.Fields(m[1]), ""))
		p.Weight = SheetPileWeight(p.Designation)
	}
	p.HeightRaw, _ = LabeledDimension(s, LabelHeight)
	p.CalculatedHeight = RoundToMultipleOf5(p.HeightRaw)
	p.GroupKey = p.Designation + "-" + formatNum(p.CalculatedHeight)
	return p
}

func parseTimberLagging(text string) ParsedItem {
	return parseThicknessItem(text, TypeTimberLagging)
}

func parseTimberSheeting(text string) ParsedItem {
	return parseThicknessItem(text, TypeTimberSheeting)
}

// ParseWaler reads the "(N) -" multiplier and a W or channel section.
// Rakers additionally carry their length as L=.
func ParseWaler(text string, t ItemType) ParsedItem {
	s := normalizeText(text)
	p := ParsedItem{Type: t, Qty: leadingQty(s)}
	if m := wShapeRe.FindStringSubmatch(s); m != nil {
		p.Designation = "W" + m[1] + "x" + m[2]
		p.Weight = parseFloat(m[2])
	} else if m := channelShapeRe.FindStringSubmatch(s); m != nil {
		p.Designation = "C" + m[1] + "x" + m[2]
		p.Weight = parseFloat(m[2])
	}
	if t == TypeRaker {
		p.Length, _ = LabeledDimension(s, LabelLength)
	}
	p.GroupKey = p.Designation
	return p
}

// ParseSupportingAngle reads the multiplier, the L{a}x{b}x{t} section and
// the location after "@", which becomes the group key.
func ParseSupportingAngle(text string) ParsedItem {
	s := normalizeText(text)
	p := ParsedItem{Type: TypeSupportingAngle, Qty: leadingQty(s)}
	if m := angleShapeRe.FindStringSubmatch(s); m != nil {
		leg1, leg2 := parseFloat(m[1]), parseFloat(m[2])
		thick := parseMixedNumber(m[3])
		p.Length, p.Width, p.Thickness = leg1, leg2, thick
		p.Designation = "L" + formatNum(leg1) + "x" + formatNum(leg2) + "x" + formatNum(thick)
		p.Weight = AngleWeight(leg1, leg2, thick)
	}
	if i := strings.Index(text, "@"); i >= 0 {
		p.GroupKey = strings.TrimSpace(text[i+1:])
	}
	if p.GroupKey == "" {
		p.GroupKey = p.Designation
	}
	return p
}

// ParseAnchor reads free and bond lengths of rock anchors, tie backs and
// anchors. The height is the rounded total plus a 5 ft allowance.
func ParseAnchor(text string, t ItemType) ParsedItem {
	p := ParsedItem{Type: t}
	p.FreeLength, _ = LabeledDimension(text, LabelFreeLength)
	p.BondLength, _ = LabeledDimension(text, LabelBondLength)
	p.HeightRaw = p.FreeLength + p.BondLength
	p.CalculatedHeight = RoundToMultipleOf5(p.HeightRaw) + 5
	p.GroupKey = formatNum(p.CalculatedHeight)
	return p
}

// ParseRockBolt reads the O.C. spacing and the bond length. The bolt
// length is bond + 5 ft with no rounding.
func ParseRockBolt(text string) ParsedItem {
	s := normalizeText(text)
	p := ParsedItem{Type: TypeRockBolt}
	if m := spacingRe.FindStringSubmatch(s); m != nil {
		p.Spacing = ParseDimension(m[1])
	}
	p.BondLength, _ = LabeledDimension(s, LabelBondLength)
	p.CalculatedLength = p.BondLength + 5
	p.GroupKey = formatNum(p.CalculatedLength)
	return p
}

// ParseGuideWall reads "(W x H)" where W may carry a fractional inch. The
// width is also kept as an exact formula such as "4+(6.5/12)".
func ParseGuideWall(text string) ParsedItem {
	p := ParsedItem{Type: TypeGuideWall}
	parts := bracketParts(text)
	if len(parts) < 2 {
		p.HeightRaw, _ = LabeledDimension(text, LabelHeight)
		p.Height = p.HeightRaw
		return p
	}
	feet, inches, _ := SplitDimension(parts[0])
	p.Width = feet + inches/12
	if inches != 0 {
		p.WidthFormula = formatNum(feet) + "+(" + formatNum(inches) + "/12)"
	} else {
		p.WidthFormula = formatNum(feet)
	}
	p.HeightRaw = ParseDimension(parts[1])
	p.Height = p.HeightRaw
	p.GroupKey = dimsKey(p.Width, p.Height)
	return p
}

func parseHeelBlock(text string) ParsedItem { return parseBoxItem(text, TypeHeelBlock) }
func parseButton(text string) ParsedItem    { return parseBoxItem(text, TypeButton) }
func parseSoilRetentionPier(text string) ParsedItem {
	return parseBoxItem(text, TypeSoilRetentionPier)
}
func parseShotcrete(text string) ParsedItem { return parseThicknessItem(text, TypeShotcrete) }
