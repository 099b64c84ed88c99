package calcsheet

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	qtyPrefixRe  = regexp.MustCompile(`^\s*\(?\s*(\d+)\s*\)?\s*-`)
	thickRe      = regexp.MustCompile(`(?i)(` + dimToken + `)\s*(?:thk\.?|thick)`)
	influenceRe  = regexp.MustCompile(`(?i)influ`)
	diameterRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*"?\s*Ø`)
	pipeShapeRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*"?\s*Ø\s*x\s*(\d+(?:\.\d+)?)`)
	mixedNumRe   = regexp.MustCompile(`^\s*(?:(\d+(?:\.\d+)?)\s+)?(\d+)\s*/\s*(\d+)\s*$`)
	spacingRe    = regexp.MustCompile(`(?i)@\s*(` + dimToken + `)\s*O\.?\s*C`)
	streetRe     = regexp.MustCompile(`(?i)(?:@|\bon\b|\balong\b)\s+([A-Za-z0-9.' ]+?\s(?:street|st|avenue|ave|road|rd|boulevard|blvd|place|pl|drive|dr|lane|ln|parkway|pkwy|way))\b`)
	pitSumpRe    = regexp.MustCompile(`(?i)\bsump\b`)
	pitWallRe    = regexp.MustCompile(`(?i)\bwalls?\b`)
	haunchRe     = regexp.MustCompile(`(?i)haunch`)
	slopeTransRe = regexp.MustCompile(`(?i)slope\s+transition`)
)

// UnspecifiedStreet is the B.P.P. bucket for items naming no street.
const UnspecifiedStreet = "Unspecified street"

// leadingQty reads the "(N) -" multiplier in front of an item, default 1.
func leadingQty(text string) float64 {
	if m := qtyPrefixRe.FindStringSubmatch(text); m != nil {
		if q := parseFloat(m[1]); q > 0 {
			return q
		}
	}
	return 1
}

// parseMixedNumber reads "1/2", "1 1/2" or "0.5".
func parseMixedNumber(s string) float64 {
	if m := mixedNumRe.FindStringSubmatch(s); m != nil {
		return parseFloat(m[1]) + fraction(m[2], m[3])
	}
	return parseFloat(s)
}

// thicknessOf finds a height or thickness: an explicit H=, a lone bracketed
// dimension, a "thk" dimension, then the first marked dimension.
func thicknessOf(text string) (float64, bool) {
	if h, ok := LabeledDimension(text, LabelHeight); ok {
		return h, true
	}
	s := normalizeText(text)
	for _, m := range bracketRe.FindAllStringSubmatch(s, -1) {
		inner := m[1]
		if strings.ContainsAny(inner, "xX=") {
			continue
		}
		if tok := dimTokenRe.FindString(inner); tok != "" && strings.ContainsAny(tok, "'\"") {
			return ParseDimension(tok), true
		}
	}
	if m := thickRe.FindStringSubmatch(s); m != nil {
		return ParseDimension(m[1]), true
	}
	return firstDimension(s)
}

// parseThicknessItem covers items measured by area or length with a single
// depth: excavation, slabs, lagging, waterproofing and the like.
func parseThicknessItem(text string, t ItemType) ParsedItem {
	h, _ := thicknessOf(text)
	return ParsedItem{Type: t, HeightRaw: h, Height: h}
}

// parseBoxItem reads an (L x W x H) bracket. Two-part brackets take the
// height from H= instead.
func parseBoxItem(text string, t ItemType) ParsedItem {
	p := ParsedItem{Type: t}
	dims := bracketDimensions(text)
	switch {
	case len(dims) >= 3:
		p.Length, p.Width, p.Height = dims[0], dims[1], dims[2]
	case len(dims) == 2:
		p.Length, p.Width = dims[0], dims[1]
		p.Height, _ = LabeledDimension(text, LabelHeight)
	default:
		p.Height, _ = LabeledDimension(text, LabelHeight)
	}
	p.HeightRaw = p.Height
	p.GroupKey = dimsKey(p.Length, p.Width, p.Height)
	return p
}

// parseWallItem reads a (W x H) bracket for walls and beams.
func parseWallItem(text string, t ItemType) ParsedItem {
	p := ParsedItem{Type: t}
	dims := bracketDimensions(text)
	switch {
	case len(dims) >= 3:
		p.Length, p.Width, p.Height = dims[0], dims[1], dims[2]
	case len(dims) == 2:
		p.Width, p.Height = dims[0], dims[1]
	default:
		p.Height, _ = LabeledDimension(text, LabelHeight)
	}
	p.HeightRaw = p.Height
	p.GroupKey = dimsKey(p.Width, p.Height)
	return p
}

func dimsKey(dims ...float64) string {
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		if d == 0 {
			continue
		}
		parts = append(parts, formatNum(roundTo(d, 4)))
	}
	return strings.Join(parts, "x")
}

// inchesKey renders a height as a whole-inch group key such as "H-12".
func inchesKey(feet float64) string {
	return fmt.Sprintf("H-%d", int(math.Round(feet*12)))
}

func parseExcavation(text string) ParsedItem { return parseThicknessItem(text, TypeExcavation) }
func parseBackfill(text string) ParsedItem   { return parseThicknessItem(text, TypeBackfill) }
func parseRockExcavation(text string) ParsedItem {
	return parseThicknessItem(text, TypeRockExcavation)
}
func parseLineDrill(text string) ParsedItem { return parseThicknessItem(text, TypeLineDrill) }
func parseTrench(text string) ParsedItem    { return ParsedItem{Type: TypeTrench} }

func parseWaterproofing(text string) ParsedItem {
	switch {
	case IsNegativeSideWaterproofing(text):
		return parseThicknessItem(text, TypeWaterproofingNegative)
	case IsHorizontalWaterproofing(text):
		return ParsedItem{Type: TypeWaterproofingHorizontal}
	}
	return parseThicknessItem(text, TypeWaterproofingExterior)
}

func parseCIPSlab(text string) ParsedItem      { return parseThicknessItem(text, TypeCIPSlab) }
func parseColumn(text string) ParsedItem       { return parseBoxItem(text, TypeColumn) }
func parseBeam(text string) ParsedItem         { return parseWallItem(text, TypeBeam) }
func parseConcreteWall(text string) ParsedItem { return parseWallItem(text, TypeConcreteWall) }
func parseStair(text string) ParsedItem        { return ParsedItem{Type: TypeStair} }

// ParseBPPItem classifies a builder's pavement plan line and extracts the
// street it belongs to.
func ParseBPPItem(text string) ParsedItem {
	s := strings.ToLower(text)
	var p ParsedItem
	switch {
	case strings.Contains(s, "curb"):
		p = ParsedItem{Type: TypeBPPCurb}
	case strings.Contains(s, "driveway"):
		p = parseThicknessItem(text, TypeBPPDriveway)
	case containsAny(s, "ramp"):
		p = ParsedItem{Type: TypeBPPRamp}
	default:
		p = parseThicknessItem(text, TypeBPPSidewalk)
	}
	p.Street = ExtractStreet(text)
	p.GroupKey = p.Street
	return p
}

// ExtractStreet finds the street a B.P.P. line refers to: "@ Main St",
// "on 5th Avenue", or the text after the last " - ".
func ExtractStreet(text string) string {
	s := normalizeText(text)
	if m := streetRe.FindStringSubmatch(s); m != nil {
		return strings.Join(strings.Fields(m[1]), " ")
	}
	if i := strings.LastIndex(s, " - "); i >= 0 {
		if tail := strings.TrimSpace(s[i+3:]); tail != "" {
			return tail
		}
	}
	return UnspecifiedStreet
}
