package calcsheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// fractionGlyphs maps vulgar-fraction code points to their ascii form.
var fractionGlyphs = map[rune]string{
	'½': "1/2",
	'¼': "1/4",
	'¾': "3/4",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
	'⅓': "1/3",
	'⅔': "2/3",
}

// normalizeText rewrites typographic marks used by digitizer exports into the
// plain ascii notation the parsers expect: primes become ' and ", fraction
// glyphs become " n/d", and the diameter sign variants collapse to Ø.
func normalizeText(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if frac, ok := fractionGlyphs[r]; ok {
			b.WriteByte(' ')
			b.WriteString(frac)
			continue
		}
		switch r {
		case '′', '’', '‘', '`':
			b.WriteByte('\'')
		case '″', '“', '”':
			b.WriteByte('"')
		case '⁄':
			b.WriteByte('/')
		case 'ø', '⌀', 'Φ', 'φ':
			b.WriteRune('Ø')
		case '×':
			b.WriteByte('x')
		default:
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), "''", "\"")
}

var (
	feetRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*'`)
	// Fraction-only must be tried first so "12/16" is not read as 1 + 2/16.
	inchRe         = regexp.MustCompile(`(?:(\d+)\s*/\s*(\d+)|(\d+(?:\.\d+)?)(?:\s*-?\s*(\d+)\s*/\s*(\d+))?)\s*"`)
	bareInchTailRe = regexp.MustCompile(`^\s*-\s*(\d+(?:\.\d+)?)(?:\s+(\d+)/(\d+))?`)
	bareNumberRe   = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*$`)
)

// dimToken matches one engineering dimension inside free text (after
// normalizeText): 27'-10", 5', 6 1/2", 3/8", or a bare number.
const dimToken = `\d+(?:\.\d+)?\s*'(?:\s*-?\s*(?:\d+/\d+|\d+(?:\.\d+)?(?:\s*-?\s*\d+/\d+)?)\s*"?)?` +
	`|(?:\d+/\d+|\d+(?:\.\d+)?(?:\s*-?\s*\d+/\d+)?)\s*"` +
	`|\d+(?:\.\d+)?`

var dimTokenRe = regexp.MustCompile(dimToken)

// SplitDimension separates a feet-inches string into its feet and inches
// parts. ok is false when nothing dimension-like was found.
func SplitDimension(text string) (feet, inches float64, ok bool) {
	s := normalizeText(strings.TrimSpace(text))
	if s == "" {
		return 0, 0, false
	}

	rest := s
	if m := feetRe.FindStringSubmatchIndex(s); m != nil {
		feet = parseFloat(s[m[2]:m[3]])
		ok = true
		rest = s[m[1]:]
		if tail := bareInchTailRe.FindStringSubmatch(rest); tail != nil && !strings.Contains(rest, "\"") {
			inches = parseFloat(tail[1]) + fraction(tail[2], tail[3])
			return feet, inches, true
		}
	}

	if m := inchRe.FindStringSubmatch(rest); m != nil {
		if m[1] != "" {
			inches = fraction(m[1], m[2])
		} else {
			inches = parseFloat(m[3]) + fraction(m[4], m[5])
		}
		return feet, inches, true
	}
	if ok {
		return feet, 0, true
	}

	if m := bareNumberRe.FindStringSubmatch(s); m != nil {
		return parseFloat(m[1]), 0, true
	}
	return 0, 0, false
}

// ParseDimension converts a feet-inches notation into decimal feet.
// Unparseable input yields 0.
func ParseDimension(text string) float64 {
	feet, inches, ok := SplitDimension(text)
	if !ok {
		return 0
	}
	return feet + inches/12
}

// ParseInches returns a dimension expressed in inches.
func ParseInches(text string) (float64, bool) {
	feet, inches, ok := SplitDimension(text)
	if !ok {
		return 0, false
	}
	return feet*12 + inches, true
}

// RoundToMultipleOf5 rounds up to the next standard procurement length.
func RoundToMultipleOf5(value float64) float64 {
	return math.Ceil(value/5) * 5
}

var labeledCache = map[string]*regexp.Regexp{}

func labeledRe(label string) *regexp.Regexp {
	if re, ok := labeledCache[label]; ok {
		return re
	}
	pattern := strings.ReplaceAll(regexp.QuoteMeta(label), " ", `\s*`)
	re := regexp.MustCompile(`(?i)\b` + pattern + `\s*=\s*(` + dimToken + `)`)
	labeledCache[label] = re
	return re
}

// Labels understood by LabeledDimension. The regexes are compiled once at
// package init so lookups never mutate shared state afterwards.
const (
	LabelHeight     = "H"
	LabelEmbedment  = "E"
	LabelRockSocket = "RS"
	LabelLength     = "L"
	LabelFreeLength = "Free length"
	LabelBondLength = "Bond length"
)

func init() {
	for _, l := range []string{LabelHeight, LabelEmbedment, LabelRockSocket, LabelLength, LabelFreeLength, LabelBondLength} {
		labeledRe(l)
	}
}

// LabeledDimension extracts the dimension following "label=" (for example
// H=27'-6"), reporting whether the label was present.
func LabeledDimension(text, label string) (float64, bool) {
	re, ok := labeledCache[label]
	if !ok {
		return 0, false
	}
	m := re.FindStringSubmatch(normalizeText(text))
	if m == nil {
		return 0, false
	}
	return ParseDimension(m[1]), true
}

// firstDimension returns the first dimension token found anywhere in text.
func firstDimension(text string) (float64, bool) {
	s := normalizeText(text)
	for _, tok := range dimTokenRe.FindAllString(s, -1) {
		if strings.ContainsAny(tok, "'\"") {
			return ParseDimension(tok), true
		}
	}
	return 0, false
}

var bracketRe = regexp.MustCompile(`\(([^()]*)\)`)
var dimSplitRe = regexp.MustCompile(`(?i)\s*x\s*`)

// bracketDimensions splits the first parenthesised "(A x B [x C])" group
// into decimal feet. Groups without an x separator are skipped.
func bracketDimensions(text string) []float64 {
	parts := bracketParts(text)
	if parts == nil {
		return nil
	}
	dims := make([]float64, len(parts))
	for i, p := range parts {
		dims[i] = ParseDimension(p)
	}
	return dims
}

func bracketParts(text string) []string {
	s := normalizeText(text)
	for _, m := range bracketRe.FindAllStringSubmatch(s, -1) {
		inner := strings.TrimSpace(m[1])
		if !strings.ContainsAny(inner, "xX") || !strings.ContainsAny(inner, "0123456789") {
			continue
		}
		parts := dimSplitRe.Split(inner, -1)
		if len(parts) < 2 {
			continue
		}
		return parts
	}
	return nil
}

func fraction(num, den string) float64 {
	if num == "" || den == "" {
		return 0
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return parseFloat(num) / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// formatNum renders a number for formula text and group keys without
// trailing zeros or float noise.
func formatNum(v float64) string {
	return strconv.FormatFloat(roundTo(v, 6), 'f', -1, 64)
}
