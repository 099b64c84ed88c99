package calcsheet

import (
	"fmt"
	"math"
	"strings"
)

// ConcreteDensity is the normal-weight concrete density in lbs/cu ft.
const ConcreteDensity = 150.0

// steelPipeFactor approximates the lbs/ft of a pipe section from its
// diameter and wall thickness in inches.
const steelPipeFactor = 10.69

// AngleWeights maps an angle cross-section (leg x leg x thickness, inches)
// to its unit weight in lbs/ft. Keys use the padded three-decimal form; a
// few legacy entries only exist in the short form.
var AngleWeights = map[string]float64{
	"3x3x0.250": 4.9,
	"3x3x0.375": 7.2,
	"3x3x0.500": 9.4,
	"4x3x0.375": 8.5,
	"4x3x0.500": 11.1,
	"4x4x0.250": 6.6,
	"4x4x0.375": 9.8,
	"4x4x0.500": 12.8,
	"4x4x0.750": 18.5,
	"5x3x0.500": 12.8,
	"5x5x0.375": 12.3,
	"5x5x0.500": 16.2,
	"5x5x0.750": 23.6,
	"6x4x0.375": 12.3,
	"6x4x0.500": 16.2,
	"6x4x0.625": 20.0,
	"6x6x0.375": 14.9,
	"6x6x0.500": 19.6,
	"6x6x0.625": 24.2,
	"6x6x0.750": 28.7,
	"7x4x0.500": 17.9,
	"8x4x0.500": 19.6,
	"8x4x0.750": 28.7,
	"8x4x1.000": 37.4,
	"8x6x0.500": 23.0,
	"8x6x0.750": 33.8,
	"8x8x0.500": 26.4,
	"8x8x0.625": 32.7,
	"8x8x0.750": 38.9,
	"8x8x1.000": 51.0,
	"6x3.5x0.5": 15.3,
	"5x3.5x0.5": 13.6,
}

// SheetPileWeights maps a sheet pile designation to its weight in lbs/sq ft
// of wall.
var SheetPileWeights = map[string]float64{
	"PZ22":  22.0,
	"PZ27":  27.0,
	"PZ35":  35.0,
	"PZ40":  40.0,
	"PZC13": 23.3,
	"PZC18": 26.4,
	"PZC26": 34.8,
	"NZ14":  24.2,
	"NZ19":  28.6,
	"NZ26":  35.6,
	"AZ13":  23.0,
	"AZ18":  24.4,
	"AZ26":  31.1,
}

// lookupWeight tries each key in order and returns the first hit.
func lookupWeight(table map[string]float64, keys ...string) float64 {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if w, ok := table[k]; ok {
			return w
		}
	}
	return 0
}

// angleKeys builds the padded ("8x4x0.500") and simple ("8x4x0.5") keys.
func angleKeys(leg1, leg2, thickness float64) (padded, simple string) {
	padded = fmt.Sprintf("%sx%sx%.3f", formatNum(leg1), formatNum(leg2), thickness)
	simple = fmt.Sprintf("%sx%sx%s", formatNum(leg1), formatNum(leg2), formatNum(thickness))
	return padded, simple
}

// AngleWeight returns the unit weight of an angle section, 0 when unknown.
func AngleWeight(leg1, leg2, thickness float64) float64 {
	padded, simple := angleKeys(leg1, leg2, thickness)
	return lookupWeight(AngleWeights, padded, simple)
}

// SheetPileWeight returns the weight per square foot of a sheet pile section.
func SheetPileWeight(designation string) float64 {
	d := strings.ToUpper(strings.Join(strings.Fields(designation), ""))
	return lookupWeight(SheetPileWeights, d, strings.ReplaceAll(d, "-", ""))
}

// ConcretePileWeight is the lbs/ft of a circular concrete section of the
// given diameter in inches.
func ConcretePileWeight(diameterInches float64) float64 {
	r := diameterInches / 12
	return math.Pi * r * r / 4 * ConcreteDensity
}

// SteelPipeWeight approximates the lbs/ft of a pipe pile.
func SteelPipeWeight(diameter, thickness float64) float64 {
	return (diameter - thickness) * thickness * steelPipeFactor
}

// circleArea returns the cross-section area in sq ft of a diameter in inches.
func circleArea(diameterInches float64) float64 {
	r := diameterInches / 12
	return math.Pi * r * r / 4
}

// CalculatePileWeight derives a pile's unit weight in lbs/ft from its
// parsed shape: HP sections carry their weight in the designation, pipe
// piles use the pipe approximation and plain circular sections fall back to
// concrete.
func CalculatePileWeight(p ParsedItem) float64 {
	switch {
	case p.Designation != "" && p.Weight > 0:
		return p.Weight
	case p.Diameter > 0 && p.Thickness > 0:
		return roundTo(SteelPipeWeight(p.Diameter, p.Thickness), 3)
	case p.Diameter > 0:
		return roundTo(ConcretePileWeight(p.Diameter), 3)
	}
	return 0
}
