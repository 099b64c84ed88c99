package calcsheet

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// CapstoneTemplateID identifies the built-in template.
const CapstoneTemplateID = "capstone"

// ColumnCount is the fixed sheet width, columns A through M.
const ColumnCount = 13

// Section names. The assembler keys its section-specific layout on them.
const (
	SectionExcavation     = "Excavation"
	SectionRockExcavation = "Rock Excavation"
	SectionTrenching      = "Trenching"
	SectionSOE            = "SOE"
	SectionFoundation     = "Foundation"
	SectionWaterproofing  = "Waterproofing"
	SectionSuperstructure = "Superstructure"
	SectionBPP            = "B.P.P. Alternate"
)

// Subsection names.
const (
	SubExcavation = "Excavation"
	SubBackfill   = "Backfill"

	SubRockExcavation = "Rock excavation"
	SubLineDrill      = "Line drill"

	SubSoldierPiles       = "Soldier piles"
	SubSheetPiles         = "Sheet piles"
	SubTimberLagging      = "Timber lagging"
	SubTimberSheeting     = "Timber sheeting"
	SubWalers             = "Walers"
	SubRakers             = "Rakers"
	SubSupportingAngles   = "Supporting angles"
	SubRockAnchors        = "Rock anchors"
	SubTieBacks           = "Tie backs"
	SubAnchors            = "Anchors"
	SubRockBolts          = "Rock bolts"
	SubGuideWall          = "Guide wall"
	SubHeelBlocks         = "Heel blocks"
	SubButtons            = "Buttons"
	SubSoilRetentionPiers = "Concrete soil retention piers"
	SubShotcrete          = "Shotcrete"

	SubDrilledFoundationPiles = "Drilled foundation piles"
	SubDrivenPiles            = "Driven piles"
	SubCFAPiles               = "CFA piles"
	SubStelcorPiles           = "Stelcor piles"
	SubMiscPiles              = "Miscellaneous piles"
	SubPileCaps               = "Pile caps"
	SubStripFootings          = "Strip footings"
	SubIsolatedFootings       = "Isolated footings"
	SubPiers                  = "Piers"
	SubGradeBeams             = "Grade beams"
	SubTieBeams               = "Tie beams"
	SubFoundationWalls        = "Foundation walls"
	SubRetainingWalls         = "Retaining walls"
	SubElevatorPit            = "Elevator pit"
	SubDetentionTank          = "Detention tank"
	SubSewageEjectorPits      = "Sewage ejector pits"
	SubGreaseTrap             = "Grease trap"
	SubHouseTrap              = "House trap"
	SubMatSlab                = "Mat slab"
	SubSOG                    = "SOG"

	SubWPExterior   = "Exterior side"
	SubWPNegative   = "Negative side"
	SubWPHorizontal = "Horizontal"

	SubCIPSlabs      = "CIP slabs"
	SubColumns       = "Columns"
	SubBeams         = "Beams"
	SubConcreteWalls = "Concrete walls"
	SubStairs        = "Stairs"
)

var (
	// ErrUnknownTemplate is returned in strict mode for an unregistered id.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrInvalidTemplate wraps template validation failures.
	ErrInvalidTemplate = errors.New("invalid template")
)

// Subsection is a named block inside a section.
type Subsection struct {
	Name           string       `yaml:"name"`
	SubSubsections []Subsection `yaml:"subSubsections,omitempty"`
}

// Section is one top-level block of the sheet.
type Section struct {
	Section     string       `yaml:"section"`
	Subsections []Subsection `yaml:"subsections,omitempty"`
}

// Template is the read-only description of a sheet layout.
type Template struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Columns   []string  `yaml:"columns"`
	Structure []Section `yaml:"structure"`
}

func subs(names ...string) []Subsection {
	out := make([]Subsection, len(names))
	for i, n := range names {
		out[i] = Subsection{Name: n}
	}
	return out
}

// CapstoneTemplate returns a fresh copy of the built-in template.
func CapstoneTemplate() *Template {
	return &Template{
		ID:   CapstoneTemplateID,
		Name: "Capstone Calculation Sheet",
		Columns: []string{
			"Estimate", "Particulars", "Takeoff", "Unit", "QTY", "Length",
			"Width", "Height", "FT", "SQ FT", "LBS", "CY", "QTY",
		},
		Structure: []Section{
			{Section: SectionExcavation, Subsections: subs(SubExcavation, SubBackfill)},
			{Section: SectionRockExcavation, Subsections: subs(SubRockExcavation, SubLineDrill)},
			{Section: SectionTrenching},
			{Section: SectionSOE, Subsections: subs(
				SubSoldierPiles, SubSheetPiles, SubTimberLagging, SubTimberSheeting,
				SubWalers, SubRakers, SubSupportingAngles, SubRockAnchors, SubTieBacks,
				SubAnchors, SubRockBolts, SubGuideWall, SubHeelBlocks, SubButtons,
				SubSoilRetentionPiers, SubShotcrete,
			)},
			{Section: SectionFoundation, Subsections: subs(
				SubDrilledFoundationPiles, SubDrivenPiles, SubCFAPiles, SubStelcorPiles,
				SubMiscPiles, SubPileCaps, SubStripFootings, SubIsolatedFootings,
				SubPiers, SubGradeBeams, SubTieBeams, SubFoundationWalls,
				SubRetainingWalls, SubElevatorPit, SubDetentionTank,
				SubSewageEjectorPits, SubGreaseTrap, SubHouseTrap, SubMatSlab, SubSOG,
			)},
			{Section: SectionWaterproofing, Subsections: subs(SubWPExterior, SubWPNegative, SubWPHorizontal)},
			{Section: SectionSuperstructure, Subsections: subs(SubCIPSlabs, SubColumns, SubBeams, SubConcreteWalls, SubStairs)},
			{Section: SectionBPP},
		},
	}
}

// Registry maps template ids to templates.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns a registry holding the capstone template plus extra.
func NewRegistry(extra ...*Template) *Registry {
	r := &Registry{templates: map[string]*Template{CapstoneTemplateID: CapstoneTemplate()}}
	for _, t := range extra {
		if t != nil && t.ID != "" {
			r.templates[t.ID] = t
		}
	}
	return r
}

// Get returns the template registered under id.
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// Lookup returns the template for id, falling back to capstone. The
// boolean reports whether id was found.
func (r *Registry) Lookup(id string) (*Template, bool) {
	if t, ok := r.templates[id]; ok {
		return t, true
	}
	return r.templates[CapstoneTemplateID], false
}

// IDs lists registered template ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LookupTemplate resolves id against the built-in templates, falling back
// to capstone for an unknown id.
func LookupTemplate(id string) *Template {
	t, _ := NewRegistry().Lookup(id)
	return t
}

// LoadTemplate decodes a YAML template and validates it. Warnings are
// tolerated; any error-severity issue fails the load.
func LoadTemplate(r io.Reader) (*Template, error) {
	var t Template
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	for _, issue := range ValidateTemplate(&t) {
		if issue.Severity == SeverityError {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, issue)
		}
	}
	return &t, nil
}
