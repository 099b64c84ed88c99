package calcsheet

import "fmt"

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Generation cannot use the template
	SeverityWarning                 // Output may be missing rows
)

// ValidationIssue represents a single problem found during validation.
type ValidationIssue struct {
	Severity Severity
	Location string
	Message  string
}

// String formats the issue as "[ERROR] Foundation/Piers: message".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Location, v.Message)
}

var knownSections = map[string]bool{
	SectionExcavation:     true,
	SectionRockExcavation: true,
	SectionTrenching:      true,
	SectionSOE:            true,
	SectionFoundation:     true,
	SectionWaterproofing:  true,
	SectionSuperstructure: true,
	SectionBPP:            true,
}

// ValidateTemplate checks a template against the layouts the assembler
// knows how to fill. Unknown names are warnings because their rows simply
// come out empty; a missing id or a wrong column count is an error.
func ValidateTemplate(t *Template) []ValidationIssue {
	if t == nil {
		return []ValidationIssue{{Severity: SeverityError, Location: "template", Message: "template is nil"}}
	}
	var issues []ValidationIssue
	if t.ID == "" {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Location: "template",
			Message:  "missing id",
		})
	}
	if len(t.Columns) != ColumnCount {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Location: "columns",
			Message:  fmt.Sprintf("expected %d columns, got %d", ColumnCount, len(t.Columns)),
		})
	}

	seen := make(map[string]bool)
	for _, s := range t.Structure {
		if seen[s.Section] {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Location: s.Section,
				Message:  "duplicate section",
			})
			continue
		}
		seen[s.Section] = true
		if !knownSections[s.Section] {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Location: s.Section,
				Message:  "unknown section; only its header row is emitted",
			})
			continue
		}
		issues = append(issues, validateSubsections(s)...)
	}
	return issues
}

func validateSubsections(s Section) []ValidationIssue {
	var issues []ValidationIssue
	switch s.Section {
	case SectionBPP, SectionTrenching:
		if len(s.Subsections) > 0 {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Location: s.Section,
				Message:  "subsections are ignored; this section's layout is data-driven",
			})
		}
		return issues
	}
	for _, sub := range s.Subsections {
		if _, ok := CategoryFor(s.Section, sub.Name); !ok {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Location: s.Section + "/" + sub.Name,
				Message:  "no category feeds this subsection",
			})
		}
	}
	return issues
}

// ValidateFormulas compiles every generated formula of a result and
// reports the ones the evaluator cannot parse.
func ValidateFormulas(r *Result) []ValidationIssue {
	var issues []ValidationIssue
	for _, cw := range r.Cells() {
		if cw.Formula == "" {
			continue
		}
		src, err := translateFormula(cw.Formula)
		if err == nil {
			_, err = compileFormula(src)
		}
		if err != nil {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Location: cw.Ref,
				Message:  fmt.Sprintf("invalid formula %q: %v", cw.Formula, err),
			})
		}
	}
	return issues
}
