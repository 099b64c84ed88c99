package calcsheet

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrCircularReference is returned when a formula depends on itself.
var ErrCircularReference = errors.New("circular reference")

// formulaRefRegex matches a cell reference or an A1:B2 range in a formula.
var formulaRefRegex = regexp.MustCompile(`\b\$?([A-Z]{1,3})\$?(\d+)(?::\$?([A-Z]{1,3})\$?(\d+))?\b`)

// programCache maps translated formula source to its compiled program.
var programCache sync.Map

// translateFormula rewrites a sheet formula into an expr program: cell
// references become cell("C5") calls and ranges rng("I3","I7") calls.
func translateFormula(formula string) (string, error) {
	f := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if f == "" {
		return "", fmt.Errorf("empty formula")
	}
	f = strings.ReplaceAll(f, "<>", "!=")
	f = formulaRefRegex.ReplaceAllStringFunc(f, func(m string) string {
		parts := formulaRefRegex.FindStringSubmatch(m)
		first := parts[1] + parts[2]
		if parts[3] == "" {
			return `cell("` + first + `")`
		}
		return `rng("` + first + `","` + parts[3] + parts[4] + `")`
	})
	return f, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unexpected %T in formula", v)
}

// flatten expands range arguments into their cell values.
func flatten(params []any) ([]float64, error) {
	var out []float64
	for _, p := range params {
		if vals, ok := p.([]float64); ok {
			out = append(out, vals...)
			continue
		}
		f, err := toFloat(p)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func sumFunc(params ...any) (any, error) {
	vals, err := flatten(params)
	if err != nil {
		return nil, err
	}
	var s float64
	for _, v := range vals {
		s += v
	}
	return s, nil
}

func maxFunc(params ...any) (any, error) {
	vals, err := flatten(params)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return 0.0, nil
	}
	m := vals[0]
	for _, v := range vals[1:] {
		m = math.Max(m, v)
	}
	return m, nil
}

func ifFunc(params ...any) (any, error) {
	if len(params) != 3 {
		return nil, fmt.Errorf("IF expects 3 arguments, got %d", len(params))
	}
	cond, err := toFloat(params[0])
	if err != nil {
		return nil, err
	}
	if cond != 0 {
		return toFloat(params[1])
	}
	return toFloat(params[2])
}

// roundUpFunc rounds away from zero like the spreadsheet ROUNDUP.
func roundUpFunc(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("ROUNDUP expects 2 arguments, got %d", len(params))
	}
	x, err := toFloat(params[0])
	if err != nil {
		return nil, err
	}
	d, err := toFloat(params[1])
	if err != nil {
		return nil, err
	}
	p := math.Pow(10, d)
	// Trim float noise so 12.000000001 does not round up to 13.
	scaled := roundTo(math.Abs(x)*p, 9)
	return math.Copysign(math.Ceil(scaled)/p, x), nil
}

var formulaFunctions = []expr.Option{
	expr.Function("SUM", sumFunc),
	expr.Function("MAX", maxFunc),
	expr.Function("IF", ifFunc),
	expr.Function("ROUNDUP", roundUpFunc),
}

// formulaEnv binds cell and range lookups to e. A nil evaluator gives a
// type-only environment for compilation.
func formulaEnv(e *Evaluator) map[string]any {
	if e == nil {
		return map[string]any{
			"cell": func(string) (float64, error) { return 0, nil },
			"rng":  func(string, string) ([]float64, error) { return nil, nil },
		}
	}
	return map[string]any{"cell": e.Value, "rng": e.Range}
}

func compileFormula(src string) (*vm.Program, error) {
	if cached, ok := programCache.Load(src); ok {
		return cached.(*vm.Program), nil
	}
	opts := append([]expr.Option{expr.Env(formulaEnv(nil))}, formulaFunctions...)
	program, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, err
	}
	programCache.Store(src, program)
	return program, nil
}

// Evaluator previews a generated sheet by computing its formulas. It
// memoizes cell values and is not safe for concurrent use; the compiled
// program cache behind it is shared.
type Evaluator struct {
	cells    map[string]CellWrite
	values   map[string]float64
	visiting map[string]bool
	rows     int
}

// NewEvaluator prepares an evaluator over the rendered cells of r.
func NewEvaluator(r *Result) *Evaluator {
	e := &Evaluator{
		cells:    make(map[string]CellWrite),
		values:   make(map[string]float64),
		visiting: make(map[string]bool),
		rows:     len(r.Rows),
	}
	for _, c := range r.Cells() {
		e.cells[c.Ref] = c
	}
	return e
}

// Value returns the numeric value of a cell such as "L12". Blank and text
// cells are 0.
func (e *Evaluator) Value(ref string) (float64, error) {
	cr, err := ParseCellRef(ref)
	if err != nil {
		return 0, err
	}
	name := cr.CellName()
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	c, ok := e.cells[name]
	if !ok {
		return 0, nil
	}
	if c.Formula == "" {
		v, _ := c.Value.(float64)
		e.values[name] = v
		return v, nil
	}
	if e.visiting[name] {
		return 0, fmt.Errorf("%w at %s", ErrCircularReference, name)
	}
	e.visiting[name] = true
	defer delete(e.visiting, name)

	src, err := translateFormula(c.Formula)
	if err != nil {
		return 0, fmt.Errorf("cell %s: %w", name, err)
	}
	program, err := compileFormula(src)
	if err != nil {
		return 0, fmt.Errorf("compile formula %q at %s: %w", c.Formula, name, err)
	}
	out, err := expr.Run(program, formulaEnv(e))
	if err != nil {
		return 0, fmt.Errorf("evaluate formula %q at %s: %w", c.Formula, name, err)
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("cell %s: %w", name, err)
	}
	e.values[name] = v
	return v, nil
}

// Range returns the values of a rectangular range, row by row.
func (e *Evaluator) Range(first, last string) ([]float64, error) {
	a, err := ParseCellRef(first)
	if err != nil {
		return nil, err
	}
	b, err := ParseCellRef(last)
	if err != nil {
		return nil, err
	}
	var out []float64
	for row := min(a.Row, b.Row); row <= max(a.Row, b.Row); row++ {
		for col := min(a.Col, b.Col); col <= max(a.Col, b.Col); col++ {
			v, err := e.Value(NewCellRef("", row, col).CellName())
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// Column returns every row's value in column col (0-based), indexed by
// row number minus one.
func (e *Evaluator) Column(col int) ([]float64, error) {
	out := make([]float64, e.rows)
	for i := range out {
		v, err := e.Value(RowRef(i + 1).Cell(col))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
