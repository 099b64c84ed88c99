package calcsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateFormula(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"J5*H5/27", `cell("J5")*cell("H5")/27`},
		{"=SUM(I3:I7)", `SUM(rng("I3","I7"))`},
		{"SUM(L10,L20)", `SUM(cell("L10"),cell("L20"))`},
		{"IF(J6<>0,L6*27/J6,0)", `IF(cell("J6")!=0,cell("L6")*27/cell("J6"),0)`},
		{"ROUNDUP(C4/(G4*G4),0)", `ROUNDUP(cell("C4")/(cell("G4")*cell("G4")),0)`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := translateFormula(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := translateFormula(" = ")
	assert.Error(t, err)
}

func TestFormulaFunctions(t *testing.T) {
	v, err := roundUpFunc(6.25, 0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = roundUpFunc(12.0000000001, 0)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	v, err = sumFunc([]float64{1, 2}, 3.0, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	v, err = maxFunc()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = ifFunc(false, 1.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = ifFunc(true, 1.0)
	assert.Error(t, err)
	_, err = sumFunc("text")
	assert.Error(t, err)
}

// sheetWith builds a result whose rows carry the given literals and specs.
func sheetWith(rows int, specs ...FormulaSpec) *Result {
	b := NewSheetBuilder()
	for i := 0; i < rows; i++ {
		b.AppendBlank()
	}
	for _, s := range specs {
		if err := b.AppendFormula(s); err != nil {
			panic(err)
		}
	}
	return &Result{Rows: b.Rows(), Formulas: b.Formulas()}
}

func TestEvaluator_RockBoltRoundUp(t *testing.T) {
	res := sheetWith(1, dataSpec(1, ParseRockBolt(`Rock bolt @ 4'-0" O.C. (Bond length=10'-0")`)))
	res.Rows[0][ColTakeoff] = 100.0

	ev := NewEvaluator(res)
	qty, err := ev.Value("M1")
	require.NoError(t, err)
	assert.Equal(t, 7.0, qty)

	ft, err := ev.Value("I1")
	require.NoError(t, err)
	assert.Equal(t, 105.0, ft)
}

func TestEvaluator_CircularReference(t *testing.T) {
	res := sheetWith(1, FormulaSpec{
		Row:       1,
		Kind:      KindTrench,
		ItemType:  TypeTrenchDemo,
		SourceRow: 1,
	})
	_, err := NewEvaluator(res).Value("C1")
	assert.ErrorContains(t, err, ErrCircularReference.Error())
}

func TestEvaluator_BlankAndTextCells(t *testing.T) {
	res := sheetWith(2)
	res.Rows[0][ColParticulars] = "Piers"
	res.Rows[1][ColTakeoff] = 4.0

	ev := NewEvaluator(res)
	v, err := ev.Value("B1")
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = ev.Value("Z99")
	require.NoError(t, err)
	assert.Zero(t, v)

	vals, err := ev.Range("C1", "C2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 4}, vals)

	col, err := ev.Column(ColTakeoff)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 4}, col)

	_, err = ev.Value("not a ref")
	assert.Error(t, err)
}
