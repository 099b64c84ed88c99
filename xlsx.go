package calcsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoHeaderRow is returned when the takeoff sheet has no rows at all.
var ErrNoHeaderRow = errors.New("takeoff sheet has no header row")

// ExcelizeSink writes cells into one sheet of an excelize workbook.
type ExcelizeSink struct {
	file  *excelize.File
	sheet string
}

// NewExcelizeSink returns a sink writing to sheet, creating it if needed.
func NewExcelizeSink(f *excelize.File, sheet string) (*ExcelizeSink, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("look up sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}
	return &ExcelizeSink{file: f, sheet: sheet}, nil
}

// SetCellValue writes a literal value.
func (s *ExcelizeSink) SetCellValue(ref string, value any) error {
	return s.file.SetCellValue(s.sheet, ref, value)
}

// SetCellFormula writes a formula.
func (s *ExcelizeSink) SetCellFormula(ref string, formula string) error {
	return s.file.SetCellFormula(s.sheet, ref, formula)
}

// WriteXLSX renders the result into a new workbook and writes it to w.
func WriteXLSX(r *Result, w io.Writer, opts ...Option) error {
	o := buildOptions(opts)
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	if first != o.sheetName {
		if err := f.SetSheetName(first, o.sheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}
	sink, err := NewExcelizeSink(f, o.sheetName)
	if err != nil {
		return err
	}
	if err := Render(r, sink); err != nil {
		return err
	}
	// Totals are only computed once the workbook is opened.
	calc := true
	if err := f.SetCalcProps(&excelize.CalcPropsOptions{FullCalcOnLoad: &calc}); err != nil {
		return fmt.Errorf("set calc props: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	o.logger.Debug().Str("sheet", o.sheetName).Int("rows", len(r.Rows)).Msg("workbook written")
	return nil
}

// ReadRawData loads a takeoff workbook into the header-plus-rows table
// the generator consumes. Numeric cells become float64, blanks nil.
func ReadRawData(rd io.Reader, opts ...Option) ([][]any, error) {
	o := buildOptions(opts)
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("open takeoff workbook: %w", err)
	}
	defer f.Close()

	sheet := o.inputSheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoHeaderRow)
	}

	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			if i == 0 {
				cells[j] = v
				continue
			}
			cells[j] = typedCell(v)
		}
		out[i] = cells
	}
	o.logger.Debug().Str("sheet", sheet).Int("rows", len(out)-1).Msg("takeoff loaded")
	return out, nil
}

func typedCell(v string) any {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return v
}
