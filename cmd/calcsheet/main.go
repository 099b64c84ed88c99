// Package main provides the CLI entry point for calcsheet.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/javajack/calcsheet"
	"github.com/javajack/calcsheet/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type config struct {
	outputPath   string
	templateID   string
	templateFile string
	sheetName    string
	inputSheet   string
	logLevel     string
	logJSON      bool
	strict       bool
	describe     bool
	totals       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	cmd := &cobra.Command{
		Use:   "calcsheet [takeoff.xlsx]",
		Short: "Build a calculation sheet from a takeoff export",
		Long: `calcsheet reads a digitizer takeoff workbook (Digitizer Item, Total,
Units columns), classifies every line item and writes a calculation sheet
with quantity formulas grouped by section.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.outputPath, "output", "o", "", "Output xlsx path")
	f.StringVarP(&cfg.templateID, "template", "t", calcsheet.CapstoneTemplateID, "Template id")
	f.StringVar(&cfg.templateFile, "template-file", "", "YAML template to register (its id is used unless --template is set)")
	f.StringVar(&cfg.sheetName, "sheet", calcsheet.DefaultSheetName, "Output sheet name")
	f.StringVar(&cfg.inputSheet, "input-sheet", "", "Takeoff sheet to read (default: first sheet)")
	f.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.BoolVar(&cfg.logJSON, "log-json", false, "Log as JSON lines")
	f.BoolVar(&cfg.strict, "strict", false, "Fail on an unknown template id instead of using capstone")
	f.BoolVar(&cfg.describe, "describe", false, "Print the sheet outline")
	f.BoolVar(&cfg.totals, "totals", false, "Print per-section totals computed from the formulas")
	return cmd
}

func run(cmd *cobra.Command, cfg *config, inputPath string) error {
	log := logger.New(cfg.logLevel, cfg.logJSON).With().
		Str("run_id", uuid.NewString()).
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open takeoff: %w", err)
	}
	defer in.Close()

	raw, err := calcsheet.ReadRawData(in, calcsheet.WithInputSheet(cfg.inputSheet), calcsheet.WithLogger(log))
	if err != nil {
		return err
	}

	opts := []calcsheet.Option{
		calcsheet.WithLogger(log),
		calcsheet.WithStrictTemplate(cfg.strict),
	}
	templateID := cfg.templateID
	if cfg.templateFile != "" {
		tmpl, err := loadTemplateFile(cfg.templateFile)
		if err != nil {
			return err
		}
		opts = append(opts, calcsheet.WithTemplates(tmpl))
		if !cmd.Flags().Changed("template") {
			templateID = tmpl.ID
		}
	}

	res, err := calcsheet.NewGenerator(opts...).Generate(templateID, raw)
	if err != nil {
		return err
	}
	for _, issue := range calcsheet.ValidateFormulas(res) {
		log.Warn().Str("cell", issue.Location).Msg(issue.Message)
	}
	log.Info().
		Str("input", inputPath).
		Int("rows", len(res.Rows)).
		Int("formulas", len(res.Formulas)).
		Msg("calculation sheet generated")

	out := cmd.OutOrStdout()
	if cfg.outputPath != "" {
		if err := writeOutput(res, cfg, log); err != nil {
			return err
		}
	}
	if cfg.describe {
		fmt.Fprint(out, calcsheet.Describe(res))
	}
	if cfg.totals {
		if err := printTotals(out, res); err != nil {
			return err
		}
	}
	return nil
}

func loadTemplateFile(path string) (*calcsheet.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template file: %w", err)
	}
	defer f.Close()
	tmpl, err := calcsheet.LoadTemplate(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tmpl, nil
}

func writeOutput(res *calcsheet.Result, cfg *config, log zerolog.Logger) error {
	f, err := os.Create(cfg.outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := calcsheet.WriteXLSX(res, f, calcsheet.WithSheetName(cfg.sheetName), calcsheet.WithLogger(log)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	log.Info().Str("output", cfg.outputPath).Msg("workbook saved")
	return nil
}

type sectionTotals struct {
	ft, sqft, lbs, cy float64
}

// printTotals evaluates every sum row and prints the totals per section.
func printTotals(w io.Writer, res *calcsheet.Result) error {
	ev := calcsheet.NewEvaluator(res)
	totals := make(map[string]*sectionTotals)
	var order []string
	for _, f := range res.Formulas {
		if f.Kind != calcsheet.KindSum {
			continue
		}
		t, ok := totals[f.Section]
		if !ok {
			t = &sectionTotals{}
			totals[f.Section] = t
			order = append(order, f.Section)
		}
		for col, dst := range map[int]*float64{
			calcsheet.ColFT:   &t.ft,
			calcsheet.ColSqFt: &t.sqft,
			calcsheet.ColLbs:  &t.lbs,
			calcsheet.ColCY:   &t.cy,
		} {
			v, err := ev.Value(f.Row.Cell(col))
			if err != nil {
				return err
			}
			*dst += v
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Section\tFT\tSQ FT\tLBS\tCY\t")
	for _, sec := range order {
		t := totals[sec]
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t\n", sec, t.ft, t.sqft, t.lbs, t.cy)
	}
	return tw.Flush()
}
