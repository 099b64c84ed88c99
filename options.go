package calcsheet

import "github.com/rs/zerolog"

// DefaultSheetName is the sheet the xlsx sink writes to.
const DefaultSheetName = "Calculation Sheet"

// Options holds configuration for the Generator and the xlsx adapters.
type Options struct {
	logger         zerolog.Logger
	strictTemplate bool
	templates      []*Template
	sheetName      string
	inputSheet     string
}

func defaultOptions() *Options {
	return &Options{
		logger:    zerolog.Nop(),
		sheetName: DefaultSheetName,
	}
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures the Generator and the xlsx adapters.
type Option func(*Options)

// WithLogger sets the logger used for debug tracing (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithStrictTemplate makes Generate reject unknown template ids instead of
// falling back to capstone.
func WithStrictTemplate(strict bool) Option {
	return func(o *Options) { o.strictTemplate = strict }
}

// WithTemplates registers extra templates alongside capstone.
func WithTemplates(templates ...*Template) Option {
	return func(o *Options) { o.templates = append(o.templates, templates...) }
}

// WithSheetName sets the sheet written by the xlsx sink (default: "Calculation Sheet").
func WithSheetName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.sheetName = name
		}
	}
}

// WithInputSheet selects the takeoff sheet to read (default: the first sheet).
func WithInputSheet(name string) Option {
	return func(o *Options) { o.inputSheet = name }
}
