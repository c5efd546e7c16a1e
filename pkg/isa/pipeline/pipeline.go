// Package pipeline runs the whole extraction: markup in, generated source
// out. A run is synchronous and holds no state between calls.
package pipeline

import (
	"log/slog"

	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/isa/document"
	"github.com/Manu343726/opscrape/pkg/isa/emit"
	"github.com/Manu343726/opscrape/pkg/isa/extract"
)

type Options struct {
	Markers document.Markers
	Emit    emit.Options
	Logger  *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Markers: document.DefaultMarkers(),
		Emit: emit.Options{
			Target:   emit.Target_Rust,
			EnumName: emit.DefaultEnumName,
		},
	}
}

type Pipeline struct {
	markers   document.Markers
	extractor *extract.Extractor
	generator *emit.Generator
	logger    *slog.Logger
}

// Result of an extraction
type Extraction struct {
	Set         *isa.InstructionSet
	Diagnostics []isa.Diagnostic
	Stats       isa.Stats
}

// Result of a full run
type Result struct {
	Extraction
	Declarations string
	Enumeration  string
}

// Declarations followed by the enumeration
func (r *Result) Output() string {
	if r.Declarations == "" {
		return r.Enumeration
	}

	return r.Declarations + "\n" + r.Enumeration
}

func New(options Options) (*Pipeline, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	generator, err := emit.NewGenerator(options.Emit)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		markers:   options.Markers,
		extractor: extract.NewExtractor(logger),
		generator: generator,
		logger:    logger,
	}, nil
}

func (p *Pipeline) Generator() *emit.Generator {
	return p.generator
}

// Parses a document and extracts its instruction set. Returns an error,
// and nothing else, if the document shape is not recognized or two
// instructions share a name.
func (p *Pipeline) Extract(text string) (*Extraction, error) {
	doc, err := document.Parse(text, p.markers)
	if err != nil {
		return nil, err
	}

	result := &Extraction{
		Set: isa.NewInstructionSet(),
	}
	result.Stats.Blocks = doc.Blocks()

	for section := range doc.Sections() {
		result.Stats.Section()

		record, diagnostics := p.extractor.Extract(section)

		for _, d := range diagnostics {
			result.Stats.Diagnostic()
			result.Diagnostics = append(result.Diagnostics, d)

			if extract.IsMalformedName(d) {
				p.logger.Error("excluding section", "section", d.Section, "error", d.Err)
			} else if d.Skipped() {
				p.logger.Warn("skipping section", "section", d.Section, "error", d.Err)
			} else {
				p.logger.Warn("instruction has no opcode", "section", d.Section, "error", d.Err)
			}
		}

		if record == nil {
			result.Stats.Skip()
			continue
		}

		if err := result.Set.Add(record); err != nil {
			return nil, err
		}

		result.Stats.Record(record)
	}

	p.logger.Info("extraction finished",
		"blocks", result.Stats.Blocks,
		"sections", result.Stats.Sections,
		"records", result.Stats.Records,
		"skipped", result.Stats.Skipped,
		"diagnostics", result.Stats.Diagnostics)

	return result, nil
}

// Runs the extraction and emits the declarations and the enumeration
func (p *Pipeline) Run(text string) (*Result, error) {
	extraction, err := p.Extract(text)
	if err != nil {
		return nil, err
	}

	records := extraction.Set.Records()

	declarations, err := p.generator.Declarations(records)
	if err != nil {
		return nil, err
	}

	enumeration, err := p.generator.Enumeration(records)
	if err != nil {
		return nil, err
	}

	return &Result{
		Extraction:   *extraction,
		Declarations: declarations,
		Enumeration:  enumeration,
	}, nil
}
