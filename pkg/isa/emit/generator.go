// Package emit renders an extracted instruction set as source code.
//
// The two artifacts, the opcode declarations and the instruction
// enumeration, are produced by independent functions over the same record
// sequence so that each can be generated and tested on its own.
package emit

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/utils"
)

//go:embed templates
var Templates embed.FS

// Language of the generated code
type Target string

const (
	Target_Rust Target = "rust"
	Target_Go   Target = "go"
)

const DefaultEnumName = "Opcode"

// Returns the highlighting rules of the target language
func (t Target) Syntax() (utils.Syntax, bool) {
	syntax, found := utils.Syntaxes[string(t)]
	return syntax, found
}

// Highlights code generated for the target. Code of targets without
// highlighting rules is returned unchanged.
func (t Target) Highlight(code string) string {
	if syntax, found := t.Syntax(); found {
		return utils.HighlightCode(code, syntax)
	}

	return code
}

// Returns the supported targets, sorted by name
func Targets() []Target {
	entries, err := fs.ReadDir(Templates, "templates")
	if err != nil {
		panic(fmt.Sprintf("reading embedded templates: %v", err))
	}

	targets := make([]Target, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			targets = append(targets, Target(entry.Name()))
		}
	}

	return targets
}

type Options struct {
	Target Target
	// Name of the generated instruction enumeration
	EnumName string
}

type Generator struct {
	template *template.Template
	options  Options
}

type variant struct {
	EnumName string
	*isa.Record
}

type templateData struct {
	EnumName string
	Records  []*isa.Record
	Variants []variant
}

func NewGenerator(options Options) (*Generator, error) {
	if options.Target == "" {
		options.Target = Target_Rust
	}

	if options.EnumName == "" {
		options.EnumName = DefaultEnumName
	}

	fields, err := fieldsFunc(options.Target)
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"Join": func(separator string, items []string) string {
			return strings.Join(items, separator)
		},
		"Fields": fields,
	}

	t, err := template.New(string(options.Target)).Funcs(funcs).
		ParseFS(Templates, path.Join("templates", string(options.Target), "*.tmpl"))

	if err != nil {
		return nil, err
	}

	return &Generator{
		template: t,
		options:  options,
	}, nil
}

// Returns the per-variant operand fields of a target: their types for
// positional variants, their names for struct variants
func fieldsFunc(target Target) (func(*isa.Record) []string, error) {
	switch target {
	case Target_Rust:
		return func(r *isa.Record) []string {
			return utils.Iota(r.OperandCount(), func(int) string { return "u8" })
		}, nil
	case Target_Go:
		return func(r *isa.Record) []string {
			return utils.Iota(r.OperandCount(), func(i int) string { return fmt.Sprintf("Arg%d", i) })
		}, nil
	default:
		return nil, fmt.Errorf("unsupported target '%v', expected one of: %v", target, utils.FormatSlice(Targets(), ", "))
	}
}

func (g *Generator) Options() Options {
	return g.options
}

func (g *Generator) data(records []*isa.Record) *templateData {
	return &templateData{
		EnumName: g.options.EnumName,
		Records:  records,
		Variants: utils.Map(records, func(r *isa.Record) variant {
			return variant{EnumName: g.options.EnumName, Record: r}
		}),
	}
}

func (g *Generator) execute(name string, data any) (string, error) {
	var b strings.Builder

	if err := g.template.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}

	return b.String(), nil
}

// Returns one declaration per record with a known opcode: a constant for
// simple instructions and an index accessor for families
func (g *Generator) Declarations(records []*isa.Record) (string, error) {
	return g.execute("declarations", g.data(records))
}

// Returns the declaration of a single record, if it has an opcode
func (g *Generator) Declaration(record *isa.Record) (string, bool, error) {
	if !record.HasOpCode {
		return "", false, nil
	}

	decl, err := g.execute("declaration", record)
	return decl, err == nil, err
}

// Returns the enumeration with one variant per record, in order
func (g *Generator) Enumeration(records []*isa.Record) (string, error) {
	return g.execute("enumeration", g.data(records))
}

// Returns the declarations followed by the enumeration
func (g *Generator) Emit(records []*isa.Record) (string, error) {
	declarations, err := g.Declarations(records)
	if err != nil {
		return "", fmt.Errorf("generating declarations: %w", err)
	}

	enumeration, err := g.Enumeration(records)
	if err != nil {
		return "", fmt.Errorf("generating enumeration: %w", err)
	}

	if declarations == "" {
		return enumeration, nil
	}

	return declarations + "\n" + enumeration, nil
}

func (g *Generator) EmitTo(w io.Writer, records []*isa.Record) error {
	output, err := g.Emit(records)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, output)
	return err
}
