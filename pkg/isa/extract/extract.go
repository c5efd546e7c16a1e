// Package extract builds instruction records out of document sections.
package extract

import (
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/isa/document"
	"github.com/Manu343726/opscrape/pkg/isa/names"
	"github.com/Manu343726/opscrape/pkg/utils"
)

// Matches the first parenthesized value of a form, as in "bipush = 16 (0x10)"
var opCodePattern = regexp.MustCompile(`\(\s*([^()\s]*)\s*\)`)

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		logger: logger,
	}
}

// Builds the record of one section. Returns a nil record if the section does
// not describe an instruction form, along with the conditions found while
// reading it.
func (e *Extractor) Extract(section document.Section) (*isa.Record, []isa.Diagnostic) {
	title := section.Title()
	var diagnostics []isa.Diagnostic

	format, hasFormat := section.Format()
	if !hasFormat {
		return nil, append(diagnostics, isa.Diagnostic{Section: title, Err: isa.ErrNoFormat})
	}

	record, err := isa.NewRecord(title, format.Tokens())
	if err != nil {
		return nil, append(diagnostics, isa.Diagnostic{Section: title, Err: err})
	}

	if title == "" {
		record.Section = record.RawName()
	}

	op, err := e.opCode(section)
	if err != nil {
		return record, append(diagnostics, isa.Diagnostic{Section: record.Section, Err: err})
	}

	e.logger.Debug("extracted instruction", "section", record.Section, "name", record.CanonicalName(), "kind", record.Kind(), "opcode", op, "operands", record.OperandCount())
	return record.WithOpCode(op), diagnostics
}

func (e *Extractor) opCode(section document.Section) (isa.OpCode, error) {
	forms, hasForms := section.Forms()
	if !hasForms {
		return 0, isa.ErrNoOpCode
	}

	return ParseOpCode(forms.Text())
}

// Returns the opcode in the first parenthesized value of a Forms text.
// Decimal and 0x prefixed hexadecimal values are accepted. Leading zeros
// do not make a value octal.
func ParseOpCode(forms string) (isa.OpCode, error) {
	match := opCodePattern.FindStringSubmatch(forms)
	if match == nil {
		return 0, isa.ErrNoOpCode
	}

	digits, base := match[1], 10
	if hex, found := strings.CutPrefix(strings.ToLower(digits), "0x"); found {
		digits, base = hex, 16
	}

	value, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}

		return 0, utils.MakeError(isa.ErrInvalidOpCode, "'%v': %v", match[1], err)
	}

	return isa.OpCode(value), nil
}

// Returns whether a diagnostic excludes a malformed name
func IsMalformedName(d isa.Diagnostic) bool {
	return errors.Is(d.Err, names.ErrMalformedName)
}
