// Package isa contains the instruction set model recovered from a
// specification document: one Record per instruction section, kept in
// document order inside an InstructionSet.
package isa

import (
	"fmt"
	"strings"

	"github.com/Manu343726/opscrape/pkg/isa/names"
	"github.com/Manu343726/opscrape/pkg/utils"
)

// One byte wide instruction opcode
type OpCode uint8

// Prefix of the comment documenting the operand tokens of an instruction
const CommentPrefix = "// "

// An instruction extracted from one section of the document.
// Records are immutable once built.
type Record struct {
	// Title of the section the record was extracted from
	Section string `json:"section" yaml:"section"`
	// Classified mnemonic, first token of the "Format" block
	Name names.Name `json:"name" yaml:"name"`
	// Opcode recovered from the "Forms" block. For families this is the
	// opcode of the first member. Only meaningful if HasOpCode is set.
	OpCode    OpCode `json:"opcode" yaml:"opcode"`
	HasOpCode bool   `json:"has_opcode" yaml:"has_opcode"`
	// Operand tokens following the mnemonic in the "Format" block
	Operands []string `json:"operands" yaml:"operands"`
}

// Builds a record from the tokens of a "Format" block. The first token is
// the mnemonic, the rest are operands.
func NewRecord(section string, tokens []string) (*Record, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyFormat
	}

	name, err := names.Parse(tokens[0])
	if err != nil {
		return nil, err
	}

	return &Record{
		Section:  section,
		Name:     name,
		Operands: append([]string(nil), tokens[1:]...),
	}, nil
}

// Returns a copy of the record with the given opcode
func (r *Record) WithOpCode(op OpCode) *Record {
	record := *r
	record.OpCode = op
	record.HasOpCode = true
	return &record
}

func (r *Record) RawName() string {
	return r.Name.Raw
}

func (r *Record) CanonicalName() string {
	return r.Name.Canonical()
}

func (r *Record) Kind() names.Kind {
	return r.Name.Kind
}

// Identifier of the declaration emitted for the record: the upper-cased
// name of a simple instruction constant, or the canonical name of a
// family accessor
func (r *Record) DeclarationName() string {
	if r.Name.IsFamily() {
		return r.CanonicalName()
	}

	return strings.ToUpper(r.RawName())
}

// Number of operand bytes of the instruction
func (r *Record) OperandCount() int {
	return len(r.Operands)
}

// Returns the full "Format" token sequence, mnemonic first
func (r *Record) Tokens() []string {
	return append([]string{r.Name.Raw}, r.Operands...)
}

// Returns the original token sequence as a line comment
func (r *Record) OperandComment() string {
	return CommentPrefix + strings.Join(r.Tokens(), " ")
}

// Returns the opcode of the index-th member of the instruction.
// Simple instructions only accept index 0.
func (r *Record) MemberOpCode(index uint8) (OpCode, error) {
	if !r.HasOpCode {
		return 0, fmt.Errorf("%v has no known opcode", r.RawName())
	}

	if r.Name.Kind == names.Kind_Simple && index != 0 {
		return 0, fmt.Errorf("%v is not an instruction family", r.RawName())
	}

	if int(r.OpCode)+int(index) > 0xff {
		return 0, fmt.Errorf("%v member %v overflows the opcode byte", r.RawName(), index)
	}

	return r.OpCode + OpCode(index), nil
}

func (r *Record) String() string {
	if !r.HasOpCode {
		return fmt.Sprintf("%v (%v, no opcode)", strings.Join(r.Tokens(), " "), r.Kind())
	}

	return fmt.Sprintf("%v (%v, opcode: %v, hex: %v)", strings.Join(r.Tokens(), " "), r.Kind(), r.OpCode, utils.FormatUintHex(uint64(r.OpCode), 2))
}
