package isa

import (
	"iter"
	"slices"

	"github.com/Manu343726/opscrape/pkg/utils"
)

// Ordered collection of the instructions extracted from a document.
// Canonical names and declaration names are unique.
type InstructionSet struct {
	records    []*Record
	byName     map[string]*Record
	byDeclName map[string]*Record
}

func NewInstructionSet() *InstructionSet {
	return &InstructionSet{
		byName:     make(map[string]*Record),
		byDeclName: make(map[string]*Record),
	}
}

// Appends a record. Returns ErrDuplicateName if another record already
// uses the same canonical name, or the same declaration name.
func (s *InstructionSet) Add(record *Record) error {
	name := record.CanonicalName()
	if other, exists := s.byName[name]; exists {
		return utils.MakeError(ErrDuplicateName, "'%v' defined by section '%v' and section '%v'", name, other.Section, record.Section)
	}

	declName := record.DeclarationName()
	if other, exists := s.byDeclName[declName]; exists {
		return utils.MakeError(ErrDuplicateName, "'%v' and '%v' are both declared as '%v' (sections '%v' and '%v')",
			other.RawName(), record.RawName(), declName, other.Section, record.Section)
	}

	s.byName[name] = record
	s.byDeclName[declName] = record
	s.records = append(s.records, record)
	return nil
}

// Number of instructions in the set
func (s *InstructionSet) Len() int {
	return len(s.records)
}

// Returns the records in document order
func (s *InstructionSet) Records() []*Record {
	return slices.Clone(s.records)
}

// Iterates the records in document order
func (s *InstructionSet) All() iter.Seq2[int, *Record] {
	return slices.All(s.records)
}

// Returns the record with the given canonical or raw name
func (s *InstructionSet) Lookup(name string) (*Record, bool) {
	if record, found := s.byName[name]; found {
		return record, true
	}

	for _, record := range s.records {
		if record.RawName() == name {
			return record, true
		}
	}

	return nil, false
}

// Returns the record whose opcode, or family opcode range, contains op.
// A family is assumed to span up to the next known opcode.
func (s *InstructionSet) Decode(op OpCode) (*Record, uint8, bool) {
	withOpCode := utils.Filter(s.records, func(r *Record) bool { return r.HasOpCode })
	slices.SortStableFunc(withOpCode, func(a, b *Record) int { return int(a.OpCode) - int(b.OpCode) })

	for i, record := range withOpCode {
		if record.OpCode == op {
			return record, 0, true
		}

		if !record.Name.IsFamily() || record.OpCode > op {
			continue
		}

		if i+1 == len(withOpCode) || withOpCode[i+1].OpCode > op {
			return record, uint8(op - record.OpCode), true
		}
	}

	return nil, 0, false
}
