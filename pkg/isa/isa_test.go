package isa

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Manu343726/opscrape/pkg/isa/names"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, tokens ...string) *Record {
	t.Helper()
	r, err := NewRecord(tokens[0], tokens)
	require.NoError(t, err)
	return r
}

func TestNewRecord(t *testing.T) {
	r := mustRecord(t, "bipush", "byte")

	assert.Equal(t, "bipush", r.RawName())
	assert.Equal(t, "bipush", r.CanonicalName())
	assert.Equal(t, names.Kind_Simple, r.Kind())
	assert.Equal(t, 1, r.OperandCount())
	assert.Equal(t, "// bipush byte", r.OperandComment())
	assert.False(t, r.HasOpCode)
}

func TestNewRecord_OperandCount(t *testing.T) {
	for k := 0; k < 5; k++ {
		tokens := []string{"op"}
		for i := 0; i < k; i++ {
			tokens = append(tokens, fmt.Sprintf("operand%d", i))
		}

		r := mustRecord(t, tokens...)
		assert.Equal(t, k, r.OperandCount())
		assert.Equal(t, tokens, r.Tokens())
	}
}

func TestNewRecord_Errors(t *testing.T) {
	_, err := NewRecord("empty", nil)
	assert.ErrorIs(t, err, ErrEmptyFormat)

	_, err = NewRecord("broken", []string{"aload_<n"})
	assert.ErrorIs(t, err, names.ErrMalformedName)
}

func TestRecord_WithOpCode(t *testing.T) {
	r := mustRecord(t, "aload_<n>")
	withOpCode := r.WithOpCode(42)

	assert.False(t, r.HasOpCode, "original record must not change")
	assert.True(t, withOpCode.HasOpCode)
	assert.Equal(t, OpCode(42), withOpCode.OpCode)
	assert.Equal(t, "aloadN", withOpCode.CanonicalName())
	assert.Equal(t, "// aload_<n>", withOpCode.OperandComment())
}

func TestRecord_MemberOpCode(t *testing.T) {
	family := mustRecord(t, "aload_<n>").WithOpCode(42)

	op, err := family.MemberOpCode(3)
	require.NoError(t, err)
	assert.Equal(t, OpCode(45), op)

	_, err = family.WithOpCode(0xff).MemberOpCode(1)
	assert.Error(t, err)

	simple := mustRecord(t, "bipush", "byte").WithOpCode(16)
	op, err = simple.MemberOpCode(0)
	require.NoError(t, err)
	assert.Equal(t, OpCode(16), op)

	_, err = simple.MemberOpCode(1)
	assert.Error(t, err)

	_, err = mustRecord(t, "nop").MemberOpCode(0)
	assert.Error(t, err)
}

func TestRecord_String(t *testing.T) {
	assert.Equal(t, "bipush byte (simple, opcode: 16, hex: 0x10)", mustRecord(t, "bipush", "byte").WithOpCode(16).String())
	assert.Equal(t, "aload_<n> (family, no opcode)", mustRecord(t, "aload_<n>").String())
}

func makeSet(records []*Record) (*InstructionSet, error) {
	set := NewInstructionSet()

	for _, record := range records {
		if err := set.Add(record); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func TestInstructionSet(t *testing.T) {
	set := NewInstructionSet()

	require.NoError(t, set.Add(mustRecord(t, "nop").WithOpCode(0)))
	require.NoError(t, set.Add(mustRecord(t, "bipush", "byte").WithOpCode(16)))
	require.NoError(t, set.Add(mustRecord(t, "aload_<n>").WithOpCode(42)))
	require.NoError(t, set.Add(mustRecord(t, "wide")))

	assert.Equal(t, 4, set.Len())

	var order []string
	for _, r := range set.All() {
		order = append(order, r.CanonicalName())
	}
	assert.Equal(t, []string{"nop", "bipush", "aloadN", "wide"}, order)

	r, found := set.Lookup("aloadN")
	require.True(t, found)
	assert.Equal(t, "aload_<n>", r.RawName())

	r, found = set.Lookup("aload_<n>")
	require.True(t, found)
	assert.Equal(t, "aloadN", r.CanonicalName())

	_, found = set.Lookup("iload")
	assert.False(t, found)

	records := set.Records()
	records[0] = nil
	assert.NotNil(t, set.Records()[0], "Records() must return a copy")
}

func TestInstructionSet_Duplicate(t *testing.T) {
	_, err := makeSet([]*Record{
		mustRecord(t, "nop").WithOpCode(0),
		mustRecord(t, "nop").WithOpCode(0),
	})

	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestInstructionSet_DuplicateCanonicalName(t *testing.T) {
	_, err := makeSet([]*Record{
		mustRecord(t, "aload_<n>"),
		mustRecord(t, "aloadN"),
	})

	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestInstructionSet_DuplicateDeclarationName(t *testing.T) {
	_, err := makeSet([]*Record{
		mustRecord(t, "aload").WithOpCode(25),
		mustRecord(t, "ALOAD").WithOpCode(26),
	})

	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.ErrorContains(t, err, "declared as 'ALOAD'")
}

func TestRecord_DeclarationName(t *testing.T) {
	assert.Equal(t, "BIPUSH", mustRecord(t, "bipush", "byte").DeclarationName())
	assert.Equal(t, "aloadN", mustRecord(t, "aload_<n>").DeclarationName())
}

func TestInstructionSet_Decode(t *testing.T) {
	set, err := makeSet([]*Record{
		mustRecord(t, "bipush", "byte").WithOpCode(16),
		mustRecord(t, "aload_<n>").WithOpCode(42),
		mustRecord(t, "iload_<n>").WithOpCode(26),
		mustRecord(t, "aaload").WithOpCode(50),
		mustRecord(t, "wide"),
	})
	require.NoError(t, err)

	tests := []struct {
		OpCode OpCode
		Name   string
		Index  uint8
		Found  bool
	}{
		{OpCode: 16, Name: "bipush", Found: true},
		{OpCode: 42, Name: "aloadN", Found: true},
		{OpCode: 44, Name: "aloadN", Index: 2, Found: true},
		{OpCode: 27, Name: "iloadN", Index: 1, Found: true},
		{OpCode: 50, Name: "aaload", Found: true},
		{OpCode: 17},
		{OpCode: 51},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.OpCode), func(t *testing.T) {
			r, index, found := set.Decode(test.OpCode)
			require.Equal(t, test.Found, found)
			if !found {
				return
			}

			assert.Equal(t, test.Name, r.CanonicalName())
			assert.Equal(t, test.Index, index)
		})
	}
}

func TestDiagnostic(t *testing.T) {
	d := Diagnostic{Section: "impdep1", Err: ErrNoFormat}

	assert.Equal(t, "section 'impdep1': section has no Format block", d.Error())
	assert.True(t, errors.Is(d, ErrNoFormat))
	assert.True(t, d.Skipped())
	assert.False(t, Diagnostic{Section: "x", Err: ErrNoOpCode}.Skipped())
}

func TestStats(t *testing.T) {
	var stats Stats
	stats.Block()
	stats.Block()
	stats.Section()
	stats.Record(mustRecord(t, "aload_<n>"))
	stats.Record(mustRecord(t, "nop").WithOpCode(0))
	stats.Skip()
	stats.Diagnostic()

	assert.Equal(t, Stats{Blocks: 2, Sections: 1, Records: 2, Simple: 1, Families: 1, WithoutOpCode: 1, Skipped: 1, Diagnostics: 1}, stats)
	assert.Contains(t, stats.String(), "Extracted 2 instructions (1 simple, 1 families).")

	var nilStats *Stats
	assert.NotPanics(t, func() { nilStats.Section() })
}

func TestHumaniseNumber(t *testing.T) {
	assert.Equal(t, "0", humaniseNumber(0))
	assert.Equal(t, "999", humaniseNumber(999))
	assert.Equal(t, "1,000", humaniseNumber(1000))
	assert.Equal(t, "1,234,567", humaniseNumber(1234567))
}

func TestRecord_Diagram(t *testing.T) {
	r := mustRecord(t, "sipush", "byte1", "byte2").WithOpCode(17)

	assert.Equal(t, 3, r.Size())

	diagram, err := r.Diagram(0)
	require.NoError(t, err)

	assert.Equal(t, ""+
		`0            1            2            2
+------------+------------+------------+
|   sipush   |   byte1    |   byte2    |
+------------+------------+------------+
 <- 1 byte -> <- 1 byte -> <- 1 byte -> 
`,
		diagram)
}

func TestRecord_Layout_Family(t *testing.T) {
	r := mustRecord(t, "aload_<n>")

	layout := r.Layout()
	require.Len(t, layout, 1)
	assert.Equal(t, "aload_<n>", layout[0].Name)
	assert.Equal(t, 1, r.Size())
}
