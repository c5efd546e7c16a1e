package extract

import (
	"testing"

	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/isa/document"
	"github.com/Manu343726/opscrape/pkg/isa/names"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlock struct {
	text   string
	tokens []string
}

func (b *fakeBlock) Text() string     { return b.text }
func (b *fakeBlock) Tokens() []string { return b.tokens }

type fakeSection struct {
	title  string
	forms  *fakeBlock
	format *fakeBlock
}

func (s *fakeSection) Title() string { return s.title }

func (s *fakeSection) Forms() (document.Block, bool) {
	if s.forms == nil {
		return nil, false
	}
	return s.forms, true
}

func (s *fakeSection) Format() (document.Block, bool) {
	if s.format == nil {
		return nil, false
	}
	return s.format, true
}

func TestExtract_Family(t *testing.T) {
	section := &fakeSection{
		title:  "aload_<n>",
		forms:  &fakeBlock{text: "aload_<n> (42)"},
		format: &fakeBlock{tokens: []string{"aload_<n>"}},
	}

	record, diagnostics := NewExtractor(nil).Extract(section)
	require.NotNil(t, record)
	assert.Empty(t, diagnostics)

	assert.Equal(t, names.Kind_Family, record.Kind())
	assert.Equal(t, "aloadN", record.CanonicalName())
	assert.Equal(t, 0, record.OperandCount())
	assert.True(t, record.HasOpCode)
	assert.Equal(t, isa.OpCode(42), record.OpCode)
	assert.Equal(t, "// aload_<n>", record.OperandComment())
}

func TestExtract_Simple(t *testing.T) {
	section := &fakeSection{
		title:  "bipush",
		forms:  &fakeBlock{text: "bipush (16)"},
		format: &fakeBlock{tokens: []string{"bipush", "byte"}},
	}

	record, diagnostics := NewExtractor(nil).Extract(section)
	require.NotNil(t, record)
	assert.Empty(t, diagnostics)

	assert.Equal(t, names.Kind_Simple, record.Kind())
	assert.Equal(t, "bipush", record.CanonicalName())
	assert.Equal(t, 1, record.OperandCount())
	assert.Equal(t, isa.OpCode(16), record.OpCode)
	assert.Equal(t, "// bipush byte", record.OperandComment())
}

func TestExtract_NoFormat(t *testing.T) {
	section := &fakeSection{
		title: "Instruction Set Summary",
		forms: &fakeBlock{text: "nop (0)"},
	}

	record, diagnostics := NewExtractor(nil).Extract(section)
	assert.Nil(t, record)
	require.Len(t, diagnostics, 1)
	assert.ErrorIs(t, diagnostics[0], isa.ErrNoFormat)
	assert.True(t, diagnostics[0].Skipped())
}

func TestExtract_EmptyFormat(t *testing.T) {
	section := &fakeSection{
		title:  "broken",
		format: &fakeBlock{},
	}

	record, diagnostics := NewExtractor(nil).Extract(section)
	assert.Nil(t, record)
	require.Len(t, diagnostics, 1)
	assert.ErrorIs(t, diagnostics[0], isa.ErrEmptyFormat)
}

func TestExtract_MalformedName(t *testing.T) {
	section := &fakeSection{
		title:  "aload_<n",
		forms:  &fakeBlock{text: "aload_0 = 42 (0x2a)"},
		format: &fakeBlock{tokens: []string{"aload_<n"}},
	}

	record, diagnostics := NewExtractor(nil).Extract(section)
	assert.Nil(t, record)
	require.Len(t, diagnostics, 1)
	assert.True(t, IsMalformedName(diagnostics[0]))
	assert.Equal(t, "aload_<n", diagnostics[0].Section)
}

func TestExtract_WithoutOpCode(t *testing.T) {
	tests := []struct {
		Name  string
		Forms *fakeBlock
		Err   error
	}{
		{Name: "no forms", Forms: nil, Err: isa.ErrNoOpCode},
		{Name: "no parenthesis", Forms: &fakeBlock{text: "wide = 196"}, Err: isa.ErrNoOpCode},
		{Name: "not a number", Forms: &fakeBlock{text: "wide (reserved)"}, Err: isa.ErrInvalidOpCode},
		{Name: "out of range", Forms: &fakeBlock{text: "wide (256)"}, Err: isa.ErrInvalidOpCode},
		{Name: "empty parenthesis", Forms: &fakeBlock{text: "wide ()"}, Err: isa.ErrInvalidOpCode},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			section := &fakeSection{
				title:  "wide",
				forms:  test.Forms,
				format: &fakeBlock{tokens: []string{"wide"}},
			}

			record, diagnostics := NewExtractor(nil).Extract(section)
			require.NotNil(t, record, "the record is produced without opcode")
			assert.False(t, record.HasOpCode)
			require.Len(t, diagnostics, 1)
			assert.ErrorIs(t, diagnostics[0], test.Err)
			assert.False(t, diagnostics[0].Skipped())
		})
	}
}

func TestExtract_UntitledSection(t *testing.T) {
	section := &fakeSection{
		forms:  &fakeBlock{text: "nop = 0 (0x0)"},
		format: &fakeBlock{tokens: []string{"nop"}},
	}

	record, _ := NewExtractor(nil).Extract(section)
	require.NotNil(t, record)
	assert.Equal(t, "nop", record.Section)
}

func TestParseOpCode(t *testing.T) {
	tests := []struct {
		Forms string
		Want  isa.OpCode
	}{
		{Forms: "bipush (16)", Want: 16},
		{Forms: "aload_0 = 42 (0x2a)\naload_1 = 43 (0x2b)", Want: 42},
		{Forms: "goto_w = 200 ( 0xc8 )", Want: 200},
		{Forms: "impdep2 = 255 (0xff)", Want: 255},
		{Forms: "nop = 0 (0x0)", Want: 0},
		{Forms: "aload_0 = 42 (0X2A)", Want: 42},
		{Forms: "aload_0 = 42 (042)", Want: 42},
		{Forms: "bipush (010)", Want: 10},
	}

	for _, test := range tests {
		t.Run(test.Forms, func(t *testing.T) {
			got, err := ParseOpCode(test.Forms)
			require.NoError(t, err)
			assert.Equal(t, test.Want, got)
		})
	}
}

func TestParseOpCode_Invalid(t *testing.T) {
	for _, forms := range []string{"x (1_6)", "x (0b11)", "x (0o17)", "x (0x)", "x (0x1_0)", "x (+5)", "x (0x100)", "x (256)"} {
		t.Run(forms, func(t *testing.T) {
			_, err := ParseOpCode(forms)
			assert.ErrorIs(t, err, isa.ErrInvalidOpCode)
		})
	}
}
