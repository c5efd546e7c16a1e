package utils

import (
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

var escapes = regexp.MustCompile("\x1b\\[[0-9;]*m")

func withColor(t *testing.T, enabled bool) {
	previous := color.NoColor
	color.NoColor = !enabled
	t.Cleanup(func() { color.NoColor = previous })
}

func TestHighlightCode_PreservesText(t *testing.T) {
	withColor(t, true)

	code := "const BIPUSH: u8 = 16;\nfn aloadN(index: u8) -> u8 {\n    return 42 + index;\n}\npub enum Opcode {\n    bipush(u8), // bipush byte\n}\n"

	highlighted := HighlightCode(code, Syntax_Rust)
	assert.NotEqual(t, code, highlighted)
	assert.Equal(t, code, escapes.ReplaceAllString(highlighted, ""))
}

func TestHighlightCode_Comments(t *testing.T) {
	withColor(t, true)

	highlighted := HighlightCode("    nop, // nop 0x00 const", Syntax_Rust)
	assert.Contains(t, highlighted, commentColor.Sprint("// nop 0x00 const"))
	assert.NotContains(t, highlighted, keywordColor.Sprint("const"))
}

func TestHighlightCode_Keywords(t *testing.T) {
	withColor(t, true)

	highlighted := HighlightCode("const BIPUSH uint8 = 16", Syntax_Go)
	assert.Contains(t, highlighted, keywordColor.Sprint("const"))
	assert.Contains(t, highlighted, typeColor.Sprint("uint8"))
	assert.Contains(t, highlighted, numberColor.Sprint("16"))
}

func TestHighlightCode_NoColor(t *testing.T) {
	withColor(t, false)

	code := "const NOP: u8 = 0;\n"
	assert.Equal(t, code, HighlightCode(code, Syntax_Rust))
	assert.Equal(t, "", HighlightCode("", Syntax_Rust))
}
