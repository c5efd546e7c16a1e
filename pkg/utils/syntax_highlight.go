package utils

import (
	"regexp"
	"slices"
	"strings"

	"github.com/fatih/color"
)

var (
	keywordColor  = color.New(color.FgMagenta, color.Bold)
	typeColor     = color.New(color.FgCyan)
	numberColor   = color.New(color.FgYellow)
	commentColor  = color.New(color.FgHiBlack)
	operatorColor = color.New(color.FgRed)
	functionColor = color.New(color.FgHiYellow)
)

// Keyword tables of a highlighted language
type Syntax struct {
	Keywords map[string]bool
	Types    map[string]bool
}

func set(words ...string) map[string]bool {
	result := make(map[string]bool, len(words))
	for _, word := range words {
		result[word] = true
	}
	return result
}

var Syntax_Rust = Syntax{
	Keywords: set("as", "const", "enum", "fn", "impl", "let", "match", "mut", "pub", "return", "self", "static", "struct", "type", "use", "where"),
	Types:    set("u8", "u16", "u32", "i8", "i16", "i32", "usize", "bool", "Self"),
}

var Syntax_Go = Syntax{
	Keywords: set("const", "func", "interface", "package", "return", "struct", "type", "var"),
	Types:    set("uint8", "uint16", "uint32", "int", "byte", "bool", "string"),
}

// Highlightable languages, by name
var Syntaxes = map[string]Syntax{
	"rust": Syntax_Rust,
	"go":   Syntax_Go,
}

var (
	lineCommentPattern  = regexp.MustCompile(`(?m)//.*$`)
	numberPattern       = regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F]+|[0-9]+)\b`)
	identifierPattern   = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	functionCallPattern = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)
	operatorPattern     = regexp.MustCompile(`->|[+\-*/%&|^!<>=:]`)
)

type token struct {
	color *color.Color
	start int
	end   int
}

type tokens []token

func (ts tokens) overlaps(start, end int) bool {
	for _, t := range ts {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// Adds the matches that don't overlap any previous token
func (ts *tokens) add(matches [][]int, c *color.Color) {
	for _, match := range matches {
		if !ts.overlaps(match[0], match[1]) {
			*ts = append(*ts, token{color: c, start: match[0], end: match[1]})
		}
	}
}

// Applies syntax highlighting to generated source code. Comments take
// priority over everything else, so operand comments are never split.
func HighlightCode(code string, syntax Syntax) string {
	if code == "" {
		return ""
	}

	var ts tokens

	ts.add(lineCommentPattern.FindAllStringIndex(code, -1), commentColor)
	ts.add(numberPattern.FindAllStringIndex(code, -1), numberColor)

	for _, match := range functionCallPattern.FindAllStringSubmatchIndex(code, -1) {
		name := code[match[2]:match[3]]
		if !syntax.Keywords[name] && !syntax.Types[name] {
			ts.add([][]int{match[2:4]}, functionColor)
		}
	}

	for _, match := range identifierPattern.FindAllStringIndex(code, -1) {
		word := code[match[0]:match[1]]
		if syntax.Keywords[word] {
			ts.add([][]int{match}, keywordColor)
		} else if syntax.Types[word] {
			ts.add([][]int{match}, typeColor)
		}
	}

	ts.add(operatorPattern.FindAllStringIndex(code, -1), operatorColor)

	return ts.render(code)
}

func (ts tokens) render(code string) string {
	if len(ts) == 0 {
		return code
	}

	slices.SortFunc(ts, func(a, b token) int { return a.start - b.start })

	var result strings.Builder
	pos := 0

	for _, t := range ts {
		result.WriteString(code[pos:t.start])
		result.WriteString(t.color.Sprint(code[t.start:t.end]))
		pos = t.end
	}

	result.WriteString(code[pos:])
	return result.String()
}
