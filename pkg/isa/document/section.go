package document

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// An instruction definition section
type Section interface {
	// Name of the section, usually the instruction mnemonic
	Title() string
	// Block listing the opcode of each form of the instruction
	Forms() (Block, bool)
	// Block listing the mnemonic followed by its operands
	Format() (Block, bool)
}

// A named sub-block of a section
type Block interface {
	// Text content of the block, one line per visual line, heading excluded
	Text() string
	// Non-empty lines of the block with their whitespace normalized
	Tokens() []string
}

type htmlSection struct {
	node    *html.Node
	markers Markers
}

func (s *htmlSection) Title() string {
	if title, ok := attr(s.node, s.markers.TitleAttr); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}

	for n := range descendants(s.node) {
		if isHeading(n) {
			return normalizeSpace(textContent(n))
		}
	}

	return ""
}

func (s *htmlSection) Forms() (Block, bool) {
	return s.block(s.markers.FormsTitle)
}

func (s *htmlSection) Format() (Block, bool) {
	return s.block(s.markers.FormatTitle)
}

func (s *htmlSection) block(title string) (Block, bool) {
	for n := range descendants(s.node) {
		if n.Type != html.ElementNode {
			continue
		}

		if value, ok := attr(n, s.markers.TitleAttr); ok && strings.TrimSpace(value) == title {
			return &htmlBlock{node: n, markers: s.markers}, true
		}
	}

	return nil, false
}

type htmlBlock struct {
	node    *html.Node
	markers Markers
}

func (b *htmlBlock) Text() string {
	return strings.Join(b.lines(), "\n")
}

func (b *htmlBlock) Tokens() []string {
	var tokens []string

	for _, line := range b.lines() {
		if token := normalizeSpace(line); token != "" {
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// Splits the block text into lines at <br>, block elements, newlines and
// whitespace-only text between elements
func (b *htmlBlock) lines() []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) == "" {
				flush()
				return
			}

			for i, part := range strings.Split(n.Data, "\n") {
				if i > 0 {
					flush()
				}
				current.WriteString(part)
			}
			return
		case html.ElementNode:
			if hasClass(n, b.markers.HeadingClass) {
				return
			}

			if n.DataAtom == atom.Br {
				flush()
				return
			}
		}

		breaks := isBlockElement(n)
		if breaks {
			flush()
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if breaks {
			flush()
		}
	}

	for c := b.node.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	flush()

	return lines
}

func isBlockElement(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	switch n.DataAtom {
	case atom.Div, atom.P, atom.Pre, atom.Li, atom.Tr, atom.Table, atom.Ul, atom.Ol, atom.Dl, atom.Dt, atom.Dd,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var b strings.Builder
	for c := range descendants(n) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}

	return b.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
