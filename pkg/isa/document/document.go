// Package document reads the markup of a specification document and exposes
// its instruction sections through a small typed view, so that the rest of
// the pipeline never inspects raw markup nodes.
package document

import (
	"io"
	"iter"
	"strings"

	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/utils"
	"golang.org/x/net/html"
)

// A parsed specification document
type Document struct {
	root    *html.Node
	markers Markers
	blocks  int
}

// Parses a document from its markup text
func Parse(text string, markers Markers) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.MakeError(isa.ErrUnrecognizedDocument, "empty document")
	}

	return ParseReader(strings.NewReader(text), markers)
}

// Same as Parse() but reading the markup from r
func ParseReader(r io.Reader, markers Markers) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, utils.MakeError(isa.ErrUnrecognizedDocument, "%v", err)
	}

	d := &Document{
		root:    root,
		markers: markers,
	}

	for n := range descendants(root) {
		if isElement(n, markers.BlockTag) {
			d.blocks++
		}
	}

	if d.blocks == 0 {
		return nil, utils.MakeError(isa.ErrUnrecognizedDocument, "no <%v> blocks found", markers.BlockTag)
	}

	return d, nil
}

// Number of structural blocks in the document
func (d *Document) Blocks() int {
	return d.blocks
}

// Returns the instruction sections of the document in document order.
// The sequence walks the tree on every iteration, so it can be ranged over
// more than once.
func (d *Document) Sections() iter.Seq[Section] {
	return func(yield func(Section) bool) {
		var walk func(n *html.Node) bool
		walk = func(n *html.Node) bool {
			if isElement(n, d.markers.BlockTag) && hasClass(n, d.markers.SectionClass) {
				// Sections do not nest
				return yield(&htmlSection{node: n, markers: d.markers})
			}

			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !walk(c) {
					return false
				}
			}

			return true
		}

		walk(d.root)
	}
}

// Iterates all nodes below n in document order, n excluded
func descendants(n *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(n *html.Node) bool
		walk = func(n *html.Node) bool {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !yield(c) || !walk(c) {
					return false
				}
			}

			return true
		}

		walk(n)
	}
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode || class == "" {
		return false
	}

	classes, _ := attr(n, "class")

	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}

	return false
}
