// Package names classifies instruction mnemonics extracted from a
// specification document.
//
// A mnemonic is either simple ("bipush") or names a family of opcodes that
// differ by a small index ("aload_<n>" covers aload_0 ... aload_3). Family
// names follow the grammar
//
//	name := base [ '<' var '>' ]
//
// where the placeholder, if present, closes the name.
package names

import (
	"errors"
	"strings"
	"unicode"

	"github.com/Manu343726/opscrape/pkg/utils"
)

const (
	OpenMarker  = '<'
	CloseMarker = '>'
)

// Separators that may join the base of a family name and its placeholder.
// One of them is dropped from the base ("aload_<n>" -> "aload").
const separators = "_-"

// Kind of instruction name
type Kind uint

const (
	// One fixed mnemonic, one fixed opcode
	Kind_Simple Kind = iota
	// Parametric mnemonic covering a range of opcodes
	Kind_Family
)

func (k Kind) String() string {
	switch k {
	case Kind_Simple:
		return "simple"
	case Kind_Family:
		return "family"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var ErrMalformedName = errors.New("malformed instruction name")

// A classified instruction name
type Name struct {
	// Name exactly as found in the document
	Raw string `json:"raw" yaml:"raw"`
	// Simple or family
	Kind Kind `json:"kind" yaml:"kind"`
	// For families, the name before the placeholder without its separator.
	// For simple names, the raw name.
	Base string `json:"base" yaml:"base"`
	// Placeholder identifier of a family ("n" in "aload_<n>"). Empty for simple names.
	Var string `json:"var,omitempty" yaml:"var,omitempty"`
}

// Returns the identifier used for the name in generated code.
// Families concatenate their base and the upper-cased placeholder
// ("aload_<n>" -> "aloadN").
func (n Name) Canonical() string {
	if n.Kind == Kind_Family {
		return n.Base + strings.ToUpper(n.Var)
	}

	return n.Raw
}

func (n Name) IsFamily() bool {
	return n.Kind == Kind_Family
}

func (n Name) String() string {
	return n.Raw
}

// Parses a raw mnemonic into a simple or family name
func Parse(raw string) (Name, error) {
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': names cannot contain whitespace", raw)
	}

	open := strings.IndexRune(raw, OpenMarker)
	closing := strings.IndexRune(raw, CloseMarker)

	switch {
	case open < 0 && closing < 0:
		if raw == "" {
			return Name{}, utils.MakeError(ErrMalformedName, "empty name")
		}

		return Name{Raw: raw, Kind: Kind_Simple, Base: raw}, nil
	case open < 0:
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': '%c' without a preceding '%c'", raw, CloseMarker, OpenMarker)
	case closing < 0:
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': '%c' is never closed", raw, OpenMarker)
	case closing < open:
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': '%c' before '%c'", raw, CloseMarker, OpenMarker)
	}

	base, variable, rest := raw[:open], raw[open+1:closing], raw[closing+1:]

	if strings.ContainsRune(variable, OpenMarker) {
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': nested '%c'", raw, OpenMarker)
	}

	if rest != "" {
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': unexpected '%v' after the placeholder", raw, rest)
	}

	if !isIdentifier(variable) {
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': placeholder '%v' is not an identifier", raw, variable)
	}

	if len(base) > 0 && strings.ContainsRune(separators, rune(base[len(base)-1])) {
		base = base[:len(base)-1]
	}

	if base == "" {
		return Name{}, utils.MakeError(ErrMalformedName, "'%v': missing name before the placeholder", raw)
	}

	return Name{
		Raw:  raw,
		Kind: Kind_Family,
		Base: base,
		Var:  variable,
	}, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}
