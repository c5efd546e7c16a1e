package document

// Markup conventions used to find instruction sections and their parts.
// The defaults match the HTML edition of the JVM specification, where each
// instruction is a
//
//	<div class="section-execution" title="aload_&lt;n&gt;">
//
// holding <div class="section" title="Format"> and title="Forms" blocks.
type Markers struct {
	// Element used for structural blocks
	BlockTag string `mapstructure:"block" yaml:"block"`
	// Class identifying an instruction section
	SectionClass string `mapstructure:"section" yaml:"section"`
	// Attribute naming a block
	TitleAttr string `mapstructure:"title" yaml:"title"`
	// Title of the block listing the opcode of each form
	FormsTitle string `mapstructure:"forms" yaml:"forms"`
	// Title of the block listing the mnemonic and its operands
	FormatTitle string `mapstructure:"format" yaml:"format"`
	// Class of heading elements ignored when reading block text
	HeadingClass string `mapstructure:"heading" yaml:"heading"`
}

func DefaultMarkers() Markers {
	return Markers{
		BlockTag:     "div",
		SectionClass: "section-execution",
		TitleAttr:    "title",
		FormsTitle:   "Forms",
		FormatTitle:  "Format",
		HeadingClass: "titlepage",
	}
}
