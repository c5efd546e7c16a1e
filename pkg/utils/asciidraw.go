package utils

import (
	"errors"
	"fmt"
	"strings"
)

var ErrAsciiFrame = errors.New("cannot draw frame")

// A contiguous run of units within a frame
type AsciiFrameField struct {
	Name string

	// Units within the frame the field begins from
	Begin int

	Width int
}

// The last unit within the frame used by this field
func (f *AsciiFrameField) TopUnit() int {
	return f.PastTopUnit() - 1
}

// The first unit within the frame used by the next field
func (f *AsciiFrameField) PastTopUnit() int {
	return f.Begin + f.Width
}

type AsciiFrameUnitLayout uint

const (
	// Units increase left to right
	AsciiFrameUnitLayout_LeftToRight AsciiFrameUnitLayout = iota
	// Units increase right to left
	AsciiFrameUnitLayout_RightToLeft
)

const (
	arrowLeft  = "<-"
	arrowRight = "->"
)

type asciiFrame struct {
	fields  []AsciiFrameField
	width   int
	unit    string
	leftpad int
	layout  AsciiFrameUnitLayout
}

// Column of the diagram describing one field
type asciiFrameColumn struct {
	index  string
	name   string
	width  string
	length int
}

func (f *asciiFrame) columns() []asciiFrameColumn {
	columns := make([]asciiFrameColumn, len(f.fields))

	for i := range columns {
		field := f.fields[i]
		index := field.Begin

		if f.layout == AsciiFrameUnitLayout_RightToLeft {
			field = f.fields[len(f.fields)-i-1]
			index = field.TopUnit()
		}

		column := asciiFrameColumn{
			index: fmt.Sprint(index),
			name:  " " + field.Name + " ",
			width: fmt.Sprintf(" %v %v ", field.Width, f.unit),
		}

		column.length = Max([]int{len(column.index), len(column.name), len(arrowLeft) + len(column.width) + len(arrowRight)})
		columns[i] = column
	}

	return columns
}

// Writes text centered in width characters, padded with filler. Odd
// padding goes to the right.
func center(b *strings.Builder, text string, filler string, width int) error {
	if len(text) > width {
		return MakeError(ErrAsciiFrame, "text '%v' is %v chars long but target length is only %v chars", text, len(text), width)
	}

	left := (width - len(text)) / 2
	b.WriteString(strings.Repeat(filler, left))
	b.WriteString(text)
	b.WriteString(strings.Repeat(filler, width-len(text)-left))
	return nil
}

func (f *asciiFrame) Draw() (string, error) {
	var rows [5]strings.Builder
	indices, top, body, bottom, widths := &rows[0], &rows[1], &rows[2], &rows[3], &rows[4]

	for i := range rows {
		rows[i].WriteString(strings.Repeat(" ", f.leftpad))
	}

	for _, column := range f.columns() {
		border := "+" + strings.Repeat("-", column.length)

		indices.WriteString(column.index)
		indices.WriteString(strings.Repeat(" ", column.length-len(column.index)+1))
		top.WriteString(border)
		bottom.WriteString(border)

		body.WriteString("|")
		if err := center(body, column.name, " ", column.length); err != nil {
			return "", err
		}

		widths.WriteString(" " + arrowLeft)
		if err := center(widths, column.width, "-", column.length-len(arrowLeft)-len(arrowRight)); err != nil {
			return "", err
		}
		widths.WriteString(arrowRight)
	}

	if f.layout == AsciiFrameUnitLayout_LeftToRight {
		indices.WriteString(fmt.Sprint(f.width - 1))
	} else {
		indices.WriteString("0")
	}

	top.WriteString("+")
	body.WriteString("|")
	bottom.WriteString("+")
	widths.WriteString(" ")

	var result strings.Builder
	for i := range rows {
		result.WriteString(rows[i].String())
		result.WriteString("\n")
	}

	return result.String(), nil
}

// Returns the fields with "(unused)" fields filling the gaps between them
func fillAsciiFrameGaps(fields []AsciiFrameField, frameWidth int) ([]AsciiFrameField, error) {
	result := make([]AsciiFrameField, 0, len(fields))
	next := 0

	unused := func(begin, end int) {
		if end > begin {
			result = append(result, AsciiFrameField{Name: "(unused)", Begin: begin, Width: end - begin})
		}
	}

	for _, field := range fields {
		if field.Begin < next {
			return nil, MakeError(ErrAsciiFrame, "field '%v' begins at %v, overlapping the previous field which ends at %v", field.Name, field.Begin, next)
		}

		unused(next, field.Begin)
		result = append(result, field)
		next = field.PastTopUnit()
	}

	unused(next, frameWidth)
	return result, nil
}

// Prints an ascii diagram of a binary frame composed of contiguous fields of different unit lengths.
// Fields must be sorted by position and must not overlap.
func AsciiFrame(fields []AsciiFrameField, frameWidth int, unit string, layout AsciiFrameUnitLayout, leftpad int) (string, error) {
	allFields, err := fillAsciiFrameGaps(fields, frameWidth)
	if err != nil {
		return "", err
	}

	if len(allFields) == 0 {
		return "", MakeError(ErrAsciiFrame, "empty frame")
	}

	frame := asciiFrame{
		fields:  allFields,
		width:   allFields[len(allFields)-1].PastTopUnit(),
		unit:    unit,
		leftpad: leftpad,
		layout:  layout,
	}

	return frame.Draw()
}
