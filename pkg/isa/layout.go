package isa

import (
	"github.com/Manu343726/opscrape/pkg/utils"
)

// Returns the byte fields of the encoded instruction: the opcode byte
// followed by one byte per operand
func (r *Record) Layout() []utils.AsciiFrameField {
	fields := make([]utils.AsciiFrameField, 0, 1+r.OperandCount())
	fields = append(fields, utils.AsciiFrameField{
		Name:  r.RawName(),
		Begin: 0,
		Width: 1,
	})

	for i, operand := range r.Operands {
		fields = append(fields, utils.AsciiFrameField{
			Name:  operand,
			Begin: i + 1,
			Width: 1,
		})
	}

	return fields
}

// Total encoded size of the instruction, in bytes
func (r *Record) Size() int {
	return utils.Accumulate(r.Layout(), func(f utils.AsciiFrameField) int { return f.Width })
}

// Draws the byte layout of the instruction
func (r *Record) Diagram(leftpad int) (string, error) {
	return utils.AsciiFrame(r.Layout(), r.Size(), "byte", utils.AsciiFrameUnitLayout_LeftToRight, leftpad)
}
