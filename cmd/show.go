package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Manu343726/opscrape/pkg/browser"
	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/spf13/cobra"
)

var ErrUnknownInstruction = errors.New("unknown instruction")

// Finds an instruction by raw or canonical name, or by opcode in decimal
// or 0x prefixed hex. Opcodes inside the range of a family resolve to the
// family, together with the index of the member.
func findInstruction(set *isa.InstructionSet, query string) (*isa.Record, uint8, error) {
	if record, found := set.Lookup(query); found {
		return record, 0, nil
	}

	if op, err := strconv.ParseUint(query, 0, 8); err == nil {
		if record, member, found := set.Decode(isa.OpCode(op)); found {
			return record, member, nil
		}
	}

	return nil, 0, fmt.Errorf("%w '%v'", ErrUnknownInstruction, query)
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME|OPCODE [source]",
		Short: "Show one instruction",
		Long: `Shows an instruction of the document: its classification, its opcode, the
layout of its bytes and the code generated for it.

The instruction is given either by name, as written in the document
(aload_<n>) or as generated (aloadN), or by opcode (42, 0x2a).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, p, err := a.run(cmd.Context(), args[1:])
			if err != nil {
				return err
			}

			record, member, err := findInstruction(result.Set, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if member > 0 {
				op, err := record.MemberOpCode(member)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "member %v of %v, opcode %v (%v)\n\n", member, record.RawName(), op, utils.FormatUintHex(uint64(op), 2))
			}

			fmt.Fprint(out, browser.Details(record, p.Generator()))
			return nil
		},
	}
}
