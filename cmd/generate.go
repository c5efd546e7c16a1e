package cmd

import (
	"io"

	"github.com/Manu343726/opscrape/pkg/fetch"
	"github.com/spf13/cobra"
)

func (a *app) generateCmd() *cobra.Command {
	var colorize bool

	cmd := &cobra.Command{
		Use:   "generate [source]",
		Short: "Generate the opcode declarations and the instruction enumeration",
		Long: `Extracts the instruction set of the document and prints the opcode declarations
followed by the instruction enumeration.

If --output is given the code is written to that file instead. The file is
only replaced once the whole output has been generated, so a failed run
never leaves a partial file behind.

Examples:
  # JVM SE7 opcodes as Rust, from the default source
  opscrape generate

  # Go code from a local copy of the document
  opscrape generate -t go -o opcodes.go jvms-6.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, p, err := a.run(cmd.Context(), args)
			if err != nil {
				return err
			}

			output := result.Output()

			if path := a.viper.GetString("output"); path != "" {
				if err := fetch.WriteAtomic(a.fs, path, output); err != nil {
					return err
				}

				a.logger.Info("code generated", "path", path, "instructions", result.Set.Len())
				return nil
			}

			if !colorize {
				return p.Generator().EmitTo(cmd.OutOrStdout(), result.Set.Records())
			}

			_, err = io.WriteString(cmd.OutOrStdout(), p.Generator().Options().Target.Highlight(output))
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file. If omitted, the code is written to stdout")
	cmd.Flags().BoolVar(&colorize, "color", false, "Highlight the code written to stdout")
	a.bindFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}
