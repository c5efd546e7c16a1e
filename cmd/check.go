package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"rsc.io/diff"
)

var ErrOutOfDate = errors.New("generated code is out of date")

var (
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
)

// Colors the lines of a diff.Format() diff
func colorDiff(d string) string {
	lines := strings.SplitAfter(d, "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "-"):
			lines[i] = removedColor.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedColor.Sprint(line)
		}
	}

	return strings.Join(lines, "")
}

func (a *app) checkCmd() *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "check --against FILE [source]",
		Short: "Check that a generated file is up to date",
		Long: `Regenerates the code from the document and compares it with an existing file.
If they differ the differences are printed, lines only found in the file
prefixed with '-' and lines only found in the new code prefixed with '+',
and the command fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := afero.ReadFile(a.fs, against)
			if err != nil {
				return fmt.Errorf("reading %v: %w", against, err)
			}

			result, _, err := a.run(cmd.Context(), args)
			if err != nil {
				return err
			}

			if output := result.Output(); output != string(current) {
				fmt.Fprint(cmd.OutOrStdout(), colorDiff(diff.Format(string(current), output)))
				return utils.MakeError(ErrOutOfDate, "%v", against)
			}

			a.logger.Info("generated code is up to date", "path", against)
			return nil
		},
	}

	cmd.Flags().StringVar(&against, "against", "", "Previously generated file")
	cobra.CheckErr(cmd.MarkFlagRequired("against"))
	return cmd
}
