package tools

import (
	"fmt"

	"github.com/Manu343726/opscrape/pkg/config"
	"github.com/Manu343726/opscrape/pkg/fetch"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newConfigCmd(fs afero.Fs, current func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Dumps the configuration resulting from the config file, the OPSCRAPE_*
environment variables and the command line flags, in the config file format.
By default the configuration is dumped to stdout, but it can be redirected to a file using the --output flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := current().YAML()
			if err != nil {
				return err
			}

			outputFile, _ := cmd.Flags().GetString("output")
			if outputFile != "" {
				return fetch.WriteAtomic(fs, outputFile, text)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file. If not specified, the configuration is dumped to stdout.")
	return cmd
}
