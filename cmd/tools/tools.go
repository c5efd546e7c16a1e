package tools

import (
	"github.com/Manu343726/opscrape/pkg/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Builds the tools command. current returns the configuration loaded by
// the root command. Files are written to fs.
func NewToolsCmd(fs afero.Fs, current func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Opscrape miscellaneous tools",
	}

	cmd.AddCommand(newConfigCmd(fs, current))
	return cmd
}
