package cmd

import (
	"github.com/Manu343726/opscrape/pkg/browser"
	"github.com/spf13/cobra"
)

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [source]",
		Short: "Browse the extracted instruction set interactively",
		Long: `Opens a terminal browser listing the instructions extracted from the document.
Moving through the list shows the details of the selected instruction.
Press 'q' or escape to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.document(cmd.Context(), args)
			if err != nil {
				return err
			}

			p, err := a.pipeline()
			if err != nil {
				return err
			}

			extraction, err := p.Extract(text)
			if err != nil {
				return err
			}

			return browser.New(extraction, p.Generator()).Run()
		},
	}
}
