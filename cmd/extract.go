package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/isa/pipeline"
	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Serializable view of an extraction
type extractionDump struct {
	Records     []*isa.Record `json:"records" yaml:"records"`
	Diagnostics []string      `json:"diagnostics" yaml:"diagnostics"`
	Stats       isa.Stats     `json:"stats" yaml:"stats"`
}

var dumpFormats = map[string]func(w io.Writer, dump *extractionDump) error{
	"yaml": func(w io.Writer, dump *extractionDump) error {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(dump); err != nil {
			return err
		}
		return encoder.Close()
	},
	"json": func(w io.Writer, dump *extractionDump) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(dump)
	},
	"spew": func(w io.Writer, dump *extractionDump) error {
		config := spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true, SortKeys: true}
		config.Fdump(w, dump)
		return nil
	},
}

func newExtractionDump(extraction *pipeline.Extraction) *extractionDump {
	return &extractionDump{
		Records:     extraction.Set.Records(),
		Diagnostics: utils.Map(extraction.Diagnostics, func(d isa.Diagnostic) string { return d.Error() }),
		Stats:       extraction.Stats,
	}
}

func (a *app) extractCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract [source]",
		Short: "Dump the instruction set extracted from the document",
		Long: `Dumps the instruction records extracted from the document, the diagnostics
reported while extracting them and the extraction statistics.

Supported formats: ` + utils.FormatSlice(utils.SortedKeys(dumpFormats), ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, found := dumpFormats[format]
			if !found {
				return fmt.Errorf("unsupported format '%v', expected one of: %v", format, utils.FormatSlice(utils.SortedKeys(dumpFormats), ", "))
			}

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

			return dump(cmd.OutOrStdout(), newExtractionDump(extraction))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format")
	return cmd
}
