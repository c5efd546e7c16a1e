// Package browser implements an interactive terminal browser of an
// extracted instruction set.
package browser

import (
	"fmt"
	"strings"

	"github.com/Manu343726/opscrape/pkg/isa"
	"github.com/Manu343726/opscrape/pkg/isa/emit"
	"github.com/Manu343726/opscrape/pkg/isa/pipeline"
	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type Browser struct {
	app        *tview.Application
	list       *tview.List
	details    *tview.TextView
	status     *tview.TextView
	records    []*isa.Record
	extraction *pipeline.Extraction
	generator  *emit.Generator
}

func New(extraction *pipeline.Extraction, generator *emit.Generator) *Browser {
	b := &Browser{
		app:        tview.NewApplication(),
		list:       tview.NewList(),
		details:    tview.NewTextView(),
		status:     tview.NewTextView(),
		records:    extraction.Set.Records(),
		extraction: extraction,
		generator:  generator,
	}

	b.list.ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetBorder(true).
		SetTitle(fmt.Sprintf(" Instructions (%v) ", len(b.records)))

	for _, record := range b.records {
		b.list.AddItem(tview.Escape(record.RawName()), "", 0, nil)
	}

	b.list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		b.Select(index)
	})

	b.details.SetWrap(false).
		SetBorder(true).
		SetTitle(" Details ")

	b.status.SetText(tview.Escape(Summary(extraction)))

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(b.list, 0, 1, true).
			AddItem(b.details, 0, 3, false), 0, 1, true).
		AddItem(b.status, 1, 0, false)

	b.app.SetRoot(layout, true).
		SetFocus(b.list).
		SetInputCapture(b.handleKey)

	if len(b.records) > 0 {
		b.Select(0)
	}

	return b
}

func (b *Browser) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
		b.app.Stop()
		return nil
	}

	return event
}

// Shows the details of the index-th record
func (b *Browser) Select(index int) {
	if index < 0 || index >= len(b.records) {
		return
	}

	b.details.SetText(tview.Escape(Details(b.records[index], b.generator))).
		ScrollToBeginning()
}

// Text currently shown in the details pane
func (b *Browser) DetailsText() string {
	return b.details.GetText(true)
}

func (b *Browser) Len() int {
	return b.list.GetItemCount()
}

// Uses the given screen instead of the terminal
func (b *Browser) SetScreen(screen tcell.Screen) {
	b.app.SetScreen(screen)
}

// Runs the browser until the user quits with 'q' or escape
func (b *Browser) Run() error {
	return b.app.Run()
}

func (b *Browser) Stop() {
	b.app.Stop()
}

// One line description of an extraction
func Summary(extraction *pipeline.Extraction) string {
	stats := &extraction.Stats
	return fmt.Sprintf("%v instructions (%v simple, %v families) | %v without opcode | %v skipped | %v diagnostics | q: quit",
		stats.Records, stats.Simple, stats.Families, stats.WithoutOpCode, stats.Skipped, len(extraction.Diagnostics))
}

// Returns the text describing a record: its classification, byte layout
// and the code generated for it
func Details(record *isa.Record, generator *emit.Generator) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%v\n\n", record)
	fmt.Fprintf(&b, "section:   %v\n", record.Section)
	fmt.Fprintf(&b, "kind:      %v\n", record.Kind())
	fmt.Fprintf(&b, "canonical: %v\n", record.CanonicalName())
	fmt.Fprintf(&b, "operands:  %v\n", record.OperandCount())

	if record.HasOpCode {
		fmt.Fprintf(&b, "opcode:    %v (%v)\n", record.OpCode, utils.FormatUintHex(uint64(record.OpCode), 2))
	} else {
		b.WriteString("opcode:    unknown\n")
	}

	if diagram, err := record.Diagram(2); err == nil {
		fmt.Fprintf(&b, "\nlayout:\n%v", diagram)
	} else {
		fmt.Fprintf(&b, "\nlayout: %v\n", err)
	}

	if generator == nil {
		return b.String()
	}

	if decl, ok, err := generator.Declaration(record); err != nil {
		fmt.Fprintf(&b, "\ndeclaration: %v\n", err)
	} else if ok {
		fmt.Fprintf(&b, "\n%v\n", decl)
	}

	if variant, err := generator.Enumeration([]*isa.Record{record}); err == nil {
		fmt.Fprintf(&b, "\n%v", variant)
	}

	return b.String()
}
