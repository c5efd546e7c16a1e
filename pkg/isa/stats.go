package isa

import (
	"bytes"
	"fmt"
	"strconv"
)

var ignoredStats Stats

// Counters of an extraction run. All methods accept a nil receiver.
type Stats struct {
	Blocks        int `json:"blocks" yaml:"blocks"`
	Sections      int `json:"sections" yaml:"sections"`
	Records       int `json:"records" yaml:"records"`
	Simple        int `json:"simple" yaml:"simple"`
	Families      int `json:"families" yaml:"families"`
	WithoutOpCode int `json:"without_opcode" yaml:"without_opcode"`
	Skipped       int `json:"skipped" yaml:"skipped"`
	Diagnostics   int `json:"diagnostics" yaml:"diagnostics"`
}

func (s *Stats) notnil() *Stats {
	if s != nil {
		return s
	}

	return &ignoredStats
}

func (s *Stats) Block()      { s.notnil().Blocks++ }
func (s *Stats) Section()    { s.notnil().Sections++ }
func (s *Stats) Skip()       { s.notnil().Skipped++ }
func (s *Stats) Diagnostic() { s.notnil().Diagnostics++ }

func (s *Stats) Record(r *Record) {
	s = s.notnil()
	s.Records++
	if r.Name.IsFamily() {
		s.Families++
	} else {
		s.Simple++
	}

	if !r.HasOpCode {
		s.WithoutOpCode++
	}
}

func (s *Stats) String() string {
	s = s.notnil()
	var b bytes.Buffer
	fmt.Fprintf(&b, "Scanned %s blocks.\n", humaniseNumber(s.Blocks))
	fmt.Fprintf(&b, "Found %s instruction sections.\n", humaniseNumber(s.Sections))
	fmt.Fprintf(&b, "Extracted %s instructions (%s simple, %s families).\n", humaniseNumber(s.Records), humaniseNumber(s.Simple), humaniseNumber(s.Families))
	fmt.Fprintf(&b, "Found %s instructions without opcode.\n", humaniseNumber(s.WithoutOpCode))
	fmt.Fprintf(&b, "Skipped %s sections.\n", humaniseNumber(s.Skipped))
	fmt.Fprintf(&b, "Reported %s diagnostics.\n", humaniseNumber(s.Diagnostics))
	return b.String()
}

func humaniseNumber(v int) string {
	prefix, suffix := strconv.Itoa(v), ""
	for len(prefix) > 3 {
		suffix = "," + prefix[len(prefix)-3:] + suffix
		prefix = prefix[:len(prefix)-3]
	}

	return prefix + suffix
}
