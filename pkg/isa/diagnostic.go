package isa

import (
	"errors"
	"fmt"

	"github.com/Manu343726/opscrape/pkg/isa/names"
)

// A non-fatal condition found while extracting one section
type Diagnostic struct {
	Section string
	Err     error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("section '%v': %v", d.Section, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Returns whether the section produced no record because of this condition
func (d Diagnostic) Skipped() bool {
	return errors.Is(d.Err, ErrNoFormat) || errors.Is(d.Err, ErrEmptyFormat) || errors.Is(d.Err, names.ErrMalformedName)
}
