package metrics

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrDivisionUndefined reports a ratio metric whose denominator summed to
// zero after filtering. The undefined state is surfaced to the caller instead
// of being coerced to zero.
var ErrDivisionUndefined = eris.New("metrics: division undefined (zero denominator)")

// ErrEmptyInput reports a descriptive-statistics call over zero records.
var ErrEmptyInput = eris.New("metrics: empty input")

// InvalidRecordError reports a record that violates a dataset invariant
// (missing required field, negative numeric, clicks exceeding impressions).
type InvalidRecordError struct {
	Index  int // position in the input sequence
	ID     string
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record %q (row %d): %s %s", e.ID, e.Index, e.Field, e.Reason)
}

// DuplicateIDError reports an id shared by more than one record.
type DuplicateIDError struct {
	ID    string
	Count int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %q across %d records", e.ID, e.Count)
}
