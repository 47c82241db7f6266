package metrics

import (
	"encoding/json"
	"strconv"
)

// Ratio is a derived percentage or cost metric that may be undefined when its
// denominator summed to zero. Undefined is a first-class state: Value returns
// ErrDivisionUndefined rather than a silent zero, so the caller decides the
// display policy.
type Ratio struct {
	val     float64
	defined bool
}

// DefinedRatio returns a Ratio holding v.
func DefinedRatio(v float64) Ratio {
	return Ratio{val: v, defined: true}
}

// UndefinedRatio returns the zero-denominator sentinel.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// Defined reports whether the ratio has a value.
func (r Ratio) Defined() bool {
	return r.defined
}

// Value returns the ratio, or ErrDivisionUndefined when the denominator
// summed to zero.
func (r Ratio) Value() (float64, error) {
	if !r.defined {
		return 0, ErrDivisionUndefined
	}
	return r.val, nil
}

// String renders the ratio for display. Undefined ratios render as "N/A".
func (r Ratio) String() string {
	if !r.defined {
		return "N/A"
	}
	return strconv.FormatFloat(r.val, 'f', 2, 64)
}

// MarshalJSON encodes undefined ratios as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.val)
}
