package check

import (
	"fmt"

	"github.com/reoring/logcontract/tree"
)

// Report is the outcome of one Run.
type Report struct {
	Lines      int `json:"lines" yaml:"lines"`
	WellFormed int `json:"well_formed" yaml:"well_formed"`
	Records    int `json:"records" yaml:"records"`

	RoundTripFailures []RoundTripFailure `json:"roundtrip_failures,omitempty" yaml:"roundtrip_failures,omitempty"`
	FieldViolation    *FieldViolation    `json:"field_violation,omitempty" yaml:"field_violation,omitempty"`
	Notes             []Note             `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Passed reports whether no contract failure was found. Notes do not count.
func (r *Report) Passed() bool {
	return len(r.RoundTripFailures) == 0 && r.FieldViolation == nil
}

// RoundTripFailure is a record the typed model could not reproduce.
type RoundTripFailure struct {
	LineNo   int    `json:"line_no" yaml:"line_no"`
	Line     string `json:"line" yaml:"line"`
	Path     string `json:"path" yaml:"path"`
	Fragment any    `json:"fragment" yaml:"fragment"`
}

func (f RoundTripFailure) String() string {
	return fmt.Sprintf("line %d: lost at %s: %s", f.LineNo, f.Path, tree.Text(f.Fragment))
}

// FieldViolation is the first record found breaking the field value
// contract.
type FieldViolation struct {
	LineNo  int    `json:"line_no" yaml:"line_no"`
	Line    string `json:"line" yaml:"line"`
	Field   string `json:"field" yaml:"field"`
	Code    string `json:"code" yaml:"code"`
	Value   any    `json:"value" yaml:"value"`
	Message string `json:"message" yaml:"message"`
}

func (v *FieldViolation) Error() string {
	return fmt.Sprintf("line %d: %s", v.LineNo, v.Message)
}

// Note is informational and never fails a run.
type Note struct {
	LineNo  int    `json:"line_no" yaml:"line_no"`
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}
