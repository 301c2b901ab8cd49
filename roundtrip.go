package logcontract

import (
	"context"
	"errors"
	"fmt"

	"github.com/reoring/logcontract/diff"
	"github.com/reoring/logcontract/tree"
)

// RoundTripError reports that re-encoding a typed value lost or changed data
// the untyped tree had.
type RoundTripError struct {
	Line     string
	Mismatch *diff.Mismatch
}

func (e *RoundTripError) Error() string {
	return fmt.Sprintf("%s at %s: %s", CodeRoundTrip, e.Mismatch.Path, tree.Text(e.Mismatch.Fragment))
}

func (e *RoundTripError) Unwrap() error { return e.Mismatch }

// RoundTrip proves that T is lossless for line: it decodes line into a tree
// and into T, encodes T back to text, decodes that into a second tree, and
// diffs the two trees.
//
// A line that is not well-formed, or that does not fit T, yields Issues; a
// line that fits T but does not survive the loop yields *RoundTripError.
func RoundTrip[T any](ctx context.Context, s RecordSchema[T], line []byte, opts ...ParseOpt) error {
	generic, err := ParseValue(JSONBytes(line))
	if err != nil {
		return err
	}
	typed, err := ParseFrom(ctx, s, JSONBytes(line), opts...)
	if err != nil {
		return err
	}
	wire, err := s.Encode(ctx, typed)
	if err != nil {
		return err
	}
	text, err := tree.Marshal(wire)
	if err != nil {
		return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: "re-encode: " + err.Error(), Cause: err})
	}
	again, err := ParseValue(JSONBytes(text))
	if err != nil {
		return err
	}
	if err := diff.Diff(generic, again); err != nil {
		var m *diff.Mismatch
		if errors.As(err, &m) {
			return &RoundTripError{Line: string(line), Mismatch: m}
		}
		return err
	}
	return nil
}
