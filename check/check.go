// Package check runs the log schema contract over a batch of raw lines.
//
// Lines that are not JSON, and JSON values that do not have the LogLine
// shape, are dropped without being reported: log files interleave free text
// with structured records. Every remaining record must survive a typed round
// trip and satisfy the field value contract.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/logline"
)

// Candidate is a line that parsed as a JSON value.
type Candidate struct {
	LineNo int // 1-based position in the input
	Raw    string
	Value  any
}

// Record is a candidate that also decoded as a LogLine.
type Record struct {
	Candidate
	Line logline.LogLine
}

// Options configures a run. The zero value is usable.
type Options struct {
	Logger *slog.Logger
	// Schema defaults to logline.Schema().
	Schema logcontract.RecordSchema[logline.LogLine]
	// Parse applies to typed decoding; nil means logcontract.DefaultTypedOpt().
	Parse *logcontract.ParseOpt
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) schema() logcontract.RecordSchema[logline.LogLine] {
	if o.Schema != nil {
		return o.Schema
	}
	return logline.Schema()
}

func (o Options) parseOpt() logcontract.ParseOpt {
	if o.Parse != nil {
		return *o.Parse
	}
	return logcontract.DefaultTypedOpt()
}

// WellFormed keeps the lines that hold exactly one JSON value.
func WellFormed(lines []string, opt Options) []Candidate {
	log := opt.logger()
	out := make([]Candidate, 0, len(lines))
	for i, raw := range lines {
		v, err := logcontract.ParseValue(logcontract.JSONBytes([]byte(raw)))
		if err != nil {
			log.Debug("excluded line: not json", "line", i+1, "err", err)
			continue
		}
		out = append(out, Candidate{LineNo: i + 1, Raw: raw, Value: v})
	}
	return out
}

// Conforming keeps the candidates whose raw text decodes under s. Decoding
// starts from the raw text again so duplicate keys are still visible.
func Conforming(ctx context.Context, s logcontract.RecordSchema[logline.LogLine], cands []Candidate, opt Options) []Record {
	log := opt.logger()
	popt := opt.parseOpt()
	out := make([]Record, 0, len(cands))
	for _, c := range cands {
		ll, err := logcontract.ParseFrom(ctx, s, logcontract.JSONBytes([]byte(c.Raw)), popt)
		if err != nil {
			log.Debug("excluded line: not a log record", "line", c.LineNo, "err", err)
			continue
		}
		out = append(out, Record{Candidate: c, Line: ll})
	}
	return out
}

// Run filters lines, round-trips every record, then checks field values.
// Round-trip failures are all collected; the field check stops at the first
// violation. The returned error is reserved for cancellation and for records
// that cannot be re-encoded at all; contract failures live in the Report.
func Run(ctx context.Context, lines []string, opt Options) (*Report, error) {
	log := opt.logger()
	s := opt.schema()
	log.Info("collected log lines", "count", len(lines))

	cands := WellFormed(lines, opt)
	recs := Conforming(ctx, s, cands, opt)
	log.Info("values to test", "count", len(recs), "well_formed", len(cands))
	if len(recs) == 0 {
		log.Warn("no log records found; nothing was checked")
	}

	rep := &Report{Lines: len(lines), WellFormed: len(cands), Records: len(recs)}

	popt := opt.parseOpt()
	for _, r := range recs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := logcontract.RoundTrip(ctx, s, []byte(r.Raw), popt)
		if err == nil {
			continue
		}
		var rt *logcontract.RoundTripError
		if !errors.As(err, &rt) {
			return nil, fmt.Errorf("line %d: %w", r.LineNo, err)
		}
		rep.RoundTripFailures = append(rep.RoundTripFailures, RoundTripFailure{
			LineNo:   r.LineNo,
			Line:     r.Raw,
			Path:     rt.Mismatch.Path,
			Fragment: rt.Mismatch.Fragment,
		})
	}
	log.Info("round trip done", "failures", len(rep.RoundTripFailures))

	for _, r := range recs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.ValidateValue(ctx, r.Line); err != nil {
			rep.FieldViolation = fieldViolation(r, err)
			log.Info("field check stopped", "line", r.LineNo, "field", rep.FieldViolation.Field)
			break
		}
	}
	if rep.FieldViolation == nil {
		log.Info("field check done")
	}

	rep.Notes = invocationNotes(recs)
	return rep, nil
}

func fieldViolation(r Record, err error) *FieldViolation {
	fv := &FieldViolation{LineNo: r.LineNo, Line: r.Raw, Message: err.Error()}
	iss, ok := logcontract.AsIssues(err)
	if !ok || len(iss) == 0 {
		return fv
	}
	first := iss[0]
	fv.Field = strings.TrimPrefix(first.Path, "/")
	fv.Code = first.Code
	fv.Value = first.Params["got"]
	fv.Message = first.Message
	return fv
}

// invocationNotes flags records whose invocation_id is not a UUID. The
// field is free-form, so this never fails a run.
func invocationNotes(recs []Record) []Note {
	var notes []Note
	for _, r := range recs {
		if _, err := uuid.Parse(r.Line.InvocationID); err != nil {
			notes = append(notes, Note{
				LineNo:  r.LineNo,
				Field:   "invocation_id",
				Message: fmt.Sprintf("invocation_id %q is not a UUID", r.Line.InvocationID),
			})
		}
	}
	return notes
}
