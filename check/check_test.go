package check_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/check"
	"github.com/reoring/logcontract/logline"
	"github.com/reoring/logcontract/tree"
)

const example = `{"code": "Z023", "data": {"stats": {"error": 0, "pass": 3, "skip": 0, "total": 3, "warn": 0}}, "invocation_id": "f1e1557c-4f9d-4053-bb50-572cbbf2ca64", "level": "info", "log_version": 2, "msg": "Done. PASS=3 WARN=0 ERROR=0 SKIP=0 TOTAL=3", "pid": 75854, "thread_name": "MainThread", "ts": "2021-12-03T01:32:38.334601Z", "type": "log_line"}`

func with(old, repl string) string { return strings.Replace(example, old, repl, 1) }

func run(t *testing.T, lines ...string) *check.Report {
	t.Helper()
	rep, err := check.Run(context.Background(), lines, check.Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return rep
}

func TestRun_ExamplePasses(t *testing.T) {
	rep := run(t, example)
	if !rep.Passed() {
		t.Fatalf("expected pass, got %+v", rep)
	}
	if rep.Lines != 1 || rep.WellFormed != 1 || rep.Records != 1 || len(rep.Notes) != 0 {
		t.Fatalf("unexpected counts: %+v", rep)
	}
}

func TestRun_LogVersionBumpFailsFieldCheck(t *testing.T) {
	rep := run(t, example, with(`"log_version": 2`, `"log_version": 3`))
	if rep.Passed() {
		t.Fatalf("expected failure")
	}
	if len(rep.RoundTripFailures) != 0 {
		t.Fatalf("log_version 3 still round-trips: %v", rep.RoundTripFailures)
	}
	fv := rep.FieldViolation
	if fv == nil || fv.Field != "log_version" || fv.Value != int64(3) || fv.LineNo != 2 {
		t.Fatalf("unexpected violation: %+v", fv)
	}
	if !strings.Contains(fv.Message, "log_version") || !strings.Contains(fv.Message, "3") {
		t.Fatalf("message should name field and value: %q", fv.Message)
	}
}

func TestRun_DuplicateInsideDataStillChecked(t *testing.T) {
	line := with(`"log_version": 2`, `"log_version": 3`)
	line = strings.Replace(line, `"pass": 3,`, `"pass": 3, "pass": 4,`, 1)
	rep := run(t, line)
	if rep.Records != 1 {
		t.Fatalf("a repeated key inside data must not exclude the record: %+v", rep)
	}
	if len(rep.RoundTripFailures) != 0 {
		t.Fatalf("last value wins on both sides of the round trip: %v", rep.RoundTripFailures)
	}
	if rep.Passed() || rep.FieldViolation == nil || rep.FieldViolation.Field != "log_version" {
		t.Fatalf("expected log_version violation, got %+v", rep.FieldViolation)
	}
}

func TestRun_DuplicateRecordFieldExcludes(t *testing.T) {
	rep := run(t, with(`"code": "Z023"`, `"code": "Z022", "code": "Z023"`))
	if rep.Records != 0 || rep.WellFormed != 1 {
		t.Fatalf("a repeated record field should exclude the line: %+v", rep)
	}
}

func TestRun_ViolationMessageKeepsBraces(t *testing.T) {
	rep := run(t, with(`"level": "info"`, `"level": "{fatal}"`))
	fv := rep.FieldViolation
	if fv == nil || !strings.Contains(fv.Message, "{fatal}") {
		t.Fatalf("message should name the offending value: %+v", fv)
	}
}

func TestRun_FieldCheckStopsAtFirstViolation(t *testing.T) {
	rep := run(t,
		with(`"level": "info"`, `"level": "fatal"`),
		with(`"type": "log_line"`, `"type": "other"`),
	)
	if rep.FieldViolation == nil || rep.FieldViolation.LineNo != 1 || rep.FieldViolation.Field != "level" {
		t.Fatalf("expected the first record's level violation, got %+v", rep.FieldViolation)
	}
	if rep.FieldViolation.Code != logcontract.CodeInvalidEnum {
		t.Fatalf("unexpected code %s", rep.FieldViolation.Code)
	}
}

func TestRun_ExcludesTimestampWithoutFraction(t *testing.T) {
	rep := run(t, with(`38.334601Z`, `38Z`))
	if !rep.Passed() || rep.WellFormed != 1 || rep.Records != 0 {
		t.Fatalf("line should be silently excluded: %+v", rep)
	}
}

func TestRun_ExcludesNonJSON(t *testing.T) {
	rep := run(t, "not json at all", "", "12:00:00  Running with dbt=1.0.0", example)
	if !rep.Passed() || rep.Lines != 4 || rep.WellFormed != 1 || rep.Records != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestRun_ExcludesBadShapes(t *testing.T) {
	rep := run(t,
		`{"a":1}`,
		`[1,2,3]`,
		`"log_line"`,
		with(`"pid": 75854`, `"pid": "75854"`),
		with(`"code": "Z023"`, `"code": "Z023", "code": "Z024"`),
	)
	if !rep.Passed() || rep.WellFormed != 5 || rep.Records != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestRun_ExtraKeyIsRoundTripFailure(t *testing.T) {
	bad := with(`"code": "Z023"`, `"code": "Z023", "node_info": {"unique_id": "model.x"}`)
	rep := run(t, bad, example, with(`"msg": "Done.`, `"extra": 1, "msg": "Done.`))
	if rep.Passed() {
		t.Fatalf("expected failure")
	}
	if len(rep.RoundTripFailures) != 2 {
		t.Fatalf("round-trip failures should all be collected: %v", rep.RoundTripFailures)
	}
	f := rep.RoundTripFailures[0]
	if f.LineNo != 1 || f.Line != bad || f.Path != "/" {
		t.Fatalf("unexpected failure: %+v", f)
	}
	if !tree.Equal(f.Fragment, map[string]any{"node_info": map[string]any{"unique_id": "model.x"}}) {
		t.Fatalf("unexpected fragment: %s", tree.Text(f.Fragment))
	}
	if rep.RoundTripFailures[1].LineNo != 3 || !tree.Equal(rep.RoundTripFailures[1].Fragment, map[string]any{"extra": json.Number("1")}) {
		t.Fatalf("unexpected second failure: %+v", rep.RoundTripFailures[1])
	}
	if rep.FieldViolation != nil {
		t.Fatalf("field values are fine: %+v", rep.FieldViolation)
	}
}

func TestRun_TimestampPrecisionSurvives(t *testing.T) {
	rep := run(t, with(`38.334601Z`, `38.000000Z`))
	if !rep.Passed() || rep.Records != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestRun_NonUUIDInvocationIsANote(t *testing.T) {
	rep := run(t, with(`f1e1557c-4f9d-4053-bb50-572cbbf2ca64`, `run-42`))
	if !rep.Passed() {
		t.Fatalf("notes must not fail a run")
	}
	if len(rep.Notes) != 1 || rep.Notes[0].Field != "invocation_id" || !strings.Contains(rep.Notes[0].Message, "run-42") {
		t.Fatalf("unexpected notes: %+v", rep.Notes)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	rep := run(t)
	if !rep.Passed() || rep.Records != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := check.Run(ctx, []string{example}, check.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_LogsProgressAndExclusions(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := check.Run(context.Background(), []string{"noise", example}, check.Options{Logger: log}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"collected log lines", "values to test", "excluded line: not json", "line=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestStages(t *testing.T) {
	cands := check.WellFormed([]string{"x", `{"a":1}`, example}, check.Options{})
	if len(cands) != 2 || cands[0].LineNo != 2 || cands[1].LineNo != 3 {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
	recs := check.Conforming(context.Background(), logline.Schema(), cands, check.Options{})
	if len(recs) != 1 || recs[0].LineNo != 3 || recs[0].Line.Code != "Z023" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestConforming_LenientDuplicates(t *testing.T) {
	line := with(`"code": "Z023"`, `"code": "Z022", "code": "Z023"`)
	cands := check.WellFormed([]string{line}, check.Options{})
	opt := check.Options{Parse: &logcontract.ParseOpt{}}
	recs := check.Conforming(context.Background(), logline.Schema(), cands, opt)
	if len(recs) != 1 || recs[0].Line.Code != "Z023" {
		t.Fatalf("expected last value to win without duplicate enforcement: %+v", recs)
	}
}
