package fastjson_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/logline"
	"github.com/reoring/logcontract/source/fastjson"
	"github.com/reoring/logcontract/tree"
)

func TestDriver_MatchesDefault(t *testing.T) {
	inputs := []string{
		`{"a":[1,2.50,-0,1e3,"xé\n",null,true,false],"b":{},"c":[]}`,
		`"just a string"`,
		`123456789012345678901234567890`,
		`{"k~/":{"nested":{"deep":[{}]}}}`,
		"{\"msg\":\"bad\xff\"}",
		`{"n":1E400}`,
		`[-1e400]`,
		`[1e-400]`,
	}
	d := fastjson.Driver()
	for _, in := range inputs {
		want, werr := logcontract.ParseValue(logcontract.JSONBytes([]byte(in)))
		got, gerr := logcontract.ParseValue(d.NewBytes([]byte(in)))
		if (werr == nil) != (gerr == nil) {
			t.Fatalf("%q: drivers disagree: default=%v fastjson=%v", in, werr, gerr)
		}
		if werr != nil {
			continue
		}
		if !tree.Equal(got, want) {
			t.Fatalf("%q: got %s want %s", in, tree.Text(got), tree.Text(want))
		}
	}
}

func TestDriver_InvalidUTF8RoundTrips(t *testing.T) {
	logcontract.SetJSONDriver(fastjson.Driver())
	t.Cleanup(logcontract.UseDefaultJSONDriver)
	line := "{\"code\": \"A001\", \"data\": {}, \"invocation_id\": \"x\", \"level\": \"debug\", \"log_version\": 2, \"msg\": \"bad\xff\", \"pid\": 1, \"thread_name\": \"MainThread\", \"ts\": \"2021-12-03T01:32:38.000000Z\", \"type\": \"log_line\"}"
	if err := logcontract.RoundTrip(context.Background(), logline.Schema(), []byte(line), logcontract.DefaultTypedOpt()); err != nil {
		t.Fatalf("replacement character should survive the round trip: %v", err)
	}
	v, err := logcontract.ParseValue(logcontract.JSONBytes([]byte(line)))
	if err != nil {
		t.Fatal(err)
	}
	if msg := v.(map[string]any)["msg"]; msg != "bad\uFFFD" {
		t.Fatalf("msg = %q", msg)
	}
}

func TestDriver_KeepsNumberText(t *testing.T) {
	v, err := logcontract.ParseValue(fastjson.Driver().NewBytes([]byte(`[2.50]`)))
	if err != nil {
		t.Fatal(err)
	}
	if v.([]any)[0] != json.Number("2.50") {
		t.Fatalf("got %#v", v)
	}
}

func TestDriver_Rejects(t *testing.T) {
	for _, in := range []string{``, `not json at all`, `{"a":1} {}`, `{"a":`, `[1,]`} {
		if _, err := logcontract.ParseValue(fastjson.Driver().NewBytes([]byte(in))); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestDriver_DuplicatesReachEnforcement(t *testing.T) {
	src := fastjson.Driver().NewReader(strings.NewReader(`{"a":1,"a":2}`))
	_, err := logcontract.ParseValue(src, logcontract.DefaultTypedOpt())
	iss, ok := logcontract.AsIssues(err)
	if !ok || iss[0].Code != logcontract.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key, got %v", err)
	}
}

func TestDriver_AsGlobal(t *testing.T) {
	logcontract.SetJSONDriver(fastjson.Driver())
	t.Cleanup(logcontract.UseDefaultJSONDriver)
	if name := logcontract.CurrentJSONDriver().Name(); name != "fastjson" {
		t.Fatalf("driver not installed: %s", name)
	}
	line := `{"code": "A001", "data": {}, "invocation_id": "x", "level": "debug", "log_version": 2, "msg": "", "pid": 1, "thread_name": "MainThread", "ts": "2021-12-03T01:32:38.000000Z", "type": "log_line"}`
	if err := logcontract.RoundTrip(context.Background(), logline.Schema(), []byte(line), logcontract.DefaultTypedOpt()); err != nil {
		t.Fatalf("round trip under fastjson: %v", err)
	}
}
