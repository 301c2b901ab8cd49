package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const goodLine = `{"code": "Z023", "data": {}, "invocation_id": "f1e1557c-4f9d-4053-bb50-572cbbf2ca64", "level": "info", "log_version": 2, "msg": "Done.", "pid": 75854, "thread_name": "MainThread", "ts": "2021-12-03T01:32:38.334601Z", "type": "log_line"}`

func setup(t *testing.T, content string) string {
	t.Helper()
	for _, env := range []string{"LOG_DIR", "LOG_NAME", "LOGCONTRACT_DRIVER", "LOGCONTRACT_FORMAT", "LOGCONTRACT_LANG", "LOGCONTRACT_VERBOSE"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "logs", "dbt.log"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck_Pass(t *testing.T) {
	dir := setup(t, "12:00:00 Running with dbt\n"+goodLine+"\n")
	t.Setenv("LOG_DIR", dir)
	out, logs, err := execute()
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, logs)
	}
	if !strings.Contains(out, "PASS") {
		t.Fatalf("expected PASS:\n%s", out)
	}
	if !strings.Contains(logs, "collected log lines") {
		t.Fatalf("expected progress logs:\n%s", logs)
	}
}

func TestCheck_FailSetsError(t *testing.T) {
	dir := setup(t, strings.Replace(goodLine, `"log_version": 2`, `"log_version": 3`, 1)+"\n")
	out, _, err := execute("check", "--log-dir", dir, "--format", "json", "--driver", "fastjson")
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	if !strings.Contains(out, `"field": "log_version"`) {
		t.Fatalf("expected json report:\n%s", out)
	}
}

func TestCheck_MissingLogDir(t *testing.T) {
	setup(t, "")
	_, _, err := execute()
	if err == nil || errors.Is(err, errFailed) || !strings.Contains(err.Error(), "LOG_DIR") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCheck_VerboseLogsExclusions(t *testing.T) {
	dir := setup(t, "noise\n"+goodLine+"\n")
	_, logs, err := execute("--log-dir", dir, "-v")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "excluded line") {
		t.Fatalf("expected debug output:\n%s", logs)
	}
}

func TestSchema(t *testing.T) {
	setup(t, "")
	out, _, err := execute("schema")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"$schema": "http://json-schema.org/draft-07/schema#"`, `"additionalProperties": false`, `"log_version"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("schema output missing %q:\n%s", want, out)
		}
	}
	out, _, err = execute("schema", "--format", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "additionalProperties: false") {
		t.Fatalf("expected yaml schema:\n%s", out)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := setup(t, goodLine+"\n")
	t.Setenv("LOG_NAME", "dbt.log")
	chdir(t, t.TempDir())
	if err := os.WriteFile(".env", []byte("LOG_DIR="+dir+"\nLOG_NAME=other.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	loadDotEnv()
	if got := os.Getenv("LOG_DIR"); got != dir {
		t.Fatalf("LOG_DIR = %q", got)
	}
	if got := os.Getenv("LOG_NAME"); got != "dbt.log" {
		t.Fatalf(".env must not override the environment, LOG_NAME = %q", got)
	}
	out, _, err := execute()
	if err != nil || !strings.Contains(out, "PASS") {
		t.Fatalf("run with .env config: %v\n%s", err, out)
	}
}

func TestSchema_FormatFromEnvironment(t *testing.T) {
	setup(t, "")
	t.Setenv("LOGCONTRACT_FORMAT", "yaml")
	out, _, err := execute("schema")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "additionalProperties: false") {
		t.Fatalf("expected yaml schema from LOGCONTRACT_FORMAT:\n%s", out)
	}
	t.Setenv("LOGCONTRACT_FORMAT", "xml")
	if _, _, err := execute("schema"); err == nil {
		t.Fatalf("expected unknown format to be rejected")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
