package logline

import (
	"context"
	"fmt"
	"slices"
	"time"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/codec"
	"github.com/reoring/logcontract/i18n"
	js "github.com/reoring/logcontract/jsonschema"
	"github.com/reoring/logcontract/tree"
)

// SchemaID is the $id stamped on the exported JSON Schema.
const SchemaID = "https://github.com/reoring/logcontract/schemas/log_line.v2.json"

type schema struct {
	fields []field
}

var _ logcontract.RecordSchema[LogLine] = (*schema)(nil)

// Schema returns the record schema for LogLine. Every field is required,
// unknown keys are ignored when decoding, and fields are visited in
// declaration order so issue order is stable.
func Schema() logcontract.RecordSchema[LogLine] {
	return &schema{fields: []field{
		bind("log_version", codec.Int64(), func(l *LogLine) *int64 { return &l.LogVersion }),
		bind("type", codec.Identity(codec.String()), func(l *LogLine) *string { return &l.Type }),
		bind("code", codec.Identity(codec.String()), func(l *LogLine) *string { return &l.Code }),
		bind("ts", codec.TimestampMicros(), func(l *LogLine) *time.Time { return &l.Ts }),
		bind("pid", codec.Int64(), func(l *LogLine) *int64 { return &l.Pid }),
		bind("msg", codec.Identity(codec.String()), func(l *LogLine) *string { return &l.Msg }),
		bind("level", codec.Identity(codec.String()), func(l *LogLine) *string { return &l.Level }),
		bind("invocation_id", codec.Identity(codec.String()), func(l *LogLine) *string { return &l.InvocationID }),
		bind("thread_name", codec.Identity(codec.String()), func(l *LogLine) *string { return &l.ThreadName }),
		bind("data", codec.Identity(codec.Tree()), func(l *LogLine) *any { return &l.Data }),
	}}
}

// Parse decodes a tree into a LogLine, collecting one issue per bad field.
func (s *schema) Parse(ctx context.Context, v any) (LogLine, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		got := tree.KindOf(v).String()
		return LogLine{}, logcontract.Issues{{
			Path:    "/",
			Code:    logcontract.CodeInvalidType,
			Message: i18n.T(logcontract.CodeInvalidType, map[string]string{"expected": "object", "got": got}),
			Params:  map[string]any{"expected": "object", "got": got},
		}}
	}
	var (
		ll  LogLine
		iss logcontract.Issues
	)
	for _, f := range s.fields {
		raw, present := obj[f.name]
		if !present {
			iss = logcontract.AppendIssues(iss, logcontract.Issue{
				Path:    "/" + f.name,
				Code:    logcontract.CodeRequired,
				Message: i18n.T(logcontract.CodeRequired, nil),
			})
			continue
		}
		if err := f.decode(ctx, raw, &ll); err != nil {
			iss = logcontract.AppendIssues(iss, issuesAt(f.name, err)...)
		}
	}
	if len(iss) > 0 {
		return LogLine{}, iss
	}
	return ll, nil
}

// Encode renders a LogLine as its wire tree.
func (s *schema) Encode(ctx context.Context, ll LogLine) (any, error) {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		v, err := f.encode(ctx, &ll)
		if err != nil {
			return nil, issuesAt(f.name, err)
		}
		out[f.name] = v
	}
	return out, nil
}

// ValidateValue checks the field value contract: the schema version and
// record type constants and the level enumeration.
func (s *schema) ValidateValue(ctx context.Context, ll LogLine) error {
	var iss logcontract.Issues
	if ll.LogVersion != Version {
		iss = logcontract.AppendIssues(iss, constIssue("log_version", ll.LogVersion, Version))
	}
	if ll.Type != RecordType {
		iss = logcontract.AppendIssues(iss, constIssue("type", ll.Type, RecordType))
	}
	if !slices.Contains(Levels, ll.Level) {
		iss = logcontract.AppendIssues(iss, logcontract.Issue{
			Path:    "/level",
			Code:    logcontract.CodeInvalidEnum,
			Message: i18n.T(logcontract.CodeInvalidEnum, map[string]string{"field": "level", "got": fmt.Sprintf("%q", ll.Level)}),
			Params:  map[string]any{"got": ll.Level, "allowed": slices.Clone(Levels)},
		})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func constIssue(name string, got, want any) logcontract.Issue {
	return logcontract.Issue{
		Path:    "/" + name,
		Code:    logcontract.CodeInvalidConst,
		Message: i18n.T(logcontract.CodeInvalidConst, map[string]string{"field": name, "got": fmt.Sprintf("%#v", got), "want": fmt.Sprintf("%#v", want)}),
		Params:  map[string]any{"got": got, "want": want},
	}
}

// JSONSchema projects the shape and the value contract into one document.
func (s *schema) JSONSchema() (*js.Schema, error) {
	root := &js.Schema{
		Schema:               js.Draft07,
		ID:                   SchemaID,
		Title:                "LogLine",
		Description:          fmt.Sprintf("Structured log record, log_version %d.", Version),
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, len(s.fields)),
		AdditionalProperties: false,
	}
	for _, f := range s.fields {
		fs, err := f.schema()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}
		root.Properties[f.name] = fs
		root.Required = append(root.Required, f.name)
	}
	root.Properties["log_version"].Const = Version
	root.Properties["type"].Const = RecordType
	levels := make([]any, len(Levels))
	for i, l := range Levels {
		levels[i] = l
	}
	root.Properties["level"].Enum = levels
	return root, nil
}
