package logcontract

import (
	"context"
	"errors"

	eng "github.com/reoring/logcontract/internal/engine"
)

// ParseValue decodes exactly one JSON value from src into an untyped tree.
// It fails on malformed input and on anything but whitespace after the value;
// there are no partial results.
func ParseValue(src Source, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), enforceOptions(opt))
	v, err := eng.DecodeSingleFromSource(enforced)
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

// ParseFrom is the typed entry point. It decodes the tree from src under the
// enforcement options and delegates shape checks to the Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	v, err := ParseValue(src, opts...)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func enforceOptions(opt ParseOpt) eng.EnforceOptions {
	var sink func(eng.SimpleIssue)
	if opt.OnWarn != nil {
		sink = func(si eng.SimpleIssue) {
			opt.OnWarn(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	return eng.EnforceOptions{
		OnDuplicate:    toEngineDup(opt.Strictness.OnDuplicateKey),
		DuplicateDepth: opt.Strictness.DuplicateKeyDepth,
		MaxDepth:       opt.MaxDepth,
		MaxBytes:       opt.MaxBytes,
		IssueSink:      sink,
	}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg})
}
