package logcontract

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeDuplicateKey  = "duplicate_key"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidConst  = "invalid_const"
	CodeInvalidFormat = "invalid_format"
	CodeOverflow      = "overflow"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
	// CodeRoundTrip marks information lost or changed by a typed re-encode.
	CodeRoundTrip = "roundtrip_mismatch"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /data/stats/pass).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"got": 3, "want": 2})
	// for i18n and reporting.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /pid
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, " (%s)", it.Message)
		}
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// RebaseIssues prefixes every issue path with base. Child codecs report paths
// relative to their own value ("/"), so a field binding rebases them under
// its key.
func RebaseIssues(base string, iss Issues) Issues {
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		switch p := it.Path; {
		case p == "" || p == "/":
			it.Path = base
		case p[0] == '/':
			it.Path = base + p
		default:
			it.Path = base + "/" + p
		}
		out = append(out, it)
	}
	return out
}
