package logcontract

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
	// DuplicateKeyDepth limits the check to objects nested at most this deep
	// (1 is the top-level object). 0 checks every object.
	DuplicateKeyDepth int
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 disables the depth limit.
	MaxBytes   int64 // 0 disables the size limit.
	// OnWarn receives non-fatal issues such as duplicate keys under Warn.
	OnWarn func(Issue)
}

// DefaultTypedOpt is the option set used for typed record decoding: a
// duplicated record field is a schema-shape failure because a struct field
// can only be bound once. Objects below the record (free-form payloads) keep
// the last value for a repeated key, as untyped decoding does.
func DefaultTypedOpt() ParseOpt {
	return ParseOpt{Strictness: Strictness{OnDuplicateKey: Error, DuplicateKeyDepth: 1}}
}
