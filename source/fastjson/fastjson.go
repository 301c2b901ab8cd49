// Package fastjson provides a JSON driver backed by valyala/fastjson.
//
// The whole document is parsed before the first token is produced, so a
// malformed line never yields a partial token stream. Object members are
// emitted in input order including duplicates, which leaves duplicate
// handling to the enforcement layer.
package fastjson

import (
	"io"

	fj "github.com/valyala/fastjson"

	logcontract "github.com/reoring/logcontract"
	eng "github.com/reoring/logcontract/internal/engine"
)

var parsers fj.ParserPool

// Driver returns a logcontract.JSONDriver that parses with fastjson.
func Driver() logcontract.JSONDriver { return driver{} }

type driver struct{}

func (driver) Name() string { return "fastjson" }

func (driver) NewBytes(b []byte) logcontract.Source { return logcontract.SourceFromEngine(NewBytes(b)) }

func (driver) NewReader(r io.Reader) logcontract.Source {
	return logcontract.SourceFromEngine(NewReader(r))
}

// NewReader reads r to the end and tokenizes the result.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err, size: -1}
	}
	return NewBytes(b)
}

// NewBytes parses b and returns its tokens. Location reports len(b) once the
// document has been parsed.
func NewBytes(b []byte) eng.TokenSource {
	p := parsers.Get()
	defer parsers.Put(p)
	v, err := p.ParseBytes(b)
	if err != nil {
		return &source{err: err, size: -1}
	}
	toks, err := appendValue(nil, v)
	if err != nil {
		return &source{err: err, size: -1}
	}
	return &source{toks: toks, size: int64(len(b))}
}

// appendValue flattens v into tokens. Every string is copied out of the
// parser's buffer so the parser can go back to the pool. Invalid UTF-8 is
// replaced and out-of-range numbers are rejected, the same way the default
// driver treats them.
func appendValue(dst []eng.Token, v *fj.Value) ([]eng.Token, error) {
	switch v.Type() {
	case fj.TypeObject:
		dst = append(dst, eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		o, _ := v.Object()
		var err error
		o.Visit(func(key []byte, mv *fj.Value) {
			if err != nil {
				return
			}
			dst = append(dst, eng.Token{Kind: eng.KindKey, String: eng.ValidString(string(key)), Offset: -1})
			dst, err = appendValue(dst, mv)
		})
		if err != nil {
			return nil, err
		}
		return append(dst, eng.Token{Kind: eng.KindEndObject, Offset: -1}), nil
	case fj.TypeArray:
		dst = append(dst, eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		arr, _ := v.Array()
		for _, av := range arr {
			var err error
			if dst, err = appendValue(dst, av); err != nil {
				return nil, err
			}
		}
		return append(dst, eng.Token{Kind: eng.KindEndArray, Offset: -1}), nil
	case fj.TypeString:
		sb, _ := v.StringBytes()
		return append(dst, eng.Token{Kind: eng.KindString, String: eng.ValidString(string(sb)), Offset: -1}), nil
	case fj.TypeNumber:
		// String re-marshals a number as its literal text.
		lit := v.String()
		if err := eng.CheckNumber(lit); err != nil {
			return nil, err
		}
		return append(dst, eng.Token{Kind: eng.KindNumber, Number: lit, Offset: -1}), nil
	case fj.TypeTrue:
		return append(dst, eng.Token{Kind: eng.KindBool, Bool: true, Offset: -1}), nil
	case fj.TypeFalse:
		return append(dst, eng.Token{Kind: eng.KindBool, Bool: false, Offset: -1}), nil
	default:
		return append(dst, eng.Token{Kind: eng.KindNull, Offset: -1}), nil
	}
}

type source struct {
	toks []eng.Token
	pos  int
	size int64
	err  error
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *source) Location() int64 { return s.size }
