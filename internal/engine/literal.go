package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrNumberRange reports a number literal whose magnitude does not fit in a
// float64. Such literals are rejected by every driver so that well-formedness
// does not depend on which parser read the line.
var ErrNumberRange = errors.New("number out of range")

// CheckNumber rejects literals that overflow float64. Underflow rounds to zero
// and is accepted.
func CheckNumber(lit string) error {
	if _, err := strconv.ParseFloat(lit, 64); err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return fmt.Errorf("%w: %s", ErrNumberRange, lit)
		}
		return err
	}
	return nil
}

// ValidString replaces each byte that is not part of a valid UTF-8 sequence
// with U+FFFD, matching what the JSON encoder writes back.
func ValidString(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}
