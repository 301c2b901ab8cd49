package tree

import (
	j "github.com/goccy/go-json"
)

// Marshal renders v as compact JSON. Object keys come out sorted and number
// literals are written back verbatim.
func Marshal(v any) ([]byte, error) {
	return j.Marshal(v)
}

// Text is Marshal for diagnostics; it never fails.
func Text(v any) string {
	b, err := Marshal(v)
	if err != nil {
		return "<unprintable: " + err.Error() + ">"
	}
	return string(b)
}
