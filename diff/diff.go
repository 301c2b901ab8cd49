// Package diff locates where two trees diverge.
//
// Only objects are narrowed: a missing key is reported as a single-entry
// object, and shared keys are descended into in sorted order. Any other
// divergence (scalar against scalar, array against array, or a kind change)
// reports the whole left-hand value. Arrays are deliberately not diffed
// element-wise; downstream tooling relies on this granularity.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/logcontract/tree"
)

// Mismatch is the localized result of a failed comparison.
type Mismatch struct {
	// Path is the JSON Pointer of the value the fragment was taken from ("/"
	// for the root). For a missing key it points at the enclosing object.
	Path string
	// Fragment is an owned copy of the smallest sub-tree explaining the
	// divergence.
	Fragment any
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("trees differ at %s: %s", m.Path, tree.Text(m.Fragment))
}

// Diff returns nil when a and b are equal and a *Mismatch otherwise.
func Diff(a, b any) error {
	m := locate(a, b, "")
	if m == nil {
		return nil
	}
	return m
}

func locate(a, b any, path string) *Mismatch {
	if tree.Equal(a, b) {
		return nil
	}
	ma, okA := a.(map[string]any)
	mb, okB := b.(map[string]any)
	if !okA || !okB {
		return &Mismatch{Path: pointer(path), Fragment: tree.Clone(a)}
	}

	keysA := sortedKeys(ma)
	for _, k := range keysA {
		if _, ok := mb[k]; !ok {
			return missing(path, k, ma[k])
		}
	}
	for _, k := range sortedKeys(mb) {
		if _, ok := ma[k]; !ok {
			return missing(path, k, mb[k])
		}
	}
	for _, k := range keysA {
		if m := locate(ma[k], mb[k], path+"/"+escape(k)); m != nil {
			return m
		}
	}
	// Same key sets and pairwise-equal values imply Equal returned true.
	panic("diff: unequal objects with no differing child")
}

func missing(path, key string, v any) *Mismatch {
	return &Mismatch{Path: pointer(path), Fragment: map[string]any{key: tree.Clone(v)}}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

func escape(k string) string { return escaper.Replace(k) }
