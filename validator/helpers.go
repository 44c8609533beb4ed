package validator

import (
	"maps"
	"slices"
)

// sortedKeys returns map keys in sorted order so issues are reported deterministically.
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
