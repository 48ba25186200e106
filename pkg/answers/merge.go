package answers

import "sort"

// MergedView layers overrides on top of base:
//   - Keys present in overrides win, whatever the base holds
//   - Keys only in base are inherited unchanged
//   - Keys only in overrides are included as-is; unknown override keys
//     are not rejected here (the persistence layer owns that invariant)
//
// The result is a fresh map; neither input is modified.
func MergedView(base, overrides Map) Map {
	result := make(Map, len(base)+len(overrides))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range overrides {
		result[k] = v
	}
	return result
}

// SameOverrides reports whether two override maps hold equal values for
// every key in their union. A key absent from one map and present in
// the other makes them differ, even if the present value is nil.
func SameOverrides(a, b Map) bool {
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}

// SameHidden reports whether two hidden-field lists are equal as sets.
func SameHidden(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	members := make(map[string]bool, len(a))
	for _, k := range a {
		members[k] = true
	}
	for _, k := range b {
		if !members[k] {
			return false
		}
	}
	return true
}

// SymmetricDifference returns the keys whose membership differs between
// the two lists, sorted for deterministic iteration.
func SymmetricDifference(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, k := range a {
		inA[k] = true
	}
	inB := make(map[string]bool, len(b))
	for _, k := range b {
		inB[k] = true
	}

	var diff []string
	for k := range inA {
		if !inB[k] {
			diff = append(diff, k)
		}
	}
	for k := range inB {
		if !inA[k] {
			diff = append(diff, k)
		}
	}

	sort.Strings(diff)
	return diff
}

// Change describes one field's value moving between two answer maps.
// A key present only in `to` has a nil From; present only in `from`, a
// nil To with Removed set.
type Change struct {
	Key     string
	From    interface{}
	To      interface{}
	Removed bool
}

// Diff lists the per-key changes from one answer map to another, sorted
// by key. Keys whose values are structurally equal are omitted.
func Diff(from, to Map) []Change {
	keys := make(map[string]bool, len(from)+len(to))
	for k := range from {
		keys[k] = true
	}
	for k := range to {
		keys[k] = true
	}

	var changes []Change
	for k := range keys {
		fromVal, inFrom := from[k]
		toVal, inTo := to[k]

		if inFrom && inTo && Equal(fromVal, toVal) {
			continue
		}
		changes = append(changes, Change{
			Key:     k,
			From:    fromVal,
			To:      toVal,
			Removed: inFrom && !inTo,
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Key < changes[j].Key
	})
	return changes
}
