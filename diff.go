package uec

import "sort"

// Diff normalizes both documents and reports their structural delta. Object
// keys are walked as a sorted union, so a key present only on the left shows
// up as removed and only on the right as added; scalars that differ are
// changed entries carrying both sides.
//
// Arrays are compared positionally up to the longer length, padding the
// shorter side with nulls. A reordered array therefore reports per-index
// changes rather than a move; this is a deliberate, documented trade for
// deterministic output.
func Diff(left, right any) []DiffEntry {
	out := []DiffEntry{}
	walkDiff(NormalizeCard(left), NormalizeCard(right), "", &out)
	return out
}

func walkDiff(a, b any, path string, out *[]DiffEntry) {
	if deepEqual(a, b) {
		return
	}

	if aArr, ok := a.([]any); ok {
		if bArr, ok := b.([]any); ok {
			n := len(aArr)
			if len(bArr) > n {
				n = len(bArr)
			}
			for i := 0; i < n; i++ {
				var av, bv any
				if i < len(aArr) {
					av = aArr[i]
				}
				if i < len(bArr) {
					bv = bArr[i]
				}
				walkDiff(av, bv, indexPath(path, i), out)
			}
			return
		}
	}

	if aObj, ok := a.(map[string]any); ok {
		if bObj, ok := b.(map[string]any); ok {
			for _, key := range unionKeys(aObj, bObj) {
				next := childPath(path, key)
				av, inA := aObj[key]
				bv, inB := bObj[key]
				switch {
				case !inA:
					*out = append(*out, DiffEntry{Path: next, Change: ChangeAdded, After: bv})
				case !inB:
					*out = append(*out, DiffEntry{Path: next, Change: ChangeRemoved, Before: av})
				default:
					walkDiff(av, bv, next, out)
				}
			}
			return
		}
	}

	*out = append(*out, DiffEntry{Path: orRoot(path), Change: ChangeChanged, Before: a, After: b})
}

// deepEqual is structural equality over the JSON value model. Values are
// equal only when they share the same runtime kind and compare equal
// recursively; an int 1 and a float64 1 are therefore different, matching the
// kind-sensitive semantics the diff and merge walks rely on.
func deepEqual(a, b any) bool {
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for key, item := range av {
			other, has := bv[key]
			if !has || !deepEqual(item, other) {
				return false
			}
		}
		return true
	default:
		switch b.(type) {
		case []any, map[string]any:
			return false
		}
		return a == b
	}
}

// unionKeys returns the sorted union of both objects' keys.
func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]bool, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for key := range a {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key := range b {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
