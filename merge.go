package uec

import "sort"

// Merge combines two documents recursively. A null side always yields the
// other side. Arrays follow the configured strategy: concat appends incoming
// after base, replace takes incoming wholesale while recording a conflict
// when the two differed. Objects merge per sorted key union. Scalars that
// disagree record a conflict and resolve per the conflict strategy, incoming
// winning by default.
//
// Conflicts come back as a sorted, de-duplicated set of paths rather than a
// list of deltas; callers wanting the values should Diff the two sides.
func Merge(base, incoming any, opts MergeOptions) MergeResult {
	if opts.Array == "" {
		opts.Array = ArrayReplace
	}
	if opts.Conflict == "" {
		opts.Conflict = ConflictIncoming
	}

	conflicts := map[string]bool{}
	value := mergeValues(base, incoming, "", opts, conflicts)

	paths := make([]string, 0, len(conflicts))
	for path := range conflicts {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return MergeResult{Value: value, Conflicts: paths}
}

func mergeValues(base, incoming any, path string, opts MergeOptions, conflicts map[string]bool) any {
	if incoming == nil {
		return base
	}
	if base == nil {
		return incoming
	}

	if baseArr, ok := base.([]any); ok {
		if incomingArr, ok := incoming.([]any); ok {
			if opts.Array == ArrayConcat {
				out := make([]any, 0, len(baseArr)+len(incomingArr))
				out = append(out, baseArr...)
				return append(out, incomingArr...)
			}
			if !deepEqual(baseArr, incomingArr) {
				conflicts[orRoot(path)] = true
			}
			return incomingArr
		}
	}

	if baseObj, ok := base.(map[string]any); ok {
		if incomingObj, ok := incoming.(map[string]any); ok {
			out := make(map[string]any, len(baseObj)+len(incomingObj))
			for _, key := range unionKeys(baseObj, incomingObj) {
				out[key] = mergeValues(baseObj[key], incomingObj[key], childPath(path, key), opts, conflicts)
			}
			return out
		}
	}

	if !deepEqual(base, incoming) {
		conflicts[orRoot(path)] = true
	}
	if opts.Conflict == ConflictBase {
		return base
	}
	return incoming
}
