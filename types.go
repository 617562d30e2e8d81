package uec

// ValidationResult reports the outcome of a validation pass. Errors accumulate
// across the whole pass; OK is true only when the list is empty.
type ValidationResult struct {
	OK     bool
	Errors []string
}

// ParseResult is the outcome of decoding plus validating a serialized card.
// Value is nil whenever OK is false.
type ParseResult struct {
	OK     bool
	Value  map[string]any
	Errors []string
}

// DowngradeResult carries the transformed card together with advisory
// warnings describing each lossy remapping. Warnings never block the
// transform.
type DowngradeResult struct {
	Card     map[string]any
	Warnings []string
}

// ChangeType classifies a single diff entry.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// DiffEntry records one structural delta between two documents. Before is set
// for removed/changed entries, After for added/changed entries.
type DiffEntry struct {
	Path   string
	Change ChangeType
	Before any
	After  any
}

// ArrayStrategy selects how Merge combines two arrays.
type ArrayStrategy string

const (
	ArrayReplace ArrayStrategy = "replace"
	ArrayConcat  ArrayStrategy = "concat"
)

// ConflictStrategy selects which side wins when scalars disagree.
type ConflictStrategy string

const (
	ConflictIncoming ConflictStrategy = "incoming"
	ConflictBase     ConflictStrategy = "base"
)

// MergeOptions configures Merge. The zero value means replace arrays and
// prefer the incoming side on conflict.
type MergeOptions struct {
	Array    ArrayStrategy
	Conflict ConflictStrategy
}

// MergeResult is the merged value plus the sorted, de-duplicated set of paths
// where the two sides disagreed.
type MergeResult struct {
	Value     any
	Conflicts []string
}

// AssetKind distinguishes the two recognized asset shapes.
type AssetKind string

const (
	AssetString  AssetKind = "string"
	AssetLocator AssetKind = "locator"
)

// AssetRef is one media reference found during an asset walk: a bare URL or
// data-URI string, or a locator object.
type AssetRef struct {
	Path  string
	Kind  AssetKind
	Value any
}

// AssetMapper rewrites a single recognized asset node. Whatever it returns
// replaces the node in the rewritten tree.
type AssetMapper func(ref AssetRef) any

// LintResult is the outcome of the heuristic quality scan. Warnings are
// advisory; OK is true only when nothing was flagged.
type LintResult struct {
	OK       bool
	Warnings []string
}
