package uec

// Package uec implements the Unified Entity Card (UEC) document format:
//
// - Schema-aware validation across v1/v2 with lenient and strict profiles (Validate/ValidateStrict/ValidateAtVersion)
// - Bidirectional v1<->v2 conversion with lossy-step warnings (ConvertV1ToV2/Downgrade/Upgrade)
// - Generic tree tooling over arbitrary nested JSON (Diff/Merge/ExtractAssets/RewriteAssets/Lint)
// - Deterministic canonicalization and serialization (NormalizeValue/NormalizeCard/Stringify)
// - Parsing via a pluggable JSON driver plus a YAML source (Parse/ParseBytes/ParseReader/ParseYAML)
//
// Design policy:
// - Keep only public APIs in the root package; the CLI lives under cmd/uec.
// - Every operation is a pure function over the JSON value model (nil, bool,
//   number, string, []any, map[string]any); inputs are never mutated.
// - Validation never fails the process: structural problems accumulate as
//   path-addressed strings. Hard errors are reserved for caller misuse of the
//   converting operations.
//
// Typical usage:
//
//	res := uec.Parse(text, false)
//	if res.OK {
//	    v2, err := uec.ConvertV1ToV2(res.Value)
//	    ...
//	}
