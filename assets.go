package uec

import "sort"

// ExtractAssets walks the entire document depth-first and collects every
// media reference it recognizes: bare URL/data-URI strings and locator
// objects, wherever they appear. The walk is intentionally generic rather
// than limited to the known asset fields, so references introduced by future
// payload fields or extensions are found without code changes.
//
// Records come back in traversal order: arrays by index, object keys in
// sorted order for determinism.
func ExtractAssets(card any) []AssetRef {
	assets := []AssetRef{}
	walkAssets(card, "", func(ref AssetRef) {
		assets = append(assets, ref)
	})
	return assets
}

// RewriteAssets performs the same traversal as ExtractAssets but replaces
// each recognized asset node with the mapper's return value, structurally
// copying everything else. The mapper receives the kind tag so string and
// locator references can be handled differently.
func RewriteAssets(card any, mapper AssetMapper) any {
	return rewriteAssetsWalk(card, "", mapper)
}

func walkAssets(value any, path string, visit func(AssetRef)) {
	if IsLikelyAssetString(value) {
		visit(AssetRef{Path: path, Kind: AssetString, Value: value})
		return
	}
	if IsAssetLocatorObject(value) {
		visit(AssetRef{Path: path, Kind: AssetLocator, Value: value})
		return
	}

	switch tv := value.(type) {
	case []any:
		for i, item := range tv {
			walkAssets(item, indexPath(path, i), visit)
		}
	case map[string]any:
		for _, key := range sortedKeys(tv) {
			walkAssets(tv[key], childPath(path, key), visit)
		}
	}
}

func rewriteAssetsWalk(value any, path string, mapper AssetMapper) any {
	if IsLikelyAssetString(value) {
		return mapper(AssetRef{Path: path, Kind: AssetString, Value: value})
	}
	if IsAssetLocatorObject(value) {
		return mapper(AssetRef{Path: path, Kind: AssetLocator, Value: value})
	}

	switch tv := value.(type) {
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = rewriteAssetsWalk(item, indexPath(path, i), mapper)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for key, item := range tv {
			out[key] = rewriteAssetsWalk(item, childPath(path, key), mapper)
		}
		return out
	default:
		return value
	}
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
