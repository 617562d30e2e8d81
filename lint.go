package uec

import "strings"

// inlineAssetWarnBytes is the data length above which an inline_base64
// locator is flagged as very large.
const inlineAssetWarnBytes = 200000

// Lint runs heuristic quality checks that validation does not cover. It never
// fails hard and never calls the validator; everything it finds is an
// advisory warning. OK is true only when nothing was flagged.
//
// Checks: whitespace-only description, createdAt after updatedAt in both the
// payload and meta, a v2 scene whose selectedVariant string names no variant
// (the 0 sentinel is never checked), and oversized inline_base64 assets
// anywhere in the tree.
func Lint(card any) LintResult {
	obj, ok := card.(map[string]any)
	if !ok {
		return LintResult{OK: false, Warnings: []string{"root: not a valid UEC object shape"}}
	}
	payload, ok := obj["payload"].(map[string]any)
	if !ok {
		return LintResult{OK: false, Warnings: []string{"root: not a valid UEC object shape"}}
	}

	warnings := []string{}

	if description, ok := payload["description"].(string); ok && strings.TrimSpace(description) == "" {
		warnings = append(warnings, "payload.description is an empty string")
	}

	if created, ok := asNumber(payload["createdAt"]); ok {
		if updated, ok := asNumber(payload["updatedAt"]); ok && created > updated {
			warnings = append(warnings, "payload.createdAt is greater than payload.updatedAt")
		}
	}

	if meta, ok := obj["meta"].(map[string]any); ok {
		if created, ok := asNumber(meta["createdAt"]); ok {
			if updated, ok := asNumber(meta["updatedAt"]); ok && created > updated {
				warnings = append(warnings, "meta.createdAt is greater than meta.updatedAt")
			}
		}
	}

	if warning, flagged := lintSelectedVariant(obj, payload); flagged {
		warnings = append(warnings, warning)
	}

	for _, asset := range ExtractAssets(obj) {
		locator, ok := asset.Value.(map[string]any)
		if asset.Kind != AssetLocator || !ok {
			continue
		}
		if locator["type"] != any(AssetTypeInlineBase64) {
			continue
		}
		if data, ok := locator["data"].(string); ok && len(data) > inlineAssetWarnBytes {
			warnings = append(warnings, asset.Path+": inline_base64 asset is very large")
		}
	}

	return LintResult{OK: len(warnings) == 0, Warnings: warnings}
}

// lintSelectedVariant flags a v2 scene whose string selectedVariant matches
// no variant id. The check is deliberately narrow: it only fires for a
// document at exactly the v2 version with a string selection and an array of
// variants.
func lintSelectedVariant(card, payload map[string]any) (string, bool) {
	schema, _ := card["schema"].(map[string]any)
	if schema == nil || schema["version"] != any(SchemaVersionV2) {
		return "", false
	}
	scene, ok := payload["scene"].(map[string]any)
	if !ok {
		return "", false
	}
	selected, ok := scene["selectedVariant"].(string)
	if !ok {
		return "", false
	}
	variants, ok := scene["variants"].([]any)
	if !ok {
		return "", false
	}

	for _, variant := range variants {
		obj, ok := variant.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := obj["id"].(string); ok && id == selected {
			return "", false
		}
	}
	return "payload.scene.selectedVariant does not match any variant id", true
}
