package uec

import "fmt"

// downgradedFields are the v2 payload fields with no v1 equivalent. Each one
// present is dropped with a warning.
var downgradedFields = []string{
	"fallbackModelId",
	"nickname",
	"creator",
	"creatorNotes",
	"creatorNotesMultilingual",
	"source",
	"characterBook",
}

// Downgrade rewrites a v2 card into the v1 shape. The only supported target
// is the v1 version; a card already at v1 is just normalized. Every lossy
// step is reported as a human-readable warning on the result; warnings are
// advisory and never prevent the transform from completing.
//
// Unless keepRules is set, an absent rules array is synthesized as empty so
// the result satisfies strict v1 expectations.
func Downgrade(card map[string]any, targetVersion string, keepRules bool) (DowngradeResult, error) {
	if targetVersion != SchemaVersion {
		return DowngradeResult{}, fmt.Errorf("%w: unsupported target version: %s", ErrInvalidInput, targetVersion)
	}

	version := cardVersion(card)
	if version == any(SchemaVersion) {
		normalized, _ := NormalizeCard(card).(map[string]any)
		return DowngradeResult{Card: normalized, Warnings: []string{}}, nil
	}
	if version != any(SchemaVersionV2) {
		return DowngradeResult{}, fmt.Errorf("%w: unsupported source version: %v", ErrInvalidInput, version)
	}

	warnings := []string{}
	next := shallowCopy(card)

	schemaObj, _ := card["schema"].(map[string]any)
	schema := shallowCopy(schemaObj)
	schema["version"] = SchemaVersion
	next["schema"] = schema

	payloadObj, _ := next["payload"].(map[string]any)
	payload := shallowCopy(payloadObj)

	if sceneObj, ok := payload["scene"].(map[string]any); ok {
		scene := shallowCopy(sceneObj)
		if selected, has := scene["selectedVariant"]; has {
			delete(scene, "selectedVariant")
			if isVariantSentinel(selected) {
				scene["selectedVariantId"] = nil
			} else {
				scene["selectedVariantId"] = selected
			}
		}
		payload["scenes"] = []any{scene}
		if scene["id"] != nil {
			payload["defaultSceneId"] = scene["id"]
		}
	}
	delete(payload, "scene")

	if templateID, has := payload["promptTemplateId"]; has && templateID != nil {
		if payload["systemPrompt"] == nil {
			payload["systemPrompt"] = fmt.Sprintf("%s%v", promptIDPrefix, templateID)
		}
		warnings = append(warnings, "payload.promptTemplateId was mapped to v1 systemPrompt and then removed")
	}
	delete(payload, "promptTemplateId")

	for _, field := range downgradedFields {
		if _, has := payload[field]; has {
			delete(payload, field)
			warnings = append(warnings, fmt.Sprintf("payload.%s is not supported in v1 and was removed", field))
		}
	}

	if _, has := payload["rules"]; !has && !keepRules {
		payload["rules"] = []any{}
	}

	next["payload"] = payload

	metaObj, _ := next["meta"].(map[string]any)
	meta := shallowCopy(metaObj)
	for _, field := range []string{"originalCreatedAt", "originalUpdatedAt", "originalSource"} {
		if meta[field] != nil {
			warnings = append(warnings, fmt.Sprintf("meta.%s was removed for v1 compatibility", field))
		}
		delete(meta, field)
	}
	next["meta"] = meta

	return DowngradeResult{Card: next, Warnings: warnings}, nil
}

// Upgrade moves a card to the requested version: same-version is a
// normalize-only no-op, v1 to v2 delegates to ConvertV1ToV2, v2 to v1
// delegates to Downgrade with its warnings discarded. Any other pairing is
// caller misuse.
func Upgrade(card map[string]any, targetVersion string) (map[string]any, error) {
	version := cardVersion(card)

	switch targetVersion {
	case SchemaVersionV2:
		switch version {
		case any(SchemaVersionV2):
			normalized, _ := NormalizeCard(card).(map[string]any)
			return normalized, nil
		case any(SchemaVersion):
			return ConvertV1ToV2(card)
		default:
			return nil, fmt.Errorf("%w: unsupported source version: %v", ErrInvalidInput, version)
		}
	case SchemaVersion:
		result, err := Downgrade(card, targetVersion, false)
		if err != nil {
			return nil, err
		}
		return result.Card, nil
	default:
		return nil, fmt.Errorf("%w: unsupported target version: %s", ErrInvalidInput, targetVersion)
	}
}

// cardVersion reads schema.version without validating anything.
func cardVersion(card map[string]any) any {
	schema, _ := card["schema"].(map[string]any)
	if schema == nil {
		return nil
	}
	return schema["version"]
}
