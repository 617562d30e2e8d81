package uec

import (
	"fmt"
	"strings"
)

// ConvertV1ToV2 rewrites a v1 card into the v2 shape. The input must already
// validate as a card and carry the v1 schema version; anything else is caller
// misuse and fails hard with ErrInvalidInput. The card itself is never
// mutated: every container touched by the transform is shallow-copied first.
//
// Lossy rules: rules is dropped (no v2 equivalent); the scenes array
// collapses to the single scene named by defaultSceneId (or the first one),
// with selectedVariantId renamed to selectedVariant and a null selection
// mapped to the sentinel 0; a systemPrompt carrying the "_ID:" prefix is
// split into promptTemplateId; meta gains original* provenance copies without
// losing the originals.
func ConvertV1ToV2(card any) (map[string]any, error) {
	obj, ok := card.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: card must be an object", ErrInvalidInput)
	}

	validation := Validate(obj, false)
	if !validation.OK {
		return nil, fmt.Errorf("%w: card must be a valid v1 UEC: %s",
			ErrInvalidInput, strings.Join(validation.Errors, "; "))
	}

	schema, _ := obj["schema"].(map[string]any)
	if schema == nil || schema["version"] != any(SchemaVersion) {
		return nil, fmt.Errorf("%w: card must be schema version %q to convert",
			ErrInvalidInput, SchemaVersion)
	}

	next := shallowCopy(obj)

	nextSchema := shallowCopy(schema)
	nextSchema["version"] = SchemaVersionV2
	next["schema"] = nextSchema

	oldPayload, _ := obj["payload"].(map[string]any)
	payload := shallowCopy(oldPayload)

	delete(payload, "rules")

	if _, hasScenes := payload["scenes"]; hasScenes {
		if scenes, ok := payload["scenes"].([]any); ok && len(scenes) > 0 {
			picked := pickDefaultScene(scenes, payload["defaultSceneId"])
			if sceneObj, ok := picked.(map[string]any); ok {
				scene := shallowCopy(sceneObj)
				if selected, has := scene["selectedVariantId"]; has {
					delete(scene, "selectedVariantId")
					if selected == nil {
						scene["selectedVariant"] = 0
					} else {
						scene["selectedVariant"] = selected
					}
				}
				payload["scene"] = scene
			}
		}
		delete(payload, "scenes")
	}

	delete(payload, "defaultSceneId")

	if prompt, ok := payload["systemPrompt"].(string); ok && strings.HasPrefix(prompt, promptIDPrefix) {
		payload["promptTemplateId"] = strings.TrimPrefix(prompt, promptIDPrefix)
		payload["systemPrompt"] = nil
	}

	oldMeta, _ := obj["meta"].(map[string]any)
	meta := shallowCopy(oldMeta)
	if meta["originalCreatedAt"] == nil && IsNumber(oldMeta["createdAt"]) {
		meta["originalCreatedAt"] = oldMeta["createdAt"]
	}
	if meta["originalUpdatedAt"] == nil && IsNumber(oldMeta["updatedAt"]) {
		meta["originalUpdatedAt"] = oldMeta["updatedAt"]
	}
	if meta["originalSource"] == nil && IsString(oldMeta["source"]) {
		meta["originalSource"] = oldMeta["source"]
	}

	next["payload"] = payload
	next["meta"] = meta
	return next, nil
}

// promptIDPrefix marks a v1 systemPrompt that actually names a prompt
// template rather than carrying prompt text.
const promptIDPrefix = "_ID:"

// pickDefaultScene resolves which v1 scene survives the collapse: the one
// whose id matches defaultSceneId when such a scene exists, else the first.
func pickDefaultScene(scenes []any, defaultSceneID any) any {
	if id, ok := defaultSceneID.(string); ok {
		for _, scene := range scenes {
			if obj, ok := scene.(map[string]any); ok && obj["id"] == any(id) {
				return scene
			}
		}
	}
	return scenes[0]
}

// shallowCopy clones one object level; a nil input yields an empty map so
// transforms can always write into the result.
func shallowCopy(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	return out
}
