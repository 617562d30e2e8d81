package uec

import "fmt"

// JSONSchema projects the lenient structural rules for one (kind, version)
// pair into a draft-07 JSON Schema document. The projection covers the
// envelope and the payload shape; strict-mode promotions and the lint
// heuristics are out of its reach, so a card accepted here may still fail
// ValidateStrict. Intended for interop with external schema tooling, not as
// a replacement for Validate.
func JSONSchema(kind, version string) (map[string]any, error) {
	if kind != KindCharacter && kind != KindPersona {
		return nil, fmt.Errorf("%w: unsupported kind: %s", ErrInvalidInput, kind)
	}
	if !KnownVersions[version] {
		return nil, fmt.Errorf("%w: unsupported version: %s", ErrInvalidInput, version)
	}

	var payload map[string]any
	switch {
	case kind == KindCharacter && version == SchemaVersion:
		payload = characterPayloadSchemaV1()
	case kind == KindCharacter && version == SchemaVersionV2:
		payload = characterPayloadSchemaV2()
	default:
		payload = personaPayloadSchema(version == SchemaVersionV2)
	}

	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []any{"schema", "kind", "payload"},
		"properties": map[string]any{
			"schema": map[string]any{
				"type":     "object",
				"required": []any{"name", "version"},
				"properties": map[string]any{
					"name":    map[string]any{"const": SchemaName},
					"version": map[string]any{"const": version},
					"compat":  map[string]any{"type": "string"},
				},
			},
			"kind":                  map[string]any{"const": kind},
			"payload":               payload,
			"app_specific_settings": map[string]any{"type": []any{"object", "null"}},
			"meta":                  metaSchema(version == SchemaVersionV2),
			"extensions":            map[string]any{"type": []any{"object", "null"}},
		},
	}, nil
}

func nullable(schema map[string]any) map[string]any {
	return map[string]any{"anyOf": []any{map[string]any{"type": "null"}, schema}}
}

func nullableType(jsonType string) map[string]any {
	return map[string]any{"type": []any{jsonType, "null"}}
}

func stringList() map[string]any {
	return map[string]any{
		"type":  []any{"array", "null"},
		"items": map[string]any{"type": "string"},
	}
}

func locatorSchema() map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": "null"},
			map[string]any{"type": "string"},
			map[string]any{
				"type":     "object",
				"required": []any{"type"},
				"properties": map[string]any{
					"type": map[string]any{
						"enum": []any{AssetTypeInlineBase64, AssetTypeRemoteURL, AssetTypeAssetRef},
					},
					"mimeType": map[string]any{"type": "string"},
					"data":     map[string]any{"type": "string"},
					"url":      map[string]any{"type": "string"},
					"assetId":  map[string]any{"type": "string"},
				},
			},
		},
	}
}

func sceneSchema(v2 bool) map[string]any {
	properties := map[string]any{
		"id":        map[string]any{"type": "string"},
		"content":   map[string]any{"type": "string"},
		"direction": nullableType("string"),
		"createdAt": nullableType("number"),
		"variants": map[string]any{
			"type": []any{"array", "null"},
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "content", "createdAt"},
				"properties": map[string]any{
					"id":        map[string]any{"type": "string"},
					"content":   map[string]any{"type": "string"},
					"createdAt": map[string]any{"type": "number"},
				},
			},
		},
	}
	if v2 {
		properties["selectedVariant"] = map[string]any{
			"anyOf": []any{
				map[string]any{"type": "null"},
				map[string]any{"const": 0},
				map[string]any{"type": "string"},
			},
		}
	} else {
		properties["selectedVariantId"] = nullableType("string")
	}
	return map[string]any{
		"type":       "object",
		"required":   []any{"id", "content"},
		"properties": properties,
	}
}

func metaSchema(v2 bool) map[string]any {
	properties := map[string]any{
		"createdAt": nullableType("number"),
		"updatedAt": nullableType("number"),
		"source":    nullableType("string"),
		"authors":   stringList(),
		"license":   nullableType("string"),
	}
	if v2 {
		properties["originalCreatedAt"] = nullableType("number")
		properties["originalUpdatedAt"] = nullableType("number")
		properties["originalSource"] = nullableType("string")
	}
	return map[string]any{
		"type":       []any{"object", "null"},
		"properties": properties,
	}
}

func characterPayloadSchemaV1() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"id", "name"},
		"properties": map[string]any{
			"id":             map[string]any{"type": "string"},
			"name":           map[string]any{"type": "string"},
			"description":    nullableType("string"),
			"definitions":    nullableType("string"),
			"tags":           stringList(),
			"avatar":         nullableType("string"),
			"chatBackground": nullableType("string"),
			"rules":          stringList(),
			"scenes": map[string]any{
				"type":  []any{"array", "null"},
				"items": sceneSchema(false),
			},
			"defaultSceneId": nullableType("string"),
			"defaultModelId": nullableType("string"),
			"systemPrompt":   nullableType("string"),
			"voiceConfig": nullable(map[string]any{
				"type":     "object",
				"required": []any{"source", "providerId", "voiceId"},
				"properties": map[string]any{
					"source":     map[string]any{"type": "string"},
					"providerId": map[string]any{"type": "string"},
					"voiceId":    map[string]any{"type": "string"},
				},
			}),
			"voiceAutoplay": nullableType("boolean"),
			"createdAt":     nullableType("number"),
			"updatedAt":     nullableType("number"),
		},
	}
}

func characterPayloadSchemaV2() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"id", "name"},
		"properties": map[string]any{
			"id":                       map[string]any{"type": "string"},
			"name":                     map[string]any{"type": "string"},
			"description":              nullableType("string"),
			"definitions":              nullableType("string"),
			"tags":                     stringList(),
			"avatar":                   locatorSchema(),
			"chatBackground":           locatorSchema(),
			"scene":                    nullable(sceneSchema(true)),
			"defaultModelId":           nullableType("string"),
			"fallbackModelId":          nullableType("string"),
			"systemPrompt":             nullableType("string"),
			"promptTemplateId":         nullableType("string"),
			"nickname":                 nullableType("string"),
			"creator":                  nullableType("string"),
			"creatorNotes":             nullableType("string"),
			"creatorNotesMultilingual": nullableType("object"),
			"source":                   stringList(),
			"voiceConfig": nullable(map[string]any{
				"type":     "object",
				"required": []any{"source"},
				"properties": map[string]any{
					"source":      map[string]any{"type": "string"},
					"providerId":  map[string]any{"type": "string"},
					"voiceId":     map[string]any{"type": "string"},
					"userVoiceId": map[string]any{"type": "string"},
					"modelId":     map[string]any{"type": "string"},
					"voiceName":   map[string]any{"type": "string"},
				},
			}),
			"voiceAutoplay": nullableType("boolean"),
			"characterBook": nullable(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        nullableType("string"),
					"description": nullableType("string"),
					"entries": map[string]any{
						"type": []any{"array", "null"},
						"items": map[string]any{
							"type":     "object",
							"required": []any{"content"},
							"properties": map[string]any{
								"name":            nullableType("string"),
								"keys":            stringList(),
								"secondary_keys":  stringList(),
								"content":         map[string]any{"type": "string"},
								"enabled":         nullableType("boolean"),
								"insertion_order": nullableType("number"),
								"case_sensitive":  nullableType("boolean"),
								"priority":        nullableType("number"),
								"constant":        nullableType("boolean"),
							},
						},
					},
				},
			}),
			"createdAt": nullableType("number"),
			"updatedAt": nullableType("number"),
		},
	}
}

func personaPayloadSchema(v2 bool) map[string]any {
	avatar := nullableType("string")
	if v2 {
		avatar = locatorSchema()
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"id", "title"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string"},
			"description": nullableType("string"),
			"avatar":      avatar,
			"isDefault":   nullableType("boolean"),
			"createdAt":   nullableType("number"),
			"updatedAt":   nullableType("number"),
		},
	}
}
