package uec

import (
	"fmt"
	"strings"
)

// Validate checks a value against the card schema selected by its own
// kind/version pair. It never fails hard: malformed input of any shape comes
// back as path-addressed errors, accumulated across the entire pass with no
// short-circuiting. Strict mode promotes several optional fields to required
// without changing any type rule, so every lenient error is also a strict
// error.
//
// Documents carrying an unknown schema.version fail the header check but are
// not measured against payload/meta rules they do not define; only the gross
// structural checks still apply to them.
func Validate(value any, strict bool) ValidationResult {
	var errs []string

	obj, ok := value.(map[string]any)
	if !ok {
		pushError(&errs, "root", "must be an object")
		return ValidationResult{OK: false, Errors: errs}
	}

	version, hasVersion := validateSchemaHeader(obj["schema"], &errs)

	kind := obj["kind"]
	if kind != KindCharacter && kind != KindPersona {
		pushError(&errs, "kind", `must be "character" or "persona"`)
	}

	isV2 := hasVersion && version == SchemaVersionV2
	knownVersion := hasVersion && KnownVersions[version]

	payload, payloadIsObject := obj["payload"].(map[string]any)
	if !payloadIsObject {
		pushError(&errs, "payload", "must be an object")
	} else if knownVersion {
		switch kind {
		case KindCharacter:
			if isV2 {
				validateCharacterPayloadV2(payload, &errs, strict)
			} else {
				validateCharacterPayloadV1(payload, &errs, strict)
			}
		case KindPersona:
			if isV2 {
				validatePersonaPayloadV2(payload, &errs, strict)
			} else {
				validatePersonaPayloadV1(payload, &errs, strict)
			}
		}
	}

	if settings := obj["app_specific_settings"]; settings != nil && !IsPlainObject(settings) {
		pushError(&errs, "app_specific_settings", "must be an object")
	}

	if isV2 && knownVersion {
		validateMetaV2(obj["meta"], &errs, strict)
	} else {
		validateMeta(obj["meta"], &errs)
	}

	if ext := obj["extensions"]; ext != nil && !IsPlainObject(ext) {
		pushError(&errs, "extensions", "must be an object")
	}

	return ValidationResult{OK: len(errs) == 0, Errors: errs}
}

// ValidateStrict runs Validate with the strict profile.
func ValidateStrict(value any) ValidationResult {
	return Validate(value, true)
}

// ValidateAtVersion runs full validation and then additionally fails when the
// document's actual schema.version differs from the requested one, even if
// the document is otherwise internally valid.
func ValidateAtVersion(value any, version string, strict bool) ValidationResult {
	result := Validate(value, strict)

	var current any
	if obj, ok := value.(map[string]any); ok {
		if schema, ok := obj["schema"].(map[string]any); ok {
			current = schema["version"]
		}
	}

	if actual, ok := current.(string); !ok || actual != version {
		result.OK = false
		result.Errors = append(result.Errors,
			fmt.Sprintf(`schema.version: expected %q but received "%v"`, version, current))
	}
	return result
}

// IsCard reports whether value validates as a card.
func IsCard(value any, strict bool) bool {
	return Validate(value, strict).OK
}

// IsCharacterCard reports whether value is a valid card of kind character.
func IsCharacterCard(value any, strict bool) bool {
	obj, ok := value.(map[string]any)
	return IsCard(value, strict) && ok && obj["kind"] == KindCharacter
}

// IsPersonaCard reports whether value is a valid card of kind persona.
func IsPersonaCard(value any, strict bool) bool {
	obj, ok := value.(map[string]any)
	return IsCard(value, strict) && ok && obj["kind"] == KindPersona
}

// AssertCard returns the value unchanged when it validates, or a hard error
// summarizing the accumulated problems.
func AssertCard(value any, strict bool) (map[string]any, error) {
	result := Validate(value, strict)
	if !result.OK {
		return nil, fmt.Errorf("%w: invalid card: %s", ErrInvalidInput, strings.Join(result.Errors, "; "))
	}
	return value.(map[string]any), nil
}

// validateSchemaHeader checks the schema object and extracts the version
// string when one is present, regardless of whether it is a known version.
func validateSchemaHeader(schema any, errs *[]string) (string, bool) {
	obj, ok := schema.(map[string]any)
	if !ok {
		pushError(errs, "schema", "must be an object")
		return "", false
	}

	if !IsString(obj["name"]) {
		pushError(errs, "schema.name", "must be a string")
	} else if obj["name"] != SchemaName {
		pushError(errs, "schema.name", fmt.Sprintf("must be %q", SchemaName))
	}

	if !IsString(obj["version"]) {
		pushError(errs, "schema.version", "must be a string")
	} else if !IsKnownVersion(obj["version"]) {
		pushError(errs, "schema.version", fmt.Sprintf("unknown version %q", obj["version"]))
	}

	if obj["compat"] != nil && !IsString(obj["compat"]) {
		pushError(errs, "schema.compat", "must be a string if provided")
	}

	version, isString := obj["version"].(string)
	return version, isString
}

func validateMeta(meta any, errs *[]string) {
	if meta == nil {
		return
	}
	obj, ok := meta.(map[string]any)
	if !ok {
		pushError(errs, "meta", "must be an object")
		return
	}

	if !OptionalNumber(obj["createdAt"]) {
		pushError(errs, "meta.createdAt", "must be a number")
	}
	if !OptionalNumber(obj["updatedAt"]) {
		pushError(errs, "meta.updatedAt", "must be a number")
	}
	if !OptionalString(obj["source"]) {
		pushError(errs, "meta.source", "must be a string")
	}
	if obj["authors"] != nil && !OptionalStringList(obj["authors"]) {
		pushError(errs, "meta.authors", "must be an array of strings")
	}
	if !OptionalString(obj["license"]) {
		pushError(errs, "meta.license", "must be a string")
	}
}

// validateMetaV2 layers the v2 provenance fields on top of the common meta
// rules. A missing meta block in strict mode still owes the two required
// provenance timestamps.
func validateMetaV2(meta any, errs *[]string, strict bool) {
	validateMeta(meta, errs)

	obj, isObject := meta.(map[string]any)
	if !isObject {
		if strict {
			pushError(errs, "meta.originalCreatedAt", "is required in strict mode")
			pushError(errs, "meta.originalUpdatedAt", "is required in strict mode")
		}
		return
	}

	if !OptionalNumber(obj["originalCreatedAt"]) {
		pushError(errs, "meta.originalCreatedAt", "must be a number")
	}
	if !OptionalNumber(obj["originalUpdatedAt"]) {
		pushError(errs, "meta.originalUpdatedAt", "must be a number")
	}
	if !OptionalString(obj["originalSource"]) {
		pushError(errs, "meta.originalSource", "must be a string")
	}

	if strict {
		if !IsNumber(obj["originalCreatedAt"]) {
			pushError(errs, "meta.originalCreatedAt", "is required in strict mode")
		}
		if !IsNumber(obj["originalUpdatedAt"]) {
			pushError(errs, "meta.originalUpdatedAt", "is required in strict mode")
		}
	}
}

// validateAssetLocator accepts null, a plain string, or a locator object with
// a recognized type plus its type-specific required field.
func validateAssetLocator(value any, path string, errs *[]string) {
	if value == nil || IsString(value) {
		return
	}
	obj, ok := value.(map[string]any)
	if !ok {
		pushError(errs, path, "must be a string, object, or null")
		return
	}

	locatorType, _ := obj["type"].(string)
	switch locatorType {
	case AssetTypeInlineBase64, AssetTypeRemoteURL, AssetTypeAssetRef:
	default:
		pushError(errs, path+".type", "must be one of: inline_base64, remote_url, asset_ref")
		return
	}

	if !OptionalString(obj["mimeType"]) {
		pushError(errs, path+".mimeType", "must be a string if provided")
	}

	switch locatorType {
	case AssetTypeInlineBase64:
		if !IsString(obj["data"]) {
			pushError(errs, path+".data", "is required for inline_base64")
		}
	case AssetTypeRemoteURL:
		if !IsString(obj["url"]) {
			pushError(errs, path+".url", "is required for remote_url")
		}
	case AssetTypeAssetRef:
		if !IsString(obj["assetId"]) {
			pushError(errs, path+".assetId", "is required for asset_ref")
		}
	}
}

// validateSceneBase covers the fields shared by v1 and v2 scenes. It returns
// false when the scene is not even an object, in which case version-specific
// checks are skipped.
func validateSceneBase(scene any, path string, errs *[]string, strict bool) bool {
	obj, ok := scene.(map[string]any)
	if !ok {
		pushError(errs, path, "must be an object")
		return false
	}

	if !IsString(obj["id"]) {
		pushError(errs, path+".id", "must be a string")
	}
	if !IsString(obj["content"]) {
		pushError(errs, path+".content", "must be a string")
	}
	if !OptionalString(obj["direction"]) {
		pushError(errs, path+".direction", "must be a string")
	}
	if !OptionalNumber(obj["createdAt"]) {
		pushError(errs, path+".createdAt", "must be a number")
	}

	if variants := obj["variants"]; variants != nil {
		arr, ok := variants.([]any)
		if !ok {
			pushError(errs, path+".variants", "must be an array")
		} else {
			for i, variant := range arr {
				variantPath := indexPath(path+".variants", i)
				vobj, ok := variant.(map[string]any)
				if !ok {
					pushError(errs, variantPath, "must be an object")
					continue
				}
				if !IsString(vobj["id"]) {
					pushError(errs, variantPath+".id", "must be a string")
				}
				if !IsString(vobj["content"]) {
					pushError(errs, variantPath+".content", "must be a string")
				}
				if !IsNumber(vobj["createdAt"]) {
					pushError(errs, variantPath+".createdAt", "must be a number")
				}
			}
		}
	}

	if strict {
		if !IsString(obj["id"]) {
			pushError(errs, path+".id", "is required")
		}
		if !IsString(obj["content"]) {
			pushError(errs, path+".content", "is required")
		}
	}
	return true
}

func validateScene(scene any, path string, errs *[]string, strict bool) {
	if !validateSceneBase(scene, path, errs, strict) {
		return
	}
	obj := scene.(map[string]any)
	if obj["selectedVariantId"] != nil && !OptionalString(obj["selectedVariantId"]) {
		pushError(errs, path+".selectedVariantId", "must be a string or null")
	}
}

func validateSceneV2(scene any, path string, errs *[]string, strict bool) {
	if !validateSceneBase(scene, path, errs, strict) {
		return
	}
	obj := scene.(map[string]any)
	selected := obj["selectedVariant"]
	if selected != nil && !isVariantSentinel(selected) && !IsString(selected) {
		pushError(errs, path+".selectedVariant", "must be 0 or a variant ID string")
	}
}

// isVariantSentinel recognizes v2's "no variant selected" marker in any
// numeric representation the value model can hand us.
func isVariantSentinel(v any) bool {
	n, ok := asNumber(v)
	return ok && n == 0
}

func validateVoiceConfigV1(voiceConfig any, errs *[]string) {
	if voiceConfig == nil {
		return
	}
	obj, ok := voiceConfig.(map[string]any)
	if !ok {
		pushError(errs, "payload.voiceConfig", "must be an object")
		return
	}

	if !IsString(obj["source"]) {
		pushError(errs, "payload.voiceConfig.source", "must be a string")
	}
	if !IsString(obj["providerId"]) {
		pushError(errs, "payload.voiceConfig.providerId", "must be a string")
	}
	if !IsString(obj["voiceId"]) {
		pushError(errs, "payload.voiceConfig.voiceId", "must be a string")
	}
}

func validateVoiceConfigV2(voiceConfig any, errs *[]string) {
	if voiceConfig == nil {
		return
	}
	obj, ok := voiceConfig.(map[string]any)
	if !ok {
		pushError(errs, "payload.voiceConfig", "must be an object")
		return
	}

	if !IsString(obj["source"]) {
		pushError(errs, "payload.voiceConfig.source", "must be a string")
	}
	for _, field := range []string{"providerId", "voiceId", "userVoiceId", "modelId", "voiceName"} {
		if !OptionalString(obj[field]) {
			pushError(errs, "payload.voiceConfig."+field, "must be a string if provided")
		}
	}
}

func validateCharacterBook(book any, errs *[]string) {
	if book == nil {
		return
	}
	obj, ok := book.(map[string]any)
	if !ok {
		pushError(errs, "payload.characterBook", "must be an object")
		return
	}

	if !OptionalString(obj["name"]) {
		pushError(errs, "payload.characterBook.name", "must be a string or null")
	}
	if !OptionalString(obj["description"]) {
		pushError(errs, "payload.characterBook.description", "must be a string or null")
	}

	entries := obj["entries"]
	if entries == nil {
		return
	}
	arr, ok := entries.([]any)
	if !ok {
		pushError(errs, "payload.characterBook.entries", "must be an array")
		return
	}

	for i, entry := range arr {
		path := indexPath("payload.characterBook.entries", i)
		eobj, ok := entry.(map[string]any)
		if !ok {
			pushError(errs, path, "must be an object")
			continue
		}

		if !OptionalString(eobj["name"]) {
			pushError(errs, path+".name", "must be a string or null")
		}
		if eobj["keys"] != nil && !OptionalStringList(eobj["keys"]) {
			pushError(errs, path+".keys", "must be an array of strings")
		}
		if eobj["secondary_keys"] != nil && !OptionalStringList(eobj["secondary_keys"]) {
			pushError(errs, path+".secondary_keys", "must be an array of strings")
		}
		if !IsString(eobj["content"]) {
			pushError(errs, path+".content", "must be a string")
		}
		if !OptionalBool(eobj["enabled"]) {
			pushError(errs, path+".enabled", "must be a boolean")
		}
		if !OptionalNumber(eobj["insertion_order"]) {
			pushError(errs, path+".insertion_order", "must be a number")
		}
		if !OptionalBool(eobj["case_sensitive"]) {
			pushError(errs, path+".case_sensitive", "must be a boolean")
		}
		if !OptionalNumber(eobj["priority"]) {
			pushError(errs, path+".priority", "must be a number")
		}
		if !OptionalBool(eobj["constant"]) {
			pushError(errs, path+".constant", "must be a boolean")
		}
	}
}

func validateCharacterPayloadV1(payload map[string]any, errs *[]string, strict bool) {
	if !IsString(payload["id"]) {
		pushError(errs, "payload.id", "must be a string")
	}
	if !IsString(payload["name"]) {
		pushError(errs, "payload.name", "must be a string")
	}
	if !OptionalString(payload["description"]) {
		pushError(errs, "payload.description", "must be a string")
	}
	if !OptionalString(payload["definitions"]) {
		pushError(errs, "payload.definitions", "must be a string")
	}
	if !OptionalStringList(payload["tags"]) {
		pushError(errs, "payload.tags", "must be an array of strings")
	}
	if !OptionalString(payload["avatar"]) {
		pushError(errs, "payload.avatar", "must be a string or null")
	}
	if !OptionalString(payload["chatBackground"]) {
		pushError(errs, "payload.chatBackground", "must be a string or null")
	}
	if !OptionalStringList(payload["rules"]) {
		pushError(errs, "payload.rules", "must be an array of strings")
	}

	if scenes := payload["scenes"]; scenes != nil {
		arr, ok := scenes.([]any)
		if !ok {
			pushError(errs, "payload.scenes", "must be an array")
		} else {
			for i, scene := range arr {
				validateScene(scene, indexPath("payload.scenes", i), errs, strict)
			}
		}
	}

	if !OptionalString(payload["defaultSceneId"]) {
		pushError(errs, "payload.defaultSceneId", "must be a string or null")
	}
	if !OptionalString(payload["defaultModelId"]) {
		pushError(errs, "payload.defaultModelId", "must be a string or null")
	}
	if !OptionalString(payload["systemPrompt"]) {
		pushError(errs, "payload.systemPrompt", "must be a string or null")
	}

	validateVoiceConfigV1(payload["voiceConfig"], errs)

	if !OptionalBool(payload["voiceAutoplay"]) {
		pushError(errs, "payload.voiceAutoplay", "must be a boolean")
	}
	if !OptionalNumber(payload["createdAt"]) {
		pushError(errs, "payload.createdAt", "must be a number")
	}
	if !OptionalNumber(payload["updatedAt"]) {
		pushError(errs, "payload.updatedAt", "must be a number")
	}

	if strict {
		if !IsString(payload["description"]) {
			pushError(errs, "payload.description", "is required in strict mode")
		}
		if _, ok := payload["rules"].([]any); !ok {
			pushError(errs, "payload.rules", "is required in strict mode")
		}
		if _, ok := payload["scenes"].([]any); !ok {
			pushError(errs, "payload.scenes", "is required in strict mode")
		}
		if !IsNumber(payload["createdAt"]) {
			pushError(errs, "payload.createdAt", "is required in strict mode")
		}
		if !IsNumber(payload["updatedAt"]) {
			pushError(errs, "payload.updatedAt", "is required in strict mode")
		}
	}
}

func validateCharacterPayloadV2(payload map[string]any, errs *[]string, strict bool) {
	if !IsString(payload["id"]) {
		pushError(errs, "payload.id", "must be a string")
	}
	if !IsString(payload["name"]) {
		pushError(errs, "payload.name", "must be a string")
	}
	if !OptionalString(payload["description"]) {
		pushError(errs, "payload.description", "must be a string")
	}
	if !OptionalString(payload["definitions"]) {
		pushError(errs, "payload.definitions", "must be a string")
	}
	if !OptionalStringList(payload["tags"]) {
		pushError(errs, "payload.tags", "must be an array of strings")
	}

	validateAssetLocator(payload["avatar"], "payload.avatar", errs)
	validateAssetLocator(payload["chatBackground"], "payload.chatBackground", errs)

	if strict && payload["rules"] != nil {
		pushError(errs, "payload.rules", "is not a valid field in v2; use systemPrompt or characterBook instead")
	}

	if payload["scene"] != nil {
		validateSceneV2(payload["scene"], "payload.scene", errs, strict)
	}

	for _, field := range []string{"defaultModelId", "fallbackModelId", "systemPrompt", "promptTemplateId", "nickname", "creator", "creatorNotes"} {
		if !OptionalString(payload[field]) {
			pushError(errs, "payload."+field, "must be a string or null")
		}
	}

	if !OptionalObject(payload["creatorNotesMultilingual"]) {
		pushError(errs, "payload.creatorNotesMultilingual", "must be an object if provided")
	}
	if payload["source"] != nil && !OptionalStringList(payload["source"]) {
		pushError(errs, "payload.source", "must be an array of strings")
	}

	validateVoiceConfigV2(payload["voiceConfig"], errs)

	if !OptionalBool(payload["voiceAutoplay"]) {
		pushError(errs, "payload.voiceAutoplay", "must be a boolean")
	}

	validateCharacterBook(payload["characterBook"], errs)

	if !OptionalNumber(payload["createdAt"]) {
		pushError(errs, "payload.createdAt", "must be a number")
	}
	if !OptionalNumber(payload["updatedAt"]) {
		pushError(errs, "payload.updatedAt", "must be a number")
	}

	if strict {
		if !IsString(payload["description"]) {
			pushError(errs, "payload.description", "is required in strict mode")
		}
		if !IsPlainObject(payload["scene"]) {
			pushError(errs, "payload.scene", "is required in strict mode")
		}
		if !IsNumber(payload["createdAt"]) {
			pushError(errs, "payload.createdAt", "is required in strict mode")
		}
		if !IsNumber(payload["updatedAt"]) {
			pushError(errs, "payload.updatedAt", "is required in strict mode")
		}
	}
}

func validatePersonaPayloadV1(payload map[string]any, errs *[]string, strict bool) {
	if !IsString(payload["id"]) {
		pushError(errs, "payload.id", "must be a string")
	}
	if !IsString(payload["title"]) {
		pushError(errs, "payload.title", "must be a string")
	}
	if !OptionalString(payload["description"]) {
		pushError(errs, "payload.description", "must be a string")
	}
	if !OptionalString(payload["avatar"]) {
		pushError(errs, "payload.avatar", "must be a string or null")
	}
	if !OptionalBool(payload["isDefault"]) {
		pushError(errs, "payload.isDefault", "must be a boolean")
	}
	if !OptionalNumber(payload["createdAt"]) {
		pushError(errs, "payload.createdAt", "must be a number")
	}
	if !OptionalNumber(payload["updatedAt"]) {
		pushError(errs, "payload.updatedAt", "must be a number")
	}

	if strict {
		personaStrictRequired(payload, errs)
	}
}

func validatePersonaPayloadV2(payload map[string]any, errs *[]string, strict bool) {
	if !IsString(payload["id"]) {
		pushError(errs, "payload.id", "must be a string")
	}
	if !IsString(payload["title"]) {
		pushError(errs, "payload.title", "must be a string")
	}
	if !OptionalString(payload["description"]) {
		pushError(errs, "payload.description", "must be a string")
	}

	validateAssetLocator(payload["avatar"], "payload.avatar", errs)

	if !OptionalBool(payload["isDefault"]) {
		pushError(errs, "payload.isDefault", "must be a boolean")
	}
	if !OptionalNumber(payload["createdAt"]) {
		pushError(errs, "payload.createdAt", "must be a number")
	}
	if !OptionalNumber(payload["updatedAt"]) {
		pushError(errs, "payload.updatedAt", "must be a number")
	}

	if strict {
		personaStrictRequired(payload, errs)
	}
}

// personaStrictRequired holds the strict promotions shared by both persona
// shapes.
func personaStrictRequired(payload map[string]any, errs *[]string) {
	if !IsString(payload["description"]) {
		pushError(errs, "payload.description", "is required in strict mode")
	}
	if !IsNumber(payload["createdAt"]) {
		pushError(errs, "payload.createdAt", "is required in strict mode")
	}
	if !IsNumber(payload["updatedAt"]) {
		pushError(errs, "payload.updatedAt", "is required in strict mode")
	}
}
