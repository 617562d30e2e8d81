package uec

import (
	"fmt"
	"strings"
)

// Options carries the optional envelope blocks shared by every factory. Any
// nil block becomes an empty object on the created card.
type Options struct {
	Schema              map[string]any
	AppSpecificSettings map[string]any
	Meta                map[string]any
	Extensions          map[string]any
	// SystemPromptIsID marks a character v1 payload whose systemPrompt names
	// a prompt template; the factory prefixes it with "_ID:" so the v2
	// converter can split it later.
	SystemPromptIsID bool
}

// NewCard assembles a fresh card envelope around the given payload. The
// schema defaults to name "UEC" at v1 unless the supplied schema block asks
// for v2; caller-provided schema fields win over the defaults.
func NewCard(kind string, payload map[string]any, opts Options) (map[string]any, error) {
	if kind == "" {
		return nil, fmt.Errorf("%w: kind is required", ErrInvalidInput)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload must be an object", ErrInvalidInput)
	}

	isV2 := opts.Schema != nil && opts.Schema["version"] == any(SchemaVersionV2)

	version := SchemaVersion
	if isV2 {
		version = SchemaVersionV2
	}
	schema := map[string]any{
		"name":    SchemaName,
		"version": version,
	}
	for key, value := range opts.Schema {
		schema[key] = value
	}

	outPayload := payload
	if kind == KindCharacter && !isV2 {
		outPayload = normalizeSystemPrompt(payload, opts.SystemPromptIsID)
	}

	return map[string]any{
		"schema":                schema,
		"kind":                  kind,
		"payload":               outPayload,
		"app_specific_settings": orEmpty(opts.AppSpecificSettings),
		"meta":                  orEmpty(opts.Meta),
		"extensions":            orEmpty(opts.Extensions),
	}, nil
}

// NewCharacterCard builds a character card at v1.
func NewCharacterCard(payload map[string]any, opts Options) (map[string]any, error) {
	return NewCard(KindCharacter, payload, opts)
}

// NewPersonaCard builds a persona card at v1.
func NewPersonaCard(payload map[string]any, opts Options) (map[string]any, error) {
	return NewCard(KindPersona, payload, opts)
}

// NewCharacterCardV2 builds a character card pinned to v2 regardless of what
// the supplied schema block says.
func NewCharacterCardV2(payload map[string]any, opts Options) (map[string]any, error) {
	opts.Schema = withVersion(opts.Schema, SchemaVersionV2)
	return NewCard(KindCharacter, payload, opts)
}

// NewPersonaCardV2 builds a persona card pinned to v2.
func NewPersonaCardV2(payload map[string]any, opts Options) (map[string]any, error) {
	opts.Schema = withVersion(opts.Schema, SchemaVersionV2)
	return NewCard(KindPersona, payload, opts)
}

// normalizeSystemPrompt applies the "_ID:" prefix convention to a character
// v1 payload whose systemPrompt carries a template id. Already-prefixed or
// non-string prompts pass through untouched.
func normalizeSystemPrompt(payload map[string]any, systemPromptIsID bool) map[string]any {
	if !systemPromptIsID {
		return payload
	}
	prompt, ok := payload["systemPrompt"].(string)
	if !ok || strings.HasPrefix(prompt, promptIDPrefix) {
		return payload
	}
	next := shallowCopy(payload)
	next["systemPrompt"] = promptIDPrefix + prompt
	return next
}

func withVersion(schema map[string]any, version string) map[string]any {
	next := shallowCopy(schema)
	next["version"] = version
	return next
}

func orEmpty(obj map[string]any) map[string]any {
	if obj == nil {
		return map[string]any{}
	}
	return obj
}
