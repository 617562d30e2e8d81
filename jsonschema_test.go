package uec_test

import (
	"encoding/json"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	uec "github.com/LettuceAI/Unified-Entity-Cards"
)

func compileProjection(t *testing.T, kind, version string) *jsonschema.Schema {
	t.Helper()
	doc, err := uec.JSONSchema(kind, version)
	require.NoError(t, err)

	text, err := json.Marshal(doc)
	require.NoError(t, err)

	schema, err := jsonschema.CompileString("uec.schema.json", string(text))
	require.NoError(t, err, "projection must be a compilable draft-07 schema")
	return schema
}

// jsonRoundTrip re-decodes a fixture through encoding/json so the instance
// uses exactly the value kinds the schema validator expects.
func jsonRoundTrip(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestJSONSchema_CompilesForAllShapes(t *testing.T) {
	for _, kind := range []string{uec.KindCharacter, uec.KindPersona} {
		for _, version := range []string{uec.SchemaVersion, uec.SchemaVersionV2} {
			compileProjection(t, kind, version)
		}
	}
}

func TestJSONSchema_AcceptsValidCards(t *testing.T) {
	characterV1 := compileProjection(t, uec.KindCharacter, uec.SchemaVersion)
	require.NoError(t, characterV1.Validate(jsonRoundTrip(t, validCharacterV1())))

	characterV2 := compileProjection(t, uec.KindCharacter, uec.SchemaVersionV2)
	require.NoError(t, characterV2.Validate(jsonRoundTrip(t, validCharacterV2())))

	persona, err := uec.NewPersonaCard(map[string]any{"id": "p1", "title": "Me"}, uec.Options{})
	require.NoError(t, err)
	personaV1 := compileProjection(t, uec.KindPersona, uec.SchemaVersion)
	require.NoError(t, personaV1.Validate(jsonRoundTrip(t, persona)))
}

func TestJSONSchema_RejectsWrongShape(t *testing.T) {
	characterV1 := compileProjection(t, uec.KindCharacter, uec.SchemaVersion)

	missingName := jsonRoundTrip(t, map[string]any{
		"schema":  map[string]any{"name": "UEC", "version": "1.0"},
		"kind":    "character",
		"payload": map[string]any{"id": "c1"},
	})
	require.Error(t, characterV1.Validate(missingName))

	wrongKind := jsonRoundTrip(t, validCharacterV1())
	wrongKind.(map[string]any)["kind"] = "persona"
	require.Error(t, characterV1.Validate(wrongKind))
}

func TestJSONSchema_UnsupportedInputs(t *testing.T) {
	_, err := uec.JSONSchema("robot", uec.SchemaVersion)
	require.ErrorIs(t, err, uec.ErrInvalidInput)
	_, err = uec.JSONSchema(uec.KindCharacter, "9.9")
	require.ErrorIs(t, err, uec.ErrInvalidInput)
}
