package uec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	uec "github.com/LettuceAI/Unified-Entity-Cards"
)

func TestConvertV1ToV2_RewritesShape(t *testing.T) {
	card := validCharacterV1()
	card["payload"].(map[string]any)["scenes"] = []any{
		map[string]any{"id": "scene-1", "content": "first"},
		map[string]any{"id": "scene-2", "content": "second", "selectedVariantId": "v7"},
	}
	card["payload"].(map[string]any)["defaultSceneId"] = "scene-2"
	card["meta"] = map[string]any{"createdAt": 10.0, "updatedAt": 20.0, "source": "import"}

	v2, err := uec.ConvertV1ToV2(card)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	schema := v2["schema"].(map[string]any)
	if schema["version"] != "2.0" {
		t.Errorf("expected version 2.0, got %v", schema["version"])
	}

	payload := v2["payload"].(map[string]any)
	if _, has := payload["rules"]; has {
		t.Errorf("rules must be dropped")
	}
	if _, has := payload["scenes"]; has {
		t.Errorf("scenes must be dropped")
	}
	if _, has := payload["defaultSceneId"]; has {
		t.Errorf("defaultSceneId must be dropped")
	}

	scene := payload["scene"].(map[string]any)
	if scene["id"] != "scene-2" {
		t.Errorf("expected defaultSceneId to pick scene-2, got %v", scene["id"])
	}
	if scene["selectedVariant"] != "v7" {
		t.Errorf("expected selectedVariant v7, got %v", scene["selectedVariant"])
	}
	if _, has := scene["selectedVariantId"]; has {
		t.Errorf("selectedVariantId must be renamed away")
	}

	meta := v2["meta"].(map[string]any)
	for field, want := range map[string]any{
		"createdAt":         10.0,
		"originalCreatedAt": 10.0,
		"originalUpdatedAt": 20.0,
		"originalSource":    "import",
	} {
		if meta[field] != want {
			t.Errorf("meta.%s: expected %v, got %v", field, want, meta[field])
		}
	}
}

func TestConvertV1ToV2_NullVariantSelectionBecomesSentinel(t *testing.T) {
	v2, err := uec.ConvertV1ToV2(validCharacterV1())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	scene := v2["payload"].(map[string]any)["scene"].(map[string]any)
	if scene["selectedVariant"] != 0 {
		t.Errorf("null selection must map to sentinel 0, got %v", scene["selectedVariant"])
	}
}

func TestConvertV1ToV2_MissingDefaultSceneFallsBackToFirst(t *testing.T) {
	card := validCharacterV1()
	card["payload"].(map[string]any)["defaultSceneId"] = "no-such-scene"
	v2, err := uec.ConvertV1ToV2(card)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	scene := v2["payload"].(map[string]any)["scene"].(map[string]any)
	if scene["id"] != "scene-1" {
		t.Errorf("expected fallback to first scene, got %v", scene["id"])
	}
}

func TestConvertV1ToV2_EmptyScenesProducesNoScene(t *testing.T) {
	card := validCharacterV1()
	payload := card["payload"].(map[string]any)
	payload["scenes"] = []any{}
	delete(payload, "defaultSceneId")

	v2, err := uec.ConvertV1ToV2(card)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	out := v2["payload"].(map[string]any)
	if _, has := out["scene"]; has {
		t.Errorf("empty scenes must not produce a scene")
	}
	if _, has := out["scenes"]; has {
		t.Errorf("scenes must still be dropped")
	}
}

func TestConvertV1ToV2_SplitsPromptTemplateID(t *testing.T) {
	card := validCharacterV1()
	card["payload"].(map[string]any)["systemPrompt"] = "_ID:tpl-42"
	v2, err := uec.ConvertV1ToV2(card)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	payload := v2["payload"].(map[string]any)
	if payload["promptTemplateId"] != "tpl-42" {
		t.Errorf("expected promptTemplateId tpl-42, got %v", payload["promptTemplateId"])
	}
	if payload["systemPrompt"] != nil {
		t.Errorf("systemPrompt must become null, got %v", payload["systemPrompt"])
	}
}

func TestConvertV1ToV2_Preconditions(t *testing.T) {
	if _, err := uec.ConvertV1ToV2("nope"); !errors.Is(err, uec.ErrInvalidInput) {
		t.Errorf("non-object: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uec.ConvertV1ToV2(map[string]any{"kind": "character"}); !errors.Is(err, uec.ErrInvalidInput) {
		t.Errorf("invalid card: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uec.ConvertV1ToV2(validCharacterV2()); !errors.Is(err, uec.ErrInvalidInput) {
		t.Errorf("wrong source version: expected ErrInvalidInput, got %v", err)
	}
}

func TestConvertV1ToV2_DoesNotMutateInput(t *testing.T) {
	card := validCharacterV1()
	snapshot := uec.NormalizeValue(card)
	if _, err := uec.ConvertV1ToV2(card); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if diff := cmp.Diff(snapshot, uec.NormalizeValue(card)); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestRoundTrip_V1ToV2AndBack(t *testing.T) {
	original := validCharacterV1()
	original["payload"].(map[string]any)["rules"] = []any{}
	original["meta"] = map[string]any{"createdAt": 5.0, "updatedAt": 6.0, "source": "seed"}

	v2, err := uec.ConvertV1ToV2(original)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	down, err := uec.Downgrade(v2, "1.0", false)
	if err != nil {
		t.Fatalf("downgrade: %v", err)
	}

	if res := uec.ValidateAtVersion(down.Card, "1.0", false); !res.OK {
		t.Fatalf("round-tripped card must validate at v1: %v", res.Errors)
	}
	got := uec.NormalizeCard(down.Card)
	want := uec.NormalizeCard(original)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip drifted (-want +got):\n%s", diff)
	}
}

func TestUpgrade_Dispatch(t *testing.T) {
	v1 := validCharacterV1()

	up, err := uec.Upgrade(v1, "2.0")
	if err != nil {
		t.Fatalf("upgrade v1->v2: %v", err)
	}
	if up["schema"].(map[string]any)["version"] != "2.0" {
		t.Errorf("expected v2 result")
	}

	same, err := uec.Upgrade(validCharacterV2(), "2.0")
	if err != nil {
		t.Fatalf("upgrade v2->v2: %v", err)
	}
	if same["schema"].(map[string]any)["version"] != "2.0" {
		t.Errorf("same-version upgrade must keep version")
	}

	backDown, err := uec.Upgrade(validCharacterV2(), "1.0")
	if err != nil {
		t.Fatalf("upgrade v2->v1: %v", err)
	}
	if backDown["schema"].(map[string]any)["version"] != "1.0" {
		t.Errorf("expected v1 result")
	}

	if _, err := uec.Upgrade(v1, "3.0"); !errors.Is(err, uec.ErrInvalidInput) {
		t.Errorf("unsupported target: expected ErrInvalidInput, got %v", err)
	}
}
