package uec_test

import (
	"errors"
	"testing"

	uec "github.com/LettuceAI/Unified-Entity-Cards"
)

func TestNewCard_DefaultsAndEnvelope(t *testing.T) {
	card, err := uec.NewCharacterCard(map[string]any{"id": "c1", "name": "Mika"}, uec.Options{})
	if err != nil {
		t.Fatalf("NewCharacterCard: %v", err)
	}

	schema := card["schema"].(map[string]any)
	if schema["name"] != uec.SchemaName || schema["version"] != uec.SchemaVersion {
		t.Errorf("unexpected schema %v", schema)
	}
	for _, key := range []string{"app_specific_settings", "meta", "extensions"} {
		if _, ok := card[key].(map[string]any); !ok {
			t.Errorf("%s must default to an empty object, got %v", key, card[key])
		}
	}
	if res := uec.Validate(card, false); !res.OK {
		t.Errorf("factory card must validate: %v", res.Errors)
	}
}

func TestNewCard_CallerSchemaWins(t *testing.T) {
	card, err := uec.NewPersonaCard(map[string]any{"id": "p1", "title": "Me"}, uec.Options{
		Schema: map[string]any{"compat": "legacy"},
	})
	if err != nil {
		t.Fatalf("NewPersonaCard: %v", err)
	}
	schema := card["schema"].(map[string]any)
	if schema["compat"] != "legacy" || schema["version"] != uec.SchemaVersion {
		t.Errorf("unexpected schema %v", schema)
	}
}

func TestNewCardV2_PinsVersion(t *testing.T) {
	card, err := uec.NewCharacterCardV2(map[string]any{
		"id":   "c1",
		"name": "Mika",
	}, uec.Options{Schema: map[string]any{"version": "1.0"}})
	if err != nil {
		t.Fatalf("NewCharacterCardV2: %v", err)
	}
	if card["schema"].(map[string]any)["version"] != uec.SchemaVersionV2 {
		t.Errorf("v2 factory must pin version 2.0, got %v", card["schema"])
	}
	if res := uec.Validate(card, false); !res.OK {
		t.Errorf("factory card must validate: %v", res.Errors)
	}

	persona, err := uec.NewPersonaCardV2(map[string]any{"id": "p1", "title": "Me"}, uec.Options{})
	if err != nil {
		t.Fatalf("NewPersonaCardV2: %v", err)
	}
	if res := uec.Validate(persona, false); !res.OK {
		t.Errorf("persona v2 factory card must validate: %v", res.Errors)
	}
}

func TestNewCard_SystemPromptIsID(t *testing.T) {
	card, err := uec.NewCharacterCard(map[string]any{
		"id":           "c1",
		"name":         "Mika",
		"systemPrompt": "tpl-7",
	}, uec.Options{SystemPromptIsID: true})
	if err != nil {
		t.Fatalf("NewCharacterCard: %v", err)
	}
	if got := card["payload"].(map[string]any)["systemPrompt"]; got != "_ID:tpl-7" {
		t.Errorf("expected prefixed prompt, got %v", got)
	}

	// already prefixed prompts pass through
	again, err := uec.NewCharacterCard(map[string]any{
		"id":           "c1",
		"name":         "Mika",
		"systemPrompt": "_ID:tpl-7",
	}, uec.Options{SystemPromptIsID: true})
	if err != nil {
		t.Fatalf("NewCharacterCard: %v", err)
	}
	if got := again["payload"].(map[string]any)["systemPrompt"]; got != "_ID:tpl-7" {
		t.Errorf("expected prompt unchanged, got %v", got)
	}
}

func TestNewCard_Preconditions(t *testing.T) {
	if _, err := uec.NewCard("", map[string]any{}, uec.Options{}); !errors.Is(err, uec.ErrInvalidInput) {
		t.Errorf("empty kind: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uec.NewCard("character", nil, uec.Options{}); !errors.Is(err, uec.ErrInvalidInput) {
		t.Errorf("nil payload: expected ErrInvalidInput, got %v", err)
	}
}
