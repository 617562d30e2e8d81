package uec_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	uec "github.com/LettuceAI/Unified-Entity-Cards"
)

const validV1JSON = `{
  "schema": {"name": "UEC", "version": "1.0"},
  "kind": "persona",
  "payload": {"id": "p1", "title": "Me", "createdAt": 1, "updatedAt": 2}
}`

func TestParse_DecodeAndValidateInOnePass(t *testing.T) {
	result := uec.Parse(validV1JSON, false)
	if !result.OK {
		t.Fatalf("expected ok, got %v", result.Errors)
	}
	if result.Value["kind"] != "persona" {
		t.Errorf("unexpected value %v", result.Value)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	result := uec.Parse("{not json", false)
	if result.OK || result.Value != nil {
		t.Fatalf("expected failure, got %+v", result)
	}
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "root: invalid JSON (") {
		t.Errorf("expected single root decode error, got %v", result.Errors)
	}
}

func TestParse_ValidJSONButInvalidCard(t *testing.T) {
	result := uec.Parse(`{"schema": {"name": "UEC", "version": "1.0"}, "kind": "persona", "payload": {"id": "p1"}}`, false)
	if result.OK || result.Value != nil {
		t.Fatalf("validation failure must not yield a value, got %+v", result)
	}
	if !hasEntry(result.Errors, "payload.title: must be a string") {
		t.Errorf("expected payload.title error, got %v", result.Errors)
	}
}

func TestParseBytesAndReader(t *testing.T) {
	if result := uec.ParseBytes([]byte(validV1JSON), false); !result.OK {
		t.Errorf("ParseBytes: %v", result.Errors)
	}
	if result := uec.ParseReader(strings.NewReader(validV1JSON), false); !result.OK {
		t.Errorf("ParseReader: %v", result.Errors)
	}
}

func TestParse_StrictModeApplies(t *testing.T) {
	result := uec.Parse(`{
	  "schema": {"name": "UEC", "version": "1.0"},
	  "kind": "persona",
	  "payload": {"id": "p1", "title": "Me"}
	}`, true)
	if result.OK {
		t.Fatalf("strict parse must enforce strict validation")
	}
	if !hasEntry(result.Errors, "payload.description: is required in strict mode") {
		t.Errorf("expected strict description error, got %v", result.Errors)
	}
}

func TestParseYAML_DecodesToSameModel(t *testing.T) {
	result := uec.ParseYAML(`
schema:
  name: UEC
  version: "1.0"
kind: persona
payload:
  id: p1
  title: Me
  createdAt: 1
  updatedAt: 2
`, false)
	if !result.OK {
		t.Fatalf("expected ok, got %v", result.Errors)
	}
	payload := result.Value["payload"].(map[string]any)
	if !uec.IsNumber(payload["createdAt"]) {
		t.Errorf("YAML integers must satisfy the number predicates, got %T", payload["createdAt"])
	}
}

func TestParseYAML_InvalidDocument(t *testing.T) {
	result := uec.ParseYAML("{\n  broken", false)
	if result.OK || !hasEntry(result.Errors, "root: invalid YAML (") {
		t.Fatalf("expected YAML decode error, got %v", result.Errors)
	}
}

// fixedDriver ignores its input and always decodes to one canned value.
type fixedDriver struct{ value any }

func (d fixedDriver) DecodeBytes([]byte) (any, error)        { return d.value, nil }
func (d fixedDriver) DecodeReader(io.Reader) (any, error)    { return d.value, nil }
func (fixedDriver) EncodeIndent(any, string) ([]byte, error) { return nil, errors.New("not implemented") }
func (fixedDriver) Name() string                             { return "fixed" }

func TestSetJSONDriver_SwapsDecoder(t *testing.T) {
	t.Cleanup(uec.UseDefaultJSONDriver)

	uec.SetJSONDriver(fixedDriver{value: map[string]any{
		"schema":  map[string]any{"name": "UEC", "version": "1.0"},
		"kind":    "persona",
		"payload": map[string]any{"id": "swapped", "title": "Driver"},
	}})

	result := uec.Parse("ignored input", false)
	if !result.OK {
		t.Fatalf("swapped driver output must validate, got %v", result.Errors)
	}
	if result.Value["payload"].(map[string]any)["id"] != "swapped" {
		t.Errorf("expected the swapped driver's value, got %v", result.Value)
	}

	uec.UseDefaultJSONDriver()
	if result := uec.Parse(validV1JSON, false); !result.OK {
		t.Fatalf("default driver must be restored, got %v", result.Errors)
	}
}
