package uec

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes JSON text through the configured driver and validates the
// result in one step. It only succeeds when both stages do: decoder failures
// surface as a single root error, and validation failures carry their usual
// path-addressed errors. The returned value is nil unless OK.
func Parse(text string, strict bool) ParseResult {
	return ParseBytes([]byte(text), strict)
}

// ParseBytes is Parse for a raw byte slice.
func ParseBytes(data []byte, strict bool) ParseResult {
	parsed, err := getJSONDriver().DecodeBytes(data)
	if err != nil {
		return ParseResult{OK: false, Errors: []string{fmt.Sprintf("root: invalid JSON (%v)", err)}}
	}
	return finishParse(parsed, strict)
}

// ParseReader is Parse for a stream.
func ParseReader(r io.Reader, strict bool) ParseResult {
	parsed, err := getJSONDriver().DecodeReader(r)
	if err != nil {
		return ParseResult{OK: false, Errors: []string{fmt.Sprintf("root: invalid JSON (%v)", err)}}
	}
	return finishParse(parsed, strict)
}

// ParseYAML decodes a YAML document into the JSON value model and validates
// it. YAML's richer scalar types are folded into the model before validation
// (integer keys and values become their JSON equivalents), so the same cards
// round-trip between the two encodings.
func ParseYAML(text string, strict bool) ParseResult {
	var parsed any
	if err := yaml.Unmarshal([]byte(text), &parsed); err != nil {
		return ParseResult{OK: false, Errors: []string{fmt.Sprintf("root: invalid YAML (%v)", err)}}
	}
	return finishParse(foldYAMLValue(parsed), strict)
}

func finishParse(parsed any, strict bool) ParseResult {
	result := Validate(parsed, strict)
	if !result.OK {
		return ParseResult{OK: false, Errors: result.Errors}
	}
	value, _ := parsed.(map[string]any)
	return ParseResult{OK: true, Value: value, Errors: []string{}}
}

// Stringify normalizes a card and emits deterministic JSON: sorted keys,
// the given indentation width. Two structurally equal cards always stringify
// to identical bytes, making the output safe to diff and store.
func Stringify(card any, indent int) (string, error) {
	if indent < 0 {
		indent = 0
	}
	data, err := getJSONDriver().EncodeIndent(NormalizeCard(card), strings.Repeat(" ", indent))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// foldYAMLValue maps yaml.v3 output onto the JSON value model. Maps already
// arrive string-keyed for string keys; non-string keys are rendered through
// fmt to keep the model closed.
func foldYAMLValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for key, item := range tv {
			out[key] = foldYAMLValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(tv))
		for key, item := range tv {
			out[fmt.Sprintf("%v", key)] = foldYAMLValue(item)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = foldYAMLValue(item)
		}
		return out
	default:
		return v
	}
}
