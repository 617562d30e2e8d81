package uec

// NormalizeValue rebuilds a value into a canonical deep copy: arrays keep
// their order, objects are rebuilt key by key, and explicit nulls survive as
// explicit nulls. The copy shares no containers with the input, so callers
// can mutate either side freely. Normalizing twice yields the same value.
//
// Key ordering in the value model is carried by the serializer (Stringify
// emits sorted keys), so normalization here is purely structural.
func NormalizeValue(v any) any {
	switch tv := v.(type) {
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = NormalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for key, item := range tv {
			if item == nil {
				out[key] = nil
				continue
			}
			out[key] = NormalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// NormalizeCard normalizes a whole card and additionally forces the optional
// top-level containers (app_specific_settings, meta, extensions) to empty
// objects when they are absent or not objects. Non-object input is returned
// as its plain normalized value.
func NormalizeCard(card any) any {
	normalized := NormalizeValue(card)
	obj, ok := normalized.(map[string]any)
	if !ok {
		return normalized
	}
	for _, key := range []string{"app_specific_settings", "meta", "extensions"} {
		if !IsPlainObject(obj[key]) {
			obj[key] = map[string]any{}
		}
	}
	return obj
}
