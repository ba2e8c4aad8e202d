package genui

// NormalizeWidget converts a raw decoded widget object into canonical
// {type, data} form. Models place fields flatly, nest them under "data", or
// mix both; both shapes are accepted and the nested "data" object wins on
// key collision.
//
// The second return is false when the entry has no usable "type" key; such
// entries are dropped by the extractor. A present but unknown type is
// returned with ok=true so the caller can substitute an error indicator.
func NormalizeWidget(raw map[string]any) (Widget, bool) {
	if raw == nil {
		return Widget{}, false
	}
	typ, _ := raw["type"].(string)
	if typ == "" {
		return Widget{}, false
	}

	data := make(map[string]any)
	for k, v := range raw {
		if k == "type" || k == "data" {
			continue
		}
		data[k] = v
	}
	if nested, ok := raw["data"].(map[string]any); ok {
		for k, v := range nested {
			data[k] = v
		}
	}

	return Widget{Type: WidgetType(typ), Data: CanonicalizeKeys(data)}, true
}
