package llm

// BuildDiaryJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// diary record as a generic map. Validation against it is advisory: a
// mismatch is logged as a diagnostic, never used to discard a parse, since
// the normalizer repairs shape problems anyway.
func BuildDiaryJSONSchema() map[string]any {
	stringProp := func() map[string]any { return map[string]any{"type": "string"} }
	boolProp := func() map[string]any { return map[string]any{"type": "boolean"} }
	snProp := func() map[string]any {
		return map[string]any{"type": "integer", "minimum": 1}
	}
	rows := func(props map[string]any) map[string]any {
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"properties": props,
			},
		}
	}

	props := map[string]any{}
	for _, f := range ScalarFields {
		props[f] = stringProp()
	}
	props["date"] = map[string]any{"type": "string"}
	props["time_morning"] = boolProp()
	props["time_afternoon"] = boolProp()

	props["activities"] = rows(map[string]any{
		"sn": snProp(), "description": stringProp(), "location": stringProp(),
		"quantity": stringProp(), "unit": stringProp(),
	})
	props["equipment"] = rows(map[string]any{
		"sn": snProp(), "equipment": stringProp(), "no": stringProp(),
		"operating_hours": stringProp(), "idle_hours": stringProp(),
		"status": stringProp(), "remarks": stringProp(),
	})
	props["personnel"] = rows(map[string]any{
		"sn": snProp(), "personnel": stringProp(), "no": stringProp(),
		"hours": stringProp(), "role": stringProp(),
	})
	props["materials"] = rows(map[string]any{
		"type": stringProp(), "unit": stringProp(),
		"quantity": stringProp(), "location": stringProp(),
	})
	props["unsafe_acts"] = rows(map[string]any{
		"sn": snProp(), "description": stringProp(),
		"severity": stringProp(), "action_taken": stringProp(),
	})

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}
