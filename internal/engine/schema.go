package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// serialized ReceiptRecord, as a generic map. Records are validated against
// it before archiving.
func BuildRecordJSONSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"code":        map[string]any{"type": "string", "minLength": 1},
			"name":        map[string]any{"type": "string", "minLength": 1},
			"price":       decimalProp(),
			"price_known": map[string]any{"type": "boolean"},
			"quantity":    map[string]any{"type": "integer", "minimum": 1},
		},
		"required": []string{"code", "name", "price", "price_known", "quantity"},
	}
	totals := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"subtotal": decimalProp(),
			"total":    decimalProp(),
			"tax":      decimalProp(),
		},
		"required": []string{"subtotal", "total", "tax"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"merchant": map[string]any{"type": "string", "minLength": 1},
			"items":    map[string]any{"type": "array", "items": item},
			"totals":   totals,
			"date":     map[string]any{"type": "string", "pattern": `^(\d{2}/\d{2}/\d{4}|NULL)$`},
			"time":     map[string]any{"type": "string", "pattern": `^(\d{2}:\d{2}|NULL)$`},
		},
		"required": []string{"merchant", "items", "totals", "date", "time"},
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^-?\d+(\.\d+)?$`,
	}
}

// ValidateRecordJSON validates a serialized record against the canonical
// record schema.
func ValidateRecordJSON(data []byte) error {
	return ValidateJSONAgainstSchema(BuildRecordJSONSchema(), data)
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
