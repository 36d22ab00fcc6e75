// Package filter applies jq expressions to decoded API responses.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// NormalizeExpression fixes shell-escaped operators in jq expressions.
// Zsh escapes ! to \! even in single quotes, breaking operators like !=.
func NormalizeExpression(expr string) string {
	return strings.ReplaceAll(expr, `\!`, `!`)
}

// Apply applies a jq expression to data. A single result is returned as-is;
// several results are returned as a slice.
//
// Root-array queries such as `.[] | .username` are retried against the
// "entities" array when data is a platform envelope object.
func Apply(data any, expression string) (any, error) {
	if expression == "" {
		return data, nil
	}

	expression = NormalizeExpression(expression)
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	results, err := runQuery(query, data)
	if err != nil {
		if entities, ok := entitiesFallback(data, expression); ok {
			if fallback, fallbackErr := runQuery(query, entities); fallbackErr == nil {
				return collapse(fallback), nil
			}
		}
		return nil, err
	}
	return collapse(results), nil
}

// ApplyFromJSON decodes jsonData and applies expression to it.
func ApplyFromJSON(jsonData []byte, expression string) (any, error) {
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return Apply(data, expression)
}

// Normalize round-trips v through JSON so typed structs become the
// map/slice shapes gojq expects.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func runQuery(query *gojq.Query, data any) ([]any, error) {
	iter := query.Run(data)

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("filter error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func collapse(results []any) any {
	if len(results) == 1 {
		return results[0]
	}
	return results
}

func entitiesFallback(data any, expression string) (any, bool) {
	expr := strings.TrimSpace(expression)
	if !strings.HasPrefix(expr, ".[]") && !strings.HasPrefix(expr, "[.[]") {
		return nil, false
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	entities, ok := m["entities"].([]any)
	if !ok {
		return nil, false
	}
	return entities, true
}
