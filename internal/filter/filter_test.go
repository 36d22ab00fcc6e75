package filter

import (
	"testing"
)

func TestApply_EmptyExpression(t *testing.T) {
	data := map[string]any{"name": "test"}
	result, err := Apply(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(map[string]any)["name"] != "test" {
		t.Error("empty expression should return data unchanged")
	}
}

func TestApply_SelectField(t *testing.T) {
	data := map[string]any{"action": "get", "count": 1}
	result, err := Apply(data, ".action")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "get" {
		t.Errorf("expected 'get', got %v", result)
	}
}

func TestApply_MultipleResults(t *testing.T) {
	data := map[string]any{"entities": []any{
		map[string]any{"username": "alice"},
		map[string]any{"username": "bob"},
	}}
	result, err := Apply(data, ".entities[].username")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := result.([]any)
	if !ok || len(list) != 2 || list[1] != "bob" {
		t.Errorf("expected [alice bob], got %v", result)
	}
}

func TestApply_EntitiesFallback(t *testing.T) {
	data := map[string]any{
		"action": "get",
		"entities": []any{
			map[string]any{"username": "alice", "activated": true},
			map[string]any{"username": "bob", "activated": false},
		},
	}
	result, err := Apply(data, `.[] | select(.activated) | .username`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "alice" {
		t.Errorf("expected alice, got %v", result)
	}
}

func TestApply_ShellEscapedOperator(t *testing.T) {
	data := map[string]any{"action": "post"}
	result, err := Apply(data, `.action \!= "get"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != true {
		t.Errorf("expected true, got %v", result)
	}
}

func TestApply_InvalidExpression(t *testing.T) {
	if _, err := Apply(map[string]any{}, "invalid[[["); err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestApply_RuntimeError(t *testing.T) {
	if _, err := Apply("text", ".foo"); err == nil {
		t.Error("expected runtime error indexing a string")
	}
}

func TestApplyFromJSON(t *testing.T) {
	result, err := ApplyFromJSON([]byte(`{"data":{"bob":"success"}}`), ".data.bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "success" {
		t.Errorf("expected success, got %v", result)
	}
	if _, err := ApplyFromJSON([]byte(`{`), "."); err == nil {
		t.Error("expected invalid JSON error")
	}
}

func TestNormalize(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}
	out, err := Normalize([]row{{Name: "x"}})
	if err != nil {
		t.Fatal(err)
	}
	list := out.([]any)
	if list[0].(map[string]any)["name"] != "x" {
		t.Errorf("unexpected %v", out)
	}
}
