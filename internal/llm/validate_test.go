package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testPlanSchema = &Schema{
	Name:        "test-plan",
	Description: "test schema",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"exercises": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
			},
		},
		"required": []any{"title", "exercises"},
	},
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"title":"Leg Day","exercises":[{"name":"Squat"}]}`)
	if err := validateResponse(testPlanSchema, raw); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"title": "Leg Day"`)
	err := validateResponse(testPlanSchema, raw)
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{"title":"Leg Day"}`)
	err := validateResponse(testPlanSchema, raw)
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_EmptyExercisesRejected(t *testing.T) {
	raw := json.RawMessage(`{"title":"Rest Day","exercises":[]}`)
	err := validateResponse(testPlanSchema, raw)
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_NilSchemaPasses(t *testing.T) {
	raw := json.RawMessage(`not even json`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected nil schema to pass, got %v", err)
	}
}
