package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	schema := batchSchema("validate-batch")

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid batch", validBatchJSON, false},
		{"not JSON", `here are your questions`, true},
		{"missing questions", `{}`, true},
		{"three options", `{"questions":[{"question":"q","options":["a","b","c"],"correctAnswerIndex":0}]}`, true},
		{"index out of range", `{"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswerIndex":4}]}`, true},
		{"unknown difficulty", `{"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswerIndex":1,"difficulty":"Expert"}]}`, true},
		{"extra field", `{"questions":[],"note":"x"}`, true},
		{"empty batch", `{"questions":[]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if tt.wantErr {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
				if string(invErr.Content) != tt.raw {
					t.Errorf("error should carry the raw content")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	schema := batchSchema("validate-cache")
	for range 2 {
		if err := validateResponse(schema, json.RawMessage(validBatchJSON)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, ok := compiledSchemas.Load("validate-cache"); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
