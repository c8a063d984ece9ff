package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/boardprep/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open("file:llm_logging?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	core, logs := observer.New(zapcore.InfoLevel)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(validBatchJSON), Usage: Usage{InputTokens: 7, OutputTokens: 70}},
		MockResponse{Err: errors.New("quota exhausted")},
	)
	p := WithLogging(mock, s.EventRepo(), zap.New(core))

	ctx := WithPurpose(context.Background(), PurposeQuestionGen)
	req := questionRequest(batchSchema("logging-batch"))
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected the second call to fail")
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	failed, succeeded := events[0], events[1]
	if !succeeded.Success || succeeded.Purpose != PurposeQuestionGen || succeeded.OutputTokens != 70 {
		t.Errorf("success event = %+v", succeeded)
	}
	if succeeded.ResponseBody != validBatchJSON {
		t.Errorf("response body not captured")
	}
	if !strings.Contains(succeeded.RequestBody, "[system]") || !strings.Contains(succeeded.RequestBody, "[schema: logging-batch]") {
		t.Errorf("request body = %q", succeeded.RequestBody)
	}
	if failed.Success || failed.ErrorMessage != "quota exhausted" {
		t.Errorf("failure event = %+v", failed)
	}

	if logs.FilterMessage("llm request").Len() != 1 || logs.FilterMessage("llm request failed").Len() != 1 {
		t.Errorf("unexpected log entries: %v", logs.All())
	}
}

func TestLoggingProvider_NilDependencies(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("default purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), PurposePreview)); got != PurposePreview {
		t.Errorf("purpose = %q", got)
	}
}
