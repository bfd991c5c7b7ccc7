package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestLogging_RecordsGenerate(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"x":1}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
	)
	log := NewRequestLog()
	p := WithLogging(mock, log)

	ctx := WithPurpose(context.Background(), "plan")
	_, err := p.Generate(ctx, Request{System: "coach", Messages: []Message{{Role: RoleUser, Content: "plan me"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Purpose != "plan" {
		t.Errorf("expected purpose 'plan', got %q", e.Purpose)
	}
	if !e.Success {
		t.Error("expected success entry")
	}
	if e.InputTokens != 7 || e.OutputTokens != 3 {
		t.Errorf("unexpected token counts: %d/%d", e.InputTokens, e.OutputTokens)
	}
	if e.ID == "" {
		t.Error("expected entry ID to be assigned")
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	log := NewRequestLog()
	p := WithLogging(mock, log)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Success {
		t.Error("expected failure entry")
	}
	if entries[0].ErrorMessage == "" {
		t.Error("expected error message to be recorded")
	}
}

func TestLogging_RecordsStreamAfterCompletion(t *testing.T) {
	mock := NewMockProvider()
	mock.AddStream(MockStream{Fragments: []string{"keep ", "going"}})
	log := NewRequestLog()
	p := WithLogging(mock, log)

	ctx := WithPurpose(context.Background(), "chat")
	ch, err := p.GenerateStream(ctx, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range ch {
	}

	// The entry is appended after the relay goroutine drains the stream.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(log.Entries()) == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if !e.Streamed {
		t.Error("expected streamed entry")
	}
	if e.ResponseBody != "keep going" {
		t.Errorf("expected accumulated text, got %q", e.ResponseBody)
	}
	if e.Purpose != "chat" {
		t.Errorf("expected purpose 'chat', got %q", e.Purpose)
	}
}

func TestRequestLog_TotalUsage(t *testing.T) {
	log := NewRequestLog()
	log.Append(RequestEntry{InputTokens: 10, OutputTokens: 5})
	log.Append(RequestEntry{InputTokens: 4, OutputTokens: 2})

	u := log.TotalUsage()
	if u.InputTokens != 14 || u.OutputTokens != 7 || u.TotalTokens != 21 {
		t.Fatalf("unexpected usage: %+v", u)
	}
}
