package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_StreamsFragmentsInOrder(t *testing.T) {
	mock := NewMockProvider()
	mock.AddStream(MockStream{Fragments: []string{"push ", "through ", "the burn"}})

	ch, err := mock.GenerateStream(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "motivate me"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got string
	for frag := range ch {
		if frag.Err != nil {
			t.Fatalf("unexpected fragment error: %v", frag.Err)
		}
		got += frag.Text
	}
	if got != "push through the burn" {
		t.Fatalf("expected concatenated fragments, got %q", got)
	}
	if mock.StreamCallCount() != 1 {
		t.Fatalf("expected 1 stream call, got %d", mock.StreamCallCount())
	}
}

func TestMockProvider_StreamDeliversTerminalError(t *testing.T) {
	mock := NewMockProvider()
	mock.AddStream(MockStream{
		Fragments: []string{"partial"},
		Err:       &ErrProviderUnavailable{},
	})

	ch, err := mock.GenerateStream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawText, sawErr bool
	for frag := range ch {
		if frag.Err != nil {
			sawErr = true
			continue
		}
		sawText = true
	}
	if !sawText || !sawErr {
		t.Fatalf("expected text then terminal error, got text=%v err=%v", sawText, sawErr)
	}
}

func TestMockProvider_StreamEmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.GenerateStream(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "plan")
	if p := PurposeFrom(ctx); p != "plan" {
		t.Fatalf("expected 'plan', got %q", p)
	}
}
