package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockStream is a canned streamed response for the MockProvider.
// Fragments are delivered in order; when Err is set it is delivered
// after the fragments, as the terminal element.
type MockStream struct {
	Fragments []string
	Err       error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu          sync.Mutex
	responses   []MockResponse
	streams     []MockStream
	Calls       []Request
	StreamCalls []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateStream returns the next canned stream's fragments over a channel,
// or ErrProviderUnavailable if the stream queue is empty.
func (m *MockProvider) GenerateStream(ctx context.Context, req Request) (<-chan Fragment, error) {
	m.mu.Lock()
	m.StreamCalls = append(m.StreamCalls, req)

	if len(m.streams) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	stream := m.streams[0]
	m.streams = m.streams[1:]
	m.mu.Unlock()

	out := make(chan Fragment)
	go func() {
		defer close(out)
		for _, text := range stream.Fragments {
			select {
			case out <- Fragment{Text: text}:
			case <-ctx.Done():
				return
			}
		}
		if stream.Err != nil {
			select {
			case out <- Fragment{Err: stream.Err}:
			case <-ctx.Done():
			}
		}
	}()

	return out, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddStream appends a canned stream to the stream queue.
func (m *MockProvider) AddStream(stream MockStream) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams = append(m.streams, stream)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// StreamCallCount returns the number of GenerateStream calls made.
func (m *MockProvider) StreamCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StreamCalls)
}
