package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LoggingProvider is a decorator that records every backend request in a
// RequestLog.
type LoggingProvider struct {
	inner Provider
	log   *RequestLog
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log *RequestLog) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	entry := RequestEntry{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
		entry.Model = resp.Model
		entry.ResponseBody = string(resp.Content)
	}

	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	l.log.Append(entry)

	return resp, err
}

// GenerateStream logs the exchange once the stream finishes. The returned
// channel relays the inner provider's fragments unchanged.
func (l *LoggingProvider) GenerateStream(ctx context.Context, req Request) (<-chan Fragment, error) {
	start := time.Now()

	inner, err := l.inner.GenerateStream(ctx, req)
	if err != nil {
		l.log.Append(RequestEntry{
			Provider:     l.inner.ModelID(),
			Model:        l.inner.ModelID(),
			Purpose:      PurposeFrom(ctx),
			LatencyMs:    time.Since(start).Milliseconds(),
			Streamed:     true,
			ErrorMessage: err.Error(),
			RequestBody:  serializeRequest(req),
		})
		return nil, err
	}

	purpose := PurposeFrom(ctx)
	out := make(chan Fragment)
	go func() {
		defer close(out)
		var text strings.Builder
		var streamErr error
	relay:
		for frag := range inner {
			if frag.Err != nil {
				streamErr = frag.Err
			} else {
				text.WriteString(frag.Text)
			}
			select {
			case out <- frag:
			case <-ctx.Done():
				streamErr = ctx.Err()
				break relay
			}
		}
		entry := RequestEntry{
			Provider:     l.inner.ModelID(),
			Model:        l.inner.ModelID(),
			Purpose:      purpose,
			LatencyMs:    time.Since(start).Milliseconds(),
			Success:      streamErr == nil,
			Streamed:     true,
			RequestBody:  serializeRequest(req),
			ResponseBody: text.String(),
		}
		if streamErr != nil {
			entry.ErrorMessage = streamErr.Error()
		}
		l.log.Append(entry)
	}()

	return out, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the backend request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
