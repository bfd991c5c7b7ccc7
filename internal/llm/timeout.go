package llm

import (
	"context"
	"time"
)

// TimeoutProvider is a decorator that bounds request duration. Atomic
// requests get Timeout; streamed exchanges get the longer StreamTimeout,
// measured over the whole stream.
type TimeoutProvider struct {
	inner         Provider
	timeout       time.Duration
	streamTimeout time.Duration
}

// WithTimeout wraps a Provider with per-request deadlines. Zero durations
// disable the corresponding bound.
func WithTimeout(p Provider, timeout, streamTimeout time.Duration) Provider {
	return &TimeoutProvider{inner: p, timeout: timeout, streamTimeout: streamTimeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) GenerateStream(ctx context.Context, req Request) (<-chan Fragment, error) {
	if t.streamTimeout <= 0 {
		return t.inner.GenerateStream(ctx, req)
	}

	ctx, cancel := context.WithTimeout(ctx, t.streamTimeout)

	inner, err := t.inner.GenerateStream(ctx, req)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan Fragment)
	go func() {
		defer close(out)
		defer cancel()
		for frag := range inner {
			select {
			case out <- frag:
			case <-ctx.Done():
				select {
				case out <- Fragment{Err: &ErrProviderUnavailable{Err: ctx.Err()}}:
				default:
				}
				return
			}
		}
	}()

	return out, nil
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
