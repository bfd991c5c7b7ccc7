package llm

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RequestEntry records one backend request for in-session inspection.
// Nothing here is persisted; the log lives and dies with the process.
type RequestEntry struct {
	ID           string
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	Streamed     bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// RequestLog is an in-memory, append-only log of backend requests.
// Safe for concurrent use.
type RequestLog struct {
	mu      sync.Mutex
	entries []RequestEntry
}

// NewRequestLog creates an empty request log.
func NewRequestLog() *RequestLog {
	return &RequestLog{}
}

// Append records an entry, assigning it an ID and timestamp.
func (l *RequestLog) Append(e RequestEntry) {
	e.ID = uuid.NewString()
	e.Timestamp = time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Entries returns a copy of all recorded entries, oldest first.
func (l *RequestLog) Entries() []RequestEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]RequestEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// TotalUsage sums token counts across all recorded entries.
func (l *RequestLog) TotalUsage() Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	var u Usage
	for _, e := range l.entries {
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
	}
	u.TotalTokens = u.InputTokens + u.OutputTokens
	return u
}
