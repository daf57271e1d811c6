// ABOUTME: Structured logging via zerolog into a capped in-memory recorder
// ABOUTME: Error-level entries are forwarded to a remote collector when configured

package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MaxEntries caps the in-memory log buffer to the most recent entries.
const MaxEntries = 100

// Entry is one recorded log line.
type Entry struct {
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Recorder is a zerolog sink that keeps the most recent MaxEntries entries
// in memory, newest first. Error entries are additionally POSTed to the
// collector URL when one is configured.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry

	collectorURL string
	httpClient   *http.Client
	forwards     sync.WaitGroup
}

// NewRecorder creates a recorder. An empty collectorURL disables forwarding.
func NewRecorder(collectorURL string) *Recorder {
	return &Recorder{
		collectorURL: collectorURL,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

// New builds the application logger writing into a fresh recorder.
func New(level, collectorURL string) (zerolog.Logger, *Recorder) {
	rec := NewRecorder(collectorURL)

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(rec).Level(lvl).With().Timestamp().Logger()
	return log, rec
}

// Write implements io.Writer for zerolog. Each line is one JSON event.
func (r *Recorder) Write(p []byte) (int, error) {
	entry := parseEvent(p)

	r.mu.Lock()
	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > MaxEntries {
		r.entries = r.entries[:MaxEntries]
	}
	r.mu.Unlock()

	if entry.Level == zerolog.ErrorLevel.String() && r.collectorURL != "" {
		r.forwards.Add(1)
		go r.forward(entry)
	}
	return len(p), nil
}

// parseEvent splits a zerolog JSON event into level, message, timestamp,
// and the remaining fields as context.
func parseEvent(p []byte) Entry {
	entry := Entry{Level: "info", Timestamp: time.Now()}

	var fields map[string]any
	if err := json.Unmarshal(p, &fields); err != nil {
		entry.Message = string(bytes.TrimSpace(p))
		return entry
	}

	if level, ok := fields[zerolog.LevelFieldName].(string); ok {
		entry.Level = level
		delete(fields, zerolog.LevelFieldName)
	}
	if msg, ok := fields[zerolog.MessageFieldName].(string); ok {
		entry.Message = msg
		delete(fields, zerolog.MessageFieldName)
	}
	if ts, ok := fields[zerolog.TimestampFieldName].(string); ok {
		if parsed, err := time.Parse(zerolog.TimeFieldFormat, ts); err == nil {
			entry.Timestamp = parsed
		}
		delete(fields, zerolog.TimestampFieldName)
	}
	if len(fields) > 0 {
		entry.Context = fields
	}
	return entry
}

// forward ships one entry to the remote collector. Failures are swallowed;
// logging them would recurse into this recorder.
func (r *Recorder) forward(entry Entry) {
	defer r.forwards.Done()

	body, err := json.Marshal(entry)
	if err != nil {
		return
	}
	resp, err := r.httpClient.Post(r.collectorURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Flush waits for in-flight collector forwards to finish.
func (r *Recorder) Flush() {
	r.forwards.Wait()
}

// Recent returns a copy of the recorded entries, newest first.
func (r *Recorder) Recent() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
