// ABOUTME: Tests for the capped log recorder and collector forwarding
// ABOUTME: Uses httptest as the remote collector

package logger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderKeepsNewestFirst(t *testing.T) {
	log, rec := New("info", "")

	log.Info().Msg("first")
	log.Warn().Msg("second")

	entries := rec.Recent()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Message)
	assert.Equal(t, "warn", entries[0].Level)
	assert.Equal(t, "first", entries[1].Message)
}

func TestRecorderCapsAtMaxEntries(t *testing.T) {
	log, rec := New("info", "")

	for i := 0; i < MaxEntries+50; i++ {
		log.Info().Int("i", i).Msg(fmt.Sprintf("entry %d", i))
	}

	entries := rec.Recent()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, fmt.Sprintf("entry %d", MaxEntries+49), entries[0].Message)
}

func TestRecorderContextFields(t *testing.T) {
	log, rec := New("info", "")

	log.Error().Int("status", 500).Str("url", "/books").Msg("api response error")

	entries := rec.Recent()
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].Level)
	assert.Equal(t, "api response error", entries[0].Message)
	assert.Equal(t, "/books", entries[0].Context["url"])
	assert.EqualValues(t, 500, entries[0].Context["status"])
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestErrorEntriesForwardedToCollector(t *testing.T) {
	var mu sync.Mutex
	var received []Entry
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var entry Entry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		mu.Lock()
		received = append(received, entry)
		mu.Unlock()
	}))
	defer collector.Close()

	log, rec := New("info", collector.URL)

	log.Info().Msg("not forwarded")
	log.Error().Msg("forwarded")
	rec.Flush()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "forwarded", received[0].Message)
}

func TestNoCollectorIsNoop(t *testing.T) {
	log, rec := New("info", "")

	log.Error().Msg("stays local")
	rec.Flush()

	require.Len(t, rec.Recent(), 1)
}

func TestLevelFiltering(t *testing.T) {
	log, rec := New("warn", "")

	log.Info().Msg("suppressed")
	log.Warn().Msg("recorded")

	entries := rec.Recent()
	require.Len(t, entries, 1)
	assert.Equal(t, "recorded", entries[0].Message)
}
