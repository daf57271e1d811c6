// ABOUTME: Tests for the toast pub/sub service
// ABOUTME: Verifies fan-out and the non-blocking full-buffer behavior

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	svc := NewService()
	a := svc.Subscribe()
	b := svc.Subscribe()

	svc.Publish("saved", LevelSuccess)

	toastA := <-a
	toastB := <-b
	assert.Equal(t, "saved", toastA.Message)
	assert.Equal(t, LevelSuccess, toastA.Level)
	assert.Equal(t, toastA.Message, toastB.Message)
	assert.False(t, toastA.Time.IsZero())
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	svc := NewService()
	svc.Publish("nobody listening", LevelInfo)
}

func TestFullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	svc := NewService()
	ch := svc.Subscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		svc.Publish("burst", LevelInfo)
	}

	// The subscriber buffer holds at most subscriberBuffer toasts.
	require.Len(t, ch, subscriberBuffer)
}
