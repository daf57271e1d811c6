// ABOUTME: Publish/subscribe toast notification service
// ABOUTME: Lets any orchestrator raise a transient user-visible message without wiring

package notify

import (
	"sync"
	"time"
)

// Level is the visual severity of a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is one transient notification.
type Toast struct {
	Message string
	Level   Level
	Time    time.Time
}

// subscriber channels are buffered; a full subscriber drops the toast rather
// than blocking the publisher.
const subscriberBuffer = 16

// Service fans published toasts out to all subscribers.
type Service struct {
	mu   sync.Mutex
	subs []chan Toast
}

// NewService creates an empty notification service.
func NewService() *Service {
	return &Service{}
}

// Publish sends a toast to every subscriber.
func (s *Service) Publish(message string, level Level) {
	toast := Toast{Message: message, Level: level, Time: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- toast:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (s *Service) Subscribe() <-chan Toast {
	ch := make(chan Toast, subscriberBuffer)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}
