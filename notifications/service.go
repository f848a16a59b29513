package notifications

import (
	"sync"
	"time"
)

// EventType represents the type of notification event
type EventType string

const (
	EventProjectChanged EventType = "project-changed"
	EventReseedComplete EventType = "reseed-complete"
	EventPromptSaved    EventType = "prompt-saved"
	EventConnected      EventType = "connected"
)

// Event represents a notification event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Path      string    `json:"path,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Service manages SSE subscriptions and event broadcasting
type Service struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	done        chan struct{}
}

var (
	service     *Service
	serviceOnce sync.Once
)

// GetService returns the singleton notification service
func GetService() *Service {
	serviceOnce.Do(func() {
		service = NewService()
	})
	return service
}

// NewService creates a new notification service
func NewService() *Service {
	return &Service{
		subscribers: make(map[chan Event]struct{}),
		done:        make(chan struct{}),
	}
}

// Subscribe creates a new subscription channel
// Returns the event channel and an unsubscribe function
func (s *Service) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 10)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// Only close if the channel is still in subscribers map
		if _, exists := s.subscribers[ch]; exists {
			delete(s.subscribers, ch)
			close(ch)
		}
	}

	return ch, unsubscribe
}

// Notify broadcasts an event to all subscribers
func (s *Service) Notify(event Event) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip this subscriber
		}
	}
}

// NotifyProjectChanged signals that files under the project root changed
// on disk and a sync check may be worth running
func (s *Service) NotifyProjectChanged(path string) {
	s.Notify(Event{
		Type:      EventProjectChanged,
		Timestamp: time.Now().UnixMilli(),
		Path:      path,
	})
}

// NotifyReseedComplete signals that a re-seed pass finished
func (s *Service) NotifyReseedComplete(data any) {
	s.Notify(Event{
		Type:      EventReseedComplete,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	})
}

// NotifyPromptSaved signals that a prompt file was saved through the API
func (s *Service) NotifyPromptSaved(path string) {
	s.Notify(Event{
		Type:      EventPromptSaved,
		Timestamp: time.Now().UnixMilli(),
		Path:      path,
	})
}

// Shutdown closes the notification service
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.done)

	// Close all subscriber channels
	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = make(map[chan Event]struct{})
}

// SubscriberCount returns the number of active subscribers
func (s *Service) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
