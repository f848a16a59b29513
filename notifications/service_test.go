package notifications

import (
	"testing"
	"time"
)

func TestSubscribeAndNotify(t *testing.T) {
	s := NewService()
	defer s.Shutdown()

	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	if s.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", s.SubscriberCount())
	}

	s.NotifyProjectChanged("src/App.txt")

	select {
	case event := <-ch:
		if event.Type != EventProjectChanged {
			t.Errorf("Type = %q, want %q", event.Type, EventProjectChanged)
		}
		if event.Path != "src/App.txt" {
			t.Errorf("Path = %q, want %q", event.Path, "src/App.txt")
		}
		if event.Timestamp == 0 {
			t.Error("Timestamp not set")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestUnsubscribeRemovesSubscriber(t *testing.T) {
	s := NewService()
	defer s.Shutdown()

	_, unsubscribe := s.Subscribe()
	unsubscribe()

	if s.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d, want 0", s.SubscriberCount())
	}

	// A second call must be a no-op
	unsubscribe()
}

func TestNotifyDoesNotBlockOnFullChannel(t *testing.T) {
	s := NewService()
	defer s.Shutdown()

	_, unsubscribe := s.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		// More events than the subscriber buffer holds
		for i := 0; i < 100; i++ {
			s.NotifyReseedComplete(nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full subscriber channel")
	}
}

func TestShutdownClosesSubscribers(t *testing.T) {
	s := NewService()

	ch, _ := s.Subscribe()
	s.Shutdown()

	select {
	case _, ok := <-ch:
		if ok {
			// Buffered events may drain first; wait for close
			for range ch {
			}
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed on shutdown")
	}

	if s.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d, want 0", s.SubscriberCount())
	}
}
