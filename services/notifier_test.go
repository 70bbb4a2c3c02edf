package services

import (
	"testing"
	"time"

	"academy/models"
)

func TestNotifierDeliversToSubscriber(t *testing.T) {
	n := &UnlockNotifier{subs: make(map[uint][]chan models.Badge)}

	ch, cancel := n.Subscribe(7)
	defer cancel()

	n.Publish(7, models.Badge{ID: 3, Name: "Finisher"})

	select {
	case badge := <-ch:
		if badge.ID != 3 {
			t.Fatalf("expected badge 3, got %d", badge.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unlock")
	}

	// Other users' events do not leak in.
	n.Publish(8, models.Badge{ID: 4})
	select {
	case badge := <-ch:
		t.Fatalf("unexpected delivery of badge %d", badge.ID)
	default:
	}
}

func TestNotifierPublishNeverBlocks(t *testing.T) {
	n := &UnlockNotifier{subs: make(map[uint][]chan models.Badge)}

	_, cancel := n.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Overflow the subscriber buffer without draining it.
		for i := 0; i < 100; i++ {
			n.Publish(1, models.Badge{ID: uint(i + 1)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestNotifierCancelClosesChannel(t *testing.T) {
	n := &UnlockNotifier{subs: make(map[uint][]chan models.Badge)}

	ch, cancel := n.Subscribe(1)
	cancel()

	if _, open := <-ch; open {
		t.Fatal("expected channel closed after cancel")
	}

	// Publishing after cancel is harmless.
	n.Publish(1, models.Badge{ID: 1})
}
