// services/notifier.go - Unlock notification hub
package services

import (
	"sync"

	"academy/models"
)

// UnlockNotifier fans badge unlocks out to in-process subscribers
// (the websocket feed). Publishing never blocks: a subscriber that
// stops draining its channel misses events instead of stalling the
// awarder.
type UnlockNotifier struct {
	mu   sync.RWMutex
	subs map[uint][]chan models.Badge
}

var notifier *UnlockNotifier

// InitNotifier initializes the singleton notifier.
func InitNotifier() {
	notifier = &UnlockNotifier{subs: make(map[uint][]chan models.Badge)}
}

// GetNotifier returns the initialized notifier, or nil before InitNotifier.
func GetNotifier() *UnlockNotifier {
	return notifier
}

// Subscribe registers a listener for one user's unlocks. The returned
// function removes the subscription and closes the channel.
func (n *UnlockNotifier) Subscribe(userID uint) (<-chan models.Badge, func()) {
	ch := make(chan models.Badge, 8)

	n.mu.Lock()
	n.subs[userID] = append(n.subs[userID], ch)
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		subs := n.subs[userID]
		for i, sub := range subs {
			if sub == ch {
				n.subs[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
		if len(n.subs[userID]) == 0 {
			delete(n.subs, userID)
		}
	}
	return ch, cancel
}

// Publish delivers a badge unlock to every subscriber of the user.
func (n *UnlockNotifier) Publish(userID uint, badge models.Badge) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, ch := range n.subs[userID] {
		select {
		case ch <- badge:
		default:
			// slow subscriber, drop
		}
	}
}
