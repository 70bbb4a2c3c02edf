// services/sweep.go - Periodic badge reconciliation
package services

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"academy/database"
)

// SweepService periodically re-runs badge awarding for recently active
// users. Awarding is idempotent, so sweeping after live evaluation is
// harmless; it exists to pick up unlocks missed when an award call
// failed or when badge configuration changed.
type SweepService struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var sweepService *SweepService

// InitSweepService initializes the singleton sweep service. Interval
// comes from SWEEP_INTERVAL_MINUTES (default 15).
func InitSweepService() {
	minutes := 15
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			minutes = parsed
		}
	}

	sweepService = &SweepService{
		interval: time.Duration(minutes) * time.Minute,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// GetSweepService returns the initialized sweep service.
func GetSweepService() *SweepService {
	return sweepService
}

// Start runs the reconciliation loop until Stop is called.
func (s *SweepService) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Printf("🔁 Badge reconciliation sweep running every %s", s.interval)
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop shuts the loop down and waits for the current sweep to finish.
func (s *SweepService) Stop() {
	close(s.stop)
	<-s.done
}

// sweep re-evaluates every user with ledger or completion activity
// since the previous two intervals. Each user gets their own timeout;
// one failure never aborts the rest of the sweep.
func (s *SweepService) sweep() {
	db := database.GetDB()
	since := time.Now().UTC().Add(-2 * s.interval)

	var userIDs []uint
	if err := db.Raw(`
		SELECT DISTINCT user_id FROM lesson_completions WHERE completed_at >= ?
		UNION
		SELECT DISTINCT user_id FROM xp_events WHERE occurred_at >= ?
	`, since, since).Scan(&userIDs).Error; err != nil {
		log.Printf("Sweep: failed to list active users: %v", err)
		return
	}

	awarded := 0
	for _, userID := range userIDs {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		newly, err := AwardQualifying(ctx, userID)
		cancel()
		if err != nil {
			log.Printf("Sweep: award for user %d failed: %v", userID, err)
			continue
		}
		awarded += len(newly)
	}

	if len(userIDs) > 0 {
		log.Printf("Sweep: evaluated %d users, %d new unlocks", len(userIDs), awarded)
	}
}
