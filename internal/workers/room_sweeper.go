// internal/workers/room_sweeper.go
package workers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"monopoly-bank-backend/internal/game"
	"monopoly-bank-backend/internal/hub"
)

// RoomSweeper periodically drops rooms that have been idle past their TTL and
// have no connected subscribers. Everything is in-memory, so swept rooms are
// simply gone.
type RoomSweeper struct {
	registry *game.Registry
	hub      *hub.Hub
	interval time.Duration
	ttl      time.Duration

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

func NewRoomSweeper(registry *game.Registry, h *hub.Hub, interval, ttl time.Duration) *RoomSweeper {
	return &RoomSweeper{
		registry: registry,
		hub:      h,
		interval: interval,
		ttl:      ttl,
	}
}

// Start launches the sweep loop. A TTL of zero disables sweeping entirely.
func (s *RoomSweeper) Start() error {
	if s.ttl <= 0 {
		log.Println("Room sweeper disabled (ROOM_TTL_MINUTES=0)")
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("room sweeper already running")
	}
	s.running = true
	s.stop = make(chan struct{})
	s.mu.Unlock()

	go s.loop()
	log.Printf("Room sweeper started (interval=%s, ttl=%s)", s.interval, s.ttl)
	return nil
}

// Stop halts the sweep loop. Safe to call when never started.
func (s *RoomSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
}

func (s *RoomSweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes every idle room that nobody is connected to.
func (s *RoomSweeper) Sweep() int {
	removed := 0
	for _, id := range s.registry.IdleRooms(s.ttl) {
		if s.hub.SubscriberCount(id) > 0 {
			continue
		}
		s.registry.Remove(id)
		removed++
		log.Printf("Swept idle room %s", id)
	}
	return removed
}
