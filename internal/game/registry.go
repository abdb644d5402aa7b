// internal/game/registry.go
package game

import (
	"sync"
	"time"

	"monopoly-bank-backend/internal/models"
)

// roomState pairs a room with its own mutex so mutations on one room never
// block mutations on another. The registry mutex guards only the map.
type roomState struct {
	mu         sync.Mutex
	room       *models.Room
	lastActive time.Time
}

// Registry owns every room for the lifetime of the process. All state is
// volatile; a restart loses every room.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*roomState

	defaultStartingMoney int
	defaultPassGoMoney   int
}

func NewRegistry(startingMoney, passGoMoney int) *Registry {
	return &Registry{
		rooms:                make(map[string]*roomState),
		defaultStartingMoney: startingMoney,
		defaultPassGoMoney:   passGoMoney,
	}
}

// Create registers an empty room under id. First writer wins; a second
// create for the same id fails with ErrRoomExists and leaves the room as is.
func (r *Registry) Create(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; ok {
		return ErrRoomExists
	}
	r.rooms[id] = &roomState{
		room: &models.Room{
			ID:            id,
			StartingMoney: r.defaultStartingMoney,
			PassGoMoney:   r.defaultPassGoMoney,
			Players:       make([]*models.Player, 0),
			Transactions:  make([]models.Transaction, 0),
			BankRequests:  make(map[string]*models.BankRequest),
		},
		lastActive: time.Now(),
	}
	return nil
}

func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[id]
	return ok
}

// Remove drops a room from the registry. Used by the idle-room sweeper.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
}

// IdleRooms returns the ids of rooms whose last mutation is older than ttl.
func (r *Registry) IdleRooms(ttl time.Duration) []string {
	cutoff := time.Now().Add(-ttl)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, state := range r.rooms {
		state.mu.Lock()
		idle := state.lastActive.Before(cutoff)
		state.mu.Unlock()
		if idle {
			ids = append(ids, id)
		}
	}
	return ids
}

// Snapshot returns a deep copy of the room, or ErrRoomNotFound.
func (r *Registry) Snapshot(id string) (*models.Room, error) {
	var snap *models.Room
	err := r.withRoom(id, func(room *models.Room) error {
		snap = room.Clone()
		return nil
	})
	return snap, err
}

// withRoom runs fn inside the room's critical section. fn owns the room's
// mutable fields exclusively until it returns; any error means fn performed
// no mutation.
func (r *Registry) withRoom(id string, fn func(*models.Room) error) error {
	r.mu.RLock()
	state, ok := r.rooms[id]
	r.mu.RUnlock()
	if !ok {
		return ErrRoomNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if err := fn(state.room); err != nil {
		return err
	}
	state.lastActive = time.Now()
	return nil
}
