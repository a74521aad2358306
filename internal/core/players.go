package core

import (
	"slices"

	"github.com/dkeye/Doodle/internal/domain"
)

// PlayerRegistry keeps the players of one room in insertion order. That order is used
// for the player list, the voting turn order and board rotation.
type PlayerRegistry struct {
	order []domain.PlayerID
	byID  map[domain.PlayerID]*domain.Player
}

func NewPlayerRegistry() *PlayerRegistry {
	return &PlayerRegistry{byID: make(map[domain.PlayerID]*domain.Player)}
}

func (r *PlayerRegistry) Add(p *domain.Player) {
	if _, ok := r.byID[p.ID]; ok {
		return
	}
	r.order = append(r.order, p.ID)
	r.byID[p.ID] = p
}

func (r *PlayerRegistry) Get(id domain.PlayerID) (*domain.Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Joined returns the player with id only if they have joined.
func (r *PlayerRegistry) Joined(id domain.PlayerID) (*domain.Player, bool) {
	p, ok := r.byID[id]
	if !ok || !p.Joined {
		return nil, false
	}
	return p, true
}

func (r *PlayerRegistry) Remove(id domain.PlayerID) (*domain.Player, bool) {
	p, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(x domain.PlayerID) bool { return x == id })
	return p, true
}

// JoinedPlayers returns joined players in insertion order.
func (r *PlayerRegistry) JoinedPlayers() []*domain.Player {
	out := make([]*domain.Player, 0, len(r.order))
	for _, id := range r.order {
		if p := r.byID[id]; p.Joined {
			out = append(out, p)
		}
	}
	return out
}

func (r *PlayerRegistry) JoinedIDs() []domain.PlayerID {
	joined := r.JoinedPlayers()
	out := make([]domain.PlayerID, len(joined))
	for i, p := range joined {
		out[i] = p.ID
	}
	return out
}

func (r *PlayerRegistry) JoinedCount() int {
	n := 0
	for _, p := range r.byID {
		if p.Joined {
			n++
		}
	}
	return n
}

func (r *PlayerRegistry) Len() int { return len(r.order) }
