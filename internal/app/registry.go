package app

import (
	"context"
	"sync"

	"github.com/dkeye/Doodle/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Room   domain.RoomCode
	Conn   Conn
	Cancel context.CancelFunc
}

// Registry maps live connections to the room their player belongs to.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.PlayerID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[domain.PlayerID]*sessionEntry)}
}

func (r *Registry) Bind(sid domain.PlayerID, conn Conn, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound connection")
}

// Unbind forgets the connection and returns the room it was bound to, if any.
func (r *Registry) Unbind(sid domain.PlayerID) (domain.RoomCode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return "", false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbound connection")
	return e.Room, e.Room != ""
}

func (r *Registry) Conn(sid domain.PlayerID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

func (r *Registry) RoomOf(sid domain.PlayerID) (domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

// SetRoom binds the connection to code and returns the previous room.
func (r *Registry) SetRoom(sid domain.PlayerID, code domain.RoomCode) (prev domain.RoomCode, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return "", false
	}
	prev = e.Room
	e.Room = code
	if prev != code {
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(code)).Msg("updated room")
	}
	return prev, true
}

// Cancel stops the connection's pumps. The transport reports the disconnect afterwards.
func (r *Registry) Cancel(sid domain.PlayerID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled connection")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
