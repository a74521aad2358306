package core

import (
	"sync"

	"github.com/dkeye/Doodle/internal/domain"
)

type sent struct {
	room     domain.RoomCode
	to       []domain.PlayerID
	targeted bool
	ev       domain.Outbound
}

// recorder is a Dispatcher that keeps every event in order.
type recorder struct {
	mu   sync.Mutex
	sent []sent
}

func (r *recorder) ToRoom(code domain.RoomCode, to []domain.PlayerID, ev domain.Outbound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{room: code, to: append([]domain.PlayerID(nil), to...), ev: ev})
}

func (r *recorder) ToPlayer(code domain.RoomCode, to domain.PlayerID, ev domain.Outbound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{room: code, to: []domain.PlayerID{to}, targeted: true, ev: ev})
}

func (r *recorder) all() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sent(nil), r.sent...)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

func (r *recorder) types() []string {
	var out []string
	for _, s := range r.all() {
		out = append(out, s.ev.Type)
	}
	return out
}

// last returns the most recent event of the given type.
func (r *recorder) last(typ string) (sent, bool) {
	all := r.all()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ev.Type == typ {
			return all[i], true
		}
	}
	return sent{}, false
}

func (r *recorder) count(typ string) int {
	n := 0
	for _, s := range r.all() {
		if s.ev.Type == typ {
			n++
		}
	}
	return n
}

// firstPick makes random choices deterministic: always the first eligible element.
func firstPick(int) int { return 0 }

func testPool(words ...string) *WordPool {
	p := NewWordPool(words)
	p.intn = firstPick
	return p
}

func testBoards(boards ...string) *BoardAllocator {
	b := NewBoardAllocator(boards)
	b.intn = firstPick
	return b
}

// gatedDispatcher records like recorder, but once armed the next ToPlayer call blocks
// until released, holding the room actor in the middle of an event.
type gatedDispatcher struct {
	*recorder

	mu      sync.Mutex
	gate    chan struct{}
	entered chan struct{}
}

// arm returns a channel closed once the actor is held, and the func releasing it.
func (g *gatedDispatcher) arm() (<-chan struct{}, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gate = make(chan struct{})
	g.entered = make(chan struct{})
	gate := g.gate
	return g.entered, func() { close(gate) }
}

func (g *gatedDispatcher) ToPlayer(code domain.RoomCode, to domain.PlayerID, ev domain.Outbound) {
	g.mu.Lock()
	gate, entered := g.gate, g.entered
	g.gate, g.entered = nil, nil
	g.mu.Unlock()
	if gate != nil {
		close(entered)
		<-gate
	}
	g.recorder.ToPlayer(code, to, ev)
}
