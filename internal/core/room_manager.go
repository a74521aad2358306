package core

import (
	"context"
	"sort"
	"sync"

	"github.com/dkeye/Doodle/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

// RoomManager owns every room of the process. Rooms are created on demand and deleted
// the moment their last joined player leaves.
type RoomManager struct {
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	rooms  map[domain.RoomCode]*Room
	wg     conc.WaitGroup

	words  *WordPool
	boards *BoardAllocator
	out    Dispatcher
	opts   Options
}

func NewRoomManager(parent context.Context, words *WordPool, boards *BoardAllocator, out Dispatcher, opts Options) *RoomManager {
	ctx, cancel := context.WithCancel(parent)

	return &RoomManager{
		ctx:    ctx,
		cancel: cancel,
		rooms:  make(map[domain.RoomCode]*Room),
		words:  words,
		boards: boards,
		out:    out,
		opts:   opts,
	}
}

// Dispatch routes env to the room with the given code. When create is set an unknown
// code gets a fresh room, otherwise the event is dropped. It reports whether the event
// was queued.
func (rm *RoomManager) Dispatch(code domain.RoomCode, env Envelope, create bool) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.ctx.Err() != nil {
		return false
	}
	room, ok := rm.rooms[code]
	if !ok {
		if !create {
			log.Debug().Str("module", "core.manager").Str("room", string(code)).Str("event", env.Event.Type()).Msg("event for unknown room dropped")
			return false
		}
		room = newRoom(code, rm.words, rm.boards, rm.out, rm.opts)
		rm.rooms[code] = room
		rm.wg.Go(func() { room.run(rm.ctx, rm.retire) })
		log.Info().Str("module", "core.manager").Str("room", string(code)).Msg("room created")
	}
	return room.enqueue(env)
}

func (rm *RoomManager) retire(room *Room) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if !room.retireLocked() {
		log.Info().Str("module", "core.manager").Str("room", string(room.code)).Msg("room emptied, recreated for queued events")
		return false
	}
	if rm.rooms[room.code] == room {
		delete(rm.rooms, room.code)
	}
	log.Info().Str("module", "core.manager").Str("room", string(room.code)).Msg("room deleted")
	return true
}

func (rm *RoomManager) Get(code domain.RoomCode) (domain.RoomInfo, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	room, ok := rm.rooms[code]
	if !ok {
		return domain.RoomInfo{}, false
	}
	return room.Info(), true
}

func (rm *RoomManager) List() []domain.RoomInfo {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	out := make([]domain.RoomInfo, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		out = append(out, r.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (rm *RoomManager) Len() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.rooms)
}

// Close stops every room actor and waits for them to exit.
func (rm *RoomManager) Close() {
	rm.mu.Lock()
	rm.cancel()
	rm.mu.Unlock()
	rm.wg.Wait()
	log.Info().Str("module", "core.manager").Msg("room manager stopped")
}
