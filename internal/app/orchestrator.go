package app

import (
	"context"

	"github.com/dkeye/Doodle/internal/core"
	"github.com/dkeye/Doodle/internal/domain"
	"github.com/rs/zerolog/log"
)

// Rooms routes events to room actors.
type Rooms interface {
	Dispatch(code domain.RoomCode, env core.Envelope, create bool) bool
}

// Orchestrator is the connection gateway: it turns connection lifecycle and decoded
// client messages into room events.
type Orchestrator struct {
	Registry *Registry
	Rooms    Rooms
}

func (o *Orchestrator) Connect(sid domain.PlayerID, conn Conn, cancel context.CancelFunc) {
	o.Registry.Bind(sid, conn, cancel)
}

// OnEvent forwards ev to the room with the given code. A connection belongs to one room
// at a time: naming a player in another room first leaves the previous one, and any
// other event for a room the connection is not bound to is dropped. An invalid name
// never moves the connection or creates a room.
func (o *Orchestrator) OnEvent(sid domain.PlayerID, code domain.RoomCode, ev core.Event) {
	env := core.Envelope{From: sid, Event: ev}

	if join, ok := ev.(core.SetPlayerName); ok {
		if _, err := domain.ValidateDisplayName(join.Name); err != nil {
			log.Debug().Err(err).Str("module", "app.orchestrator").Str("sid", string(sid)).Str("room", string(code)).Msg("rejected display name")
			return
		}
		prev, ok := o.Registry.SetRoom(sid, code)
		if !ok {
			return
		}
		if prev != "" && prev != code {
			log.Info().Str("module", "app.orchestrator").Str("sid", string(sid)).Str("from_room", string(prev)).Str("room", string(code)).Msg("switching room")
			o.Rooms.Dispatch(prev, core.Envelope{From: sid, Event: core.Disconnect{}}, false)
		}
		o.Rooms.Dispatch(code, env, true)
		return
	}

	room, ok := o.Registry.RoomOf(sid)
	if !ok || room != code {
		log.Debug().Str("module", "app.orchestrator").Str("sid", string(sid)).Str("room", string(code)).Str("event", ev.Type()).Msg("event outside bound room dropped")
		return
	}
	o.Rooms.Dispatch(code, env, false)
}

// OnDisconnect releases the connection and removes its player from the room.
func (o *Orchestrator) OnDisconnect(sid domain.PlayerID) {
	room, ok := o.Registry.Unbind(sid)
	if !ok {
		return
	}
	o.Rooms.Dispatch(room, core.Envelope{From: sid, Event: core.Disconnect{}}, false)
}
