package app

import (
	"encoding/json"

	"github.com/dkeye/Doodle/internal/domain"
	"github.com/rs/zerolog/log"
)

// Dispatcher delivers room events to connections found in the Registry.
type Dispatcher struct {
	Registry *Registry
	Policy   Policy
}

func NewDispatcher(reg *Registry, policy Policy) *Dispatcher {
	return &Dispatcher{Registry: reg, Policy: policy}
}

// Encode renders an outbound event as the {"type", "data"} envelope.
func Encode(ev domain.Outbound) ([]byte, error) {
	return json.Marshal(ev)
}

func (d *Dispatcher) ToRoom(code domain.RoomCode, to []domain.PlayerID, ev domain.Outbound) {
	b, err := Encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.dispatcher").Str("room", string(code)).Str("type", ev.Type).Msg("encode")
		return
	}
	for _, sid := range to {
		d.deliver(code, sid, b)
	}
}

func (d *Dispatcher) ToPlayer(code domain.RoomCode, to domain.PlayerID, ev domain.Outbound) {
	b, err := Encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.dispatcher").Str("room", string(code)).Str("type", ev.Type).Msg("encode")
		return
	}
	d.deliver(code, to, b)
}

func (d *Dispatcher) deliver(code domain.RoomCode, sid domain.PlayerID, b []byte) {
	conn, ok := d.Registry.Conn(sid)
	if !ok {
		return
	}
	err := conn.TrySend(b)
	if err == nil || d.Policy == nil {
		return
	}
	switch d.Policy.OnBackpressure(code, sid, err) {
	case KickMember:
		log.Warn().Err(err).Str("module", "app.dispatcher").Str("room", string(code)).Str("sid", string(sid)).Msg("kicking slow member")
		d.Registry.Cancel(sid)
	case DropFrame:
		log.Debug().Err(err).Str("module", "app.dispatcher").Str("room", string(code)).Str("sid", string(sid)).Msg("frame dropped")
	case NoAction:
	}
}
