package app

import (
	"errors"

	"github.com/dkeye/Doodle/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Conn is the outbound side of a client connection. TrySend must never block.
type Conn interface {
	TrySend(b []byte) error
	Close()
}

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a connection that could not take a frame.
type Policy interface {
	OnBackpressure(code domain.RoomCode, sid domain.PlayerID, err error) BackpressureAction
}

// SimplePolicy kicks slow members. A missed frame would leave the client with a stale
// view of the room.
type SimplePolicy struct{}

func (SimplePolicy) OnBackpressure(_ domain.RoomCode, _ domain.PlayerID, err error) BackpressureAction {
	if errors.Is(err, ErrConnClosed) {
		return NoAction
	}
	return KickMember
}
