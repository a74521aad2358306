package core

import "github.com/dkeye/Doodle/internal/domain"

// Dispatcher delivers outbound events to connections. Implementations must not block:
// a room calls it from its actor goroutine after each state mutation.
type Dispatcher interface {
	// ToRoom sends the same event to every listed player.
	ToRoom(code domain.RoomCode, to []domain.PlayerID, ev domain.Outbound)
	// ToPlayer sends an event to a single player.
	ToPlayer(code domain.RoomCode, to domain.PlayerID, ev domain.Outbound)
}

// Event is an inbound game event, already decoded by the transport.
type Event interface {
	Type() string
}

type SetPlayerName struct {
	Name string
}

type SubmitDrawing struct {
	Drawing  string
	Rotation float64
}

type VoteWord struct {
	Word string
}

type NewRound struct{}

type UnsubmitDrawing struct{}

// Disconnect is synthesized by the gateway when a connection goes away or moves to
// another room.
type Disconnect struct{}

func (SetPlayerName) Type() string   { return "setPlayerName" }
func (SubmitDrawing) Type() string   { return "submitDrawing" }
func (VoteWord) Type() string        { return "voteWord" }
func (NewRound) Type() string        { return "newRound" }
func (UnsubmitDrawing) Type() string { return "unsubmitDrawing" }
func (Disconnect) Type() string      { return "disconnect" }

// Envelope binds an event to the connection that produced it.
type Envelope struct {
	From  domain.PlayerID
	Event Event
}
