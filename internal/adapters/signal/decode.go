package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Doodle/internal/core"
	"github.com/dkeye/Doodle/internal/domain"
)

var (
	ErrBadPayload      = errors.New("bad payload")
	ErrMissingRoomCode = errors.New("missing roomCode")
	ErrUnknownType     = errors.New("unknown message type")
)

const typePing = "ping"

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type payload struct {
	RoomCode string  `json:"roomCode"`
	Name     string  `json:"name"`
	Drawing  string  `json:"drawing"`
	Rotation float64 `json:"rotation"`
	Word     string  `json:"word"`
}

func parseEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return env, nil
}

// event decodes the data of a game message. Every game message names its room.
func (env envelope) event() (domain.RoomCode, core.Event, error) {
	var p payload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrBadPayload, env.Type, err)
		}
	}

	var ev core.Event
	switch env.Type {
	case "setPlayerName":
		ev = core.SetPlayerName{Name: p.Name}
	case "submitDrawing":
		ev = core.SubmitDrawing{Drawing: p.Drawing, Rotation: p.Rotation}
	case "voteWord":
		ev = core.VoteWord{Word: p.Word}
	case "newRound":
		ev = core.NewRound{}
	case "unsubmitDrawing":
		ev = core.UnsubmitDrawing{}
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if p.RoomCode == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingRoomCode, env.Type)
	}
	return domain.RoomCode(p.RoomCode), ev, nil
}
