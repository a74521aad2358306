package signal

import (
	"testing"

	"github.com/dkeye/Doodle/internal/core"
	"github.com/dkeye/Doodle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		code    domain.RoomCode
		ev      core.Event
		wantErr error
	}{
		{
			name: "setPlayerName",
			in:   `{"type":"setPlayerName","data":{"name":"Ann","roomCode":"ABC"}}`,
			code: "ABC",
			ev:   core.SetPlayerName{Name: "Ann"},
		},
		{
			name: "submitDrawing",
			in:   `{"type":"submitDrawing","data":{"drawing":"data:image/png;base64,AA","rotation":180,"roomCode":"ABC"}}`,
			code: "ABC",
			ev:   core.SubmitDrawing{Drawing: "data:image/png;base64,AA", Rotation: 180},
		},
		{
			name: "voteWord",
			in:   `{"type":"voteWord","data":{"word":"cat","roomCode":"abc"}}`,
			code: "abc",
			ev:   core.VoteWord{Word: "cat"},
		},
		{
			name: "newRound",
			in:   `{"type":"newRound","data":{"roomCode":"ABC"}}`,
			code: "ABC",
			ev:   core.NewRound{},
		},
		{
			name: "unsubmitDrawing",
			in:   `{"type":"unsubmitDrawing","data":{"roomCode":"ABC"}}`,
			code: "ABC",
			ev:   core.UnsubmitDrawing{},
		},
		{
			name:    "missing room code",
			in:      `{"type":"newRound","data":{}}`,
			wantErr: ErrMissingRoomCode,
		},
		{
			name:    "missing data",
			in:      `{"type":"newRound"}`,
			wantErr: ErrMissingRoomCode,
		},
		{
			name:    "unknown type",
			in:      `{"type":"disconnect","data":{"roomCode":"ABC"}}`,
			wantErr: ErrUnknownType,
		},
		{
			name:    "wrong field type",
			in:      `{"type":"voteWord","data":{"word":7,"roomCode":"ABC"}}`,
			wantErr: ErrBadPayload,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := parseEnvelope([]byte(tt.in))
			require.NoError(t, err)

			code, ev, err := env.event()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.ev, ev)
		})
	}
}

func TestParseEnvelope_Malformed(t *testing.T) {
	_, err := parseEnvelope([]byte(`{"type":`))
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "buckets are per connection")

	rl.Forget("a")
	assert.True(t, rl.Allow("a"))

	unlimited := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, unlimited.Allow("a"))
	}
}
