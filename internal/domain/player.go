// Package domain contains entities without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxDisplayNameLen = 32

var (
	ErrNameTooLong = errors.New("display name too long")
	ErrNameEmpty   = errors.New("display name empty")
)

// PlayerID is the ephemeral identity of a connection. A player lives as long as its
// connection does.
type PlayerID string

type Player struct {
	ID              PlayerID
	DisplayName     string
	Joined          bool
	Submitted       bool
	AssignedWord    string
	AssignedBoard   string
	Drawing         string
	DrawingRotation float64
}

// NewPlayer creates a player in the "not yet joined" state.
func NewPlayer(id PlayerID) *Player {
	return &Player{ID: id}
}

// ValidateDisplayName trims the name and checks its length in runes.
func ValidateDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return "", ErrNameTooLong
	}
	return name, nil
}

// ClearDrawing drops the submission of the current round.
func (p *Player) ClearDrawing() {
	p.Submitted = false
	p.Drawing = ""
	p.DrawingRotation = 0
}
