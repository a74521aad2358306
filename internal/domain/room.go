package domain

import "time"

// RoomCode is supplied by clients and matched exactly (case-sensitive, no normalization).
type RoomCode string

type RoomInfo struct {
	Code        RoomCode  `json:"code"`
	PlayerCount int       `json:"player_count"`
	Voting      bool      `json:"voting"`
	CreatedAt   time.Time `json:"created_at"`
}

// Drawing is one entry of the round results.
type Drawing struct {
	PlayerID    PlayerID `json:"playerId"`
	DisplayName string   `json:"displayName"`
	Drawing     string   `json:"drawing"`
	Rotation    float64  `json:"rotation"`
	Word        string   `json:"word,omitempty"`
}

// RoundResults is produced once every joined player has submitted.
// AllWords is the sorted union of assigned words and filler words.
type RoundResults struct {
	Drawings []Drawing
	AllWords []string
}

// WordSplit partitions a word list into words that were assigned to players and fillers.
type WordSplit struct {
	PlayerWords []string `json:"playerWords"`
	FillerWords []string `json:"fillerWords"`
}
