package domain

// Outbound event names.
const (
	EventWordAssigned    = "wordAssigned"
	EventNewWord         = "newWord"
	EventNewBoard        = "newBoard"
	EventPlayerCount     = "playerCount"
	EventPlayerList      = "playerList"
	EventAllSubmitted    = "allSubmitted"
	EventGameResults     = "gameResults"
	EventVotingStarted   = "votingStarted"
	EventWordVotedOut    = "wordVotedOut"
	EventNextPlayerTurn  = "nextPlayerTurn"
	EventVotingComplete  = "votingComplete"
	EventNewRoundStarted = "newRoundStarted"
)

// Outbound is a server → client message. Data is encoded as JSON by the transport.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type WordAssigned struct {
	Word  string `json:"word"`
	Board string `json:"board"`
}

type NewWord struct {
	Word string `json:"word"`
}

type NewBoard struct {
	Board string `json:"board"`
}

type PlayerCount struct {
	Count int `json:"count"`
}

// PlayerView is the public part of a player.
type PlayerView struct {
	ID          PlayerID `json:"id"`
	DisplayName string   `json:"displayName"`
	Submitted   bool     `json:"submitted"`
}

type PlayerList struct {
	Players []PlayerView `json:"players"`
}

type AllSubmitted struct {
	AllSubmitted   bool `json:"allSubmitted"`
	SubmittedCount int  `json:"submittedCount"`
	TotalPlayers   int  `json:"totalPlayers"`
}

type GameResults struct {
	Drawings []Drawing `json:"drawings"`
	AllWords []string  `json:"allWords"`
}

type TurnView struct {
	PlayerID    PlayerID `json:"playerId"`
	DisplayName string   `json:"displayName"`
	TurnIndex   int      `json:"turnIndex"`
}

type VotingStarted struct {
	TurnOrder   []PlayerView `json:"turnOrder"`
	CurrentTurn TurnView     `json:"currentTurn"`
}

type WordVotedOut struct {
	Word        string   `json:"word"`
	PlayerID    PlayerID `json:"playerId"`
	DisplayName string   `json:"displayName"`
}

type VotingComplete struct {
	Score           string              `json:"score"`
	CorrectWords    int                 `json:"correctWords"`
	TotalPlayers    int                 `json:"totalPlayers"`
	RemainingWords  WordSplit           `json:"remainingWords"`
	EliminatedWords WordSplit           `json:"eliminatedWords"`
	Votes           map[PlayerID]string `json:"votes"`
}

type NewRoundStarted struct {
	PlayerCount int `json:"playerCount"`
}
