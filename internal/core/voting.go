package core

import (
	"fmt"
	"sort"

	"github.com/dkeye/Doodle/internal/domain"
)

type turn struct {
	id   domain.PlayerID
	name string
	word string
}

// Voting is the turn-ordered word elimination of one round.
// The turn order is a snapshot of the joined players when voting opened and stays
// authoritative even if players leave.
type Voting struct {
	turnOrder  []turn
	current    int
	eliminated map[string]struct{}
	votes      map[domain.PlayerID]string
	assigned   map[string]struct{}
	complete   bool
}

func NewVoting(joined []*domain.Player) *Voting {
	v := &Voting{
		turnOrder:  make([]turn, len(joined)),
		eliminated: make(map[string]struct{}),
		votes:      make(map[domain.PlayerID]string),
		assigned:   make(map[string]struct{}, len(joined)),
	}
	for i, p := range joined {
		v.turnOrder[i] = turn{id: p.ID, name: p.DisplayName, word: p.AssignedWord}
		v.assigned[p.AssignedWord] = struct{}{}
	}
	v.complete = len(v.turnOrder) == 0
	return v
}

// Current returns whose turn it is.
func (v *Voting) Current() (turn, bool) {
	if v.complete || v.current >= len(v.turnOrder) {
		return turn{}, false
	}
	return v.turnOrder[v.current], true
}

func (v *Voting) Complete() bool { return v.complete }

func (v *Voting) IsEliminated(word string) bool {
	_, ok := v.eliminated[word]
	return ok
}

// Cast records a vote of the current player and moves the turn on.
// It reports false and changes nothing when it is not id's turn.
func (v *Voting) Cast(id domain.PlayerID, word string) bool {
	cur, ok := v.Current()
	if !ok || cur.id != id {
		return false
	}
	v.votes[id] = word
	v.eliminated[word] = struct{}{}
	v.current++
	return true
}

// Settle skips turns of players for which present reports false and marks the vote
// complete once the index reaches the end of the turn order.
// moved reports whether the index advanced.
func (v *Voting) Settle(present func(domain.PlayerID) bool) (moved bool) {
	if v.complete {
		return false
	}
	for v.current < len(v.turnOrder) && !present(v.turnOrder[v.current].id) {
		v.current++
		moved = true
	}
	if v.current >= len(v.turnOrder) {
		v.complete = true
	}
	return moved
}

// AddAssigned registers the word of a player who joined after voting opened, so the
// word is reported as a player word rather than a filler.
func (v *Voting) AddAssigned(word string) {
	v.assigned[word] = struct{}{}
}

func (v *Voting) TurnOrder() []domain.PlayerView {
	out := make([]domain.PlayerView, len(v.turnOrder))
	for i, t := range v.turnOrder {
		out[i] = domain.PlayerView{ID: t.id, DisplayName: t.name, Submitted: true}
	}
	return out
}

func (v *Voting) TurnView() domain.TurnView {
	cur, _ := v.Current()
	return domain.TurnView{PlayerID: cur.id, DisplayName: cur.name, TurnIndex: v.current}
}

// Result scores the vote: a player word that survived elimination counts as correct,
// and the score is "correct/turns".
func (v *Voting) Result(allWords []string) domain.VotingComplete {
	correct := 0
	seen := make(map[string]struct{}, len(v.turnOrder))
	for _, t := range v.turnOrder {
		if _, dup := seen[t.word]; dup {
			continue
		}
		seen[t.word] = struct{}{}
		if !v.IsEliminated(t.word) {
			correct++
		}
	}

	var remaining []string
	for _, w := range allWords {
		if !v.IsEliminated(w) {
			remaining = append(remaining, w)
		}
	}
	eliminated := make([]string, 0, len(v.eliminated))
	for w := range v.eliminated {
		eliminated = append(eliminated, w)
	}
	sort.Strings(eliminated)

	votes := make(map[domain.PlayerID]string, len(v.votes))
	for id, w := range v.votes {
		votes[id] = w
	}
	return domain.VotingComplete{
		Score:           fmt.Sprintf("%d/%d", correct, len(v.turnOrder)),
		CorrectWords:    correct,
		TotalPlayers:    len(v.turnOrder),
		RemainingWords:  v.split(remaining),
		EliminatedWords: v.split(eliminated),
		Votes:           votes,
	}
}

func (v *Voting) split(words []string) domain.WordSplit {
	s := domain.WordSplit{PlayerWords: []string{}, FillerWords: []string{}}
	for _, w := range words {
		if _, ok := v.assigned[w]; ok {
			s.PlayerWords = append(s.PlayerWords, w)
		} else {
			s.FillerWords = append(s.FillerWords, w)
		}
	}
	return s
}
