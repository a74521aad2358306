package core

import (
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dkeye/Doodle/internal/domain"
	"github.com/rs/zerolog/log"
)

// Options tunes room behaviour.
type Options struct {
	// Debug echoes each player's assigned word in the round results.
	Debug bool
}

// Room is the game state of one room code. State is only touched by the room's actor
// goroutine (or directly by tests through handle).
type Room struct {
	code      domain.RoomCode
	createdAt time.Time

	players     *PlayerRegistry
	submissions SubmissionTracker
	results     *domain.RoundResults
	voting      *Voting

	words  *WordPool
	boards *BoardAllocator
	out    Dispatcher
	opts   Options

	// inbox
	mu     sync.Mutex
	queue  []Envelope
	wake   chan struct{}
	closed bool

	info atomic.Pointer[domain.RoomInfo]
}

func newRoom(code domain.RoomCode, words *WordPool, boards *BoardAllocator, out Dispatcher, opts Options) *Room {
	r := &Room{
		code:   code,
		words:  words,
		boards: boards,
		out:    out,
		opts:   opts,
		wake:   make(chan struct{}, 1),
	}
	r.resetState()
	return r
}

// resetState turns the room into a brand-new empty room.
func (r *Room) resetState() {
	r.createdAt = time.Now()
	r.players = NewPlayerRegistry()
	r.submissions.Reset()
	r.results = nil
	r.voting = nil
	r.publishInfo()
}

func (r *Room) Code() domain.RoomCode { return r.code }

// Info is safe to call from any goroutine.
func (r *Room) Info() domain.RoomInfo { return *r.info.Load() }

func (r *Room) publishInfo() {
	r.info.Store(&domain.RoomInfo{
		Code:        r.code,
		PlayerCount: r.players.JoinedCount(),
		Voting:      r.voting != nil && !r.voting.Complete(),
		CreatedAt:   r.createdAt,
	})
}

// handle applies one event and dispatches the resulting outbound events.
// It reports true when a removal left the room without joined players.
func (r *Room) handle(env Envelope) (empty bool) {
	defer r.publishInfo()

	switch ev := env.Event.(type) {
	case SetPlayerName:
		r.setPlayerName(env.From, ev)
	case SubmitDrawing:
		r.submitDrawing(env.From, ev)
	case UnsubmitDrawing:
		r.unsubmitDrawing(env.From)
	case VoteWord:
		r.voteWord(env.From, ev)
	case NewRound:
		r.newRound(env.From)
	case Disconnect:
		return r.removePlayer(env.From)
	default:
		log.Warn().Str("module", "core.room").Str("room", string(r.code)).Msg("unknown event")
	}
	return false
}

func (r *Room) setPlayerName(from domain.PlayerID, ev SetPlayerName) {
	p, ok := r.players.Get(from)
	if !ok {
		p = domain.NewPlayer(from)
		r.players.Add(p)
	}
	name, err := domain.ValidateDisplayName(ev.Name)
	if err != nil {
		log.Debug().Err(err).Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(from)).Msg("rejected display name")
		return
	}
	p.DisplayName = name

	if !p.Joined {
		words, err := r.words.Draw(1, r.reservedWords()...)
		if err != nil {
			log.Error().Err(err).Str("module", "core.room").Str("room", string(r.code)).Msg("word allocation failed")
			return
		}
		p.AssignedWord = words[0]
		p.AssignedBoard = r.boards.Assign()
		p.Joined = true
		if r.results != nil {
			r.results.AllWords = insertSorted(r.results.AllWords, p.AssignedWord)
			r.voting.AddAssigned(p.AssignedWord)
		}
		log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(from)).Str("name", name).Msg("player joined")
	}

	r.sendTo(p.ID, domain.EventWordAssigned, domain.WordAssigned{Word: p.AssignedWord, Board: p.AssignedBoard})
	r.broadcastRoster()
	r.updateSubmissions()
}

func (r *Room) submitDrawing(from domain.PlayerID, ev SubmitDrawing) {
	p, ok := r.players.Joined(from)
	if !ok || r.results != nil {
		return
	}
	p.Drawing = ev.Drawing
	p.DrawingRotation = ev.Rotation
	p.Submitted = true
	r.updateSubmissions()
}

func (r *Room) unsubmitDrawing(from domain.PlayerID) {
	p, ok := r.players.Joined(from)
	if !ok || r.results != nil || !p.Submitted {
		return
	}
	p.ClearDrawing()
	r.updateSubmissions()
}

func (r *Room) voteWord(from domain.PlayerID, ev VoteWord) {
	if r.voting == nil || r.voting.Complete() {
		return
	}
	p, ok := r.players.Joined(from)
	if !ok {
		return
	}
	if !slices.Contains(r.results.AllWords, ev.Word) || r.voting.IsEliminated(ev.Word) {
		return
	}
	if !r.voting.Cast(from, ev.Word) {
		return
	}
	r.broadcast(domain.EventWordVotedOut, domain.WordVotedOut{Word: ev.Word, PlayerID: p.ID, DisplayName: p.DisplayName})
	r.voting.Settle(r.isJoined)
	r.announceTurn()
}

// announceTurn broadcasts either the next turn or the final score.
func (r *Room) announceTurn() {
	if r.voting.Complete() {
		res := r.voting.Result(r.results.AllWords)
		log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("score", res.Score).Msg("voting complete")
		r.broadcast(domain.EventVotingComplete, res)
		return
	}
	r.broadcast(domain.EventNextPlayerTurn, r.voting.TurnView())
}

func (r *Room) newRound(from domain.PlayerID) {
	if _, ok := r.players.Joined(from); !ok {
		return
	}
	joined := r.players.JoinedPlayers()
	words, err := r.words.Draw(len(joined))
	if err != nil {
		log.Error().Err(err).Str("module", "core.room").Str("room", string(r.code)).Msg("word allocation failed")
		return
	}

	r.results = nil
	r.voting = nil
	r.submissions.Reset()

	current := make([]string, len(joined))
	for i, p := range joined {
		current[i] = p.AssignedBoard
	}
	rotated := r.boards.Rotate(current)
	for i, p := range joined {
		p.ClearDrawing()
		p.AssignedWord = words[i]
		p.AssignedBoard = rotated[i]
	}
	for _, p := range joined {
		r.sendTo(p.ID, domain.EventNewWord, domain.NewWord{Word: p.AssignedWord})
		r.sendTo(p.ID, domain.EventNewBoard, domain.NewBoard{Board: p.AssignedBoard})
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Int("players", len(joined)).Msg("new round")
	r.broadcast(domain.EventNewRoundStarted, domain.NewRoundStarted{PlayerCount: len(joined)})
	r.broadcastRoster()
	r.updateSubmissions()
}

func (r *Room) removePlayer(id domain.PlayerID) (empty bool) {
	p, ok := r.players.Remove(id)
	if !ok {
		return false
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("sid", string(id)).Msg("player removed")
	if r.players.JoinedCount() == 0 {
		return true
	}
	if !p.Joined {
		return false
	}
	r.broadcastRoster()
	if r.voting != nil && r.voting.Settle(r.isJoined) {
		r.announceTurn()
	}
	r.updateSubmissions()
	return false
}

// updateSubmissions recomputes the submission status, broadcasts it and opens voting on
// the false→true transition.
func (r *Room) updateSubmissions() {
	joined := r.players.JoinedPlayers()
	status, becameTrue := r.submissions.Recompute(joined)
	r.broadcast(domain.EventAllSubmitted, status)
	if becameTrue && r.results == nil {
		r.openVoting(joined)
	}
}

func (r *Room) openVoting(joined []*domain.Player) {
	assigned := make([]string, len(joined))
	for i, p := range joined {
		assigned[i] = p.AssignedWord
	}
	fillers, err := r.words.Draw(len(joined), r.assignedWords()...)
	if err != nil {
		log.Error().Err(err).Str("module", "core.room").Str("room", string(r.code)).Msg("filler allocation failed")
		return
	}

	drawings := make([]domain.Drawing, len(joined))
	for i, p := range joined {
		drawings[i] = domain.Drawing{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Drawing:     p.Drawing,
			Rotation:    p.DrawingRotation,
		}
		if r.opts.Debug {
			drawings[i].Word = p.AssignedWord
		}
	}
	all := append(assigned, fillers...)
	sort.Strings(all)

	r.results = &domain.RoundResults{Drawings: drawings, AllWords: all}
	r.voting = NewVoting(joined)
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Int("words", len(all)).Msg("voting started")

	r.broadcast(domain.EventGameResults, domain.GameResults{Drawings: drawings, AllWords: all})
	r.broadcast(domain.EventVotingStarted, domain.VotingStarted{
		TurnOrder:   r.voting.TurnOrder(),
		CurrentTurn: r.voting.TurnView(),
	})
}

func (r *Room) broadcastRoster() {
	joined := r.players.JoinedPlayers()
	list := make([]domain.PlayerView, len(joined))
	for i, p := range joined {
		list[i] = domain.PlayerView{ID: p.ID, DisplayName: p.DisplayName, Submitted: p.Submitted}
	}
	r.broadcast(domain.EventPlayerCount, domain.PlayerCount{Count: len(joined)})
	r.broadcast(domain.EventPlayerList, domain.PlayerList{Players: list})
}

// assignedWords lists the words currently held by joined players of the room.
func (r *Room) assignedWords() []string {
	joined := r.players.JoinedPlayers()
	out := make([]string, 0, len(joined))
	for _, p := range joined {
		if p.AssignedWord != "" {
			out = append(out, p.AssignedWord)
		}
	}
	return out
}

// reservedWords are the words a new player must not receive: those held by joined
// players and, while results exist, every word on the voting list.
func (r *Room) reservedWords() []string {
	out := r.assignedWords()
	if r.results != nil {
		out = append(out, r.results.AllWords...)
	}
	return out
}

func (r *Room) isJoined(id domain.PlayerID) bool {
	_, ok := r.players.Joined(id)
	return ok
}

func (r *Room) broadcast(typ string, data any) {
	r.out.ToRoom(r.code, r.players.JoinedIDs(), domain.Outbound{Type: typ, Data: data})
}

func (r *Room) sendTo(id domain.PlayerID, typ string, data any) {
	r.out.ToPlayer(r.code, id, domain.Outbound{Type: typ, Data: data})
}

// insertSorted returns a new slice; words may already have been handed to the dispatcher.
func insertSorted(words []string, w string) []string {
	i := sort.SearchStrings(words, w)
	return slices.Insert(slices.Clone(words), i, w)
}
