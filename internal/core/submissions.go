package core

import "github.com/dkeye/Doodle/internal/domain"

// SubmissionTracker derives "has every joined player submitted" for a room.
type SubmissionTracker struct {
	allSubmitted bool
}

// Recompute refreshes the status from the joined players. becameTrue is set only on a
// false→true transition. A room without joined players is never all-submitted.
func (t *SubmissionTracker) Recompute(joined []*domain.Player) (status domain.AllSubmitted, becameTrue bool) {
	submitted := 0
	for _, p := range joined {
		if p.Submitted {
			submitted++
		}
	}
	all := len(joined) > 0 && submitted == len(joined)
	becameTrue = all && !t.allSubmitted
	t.allSubmitted = all
	return domain.AllSubmitted{
		AllSubmitted:   all,
		SubmittedCount: submitted,
		TotalPlayers:   len(joined),
	}, becameTrue
}

func (t *SubmissionTracker) AllSubmitted() bool { return t.allSubmitted }

func (t *SubmissionTracker) Reset() { t.allSubmitted = false }
