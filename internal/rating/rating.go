// Package rating implements the pairwise Elo update applied after a
// contest. Calculate is pure: it reads a snapshot of participants and
// produces deltas without touching any shared state, so no participant's
// update can leak into another's expectation.
package rating

import "math"

// DefaultK is the Elo K factor used when the config does not override it.
const DefaultK = 30

// Newcomer bonus, granted only when the participant solved at least one
// problem in the contest: +50 for the first rated contest, +25 for the
// second, nothing afterwards.
const (
	firstContestBonus  = 50
	secondContestBonus = 25
)

// Participant is an immutable snapshot of one contestant going into the
// rating batch. PastContests counts previously rated contests (rating
// history entries), not submissions.
type Participant struct {
	UserID       string
	OldRating    int
	Solved       int
	Penalty      int
	PastContests int
}

type Delta struct {
	UserID    string `json:"user_id"`
	OldRating int    `json:"old_rating"`
	Change    int    `json:"change"`
	NewRating int    `json:"new_rating"`
}

// Calculate runs the all-pairs Elo comparison over the participant
// snapshot and returns one delta per participant, in input order. The
// float accumulation is rounded half away from zero at the very end.
//
// O(n²) over the cohort; contest fields are tens to low hundreds of
// people, so this is not worth anything cleverer.
func Calculate(participants []Participant, k float64) []Delta {
	deltas := make([]Delta, len(participants))
	for i, p := range participants {
		change := 0.0
		for j, q := range participants {
			if i == j {
				continue
			}
			change += k * (headToHead(p, q) - ExpectedScore(p.OldRating, q.OldRating))
		}
		change += float64(newcomerBonus(p))

		rounded := int(math.Round(change))
		deltas[i] = Delta{
			UserID:    p.UserID,
			OldRating: p.OldRating,
			Change:    rounded,
			NewRating: p.OldRating + rounded,
		}
	}
	return deltas
}

// ExpectedScore is the standard Elo expectation of a beating b.
func ExpectedScore(a, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/400))
}

// headToHead scores the actual outcome of p against q: solved count
// decides outright, equal solved counts fall back to penalty time. A
// penalty edge on a solved tie is worth 0.75 rather than a full win.
func headToHead(p, q Participant) float64 {
	switch {
	case p.Solved > q.Solved:
		return 1
	case p.Solved < q.Solved:
		return 0
	case p.Penalty < q.Penalty:
		return 0.75
	case p.Penalty > q.Penalty:
		return 0.25
	default:
		return 0.5
	}
}

func newcomerBonus(p Participant) int {
	if p.Solved == 0 {
		return 0
	}
	switch p.PastContests {
	case 0:
		return firstContestBonus
	case 1:
		return secondContestBonus
	default:
		return 0
	}
}
