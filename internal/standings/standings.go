// Package standings turns a contest's submission history into a ranked
// table of participants. Compute is a pure function of its inputs: feeding
// it the same snapshot twice yields the same table.
package standings

import (
	"sort"
	"time"

	"github.com/HASGITH/Mathforces/internal/database/models"
)

// WrongAttemptPenalty is the minutes added to a solved problem's penalty
// for every failed attempt made before the accepted solve.
const WrongAttemptPenalty = 20

type ProblemStatus string

const (
	StatusSolved ProblemStatus = "OK"
	StatusWrong  ProblemStatus = "WA"
)

// ProblemCell is one participant's outcome on one problem. Minutes is only
// meaningful for solved cells.
type ProblemCell struct {
	ProblemID uint          `json:"problem_id"`
	Status    ProblemStatus `json:"status"`
	Failed    int           `json:"failed"`
	Minutes   int           `json:"minutes"`
}

type Row struct {
	UserID   string        `json:"user_id"`
	Username string        `json:"username"`
	Solved   int           `json:"solved"`
	Penalty  int           `json:"penalty"`
	Problems []ProblemCell `json:"problems"`
}

// Compute builds the standings for a contest. The participants are exactly
// the distinct authors among the given submissions after filtering to the
// contest window and problem set; callers are expected to have already
// excluded disqualified authors.
//
// A solved problem costs whole minutes from contest start to the first
// correct attempt, plus WrongAttemptPenalty per earlier failed attempt.
// Unsolved problems cost nothing. Rows are ordered by solved count
// descending, penalty ascending, then user ID so the output is
// deterministic.
func Compute(contest *models.Contest, problems []models.Problem, subs []models.Submission) []Row {
	type attemptKey struct {
		author  string
		problem uint
	}

	problemSet := make(map[uint]bool, len(problems))
	for _, p := range problems {
		problemSet[p.ID] = true
	}

	attempts := make(map[attemptKey][]models.Submission)
	usernames := make(map[string]string)
	var authors []string
	for _, sub := range subs {
		if !problemSet[sub.ProblemID] {
			continue
		}
		if sub.CreatedAt.Before(contest.StartTime) || sub.CreatedAt.After(contest.EndTime) {
			continue
		}
		key := attemptKey{sub.AuthorID, sub.ProblemID}
		if _, seen := usernames[sub.AuthorID]; !seen {
			usernames[sub.AuthorID] = sub.Author.Username
			authors = append(authors, sub.AuthorID)
		}
		attempts[key] = append(attempts[key], sub)
	}

	rows := make([]Row, 0, len(authors))
	for _, author := range authors {
		row := Row{
			UserID:   author,
			Username: usernames[author],
			Problems: make([]ProblemCell, 0, len(problems)),
		}
		for _, problem := range problems {
			tries := attempts[attemptKey{author, problem.ID}]
			sort.SliceStable(tries, func(i, j int) bool {
				return tries[i].CreatedAt.Before(tries[j].CreatedAt)
			})
			cell := solveProblemCell(contest.StartTime, problem.ID, tries)
			if cell.Status == StatusSolved {
				row.Solved++
				row.Penalty += cell.Minutes + cell.Failed*WrongAttemptPenalty
			}
			row.Problems = append(row.Problems, cell)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Solved != rows[j].Solved {
			return rows[i].Solved > rows[j].Solved
		}
		if rows[i].Penalty != rows[j].Penalty {
			return rows[i].Penalty < rows[j].Penalty
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows
}

// solveProblemCell scores one author's ordered attempts on one problem. The
// accepted solve is the first correct attempt; failed counts only attempts
// strictly before it.
func solveProblemCell(start time.Time, problemID uint, tries []models.Submission) ProblemCell {
	cell := ProblemCell{ProblemID: problemID, Status: StatusWrong}
	for i, try := range tries {
		if !try.Correct {
			continue
		}
		failed := 0
		for _, earlier := range tries[:i] {
			if earlier.CreatedAt.Before(try.CreatedAt) {
				failed++
			}
		}
		cell.Status = StatusSolved
		cell.Failed = failed
		cell.Minutes = int(try.CreatedAt.Sub(start) / time.Minute)
		return cell
	}
	cell.Failed = len(tries)
	return cell
}
