package standings

import (
	"testing"
	"time"

	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contestStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testContest() *models.Contest {
	return &models.Contest{
		ID:        1,
		StartTime: contestStart,
		EndTime:   contestStart.Add(2 * time.Hour),
	}
}

func testProblems(ids ...uint) []models.Problem {
	problems := make([]models.Problem, 0, len(ids))
	for _, id := range ids {
		problems = append(problems, models.Problem{ID: id})
	}
	return problems
}

func sub(author string, problem uint, offset time.Duration, correct bool) models.Submission {
	return models.Submission{
		AuthorID:  author,
		Author:    models.User{ID: author, Username: author},
		ProblemID: problem,
		Correct:   correct,
		CreatedAt: contestStart.Add(offset),
	}
}

func TestComputeTwoUserScenario(t *testing.T) {
	contest := testContest()
	problems := testProblems(1, 2)
	subs := []models.Submission{
		// A: one wrong try on problem 1, then solves at minute 10.
		sub("alice", 1, 4*time.Minute, false),
		sub("alice", 1, 10*time.Minute, true),
		sub("alice", 2, 40*time.Minute, false),
		// B: solves problem 1 at minute 30 cleanly, problem 2 at minute 5.
		sub("bob", 1, 30*time.Minute, true),
		sub("bob", 2, 5*time.Minute, true),
	}

	rows := Compute(contest, problems, subs)
	require.Len(t, rows, 2)

	// B ranks first on solved count despite the higher penalty.
	assert.Equal(t, "bob", rows[0].UserID)
	assert.Equal(t, 2, rows[0].Solved)
	assert.Equal(t, 35, rows[0].Penalty)

	assert.Equal(t, "alice", rows[1].UserID)
	assert.Equal(t, 1, rows[1].Solved)
	assert.Equal(t, 30, rows[1].Penalty)

	require.Len(t, rows[1].Problems, 2)
	assert.Equal(t, StatusSolved, rows[1].Problems[0].Status)
	assert.Equal(t, 1, rows[1].Problems[0].Failed)
	assert.Equal(t, 10, rows[1].Problems[0].Minutes)
	assert.Equal(t, StatusWrong, rows[1].Problems[1].Status)
	assert.Equal(t, 1, rows[1].Problems[1].Failed)
}

func TestComputeEmptySubmissions(t *testing.T) {
	rows := Compute(testContest(), testProblems(1, 2), nil)
	assert.Empty(t, rows)
}

func TestComputeFiltersWindowAndProblemSet(t *testing.T) {
	contest := testContest()
	problems := testProblems(1)
	subs := []models.Submission{
		// Before the window, after the window, and a foreign problem: none
		// of these count. Only carol's in-window solve does.
		sub("alice", 1, -time.Minute, true),
		sub("alice", 1, 3*time.Hour, true),
		sub("alice", 99, 10*time.Minute, true),
		sub("carol", 1, 20*time.Minute, true),
	}

	rows := Compute(contest, problems, subs)
	require.Len(t, rows, 1)
	assert.Equal(t, "carol", rows[0].UserID)
	assert.Equal(t, 1, rows[0].Solved)
	assert.Equal(t, 20, rows[0].Penalty)
}

func TestComputeFirstCorrectAttemptWins(t *testing.T) {
	contest := testContest()
	subs := []models.Submission{
		sub("alice", 1, 5*time.Minute, false),
		sub("alice", 1, 15*time.Minute, true),
		sub("alice", 1, 25*time.Minute, false), // after the solve, ignored
		sub("alice", 1, 35*time.Minute, true),  // second solve, ignored
	}

	rows := Compute(contest, testProblems(1), subs)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Solved)
	// 15 minutes + one wrong attempt before the solve.
	assert.Equal(t, 15+WrongAttemptPenalty, rows[0].Penalty)
}

func TestComputeUnsolvedContributesNothing(t *testing.T) {
	contest := testContest()
	subs := []models.Submission{
		sub("alice", 1, 1*time.Minute, false),
		sub("alice", 1, 2*time.Minute, false),
		sub("alice", 1, 3*time.Minute, false),
		sub("alice", 2, 8*time.Minute, true),
	}

	rows := Compute(contest, testProblems(1, 2), subs)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Solved)
	assert.Equal(t, 8, rows[0].Penalty)
	assert.Equal(t, StatusWrong, rows[0].Problems[0].Status)
	assert.Equal(t, 3, rows[0].Problems[0].Failed)
}

func TestComputeFloorsMinutes(t *testing.T) {
	contest := testContest()
	subs := []models.Submission{
		sub("alice", 1, 10*time.Minute+59*time.Second, true),
	}

	rows := Compute(contest, testProblems(1), subs)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].Penalty)
}

func TestComputeDeterministicTieOrder(t *testing.T) {
	contest := testContest()
	subs := []models.Submission{
		sub("dave", 1, 10*time.Minute, true),
		sub("carol", 1, 10*time.Minute, true),
		sub("bob", 1, 10*time.Minute, true),
	}

	rows := Compute(contest, testProblems(1), subs)
	require.Len(t, rows, 3)
	assert.Equal(t, "bob", rows[0].UserID)
	assert.Equal(t, "carol", rows[1].UserID)
	assert.Equal(t, "dave", rows[2].UserID)
}

func TestComputeIsIdempotent(t *testing.T) {
	contest := testContest()
	problems := testProblems(1, 2)
	subs := []models.Submission{
		sub("alice", 1, 4*time.Minute, false),
		sub("alice", 1, 10*time.Minute, true),
		sub("bob", 2, 5*time.Minute, true),
	}

	first := Compute(contest, problems, subs)
	second := Compute(contest, problems, subs)
	assert.Equal(t, first, second)
}

func TestComputeSolvedSumMatchesSolvedPairs(t *testing.T) {
	contest := testContest()
	problems := testProblems(1, 2, 3)
	subs := []models.Submission{
		sub("alice", 1, 5*time.Minute, true),
		sub("alice", 1, 8*time.Minute, true), // same pair, counted once
		sub("alice", 2, 9*time.Minute, false),
		sub("bob", 2, 12*time.Minute, true),
		sub("bob", 3, 14*time.Minute, true),
		sub("carol", 3, 20*time.Minute, false),
	}

	rows := Compute(contest, problems, subs)
	total := 0
	for _, row := range rows {
		total += row.Solved
	}
	// Distinct (author, problem) pairs with a correct submission: three.
	assert.Equal(t, 3, total)
}
