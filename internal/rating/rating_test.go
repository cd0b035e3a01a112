package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedScoreSymmetry(t *testing.T) {
	pairs := [][2]int{{0, 0}, {100, 0}, {-50, 200}, {1500, 1499}, {-300, -1000}}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		assert.InDelta(t, 1.0, ExpectedScore(a, b)+ExpectedScore(b, a), 1e-12)
	}
}

func TestExpectedScoreEqualRatings(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(42, 42), 1e-12)
}

func TestTwoPlayerStrictDifferenceIsZeroSum(t *testing.T) {
	// PastContests >= 2 keeps bonuses out of the picture.
	participants := []Participant{
		{UserID: "a", OldRating: 120, Solved: 3, Penalty: 90, PastContests: 5},
		{UserID: "b", OldRating: 80, Solved: 1, Penalty: 40, PastContests: 5},
	}

	deltas := Calculate(participants, DefaultK)
	require.Len(t, deltas, 2)
	assert.Equal(t, deltas[0].Change, -deltas[1].Change)
	assert.Positive(t, deltas[0].Change)
}

func TestTwoPlayerKnownValues(t *testing.T) {
	participants := []Participant{
		{UserID: "a", OldRating: 100, Solved: 2, Penalty: 30, PastContests: 3},
		{UserID: "b", OldRating: 0, Solved: 1, Penalty: 20, PastContests: 3},
	}

	deltas := Calculate(participants, DefaultK)
	require.Len(t, deltas, 2)
	// expected_a = 1/(1+10^(-100/400)) ~= 0.640065,
	// change_a = 30*(1-0.640065) ~= 10.80 -> 11
	assert.Equal(t, 11, deltas[0].Change)
	assert.Equal(t, 111, deltas[0].NewRating)
	assert.Equal(t, -11, deltas[1].Change)
	assert.Equal(t, -11, deltas[1].NewRating)
}

func TestPenaltyTieBreakOnEqualSolved(t *testing.T) {
	participants := []Participant{
		{UserID: "fast", OldRating: 0, Solved: 2, Penalty: 50, PastContests: 3},
		{UserID: "slow", OldRating: 0, Solved: 2, Penalty: 90, PastContests: 3},
	}

	deltas := Calculate(participants, DefaultK)
	require.Len(t, deltas, 2)
	// Equal ratings, equal solved: the faster one gets 0.75 against an
	// expectation of 0.5, so k/4 = 7.5, rounded away from zero.
	assert.Equal(t, 8, deltas[0].Change)
	assert.Equal(t, -8, deltas[1].Change)
}

func TestExactTieIsNeutral(t *testing.T) {
	participants := []Participant{
		{UserID: "a", OldRating: 0, Solved: 1, Penalty: 10, PastContests: 3},
		{UserID: "b", OldRating: 0, Solved: 1, Penalty: 10, PastContests: 3},
	}

	deltas := Calculate(participants, DefaultK)
	assert.Equal(t, 0, deltas[0].Change)
	assert.Equal(t, 0, deltas[1].Change)
}

func TestNewcomerBonus(t *testing.T) {
	cases := []struct {
		name   string
		solved int
		past   int
		want   int
	}{
		{"first contest with a solve", 1, 0, 50},
		{"second contest with a solve", 2, 1, 25},
		{"third contest", 3, 2, 0},
		{"first contest without a solve", 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// A single participant has no opponents, so the change is
			// exactly the bonus.
			deltas := Calculate([]Participant{
				{UserID: "solo", Solved: tc.solved, PastContests: tc.past},
			}, DefaultK)
			require.Len(t, deltas, 1)
			assert.Equal(t, tc.want, deltas[0].Change)
		})
	}
}

func TestCalculateUsesSharedSnapshot(t *testing.T) {
	// Three equally rated players in a strict order. If intermediate
	// updates leaked into later expectations the results would skew; over
	// a shared snapshot every pairing starts from 0.5.
	participants := []Participant{
		{UserID: "first", OldRating: 0, Solved: 3, PastContests: 3},
		{UserID: "second", OldRating: 0, Solved: 2, PastContests: 3},
		{UserID: "third", OldRating: 0, Solved: 1, PastContests: 3},
	}

	deltas := Calculate(participants, DefaultK)
	require.Len(t, deltas, 3)
	// first: two wins  -> 2 * k/2 = 30
	// second: one win, one loss -> 0
	// third: two losses -> -30
	assert.Equal(t, 30, deltas[0].Change)
	assert.Equal(t, 0, deltas[1].Change)
	assert.Equal(t, -30, deltas[2].Change)
}

func TestCalculatePreservesInputOrder(t *testing.T) {
	participants := []Participant{
		{UserID: "x", PastContests: 3},
		{UserID: "y", PastContests: 3},
		{UserID: "z", PastContests: 3},
	}
	deltas := Calculate(participants, DefaultK)
	require.Len(t, deltas, 3)
	assert.Equal(t, "x", deltas[0].UserID)
	assert.Equal(t, "y", deltas[1].UserID)
	assert.Equal(t, "z", deltas[2].UserID)
}

func TestCalculateEmpty(t *testing.T) {
	assert.Empty(t, Calculate(nil, DefaultK))
}
