package database

import (
	"errors"
	"sync"
	"time"

	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/HASGITH/Mathforces/internal/rating"
	"github.com/HASGITH/Mathforces/internal/standings"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrContestAlreadyRated is returned when rating application is requested
// for a contest whose RatedAt stamp is already set.
var ErrContestAlreadyRated = errors.New("contest already rated")

// applyRatingMu serializes rating application within this process. Together
// with the RatedAt re-check inside the transaction it prevents the same
// contest's deltas from being applied twice.
var applyRatingMu sync.Mutex

// GetEligibleSubmissions returns the submissions that participate in the
// contest's standings and rating: on the contest's problems, inside the
// [start, end] window, from authors who are not disqualified. Ordered by
// creation time so downstream grouping sees attempts in submission order.
func GetEligibleSubmissions(db *gorm.DB, contest *models.Contest) ([]models.Submission, error) {
	problemIDs := make([]uint, 0, len(contest.Problems))
	for _, p := range contest.Problems {
		problemIDs = append(problemIDs, p.ID)
	}
	if len(problemIDs) == 0 {
		return nil, nil
	}

	var subs []models.Submission
	err := db.Preload("Author").
		Joins("join profiles on profiles.user_id = submissions.author_id").
		Where("submissions.problem_id IN ?", problemIDs).
		Where("submissions.created_at >= ? AND submissions.created_at <= ?", contest.StartTime, contest.EndTime).
		Where("profiles.disqualified = ?", false).
		Order("submissions.created_at asc").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// ComputeStandings loads the contest's eligible submissions and runs the
// standings calculation. Read-only; safe to call while a contest is live.
func ComputeStandings(db *gorm.DB, contestID uint) (*models.Contest, []standings.Row, error) {
	contest, err := GetContest(db, contestID)
	if err != nil {
		return nil, nil, err
	}
	subs, err := GetEligibleSubmissions(db, contest)
	if err != nil {
		return nil, nil, err
	}
	return contest, standings.Compute(contest, contest.Problems, subs), nil
}

// CountRatedContests counts rating history entries per user for the given
// set, i.e. how many rated contests each of them has behind them.
func CountRatedContests(db *gorm.DB, userIDs []string) (map[string]int, error) {
	type row struct {
		UserID string
		N      int
	}
	var rows []row
	err := db.Model(&models.RatingHistory{}).
		Select("user_id, count(*) as n").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.UserID] = r.N
	}
	return counts, nil
}

// ApplyContestRating runs the full rating batch for a contest: snapshot,
// pairwise Elo over the standings, newcomer bonuses, then a single
// transaction that updates every profile, appends one history row each and
// stamps the contest as rated. All-or-nothing; a failure partway leaves
// nothing applied.
//
// An empty eligible participant set is not an error: it returns no deltas
// and writes nothing, leaving the contest unrated.
func ApplyContestRating(db *gorm.DB, contestID uint, k float64) ([]rating.Delta, error) {
	applyRatingMu.Lock()
	defer applyRatingMu.Unlock()

	var deltas []rating.Delta
	err := db.Transaction(func(tx *gorm.DB) error {
		contest, err := GetContest(tx, contestID)
		if err != nil {
			return err
		}
		if contest.RatedAt != nil {
			return ErrContestAlreadyRated
		}

		subs, err := GetEligibleSubmissions(tx, contest)
		if err != nil {
			return err
		}
		rows := standings.Compute(contest, contest.Problems, subs)
		if len(rows) == 0 {
			return nil
		}

		participants, err := snapshotParticipants(tx, rows)
		if err != nil {
			return err
		}
		if len(participants) == 0 {
			return nil
		}

		deltas = rating.Calculate(participants, k)

		for _, d := range deltas {
			result := tx.Model(&models.Profile{}).
				Where("user_id = ?", d.UserID).
				Update("rating", d.NewRating)
			if result.Error != nil {
				return result.Error
			}
			history := models.RatingHistory{
				UserID:    d.UserID,
				Rating:    d.NewRating,
				ContestID: &contest.ID,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&models.Contest{}).
			Where("id = ?", contest.ID).
			Update("rated_at", &now).Error
	})
	if err != nil {
		return nil, err
	}

	if len(deltas) > 0 {
		zap.S().Infof("applied contest %d rating to %d participants", contestID, len(deltas))
	}
	return deltas, nil
}

// snapshotParticipants turns standings rows into an immutable participant
// snapshot: current rating and rated-contest count per author, taken once
// before any delta is written. Disqualification is re-checked here even
// though the submission query already filters it.
func snapshotParticipants(tx *gorm.DB, rows []standings.Row) ([]rating.Participant, error) {
	userIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}

	var profiles []models.Profile
	if err := tx.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	profileByUser := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}

	pastCounts, err := CountRatedContests(tx, userIDs)
	if err != nil {
		return nil, err
	}

	participants := make([]rating.Participant, 0, len(rows))
	for _, row := range rows {
		profile, ok := profileByUser[row.UserID]
		if !ok || profile.Disqualified {
			continue
		}
		participants = append(participants, rating.Participant{
			UserID:       row.UserID,
			OldRating:    profile.Rating,
			Solved:       row.Solved,
			Penalty:      row.Penalty,
			PastContests: pastCounts[row.UserID],
		})
	}
	return participants, nil
}
