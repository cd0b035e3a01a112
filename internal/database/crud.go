package database

import (
	"errors"
	"time"

	"github.com/HASGITH/Mathforces/internal/database/models"
	"gorm.io/gorm"
)

// User CRUD

// CreateUser inserts the user together with its profile. One profile per
// user, created here and nowhere else.
func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := models.Profile{UserID: user.ID}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
}

func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Profile").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetAllUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Preload("Profile").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers matches usernames by substring. Disqualified users are left
// out of search results; their rows stay in the database.
func SearchUsers(db *gorm.DB, query string) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Profile").
		Joins("join profiles on profiles.user_id = users.id").
		Where("users.username LIKE ? AND profiles.disqualified = ?", "%"+query+"%", false).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetRanking returns all non-disqualified users ordered by rating
// descending, username ascending as the deterministic tie key.
func GetRanking(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Profile").
		Joins("join profiles on profiles.user_id = users.id").
		Where("profiles.disqualified = ?", false).
		Order("profiles.rating desc, users.username asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func UpdateUser(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func UpdateProfile(db *gorm.DB, profile *models.Profile) error {
	return db.Save(profile).Error
}

// Friends

// ToggleFriend adds target to the user's friend list, or removes them if
// already present. Reports whether they are friends afterwards.
func ToggleFriend(db *gorm.DB, user *models.User, target *models.User) (bool, error) {
	assoc := db.Model(&user.Profile).Association("Friends")
	var existing []models.User
	if err := assoc.Find(&existing, "users.id = ?", target.ID); err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, assoc.Delete(target)
	}
	return true, assoc.Append(target)
}

func GetFriends(db *gorm.DB, user *models.User) ([]models.User, error) {
	var friends []models.User
	if err := db.Model(&user.Profile).Association("Friends").Find(&friends); err != nil {
		return nil, err
	}
	for i := range friends {
		var profile models.Profile
		if err := db.Where("user_id = ?", friends[i].ID).First(&profile).Error; err != nil {
			return nil, err
		}
		friends[i].Profile = profile
	}
	return friends, nil
}

// Problem CRUD

func CreateProblem(db *gorm.DB, problem *models.Problem) error {
	return db.Create(problem).Error
}

func GetProblem(db *gorm.DB, id uint) (*models.Problem, error) {
	var problem models.Problem
	if err := db.Where("id = ?", id).First(&problem).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

func GetAllProblems(db *gorm.DB) ([]models.Problem, error) {
	var problems []models.Problem
	if err := db.Order("id asc").Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func UpdateProblem(db *gorm.DB, problem *models.Problem) error {
	return db.Save(problem).Error
}

func DeleteProblem(db *gorm.DB, id uint) error {
	return db.Delete(&models.Problem{}, "id = ?", id).Error
}

// Contest CRUD

func CreateContest(db *gorm.DB, contest *models.Contest) error {
	return db.Create(contest).Error
}

func GetContest(db *gorm.DB, id uint) (*models.Contest, error) {
	var contest models.Contest
	if err := db.Preload("Problems", func(db *gorm.DB) *gorm.DB {
		return db.Order("problems.id asc")
	}).Where("id = ?", id).First(&contest).Error; err != nil {
		return nil, err
	}
	return &contest, nil
}

func GetAllContests(db *gorm.DB) ([]models.Contest, error) {
	var contests []models.Contest
	if err := db.Order("start_time desc").Find(&contests).Error; err != nil {
		return nil, err
	}
	return contests, nil
}

func UpdateContest(db *gorm.DB, contest *models.Contest) error {
	return db.Save(contest).Error
}

func SetContestProblems(db *gorm.DB, contest *models.Contest, problems []models.Problem) error {
	return db.Model(contest).Association("Problems").Replace(problems)
}

func DeleteContest(db *gorm.DB, id uint) error {
	return db.Delete(&models.Contest{}, "id = ?", id).Error
}

// Submission CRUD

func CreateSubmission(db *gorm.DB, sub *models.Submission) error {
	return db.Create(sub).Error
}

func GetSubmission(db *gorm.DB, id string) (*models.Submission, error) {
	var sub models.Submission
	if err := db.Preload("Author").Preload("Problem").Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func GetSubmissionsByUserID(db *gorm.DB, userID string, limit int) ([]models.Submission, error) {
	var subs []models.Submission
	q := db.Preload("Author").Where("author_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func GetRecentSubmissions(db *gorm.DB, limit int) ([]models.Submission, error) {
	var subs []models.Submission
	if err := db.Preload("Author").Order("created_at desc").Limit(limit).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// UpdateSubmissionCorrectness is the staff override of the grading flag,
// the only mutation submissions ever see.
func UpdateSubmissionCorrectness(db *gorm.DB, id string, correct bool) error {
	result := db.Model(&models.Submission{}).Where("id = ?", id).Update("correct", correct)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountSolvedProblems counts distinct problems the user has at least one
// correct submission for, across the whole archive.
func CountSolvedProblems(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Submission{}).
		Distinct("problem_id").
		Where("author_id = ? AND correct = ?", userID, true).
		Count(&count).Error
	return count, err
}

// ActiveContestsForProblem returns the contests containing the problem that
// are running at the given instant. Used to hide foreign submissions while
// a contest owning the problem is live.
func ActiveContestsForProblem(db *gorm.DB, problemID uint, now time.Time) ([]models.Contest, error) {
	var contests []models.Contest
	err := db.Joins("join contest_problems on contest_problems.contest_id = contests.id").
		Where("contest_problems.problem_id = ? AND contests.start_time <= ? AND contests.end_time >= ?", problemID, now, now).
		Find(&contests).Error
	if err != nil {
		return nil, err
	}
	return contests, nil
}

// Ranks and rating history

// GetRankForRating resolves the display tier: the highest threshold not
// above the rating.
func GetRankForRating(db *gorm.DB, rating int) (*models.Rank, error) {
	var rank models.Rank
	err := db.Where("min_rating <= ?", rating).Order("min_rating desc").First(&rank).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rank, nil
}

func GetRatingHistory(db *gorm.DB, userID string) ([]models.RatingHistory, error) {
	var history []models.RatingHistory
	if err := db.Where("user_id = ?", userID).Order("created_at asc").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
