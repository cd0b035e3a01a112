package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Username     string `gorm:"uniqueIndex" json:"username"`
	PasswordHash string `json:"-"`
	Nickname     string `json:"nickname"`

	// IsStaff gates the admin API. The first staff account is flagged
	// directly in the database; further ones are promoted over the admin
	// surface.
	IsStaff bool `json:"is_staff"`

	Profile Profile `gorm:"foreignKey:UserID" json:"profile"`
}

// Profile carries the rating state for exactly one user. It is created in
// the same transaction as the user itself, never lazily.
type Profile struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"uniqueIndex" json:"-"`

	Rating           int    `json:"rating"`
	Disqualified     bool   `json:"disqualified"`
	DisqualifyReason string `json:"disqualify_reason"`

	Friends []User `gorm:"many2many:profile_friends" json:"-"`
}

type Problem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title         string `json:"title"`
	Statement     string `json:"statement"`
	CorrectAnswer string `json:"-"`
	Difficulty    int    `json:"difficulty"`

	Contests []Contest `gorm:"many2many:contest_problems" json:"-"`
}

type Contest struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// RatedAt is set exactly once, when rating has been applied for this
	// contest. A non-nil value blocks re-application.
	RatedAt *time.Time `json:"rated_at"`

	Problems []Problem `gorm:"many2many:contest_problems" json:"problems"`
}

// IsActive reports whether the contest is running at the given instant.
func (c *Contest) IsActive(now time.Time) bool {
	return !now.Before(c.StartTime) && !now.After(c.EndTime)
}

// Submission is append-only. CreatedAt is assigned once at insertion and is
// the timestamp all standings arithmetic is based on; the only field ever
// rewritten afterwards is Correct, via a staff override.
type Submission struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time

	AuthorID string `gorm:"index" json:"author_id"`
	Author   User   `json:"author"`

	ProblemID uint    `gorm:"index" json:"problem_id"`
	Problem   Problem `json:"-"`

	Answer   string `json:"answer"`
	Solution string `json:"solution"`
	Correct  bool   `gorm:"index" json:"correct"`
}

// RatingHistory is an append-only log of rating values after each change.
// ContestID is nil when the rating was adjusted outside a contest.
type RatingHistory struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time

	UserID    string `gorm:"index" json:"user_id"`
	Rating    int    `json:"rating"`
	ContestID *uint  `gorm:"index" json:"contest_id"`
}

// Rank maps a minimum rating threshold to a display tier. A user's rank is
// the row with the highest MinRating not exceeding their rating.
type Rank struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	MinRating int    `gorm:"uniqueIndex" json:"min_rating"`
	Title     string `json:"title"`
}
