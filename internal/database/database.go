package database

import (
	"os"
	"path/filepath"

	"github.com/HASGITH/Mathforces/internal/database/models"
	"go.uber.org/zap"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Init(dsn string) (*gorm.DB, error) {
	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		zap.S().Infof("database file not found at '%s', creating directory for it.", dsn)
		dbDir := filepath.Dir(dsn)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Problem{},
		&models.Contest{},
		&models.Submission{},
		&models.RatingHistory{},
		&models.Rank{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedRanks(db); err != nil {
		return nil, err
	}

	return db, nil
}

// defaultRanks is the rank ladder seeded into an empty database. Staff can
// edit the table afterwards; seeding never overwrites existing rows.
var defaultRanks = []models.Rank{
	{MinRating: -1 << 31, Title: "Newbie"},
	{MinRating: 100, Title: "Pupil"},
	{MinRating: 300, Title: "Specialist"},
	{MinRating: 600, Title: "Expert"},
	{MinRating: 1000, Title: "Candidate Master"},
	{MinRating: 1500, Title: "Master"},
	{MinRating: 2200, Title: "Grandmaster"},
}

func seedRanks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Rank{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&defaultRanks).Error
}
