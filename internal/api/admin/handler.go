package admin

import (
	"github.com/HASGITH/Mathforces/internal/config"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the admin API handlers.
type Handler struct {
	cfg *config.Config
	db  *gorm.DB
}

// NewHandler creates a new admin handler with its dependencies.
func NewHandler(cfg *config.Config, db *gorm.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}
