package admin

import (
	"errors"
	"net/http"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) getAllUsers(c *gin.Context) {
	searchQuery := c.Query("query")
	dbQuery := h.db.Preload("Profile")

	if searchQuery != "" {
		likeQuery := "%" + searchQuery + "%"
		dbQuery = dbQuery.Where("id = ? OR username LIKE ? OR nickname LIKE ?", searchQuery, likeQuery, likeQuery)
	}

	var users []models.User
	if err := dbQuery.Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	util.Success(c, users, "Users retrieved successfully")
}

func (h *Handler) getUser(c *gin.Context) {
	userID := c.Param("id")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}
	util.Success(c, user, "User retrieved successfully")
}

// updateUser covers the staff-only profile mutations: nickname edits,
// staff promotion and demotion, disqualification and reinstatement, and
// manual rating overrides. A manual rating change appends a history entry
// with no contest reference.
func (h *Handler) updateUser(c *gin.Context) {
	userID := c.Param("id")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var reqBody struct {
		Nickname         *string `json:"nickname"`
		IsStaff          *bool   `json:"is_staff"`
		Disqualified     *bool   `json:"disqualified"`
		DisqualifyReason *string `json:"disqualify_reason"`
		Rating           *int    `json:"rating"`
	}

	if err := c.ShouldBindJSON(&reqBody); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if reqBody.Nickname != nil {
		user.Nickname = *reqBody.Nickname
	}
	if reqBody.IsStaff != nil {
		user.IsStaff = *reqBody.IsStaff
	}
	if reqBody.Disqualified != nil {
		user.Profile.Disqualified = *reqBody.Disqualified
		if !*reqBody.Disqualified {
			user.Profile.DisqualifyReason = ""
		}
	}
	if reqBody.DisqualifyReason != nil {
		user.Profile.DisqualifyReason = *reqBody.DisqualifyReason
	}

	ratingChanged := reqBody.Rating != nil && *reqBody.Rating != user.Profile.Rating
	if ratingChanged {
		user.Profile.Rating = *reqBody.Rating
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := database.UpdateUser(tx, user); err != nil {
			return err
		}
		if err := database.UpdateProfile(tx, &user.Profile); err != nil {
			return err
		}
		if ratingChanged {
			history := models.RatingHistory{
				UserID: user.ID,
				Rating: user.Profile.Rating,
			}
			return tx.Create(&history).Error
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	zap.S().Infof("admin updated user %s (disqualified=%v)", user.Username, user.Profile.Disqualified)
	util.Success(c, user, "User updated successfully")
}
