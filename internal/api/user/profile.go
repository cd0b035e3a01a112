package user

import (
	"errors"
	"net/http"

	"github.com/HASGITH/Mathforces/internal/api"
	"github.com/HASGITH/Mathforces/internal/auth"
	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const profileSubmissionLimit = 15

func (h *Handler) getUserProfile(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}
	util.Success(c, user, "ok")
}

func (h *Handler) updateUserProfile(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}
	var reqBody struct {
		Nickname string `json:"nickname"`
	}
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	user.Nickname = reqBody.Nickname
	if err := database.UpdateUser(h.db, user); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, user, "Profile updated")
}

func (h *Handler) getPublicUserProfile(c *gin.Context) {
	username := c.Param("username")
	target, err := database.GetUserByUsername(h.db, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	solved, err := database.CountSolvedProblems(h.db, target.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	rank, err := database.GetRankForRating(h.db, target.Profile.Rating)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	subs, err := database.GetSubmissionsByUserID(h.db, target.ID, profileSubmissionLimit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	history, err := database.GetRatingHistory(h.db, target.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	var rankTitle string
	if rank != nil {
		rankTitle = rank.Title
	}

	// Is this user a friend of the viewer? The route is public, so the
	// viewer is identified from the bearer token only when one is present.
	isFriend := false
	if viewerID := h.optionalViewerID(c); viewerID != "" && viewerID != target.ID {
		if viewer, err := database.GetUserByID(h.db, viewerID); err == nil {
			friends, err := database.GetFriends(h.db, viewer)
			if err == nil {
				for _, f := range friends {
					if f.ID == target.ID {
						isFriend = true
						break
					}
				}
			}
		}
	}

	util.Success(c, gin.H{
		"user":           target,
		"rank":           rankTitle,
		"solved_count":   solved,
		"submissions":    subs,
		"rating_history": history,
		"is_friend":      isFriend,
	}, "Profile retrieved")
}

// optionalViewerID extracts the caller's user ID from a bearer token when
// one is supplied, and returns empty for anonymous requests.
func (h *Handler) optionalViewerID(c *gin.Context) string {
	token, ok := api.BearerToken(c)
	if !ok {
		return ""
	}
	claims, err := auth.ValidateJWT(token, h.cfg.Auth.JWT.Secret)
	if err != nil {
		return ""
	}
	return claims.Subject
}

func (h *Handler) getRanking(c *gin.Context) {
	users, err := database.GetRanking(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, users, "Ranking retrieved")
}

func (h *Handler) searchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		util.Success(c, []models.User{}, "Empty query")
		return
	}
	users, err := database.SearchUsers(h.db, query)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, users, "Users retrieved")
}
