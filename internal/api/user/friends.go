package user

import (
	"errors"
	"net/http"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// toggleFriend adds or removes the target user from the caller's friend
// list, depending on whether they are already in it.
func (h *Handler) toggleFriend(c *gin.Context) {
	userID := c.GetString("userID")
	username := c.Param("username")

	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}

	target, err := database.GetUserByUsername(h.db, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	if target.ID == user.ID {
		util.Error(c, http.StatusBadRequest, "cannot befriend yourself")
		return
	}

	added, err := database.ToggleFriend(h.db, user, target)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	if added {
		util.Success(c, gin.H{"friend": true}, "Friend added")
	} else {
		util.Success(c, gin.H{"friend": false}, "Friend removed")
	}
}

func (h *Handler) getFriends(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}

	friends, err := database.GetFriends(h.db, user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, friends, "Friends retrieved")
}
