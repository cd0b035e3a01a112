package user

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/pubsub"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) getAllContests(c *gin.Context) {
	contests, err := database.GetAllContests(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, contests, "Contests retrieved")
}

func (h *Handler) getContest(c *gin.Context) {
	contestID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid contest id")
		return
	}

	contest, err := database.GetContest(h.db, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, fmt.Errorf("contest not found"))
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	util.Success(c, gin.H{
		"contest":   contest,
		"is_active": contest.IsActive(time.Now()),
	}, "Contest found")
}

func (h *Handler) getContestStandings(c *gin.Context) {
	contestID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid contest id")
		return
	}

	contest, rows, err := database.ComputeStandings(h.db, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, fmt.Errorf("contest not found"))
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	util.Success(c, gin.H{
		"contest":   contest,
		"standings": rows,
	}, "Standings retrieved")
}

// publishStandings recomputes a contest's standings and pushes the snapshot
// to websocket subscribers. Failures are logged, never surfaced: the live
// feed is best-effort.
func (h *Handler) publishStandings(contestID uint) {
	_, rows, err := database.ComputeStandings(h.db, contestID)
	if err != nil {
		zap.S().Warnf("failed to compute standings for contest %d: %v", contestID, err)
		return
	}
	topic := pubsub.StandingsTopic(contestID)
	pubsub.GetBroker().Publish(topic, pubsub.FormatMessage("standings", rows))
}
