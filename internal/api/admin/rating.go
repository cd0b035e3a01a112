package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/pubsub"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// applyContestRating triggers the full rating batch for a contest. The
// whole batch is atomic; a contest can only be rated once.
func (h *Handler) applyContestRating(c *gin.Context) {
	contestID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid contest id")
		return
	}

	deltas, err := database.ApplyContestRating(h.db, contestID, h.cfg.Rating.K)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.Error(c, http.StatusNotFound, "contest not found")
		case errors.Is(err, database.ErrContestAlreadyRated):
			util.Error(c, http.StatusConflict, err)
		default:
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	if len(deltas) == 0 {
		util.Success(c, gin.H{
			"updated": 0,
			"changes": deltas,
		}, "no eligible participants")
		return
	}

	// Rating marks the end of the contest lifecycle; the live standings
	// feed has nothing more to send.
	pubsub.GetBroker().CloseTopic(pubsub.StandingsTopic(contestID))

	zap.S().Infof("admin applied rating for contest %d", contestID)
	util.Success(c, gin.H{
		"updated": len(deltas),
		"changes": deltas,
	}, fmt.Sprintf("rating applied to %d participants", len(deltas)))
}
