package admin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/HASGITH/Mathforces/internal/pubsub"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
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

func (h *Handler) createContest(c *gin.Context) {
	var req struct {
		Title     string    `json:"title" binding:"required"`
		StartTime time.Time `json:"start_time" binding:"required"`
		EndTime   time.Time `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if !req.EndTime.After(req.StartTime) {
		util.Error(c, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	contest := models.Contest{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := database.CreateContest(h.db, &contest); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, contest, "Contest created")
}

func (h *Handler) updateContest(c *gin.Context) {
	contestID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid contest id")
		return
	}

	contest, err := database.GetContest(h.db, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "contest not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var req struct {
		Title     *string    `json:"title"`
		StartTime *time.Time `json:"start_time"`
		EndTime   *time.Time `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		contest.Title = *req.Title
	}
	if req.StartTime != nil {
		contest.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		contest.EndTime = *req.EndTime
	}
	if !contest.EndTime.After(contest.StartTime) {
		util.Error(c, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	if err := database.UpdateContest(h.db, contest); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, contest, "Contest updated")
}

// setContestProblems replaces the contest's problem set with the given
// problem IDs.
func (h *Handler) setContestProblems(c *gin.Context) {
	contestID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid contest id")
		return
	}

	contest, err := database.GetContest(h.db, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "contest not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var req struct {
		ProblemIDs []uint `json:"problem_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	problems := make([]models.Problem, 0, len(req.ProblemIDs))
	for _, id := range req.ProblemIDs {
		problem, err := database.GetProblem(h.db, id)
		if err != nil {
			util.Error(c, http.StatusBadRequest, fmt.Errorf("problem %d not found", id))
			return
		}
		problems = append(problems, *problem)
	}

	if err := database.SetContestProblems(h.db, contest, problems); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Contest problems updated")
}

func (h *Handler) deleteContest(c *gin.Context) {
	contestID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid contest id")
		return
	}
	if err := database.DeleteContest(h.db, contestID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	pubsub.GetBroker().CloseTopic(pubsub.StandingsTopic(contestID))
	util.Success(c, nil, "Contest deleted")
}
