package user

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) getAllProblems(c *gin.Context) {
	problems, err := database.GetAllProblems(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, problems, "Problems retrieved")
}

func (h *Handler) getProblem(c *gin.Context) {
	problemID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid problem id")
		return
	}

	problem, err := database.GetProblem(h.db, problemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "problem not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}
	util.Success(c, problem, "Problem found")
}

func (h *Handler) submitToProblem(c *gin.Context) {
	userID := c.GetString("userID")

	problemID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid problem id")
		return
	}

	var req struct {
		Answer   string `json:"answer" binding:"required"`
		Solution string `json:"solution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		util.Error(c, http.StatusNotFound, err)
		return
	}
	if user.Profile.Disqualified {
		util.Error(c, http.StatusForbidden, fmt.Errorf("account is disqualified: %s", user.Profile.DisqualifyReason))
		return
	}

	problem, err := database.GetProblem(h.db, problemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "problem not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	sub := models.Submission{
		ID:        uuid.NewString(),
		AuthorID:  user.ID,
		ProblemID: problem.ID,
		Answer:    req.Answer,
		Solution:  req.Solution,
		Correct:   gradeAnswer(req.Answer, problem.CorrectAnswer),
	}
	if err := database.CreateSubmission(h.db, &sub); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	zap.S().Infof("submission %s by %s on problem %d: correct=%v", sub.ID, user.Username, problem.ID, sub.Correct)

	// Push fresh standings to any live contest this problem belongs to.
	contests, err := database.ActiveContestsForProblem(h.db, problem.ID, time.Now())
	if err != nil {
		zap.S().Warnf("failed to look up active contests for problem %d: %v", problem.ID, err)
	} else {
		for _, contest := range contests {
			h.publishStandings(contest.ID)
		}
	}

	util.Success(c, gin.H{"id": sub.ID, "correct": sub.Correct}, "Submission recorded")
}

// gradeAnswer is a case-normalized string equality check, nothing more.
func gradeAnswer(answer, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(correct))
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
