package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const recentSubmissionLimit = 50

func (h *Handler) getRecentSubmissions(c *gin.Context) {
	subs, err := database.GetRecentSubmissions(h.db, recentSubmissionLimit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, subs, "Submissions retrieved")
}

func (h *Handler) getUserSubmissions(c *gin.Context) {
	userID := c.GetString("userID")
	subs, err := database.GetSubmissionsByUserID(h.db, userID, 0)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, subs, "Submissions retrieved")
}

// getSubmission hides other people's solutions while any contest owning the
// problem is still running; the author can always see their own.
func (h *Handler) getSubmission(c *gin.Context) {
	userID := c.GetString("userID")
	submissionID := c.Param("id")

	sub, err := database.GetSubmission(h.db, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "submission not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	if sub.AuthorID != userID {
		active, err := database.ActiveContestsForProblem(h.db, sub.ProblemID, time.Now())
		if err != nil {
			util.Error(c, http.StatusInternalServerError, err)
			return
		}
		if len(active) > 0 {
			util.Error(c, http.StatusForbidden, "submission is hidden while its contest is running")
			return
		}
	}

	util.Success(c, sub, "Submission found")
}
