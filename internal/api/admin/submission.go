package admin

import (
	"errors"
	"net/http"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// updateSubmissionCorrectness is the staff override of the grading flag.
// Submissions are otherwise immutable.
func (h *Handler) updateSubmissionCorrectness(c *gin.Context) {
	submissionID := c.Param("id")

	var req struct {
		Correct *bool `json:"correct" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if err := database.UpdateSubmissionCorrectness(h.db, submissionID, *req.Correct); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "submission not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	zap.S().Infof("admin overrode correctness of submission %s to %v", submissionID, *req.Correct)
	util.Success(c, nil, "Submission correctness updated")
}
