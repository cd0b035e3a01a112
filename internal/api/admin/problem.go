package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/HASGITH/Mathforces/internal/util"
	"github.com/gin-gonic/gin"
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

func (h *Handler) createProblem(c *gin.Context) {
	var req struct {
		Title         string `json:"title" binding:"required"`
		Statement     string `json:"statement"`
		CorrectAnswer string `json:"correct_answer" binding:"required"`
		Difficulty    int    `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	problem := models.Problem{
		Title:         req.Title,
		Statement:     req.Statement,
		CorrectAnswer: req.CorrectAnswer,
		Difficulty:    req.Difficulty,
	}
	if err := database.CreateProblem(h.db, &problem); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, problem, "Problem created")
}

func (h *Handler) updateProblem(c *gin.Context) {
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

	var req struct {
		Title         *string `json:"title"`
		Statement     *string `json:"statement"`
		CorrectAnswer *string `json:"correct_answer"`
		Difficulty    *int    `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		problem.Title = *req.Title
	}
	if req.Statement != nil {
		problem.Statement = *req.Statement
	}
	if req.CorrectAnswer != nil {
		problem.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Difficulty != nil {
		problem.Difficulty = *req.Difficulty
	}

	if err := database.UpdateProblem(h.db, problem); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, problem, "Problem updated")
}

func (h *Handler) deleteProblem(c *gin.Context) {
	problemID, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid problem id")
		return
	}
	if err := database.DeleteProblem(h.db, problemID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Problem deleted")
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
