package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classroom-apps/qa-service/internal/services"
	"github.com/classroom-apps/qa-service/internal/utils"
)

type AnswerHandler struct {
	BaseHandler
	answerService services.AnswerService
}

func NewAnswerHandler(answerService services.AnswerService, logger utils.Logger) *AnswerHandler {
	return &AnswerHandler{
		BaseHandler:   NewBaseHandler(logger),
		answerService: answerService,
	}
}

// CreateAnswer posts an answer on a question on behalf of the student named
// in the request body.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID := h.parseIDParam(c, "id")
	if questionID == 0 {
		return
	}

	var req services.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	answer, err := h.answerService.Create(c.Request.Context(), questionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Answer created successfully",
		"answer":  answer,
	})
}

// ListAnswers returns a question's answers newest first, each enriched with
// its student author.
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	questionID := h.parseIDParam(c, "id")
	if questionID == 0 {
		return
	}

	answers, err := h.answerService.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if answers == nil {
		answers = []*services.AnswerResponse{}
	}
	c.JSON(http.StatusOK, gin.H{
		"question_id": questionID,
		"answers":     answers,
	})
}

// UpdateAnswer replaces the answer text on behalf of the owning student.
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	questionID := h.parseIDParam(c, "id")
	if questionID == 0 {
		return
	}
	answerID := h.parseIDParam(c, "answer_id")
	if answerID == 0 {
		return
	}

	var req services.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	answer, err := h.answerService.Update(c.Request.Context(), questionID, answerID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Answer updated successfully",
		"answer":  answer,
	})
}

// DeleteAnswer hard-deletes an answer owned by the acting student.
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	questionID := h.parseIDParam(c, "id")
	if questionID == 0 {
		return
	}
	answerID := h.parseIDParam(c, "answer_id")
	if answerID == 0 {
		return
	}

	var req services.DeleteAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.answerService.Delete(c.Request.Context(), questionID, answerID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}
