package api

import (
	"net/http"

	"alcyxob/training-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler holds the feedback service dependency.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackMessageRequest is one chat message from the athlete.
type FeedbackMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// PostFeedback godoc
// @Summary Send training feedback
// @Description Classifies a free-text message, applies the plan changes it implies and replies.
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID, or current-plan"
// @Param request body FeedbackMessageRequest true "Message"
// @Success 200 {object} service.FeedbackResult
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 409 {object} gin.H "Plan changed while the message was processed"
// @Router /plans/{planId}/feedback [post]
func (h *FeedbackHandler) PostFeedback(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req FeedbackMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res, err := h.feedbackService.ProcessMessage(c.Request.Context(), userID, c.Param("planId"), req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
