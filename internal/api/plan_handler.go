package api

import (
	"net/http"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/planops"
	"alcyxob/training-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for API (Data Transfer Objects) ---

// SimulateRequest carries a plan and the operations to try on it.
type SimulateRequest struct {
	Weeks      []domain.TrainingWeek `json:"weeks" binding:"required"`
	Operations domain.Operations     `json:"operations"`
}

// SimulateResponse is the plan-mutation response.
type SimulateResponse struct {
	UpdatedWeeks []domain.TrainingWeek `json:"updatedWeeks"`
	Changeset    []domain.PatchOp      `json:"changeset"`
	Warnings     []string              `json:"warnings"`
	Explanations []planops.Explanation `json:"explanations,omitempty"`
}

// OperationsRequest applies operations to a stored plan.
type OperationsRequest struct {
	Mode            service.Mode      `json:"mode" binding:"omitempty,oneof=simulate apply"`
	ExpectedVersion *int              `json:"expectedVersion" binding:"omitempty,min=0"`
	Operations      domain.Operations `json:"operations" binding:"required"`
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a training plan
// @Description Builds every week for the posted athlete profile. Without planId it replaces the current plan.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId query string false "Store as a named plan instead of current-plan"
// @Param profile body domain.AthleteProfile true "Athlete profile"
// @Success 201 {object} domain.Plan
// @Failure 400 {object} gin.H "Invalid profile or unsupported training days"
// @Router /plans/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var profile domain.AthleteProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, c.Query("planId"), profile)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlan godoc
// @Summary Get a stored plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID, or current-plan"
// @Success 200 {object} domain.Plan
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetChangelog returns the audit trail of a single-document plan.
func (h *PlanHandler) GetChangelog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	log, err := h.planService.Changelog(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changelog": log})
}

// Simulate godoc
// @Summary Simulate plan operations
// @Description Applies operations to the posted weeks without reading or writing storage.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SimulateRequest true "Weeks and operations"
// @Success 200 {object} SimulateResponse
// @Failure 400 {object} gin.H "Malformed weeks or unknown operation"
// @Router /plans/simulate [post]
func (h *PlanHandler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	res, err := h.planService.Simulate(req.Weeks, req.Operations)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SimulateResponse{
		UpdatedWeeks: res.UpdatedWeeks,
		Changeset:    res.Changeset,
		Warnings:     res.Warnings,
		Explanations: res.Explanations,
	})
}

// ApplyOperations godoc
// @Summary Apply operations to a stored plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID, or current-plan"
// @Param request body OperationsRequest true "Mode, expected version and operations"
// @Success 200 {object} service.ApplyResult
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 409 {object} gin.H "Version conflict, reload and retry"
// @Router /plans/{planId}/operations [post]
func (h *PlanHandler) ApplyOperations(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req OperationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res, err := h.planService.ApplyOperations(c.Request.Context(), userID, service.ApplyRequest{
		PlanID:          c.Param("planId"),
		Mode:            req.Mode,
		ExpectedVersion: req.ExpectedVersion,
		Actor:           service.ActorAPI,
		Operations:      req.Operations,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ExportPlan godoc
// @Summary Export a plan
// @Description Writes the stored plan to object storage and returns a temporary download URL.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID, or current-plan"
// @Success 200 {object} service.ExportResult
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /plans/{planId}/export [get]
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	res, err := h.planService.Export(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
