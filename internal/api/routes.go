package api

import (
	"net/http"

	"alcyxob/training-planner/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	feedbackService service.FeedbackService,
) {
	planHandler := NewPlanHandler(planService)
	feedbackHandler := NewFeedbackHandler(feedbackService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(authMiddleware)
	{
		apiV1.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		plans := apiV1.Group("/plans")
		{
			// POST /api/v1/plans/generate and /simulate are static and win over :planId
			plans.POST("/generate", planHandler.GeneratePlan)
			plans.POST("/simulate", planHandler.Simulate)

			plans.GET("/:planId", planHandler.GetPlan)
			plans.GET("/:planId/changelog", planHandler.GetChangelog)
			plans.POST("/:planId/operations", planHandler.ApplyOperations)
			plans.GET("/:planId/export", planHandler.ExportPlan)

			// POST /api/v1/plans/{planId}/feedback
			plans.POST("/:planId/feedback", feedbackHandler.PostFeedback)
		}
	}
}
