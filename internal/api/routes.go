package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/gym-management/internal/domain" // Needed for RoleMiddleware
	"alcyxob/gym-management/internal/metrics"
	"alcyxob/gym-management/internal/service"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Auth         service.AuthService
	Member       service.MemberService
	Subscription service.SubscriptionService
	Trainer      service.TrainerService
	Exercise     service.ExerciseService
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	services Services,
	recorder metrics.Recorder,
	metricsHandler http.Handler,
) {
	authHandler := NewAuthHandler(services.Auth, recorder)
	memberHandler := NewMemberHandler(services.Member, recorder)
	subscriptionHandler := NewSubscriptionHandler(services.Subscription, recorder)
	trainerHandler := NewTrainerHandler(services.Trainer)
	exerciseHandler := NewExerciseHandler(services.Exercise)

	authMiddleware := AuthMiddleware(jwtSecret)
	staff := RoleMiddleware(domain.RoleAdmin, domain.RoleTrainer)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me/password", authHandler.ChangePassword)

		// --- Member Routes (front desk: admins and trainers) ---
		memberGroup := protected.Group("/members", staff)
		{
			memberGroup.POST("", memberHandler.CreateMember)
			memberGroup.GET("", memberHandler.ListMembers)
			memberGroup.GET("/stats", memberHandler.Stats)
			memberGroup.GET("/:memberId", memberHandler.GetMember)
			memberGroup.POST("/:memberId/subscription", memberHandler.AssignSubscription)
			memberGroup.DELETE("/:memberId/subscription", memberHandler.RemoveSubscription)
			memberGroup.PUT("/:memberId/progress", memberHandler.UpdateProgress)
			memberGroup.POST("/:memberId/workouts", memberHandler.IncrementWorkouts)
			memberGroup.POST("/:memberId/attendance", memberHandler.RecordAttendance)
			memberGroup.POST("/:memberId/schedules", memberHandler.AddWorkoutSchedule)
		}

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises", staff)
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:exerciseId/active", exerciseHandler.SetExerciseActive)
			exerciseGroup.DELETE("/:exerciseId", exerciseHandler.DeleteExercise)
		}

		// --- Trainer Self-Service Routes ---
		// The trainer is identified by the token.
		trainerSelf := protected.Group("/trainer", RoleMiddleware(domain.RoleTrainer))
		{
			trainerSelf.GET("/members", trainerHandler.AssignedMembers)
			trainerSelf.PUT("/availability", trainerHandler.SetAvailability)
		}

		// --- Admin Routes ---
		admin := protected.Group("", adminOnly)
		{
			admin.POST("/plans", subscriptionHandler.CreatePlan)
			admin.GET("/plans", subscriptionHandler.ListPlans)

			admin.POST("/subscriptions", subscriptionHandler.Subscribe)
			admin.POST("/subscriptions/refresh", subscriptionHandler.RefreshStatuses)
			admin.GET("/subscriptions/expiring", subscriptionHandler.ExpiringSubscriptions)
			admin.GET("/subscriptions/:subscriptionId", subscriptionHandler.GetSubscription)
			admin.POST("/subscriptions/:subscriptionId/cancel", subscriptionHandler.CancelSubscription)
			admin.POST("/subscriptions/:subscriptionId/renew", subscriptionHandler.RenewSubscription)

			admin.GET("/reports/revenue", subscriptionHandler.RevenueReport)

			admin.POST("/trainers", trainerHandler.RegisterTrainer)
			admin.GET("/trainers", trainerHandler.QualifiedTrainers)
			admin.GET("/trainers/:trainerId/members", trainerHandler.AssignedMembers)
			admin.POST("/trainers/:trainerId/members", trainerHandler.AssignMember)
			admin.DELETE("/trainers/:trainerId/members/:memberId", trainerHandler.UnassignMember)
			admin.PUT("/trainers/:trainerId/availability", trainerHandler.SetAvailability)

			admin.POST("/admins", authHandler.RegisterAdmin)
			admin.PUT("/users/:userId/active", authHandler.SetUserActive)
		}
	}
}
