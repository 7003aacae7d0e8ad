package routes

import (
	"conference-management-api/controllers"
	"conference-management-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)

			// Password reset
			public.POST("/password-reset", controllers.RequestPasswordReset)
			public.POST("/password-reset/verify", controllers.VerifyResetCode)
			public.POST("/password-reset/new-password", controllers.SetNewPassword)

			// UI language
			public.GET("/language", controllers.SetLanguage)

			// Conference catalog
			public.GET("/conferences", controllers.GetConferences)
			public.GET("/conferences/:id", controllers.GetConference)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Conference Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Dashboards
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("", controllers.GetDashboard)
				dashboard.GET("/author", controllers.GetAuthorDashboard)
				dashboard.GET("/committee", controllers.GetCommitteeDashboard)
				dashboard.GET("/president", controllers.GetPresidentDashboard)
			}

			// Conferences
			conferences := protected.Group("/conferences")
			{
				conferences.POST("", controllers.CreateConference)
				conferences.PUT("/:id", controllers.UpdateConference)
				conferences.DELETE("/:id", controllers.DeleteConference)

				// Committee management, president only (checked per conference)
				conferences.GET("/:id/committee", controllers.GetCommittee)
				conferences.POST("/:id/committee", controllers.AddCommitteeMember)
				conferences.PUT("/:id/committee/:memberId", controllers.UpdateCommitteeMember)
				conferences.DELETE("/:id/committee/:memberId", controllers.DeleteCommitteeMember)
				conferences.POST("/:id/committee/:memberId/responsible", controllers.SetResponsibleMember)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.POST("", controllers.CreateSubmission)

				// Author team
				submissions.GET("/:id/team", controllers.GetSubmissionTeam)
				submissions.POST("/:id/team", controllers.AddCoauthor)
				submissions.DELETE("/:id/team/:userId", controllers.RemoveCoauthor)

				// Documents
				submissions.POST("/:id/document", controllers.UploadDocument)
				submissions.POST("/:id/revision", controllers.UploadRevision)
				submissions.GET("/:id/document", controllers.DownloadDocument)

				// Reviews and decisions
				submissions.POST("/:id/reviewers", controllers.AssignReviewer)
				submissions.GET("/:id/decision", controllers.GetDecision)
				submissions.POST("/:id/decision", controllers.PostDecision)
			}

			// Reviews
			protected.PUT("/reviews/:id", controllers.SubmitReview)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/unread", controllers.GetUnreadNotifications)
				notifications.GET("/count", controllers.GetNotificationCounter)
				notifications.POST("", controllers.CreateNotification)
				notifications.POST("/:id/read", controllers.MarkNotificationRead)
				notifications.POST("/read-all", controllers.MarkAllNotificationsRead)
				notifications.DELETE("/:id", controllers.DeleteNotification)
			}

			// Email
			email := protected.Group("/email")
			{
				email.POST("/send", controllers.SendEmail)
				email.POST("/send-submission-id", controllers.SendSubmissionIDEmail)
				email.POST("/send-decision", controllers.SendDecisionEmail)
			}
		}
	}
}
