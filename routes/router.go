// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kuznetsova-anastasiia/next-level/controllers"
	"github.com/kuznetsova-anastasiia/next-level/middlewares"
	"github.com/kuznetsova-anastasiia/next-level/models"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 公开接口 ---
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", controllers.Register)
			authRoutes.POST("/login", controllers.Login)
			authRoutes.POST("/forgot-password", controllers.ForgotPassword)
			authRoutes.POST("/validate-reset-token", controllers.ValidateResetToken)
			authRoutes.POST("/reset-password", controllers.ResetPassword)
		}
		apiV1.GET("/stats", controllers.GetStats)
		apiV1.POST("/contact", controllers.SubmitContactMessage)

		// --- 需要登录的接口 ---
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			userRoutes.GET("/me", controllers.GetMe)
		}
		submissionRoutes := apiV1.Group("/submissions")
		submissionRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			submissionRoutes.POST("", controllers.CreateSubmission)
			submissionRoutes.GET("", controllers.GetMySubmissions)
		}

		// --- 仅管理员可访问的接口 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/submissions", controllers.AdminGetSubmissions)
			adminRoutes.GET("/submissions/:id", controllers.AdminGetSubmission)
			adminRoutes.PUT("/submissions/:id", controllers.AdminUpdateSubmission)
			adminRoutes.POST("/comments", controllers.AdminAddComment)
			adminRoutes.POST("/sync", controllers.SyncAction)
			adminRoutes.GET("/sync", controllers.GetSyncInfo)
		}
	}

	return r
}
