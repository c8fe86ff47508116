package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/middleware"
)

func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	group := rg.Group("/auth")
	{
		group.POST("/register", controller.Register)
		group.POST("/login", controller.Login)
		group.POST("/refresh", controller.RefreshToken)

		protected := group.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.PUT("/change-password", controller.ChangePassword)
			protected.GET("/me", controller.GetMe)
		}
	}
}
