package routes

import (
	"github.com/labstack/echo/v4"

	"asset-desk/internal/controllers"
	"asset-desk/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/register", authCtrl.Register)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
