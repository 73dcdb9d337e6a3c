package routes

import (
	"github.com/labstack/echo/v4"

	"asset-desk/internal/controllers"
)

func runAssetRouter(secureGroup *echo.Group, ctrl *controllers.AssetController, adminOnly echo.MiddlewareFunc) {
	assets := secureGroup.Group("/assets")

	assets.GET("", ctrl.GetAssets)
	assets.GET("/available", ctrl.GetAvailable)
	assets.GET("/status/:status", ctrl.GetByStatus)
	assets.GET("/assigned/:employeeId", ctrl.GetAssigned)
	assets.GET("/:id", ctrl.FindAsset)

	assets.POST("", ctrl.CreateAsset, adminOnly)
	assets.POST("/import", ctrl.ImportAssets, adminOnly)
	assets.PUT("/:id", ctrl.UpdateAsset, adminOnly)
	assets.DELETE("/:id", ctrl.DeleteAsset, adminOnly)
}
