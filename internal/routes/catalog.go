package routes

import (
	"github.com/labstack/echo/v4"

	"asset-desk/internal/controllers"
)

func runCategoryRouter(secureGroup *echo.Group, ctrl *controllers.CategoryController, adminOnly echo.MiddlewareFunc) {
	categories := secureGroup.Group("/categories")

	categories.GET("", ctrl.GetCategories)
	categories.POST("", ctrl.CreateCategory, adminOnly)
	categories.PUT("/:id", ctrl.UpdateCategory, adminOnly)
	categories.DELETE("/:id", ctrl.DeleteCategory, adminOnly)
}

func runEmployeeRouter(secureGroup *echo.Group, ctrl *controllers.EmployeeController, adminOnly echo.MiddlewareFunc) {
	secureGroup.GET("/employees", ctrl.GetEmployees, adminOnly)
}

func runAuditRouter(secureGroup *echo.Group, ctrl *controllers.AuditController, adminOnly echo.MiddlewareFunc) {
	audit := secureGroup.Group("/audit", adminOnly)

	audit.GET("/logs", ctrl.GetLogs)
	audit.POST("/request", ctrl.CreateAuditRequest)
}

func runDashboardRouter(secureGroup *echo.Group, ctrl *controllers.DashboardController, adminOnly echo.MiddlewareFunc) {
	dashboard := secureGroup.Group("/dashboard")

	dashboard.GET("/stats/:employeeId", ctrl.GetDashboardStats)
	dashboard.GET("/summary", ctrl.GetSummary, adminOnly)
}
