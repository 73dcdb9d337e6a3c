package routes

import (
	"github.com/labstack/echo/v4"

	"asset-desk/internal/controllers"
)

func runRequestRouter(secureGroup *echo.Group, ctrl *controllers.RequestController, reportCtrl *controllers.ReportController, adminOnly echo.MiddlewareFunc) {
	requests := secureGroup.Group("/requests")

	// Сотрудник видит и создаёт свои заявки, сервис сам режет выборку.
	requests.GET("", ctrl.GetRequests)
	requests.POST("", ctrl.CreateRequest)
	requests.GET("/export", reportCtrl.ExportRequests, adminOnly)
	requests.GET("/:id", ctrl.FindRequest)
	// PUT {id, status, description}: APPROVED и REJECTED здесь, как и в /decision,
	// проходят только с "confirm": true, иначе 428 без изменений.
	requests.PUT("/:id", ctrl.UpdateRequest)
	requests.GET("/:id/history", ctrl.GetHistory)
	requests.POST("/:id/decision", ctrl.DecideRequest, adminOnly)
}
