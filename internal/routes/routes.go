package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-desk/internal/controllers"
	"asset-desk/internal/listeners"
	"asset-desk/internal/repositories"
	"asset-desk/internal/services"
	"asset-desk/pkg/config"
	"asset-desk/pkg/constants"
	"asset-desk/pkg/eventbus"
	"asset-desk/pkg/logger"
	"asset-desk/pkg/metrics"
	"asset-desk/pkg/middleware"
	"asset-desk/pkg/service"
)

// Dependencies - всё, что нужно роутеру от main.
type Dependencies struct {
	DB      *pgxpool.Pool
	Redis   *redis.Client
	JWT     service.JWTService
	Bus     *eventbus.Bus
	Metrics *metrics.Metrics
	Loggers *logger.Loggers
	Config  *config.Config
}

func InitRouter(e *echo.Echo, deps Dependencies) {
	loggers := deps.Loggers
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, loggers.Auth)
	txManager := repositories.NewTxManager(deps.DB)
	cacheRepo := repositories.NewRedisCacheRepository(deps.Redis)

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(deps.DB, loggers.Auth)
	requestRepo := repositories.NewRequestRepository(deps.DB, loggers.Request)
	assetRepo := repositories.NewAssetRepository(deps.DB, loggers.Asset)
	historyRepo := repositories.NewRequestHistoryRepository(deps.DB)
	categoryRepo := repositories.NewCategoryRepository(deps.DB)
	auditRepo := repositories.NewAuditRepository(deps.DB)
	dashboardRepo := repositories.NewDashboardRepository(deps.DB, loggers.Main)

	// --- 2. СЕРВИСЫ ---
	requestService := services.NewRequestService(txManager, requestRepo, assetRepo, historyRepo, deps.Bus, deps.Metrics, loggers.Request)
	assetService := services.NewAssetService(assetRepo, requestRepo, userRepo, cacheRepo, loggers.Asset)
	assetImporter := services.NewAssetImporter(assetService, loggers.Asset)
	categoryService := services.NewCategoryService(categoryRepo, cacheRepo, deps.Config.Cache.CategoriesTTL, loggers.Main)
	employeeService := services.NewEmployeeService(userRepo, loggers.Main)
	auditService := services.NewAuditService(auditRepo, userRepo, assetRepo, loggers.Main)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, deps.Config.Cache.StatsTTL, loggers.Main)
	reportService := services.NewReportService(requestService, loggers.Request)
	authService := services.NewAuthService(userRepo, cacheRepo, deps.JWT, loggers.Auth, deps.Config.Auth)

	// Слушатели событий заявок
	listeners.NewRequestListener(cacheRepo, deps.Metrics, loggers.Main).Register(deps.Bus)

	// --- 3. КОНТРОЛЛЕРЫ ---
	requestCtrl := controllers.NewRequestController(requestService, loggers.Request)
	reportCtrl := controllers.NewReportController(reportService, loggers.Request)
	assetCtrl := controllers.NewAssetController(assetService, assetImporter, loggers.Asset)
	categoryCtrl := controllers.NewCategoryController(categoryService, loggers.Main)
	employeeCtrl := controllers.NewEmployeeController(employeeService, loggers.Main)
	auditCtrl := controllers.NewAuditController(auditService, loggers.Main)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, loggers.Main)
	authCtrl := controllers.NewAuthController(authService, loggers.Auth)

	// --- 4. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)
	adminOnly := authMW.RequireRole(constants.RoleAdmin)

	runAuthRouter(api, authCtrl, authMW)
	runRequestRouter(secureGroup, requestCtrl, reportCtrl, adminOnly)
	runAssetRouter(secureGroup, assetCtrl, adminOnly)
	runCategoryRouter(secureGroup, categoryCtrl, adminOnly)
	runEmployeeRouter(secureGroup, employeeCtrl, adminOnly)
	runAuditRouter(secureGroup, auditCtrl, adminOnly)
	runDashboardRouter(secureGroup, dashboardCtrl, adminOnly)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено", zap.Int("routes", len(e.Routes())))
}
