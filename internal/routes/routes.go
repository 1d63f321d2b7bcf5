package routes

import (
	"net/http"

	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Request *zap.Logger
	Report  *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	e.HTTPErrorHandler = HTTPErrorHandler(loggers.Main)

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Main)
	teamRepo := repositories.NewTeamRepository(dbConn, loggers.Main)
	requestRepo := repositories.NewRequestRepository(dbConn, loggers.Request)
	reportRepo := repositories.NewReportRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, loggers.Auth, &cfg.Auth)
	userService := services.NewUserService(userRepo)
	equipmentService := services.NewEquipmentService(txManager, equipmentRepo, requestRepo, loggers.Main)
	teamService := services.NewTeamService(txManager, teamRepo, userRepo, loggers.Main)
	requestService := services.NewRequestService(txManager, requestRepo, equipmentRepo, userRepo, loggers.Request)
	reportService := services.NewReportService(reportRepo, loggers.Report)

	// --- 3. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runHealthRouter(api, controllers.NewHealthController(dbConn, loggers.Main))
	runAuthRouter(api, controllers.NewAuthController(authService, jwtSvc, loggers.Auth), authMW)
	runUserRouter(secureGroup, controllers.NewUserController(userService, loggers.Main))
	runEquipmentRouter(secureGroup, controllers.NewEquipmentController(equipmentService, loggers.Main))
	runTeamRouter(secureGroup, controllers.NewTeamController(teamService, loggers.Main))
	runRequestRouter(secureGroup, controllers.NewRequestController(requestService, loggers.Request))
	runReportRouter(secureGroup, controllers.NewReportController(reportService, loggers.Report))

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}

// HTTPErrorHandler заворачивает ошибки echo (404 маршрута, 405, паники после Recover)
// в тот же конверт {success, message}, что и контроллеры.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
			err = echo.NewHTTPError(http.StatusNotFound, "Route not found")
		}
		if respErr := utils.ErrorResponse(c, err, logger); respErr != nil {
			logger.Error("HTTPErrorHandler: не удалось отправить ответ", zap.Error(respErr))
		}
	}
}
