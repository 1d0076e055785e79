package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/tourist_safety_system/internal/auth"
	"github.com/shenikar/tourist_safety_system/internal/config"
	v1 "github.com/shenikar/tourist_safety_system/internal/handler/http/v1"
	"github.com/shenikar/tourist_safety_system/internal/realtime"
	"github.com/shenikar/tourist_safety_system/internal/repository"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/shenikar/tourist_safety_system/internal/webhook"
	"github.com/shenikar/tourist_safety_system/pkg/logger"
	"github.com/shenikar/tourist_safety_system/pkg/postgres"
	redisclient "github.com/shenikar/tourist_safety_system/pkg/redis"

	_ "github.com/shenikar/tourist_safety_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Tourist Safety System API
// @version 1.0
// @description Backend for the tourist safety platform: SOS alerts, live locations, geofences and the dispatcher dashboard.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	log.Info("Running database migrations...")
	if err := postgres.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Info("Database migrations applied successfully")

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Вебхуки: издатель кладет события в очередь, воркер доставляет
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Realtime: нативный websocket и Socket.IO получают одни и те же события
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	hub := realtime.NewHub(log)
	socketServer := realtime.NewSocketServer(tokens, log, func(r *http.Request) bool {
		return cfg.OriginAllowed(r.Header.Get("Origin"))
	})
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.WithError(err).Error("Socket.IO server stopped")
		}
	}()
	defer socketServer.Close()
	broadcaster := realtime.Fanout{hub, socketServer}

	// Инициализация репозиториев
	profileRepo := repository.NewProfileRepository(dbpool, redisClient)
	adminRepo := repository.NewAdminRepository(dbpool)
	alertRepo := repository.NewAlertRepository(dbpool)
	locationRepo := repository.NewLocationRepository(dbpool, redisClient)
	geofenceRepo := repository.NewGeofenceRepository(dbpool)

	// Инициализация сервисов
	authService := service.NewAuthService(profileRepo, adminRepo, tokens, log)
	geofenceService := service.NewGeofenceService(geofenceRepo, log)
	alertService := service.NewAlertService(alertRepo, profileRepo, broadcaster, webhookPublisher, log)
	touristService := service.NewTouristService(profileRepo, locationRepo, geofenceService, alertService, broadcaster, log)
	adminService := service.NewAdminService(profileRepo, alertRepo, locationRepo, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Auth:     authService,
		Tourist:  touristService,
		Alert:    alertService,
		Admin:    adminService,
		Geofence: geofenceService,
	}, tokens, hub, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	// Socket.IO для панели диспетчера
	router.GET("/socket.io/*any", gin.WrapH(socketServer))
	router.POST("/socket.io/*any", gin.WrapH(socketServer))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Останавливаем воркер вебхуков до закрытия Redis
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
