package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"agriscan/internal/config"
	"agriscan/internal/database/minio"
	"agriscan/internal/database/postgres"
	"agriscan/internal/database/redis"
	"agriscan/internal/event"
	"agriscan/internal/handlers"
	"agriscan/internal/repository"
	"agriscan/internal/services"
	"agriscan/internal/worker"

	"github.com/gin-gonic/gin"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/agriscan", "log", "api_service")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Failed to set up file logging, using stderr: %v", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.NewAPIService()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Error connecting to MinIO: %v", err)
	}

	var alertPublisher event.AlertPublisher
	broker, err := event.Dial(cfg.RabbitMQCfg)
	if err != nil {
		// Alerts are still stored without the broker; fan-out resumes on restart.
		log.Printf("error connect to alert broker, fan-out disabled: %s", err)
	} else {
		defer broker.Close()
		alertPublisher = event.NewAlertPublisher(broker)
	}

	// repositories
	userRepository := repository.NewUserRepository(db)
	sessionRepository := repository.NewSessionRepository(redisClient.GetClient())
	reportRepository := repository.NewReportRepository(db)
	alertRepository := repository.NewAlertRepository(db)
	diseaseRepository := repository.NewDiseaseRepository(db)
	plantRepository := repository.NewPlantRepository(db)
	statsRepository := repository.NewStatsRepository(db)

	// services
	jwtService := services.NewJWTService(cfg.AuthCfg.JWTSecret)
	sessionService := services.NewSessionService(sessionRepository)
	userService := services.NewUserService(userRepository, sessionService, jwtService)
	reportService := services.NewReportService(reportRepository, minioClient)
	alertService := services.NewAlertService(alertRepository, alertPublisher)
	statsService := services.NewStatsService(statsRepository)

	alertSweeper := worker.NewAlertSweeper(alertService)
	alertSweeper.Start()
	defer alertSweeper.Stop()

	r := gin.Default()
	r.GET("/checkhealth", func(c *gin.Context) {
		c.String(200, "AgriScan API service is healthy")
	})

	// handlers
	middleware := handlers.NewMiddleware(jwtService, sessionService)
	authHandler := handlers.NewAuthHandler(userService, middleware)
	reportHandler := handlers.NewReportHandler(reportService, middleware)
	alertHandler := handlers.NewAlertHandler(alertService, middleware)
	diseaseHandler := handlers.NewDiseaseHandler(diseaseRepository, plantRepository, middleware)
	statsHandler := handlers.NewStatsHandler(statsService, middleware)

	authHandler.RegisterRoutes(r)
	reportHandler.RegisterRoutes(r)
	alertHandler.RegisterRoutes(r)
	diseaseHandler.RegisterRoutes(r)
	statsHandler.RegisterRoutes(r)

	log.Printf("Starting agriscan-api on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
