package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"agriscan/internal/config"
	"agriscan/internal/dashboard/annotation"
	"agriscan/internal/dashboard/client"
	"agriscan/internal/dashboard/handlers"
	"agriscan/internal/dashboard/session"
	"agriscan/internal/dashboard/store"

	"github.com/gin-gonic/gin"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/agriscan", "log", "dashboard")
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

	cfg := config.NewDashboard()

	tokens := session.NewFileTokenStore(cfg.TokenFile)
	api := client.New(cfg.APIBaseURL, tokens)
	sessions := session.NewManager(api, tokens)

	// Resolve a previously persisted token before serving any route.
	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	sessions.Init(initCtx)
	cancel()
	if sessions.IsAuthenticated() {
		log.Printf("Resumed session for %s", sessions.CurrentUser().Phone)
	}

	// stores
	reportsStore := store.NewReportsStore(api)
	detailsStore := store.NewReportDetailsStore(api)
	alertsStore := store.NewAlertsStore(api)
	diseasesStore := store.NewDiseasesStore(api)
	overviewStore := store.NewOverviewStore(api)
	board := annotation.NewBoard()

	r := gin.Default()
	r.GET("/checkhealth", func(c *gin.Context) {
		c.String(200, "AgriScan dashboard is healthy")
	})

	// handlers
	guard := handlers.NewGuard(sessions)
	authHandler := handlers.NewAuthHandler(sessions, api)
	homeHandler := handlers.NewHomeHandler(sessions, overviewStore, reportsStore, diseasesStore, api)
	reportsHandler := handlers.NewReportsHandler(reportsStore, detailsStore)
	alertsHandler := handlers.NewAlertsHandler(alertsStore)
	mapHandler := handlers.NewMapHandler(reportsStore)
	droughtHandler := handlers.NewDroughtHandler(board)

	authHandler.RegisterRoutes(r, guard)
	homeHandler.RegisterRoutes(r, guard)
	reportsHandler.RegisterRoutes(r, guard)
	alertsHandler.RegisterRoutes(r, guard)
	mapHandler.RegisterRoutes(r, guard)
	droughtHandler.RegisterRoutes(r, guard)

	log.Printf("Starting agriscan-dashboard on port %s (API at %s)", cfg.Port, cfg.APIBaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
