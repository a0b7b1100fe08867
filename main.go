package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/salary-extraction-engine/analytics"
	"github.com/Aashish23092/salary-extraction-engine/benchmark"
	"github.com/Aashish23092/salary-extraction-engine/config"
	"github.com/Aashish23092/salary-extraction-engine/extract"
	"github.com/Aashish23092/salary-extraction-engine/handler"
	"github.com/Aashish23092/salary-extraction-engine/patterns"
	"github.com/Aashish23092/salary-extraction-engine/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Analytics store: extraction keeps working without persistence.
	var store analytics.Store
	sqliteStore, err := analytics.NewSQLiteStore(cfg.AnalyticsDBPath)
	if err != nil {
		log.Printf("Analytics store unavailable, running in-memory only: %v", err)
	} else {
		store = sqliteStore
		defer sqliteStore.Close()
	}
	tracker := analytics.NewTracker(store)

	// Extraction core
	repo := patterns.NewRepository()
	extractor := extract.New(repo, tracker)
	generator := extract.NewGenerator(extractor)
	orchestrator := service.NewOrchestrator(repo, extractor, generator, tracker, cfg.LargeDocumentPages)
	reader := service.NewPDFReader()
	engine := benchmark.NewEngine(extract.New(repo, nil)) // benchmark runs are not tracked

	// Handler layer
	extractionHandler := handler.NewExtractionHandler(reader, orchestrator)
	benchmarkHandler := handler.NewBenchmarkHandler(reader, engine)
	analyticsHandler := handler.NewAnalyticsHandler(tracker)
	patternHandler := handler.NewPatternHandler(repo)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Salary Extraction Engine",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		statements := api.Group("/statements")
		{
			statements.POST("/extract", extractionHandler.ExtractStatement)
			statements.POST("/benchmark", benchmarkHandler.RunBenchmark)
		}

		analyticsRoutes := api.Group("/analytics")
		{
			analyticsRoutes.GET("/performance", analyticsHandler.GetPerformance)
			analyticsRoutes.POST("/feedback", analyticsHandler.SubmitFeedback)
			analyticsRoutes.POST("/reset", analyticsHandler.ResetAnalytics)
		}

		api.POST("/patterns", patternHandler.RegisterPattern)
	}

	// Start server
	log.Printf("Starting Salary Extraction Engine on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
