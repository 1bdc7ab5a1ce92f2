package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/essay-grader/internal/config"
	"alfredoptarigan/essay-grader/internal/handlers"
	"alfredoptarigan/essay-grader/internal/history"
	"alfredoptarigan/essay-grader/internal/repositories"
	"alfredoptarigan/essay-grader/internal/services"
)

const archiveQueueSize = 100

func main() {
	// Load configuration
	cfg := config.Load()
	config.InitLogger(cfg)
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database archive is optional
	var (
		subRepo  repositories.SubmissionRepository
		archiver services.Archiver
	)
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		subRepo = repositories.NewSubmissionRepository(db)
		archiver = services.NewArchiver(subRepo, cfg.Grading.ArchiveConcurrency, archiveQueueSize)
		archiver.Start(ctx)
		log.Println("✅ Submission archive enabled")
	} else {
		log.Println("ℹ️  DB_ENABLED=false, graded essays are kept in session memory only")
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	documentService := services.NewDocumentService()

	geminiService, err := services.NewGeminiService(cfg.Gemini, cfg.Grading.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Reference retrieval is optional
	var qdrantService services.QdrantService
	if cfg.Qdrant.Enabled() {
		qs, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qs.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		qdrantService = qs
		log.Println("✅ Qdrant initialized successfully")
	}

	sessions := history.NewSessions(cfg.Grading.SessionTTL)
	go sweepSessions(ctx, sessions, time.Minute)
	graderService := services.NewGraderService(
		sessions,
		geminiService,
		qdrantService,
		documentService,
		storageService,
		archiver,
		cfg.Grading.RetryMaxAttempts,
	)
	log.Println("✅ Grader service initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ENEM Essay Grader API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, " + handlers.SessionHeader,
		ExposeHeaders: handlers.SessionHeader,
	}))

	handlers.RegisterRoutes(app, handlers.Handlers{
		Essay:      handlers.NewEssayHandler(graderService, cfg.Storage.MaxFileSize),
		Result:     handlers.NewResultHandler(sessions, subRepo),
		History:    handlers.NewHistoryHandler(sessions, cfg.Grading.TopN),
		SessionTTL: cfg.Grading.SessionTTL,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	// Flush pending archive writes once the server has stopped
	if archiver != nil {
		archiver.Stop()
	}
}

// sweepSessions drops idle session histories until ctx is cancelled.
func sweepSessions(ctx context.Context, sessions *history.Sessions, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				log.Debugf("🧹 Dropped %d idle sessions", n)
			}
		}
	}
}
