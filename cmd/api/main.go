// @title CodeZetta API
// @version 1.0
// @description Quiz-taking backend: catalog, grading, points, leaderboard, social login and share links.
// @host localhost:3000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "codezetta/cmd/api/docs"
	"codezetta/internal/adapter"
	"codezetta/internal/adapter/oauth"
	"codezetta/internal/adapter/quizgen"
	"codezetta/internal/cache"
	"codezetta/internal/config"
	"codezetta/internal/content"
	"codezetta/internal/database"
	"codezetta/internal/domain"
	"codezetta/internal/handler"
	"codezetta/internal/logger"
	"codezetta/internal/middleware"
	"codezetta/internal/repository"
	"codezetta/internal/service"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	socialAccountRepository := repository.NewSQLXSocialAccountRepository(db)
	subjectRepository := repository.NewSQLXSubjectRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	sessionRepository := repository.NewSQLXSessionRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Redis backs the leaderboard and the share-slug cache. Without it both
	// fall back to the database.
	var (
		cacheAdapter domain.Cache
		leaderboard  domain.LeaderboardStore
	)
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		leaderboard = adapter.NewRedisLeaderboardStore(redisClient, cache.LeaderboardKey)
		appLogger.Info("Successfully connected to Redis")
	}

	// Social login providers are only registered when credentials exist.
	var providers []domain.SocialAuthProvider
	if cfg.Google.Configured() {
		providers = append(providers, oauth.NewGoogleProvider(cfg.Google))
	}
	if cfg.LinkedIn.Configured() {
		providers = append(providers, oauth.NewLinkedInProvider(cfg.LinkedIn))
	}
	appLogger.Info("Social login providers configured", zap.Int("count", len(providers)))

	generator, err := quizgen.NewFromConfig(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	// Initialize services
	authService, err := service.NewAuthService(userRepository, socialAccountRepository, txManager, cfg.JWT, cfg.Auth, providers...)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository, attemptRepository, leaderboard, cfg.Auth.BcryptCost)
	subjectService := service.NewSubjectService(subjectRepository)
	quizService := service.NewQuizService(quizRepository, subjectRepository, attemptRepository, txManager)
	attemptService := service.NewAttemptService(
		quizRepository,
		attemptRepository,
		userRepository,
		sessionRepository,
		txManager,
		service.NewArticleSuggester(content.NewArticleCatalog()),
		content.NewQuestionTemplates(),
		leaderboard,
	)
	sessionService := service.NewSessionService(sessionRepository, quizRepository, txManager)
	shareService := service.NewShareService(
		attemptRepository,
		quizRepository,
		userRepository,
		service.NewShareSlugCache(cacheAdapter, cfg.CacheTTL.ShareSlug),
		cfg.Frontend.BaseURL,
	)
	aiQuizService := service.NewAIQuizService(generator, subjectService, quizRepository, txManager)

	sweeper := service.NewSessionSweeper(sessionRepository, cfg.Session.SweepSchedule, cfg.Session.InactiveTimeout)
	if err := sweeper.Start(); err != nil {
		appLogger.Fatal("Failed to start session sweeper", zap.Error(err))
	}

	// Initialize handlers
	validator := validation.NewValidator()
	healthChecks := map[string]handler.Pinger{"database": db}
	if cacheAdapter != nil {
		healthChecks["redis"] = handler.PingFunc(cacheAdapter.Ping)
	}
	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, validator, cfg.Frontend),
		User:    handler.NewUserHandler(userService, validator),
		Subject: handler.NewSubjectHandler(subjectService, validator),
		Quiz:    handler.NewQuizHandler(quizService, attemptService, sessionService, validator),
		Share:   handler.NewShareHandler(shareService, validator, cfg.Frontend.BaseURL),
		AI:      handler.NewAIHandler(aiQuizService, validator),
		Health:  handler.NewHealthHandler(healthChecks),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), handlers, middleware.Protected(authService), handler.RouteLimits{
		Login:  middleware.LoginRateLimiter(),
		Submit: middleware.SubmitRateLimiter(),
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	sweeper.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
