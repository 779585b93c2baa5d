package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/fitness-challenge-api/internal/config"
	"github.com/yukikurage/fitness-challenge-api/internal/database"
	"github.com/yukikurage/fitness-challenge-api/internal/handlers"
	"github.com/yukikurage/fitness-challenge-api/internal/middleware"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up structured logging
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	spellRepo := repository.NewSpellRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, spellRepo)
	challengeService := services.NewChallengeService(challengeRepo, completionRepo)
	completionService := services.NewCompletionService(completionRepo)
	spellService := services.NewSpellService(spellRepo, userRepo, cfg)
	reviewService := services.NewReviewService(reviewRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	challengeHandler := handlers.NewChallengeHandler(challengeService, aiService)
	completionHandler := handlers.NewCompletionHandler(completionService)
	spellHandler := handlers.NewSpellHandler(spellService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Fitness Challenge API is running",
		})
	})

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/refresh", authHandler.Refresh)

		// Everything below requires a valid access token
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			users := protected.Group("/users")
			{
				users.GET("", userHandler.ListUsers)
				users.GET("/profile", userHandler.GetProfile)
				users.GET("/:user_id", userHandler.GetUser)
				users.GET("/:user_id/challenges", challengeHandler.ListChallengesByCreator)
				users.PUT("/:user_id", userHandler.UpdateUser)
				users.DELETE("/:user_id", userHandler.DeleteUser)
			}

			challenges := protected.Group("/challenges")
			{
				challenges.GET("", challengeHandler.ListActiveChallenges)
				challenges.POST("", challengeHandler.CreateChallenge)
				challenges.GET("/completed/count", challengeHandler.GetCompletedCount)
				challenges.POST("/generate", challengeHandler.GenerateChallenges)
				challenges.GET("/:challenge_id", challengeHandler.GetChallenge)
				challenges.PUT("/:challenge_id", middleware.RequireChallengeCreator(), challengeHandler.UpdateChallenge)
				challenges.DELETE("/:challenge_id", middleware.RequireChallengeCreator(), challengeHandler.DeleteChallenge)
				challenges.POST("/:challenge_id/completions", challengeHandler.CompleteChallenge)
				challenges.GET("/:challenge_id/completions", challengeHandler.ListCompletions)
			}

			completions := protected.Group("/completions")
			{
				completions.GET("", completionHandler.ListCompletions)
				completions.GET("/:complete_id", completionHandler.GetCompletion)
				completions.PUT("/:complete_id", completionHandler.UpdateCompletion)
				completions.DELETE("/:complete_id", completionHandler.DeleteCompletion)
			}

			spells := protected.Group("/spells")
			{
				spells.GET("", spellHandler.ListSpells)
				spells.POST("", spellHandler.CreateSpell)
				spells.GET("/search", spellHandler.SearchSpells)
				spells.POST("/buy", spellHandler.BuySpell)
				spells.POST("/activate", spellHandler.ActivateSpell)
				spells.GET("/:spell_id", spellHandler.GetSpell)
				spells.PUT("/:spell_id", spellHandler.UpdateSpell)
				spells.DELETE("/:spell_id", spellHandler.DeleteSpell)
			}

			reviews := protected.Group("/reviews")
			{
				reviews.GET("", reviewHandler.ListReviews)
				reviews.POST("", reviewHandler.CreateReview)
				reviews.PUT("/:review_id", reviewHandler.UpdateReview)
				reviews.DELETE("/:review_id", reviewHandler.DeleteReview)
			}
		}
	}

	// Start server
	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
