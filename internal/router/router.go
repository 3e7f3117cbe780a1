package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sociumhq/social-api/internal/feed"
	"github.com/sociumhq/social-api/internal/handlers"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/notifications"
	"github.com/sociumhq/social-api/internal/reactions"
	"github.com/sociumhq/social-api/internal/relations"
	"github.com/sociumhq/social-api/internal/repositories"
	"github.com/sociumhq/social-api/pkg/config"
	"github.com/sociumhq/social-api/pkg/storage"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes runs the relational migrations, builds the repositories and
// domain services and wires all application routes.
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config, firebaseAuthClient *auth.Client, imageStore storage.ImageStore) {
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Reaction{},
		&models.Friendship{},
		&models.Follow{},
		&models.Comment{},
		&models.SavedPost{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	profileRepo := repositories.NewPostgresProfileRepository(db.Postgres)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	reactionRepo := repositories.NewPostgresReactionRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))

	// --- Domain services ---
	resolver := relations.NewResolver(friendshipRepo, followRepo)
	mutator := relations.NewMutator(userRepo, friendshipRepo, followRepo)
	composer := feed.NewComposer(postRepo, resolver)
	ledger := reactions.NewLedger(reactionRepo, postRepo, db.Redis)
	notifier := notifications.NewNotifier(notificationRepo, userRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, profileRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo, profileRepo, imageStore)
	userHandler.RegisterUserRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, commentRepo, savedPostRepo, ledger, imageStore)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(composer, userRepo)
	feedHandler.RegisterFeedRoutes(api)

	followHandler := handlers.NewFollowHandler(mutator, resolver, profileRepo, notifier)
	followHandler.RegisterFollowRoutes(api)

	friendshipHandler := handlers.NewFriendshipHandler(mutator, resolver, profileRepo, notifier)
	friendshipHandler.RegisterFriendshipRoutes(api)

	likeHandler := handlers.NewLikeHandler(ledger, notifier)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)

	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo, postRepo)
	savedPostHandler.RegisterSavedPostRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
