package main

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/internal/router"
	"github.com/sociumhq/social-api/pkg/config"
	"github.com/sociumhq/social-api/pkg/firebase"
	"github.com/sociumhq/social-api/pkg/storage"
	"github.com/sociumhq/social-api/validators"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Firebase is optional. Without credentials the /firebase-login route
	// responds with 501 and password auth keeps working.
	var firebaseAuthClient *fbauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		fbApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = fbApp.AuthClient
		log.Println("Firebase authentication enabled.")
	}

	// MinIO is optional in the same way: no endpoint, no image uploads.
	var imageStore storage.ImageStore
	if cfg.MinioEndpoint != "" {
		imageStore, err = storage.NewMinioImageStore(context.Background(), storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize MinIO image store: %v", err)
		}
		log.Println("MinIO image store enabled.")
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, db, cfg, firebaseAuthClient, imageStore)

	log.Printf("Starting server on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
