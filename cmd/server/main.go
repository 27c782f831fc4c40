package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/srishti-farm/farmstay-api/internal/auth"
	"github.com/srishti-farm/farmstay-api/internal/config"
	"github.com/srishti-farm/farmstay-api/internal/database"
	"github.com/srishti-farm/farmstay-api/internal/handlers"
	"github.com/srishti-farm/farmstay-api/internal/notifier"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize Handlers
	var mailer notifier.Notifier
	if m, err := notifier.NewMailNotifier(cfg); err != nil {
		log.Printf("Mail notifier not initialized: %v", err)
	} else {
		mailer = m
	}

	authHandler := auth.NewAuthHandler(cfg, db)
	bookingHandler := handlers.NewBookingHandler(db, mailer, authHandler)
	contactHandler := handlers.NewContactHandler(db, mailer, authHandler)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, bookingHandler, contactHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
