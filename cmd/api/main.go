package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devansh1234523/whole-sale/internal/config"
	"github.com/devansh1234523/whole-sale/internal/database"
	"github.com/devansh1234523/whole-sale/internal/handlers"
	"github.com/devansh1234523/whole-sale/internal/server"
	"github.com/devansh1234523/whole-sale/internal/services"
	"github.com/devansh1234523/whole-sale/internal/telemetry"
)

func main() {
	// 1. Load configuration (.env first)
	cfg := config.Load()
	ctx := context.Background()

	// Money fields are written as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// 2. Tracing
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}

	// 3. Connect Database (accounts, and snapshots with the sql driver)
	db, err := database.Connect(cfg.DB, cfg.IsProduction())
	if err != nil {
		log.Fatal("Failed to connect to database. \nError: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	// 4. Open collections
	snapshots, err := database.OpenSnapshotStore(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to open snapshot storage: %v", err)
	}
	svc, err := services.Open(ctx, snapshots, cfg.SeedSampleData)
	if err != nil {
		log.Fatalf("Failed to load collections: %v", err)
	}
	log.Printf("Collections loaded from %s storage", cfg.StorageDriver)

	// 5. HTTP
	app := server.New(server.Deps{
		Services:  svc,
		DB:        db,
		JWTSecret: cfg.JWTSecret,
		Auth:      handlers.NewAuthHandler(db, cfg.JWTSecret, cfg.JWTTTL),
	})

	go func() {
		log.Printf("Server running on port :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	tctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdownTracer(tctx); err != nil {
		log.Printf("Tracer shutdown error: %v", err)
	}
	log.Println("Server exited")
}
