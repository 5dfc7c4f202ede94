package main

import (
	"context"
	"flag"
	"log"

	"github.com/devansh1234523/whole-sale/internal/config"
	"github.com/devansh1234523/whole-sale/internal/database"
	"github.com/devansh1234523/whole-sale/internal/services"
)

func main() {
	seed := flag.Bool("seed", false, "load the sample collections when no snapshot exists")
	flag.Parse()

	// 1. Load env
	cfg := config.Load()

	// 2. Connect Database
	db, err := database.Connect(cfg.DB, cfg.IsProduction())
	if err != nil {
		log.Fatal("Failed to connect to database. \nError: ", err)
	}

	// 3. Run migrations and create the first admin
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	if !*seed {
		log.Println("✅ Migrations completed successfully!")
		return
	}

	// 4. Write the initial snapshots
	ctx := context.Background()
	snapshots, err := database.OpenSnapshotStore(ctx, cfg, db)
	if err != nil {
		log.Fatal(err)
	}
	svc, err := services.Open(ctx, snapshots, true)
	if err != nil {
		log.Fatalf("❌ Data seeding failed: %v", err)
	}
	log.Printf("Seeding completed: %d products, %d customers, %d staff, %d inventory items",
		svc.Products.Len(), svc.Customers.Len(), svc.Staff.Len(), len(svc.Inventory.List()))
	log.Println("✅ Migrations and Seeding completed successfully!")
}
