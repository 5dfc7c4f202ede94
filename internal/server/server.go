// Package server wires handlers, middleware and routes into a Fiber app.
package server

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devansh1234523/whole-sale/internal/handlers"
	"github.com/devansh1234523/whole-sale/internal/middleware"
	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/services"
)

type Deps struct {
	Services  *services.Services
	DB        *gorm.DB
	JWTSecret []byte
	Auth      *handlers.AuthHandler
}

// New builds the application with every route registered under /api/v1.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "WholesaleFlow API",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	Register(app, deps)
	return app
}

// Register adds the API routes to app.
func Register(app *fiber.App, deps Deps) {
	svc := deps.Services
	signedIn := middleware.AnyRole()
	managers := middleware.RoleProtected(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.RoleProtected(models.RoleAdmin)

	api := app.Group("/api/v1")

	// === PUBLIC ROUTES ===
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "Running", "message": "API Ready"})
	})
	api.Post("/login", deps.Auth.Login)

	// === AUTHENTICATED ROUTES (JWT) ===
	// Role checks sit on the routes so unknown paths still fall through to 404.
	api.Use(middleware.Authenticate(deps.JWTSecret))

	api.Get("/me", signedIn, deps.Auth.GetProfile)
	api.Get("/dashboard", signedIn, handlers.GetDashboard(svc))

	// Product Routes
	products := api.Group("/products", signedIn)
	products.Get("", handlers.GetProducts(svc.Catalog))
	products.Get("/:id", handlers.GetProduct(svc.Catalog))
	products.Post("", managers, handlers.CreateProduct(svc.Catalog))
	products.Put("/:id", managers, handlers.UpdateProduct(svc.Catalog))
	products.Delete("/:id", adminOnly, handlers.DeleteProduct(svc.Catalog))

	// Customer Routes
	customers := api.Group("/customers", signedIn)
	customers.Get("", handlers.GetCustomers(svc.Customers))
	customers.Get("/:id", handlers.GetCustomer(svc.Customers))
	customers.Post("", managers, handlers.CreateCustomer(svc.Customers))
	customers.Put("/:id", managers, handlers.UpdateCustomer(svc.Customers))
	customers.Delete("/:id", managers, handlers.DeleteCustomer(svc.Customers))

	// Inventory Routes
	inventory := api.Group("/inventory", signedIn)
	inventory.Get("", handlers.GetInventory(svc.Inventory))
	inventory.Post("/bulk-update", managers, handlers.BulkUpdateInventory(svc.Inventory))
	inventory.Get("/:id", handlers.GetInventoryItem(svc.Inventory))
	inventory.Put("/:id", managers, handlers.UpdateInventoryItem(svc.Inventory))
	inventory.Get("/:id/transactions", handlers.GetTransactions(svc.Inventory))
	inventory.Post("/:id/transactions", handlers.AddTransaction(svc.Inventory))

	// Staff Routes (Admin)
	staff := api.Group("/staff", adminOnly)
	staff.Get("", handlers.GetStaff(svc.Staff))
	staff.Post("", handlers.CreateStaffMember(svc.Staff))
	staff.Get("/:id", handlers.GetStaffMember(svc.Staff))
	staff.Put("/:id", handlers.UpdateStaffMember(svc.Staff))
	staff.Patch("/:id/status", handlers.ToggleStaffStatus(svc.Staff))
	staff.Delete("/:id", handlers.DeleteStaffMember(svc.Staff))

	// Admin Routes
	admin := api.Group("/admin", adminOnly)
	admin.Post("/register", deps.Auth.Register)
	admin.Get("/users", handlers.GetUsers(deps.DB))
	admin.Put("/users/:id", handlers.UpdateUser(deps.DB))
	admin.Delete("/users/:id", handlers.DeleteUser(deps.DB))
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(code).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
