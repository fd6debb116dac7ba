package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-freight-ws/internal/handler"
	"go-freight-ws/internal/ledger"
	"go-freight-ws/internal/middleware"
	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"
	"go-freight-ws/internal/service"
	"go-freight-ws/internal/ws"
	"go-freight-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Truck{}, &model.LoadProvider{}, &model.Load{}, &model.Transaction{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	truckRepo := repository.NewTruckRepo(db)
	providerRepo := repository.NewProviderRepo(db)
	loadRepo := repository.NewLoadRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	// Optional legacy rule: balance payments only after delivery
	settings := ledger.Settings{
		RequireDeliveryBeforeBalance: os.Getenv("REQUIRE_DELIVERY_BEFORE_BALANCE") == "true",
	}

	loadService := service.NewLoadService(loadRepo, truckRepo, providerRepo, txRepo, db, wsHub)
	paymentService := service.NewPaymentService(loadRepo, truckRepo, txRepo, db, wsHub, settings)
	dashService := service.NewDashboardService(truckRepo, providerRepo, loadRepo, txRepo)
	reportService := service.NewReportService(loadRepo, txRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	loadHandler := handler.NewLoadHandler(loadService, paymentService)
	truckHandler := handler.NewTruckHandler(truckRepo)
	providerHandler := handler.NewProviderHandler(providerRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Freight Katha v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetDashboardStats)

	// Fleet
	protected.Get("/trucks", middleware.RequirePrivilege("truck:view"), truckHandler.GetTrucks)
	protected.Post("/trucks", middleware.RequirePrivilege("truck:create"), truckHandler.CreateTruck)
	protected.Put("/trucks/:id", middleware.RequirePrivilege("truck:update"), truckHandler.UpdateTruck)
	protected.Delete("/trucks/:id", middleware.RequirePrivilege("truck:delete"), truckHandler.DeleteTruck)

	// Load providers
	protected.Get("/providers", middleware.RequirePrivilege("provider:view"), providerHandler.GetProviders)
	protected.Post("/providers", middleware.RequirePrivilege("provider:create"), providerHandler.CreateProvider)
	protected.Put("/providers/:id", middleware.RequirePrivilege("provider:update"), providerHandler.UpdateProvider)
	protected.Delete("/providers/:id", middleware.RequirePrivilege("provider:delete"), providerHandler.DeleteProvider)

	// Loads & lifecycle
	protected.Get("/loads", middleware.RequirePrivilege("load:view"), loadHandler.GetLoads)
	protected.Post("/loads", middleware.RequirePrivilege("load:create"), loadHandler.CreateLoad)
	protected.Get("/loads/:id", middleware.RequirePrivilege("load:view"), loadHandler.GetLoad)
	protected.Get("/loads/:id/katha", middleware.RequirePrivilege("load:view"), loadHandler.GetKatha)
	protected.Post("/loads/:id/assign", middleware.RequirePrivilege("load:assign"), loadHandler.AssignTruck)
	protected.Put("/loads/:id/status", middleware.RequirePrivilege("load:update_status"), loadHandler.UpdateStatus)

	// Payments (append-only katha entries)
	protected.Post("/loads/:id/transactions", middleware.RequirePrivilege("transaction:create"), loadHandler.RecordPayment)
	protected.Get("/loads/:id/transactions", middleware.RequirePrivilege("transaction:view"), loadHandler.GetTimeline)
	protected.Get("/transactions", middleware.RequirePrivilege("transaction:view"), loadHandler.GetCashLedger)

	// Reports
	protected.Get("/reports/loads", middleware.RequirePrivilege("report:view"), reportHandler.GetLoadReport)
	protected.Get("/reports/transactions", middleware.RequirePrivilege("report:view"), reportHandler.GetTransactionReport)

	// User management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles & privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MASTER_ADMIN gets ALL privileges
	masterRole, err := roleRepo.FindByCode(model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(&masterRole).Association("Privileges").Replace(allPrivileges)
		log.Println("MASTER_ADMIN role assigned all privileges")
	}

	// ADMIN gets everything except user management
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		adminPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if p.Code != "user:create" && p.Code != "user:update" && p.Code != "user:delete" && p.Code != "user:update_privilege" {
				adminPrivileges = append(adminPrivileges, p)
			}
		}
		db.Model(&adminRole).Association("Privileges").Replace(adminPrivileges)
		log.Println("ADMIN role assigned limited privileges")
	}

	// 4. Create default admin user with MASTER_ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		masterRole, _ := roleRepo.FindByCode(model.RoleMasterAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Master Administrator",
			RoleID:     &masterRole.ID,
			IsActive:   true,
			Privileges: masterRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (MASTER_ADMIN)")
		}
	}
}
