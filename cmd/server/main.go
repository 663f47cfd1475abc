package main

import (
	"log"
	"time"

	"petstore_manager/internal/auth"
	"petstore_manager/internal/config"
	"petstore_manager/internal/database"
	"petstore_manager/internal/handlers"
	"petstore_manager/internal/middleware"
	"petstore_manager/internal/migrations"
	"petstore_manager/internal/models"
	"petstore_manager/internal/redis"
	"petstore_manager/internal/repository"
	"petstore_manager/internal/services"
	"petstore_manager/pkg/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second

	// Initialize notification client
	notifier := notify.NewClient(cfg.ReminderWebhook)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	customerService := services.NewCustomerService(customerRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo)
	settingsService := services.NewSettingsService(settingsRepo, redisClient, cacheTTL)
	attendanceService := services.NewAttendanceService(attendanceRepo, settingsService, redisClient, cacheTTL)
	knowledgeService := services.NewKnowledgeService(knowledgeRepo)
	reportService := services.NewReportService(db, redisClient, cacheTTL)
	reminderService := services.NewReminderService(orderRepo, notifier, cfg.ReminderDaysAhead)

	// Initialize auth and handlers
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(userService, tokens)
	customerHandler := handlers.NewCustomerHandler(customerService, orderService, cfg.UploadDir)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledgeService)
	reportHandler := handlers.NewReportHandler(reportService, reminderService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Setup routes
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	router.POST("/login", authHandler.Login)
	router.Static("/uploads", cfg.UploadDir)

	// Registration only opens when explicitly allowed in .env
	if cfg.AllowRegistration {
		router.POST("/register", authHandler.Register)
		log.Println("WARNING: Registration route is OPEN. Disable this in production!")
	}

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		api.GET("/customers", customerHandler.List)
		api.POST("/customers", customerHandler.Create)
		api.GET("/customers/:id", customerHandler.Get)
		api.PUT("/customers/:id", customerHandler.Update)
		api.DELETE("/customers/:id", customerHandler.Delete)
		api.GET("/customers/:id/orders", customerHandler.Orders)
		api.POST("/customers/:id/files", customerHandler.UploadFile)

		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)

		api.GET("/orders", orderHandler.List)
		api.POST("/orders", orderHandler.Create)
		api.GET("/orders/:id", orderHandler.Get)
		api.PUT("/orders/:id", orderHandler.Update)
		api.DELETE("/orders/:id", orderHandler.Delete)
		api.POST("/orders/:id/payments/:number/pay", orderHandler.RecordPayment)

		api.POST("/attendance/check-in", attendanceHandler.CheckIn)
		api.POST("/attendance/check-out", attendanceHandler.CheckOut)
		api.GET("/attendance/cutoffs", attendanceHandler.Cutoffs)
		api.GET("/attendance", attendanceHandler.List)

		api.GET("/knowledge", knowledgeHandler.List)
		api.POST("/knowledge", knowledgeHandler.Create)
		api.GET("/knowledge/:id", knowledgeHandler.Get)
		api.PUT("/knowledge/:id", knowledgeHandler.Update)
		api.DELETE("/knowledge/:id", knowledgeHandler.Delete)

		api.GET("/settings/business-hours", settingsHandler.GetBusinessHours)

		api.GET("/reports/sales", reportHandler.Sales)
		api.GET("/reports/orders", reportHandler.OrderStatus)
		api.GET("/reports/attendance", reportHandler.Attendance)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
		{
			admin.POST("/products", productHandler.Create)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)

			admin.PUT("/attendance/override/:id", attendanceHandler.Override)
			admin.PUT("/settings/business-hours", settingsHandler.UpdateBusinessHours)
			admin.POST("/reminders/run", reportHandler.RunReminders)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
