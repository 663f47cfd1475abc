package main

import (
	"fmt"
	"log"

	"petstore_manager/internal/config"
	"petstore_manager/internal/database"
	"petstore_manager/internal/models"
	"petstore_manager/internal/repository"
	"petstore_manager/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Customer{},
		&models.CustomerFile{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.InstallmentPlan{},
		&models.Payment{},
		&models.AttendanceRecord{},
		&models.BusinessHours{},
		&models.KnowledgeArticle{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables with proper schema
	fmt.Println("Creating tables...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Create default admin user
	fmt.Println("Creating default admin user...")
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	existingUser, err := userService.GetUserByUsername("admin")
	if err == nil && existingUser != nil {
		fmt.Println("Admin user already exists")
		return
	}

	admin := &models.User{
		Username:    "admin",
		DisplayName: "Administrator",
		Email:       "admin@localhost",
		Role:        string(models.RoleAdmin),
		IsActive:    true,
	}

	if err := userService.CreateUser(admin, "admin123"); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		fmt.Println("Admin user created successfully")
		fmt.Println("Username: admin")
		fmt.Println("Password: admin123")
	}

	// Create default business hours
	fmt.Println("Creating default business hours...")
	settingsRepo := repository.NewSettingsRepository(db)
	hours := &models.BusinessHours{
		WorkStart:           "09:00",
		WorkEnd:             "18:00",
		WorkDays:            "1,2,3,4,5",
		LateThresholdMin:    15,
		EarlyLeaveThreshold: 15,
	}
	if err := settingsRepo.SaveBusinessHours(hours); err != nil {
		log.Printf("Warning: Failed to create default business hours: %v", err)
	}

	fmt.Println("Database initialization completed successfully!")
}
