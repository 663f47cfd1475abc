package migrations

import (
	"log"

	"petstore_manager/internal/database"
	"petstore_manager/internal/models"
	"petstore_manager/internal/repository"
	"petstore_manager/internal/services"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds the default admin account and
// business hours so a fresh install is usable immediately.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)
	settingsRepo := repository.NewSettingsRepository(db)

	// Default admin account
	existingUser, err := userService.GetUserByUsername("admin")
	if err == nil && existingUser != nil {
		log.Println("Admin user already exists")
	} else {
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
			log.Println("Admin user created successfully")
			log.Println("Username: admin")
			log.Println("Password: admin123")
		}
	}

	// Default business hours: Mon-Fri 09:00-18:00 with 15 minute grace periods.
	if _, err := settingsRepo.GetBusinessHours(); err == gorm.ErrRecordNotFound {
		hours := &models.BusinessHours{
			WorkStart:           "09:00",
			WorkEnd:             "18:00",
			WorkDays:            "1,2,3,4,5",
			LateThresholdMin:    15,
			EarlyLeaveThreshold: 15,
		}
		if err := settingsRepo.SaveBusinessHours(hours); err != nil {
			log.Printf("Warning: Failed to create default business hours: %v", err)
		} else {
			log.Println("Default business hours created")
		}
	}

	log.Println("Default data created successfully!")
	return nil
}
