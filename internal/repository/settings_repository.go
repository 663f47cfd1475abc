package repository

import (
	"petstore_manager/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	GetBusinessHours() (*models.BusinessHours, error)
	SaveBusinessHours(hours *models.BusinessHours) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetBusinessHours() (*models.BusinessHours, error) {
	var hours models.BusinessHours
	err := r.db.Order("id").First(&hours).Error
	if err != nil {
		return nil, err
	}
	return &hours, nil
}

func (r *settingsRepository) SaveBusinessHours(hours *models.BusinessHours) error {
	return r.db.Save(hours).Error
}
