package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Breed       string         `json:"breed"`
	Price       int64          `json:"price" gorm:"not null"` // integer currency units
	IsAvailable bool           `json:"is_available" gorm:"default:true"`
	ImageURL    string         `json:"image_url"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
