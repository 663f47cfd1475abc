package models

import (
	"time"

	"gorm.io/gorm"
)

// KnowledgeArticle is an internal knowledge-base entry (care guides, sales
// scripts, after-sales playbooks). Only the author or an admin may mutate it.
type KnowledgeArticle struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"not null"`
	Category  string         `json:"category"`
	Tags      string         `json:"tags"`
	Content   string         `json:"content" gorm:"type:text"`
	AuthorID  uint           `json:"author_id" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
