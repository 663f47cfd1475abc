package repository

import (
	"petstore_manager/internal/models"

	"gorm.io/gorm"
)

type KnowledgeRepository interface {
	Create(article *models.KnowledgeArticle) error
	GetByID(id uint) (*models.KnowledgeArticle, error)
	GetAll() ([]models.KnowledgeArticle, error)
	GetByCategory(category string) ([]models.KnowledgeArticle, error)
	Search(keyword string) ([]models.KnowledgeArticle, error)
	Update(article *models.KnowledgeArticle) error
	Delete(id uint) error
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

func (r *knowledgeRepository) Create(article *models.KnowledgeArticle) error {
	return r.db.Create(article).Error
}

func (r *knowledgeRepository) GetByID(id uint) (*models.KnowledgeArticle, error) {
	var article models.KnowledgeArticle
	err := r.db.First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *knowledgeRepository) GetAll() ([]models.KnowledgeArticle, error) {
	var articles []models.KnowledgeArticle
	err := r.db.Order("updated_at desc").Find(&articles).Error
	return articles, err
}

func (r *knowledgeRepository) GetByCategory(category string) ([]models.KnowledgeArticle, error) {
	var articles []models.KnowledgeArticle
	err := r.db.Where("category = ?", category).Order("updated_at desc").Find(&articles).Error
	return articles, err
}

func (r *knowledgeRepository) Search(keyword string) ([]models.KnowledgeArticle, error) {
	var articles []models.KnowledgeArticle
	pattern := "%" + keyword + "%"
	err := r.db.Where("title LIKE ? OR tags LIKE ? OR content LIKE ?", pattern, pattern, pattern).
		Order("updated_at desc").Find(&articles).Error
	return articles, err
}

func (r *knowledgeRepository) Update(article *models.KnowledgeArticle) error {
	return r.db.Save(article).Error
}

func (r *knowledgeRepository) Delete(id uint) error {
	return r.db.Delete(&models.KnowledgeArticle{}, id).Error
}
