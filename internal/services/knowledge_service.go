package services

import (
	"fmt"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/models"
	"petstore_manager/internal/repository"

	"gorm.io/gorm"
)

type KnowledgeService interface {
	CreateArticle(actor models.Actor, article *models.KnowledgeArticle) error
	GetArticleByID(id uint) (*models.KnowledgeArticle, error)
	GetAllArticles() ([]models.KnowledgeArticle, error)
	GetArticlesByCategory(category string) ([]models.KnowledgeArticle, error)
	SearchArticles(keyword string) ([]models.KnowledgeArticle, error)
	UpdateArticle(actor models.Actor, id uint, title, category, tags, content string) (*models.KnowledgeArticle, error)
	DeleteArticle(actor models.Actor, id uint) error
}

type knowledgeService struct {
	knowledgeRepo repository.KnowledgeRepository
}

func NewKnowledgeService(knowledgeRepo repository.KnowledgeRepository) KnowledgeService {
	return &knowledgeService{knowledgeRepo: knowledgeRepo}
}

func (s *knowledgeService) CreateArticle(actor models.Actor, article *models.KnowledgeArticle) error {
	if article.Title == "" {
		return apperrors.Validation("article title is required")
	}
	article.AuthorID = actor.UserID
	return s.knowledgeRepo.Create(article)
}

func (s *knowledgeService) GetArticleByID(id uint) (*models.KnowledgeArticle, error) {
	article, err := s.knowledgeRepo.GetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("article %d not found", id)
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	return article, nil
}

func (s *knowledgeService) GetAllArticles() ([]models.KnowledgeArticle, error) {
	return s.knowledgeRepo.GetAll()
}

func (s *knowledgeService) GetArticlesByCategory(category string) ([]models.KnowledgeArticle, error) {
	return s.knowledgeRepo.GetByCategory(category)
}

func (s *knowledgeService) SearchArticles(keyword string) ([]models.KnowledgeArticle, error) {
	return s.knowledgeRepo.Search(keyword)
}

func (s *knowledgeService) UpdateArticle(actor models.Actor, id uint, title, category, tags, content string) (*models.KnowledgeArticle, error) {
	article, err := s.GetArticleByID(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeArticle(actor, article); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, apperrors.Validation("article title is required")
	}

	article.Title = title
	article.Category = category
	article.Tags = tags
	article.Content = content
	if err := s.knowledgeRepo.Update(article); err != nil {
		return nil, fmt.Errorf("failed to save article: %w", err)
	}
	return article, nil
}

func (s *knowledgeService) DeleteArticle(actor models.Actor, id uint) error {
	article, err := s.GetArticleByID(id)
	if err != nil {
		return err
	}
	if err := authorizeArticle(actor, article); err != nil {
		return err
	}
	return s.knowledgeRepo.Delete(id)
}

// authorizeArticle allows only the author or an admin to mutate an article.
func authorizeArticle(actor models.Actor, article *models.KnowledgeArticle) error {
	if actor.IsAdmin() || article.AuthorID == actor.UserID {
		return nil
	}
	return apperrors.Forbidden("article %d belongs to another author", article.ID)
}
