package handlers

import (
	"net/http"

	"petstore_manager/internal/middleware"
	"petstore_manager/internal/models"
	"petstore_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type KnowledgeHandler struct {
	knowledgeService services.KnowledgeService
}

func NewKnowledgeHandler(knowledgeService services.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledgeService: knowledgeService}
}

type articleRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
	Content  string `json:"content"`
}

func (h *KnowledgeHandler) Create(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	article := &models.KnowledgeArticle{
		Title:    req.Title,
		Category: req.Category,
		Tags:     req.Tags,
		Content:  req.Content,
	}
	if err := h.knowledgeService.CreateArticle(middleware.ActorFrom(c), article); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *KnowledgeHandler) List(c *gin.Context) {
	if keyword := c.Query("q"); keyword != "" {
		articles, err := h.knowledgeService.SearchArticles(keyword)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, articles)
		return
	}
	if category := c.Query("category"); category != "" {
		articles, err := h.knowledgeService.GetArticlesByCategory(category)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, articles)
		return
	}

	articles, err := h.knowledgeService.GetAllArticles()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (h *KnowledgeHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	article, err := h.knowledgeService.GetArticleByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *KnowledgeHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	article, err := h.knowledgeService.UpdateArticle(middleware.ActorFrom(c), id, req.Title, req.Category, req.Tags, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *KnowledgeHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.knowledgeService.DeleteArticle(middleware.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
