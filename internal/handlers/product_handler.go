package handlers

import (
	"net/http"

	"petstore_manager/internal/models"
	"petstore_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Breed       string `json:"breed"`
	Price       int64  `json:"price"`
	IsAvailable *bool  `json:"is_available"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	product := &models.Product{
		Name:        req.Name,
		Breed:       req.Breed,
		Price:       req.Price,
		IsAvailable: available,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	if err := h.productService.CreateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	if c.Query("available") == "true" {
		products, err := h.productService.GetAvailableProducts()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := h.productService.GetAllProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product.Name = req.Name
	product.Breed = req.Breed
	product.Price = req.Price
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	product.ImageURL = req.ImageURL
	product.Description = req.Description
	if err := h.productService.UpdateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.productService.DeleteProduct(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
