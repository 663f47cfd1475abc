package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"petstore_manager/internal/middleware"
	"petstore_manager/internal/models"
	"petstore_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService services.CustomerService
	orderService    services.OrderService
	uploadDir       string
}

func NewCustomerHandler(customerService services.CustomerService, orderService services.OrderService, uploadDir string) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, orderService: orderService, uploadDir: uploadDir}
}

type customerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Tags    string `json:"tags"`
	Notes   string `json:"notes"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	customer := &models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Tags:    req.Tags,
		Notes:   req.Notes,
	}
	if err := h.customerService.CreateCustomer(middleware.ActorFrom(c), customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	if keyword := c.Query("q"); keyword != "" {
		customers, err := h.customerService.SearchCustomers(keyword)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
		return
	}

	customers, err := h.customerService.GetAllCustomers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	customer, err := h.customerService.GetCustomerByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	customer, err := h.customerService.GetCustomerByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.Tags = req.Tags
	customer.Notes = req.Notes
	if err := h.customerService.UpdateCustomer(customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.customerService.DeleteCustomer(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *CustomerHandler) Orders(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	orders, err := h.orderService.GetOrdersByCustomer(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UploadFile stores a file on disk and records its metadata against the
// customer.
func (h *CustomerHandler) UploadFile(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	dst := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	record, err := h.customerService.AttachFile(middleware.ActorFrom(c), id, file.Filename, dst, file.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, err
	}
	return uint(id), nil
}
