package repository

import (
	"petstore_manager/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetAll() ([]models.Customer, error)
	Search(keyword string) ([]models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id uint) error
	AddFile(file *models.CustomerFile) error
	GetFiles(customerID uint) ([]models.CustomerFile, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Preload("Files").First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at desc").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Search(keyword string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + keyword + "%"
	err := r.db.Where("name LIKE ? OR phone LIKE ? OR tags LIKE ?", pattern, pattern, pattern).
		Order("created_at desc").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

func (r *customerRepository) AddFile(file *models.CustomerFile) error {
	return r.db.Create(file).Error
}

func (r *customerRepository) GetFiles(customerID uint) ([]models.CustomerFile, error) {
	var files []models.CustomerFile
	err := r.db.Where("customer_id = ?", customerID).Find(&files).Error
	return files, err
}
