package services

import (
	"fmt"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/models"
	"petstore_manager/internal/repository"

	"gorm.io/gorm"
)

type CustomerService interface {
	CreateCustomer(actor models.Actor, customer *models.Customer) error
	GetCustomerByID(id uint) (*models.Customer, error)
	GetAllCustomers() ([]models.Customer, error)
	SearchCustomers(keyword string) ([]models.Customer, error)
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id uint) error
	AttachFile(actor models.Actor, customerID uint, fileName, filePath string, sizeBytes int64) (*models.CustomerFile, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(actor models.Actor, customer *models.Customer) error {
	if customer.Name == "" {
		return apperrors.Validation("customer name is required")
	}
	customer.CreatedBy = actor.UserID
	return s.customerRepo.Create(customer)
}

func (s *customerService) GetCustomerByID(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("customer %d not found", id)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetAllCustomers() ([]models.Customer, error) {
	return s.customerRepo.GetAll()
}

func (s *customerService) SearchCustomers(keyword string) ([]models.Customer, error) {
	return s.customerRepo.Search(keyword)
}

func (s *customerService) UpdateCustomer(customer *models.Customer) error {
	if customer.Name == "" {
		return apperrors.Validation("customer name is required")
	}
	return s.customerRepo.Update(customer)
}

func (s *customerService) DeleteCustomer(id uint) error {
	if _, err := s.GetCustomerByID(id); err != nil {
		return err
	}
	return s.customerRepo.Delete(id)
}

func (s *customerService) AttachFile(actor models.Actor, customerID uint, fileName, filePath string, sizeBytes int64) (*models.CustomerFile, error) {
	if _, err := s.GetCustomerByID(customerID); err != nil {
		return nil, err
	}
	file := &models.CustomerFile{
		CustomerID: customerID,
		FileName:   fileName,
		FilePath:   filePath,
		SizeBytes:  sizeBytes,
		UploadedBy: actor.UserID,
	}
	if err := s.customerRepo.AddFile(file); err != nil {
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}
	return file, nil
}
