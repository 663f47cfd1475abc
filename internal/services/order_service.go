package services

import (
	"fmt"
	"time"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/installment"
	"petstore_manager/internal/models"
	"petstore_manager/internal/repository"

	"gorm.io/gorm"
)

type OrderLineInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerID        uint             `json:"customer_id"`
	SalesPerson       string           `json:"sales_person"`
	PaymentMethod     string           `json:"payment_method"`
	Status            string           `json:"status"`
	OrderDate         *time.Time       `json:"order_date"`
	Lines             []OrderLineInput `json:"lines"`
	TotalInstallments int              `json:"total_installments"`
	FirstDueDate      *time.Time       `json:"first_due_date"`
}

type UpdateOrderInput struct {
	Status            *string           `json:"status"`
	SalesPerson       *string           `json:"sales_person"`
	PaymentMethod     *string           `json:"payment_method"`
	Lines             *[]OrderLineInput `json:"lines"`
	TotalInstallments *int              `json:"total_installments"`
}

type OrderService interface {
	CreateOrder(actor models.Actor, input CreateOrderInput) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	ListOrders(filter repository.OrderFilter) ([]models.Order, error)
	GetOrdersByCustomer(customerID uint) ([]models.Order, error)
	UpdateOrder(actor models.Actor, id uint, input UpdateOrderInput) (*models.Order, error)
	DeleteOrder(actor models.Actor, id uint) error
	RecordInstallmentPayment(actor models.Actor, orderID uint, number int) (*models.InstallmentPlan, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{orderRepo: orderRepo, customerRepo: customerRepo, productRepo: productRepo}
}

func (s *orderService) CreateOrder(actor models.Actor, input CreateOrderInput) (*models.Order, error) {
	method := input.PaymentMethod
	if method == "" {
		method = string(models.PaymentFull)
	}
	if method != string(models.PaymentFull) && method != string(models.PaymentInstallment) {
		return nil, apperrors.Validation("unknown payment method %q", method)
	}

	status := input.Status
	if status == "" {
		status = string(models.OrderPendingPayment)
	}
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation("unknown order status %q", status)
	}

	if _, err := s.customerRepo.GetByID(input.CustomerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("customer %d not found", input.CustomerID)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	items, amount, err := s.snapshotLines(input.Lines)
	if err != nil {
		return nil, err
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	salesPerson := input.SalesPerson
	if salesPerson == "" {
		salesPerson = actor.Name
	}

	number, err := s.nextOrderNumber(orderDate.Year())
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:   number,
		CustomerID:    input.CustomerID,
		Status:        status,
		PaymentMethod: method,
		Amount:        amount,
		SalesPerson:   salesPerson,
		OrderDate:     orderDate,
		CreatedBy:     actor.UserID,
		Items:         items,
	}

	if method == string(models.PaymentInstallment) {
		firstDue := orderDate.Add(installment.DueInterval)
		if input.FirstDueDate != nil {
			firstDue = *input.FirstDueDate
		}
		plan, err := installment.NewPlan(0, amount, input.TotalInstallments, firstDue)
		if err != nil {
			return nil, err
		}
		order.Plan = plan
	}

	if err := s.orderRepo.CreateWithDetails(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("order %d not found", id)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(filter)
}

func (s *orderService) GetOrdersByCustomer(customerID uint) ([]models.Order, error) {
	return s.orderRepo.GetByCustomerID(customerID)
}

func (s *orderService) UpdateOrder(actor models.Actor, id uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	// The authorization gate runs before any mutation is computed or written.
	if err := authorizeOrder(actor, order); err != nil {
		return nil, err
	}

	if input.Status != nil && *input.Status != order.Status {
		if !models.ValidOrderStatus(*input.Status) {
			return nil, apperrors.Validation("unknown order status %q", *input.Status)
		}
		// Terminal statuses stay terminal unless an admin overrides.
		if models.OrderStatus(order.Status).Terminal() && !actor.IsAdmin() {
			return nil, apperrors.Forbidden("order %s is %s and can only be reopened by an admin", order.OrderNumber, order.Status)
		}
		order.Status = *input.Status
	}

	if input.SalesPerson != nil {
		order.SalesPerson = *input.SalesPerson
	}

	replaceItems := false
	if input.Lines != nil {
		items, amount, err := s.snapshotLines(*input.Lines)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.Amount = amount
		replaceItems = true
	}

	method := order.PaymentMethod
	if input.PaymentMethod != nil {
		method = *input.PaymentMethod
		if method != string(models.PaymentFull) && method != string(models.PaymentInstallment) {
			return nil, apperrors.Validation("unknown payment method %q", method)
		}
	}

	var planToSave *models.InstallmentPlan
	removePlan := false

	switch {
	case method == string(models.PaymentInstallment) && order.Plan == nil:
		// Flipping to installment materializes a plan for the current total.
		if input.TotalInstallments == nil {
			return nil, apperrors.Validation("total_installments is required when switching to installment payment")
		}
		plan, err := installment.NewPlan(order.ID, order.Amount, *input.TotalInstallments, time.Now().Add(installment.DueInterval))
		if err != nil {
			return nil, err
		}
		planToSave = plan
	case method != string(models.PaymentInstallment) && order.Plan != nil:
		// Flipping away deletes the plan and its payments; nothing dangles.
		removePlan = true
		order.Plan = nil
	case method == string(models.PaymentInstallment) && order.Plan != nil:
		n := order.Plan.TotalInstallments
		if input.TotalInstallments != nil {
			n = *input.TotalInstallments
		}
		if replaceItems || input.TotalInstallments != nil {
			if err := installment.Revise(order.Plan, order.Amount, n); err != nil {
				return nil, err
			}
			planToSave = order.Plan
		}
	}
	order.PaymentMethod = method

	if err := s.orderRepo.UpdateWithDetails(order, replaceItems, planToSave, removePlan); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return s.GetOrder(id)
}

func (s *orderService) DeleteOrder(actor models.Actor, id uint) error {
	order, err := s.GetOrder(id)
	if err != nil {
		return err
	}
	if err := authorizeOrder(actor, order); err != nil {
		return err
	}
	if err := s.orderRepo.DeleteWithDetails(id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *orderService) RecordInstallmentPayment(actor models.Actor, orderID uint, number int) (*models.InstallmentPlan, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrder(actor, order); err != nil {
		return nil, err
	}
	if order.Plan == nil {
		return nil, apperrors.NotFound("order %s has no installment plan", order.OrderNumber)
	}

	plan := order.Plan
	var payment *models.Payment
	for i := range plan.Payments {
		if plan.Payments[i].Number == number {
			payment = &plan.Payments[i]
			break
		}
	}
	if payment == nil {
		return nil, apperrors.NotFound("installment %d not found on order %s", number, order.OrderNumber)
	}
	if payment.Status == string(models.PaymentPaid) {
		return nil, fmt.Errorf("%w: installment %d is already paid", apperrors.ErrConflict, number)
	}

	now := time.Now()
	payment.Status = string(models.PaymentPaid)
	payment.PaidDate = &now
	installment.Reconcile(plan)

	if err := s.orderRepo.SavePlanAndPayment(plan, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return plan, nil
}

// authorizeOrder allows only the assigned salesperson or an admin to mutate an
// order.
func authorizeOrder(actor models.Actor, order *models.Order) error {
	if actor.IsAdmin() {
		return nil
	}
	if order.SalesPerson == actor.Name {
		return nil
	}
	return apperrors.Forbidden("order %s belongs to %s", order.OrderNumber, order.SalesPerson)
}

// snapshotLines copies product name, breed, price and image onto the order
// lines so later catalog edits never change historical amounts, and derives
// the order total from the snapshot.
func (s *orderService) snapshotLines(lines []OrderLineInput) ([]models.OrderItem, int64, error) {
	if len(lines) == 0 {
		return nil, 0, apperrors.Validation("order must have at least one product line")
	}

	items := make([]models.OrderItem, 0, len(lines))
	var amount int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, apperrors.Validation("quantity must be positive, got %d", line.Quantity)
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, 0, apperrors.NotFound("product %d not found", line.ProductID)
			}
			return nil, 0, fmt.Errorf("failed to load product: %w", err)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Breed:     product.Breed,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  line.Quantity,
		})
		amount += product.Price * int64(line.Quantity)
	}
	return items, amount, nil
}

func (s *orderService) nextOrderNumber(year int) (string, error) {
	count, err := s.orderRepo.CountByYear(year)
	if err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%03d", year, count+1), nil
}
