package repository

import (
	"time"

	"petstore_manager/internal/models"

	"gorm.io/gorm"
)

type OrderFilter struct {
	Status      string
	SalesPerson string
	CustomerID  uint
	StartDate   *time.Time
	EndDate     *time.Time
}

type OrderRepository interface {
	// CreateWithDetails writes the whole aggregate in one transaction, in a
	// fixed order: order row, then items, then plan, then payments.
	CreateWithDetails(order *models.Order) error
	// UpdateWithDetails saves the order row and optionally replaces its item
	// list, saves a revised plan, or removes the plan entirely, all in one
	// transaction.
	UpdateWithDetails(order *models.Order, replaceItems bool, plan *models.InstallmentPlan, removePlan bool) error
	// DeleteWithDetails removes the order together with its items, plan and
	// payments as a unit.
	DeleteWithDetails(id uint) error

	GetByID(id uint) (*models.Order, error)
	GetByCustomerID(customerID uint) ([]models.Order, error)
	List(filter OrderFilter) ([]models.Order, error)
	CountByYear(year int) (int64, error)

	GetPlanByOrderID(orderID uint) (*models.InstallmentPlan, error)
	// SavePlanAndPayment persists a payment mutation together with the plan's
	// re-derived counters.
	SavePlanAndPayment(plan *models.InstallmentPlan, payment *models.Payment) error
	// GetDueReminderRows joins pending payments due before the cutoff with
	// their order and customer, skipping rows already reminded.
	GetDueReminderRows(cutoff time.Time) ([]DuePaymentRow, error)
	MarkReminderSent(paymentID uint, at time.Time) error
}

type DuePaymentRow struct {
	PaymentID    uint      `json:"payment_id"`
	Number       int       `json:"number"`
	Amount       int64     `json:"amount"`
	DueDate      time.Time `json:"due_date"`
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithDetails(order *models.Order) error {
	items := order.Items
	plan := order.Plan
	order.Items = nil
	order.Plan = nil

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		if plan != nil {
			payments := plan.Payments
			plan.Payments = nil
			plan.OrderID = order.ID
			if err := tx.Create(plan).Error; err != nil {
				return err
			}
			for i := range payments {
				payments[i].PlanID = plan.ID
				if err := tx.Create(&payments[i]).Error; err != nil {
					return err
				}
			}
			plan.Payments = payments
		}
		return nil
	})

	order.Items = items
	order.Plan = plan
	return err
}

func (r *orderRepository) UpdateWithDetails(order *models.Order, replaceItems bool, plan *models.InstallmentPlan, removePlan bool) error {
	items := order.Items
	currentPlan := order.Plan
	order.Items = nil
	order.Plan = nil

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Plan").Save(order).Error; err != nil {
			return err
		}
		if replaceItems {
			if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].OrderID = order.ID
				if err := tx.Create(&items[i]).Error; err != nil {
					return err
				}
			}
		}
		if removePlan {
			var existing models.InstallmentPlan
			err := tx.Where("order_id = ?", order.ID).First(&existing).Error
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil
				}
				return err
			}
			if err := tx.Unscoped().Where("plan_id = ?", existing.ID).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			return tx.Unscoped().Delete(&existing).Error
		}
		if plan != nil {
			return savePlan(tx, plan)
		}
		return nil
	})

	order.Items = items
	order.Plan = currentPlan
	return err
}

// savePlan writes the plan row, drops the unpaid rows and re-creates the
// current unpaid tail. Paid rows are never touched here.
func savePlan(tx *gorm.DB, plan *models.InstallmentPlan) error {
	payments := plan.Payments
	plan.Payments = nil
	var err error
	if plan.ID == 0 {
		err = tx.Create(plan).Error
	} else {
		err = tx.Omit("Payments").Save(plan).Error
	}
	plan.Payments = payments
	if err != nil {
		return err
	}

	if err := tx.Unscoped().
		Where("plan_id = ? AND status = ?", plan.ID, string(models.PaymentPending)).
		Delete(&models.Payment{}).Error; err != nil {
		return err
	}
	for i := range payments {
		if payments[i].Status == string(models.PaymentPaid) && payments[i].ID != 0 {
			continue
		}
		payments[i].ID = 0
		payments[i].PlanID = plan.ID
		if err := tx.Create(&payments[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) DeleteWithDetails(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var plan models.InstallmentPlan
		err := tx.Where("order_id = ?", id).First(&plan).Error
		if err == nil {
			if err := tx.Unscoped().Where("plan_id = ?", plan.ID).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&plan).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := tx.Unscoped().Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Plan.Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payments.number")
	}).Preload("Customer").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByCustomerID(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("customer_id = ?", customerID).
		Order("order_date desc").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) List(filter OrderFilter) ([]models.Order, error) {
	query := r.db.Preload("Items").Preload("Plan")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SalesPerson != "" {
		query = query.Where("sales_person = ?", filter.SalesPerson)
	}
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("order_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}

	var orders []models.Order
	err := query.Order("order_date desc").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CountByYear(year int) (int64, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(1, 0, 0)
	var count int64
	err := r.db.Model(&models.Order{}).Unscoped().
		Where("order_date >= ? AND order_date < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *orderRepository) GetPlanByOrderID(orderID uint) (*models.InstallmentPlan, error) {
	var plan models.InstallmentPlan
	err := r.db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payments.number")
	}).Where("order_id = ?", orderID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *orderRepository) SavePlanAndPayment(plan *models.InstallmentPlan, payment *models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		payments := plan.Payments
		plan.Payments = nil
		err := tx.Omit("Payments").Save(plan).Error
		plan.Payments = payments
		return err
	})
}

func (r *orderRepository) GetDueReminderRows(cutoff time.Time) ([]DuePaymentRow, error) {
	var rows []DuePaymentRow
	err := r.db.Table("payments").
		Select("payments.id as payment_id, payments.number, payments.amount, payments.due_date, orders.order_number, customers.name as customer_name").
		Joins("JOIN installment_plans ON payments.plan_id = installment_plans.id").
		Joins("JOIN orders ON installment_plans.order_id = orders.id").
		Joins("JOIN customers ON orders.customer_id = customers.id").
		Where("payments.status = ? AND payments.due_date <= ? AND payments.reminder_sent_at IS NULL", string(models.PaymentPending), cutoff).
		Where("payments.deleted_at IS NULL AND orders.deleted_at IS NULL").
		Order("payments.due_date").
		Scan(&rows).Error
	return rows, err
}

func (r *orderRepository) MarkReminderSent(paymentID uint, at time.Time) error {
	return r.db.Model(&models.Payment{}).Where("id = ?", paymentID).
		Update("reminder_sent_at", at).Error
}
