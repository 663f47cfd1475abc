package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderNumber   string         `json:"order_number" gorm:"unique;not null"` // ORD-<year>-<seq>
	CustomerID    uint           `json:"customer_id" gorm:"not null;index"`
	Status        string         `json:"status" gorm:"default:'pending_payment'"` // pending_payment, paid, pending_shipment, shipped, completed, cancelled
	PaymentMethod string         `json:"payment_method" gorm:"not null"`          // full, installment
	Amount        int64          `json:"amount" gorm:"not null"`                  // derived: sum of item price * quantity
	SalesPerson   string         `json:"sales_person" gorm:"not null"`
	OrderDate     time.Time      `json:"order_date" gorm:"not null"`
	CreatedBy     uint           `json:"created_by" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Customer *Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []OrderItem      `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Plan     *InstallmentPlan `json:"plan,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots product data at order time so later product edits do not
// retroactively change historical order amounts.
type OrderItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	OrderID   uint           `json:"order_id" gorm:"not null;index"`
	ProductID uint           `json:"product_id" gorm:"not null"`
	Name      string         `json:"name" gorm:"not null"`
	Breed     string         `json:"breed"`
	Price     int64          `json:"price" gorm:"not null"`
	ImageURL  string         `json:"image_url"`
	Quantity  int            `json:"quantity" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderPendingPayment  OrderStatus = "pending_payment"
	OrderPaid            OrderStatus = "paid"
	OrderPendingShipment OrderStatus = "pending_shipment"
	OrderShipped         OrderStatus = "shipped"
	OrderCompleted       OrderStatus = "completed"
	OrderCancelled       OrderStatus = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPendingPayment, OrderPaid, OrderPendingShipment, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal statuses may only be exited by an admin override.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type PaymentMethod string

const (
	PaymentFull        PaymentMethod = "full"
	PaymentInstallment PaymentMethod = "installment"
)
