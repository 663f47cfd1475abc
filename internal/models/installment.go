package models

import (
	"time"

	"gorm.io/gorm"
)

// InstallmentPlan splits an installment order's total into equal ceiling-rounded
// dated payments. At most one plan exists per order, and only when the order's
// payment method is "installment".
type InstallmentPlan struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	OrderID           uint           `json:"order_id" gorm:"uniqueIndex;not null"`
	TotalInstallments int            `json:"total_installments" gorm:"not null"`
	InstallmentAmount int64          `json:"installment_amount" gorm:"not null"`
	PaidInstallments  int            `json:"paid_installments" gorm:"default:0"`
	NextDueDate       *time.Time     `json:"next_due_date"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:PlanID"`
}

// Payment is one row of an installment schedule. Only "pending" and "paid" are
// stored; "overdue" is derived on read from the due date.
type Payment struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	PlanID         uint           `json:"plan_id" gorm:"not null;index"`
	Number         int            `json:"number" gorm:"not null"` // 1-based position within the plan
	Amount         int64          `json:"amount" gorm:"not null"`
	DueDate        time.Time      `json:"due_date" gorm:"not null"`
	PaidDate       *time.Time     `json:"paid_date"`
	Status         string         `json:"status" gorm:"default:'pending'"` // pending, paid
	ReminderSentAt *time.Time     `json:"reminder_sent_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue" // derived, never written
)

// EffectiveStatus reports the status as of now, classifying pending payments
// past their due date as overdue without persisting the classification.
func (p Payment) EffectiveStatus(now time.Time) PaymentStatus {
	if p.Status == string(PaymentPaid) {
		return PaymentPaid
	}
	if p.DueDate.Before(now) {
		return PaymentOverdue
	}
	return PaymentPending
}
