package installment

import (
	"time"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/models"
)

// DueInterval is the spacing between consecutive installment due dates.
const DueInterval = 30 * 24 * time.Hour

// Amount computes the per-installment amount with ceiling rounding. Every row
// carries the same amount, so an uneven split overcollects on the last row
// (10000 over 3 gives 3334 per row); that is the business rule, not a bug.
func Amount(orderTotal int64, totalInstallments int) (int64, error) {
	if totalInstallments <= 0 {
		return 0, apperrors.Validation("total installments must be positive, got %d", totalInstallments)
	}
	if orderTotal <= 0 {
		return 0, apperrors.Validation("order total must be positive, got %d", orderTotal)
	}
	n := int64(totalInstallments)
	return (orderTotal + n - 1) / n, nil
}

// BuildSchedule constructs the payment rows for a new plan: 1-based numbers,
// each due DueInterval after the previous, all pending.
func BuildSchedule(amount int64, totalInstallments int, firstDue time.Time) []models.Payment {
	payments := make([]models.Payment, 0, totalInstallments)
	due := firstDue
	for i := 1; i <= totalInstallments; i++ {
		payments = append(payments, models.Payment{
			Number:  i,
			Amount:  amount,
			DueDate: due,
			Status:  string(models.PaymentPending),
		})
		due = due.Add(DueInterval)
	}
	return payments
}

// NewPlan builds a plan and its full schedule for an order total.
func NewPlan(orderID uint, orderTotal int64, totalInstallments int, firstDue time.Time) (*models.InstallmentPlan, error) {
	amount, err := Amount(orderTotal, totalInstallments)
	if err != nil {
		return nil, err
	}
	plan := &models.InstallmentPlan{
		OrderID:           orderID,
		TotalInstallments: totalInstallments,
		InstallmentAmount: amount,
		NextDueDate:       &firstDue,
		Payments:          BuildSchedule(amount, totalInstallments, firstDue),
	}
	return plan, nil
}

// Revise changes the installment count of an existing plan. The per-installment
// amount is recomputed from the current order total, but already-paid rows are
// preserved untouched; only the unpaid tail of the schedule is regenerated.
// This asymmetry is deliberate: it models renegotiating the remaining payments.
func Revise(plan *models.InstallmentPlan, orderTotal int64, totalInstallments int) error {
	amount, err := Amount(orderTotal, totalInstallments)
	if err != nil {
		return err
	}

	var paid []models.Payment
	var lastDue time.Time
	for _, p := range plan.Payments {
		if p.DueDate.After(lastDue) {
			lastDue = p.DueDate
		}
		if p.Status == string(models.PaymentPaid) {
			paid = append(paid, p)
		}
	}
	if totalInstallments < len(paid) {
		return apperrors.Validation("plan already has %d paid installments, cannot shrink to %d", len(paid), totalInstallments)
	}

	// The regenerated tail continues 30 days after the latest paid due date,
	// or keeps the original first due date when nothing is paid yet.
	var nextDue time.Time
	if len(paid) > 0 {
		nextDue = latestDue(paid).Add(DueInterval)
	} else if len(plan.Payments) > 0 {
		nextDue = earliestDue(plan.Payments)
	} else if plan.NextDueDate != nil {
		nextDue = *plan.NextDueDate
	} else {
		nextDue = time.Now().Add(DueInterval)
	}

	payments := append([]models.Payment{}, paid...)
	due := nextDue
	for i := len(paid) + 1; i <= totalInstallments; i++ {
		payments = append(payments, models.Payment{
			PlanID:  plan.ID,
			Number:  i,
			Amount:  amount,
			DueDate: due,
			Status:  string(models.PaymentPending),
		})
		due = due.Add(DueInterval)
	}

	plan.TotalInstallments = totalInstallments
	plan.InstallmentAmount = amount
	plan.Payments = payments
	Reconcile(plan)
	return nil
}

// Reconcile re-derives the plan's counters from its payment rows so that
// paid_installments always equals the number of paid rows and next_due_date
// points at the earliest unpaid row. Callers must run this after any payment
// mutation instead of bumping the counters by hand.
func Reconcile(plan *models.InstallmentPlan) {
	paidCount := 0
	var next *time.Time
	for i := range plan.Payments {
		p := &plan.Payments[i]
		if p.Status == string(models.PaymentPaid) {
			paidCount++
			continue
		}
		if next == nil || p.DueDate.Before(*next) {
			d := p.DueDate
			next = &d
		}
	}
	plan.PaidInstallments = paidCount
	plan.NextDueDate = next
}

func latestDue(payments []models.Payment) time.Time {
	var latest time.Time
	for _, p := range payments {
		if p.DueDate.After(latest) {
			latest = p.DueDate
		}
	}
	return latest
}

func earliestDue(payments []models.Payment) time.Time {
	earliest := payments[0].DueDate
	for _, p := range payments[1:] {
		if p.DueDate.Before(earliest) {
			earliest = p.DueDate
		}
	}
	return earliest
}
