package installment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/models"
)

func TestAmountCeilingRounding(t *testing.T) {
	cases := []struct {
		total    int64
		n        int
		expected int64
	}{
		{12000, 6, 2000},  // divides evenly
		{10000, 3, 3334},  // ceil(10000/3); three rows sum to 10002, 2 over target
		{1, 12, 1},
		{999, 1000, 1},
		{100, 3, 34},
	}
	for _, tc := range cases {
		got, err := Amount(tc.total, tc.n)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "total=%d n=%d", tc.total, tc.n)
	}
}

func TestAmountShortfallLandsOnLastRow(t *testing.T) {
	// For any split, n-1 rows at the rounded amount never overshoot by more
	// than one full installment: the remainder fits in the final row.
	for _, total := range []int64{1, 7, 100, 9999, 10000, 123457} {
		for _, n := range []int{1, 2, 3, 6, 12, 17} {
			amount, err := Amount(total, n)
			require.NoError(t, err)
			assert.LessOrEqual(t, int64(n-1)*amount-total, amount,
				"total=%d n=%d amount=%d", total, n, amount)
		}
	}
}

func TestAmountRejectsInvalidInput(t *testing.T) {
	_, err := Amount(10000, 0)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = Amount(10000, -3)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = Amount(0, 3)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestBuildSchedule(t *testing.T) {
	firstDue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	payments := BuildSchedule(2000, 3, firstDue)

	require.Len(t, payments, 3)
	for i, p := range payments {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, int64(2000), p.Amount)
		assert.Equal(t, string(models.PaymentPending), p.Status)
		assert.Equal(t, firstDue.Add(time.Duration(i)*DueInterval), p.DueDate)
	}
}

func TestNewPlan(t *testing.T) {
	firstDue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan, err := NewPlan(42, 10000, 3, firstDue)
	require.NoError(t, err)

	assert.Equal(t, uint(42), plan.OrderID)
	assert.Equal(t, 3, plan.TotalInstallments)
	assert.Equal(t, int64(3334), plan.InstallmentAmount)
	assert.Equal(t, 0, plan.PaidInstallments)
	require.NotNil(t, plan.NextDueDate)
	assert.Equal(t, firstDue, *plan.NextDueDate)
	assert.Len(t, plan.Payments, 3)
}

func paidAt(d time.Time) *time.Time { return &d }

func TestRevisePreservesPaidHistory(t *testing.T) {
	firstDue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan, err := NewPlan(1, 12000, 6, firstDue)
	require.NoError(t, err)

	// Pay the first two installments.
	plan.Payments[0].Status = string(models.PaymentPaid)
	plan.Payments[0].PaidDate = paidAt(firstDue)
	plan.Payments[1].Status = string(models.PaymentPaid)
	plan.Payments[1].PaidDate = paidAt(firstDue.Add(DueInterval))
	Reconcile(plan)
	require.Equal(t, 2, plan.PaidInstallments)

	// Renegotiate down to 4 installments against a current total of 12000.
	require.NoError(t, Revise(plan, 12000, 4))

	assert.Equal(t, 4, plan.TotalInstallments)
	assert.Equal(t, int64(3000), plan.InstallmentAmount)
	assert.Equal(t, 2, plan.PaidInstallments)
	require.Len(t, plan.Payments, 4)

	// Paid rows are untouched, amount included.
	assert.Equal(t, string(models.PaymentPaid), plan.Payments[0].Status)
	assert.NotNil(t, plan.Payments[0].PaidDate)
	assert.Equal(t, int64(2000), plan.Payments[0].Amount)
	assert.Equal(t, string(models.PaymentPaid), plan.Payments[1].Status)

	// Unpaid tail regenerated at the new amount, continuing the cadence.
	assert.Equal(t, 3, plan.Payments[2].Number)
	assert.Equal(t, int64(3000), plan.Payments[2].Amount)
	expectedDue := firstDue.Add(2 * DueInterval)
	assert.Equal(t, expectedDue, plan.Payments[2].DueDate)
	require.NotNil(t, plan.NextDueDate)
	assert.Equal(t, expectedDue, *plan.NextDueDate)
}

func TestReviseWithNoPaidRowsKeepsFirstDue(t *testing.T) {
	firstDue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan, err := NewPlan(1, 10000, 3, firstDue)
	require.NoError(t, err)

	require.NoError(t, Revise(plan, 10000, 6))

	assert.Equal(t, int64(1667), plan.InstallmentAmount)
	require.Len(t, plan.Payments, 6)
	assert.Equal(t, firstDue, plan.Payments[0].DueDate)
}

func TestReviseRejectsShrinkBelowPaidCount(t *testing.T) {
	firstDue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan, err := NewPlan(1, 12000, 6, firstDue)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		plan.Payments[i].Status = string(models.PaymentPaid)
	}

	err = Revise(plan, 12000, 2)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestReconcileCountsAndNextDue(t *testing.T) {
	firstDue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan, err := NewPlan(1, 9000, 3, firstDue)
	require.NoError(t, err)

	plan.Payments[0].Status = string(models.PaymentPaid)
	Reconcile(plan)
	assert.Equal(t, 1, plan.PaidInstallments)
	require.NotNil(t, plan.NextDueDate)
	assert.Equal(t, firstDue.Add(DueInterval), *plan.NextDueDate)

	plan.Payments[1].Status = string(models.PaymentPaid)
	plan.Payments[2].Status = string(models.PaymentPaid)
	Reconcile(plan)
	assert.Equal(t, 3, plan.PaidInstallments)
	assert.Nil(t, plan.NextDueDate)
}

func TestEffectiveStatusDerivesOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := models.Payment{Status: string(models.PaymentPending), DueDate: now.Add(-24 * time.Hour)}
	assert.Equal(t, models.PaymentOverdue, p.EffectiveStatus(now))

	p.DueDate = now.Add(24 * time.Hour)
	assert.Equal(t, models.PaymentPending, p.EffectiveStatus(now))

	p.Status = string(models.PaymentPaid)
	p.DueDate = now.Add(-24 * time.Hour)
	assert.Equal(t, models.PaymentPaid, p.EffectiveStatus(now))
}
