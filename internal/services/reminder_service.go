package services

import (
	"fmt"
	"log"
	"time"

	"petstore_manager/internal/repository"
	"petstore_manager/pkg/notify"
)

type ReminderService interface {
	// ProcessDuePayments notifies the webhook about pending installments due
	// within the look-ahead window, overdue ones included. It returns how many
	// reminders went out. The sweep never writes payment status; overdue stays
	// a derived classification.
	ProcessDuePayments(now time.Time) (int, error)
}

type reminderService struct {
	orderRepo repository.OrderRepository
	notifier  *notify.Client
	daysAhead int
}

func NewReminderService(orderRepo repository.OrderRepository, notifier *notify.Client, daysAhead int) ReminderService {
	return &reminderService{orderRepo: orderRepo, notifier: notifier, daysAhead: daysAhead}
}

func (s *reminderService) ProcessDuePayments(now time.Time) (int, error) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return 0, nil
	}

	cutoff := now.AddDate(0, 0, s.daysAhead)
	rows, err := s.orderRepo.GetDueReminderRows(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to load due payments: %w", err)
	}

	sent := 0
	for _, row := range rows {
		err := s.notifier.Send(notify.Reminder{
			OrderNumber:   row.OrderNumber,
			CustomerName:  row.CustomerName,
			InstallmentNo: row.Number,
			Amount:        row.Amount,
			DueDate:       row.DueDate.Format("2006-01-02"),
			Overdue:       row.DueDate.Before(now),
		})
		if err != nil {
			// A failed webhook call leaves the row unmarked so the next sweep
			// retries it.
			log.Printf("Warning: reminder for order %s installment %d failed: %v", row.OrderNumber, row.Number, err)
			continue
		}
		if err := s.orderRepo.MarkReminderSent(row.PaymentID, now); err != nil {
			return sent, fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		sent++
	}
	return sent, nil
}
