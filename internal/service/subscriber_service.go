package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/mailbeacon/mailbeacon/internal/domain"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// SubscriberService manages mailing list membership, including bulk CSV
// import and export.
type SubscriberService struct {
	repo   domain.SubscriberRepository
	logger logger.Logger
}

// NewSubscriberService creates a new SubscriberService
func NewSubscriberService(repo domain.SubscriberRepository, logger logger.Logger) *SubscriberService {
	return &SubscriberService{
		repo:   repo,
		logger: logger,
	}
}

// Subscribe adds or updates a list member
func (s *SubscriberService) Subscribe(ctx context.Context, subscriber *domain.Subscriber) error {
	subscriber.Subscribed = true
	return s.repo.Upsert(ctx, subscriber)
}

// Unsubscribe marks a list member as unsubscribed without removing the row
func (s *SubscriberService) Unsubscribe(ctx context.Context, listName, email string) error {
	return s.repo.Unsubscribe(ctx, listName, email)
}

// GetByListAndEmail retrieves a single list member
func (s *SubscriberService) GetByListAndEmail(ctx context.Context, listName, email string) (*domain.Subscriber, error) {
	return s.repo.GetByListAndEmail(ctx, listName, email)
}

// ListByName retrieves every member of a list
func (s *SubscriberService) ListByName(ctx context.Context, listName string) ([]*domain.Subscriber, error) {
	return s.repo.ListByName(ctx, listName)
}

// CountByList returns the number of subscribed members of a list
func (s *SubscriberService) CountByList(ctx context.Context, listName string) (int, error) {
	return s.repo.CountByList(ctx, listName)
}

// ImportCSV reads subscribers from CSV data with an "email,name" header row
// and upserts them into the named list. Rows with invalid email addresses are
// skipped and counted, not fatal.
func (s *SubscriberService) ImportCSV(ctx context.Context, listName string, r io.Reader) (imported int, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	emailCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "email":
			emailCol = i
		case "name":
			nameCol = i
		}
	}
	if emailCol == -1 {
		return 0, 0, fmt.Errorf("CSV header is missing an email column")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("failed to read CSV row: %w", err)
		}

		if emailCol >= len(record) {
			skipped++
			continue
		}

		email := strings.TrimSpace(record[emailCol])
		if !govalidator.IsEmail(email) {
			s.logger.WithField("email", email).Debug("Skipping CSV row with invalid email")
			skipped++
			continue
		}

		subscriber := &domain.Subscriber{
			ListName:   listName,
			Email:      email,
			Subscribed: true,
		}
		if nameCol != -1 && nameCol < len(record) {
			subscriber.Name = strings.TrimSpace(record[nameCol])
		}

		if err := s.repo.Upsert(ctx, subscriber); err != nil {
			return imported, skipped, fmt.Errorf("failed to import subscriber %s: %w", email, err)
		}
		imported++
	}

	return imported, skipped, nil
}

// ExportCSV writes every member of the named list as CSV with an
// "email,name,subscribed" header row.
func (s *SubscriberService) ExportCSV(ctx context.Context, listName string, w io.Writer) error {
	subscribers, err := s.repo.ListByName(ctx, listName)
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"email", "name", "subscribed"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, subscriber := range subscribers {
		subscribed := "false"
		if subscriber.Subscribed {
			subscribed = "true"
		}
		if err := writer.Write([]string{subscriber.Email, subscriber.Name, subscribed}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
