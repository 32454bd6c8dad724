package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/models"
	"github.com/jiseti/jiseti-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrAdminRequired     = errors.New("admin access required")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// StatusNotifier delivers best-effort status-change notices. Failures are
// its own concern; callers never wait on it.
type StatusNotifier interface {
	StatusChanged(user *models.User, record *models.Record, oldStatus, newStatus string)
}

type AdminService struct {
	db       *gorm.DB
	notifier StatusNotifier
}

func NewAdminService(db *gorm.DB, notifier StatusNotifier) *AdminService {
	return &AdminService{db: db, notifier: notifier}
}

// ListRecords returns a page across all users.
func (s *AdminService) ListRecords(auth identity.AuthContext, page, perPage int) ([]models.Record, dto.Pagination, error) {
	if !auth.IsAdmin() {
		return nil, dto.Pagination{}, ErrAdminRequired
	}
	return listRecords(s.db.Model(&models.Record{}), page, perPage)
}

// UpdateStatus moves a record through its lifecycle. Only admins may
// transition status; the new status and refreshed timestamp are persisted
// together with the notification row, then delivery is fired without
// blocking the caller. Setting the current status again is a no-op.
func (s *AdminService) UpdateStatus(auth identity.AuthContext, recordID uuid.UUID, req *dto.UpdateStatusRequest) (*models.Record, error) {
	if !auth.IsAdmin() {
		return nil, ErrAdminRequired
	}

	if !models.ValidStatus(req.Status) {
		return nil, &validation.Error{Field: "status", Message: "invalid status"}
	}

	var record models.Record
	if err := s.db.First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	oldStatus := record.Status
	if oldStatus == req.Status {
		return &record, nil
	}
	if !models.CanTransition(oldStatus, req.Status) {
		return nil, ErrInvalidTransition
	}

	message := fmt.Sprintf("The status of your record %q changed from %s to %s",
		record.Title, oldStatus, req.Status)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&record).Update("status", req.Status).Error; err != nil {
			return err
		}
		note := models.Notification{
			ID:         uuid.New(),
			Message:    message,
			ApprovedAt: time.Now().UTC(),
			UserID:     record.UserID,
			RecordID:   &record.ID,
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ?", record.UserID).Error; err != nil {
		slog.Error("status updated but owner lookup failed, skipping delivery",
			"record_id", record.ID, "error", err)
		return &record, nil
	}
	s.notifier.StatusChanged(&owner, &record, oldStatus, req.Status)

	return &record, nil
}
