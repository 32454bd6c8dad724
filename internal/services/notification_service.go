package services

import (
	"fmt"

	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/models"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// List returns the caller's own notifications, newest first.
func (s *NotificationService) List(auth identity.AuthContext, page, perPage int) ([]models.Notification, dto.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	query := s.db.Model(&models.Notification{}).Scopes(identity.OwnedBy(auth.UserID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.Notification
	offset := (page - 1) * perPage
	if err := query.Order("approved_at DESC").Limit(perPage).Offset(offset).Find(&notifications).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, dto.NewPagination(page, perPage, total), nil
}
