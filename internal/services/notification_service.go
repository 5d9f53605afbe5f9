package services

import (
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"

	"gorm.io/gorm"
)

type NotificationService interface {
	ListForUser(db *gorm.DB, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, userID, notificationID string) error
	MarkAllRead(db *gorm.DB, userID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListForUser(db *gorm.DB, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notificationRepo.FindByUser(db, userID, unreadOnly, limit)
}

func (s *notificationService) CountUnread(db *gorm.DB, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(db, userID)
}

func (s *notificationService) MarkRead(db *gorm.DB, userID, notificationID string) error {
	return s.notificationRepo.MarkRead(db, userID, notificationID)
}

func (s *notificationService) MarkAllRead(db *gorm.DB, userID string) error {
	return s.notificationRepo.MarkAllRead(db, userID)
}
