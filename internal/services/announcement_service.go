package services

import (
	"daycare_backend/internal/dto"
	"daycare_backend/internal/logger"
	"daycare_backend/internal/models"
	"daycare_backend/internal/push"
	"daycare_backend/internal/repositories"
	"daycare_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(db *gorm.DB, authorID string, req *dto.CreateAnnouncementRequest) (*models.Announcement, error)
	ListForRole(db *gorm.DB, role models.UserRole, limit int) ([]models.Announcement, error)
	Delete(db *gorm.DB, announcementID string) error
}

type announcementService struct {
	announcementRepo repositories.AnnouncementRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	pushProvider     push.Provider
}

func NewAnnouncementService(
	announcementRepo repositories.AnnouncementRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	pushProvider push.Provider,
) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		pushProvider:     pushProvider,
	}
}

func (s *announcementService) Create(db *gorm.DB, authorID string, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	audience := models.Audience(req.Audience)
	if audience == "" {
		audience = models.AudienceAll
	}

	announcement := &models.Announcement{
		AuthorID: authorID,
		Title:    req.Title,
		Body:     req.Body,
		Audience: audience,
	}

	if err := s.announcementRepo.Create(db, announcement); err != nil {
		return nil, err
	}

	// Fan out in-app notifications and a push; both are best effort
	s.fanOut(db, announcement)
	return announcement, nil
}

func (s *announcementService) ListForRole(db *gorm.DB, role models.UserRole, limit int) ([]models.Announcement, error) {
	return s.announcementRepo.FindForAudience(db, audiencesForRole(role), limit)
}

func (s *announcementService) Delete(db *gorm.DB, announcementID string) error {
	if _, err := s.announcementRepo.FindByID(db, announcementID); err != nil {
		if apperrors.Is(err, repositories.ErrAnnouncementNotFound) {
			return apperrors.ErrAnnouncementNotFound
		}
		return err
	}
	return s.announcementRepo.Delete(db, announcementID)
}

func audiencesForRole(role models.UserRole) []models.Audience {
	if role == models.UserRoleParent {
		return []models.Audience{models.AudienceAll, models.AudienceParents}
	}
	return []models.Audience{models.AudienceAll, models.AudienceStaff}
}

func rolesForAudience(audience models.Audience) []models.UserRole {
	switch audience {
	case models.AudienceParents:
		return []models.UserRole{models.UserRoleParent}
	case models.AudienceStaff:
		return []models.UserRole{models.UserRoleTeacher, models.UserRoleSupervisor, models.UserRoleAdmin}
	default:
		return []models.UserRole{models.UserRoleParent, models.UserRoleTeacher, models.UserRoleSupervisor, models.UserRoleAdmin}
	}
}

func (s *announcementService) fanOut(db *gorm.DB, announcement *models.Announcement) {
	userIDs, err := s.userRepo.FindIDsByRoles(db, rolesForAudience(announcement.Audience)...)
	if err != nil {
		logger.WithError(err).Warn("announcement fan-out failed", "announcement_id", announcement.ID)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, models.Notification{
			UserID:  userID,
			Type:    "announcement",
			Title:   announcement.Title,
			Message: announcement.Body,
		})
	}
	if err := s.notificationRepo.CreateBatch(db, notifications); err != nil {
		logger.WithError(err).Warn("announcement notifications failed", "announcement_id", announcement.ID)
	}

	if err := s.pushProvider.SendToUsers(userIDs, &push.Message{
		Title: announcement.Title,
		Body:  announcement.Body,
	}); err != nil {
		logger.WithError(err).Warn("announcement push failed", "announcement_id", announcement.ID)
	}
}
