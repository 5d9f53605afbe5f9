package services

import (
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/logger"
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ComplaintService interface {
	Create(db *gorm.DB, parentID string, req *dto.CreateComplaintRequest) (*models.Complaint, error)
	Respond(db *gorm.DB, staffID, complaintID string, req *dto.RespondComplaintRequest) (*models.Complaint, error)
	GetByID(db *gorm.DB, complaintID string) (*models.Complaint, error)
	ListForParent(db *gorm.DB, parentID string) ([]models.Complaint, error)
	List(db *gorm.DB, status string) ([]models.Complaint, error)
}

type complaintService struct {
	complaintRepo    repositories.ComplaintRepository
	childRepo        repositories.ChildRepository
	notificationRepo repositories.NotificationRepository
}

func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	childRepo repositories.ChildRepository,
	notificationRepo repositories.NotificationRepository,
) ComplaintService {
	return &complaintService{
		complaintRepo:    complaintRepo,
		childRepo:        childRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *complaintService) Create(db *gorm.DB, parentID string, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	if req.ChildID != "" {
		child, err := s.childRepo.FindByID(db, req.ChildID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrChildNotFound) {
				return nil, apperrors.ErrChildNotFound
			}
			return nil, err
		}
		if child.ParentID != parentID {
			return nil, apperrors.ErrNotChildParent
		}
	}

	complaint := &models.Complaint{
		ParentID:    parentID,
		ChildID:     req.ChildID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      models.ComplaintStatusOpen,
	}

	if err := s.complaintRepo.Create(db, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *complaintService) Respond(db *gorm.DB, staffID, complaintID string, req *dto.RespondComplaintRequest) (*models.Complaint, error) {
	complaint, err := s.GetByID(db, complaintID)
	if err != nil {
		return nil, err
	}

	if complaint.Status == models.ComplaintStatusResolved {
		return nil, apperrors.ErrComplaintResolved
	}

	complaint.Response = req.Response
	complaint.Status = models.ComplaintStatus(req.Status)
	if complaint.Status == models.ComplaintStatusResolved {
		now := time.Now()
		complaint.ResolvedByID = staffID
		complaint.ResolvedAt = &now
	}

	if err := s.complaintRepo.Update(db, complaint); err != nil {
		return nil, err
	}

	// Notify the parent; failure does not fail the response
	notification := models.Notification{
		UserID:  complaint.ParentID,
		Type:    "complaint_response",
		Title:   "Your complaint was updated",
		Message: complaint.Subject,
	}
	if err := s.notificationRepo.Create(db, &notification); err != nil {
		logger.WithError(err).Warn("complaint notification failed", "complaint_id", complaint.ID)
	}

	return complaint, nil
}

func (s *complaintService) GetByID(db *gorm.DB, complaintID string) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(db, complaintID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrComplaintNotFound) {
			return nil, apperrors.ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}

func (s *complaintService) ListForParent(db *gorm.DB, parentID string) ([]models.Complaint, error) {
	return s.complaintRepo.FindByParent(db, parentID)
}

func (s *complaintService) List(db *gorm.DB, status string) ([]models.Complaint, error) {
	if status != "" {
		return s.complaintRepo.FindByStatus(db, models.ComplaintStatus(status))
	}
	return s.complaintRepo.FindAll(db)
}
