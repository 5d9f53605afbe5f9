package services

import (
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/email"
	"daycare_backend/internal/logger"
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MeetingService interface {
	Request(db *gorm.DB, parentID string, req *dto.RequestMeetingRequest) (*models.Meeting, error)
	Decide(db *gorm.DB, deciderID, meetingID string, req *dto.DecideMeetingRequest) (*models.Meeting, error)
	Complete(db *gorm.DB, meetingID string) (*models.Meeting, error)
	GetByID(db *gorm.DB, meetingID string) (*models.Meeting, error)
	ListForUser(db *gorm.DB, userID string, role models.UserRole) ([]models.Meeting, error)
}

type meetingService struct {
	meetingRepo      repositories.MeetingRepository
	userRepo         repositories.UserRepository
	childRepo        repositories.ChildRepository
	notificationRepo repositories.NotificationRepository
	emailProvider    email.Provider
}

func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	userRepo repositories.UserRepository,
	childRepo repositories.ChildRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) MeetingService {
	return &meetingService{
		meetingRepo:      meetingRepo,
		userRepo:         userRepo,
		childRepo:        childRepo,
		notificationRepo: notificationRepo,
		emailProvider:    emailProvider,
	}
}

func (s *meetingService) Request(db *gorm.DB, parentID string, req *dto.RequestMeetingRequest) (*models.Meeting, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"scheduled_at": "must be RFC3339"})
	}
	if scheduledAt.Before(time.Now()) {
		return nil, apperrors.ErrMeetingInPast
	}

	teacher, err := s.userRepo.FindByID(db, req.TeacherID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if teacher.Role != models.UserRoleTeacher && teacher.Role != models.UserRoleSupervisor {
		return nil, apperrors.ValidationError(map[string]string{"teacher_id": "user is not a staff member"})
	}

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

	meeting := &models.Meeting{
		ParentID:    parentID,
		TeacherID:   req.TeacherID,
		ChildID:     req.ChildID,
		Subject:     req.Subject,
		ScheduledAt: scheduledAt,
		Status:      models.MeetingStatusRequested,
	}

	if err := s.meetingRepo.Create(db, meeting); err != nil {
		return nil, err
	}

	notification := models.Notification{
		UserID:  req.TeacherID,
		Type:    "meeting_request",
		Title:   "New meeting request",
		Message: req.Subject,
	}
	if err := s.notificationRepo.Create(db, &notification); err != nil {
		logger.WithError(err).Warn("meeting notification failed", "meeting_id", meeting.ID)
	}

	return meeting, nil
}

func (s *meetingService) Decide(db *gorm.DB, deciderID, meetingID string, req *dto.DecideMeetingRequest) (*models.Meeting, error) {
	meeting, err := s.GetByID(db, meetingID)
	if err != nil {
		return nil, err
	}

	if meeting.Status != models.MeetingStatusRequested {
		return nil, apperrors.ErrMeetingNotPending
	}

	now := time.Now()
	meeting.DecidedByID = deciderID
	meeting.DecidedAt = &now
	if req.Notes != "" {
		meeting.Notes = req.Notes
	}
	if req.Approve {
		meeting.Status = models.MeetingStatusApproved
	} else {
		meeting.Status = models.MeetingStatusDeclined
	}

	if err := s.meetingRepo.Update(db, meeting); err != nil {
		return nil, err
	}

	s.notifyDecision(db, meeting)
	return meeting, nil
}

func (s *meetingService) Complete(db *gorm.DB, meetingID string) (*models.Meeting, error) {
	meeting, err := s.GetByID(db, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.Status != models.MeetingStatusApproved {
		return nil, apperrors.ErrMeetingNotPending
	}

	meeting.Status = models.MeetingStatusCompleted
	if err := s.meetingRepo.Update(db, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) GetByID(db *gorm.DB, meetingID string) (*models.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(db, meetingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMeetingNotFound) {
			return nil, apperrors.ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) ListForUser(db *gorm.DB, userID string, role models.UserRole) ([]models.Meeting, error) {
	if role == models.UserRoleParent {
		return s.meetingRepo.FindByParent(db, userID)
	}
	return s.meetingRepo.FindByTeacher(db, userID)
}

func (s *meetingService) notifyDecision(db *gorm.DB, meeting *models.Meeting) {
	title := "Meeting declined"
	if meeting.Status == models.MeetingStatusApproved {
		title = "Meeting approved"
	}

	notification := models.Notification{
		UserID:  meeting.ParentID,
		Type:    "meeting_decision",
		Title:   title,
		Message: meeting.Subject,
	}
	if err := s.notificationRepo.Create(db, &notification); err != nil {
		logger.WithError(err).Warn("meeting decision notification failed", "meeting_id", meeting.ID)
	}

	if meeting.Status != models.MeetingStatusApproved {
		return
	}

	parent, err := s.userRepo.FindByID(db, meeting.ParentID)
	if err != nil {
		return
	}
	err = s.emailProvider.SendTemplate(
		[]string{parent.Email},
		"Your meeting is confirmed",
		"meeting_approved",
		email.TemplateData{
			"Name":        parent.Name,
			"ScheduledAt": meeting.ScheduledAt.Format("Mon, 02 Jan 2006 15:04"),
		},
	)
	if err != nil {
		logger.WithError(err).Warn("meeting approval email failed", "meeting_id", meeting.ID)
	}
}
