package services

import (
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AttendanceService interface {
	CheckIn(db *gorm.DB, staffID string, req *dto.CheckInRequest) (*models.Attendance, error)
	CheckOut(db *gorm.DB, staffID string, req *dto.CheckOutRequest) (*models.Attendance, error)
	GetForChild(db *gorm.DB, childID string, from, to time.Time) ([]models.Attendance, error)
	GetForGroup(db *gorm.DB, groupName string, day time.Time) ([]models.Attendance, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	childRepo      repositories.ChildRepository
}

func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	childRepo repositories.ChildRepository,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		childRepo:      childRepo,
	}
}

// truncateToDay drops the time component so the unique child+day index
// works on calendar days.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *attendanceService) CheckIn(db *gorm.DB, staffID string, req *dto.CheckInRequest) (*models.Attendance, error) {
	if _, err := s.childRepo.FindByID(db, req.ChildID); err != nil {
		if apperrors.Is(err, repositories.ErrChildNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}

	today := truncateToDay(time.Now())

	if _, err := s.attendanceRepo.FindByChildAndDay(db, req.ChildID, today); err == nil {
		return nil, apperrors.ErrAttendanceExists
	} else if !apperrors.Is(err, repositories.ErrAttendanceNotFound) {
		return nil, err
	}

	record := &models.Attendance{
		ChildID:      req.ChildID,
		Day:          today,
		Status:       models.AttendanceStatus(req.Status),
		RecordedByID: staffID,
		Notes:        req.Notes,
	}
	if record.Status != models.AttendanceStatusAbsent {
		now := time.Now()
		record.CheckInTime = &now
	}

	if err := s.attendanceRepo.Create(db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) CheckOut(db *gorm.DB, staffID string, req *dto.CheckOutRequest) (*models.Attendance, error) {
	today := truncateToDay(time.Now())

	record, err := s.attendanceRepo.FindByChildAndDay(db, req.ChildID, today)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAttendanceNotFound) {
			return nil, apperrors.ErrNotCheckedIn
		}
		return nil, err
	}

	if record.CheckInTime == nil {
		return nil, apperrors.ErrNotCheckedIn
	}

	now := time.Now()
	record.CheckOutTime = &now
	record.RecordedByID = staffID
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	if err := s.attendanceRepo.Update(db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) GetForChild(db *gorm.DB, childID string, from, to time.Time) ([]models.Attendance, error) {
	if _, err := s.childRepo.FindByID(db, childID); err != nil {
		if apperrors.Is(err, repositories.ErrChildNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}
	return s.attendanceRepo.FindByChildRange(db, childID, truncateToDay(from), truncateToDay(to))
}

func (s *attendanceService) GetForGroup(db *gorm.DB, groupName string, day time.Time) ([]models.Attendance, error) {
	return s.attendanceRepo.FindByGroupAndDay(db, groupName, truncateToDay(day))
}
