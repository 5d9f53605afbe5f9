package repositories

import (
	"errors"
	"time"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMeetingNotFound = errors.New("meeting not found")

type MeetingRepository interface {
	Create(db *gorm.DB, meeting *models.Meeting) error
	FindByID(db *gorm.DB, id string) (*models.Meeting, error)
	FindByParent(db *gorm.DB, parentID string) ([]models.Meeting, error)
	FindByTeacher(db *gorm.DB, teacherID string) ([]models.Meeting, error)
	FindApprovedBetween(db *gorm.DB, from, to time.Time) ([]models.Meeting, error)
	Update(db *gorm.DB, meeting *models.Meeting) error
}

type meetingRepository struct{}

func NewMeetingRepository() MeetingRepository {
	return &meetingRepository{}
}

func (r *meetingRepository) Create(db *gorm.DB, meeting *models.Meeting) error {
	return db.Create(meeting).Error
}

func (r *meetingRepository) FindByID(db *gorm.DB, id string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := db.First(&meeting, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) FindByParent(db *gorm.DB, parentID string) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := db.Where("parent_id = ?", parentID).Order("scheduled_at DESC").Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepository) FindByTeacher(db *gorm.DB, teacherID string) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := db.Where("teacher_id = ?", teacherID).Order("scheduled_at DESC").Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepository) FindApprovedBetween(db *gorm.DB, from, to time.Time) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := db.Where("status = ? AND scheduled_at BETWEEN ? AND ?",
		models.MeetingStatusApproved, from, to).
		Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepository) Update(db *gorm.DB, meeting *models.Meeting) error {
	return db.Save(meeting).Error
}
