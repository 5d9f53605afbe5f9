package repositories

import (
	"errors"
	"time"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAttendanceNotFound = errors.New("attendance record not found")

type AttendanceRepository interface {
	Create(db *gorm.DB, record *models.Attendance) error
	FindByChildAndDay(db *gorm.DB, childID string, day time.Time) (*models.Attendance, error)
	FindByChildRange(db *gorm.DB, childID string, from, to time.Time) ([]models.Attendance, error)
	FindByGroupAndDay(db *gorm.DB, groupName string, day time.Time) ([]models.Attendance, error)
	FindByGroupRange(db *gorm.DB, groupName string, from, to time.Time) ([]models.Attendance, error)
	Update(db *gorm.DB, record *models.Attendance) error
}

type attendanceRepository struct{}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{}
}

func (r *attendanceRepository) Create(db *gorm.DB, record *models.Attendance) error {
	return db.Create(record).Error
}

func (r *attendanceRepository) FindByChildAndDay(db *gorm.DB, childID string, day time.Time) (*models.Attendance, error) {
	var record models.Attendance
	err := db.Where("child_id = ? AND day = ?", childID, day.Format("2006-01-02")).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) FindByChildRange(db *gorm.DB, childID string, from, to time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := db.Where("child_id = ? AND day BETWEEN ? AND ?",
		childID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("day ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) FindByGroupAndDay(db *gorm.DB, groupName string, day time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := db.Joins("JOIN children ON children.id = attendances.child_id").
		Where("children.group_name = ? AND attendances.day = ?", groupName, day.Format("2006-01-02")).
		Preload("Child").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) FindByGroupRange(db *gorm.DB, groupName string, from, to time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := db.Joins("JOIN children ON children.id = attendances.child_id").
		Where("children.group_name = ? AND attendances.day BETWEEN ? AND ?",
			groupName, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Preload("Child").
		Order("attendances.day ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) Update(db *gorm.DB, record *models.Attendance) error {
	return db.Save(record).Error
}
