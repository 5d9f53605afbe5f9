package repositories

import (
	"errors"
	"time"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("daily report not found")

type ReportRepository interface {
	Create(db *gorm.DB, report *models.DailyReport) error
	FindByID(db *gorm.DB, id string) (*models.DailyReport, error)
	FindByChildAndDay(db *gorm.DB, childID string, day time.Time) (*models.DailyReport, error)
	FindByChildRange(db *gorm.DB, childID string, from, to time.Time) ([]models.DailyReport, error)
	Update(db *gorm.DB, report *models.DailyReport) error
}

type reportRepository struct{}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(db *gorm.DB, report *models.DailyReport) error {
	return db.Create(report).Error
}

func (r *reportRepository) FindByID(db *gorm.DB, id string) (*models.DailyReport, error) {
	var report models.DailyReport
	err := db.First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByChildAndDay(db *gorm.DB, childID string, day time.Time) (*models.DailyReport, error) {
	var report models.DailyReport
	err := db.Where("child_id = ? AND day = ?", childID, day.Format("2006-01-02")).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByChildRange(db *gorm.DB, childID string, from, to time.Time) ([]models.DailyReport, error) {
	var reports []models.DailyReport
	err := db.Where("child_id = ? AND day BETWEEN ? AND ?",
		childID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("day DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Update(db *gorm.DB, report *models.DailyReport) error {
	return db.Save(report).Error
}
