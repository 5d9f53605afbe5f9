package repositories

import (
	"errors"
	"time"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound       = errors.New("subscription plan not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

type PlanRepository interface {
	CreatePlan(db *gorm.DB, plan *models.SubscriptionPlan) error
	FindPlanByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error)
	FindActivePlans(db *gorm.DB) ([]models.SubscriptionPlan, error)
	UpdatePlan(db *gorm.DB, plan *models.SubscriptionPlan) error
	DeactivatePlan(db *gorm.DB, id string) error

	CreateEnrollment(db *gorm.DB, enrollment *models.Enrollment) error
	FindEnrollmentByID(db *gorm.DB, id string) (*models.Enrollment, error)
	FindActiveEnrollmentByChild(db *gorm.DB, childID string) (*models.Enrollment, error)
	FindEnrollmentsByChild(db *gorm.DB, childID string) ([]models.Enrollment, error)
	CancelEnrollment(db *gorm.DB, id string) error
	ExpireEnded(db *gorm.DB) (int64, error)
}

type planRepository struct{}

func NewPlanRepository() PlanRepository {
	return &planRepository{}
}

func (r *planRepository) CreatePlan(db *gorm.DB, plan *models.SubscriptionPlan) error {
	return db.Create(plan).Error
}

func (r *planRepository) FindPlanByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindActivePlans(db *gorm.DB) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := db.Where("is_active = ?", true).Order("monthly_fee ASC").Find(&plans).Error
	return plans, err
}

func (r *planRepository) UpdatePlan(db *gorm.DB, plan *models.SubscriptionPlan) error {
	return db.Save(plan).Error
}

func (r *planRepository) DeactivatePlan(db *gorm.DB, id string) error {
	return db.Model(&models.SubscriptionPlan{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *planRepository) CreateEnrollment(db *gorm.DB, enrollment *models.Enrollment) error {
	return db.Create(enrollment).Error
}

func (r *planRepository) FindEnrollmentByID(db *gorm.DB, id string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := db.Preload("Plan").Preload("Child").First(&enrollment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *planRepository) FindActiveEnrollmentByChild(db *gorm.DB, childID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := db.Preload("Plan").
		Where("child_id = ? AND status = ?", childID, models.EnrollmentStatusActive).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *planRepository) FindEnrollmentsByChild(db *gorm.DB, childID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := db.Preload("Plan").
		Where("child_id = ?", childID).
		Order("start_date DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *planRepository) CancelEnrollment(db *gorm.DB, id string) error {
	now := time.Now()
	result := db.Model(&models.Enrollment{}).
		Where("id = ? AND status = ?", id, models.EnrollmentStatusActive).
		Updates(map[string]interface{}{
			"status":       models.EnrollmentStatusCancelled,
			"cancelled_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}

// ExpireEnded marks active enrollments whose end date has passed.
func (r *planRepository) ExpireEnded(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Enrollment{}).
		Where("status = ? AND end_date < ?", models.EnrollmentStatusActive, time.Now()).
		Update("status", models.EnrollmentStatusExpired)
	return result.RowsAffected, result.Error
}
