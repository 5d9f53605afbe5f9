package services

import (
	"encoding/json"
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultEnrollmentMonths = 1

type PlanService interface {
	CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*models.SubscriptionPlan, error)
	UpdatePlan(db *gorm.DB, planID string, req *dto.UpdatePlanRequest) (*models.SubscriptionPlan, error)
	GetPlan(db *gorm.DB, planID string) (*models.SubscriptionPlan, error)
	ListActivePlans(db *gorm.DB) ([]models.SubscriptionPlan, error)
	DeactivatePlan(db *gorm.DB, planID string) error

	Enroll(db *gorm.DB, parentID string, req *dto.EnrollChildRequest) (*models.Enrollment, error)
	CancelEnrollment(db *gorm.DB, parentID, enrollmentID string) error
	ListEnrollments(db *gorm.DB, childID string) ([]models.Enrollment, error)
}

type planService struct {
	planRepo  repositories.PlanRepository
	childRepo repositories.ChildRepository
}

func NewPlanService(planRepo repositories.PlanRepository, childRepo repositories.ChildRepository) PlanService {
	return &planService{planRepo: planRepo, childRepo: childRepo}
}

func (s *planService) CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*models.SubscriptionPlan, error) {
	plan := &models.SubscriptionPlan{
		Name:       req.Name,
		MonthlyFee: decimal.NewFromFloat(req.MonthlyFee).Round(2),
		Currency:   req.Currency,
		IsActive:   req.IsActive,
	}
	if plan.Currency == "" {
		plan.Currency = "LKR"
	}
	if req.Features != nil {
		raw, err := json.Marshal(req.Features)
		if err != nil {
			return nil, err
		}
		plan.Features = datatypes.JSON(raw)
	}

	if err := s.planRepo.CreatePlan(db, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) UpdatePlan(db *gorm.DB, planID string, req *dto.UpdatePlanRequest) (*models.SubscriptionPlan, error) {
	plan, err := s.GetPlan(db, planID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		plan.Name = req.Name
	}
	if req.MonthlyFee > 0 {
		plan.MonthlyFee = decimal.NewFromFloat(req.MonthlyFee).Round(2)
	}
	if req.Features != nil {
		raw, err := json.Marshal(req.Features)
		if err != nil {
			return nil, err
		}
		plan.Features = datatypes.JSON(raw)
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.UpdatePlan(db, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetPlan(db *gorm.DB, planID string) (*models.SubscriptionPlan, error) {
	plan, err := s.planRepo.FindPlanByID(db, planID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListActivePlans(db *gorm.DB) ([]models.SubscriptionPlan, error) {
	return s.planRepo.FindActivePlans(db)
}

func (s *planService) DeactivatePlan(db *gorm.DB, planID string) error {
	if _, err := s.GetPlan(db, planID); err != nil {
		return err
	}
	return s.planRepo.DeactivatePlan(db, planID)
}

func (s *planService) Enroll(db *gorm.DB, parentID string, req *dto.EnrollChildRequest) (*models.Enrollment, error) {
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

	plan, err := s.GetPlan(db, req.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanInactive
	}

	if _, err := s.planRepo.FindActiveEnrollmentByChild(db, req.ChildID); err == nil {
		return nil, apperrors.ErrEnrollmentExists
	} else if !apperrors.Is(err, repositories.ErrEnrollmentNotFound) {
		return nil, err
	}

	months := req.Months
	if months <= 0 {
		months = defaultEnrollmentMonths
	}

	now := time.Now()
	enrollment := &models.Enrollment{
		ChildID:   req.ChildID,
		PlanID:    req.PlanID,
		Status:    models.EnrollmentStatusActive,
		StartDate: now,
		EndDate:   now.AddDate(0, months, 0),
	}

	if err := s.planRepo.CreateEnrollment(db, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// CancelEnrollment cancels an active enrollment. A non-empty parentID
// restricts the operation to the owning parent; staff pass "".
func (s *planService) CancelEnrollment(db *gorm.DB, parentID, enrollmentID string) error {
	enrollment, err := s.planRepo.FindEnrollmentByID(db, enrollmentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEnrollmentNotFound) {
			return apperrors.ErrEnrollmentNotFound
		}
		return err
	}

	if parentID != "" {
		child, err := s.childRepo.FindByID(db, enrollment.ChildID)
		if err != nil {
			return err
		}
		if child.ParentID != parentID {
			return apperrors.ErrNotChildParent
		}
	}

	if err := s.planRepo.CancelEnrollment(db, enrollmentID); err != nil {
		if apperrors.Is(err, repositories.ErrEnrollmentNotFound) {
			return apperrors.ErrEnrollmentNotFound
		}
		return err
	}
	return nil
}

func (s *planService) ListEnrollments(db *gorm.DB, childID string) ([]models.Enrollment, error) {
	if _, err := s.childRepo.FindByID(db, childID); err != nil {
		if apperrors.Is(err, repositories.ErrChildNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}
	return s.planRepo.FindEnrollmentsByChild(db, childID)
}
