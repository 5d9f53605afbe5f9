package services

import (
	"encoding/json"
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReportService interface {
	Create(db *gorm.DB, teacherID string, req *dto.CreateReportRequest) (*models.DailyReport, error)
	Update(db *gorm.DB, reportID string, req *dto.UpdateReportRequest) (*models.DailyReport, error)
	GetByID(db *gorm.DB, reportID string) (*models.DailyReport, error)
	GetForChild(db *gorm.DB, childID string, from, to time.Time) ([]models.DailyReport, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	childRepo  repositories.ChildRepository
}

func NewReportService(reportRepo repositories.ReportRepository, childRepo repositories.ChildRepository) ReportService {
	return &reportService{reportRepo: reportRepo, childRepo: childRepo}
}

func (s *reportService) Create(db *gorm.DB, teacherID string, req *dto.CreateReportRequest) (*models.DailyReport, error) {
	if _, err := s.childRepo.FindByID(db, req.ChildID); err != nil {
		if apperrors.Is(err, repositories.ErrChildNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}

	day := truncateToDay(time.Now())
	if req.Day != "" {
		parsed, err := time.Parse("2006-01-02", req.Day)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"day": "must be YYYY-MM-DD"})
		}
		day = truncateToDay(parsed)
	}

	if _, err := s.reportRepo.FindByChildAndDay(db, req.ChildID, day); err == nil {
		return nil, apperrors.ErrReportExists
	} else if !apperrors.Is(err, repositories.ErrReportNotFound) {
		return nil, err
	}

	report := &models.DailyReport{
		ChildID:   req.ChildID,
		Day:       day,
		TeacherID: teacherID,
		Mood:      req.Mood,
		Notes:     req.Notes,
	}
	if err := marshalReportFields(report, req.Meals, req.Naps, req.Activities); err != nil {
		return nil, err
	}

	if err := s.reportRepo.Create(db, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) Update(db *gorm.DB, reportID string, req *dto.UpdateReportRequest) (*models.DailyReport, error) {
	report, err := s.GetByID(db, reportID)
	if err != nil {
		return nil, err
	}

	if req.Mood != "" {
		report.Mood = req.Mood
	}
	if req.Notes != "" {
		report.Notes = req.Notes
	}
	if err := marshalReportFields(report, req.Meals, req.Naps, req.Activities); err != nil {
		return nil, err
	}

	if err := s.reportRepo.Update(db, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetByID(db *gorm.DB, reportID string) (*models.DailyReport, error) {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetForChild(db *gorm.DB, childID string, from, to time.Time) ([]models.DailyReport, error) {
	if _, err := s.childRepo.FindByID(db, childID); err != nil {
		if apperrors.Is(err, repositories.ErrChildNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}
	return s.reportRepo.FindByChildRange(db, childID, truncateToDay(from), truncateToDay(to))
}

func marshalReportFields(report *models.DailyReport, meals map[string]interface{}, naps []map[string]string, activities []string) error {
	if meals != nil {
		raw, err := json.Marshal(meals)
		if err != nil {
			return err
		}
		report.Meals = datatypes.JSON(raw)
	}
	if naps != nil {
		raw, err := json.Marshal(naps)
		if err != nil {
			return err
		}
		report.Naps = datatypes.JSON(raw)
	}
	if activities != nil {
		raw, err := json.Marshal(activities)
		if err != nil {
			return err
		}
		report.Activities = datatypes.JSON(raw)
	}
	return nil
}
