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

type ChildService interface {
	Create(db *gorm.DB, req *dto.CreateChildRequest) (*models.Child, error)
	GetByID(db *gorm.DB, childID string) (*models.Child, error)
	ListForUser(db *gorm.DB, userID string, role models.UserRole) ([]models.Child, error)
	ListByGroup(db *gorm.DB, groupName string) ([]models.Child, error)
	Update(db *gorm.DB, childID string, req *dto.UpdateChildRequest) (*models.Child, error)
	Delete(db *gorm.DB, childID string) error

	// AuthorizeParent reports whether the child belongs to the parent.
	AuthorizeParent(db *gorm.DB, childID, parentID string) (*models.Child, error)
}

type childService struct {
	childRepo repositories.ChildRepository
	userRepo  repositories.UserRepository
}

func NewChildService(childRepo repositories.ChildRepository, userRepo repositories.UserRepository) ChildService {
	return &childService{childRepo: childRepo, userRepo: userRepo}
}

func (s *childService) Create(db *gorm.DB, req *dto.CreateChildRequest) (*models.Child, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"birth_date": "must be YYYY-MM-DD"})
	}

	parent, err := s.userRepo.FindByID(db, req.ParentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if parent.Role != models.UserRoleParent {
		return nil, apperrors.ValidationError(map[string]string{"parent_id": "user is not a parent"})
	}

	child := &models.Child{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		GroupName: req.GroupName,
		ParentID:  req.ParentID,
		TeacherID: req.TeacherID,
	}

	if req.MedicalNotes != nil {
		raw, err := json.Marshal(req.MedicalNotes)
		if err != nil {
			return nil, err
		}
		child.MedicalNotes = datatypes.JSON(raw)
	}

	if err := s.childRepo.Create(db, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *childService) GetByID(db *gorm.DB, childID string) (*models.Child, error) {
	child, err := s.childRepo.FindByID(db, childID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrChildNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}
	return child, nil
}

// ListForUser scopes the listing by role: parents see their own
// children, teachers see their group, staff see everyone.
func (s *childService) ListForUser(db *gorm.DB, userID string, role models.UserRole) ([]models.Child, error) {
	switch role {
	case models.UserRoleParent:
		return s.childRepo.FindByParent(db, userID)
	case models.UserRoleTeacher:
		return s.childRepo.FindByTeacher(db, userID)
	default:
		return s.childRepo.FindAll(db)
	}
}

func (s *childService) ListByGroup(db *gorm.DB, groupName string) ([]models.Child, error) {
	return s.childRepo.FindByGroup(db, groupName)
}

func (s *childService) Update(db *gorm.DB, childID string, req *dto.UpdateChildRequest) (*models.Child, error) {
	child, err := s.GetByID(db, childID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		child.FirstName = req.FirstName
	}
	if req.LastName != "" {
		child.LastName = req.LastName
	}
	if req.GroupName != "" {
		child.GroupName = req.GroupName
	}
	if req.TeacherID != "" {
		child.TeacherID = req.TeacherID
	}
	if req.MedicalNotes != nil {
		raw, err := json.Marshal(req.MedicalNotes)
		if err != nil {
			return nil, err
		}
		child.MedicalNotes = datatypes.JSON(raw)
	}

	if err := s.childRepo.Update(db, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *childService) Delete(db *gorm.DB, childID string) error {
	if _, err := s.GetByID(db, childID); err != nil {
		return err
	}
	return s.childRepo.Delete(db, childID)
}

func (s *childService) AuthorizeParent(db *gorm.DB, childID, parentID string) (*models.Child, error) {
	child, err := s.GetByID(db, childID)
	if err != nil {
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, apperrors.ErrNotChildParent
	}
	return child, nil
}
