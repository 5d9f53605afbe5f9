package repositories

import (
	"errors"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrComplaintNotFound = errors.New("complaint not found")

type ComplaintRepository interface {
	Create(db *gorm.DB, complaint *models.Complaint) error
	FindByID(db *gorm.DB, id string) (*models.Complaint, error)
	FindByParent(db *gorm.DB, parentID string) ([]models.Complaint, error)
	FindByStatus(db *gorm.DB, status models.ComplaintStatus) ([]models.Complaint, error)
	FindAll(db *gorm.DB) ([]models.Complaint, error)
	Update(db *gorm.DB, complaint *models.Complaint) error
}

type complaintRepository struct{}

func NewComplaintRepository() ComplaintRepository {
	return &complaintRepository{}
}

func (r *complaintRepository) Create(db *gorm.DB, complaint *models.Complaint) error {
	return db.Create(complaint).Error
}

func (r *complaintRepository) FindByID(db *gorm.DB, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := db.First(&complaint, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) FindByParent(db *gorm.DB, parentID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := db.Where("parent_id = ?", parentID).Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepository) FindByStatus(db *gorm.DB, status models.ComplaintStatus) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := db.Where("status = ?", status).Order("created_at ASC").Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepository) FindAll(db *gorm.DB) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := db.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepository) Update(db *gorm.DB, complaint *models.Complaint) error {
	return db.Save(complaint).Error
}
