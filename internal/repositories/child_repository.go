package repositories

import (
	"errors"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrChildNotFound = errors.New("child not found")

type ChildRepository interface {
	Create(db *gorm.DB, child *models.Child) error
	FindByID(db *gorm.DB, id string) (*models.Child, error)
	FindByParent(db *gorm.DB, parentID string) ([]models.Child, error)
	FindByTeacher(db *gorm.DB, teacherID string) ([]models.Child, error)
	FindByGroup(db *gorm.DB, groupName string) ([]models.Child, error)
	FindAll(db *gorm.DB) ([]models.Child, error)
	Update(db *gorm.DB, child *models.Child) error
	Delete(db *gorm.DB, id string) error
}

type childRepository struct{}

func NewChildRepository() ChildRepository {
	return &childRepository{}
}

func (r *childRepository) Create(db *gorm.DB, child *models.Child) error {
	return db.Create(child).Error
}

func (r *childRepository) FindByID(db *gorm.DB, id string) (*models.Child, error) {
	var child models.Child
	err := db.First(&child, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) FindByParent(db *gorm.DB, parentID string) ([]models.Child, error) {
	var children []models.Child
	err := db.Where("parent_id = ?", parentID).Order("first_name ASC").Find(&children).Error
	return children, err
}

func (r *childRepository) FindByTeacher(db *gorm.DB, teacherID string) ([]models.Child, error) {
	var children []models.Child
	err := db.Where("teacher_id = ?", teacherID).Order("first_name ASC").Find(&children).Error
	return children, err
}

func (r *childRepository) FindByGroup(db *gorm.DB, groupName string) ([]models.Child, error) {
	var children []models.Child
	err := db.Where("group_name = ?", groupName).Order("first_name ASC").Find(&children).Error
	return children, err
}

func (r *childRepository) FindAll(db *gorm.DB) ([]models.Child, error) {
	var children []models.Child
	err := db.Order("group_name ASC, first_name ASC").Find(&children).Error
	return children, err
}

func (r *childRepository) Update(db *gorm.DB, child *models.Child) error {
	return db.Save(child).Error
}

func (r *childRepository) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Child{}, "id = ?", id).Error
}
