package repositories

import (
	"errors"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	Create(db *gorm.DB, announcement *models.Announcement) error
	FindByID(db *gorm.DB, id string) (*models.Announcement, error)
	FindForAudience(db *gorm.DB, audiences []models.Audience, limit int) ([]models.Announcement, error)
	Delete(db *gorm.DB, id string) error
}

type announcementRepository struct{}

func NewAnnouncementRepository() AnnouncementRepository {
	return &announcementRepository{}
}

func (r *announcementRepository) Create(db *gorm.DB, announcement *models.Announcement) error {
	return db.Create(announcement).Error
}

func (r *announcementRepository) FindByID(db *gorm.DB, id string) (*models.Announcement, error) {
	var announcement models.Announcement
	err := db.First(&announcement, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) FindForAudience(db *gorm.DB, audiences []models.Audience, limit int) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := db.Where("audience IN ?", audiences).
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Announcement{}, "id = ?", id).Error
}
