package repositories

import (
	"github.com/sociumhq/social-api/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByUserID(userID uint) (*models.Profile, error)
	GetProfiles() ([]models.Profile, error)
	GetProfilesByUserIDs(userIDs []uint) ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	DeleteProfileByUserID(userID uint) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile in PostgreSQL
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByUserID retrieves the profile belonging to a user
func (r *PostgresProfileRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfiles retrieves all profiles
func (r *PostgresProfileRepository) GetProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetProfilesByUserIDs retrieves the profiles whose user id is in userIDs
func (r *PostgresProfileRepository) GetProfilesByUserIDs(userIDs []uint) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if len(userIDs) == 0 {
		return profiles, nil
	}
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile updates an existing profile in PostgreSQL
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// DeleteProfileByUserID deletes the profile belonging to a user
func (r *PostgresProfileRepository) DeleteProfileByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}
