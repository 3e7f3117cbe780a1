package repositories

import (
	"github.com/sociumhq/social-api/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for bookmark operations
type SavedPostRepository interface {
	GetOrCreateSave(userID uint, postID string) (*models.SavedPost, bool, error)
	DeleteSave(userID uint, postID string) error
	IsPostSaved(userID uint, postID string) (bool, error)
	GetSavedPostsByUser(userID uint) ([]models.SavedPost, error)
	DeleteSavesByPostID(postID string) error
}

// PostgresSavedPostRepository implements SavedPostRepository for PostgreSQL
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

// NewPostgresSavedPostRepository creates a new PostgresSavedPostRepository
func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

// GetOrCreateSave bookmarks a post unless the bookmark already exists.
// The returned bool reports whether a new row was inserted.
func (r *PostgresSavedPostRepository) GetOrCreateSave(userID uint, postID string) (*models.SavedPost, bool, error) {
	saved := models.SavedPost{UserID: userID, PostID: postID}
	res := r.db.Where(models.SavedPost{UserID: userID, PostID: postID}).FirstOrCreate(&saved)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &saved, res.RowsAffected > 0, nil
}

// DeleteSave removes a bookmark. Removing a bookmark that does not exist
// is not an error.
func (r *PostgresSavedPostRepository) DeleteSave(userID uint, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{}).Error
}

// IsPostSaved reports whether the user has bookmarked the post
func (r *PostgresSavedPostRepository) IsPostSaved(userID uint, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedPost{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// GetSavedPostsByUser retrieves a user's bookmarks, newest first
func (r *PostgresSavedPostRepository) GetSavedPostsByUser(userID uint) ([]models.SavedPost, error) {
	saved := []models.SavedPost{}
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	return saved, err
}

// DeleteSavesByPostID deletes every bookmark of a post. Used when the
// post itself is removed.
func (r *PostgresSavedPostRepository) DeleteSavesByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.SavedPost{}).Error
}
