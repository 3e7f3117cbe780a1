package repositories

import (
	"github.com/sociumhq/social-api/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	// GetOrCreateReaction inserts the reaction unless an identical one
	// exists. The boolean reports whether a row was actually created.
	GetOrCreateReaction(userID uint, postID string, status int) (*models.Reaction, bool, error)
	// DeleteReactions removes every reaction (userID, postID) regardless of
	// status and returns how many like rows were removed.
	DeleteReactions(userID uint, postID string) (int64, error)
	GetReactionsByUserID(userID uint) ([]models.Reaction, error)
	CountLikesByPostID(postID string) (int64, error)
	HasUserLikedPost(userID uint, postID string) (bool, error)
	DeleteReactionsByPostID(postID string) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// GetOrCreateReaction conditionally inserts a reaction. The composite unique
// index on (user_id, post_id, status) keeps concurrent callers from creating
// duplicates.
func (r *PostgresReactionRepository) GetOrCreateReaction(userID uint, postID string, status int) (*models.Reaction, bool, error) {
	reaction := models.Reaction{UserID: userID, PostID: postID, Status: status}
	res := r.db.Where("user_id = ? AND post_id = ? AND status = ?", userID, postID, status).
		FirstOrCreate(&reaction)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &reaction, res.RowsAffected > 0, nil
}

// DeleteReactions removes every reaction (userID, postID) regardless of
// status, in a single transaction, and reports how many like rows went.
func (r *PostgresReactionRepository) DeleteReactions(userID uint, postID string) (int64, error) {
	var likes int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ? AND status = ?", userID, postID, models.ReactionLike).
			Delete(&models.Reaction{})
		if res.Error != nil {
			return res.Error
		}
		likes = res.RowsAffected
		return tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Reaction{}).Error
	})
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// GetReactionsByUserID retrieves all reactions made by a user
func (r *PostgresReactionRepository) GetReactionsByUserID(userID uint) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	if err := r.db.Where("user_id = ?", userID).Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// CountLikesByPostID retrieves the number of like reactions on a post
func (r *PostgresReactionRepository) CountLikesByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).
		Where("post_id = ? AND status = ?", postID, models.ReactionLike).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedPost checks whether a like reaction (userID, postID) exists
func (r *PostgresReactionRepository) HasUserLikedPost(userID uint, postID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).
		Where("user_id = ? AND post_id = ? AND status = ?", userID, postID, models.ReactionLike).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteReactionsByPostID removes every reaction on a post. Called when the
// post itself is deleted so reactions cascade with it.
func (r *PostgresReactionRepository) DeleteReactionsByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error
}
