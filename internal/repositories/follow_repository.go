package repositories

import (
	"github.com/sociumhq/social-api/internal/models"
	"gorm.io/gorm"
)

// FollowRepository exposes the follow edge table to the relations package.
type FollowRepository interface {
	// GetOrCreateEdge inserts the edge unless an identical one exists.
	// The boolean reports whether a row was actually created.
	GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Follow, bool, error)
	// DeleteEdges removes every edge sender -> receiver regardless of status.
	DeleteEdges(senderID, receiverID uint) error
	EdgesByReceiver(receiverID uint, status string) ([]models.Follow, error)
	EdgesBySender(senderID uint, status string) ([]models.Follow, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// GetOrCreateEdge conditionally inserts a follow edge. The composite unique
// index on (sender_id, receiver_id, status) keeps concurrent callers from
// creating duplicates.
func (r *PostgresFollowRepository) GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Follow, bool, error) {
	edge := models.Follow{SenderID: senderID, ReceiverID: receiverID, Status: status}
	res := r.db.Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, status).
		FirstOrCreate(&edge)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &edge, res.RowsAffected > 0, nil
}

// DeleteEdges removes every follow edge sender -> receiver. Deleting when no
// edge exists is not an error.
func (r *PostgresFollowRepository) DeleteEdges(senderID, receiverID uint) error {
	return r.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&models.Follow{}).Error
}

// EdgesByReceiver retrieves edges with the given status pointing at receiverID.
func (r *PostgresFollowRepository) EdgesByReceiver(receiverID uint, status string) ([]models.Follow, error) {
	edges := []models.Follow{}
	if err := r.db.Where("receiver_id = ? AND status = ?", receiverID, status).Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// EdgesBySender retrieves edges with the given status originating from senderID.
func (r *PostgresFollowRepository) EdgesBySender(senderID uint, status string) ([]models.Follow, error) {
	edges := []models.Follow{}
	if err := r.db.Where("sender_id = ? AND status = ?", senderID, status).Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}
