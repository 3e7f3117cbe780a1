package repositories

import (
	"github.com/sociumhq/social-api/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository exposes the friendship edge table to the relations
// package. Edges are append-only: status changes insert new rows, so every
// query takes the statuses it cares about.
type FriendshipRepository interface {
	// GetOrCreateEdge inserts the edge unless an identical one exists.
	// The boolean reports whether a row was actually created.
	GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Friendship, bool, error)
	EdgesByReceiver(receiverID uint, statuses ...string) ([]models.Friendship, error)
	EdgesBySender(senderID uint, statuses ...string) ([]models.Friendship, error)
	// EdgesBetween returns edges between a and b in either direction.
	EdgesBetween(a, b uint, statuses ...string) ([]models.Friendship, error)
	// DeleteEdgesBetween removes edges with the given status in both
	// directions between a and b.
	DeleteEdgesBetween(a, b uint, status string) error
	// DeleteEdges removes edges with the given status in the single
	// direction sender -> receiver.
	DeleteEdges(senderID, receiverID uint, status string) error
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// GetOrCreateEdge conditionally inserts a friendship edge. The composite
// unique index on (sender_id, receiver_id, status) keeps concurrent callers
// from creating duplicates.
func (r *PostgresFriendshipRepository) GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Friendship, bool, error) {
	edge := models.Friendship{SenderID: senderID, ReceiverID: receiverID, Status: status}
	res := r.db.Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, status).
		FirstOrCreate(&edge)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &edge, res.RowsAffected > 0, nil
}

// EdgesByReceiver retrieves edges pointing at receiverID, optionally
// restricted to the given statuses.
func (r *PostgresFriendshipRepository) EdgesByReceiver(receiverID uint, statuses ...string) ([]models.Friendship, error) {
	edges := []models.Friendship{}
	q := r.db.Where("receiver_id = ?", receiverID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// EdgesBySender retrieves edges originating from senderID, optionally
// restricted to the given statuses.
func (r *PostgresFriendshipRepository) EdgesBySender(senderID uint, statuses ...string) ([]models.Friendship, error) {
	edges := []models.Friendship{}
	q := r.db.Where("sender_id = ?", senderID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// EdgesBetween retrieves edges between a and b in either direction.
func (r *PostgresFriendshipRepository) EdgesBetween(a, b uint, statuses ...string) ([]models.Friendship, error) {
	edges := []models.Friendship{}
	q := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// DeleteEdgesBetween removes edges with the given status in both directions.
func (r *PostgresFriendshipRepository) DeleteEdgesBetween(a, b uint, status string) error {
	return r.db.Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		a, b, b, a, status).Delete(&models.Friendship{}).Error
}

// DeleteEdges removes edges with the given status sender -> receiver only.
func (r *PostgresFriendshipRepository) DeleteEdges(senderID, receiverID uint, status string) error {
	return r.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, status).Delete(&models.Friendship{}).Error
}
