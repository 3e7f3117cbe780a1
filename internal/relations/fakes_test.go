package relations

import (
	"github.com/sociumhq/social-api/internal/models"
	"gorm.io/gorm"
)

// memFriendshipRepo is an in-memory FriendshipRepository mirroring the
// append-only edge semantics of the postgres implementation.
type memFriendshipRepo struct {
	edges []models.Friendship
	next  uint
}

func newMemFriendshipRepo() *memFriendshipRepo {
	return &memFriendshipRepo{next: 1}
}

func (r *memFriendshipRepo) GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Friendship, bool, error) {
	for i := range r.edges {
		e := &r.edges[i]
		if e.SenderID == senderID && e.ReceiverID == receiverID && e.Status == status {
			return e, false, nil
		}
	}
	edge := models.Friendship{ID: r.next, SenderID: senderID, ReceiverID: receiverID, Status: status}
	r.next++
	r.edges = append(r.edges, edge)
	return &r.edges[len(r.edges)-1], true, nil
}

func (r *memFriendshipRepo) EdgesByReceiver(receiverID uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		if e.ReceiverID == receiverID && matchStatus(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) EdgesBySender(senderID uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		if e.SenderID == senderID && matchStatus(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) EdgesBetween(a, b uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		between := (e.SenderID == a && e.ReceiverID == b) || (e.SenderID == b && e.ReceiverID == a)
		if between && matchStatus(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) DeleteEdgesBetween(a, b uint, status string) error {
	kept := r.edges[:0]
	for _, e := range r.edges {
		between := (e.SenderID == a && e.ReceiverID == b) || (e.SenderID == b && e.ReceiverID == a)
		if between && e.Status == status {
			continue
		}
		kept = append(kept, e)
	}
	r.edges = kept
	return nil
}

func (r *memFriendshipRepo) DeleteEdges(senderID, receiverID uint, status string) error {
	kept := r.edges[:0]
	for _, e := range r.edges {
		if e.SenderID == senderID && e.ReceiverID == receiverID && e.Status == status {
			continue
		}
		kept = append(kept, e)
	}
	r.edges = kept
	return nil
}

// memFollowRepo is an in-memory FollowRepository.
type memFollowRepo struct {
	edges []models.Follow
	next  uint
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{next: 1}
}

func (r *memFollowRepo) GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Follow, bool, error) {
	for i := range r.edges {
		e := &r.edges[i]
		if e.SenderID == senderID && e.ReceiverID == receiverID && e.Status == status {
			return e, false, nil
		}
	}
	edge := models.Follow{ID: r.next, SenderID: senderID, ReceiverID: receiverID, Status: status}
	r.next++
	r.edges = append(r.edges, edge)
	return &r.edges[len(r.edges)-1], true, nil
}

func (r *memFollowRepo) DeleteEdges(senderID, receiverID uint) error {
	kept := r.edges[:0]
	for _, e := range r.edges {
		if e.SenderID == senderID && e.ReceiverID == receiverID {
			continue
		}
		kept = append(kept, e)
	}
	r.edges = kept
	return nil
}

func (r *memFollowRepo) EdgesByReceiver(receiverID uint, status string) ([]models.Follow, error) {
	out := []models.Follow{}
	for _, e := range r.edges {
		if e.ReceiverID == receiverID && e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFollowRepo) EdgesBySender(senderID uint, status string) ([]models.Follow, error) {
	out := []models.Follow{}
	for _, e := range r.edges {
		if e.SenderID == senderID && e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

// memUserRepo is an in-memory UserRepository. Only the lookup used by the
// mutator guard is meaningful; the rest satisfy the interface.
type memUserRepo struct {
	users map[uint]*models.User
}

func newMemUserRepo(ids ...uint) *memUserRepo {
	r := &memUserRepo{users: map[uint]*models.User{}}
	for _, id := range ids {
		r.users[id] = &models.User{ID: id}
	}
	return r
}

func (r *memUserRepo) CreateUser(user *models.User) error { r.users[user.ID] = user; return nil }

func (r *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetUserByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUserByUsername(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUserByFirebaseUID(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetUsers() ([]models.User, error) { return nil, nil }

func (r *memUserRepo) GetUsersByIDs([]uint) ([]models.User, error) { return nil, nil }

func (r *memUserRepo) UpdateUser(*models.User) error { return nil }

func (r *memUserRepo) DeleteUser(uint) error { return nil }

func matchStatus(status string, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
