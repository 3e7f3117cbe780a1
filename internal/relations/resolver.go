// Package relations derives peer sets from the raw friendship and follow
// edge tables and validates every relationship state transition. It is the
// only place that interprets edge rows; handlers and the feed composer
// consume its id sets.
package relations

import (
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/repositories"
)

// Resolver computes derived relationship sets for a user. All methods
// return deduplicated user ids in unspecified order, and an empty non-nil
// slice when no relations exist. Reads only, no side effects.
type Resolver struct {
	friendships repositories.FriendshipRepository
	follows     repositories.FollowRepository
}

// NewResolver creates a new Resolver
func NewResolver(friendshipRepo repositories.FriendshipRepository, followRepo repositories.FollowRepository) *Resolver {
	return &Resolver{
		friendships: friendshipRepo,
		follows:     followRepo,
	}
}

// Friends returns the users connected to userID by an Accept edge in
// either direction. The user itself is filtered out even though the
// mutator never creates self-edges.
func (r *Resolver) Friends(userID uint) ([]uint, error) {
	received, err := r.friendships.EdgesByReceiver(userID, models.FriendshipAccept)
	if err != nil {
		return nil, err
	}
	sent, err := r.friendships.EdgesBySender(userID, models.FriendshipAccept)
	if err != nil {
		return nil, err
	}
	set := newIDSet()
	for _, e := range received {
		if e.SenderID != userID {
			set.add(e.SenderID)
		}
	}
	for _, e := range sent {
		if e.ReceiverID != userID {
			set.add(e.ReceiverID)
		}
	}
	return set.ids(), nil
}

// PendingIncoming returns the senders of Pending friend requests addressed
// to userID.
func (r *Resolver) PendingIncoming(userID uint) ([]uint, error) {
	return r.incoming(userID, models.FriendshipPending)
}

// Incoming returns the senders of all friendship edges addressed to
// userID, whatever their status.
func (r *Resolver) Incoming(userID uint) ([]uint, error) {
	return r.incoming(userID)
}

func (r *Resolver) incoming(userID uint, statuses ...string) ([]uint, error) {
	edges, err := r.friendships.EdgesByReceiver(userID, statuses...)
	if err != nil {
		return nil, err
	}
	set := newIDSet()
	for _, e := range edges {
		if e.SenderID != userID {
			set.add(e.SenderID)
		}
	}
	return set.ids(), nil
}

// Followers returns the users following userID.
func (r *Resolver) Followers(userID uint) ([]uint, error) {
	edges, err := r.follows.EdgesByReceiver(userID, models.FollowActive)
	if err != nil {
		return nil, err
	}
	set := newIDSet()
	for _, e := range edges {
		if e.SenderID != userID {
			set.add(e.SenderID)
		}
	}
	return set.ids(), nil
}

// Followees returns the users userID follows.
func (r *Resolver) Followees(userID uint) ([]uint, error) {
	edges, err := r.follows.EdgesBySender(userID, models.FollowActive)
	if err != nil {
		return nil, err
	}
	set := newIDSet()
	for _, e := range edges {
		if e.ReceiverID != userID {
			set.add(e.ReceiverID)
		}
	}
	return set.ids(), nil
}

// idSet deduplicates user ids while keeping first-seen order, which makes
// the derived sets stable for tests and responses.
type idSet struct {
	seen  map[uint]struct{}
	order []uint
}

func newIDSet() *idSet {
	return &idSet{seen: map[uint]struct{}{}, order: []uint{}}
}

func (s *idSet) add(id uint) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *idSet) ids() []uint {
	return s.order
}
