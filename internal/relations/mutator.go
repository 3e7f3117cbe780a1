package relations

import (
	"github.com/sociumhq/social-api/errs"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/repositories"
	"gorm.io/gorm"
)

// Mutator validates and applies relationship state transitions. Every call
// takes explicit acting-user and peer ids; idempotent writes go through the
// repositories' conditional-insert primitive, so a race between identical
// callers resolves to a single row via the unique indexes.
type Mutator struct {
	users       repositories.UserRepository
	friendships repositories.FriendshipRepository
	follows     repositories.FollowRepository
}

// NewMutator creates a new Mutator
func NewMutator(userRepo repositories.UserRepository, friendshipRepo repositories.FriendshipRepository, followRepo repositories.FollowRepository) *Mutator {
	return &Mutator{
		users:       userRepo,
		friendships: friendshipRepo,
		follows:     followRepo,
	}
}

// Follow makes sender follow receiver. Repeated calls are a no-op: exactly
// one Follow edge exists afterwards. The returned bool reports whether the
// edge was created by this call.
func (m *Mutator) Follow(senderID, receiverID uint) (bool, error) {
	if err := m.guardPeer(senderID, receiverID); err != nil {
		return false, err
	}
	_, created, err := m.follows.GetOrCreateEdge(senderID, receiverID, models.FollowActive)
	return created, err
}

// Unfollow removes every follow edge sender -> receiver. Unfollowing a user
// that was never followed is not an error.
func (m *Mutator) Unfollow(senderID, receiverID uint) error {
	if senderID == receiverID {
		return errs.Errorf(errs.ESELF, "Sender must be different than receiver.")
	}
	return m.follows.DeleteEdges(senderID, receiverID)
}

// Request sends a friend request from sender to receiver. An Accept edge
// or an open Pending edge between the pair, in either direction, rejects
// the new proposal. A request that was rejected may be sent again: the
// stale Reject row is dropped, which reopens the surviving Pending edge.
func (m *Mutator) Request(senderID, receiverID uint) error {
	if err := m.guardPeer(senderID, receiverID); err != nil {
		return err
	}
	existing, err := m.friendships.EdgesBetween(senderID, receiverID,
		models.FriendshipPending, models.FriendshipAccept, models.FriendshipReject)
	if err != nil {
		return err
	}
	var pendingOut, pendingIn, rejectedOut, rejectedIn bool
	for _, e := range existing {
		outbound := e.SenderID == senderID
		switch e.Status {
		case models.FriendshipAccept:
			return errs.Errorf(errs.ECONFLICT, "Users are already friends.")
		case models.FriendshipPending:
			if outbound {
				pendingOut = true
			} else {
				pendingIn = true
			}
		case models.FriendshipReject:
			if outbound {
				rejectedOut = true
			} else {
				rejectedIn = true
			}
		}
	}
	// A Pending row answered by a Reject in the same direction is history,
	// not an open request, so it does not block.
	if (pendingOut && !rejectedOut) || (pendingIn && !rejectedIn) {
		return errs.Errorf(errs.ECONFLICT, "A pending friend request already exists between these users.")
	}
	if rejectedOut {
		if err := m.friendships.DeleteEdges(senderID, receiverID, models.FriendshipReject); err != nil {
			return err
		}
	}
	_, _, err = m.friendships.GetOrCreateEdge(senderID, receiverID, models.FriendshipPending)
	return err
}

// Accept records that receiver accepts sender's pending friend request. A
// new Accept edge is inserted; the Pending edge stays as history.
func (m *Mutator) Accept(receiverID, senderID uint) error {
	return m.answer(receiverID, senderID, models.FriendshipAccept)
}

// Reject records that receiver rejects sender's pending friend request.
func (m *Mutator) Reject(receiverID, senderID uint) error {
	return m.answer(receiverID, senderID, models.FriendshipReject)
}

func (m *Mutator) answer(receiverID, senderID uint, status string) error {
	if err := m.guardPeer(receiverID, senderID); err != nil {
		return err
	}
	edges, err := m.friendships.EdgesBySender(senderID)
	if err != nil {
		return err
	}
	// The Pending row is history, not state: a request counts as open only
	// while no Accept/Reject row exists for the same direction.
	pending, answered := false, false
	for _, e := range edges {
		if e.ReceiverID != receiverID {
			continue
		}
		switch e.Status {
		case models.FriendshipPending:
			pending = true
		case models.FriendshipAccept, models.FriendshipReject:
			answered = true
		}
	}
	if !pending || answered {
		return errs.Errorf(errs.ENOPENDING, "There is no pending friend request.")
	}
	_, _, err = m.friendships.GetOrCreateEdge(senderID, receiverID, status)
	return err
}

// Unfriend removes the accepted friendship between a and b. Accept edges
// are deleted in both directions; historical Pending and Reject edges stay.
func (m *Mutator) Unfriend(a, b uint) error {
	if a == b {
		return errs.Errorf(errs.ESELF, "Sender must be different than receiver.")
	}
	accepted, err := m.friendships.EdgesBetween(a, b, models.FriendshipAccept)
	if err != nil {
		return err
	}
	if len(accepted) == 0 {
		return errs.Errorf(errs.ENOTFRIENDS, "You are not friends.")
	}
	return m.friendships.DeleteEdgesBetween(a, b, models.FriendshipAccept)
}

// guardPeer rejects self-referencing mutations and verifies the peer exists.
func (m *Mutator) guardPeer(actorID, peerID uint) error {
	if actorID == peerID {
		return errs.Errorf(errs.ESELF, "Sender must be different than receiver.")
	}
	if _, err := m.users.GetUserByID(peerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "User not found.")
		}
		return err
	}
	return nil
}
