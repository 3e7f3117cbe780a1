// Package notifications records inbox entries for relationship and post
// events. Delivery is best effort: a failed insert is logged, never
// surfaced to the request that triggered it.
package notifications

import (
	"fmt"
	"log"

	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/repositories"
)

// Notifier writes notifications on behalf of the handlers.
type Notifier struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

// NewNotifier creates a new Notifier
func NewNotifier(notifications repositories.NotificationRepository, users repositories.UserRepository) *Notifier {
	return &Notifier{notifications: notifications, users: users}
}

// FriendRequested notifies recipientID of a new friend request from actorID
func (n *Notifier) FriendRequested(actorID, recipientID uint) {
	n.notify(models.NotificationFriendRequest, actorID, recipientID, "", "%s sent you a friend request.")
}

// FriendAccepted notifies recipientID that actorID accepted their request
func (n *Notifier) FriendAccepted(actorID, recipientID uint) {
	n.notify(models.NotificationFriendAccept, actorID, recipientID, "", "%s accepted your friend request.")
}

// Followed notifies recipientID of a new follower
func (n *Notifier) Followed(actorID, recipientID uint) {
	n.notify(models.NotificationFollow, actorID, recipientID, "", "%s started following you.")
}

// PostLiked notifies the post author of a like
func (n *Notifier) PostLiked(actorID, authorID uint, postID string) {
	n.notify(models.NotificationLike, actorID, authorID, postID, "%s liked your post.")
}

// PostCommented notifies the post author of a new comment
func (n *Notifier) PostCommented(actorID, authorID uint, postID string) {
	n.notify(models.NotificationComment, actorID, authorID, postID, "%s commented on your post.")
}

func (n *Notifier) notify(kind string, actorID, recipientID uint, targetID, format string) {
	if actorID == recipientID {
		return
	}
	actorName := fmt.Sprintf("User %d", actorID)
	if actor, err := n.users.GetUserByID(actorID); err == nil {
		actorName = actor.Username
	}
	err := n.notifications.CreateNotification(&models.Notification{
		Type:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    targetID,
		Message:     fmt.Sprintf(format, actorName),
	})
	if err != nil {
		log.Printf("failed to create %s notification for user %d: %v", kind, recipientID, err)
	}
}
