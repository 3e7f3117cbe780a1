// Package reactions implements the like/unlike ledger over the reaction
// table, with an optional redis cache for per-post like counts.
package reactions

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/repositories"
)

// Ledger records likes. A nil redis client disables caching; every count
// then goes to the store.
type Ledger struct {
	reactions repositories.ReactionRepository
	posts     repositories.PostRepository
	cache     *redis.Client
}

// NewLedger creates a new Ledger
func NewLedger(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository, cache *redis.Client) *Ledger {
	return &Ledger{
		reactions: reactionRepo,
		posts:     postRepo,
		cache:     cache,
	}
}

// Like records that userID likes postID. Repeated calls leave exactly one
// like row; the cached counter moves only when a row was actually created.
// The liked post and whether this call inserted the row are returned so
// callers can react to fresh likes only.
func (l *Ledger) Like(ctx context.Context, userID uint, postID string) (*models.Post, bool, error) {
	post, err := l.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	_, created, err := l.reactions.GetOrCreateReaction(userID, postID, models.ReactionLike)
	if err != nil {
		return nil, false, err
	}
	if created && l.cache != nil {
		l.cache.Incr(ctx, likesKey(postID))
	}
	return post, created, nil
}

// Unlike removes every reaction (userID, postID) regardless of status.
// Unliking a post that was never liked is not an error.
func (l *Ledger) Unlike(ctx context.Context, userID uint, postID string) error {
	if _, err := l.posts.GetPostByID(ctx, postID); err != nil {
		return err
	}
	removedLikes, err := l.reactions.DeleteReactions(userID, postID)
	if err != nil {
		return err
	}
	if removedLikes > 0 && l.cache != nil {
		l.cache.DecrBy(ctx, likesKey(postID), removedLikes)
	}
	return nil
}

// LikedPosts returns all reactions made by userID.
func (l *Ledger) LikedPosts(userID uint) ([]models.Reaction, error) {
	return l.reactions.GetReactionsByUserID(userID)
}

// HasLiked reports whether userID holds a like on postID.
func (l *Ledger) HasLiked(userID uint, postID string) (bool, error) {
	return l.reactions.HasUserLikedPost(userID, postID)
}

// LikesCount returns the number of likes on postID, served from redis when
// available and lazily backfilled from the store on a miss.
func (l *Ledger) LikesCount(ctx context.Context, postID string) (int64, error) {
	if l.cache != nil {
		val, err := l.cache.Get(ctx, likesKey(postID)).Result()
		if err == nil {
			if count, convErr := strconv.ParseInt(val, 10, 64); convErr == nil {
				return count, nil
			}
		}
	}
	count, err := l.reactions.CountLikesByPostID(postID)
	if err != nil {
		return 0, err
	}
	if l.cache != nil {
		l.cache.Set(ctx, likesKey(postID), count, 0)
	}
	return count, nil
}

// DropPost removes every reaction on postID, cascading a post deletion,
// and invalidates the cached counter.
func (l *Ledger) DropPost(ctx context.Context, postID string) error {
	if err := l.reactions.DeleteReactionsByPostID(postID); err != nil {
		return err
	}
	if l.cache != nil {
		l.cache.Del(ctx, likesKey(postID))
	}
	return nil
}

func likesKey(postID string) string {
	return fmt.Sprintf("post:%s:likes", postID)
}
