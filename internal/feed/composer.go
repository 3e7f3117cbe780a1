// Package feed composes post listings from the post store and the peer
// sets derived by the relations resolver.
package feed

import (
	"context"

	"github.com/sociumhq/social-api/errs"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/relations"
	"github.com/sociumhq/social-api/internal/repositories"
)

// Relation kinds a feed can be composed for.
const (
	RelationFriends   = "friends"
	RelationFollowers = "followers"
	RelationFollowees = "followees"
)

// Composer builds feeds. An empty peer set yields an empty feed, never an
// error, and skips the post store entirely.
type Composer struct {
	posts    repositories.PostRepository
	resolver *relations.Resolver
}

// NewComposer creates a new Composer
func NewComposer(postRepo repositories.PostRepository, resolver *relations.Resolver) *Composer {
	return &Composer{
		posts:    postRepo,
		resolver: resolver,
	}
}

// Global returns all posts, newest first.
func (c *Composer) Global(ctx context.Context) ([]models.Post, error) {
	return c.posts.GetAllPosts(ctx)
}

// ByAuthor returns the posts authored by authorID, newest first.
func (c *Composer) ByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return c.posts.GetPostsByAuthor(ctx, authorID)
}

// ForRelation returns the posts authored by the members of userID's peer
// set for the given relation kind. The acting user is never part of its own
// peer set, so its own posts are excluded.
func (c *Composer) ForRelation(ctx context.Context, userID uint, kind string) ([]models.Post, error) {
	var (
		peers []uint
		err   error
	)
	switch kind {
	case RelationFriends:
		peers, err = c.resolver.Friends(userID)
	case RelationFollowers:
		peers, err = c.resolver.Followers(userID)
	case RelationFollowees:
		peers, err = c.resolver.Followees(userID)
	default:
		return nil, errs.Errorf(errs.EINVALID, "Unknown feed relation %q.", kind)
	}
	if err != nil {
		return nil, err
	}
	if len(peers) == 0 {
		return []models.Post{}, nil
	}
	return c.posts.GetPostsByAuthors(ctx, peers)
}
