package feed

import (
	"context"
	"testing"
	"time"

	"github.com/sociumhq/social-api/errs"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/relations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memPostRepo is an in-memory PostRepository serving posts newest first,
// like the mongo implementation does.
type memPostRepo struct {
	posts []models.Post
}

func (r *memPostRepo) addPost(authorID uint, title string) {
	r.posts = append(r.posts, models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		Title:     title,
		CreatedAt: time.Now().Add(time.Duration(len(r.posts)) * time.Second),
	})
}

func (r *memPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.posts = append(r.posts, *post)
	return nil
}

func (r *memPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	for i := range r.posts {
		if r.posts[i].ID.Hex() == id {
			return &r.posts[i], nil
		}
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "Post not found.")
}

func (r *memPostRepo) GetAllPosts(context.Context) ([]models.Post, error) {
	return r.newestFirst(func(models.Post) bool { return true }), nil
}

func (r *memPostRepo) GetPostsByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	return r.newestFirst(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memPostRepo) GetPostsByAuthors(_ context.Context, authorIDs []uint) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	in := map[uint]bool{}
	for _, id := range authorIDs {
		in[id] = true
	}
	return r.newestFirst(func(p models.Post) bool { return in[p.AuthorID] }), nil
}

func (r *memPostRepo) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	in := map[string]bool{}
	for _, id := range ids {
		in[id] = true
	}
	return r.newestFirst(func(p models.Post) bool { return in[p.ID.Hex()] }), nil
}

func (r *memPostRepo) UpdatePost(context.Context, string, *models.Post) error { return nil }

func (r *memPostRepo) DeletePost(context.Context, string) error { return nil }

func (r *memPostRepo) SetImageURL(context.Context, string, string) error { return nil }

func (r *memPostRepo) newestFirst(keep func(models.Post) bool) []models.Post {
	out := []models.Post{}
	for i := len(r.posts) - 1; i >= 0; i-- {
		if keep(r.posts[i]) {
			out = append(out, r.posts[i])
		}
	}
	return out
}

// memFriendshipRepo and memFollowRepo hold fixed edge sets for the resolver.
type memFriendshipRepo struct {
	edges []models.Friendship
}

func (r *memFriendshipRepo) GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Friendship, bool, error) {
	r.edges = append(r.edges, models.Friendship{SenderID: senderID, ReceiverID: receiverID, Status: status})
	return &r.edges[len(r.edges)-1], true, nil
}

func (r *memFriendshipRepo) EdgesByReceiver(receiverID uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		if e.ReceiverID == receiverID && hasStatus(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) EdgesBySender(senderID uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		if e.SenderID == senderID && hasStatus(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) EdgesBetween(a, b uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		between := (e.SenderID == a && e.ReceiverID == b) || (e.SenderID == b && e.ReceiverID == a)
		if between && hasStatus(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) DeleteEdgesBetween(uint, uint, string) error { return nil }

func (r *memFriendshipRepo) DeleteEdges(uint, uint, string) error { return nil }

type memFollowRepo struct {
	edges []models.Follow
}

func (r *memFollowRepo) GetOrCreateEdge(senderID, receiverID uint, status string) (*models.Follow, bool, error) {
	r.edges = append(r.edges, models.Follow{SenderID: senderID, ReceiverID: receiverID, Status: status})
	return &r.edges[len(r.edges)-1], true, nil
}

func (r *memFollowRepo) DeleteEdges(uint, uint) error { return nil }

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

func hasStatus(status string, statuses []string) bool {
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

func authorIDs(posts []models.Post) []uint {
	out := []uint{}
	for _, p := range posts {
		out = append(out, p.AuthorID)
	}
	return out
}

func newTestComposer() (*Composer, *memPostRepo, *memFriendshipRepo, *memFollowRepo) {
	posts := &memPostRepo{}
	friendships := &memFriendshipRepo{}
	follows := &memFollowRepo{}
	composer := NewComposer(posts, relations.NewResolver(friendships, follows))
	return composer, posts, friendships, follows
}

func TestGlobalFeedNewestFirst(t *testing.T) {
	composer, posts, _, _ := newTestComposer()
	posts.addPost(1, "first")
	posts.addPost(2, "second")
	posts.addPost(1, "third")

	feed, err := composer.Global(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "third", feed[0].Title)
	assert.Equal(t, "first", feed[2].Title)
}

func TestByAuthor(t *testing.T) {
	composer, posts, _, _ := newTestComposer()
	posts.addPost(1, "mine")
	posts.addPost(2, "theirs")

	feed, err := composer.ByAuthor(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "mine", feed[0].Title)
}

func TestFriendsFeedExcludesOwnPosts(t *testing.T) {
	composer, posts, friendships, _ := newTestComposer()
	friendships.GetOrCreateEdge(1, 2, models.FriendshipAccept)
	posts.addPost(1, "own post")
	posts.addPost(2, "friend post")
	posts.addPost(3, "stranger post")

	feed, err := composer.ForRelation(context.Background(), 1, RelationFriends)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "friend post", feed[0].Title)
}

func TestFollowerAndFolloweeFeeds(t *testing.T) {
	composer, posts, _, follows := newTestComposer()
	// 2 follows 1, 1 follows 3.
	follows.GetOrCreateEdge(2, 1, models.FollowActive)
	follows.GetOrCreateEdge(1, 3, models.FollowActive)
	posts.addPost(2, "follower post")
	posts.addPost(3, "followee post")

	feed, err := composer.ForRelation(context.Background(), 1, RelationFollowers)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, authorIDs(feed))

	feed, err = composer.ForRelation(context.Background(), 1, RelationFollowees)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, authorIDs(feed))
}

func TestEmptyPeerSetYieldsEmptyFeed(t *testing.T) {
	composer, posts, _, _ := newTestComposer()
	posts.addPost(2, "unrelated")

	for _, kind := range []string{RelationFriends, RelationFollowers, RelationFollowees} {
		feed, err := composer.ForRelation(context.Background(), 1, kind)
		require.NoError(t, err, kind)
		require.NotNil(t, feed, kind)
		assert.Empty(t, feed, kind)
	}
}

func TestUnknownRelationKind(t *testing.T) {
	composer, _, _, _ := newTestComposer()

	_, err := composer.ForRelation(context.Background(), 1, "enemies")
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}
