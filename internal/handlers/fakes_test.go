package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/errs"
	"github.com/sociumhq/social-api/internal/feed"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/notifications"
	"github.com/sociumhq/social-api/internal/reactions"
	"github.com/sociumhq/social-api/internal/relations"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret"

// testEnv wires the full route table over in-memory repositories so the
// status-code mapping can be exercised end to end through echo.
type testEnv struct {
	e             *echo.Echo
	users         *memUserRepo
	profiles      *memProfileRepo
	friendships   *memFriendshipRepo
	follows       *memFollowRepo
	notifications *memNotificationRepo
	posts         *memPostRepo
	comments      *memCommentRepo
	saves         *memSavedPostRepo
	reactions     *memReactionRepo
}

func newTestEnv(userIDs ...uint) *testEnv {
	env := &testEnv{
		users:         &memUserRepo{users: map[uint]*models.User{}},
		profiles:      &memProfileRepo{profiles: map[uint]*models.Profile{}},
		friendships:   &memFriendshipRepo{next: 1},
		follows:       &memFollowRepo{next: 1},
		notifications: &memNotificationRepo{},
		posts:         &memPostRepo{byID: map[string]*models.Post{}},
		comments:      &memCommentRepo{next: 1},
		saves:         &memSavedPostRepo{next: 1},
		reactions:     &memReactionRepo{},
	}
	for _, id := range userIDs {
		env.users.users[id] = &models.User{ID: id, Username: usernameFor(id)}
		env.profiles.profiles[id] = &models.Profile{ID: id, UserID: id}
	}

	resolver := relations.NewResolver(env.friendships, env.follows)
	mutator := relations.NewMutator(env.users, env.friendships, env.follows)
	composer := feed.NewComposer(env.posts, resolver)
	ledger := reactions.NewLedger(env.reactions, env.posts, nil)
	notifier := notifications.NewNotifier(env.notifications, env.users)

	e := echo.New()
	g := e.Group("/api/v1", middleware.JWTAuthMiddleware(testJWTSecret))
	NewUserHandler(env.users, env.profiles, nil).RegisterUserRoutes(g)
	NewPostHandler(env.posts, env.comments, env.saves, ledger, nil).RegisterPostRoutes(g)
	NewFeedHandler(composer, env.users).RegisterFeedRoutes(g)
	NewFollowHandler(mutator, resolver, env.profiles, notifier).RegisterFollowRoutes(g)
	NewFriendshipHandler(mutator, resolver, env.profiles, notifier).RegisterFriendshipRoutes(g)
	NewLikeHandler(ledger, notifier).RegisterLikeRoutes(g)
	NewSavedPostHandler(env.saves, env.posts).RegisterSavedPostRoutes(g)
	env.e = e
	return env
}

// do performs an authenticated request against the test server.
func (env *testEnv) do(t *testing.T, method, target string, asUser uint) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signTestToken(t, asUser))
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// seedPost stores a post authored by authorID and returns its hex id.
func (env *testEnv) seedPost(authorID uint) string {
	p := &models.Post{ID: primitive.NewObjectID(), AuthorID: authorID, Title: "t", Body: "b"}
	env.posts.byID[p.ID.Hex()] = p
	env.posts.order = append(env.posts.order, p.ID.Hex())
	return p.ID.Hex()
}

func signTestToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func usernameFor(id uint) string {
	return fmt.Sprintf("user%d", id)
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	users map[uint]*models.User
}

func (r *memUserRepo) CreateUser(user *models.User) error { r.users[user.ID] = user; return nil }

func (r *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
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

func (r *memUserRepo) GetUsers() ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateUser(user *models.User) error { r.users[user.ID] = user; return nil }

func (r *memUserRepo) DeleteUser(id uint) error { delete(r.users, id); return nil }

// memProfileRepo is an in-memory ProfileRepository keyed by user id.
type memProfileRepo struct {
	profiles map[uint]*models.Profile
}

func (r *memProfileRepo) CreateProfile(p *models.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *memProfileRepo) GetProfileByUserID(userID uint) (*models.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProfileRepo) GetProfiles() ([]models.Profile, error) {
	out := []models.Profile{}
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProfileRepo) GetProfilesByUserIDs(userIDs []uint) ([]models.Profile, error) {
	out := []models.Profile{}
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProfileRepo) UpdateProfile(p *models.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *memProfileRepo) DeleteProfileByUserID(userID uint) error {
	delete(r.profiles, userID)
	return nil
}

// memFriendshipRepo mirrors the append-only edge semantics of the postgres
// implementation.
type memFriendshipRepo struct {
	edges []models.Friendship
	next  uint
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
		if e.ReceiverID == receiverID && statusIn(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) EdgesBySender(senderID uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		if e.SenderID == senderID && statusIn(e.Status, statuses) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memFriendshipRepo) EdgesBetween(a, b uint, statuses ...string) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, e := range r.edges {
		between := (e.SenderID == a && e.ReceiverID == b) || (e.SenderID == b && e.ReceiverID == a)
		if between && statusIn(e.Status, statuses) {
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

// memNotificationRepo is an in-memory NotificationRepository.
type memNotificationRepo struct {
	notifications []models.Notification
}

func (r *memNotificationRepo) CreateNotification(n *models.Notification) error {
	n.ID = uint(len(r.notifications) + 1)
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *memNotificationRepo) GetNotificationByID(id uint) (*models.Notification, error) {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			return &r.notifications[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memNotificationRepo) GetByRecipientID(recipientID uint) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) MarkAsRead(notificationID uint) error {
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

// memPostRepo is an in-memory PostRepository; order holds the hex ids in
// insertion order and listings return newest first.
type memPostRepo struct {
	byID  map[string]*models.Post
	order []string
}

func (r *memPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	r.byID[post.ID.Hex()] = post
	r.order = append(r.order, post.ID.Hex())
	return nil
}

func (r *memPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "Post not found.")
}

func (r *memPostRepo) GetAllPosts(context.Context) ([]models.Post, error) {
	return r.filter(func(*models.Post) bool { return true }), nil
}

func (r *memPostRepo) GetPostsByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	return r.filter(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memPostRepo) GetPostsByAuthors(_ context.Context, authorIDs []uint) ([]models.Post, error) {
	in := map[uint]bool{}
	for _, id := range authorIDs {
		in[id] = true
	}
	return r.filter(func(p *models.Post) bool { return in[p.AuthorID] }), nil
}

func (r *memPostRepo) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	in := map[string]bool{}
	for _, id := range ids {
		in[id] = true
	}
	return r.filter(func(p *models.Post) bool { return in[p.ID.Hex()] }), nil
}

func (r *memPostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	if _, ok := r.byID[id]; !ok {
		return errs.Errorf(errs.ENOTFOUND, "Post not found.")
	}
	r.byID[id] = post
	return nil
}

func (r *memPostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errs.Errorf(errs.ENOTFOUND, "Post not found.")
	}
	delete(r.byID, id)
	return nil
}

func (r *memPostRepo) SetImageURL(_ context.Context, id, imageURL string) error {
	p, ok := r.byID[id]
	if !ok {
		return errs.Errorf(errs.ENOTFOUND, "Post not found.")
	}
	p.ImageURL = imageURL
	return nil
}

func (r *memPostRepo) filter(keep func(*models.Post) bool) []models.Post {
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.byID[r.order[i]]; ok && keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

// memCommentRepo is an in-memory CommentRepository.
type memCommentRepo struct {
	comments []models.Comment
	next     uint
}

func (r *memCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.next
	r.next++
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *memCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	for i := range r.comments {
		if r.comments[i].ID == id {
			return &r.comments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCommentRepo) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCommentRepo) CountCommentsByPostID(postID string) (int64, error) {
	var count int64
	for _, c := range r.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *memCommentRepo) UpdateComment(comment *models.Comment) error {
	for i := range r.comments {
		if r.comments[i].ID == comment.ID {
			r.comments[i] = *comment
		}
	}
	return nil
}

func (r *memCommentRepo) DeleteComment(id uint) error {
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.ID == id {
			continue
		}
		kept = append(kept, c)
	}
	r.comments = kept
	return nil
}

func (r *memCommentRepo) DeleteCommentsByPostID(postID string) error {
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.PostID == postID {
			continue
		}
		kept = append(kept, c)
	}
	r.comments = kept
	return nil
}

// memSavedPostRepo is an in-memory SavedPostRepository.
type memSavedPostRepo struct {
	saves []models.SavedPost
	next  uint
}

func (r *memSavedPostRepo) GetOrCreateSave(userID uint, postID string) (*models.SavedPost, bool, error) {
	for i := range r.saves {
		s := &r.saves[i]
		if s.UserID == userID && s.PostID == postID {
			return s, false, nil
		}
	}
	save := models.SavedPost{ID: r.next, UserID: userID, PostID: postID}
	r.next++
	r.saves = append(r.saves, save)
	return &r.saves[len(r.saves)-1], true, nil
}

func (r *memSavedPostRepo) DeleteSave(userID uint, postID string) error {
	kept := r.saves[:0]
	for _, s := range r.saves {
		if s.UserID == userID && s.PostID == postID {
			continue
		}
		kept = append(kept, s)
	}
	r.saves = kept
	return nil
}

func (r *memSavedPostRepo) IsPostSaved(userID uint, postID string) (bool, error) {
	for _, s := range r.saves {
		if s.UserID == userID && s.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSavedPostRepo) GetSavedPostsByUser(userID uint) ([]models.SavedPost, error) {
	out := []models.SavedPost{}
	for _, s := range r.saves {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSavedPostRepo) DeleteSavesByPostID(postID string) error {
	kept := r.saves[:0]
	for _, s := range r.saves {
		if s.PostID == postID {
			continue
		}
		kept = append(kept, s)
	}
	r.saves = kept
	return nil
}

// memReactionRepo is an in-memory ReactionRepository.
type memReactionRepo struct {
	reactions []models.Reaction
}

func (r *memReactionRepo) GetOrCreateReaction(userID uint, postID string, status int) (*models.Reaction, bool, error) {
	for i := range r.reactions {
		rx := &r.reactions[i]
		if rx.UserID == userID && rx.PostID == postID && rx.Status == status {
			return rx, false, nil
		}
	}
	r.reactions = append(r.reactions, models.Reaction{UserID: userID, PostID: postID, Status: status})
	return &r.reactions[len(r.reactions)-1], true, nil
}

func (r *memReactionRepo) DeleteReactions(userID uint, postID string) (int64, error) {
	var removedLikes int64
	kept := r.reactions[:0]
	for _, rx := range r.reactions {
		if rx.UserID == userID && rx.PostID == postID {
			if rx.Status == models.ReactionLike {
				removedLikes++
			}
			continue
		}
		kept = append(kept, rx)
	}
	r.reactions = kept
	return removedLikes, nil
}

func (r *memReactionRepo) GetReactionsByUserID(userID uint) ([]models.Reaction, error) {
	out := []models.Reaction{}
	for _, rx := range r.reactions {
		if rx.UserID == userID {
			out = append(out, rx)
		}
	}
	return out, nil
}

func (r *memReactionRepo) CountLikesByPostID(postID string) (int64, error) {
	var count int64
	for _, rx := range r.reactions {
		if rx.PostID == postID && rx.Status == models.ReactionLike {
			count++
		}
	}
	return count, nil
}

func (r *memReactionRepo) HasUserLikedPost(userID uint, postID string) (bool, error) {
	for _, rx := range r.reactions {
		if rx.UserID == userID && rx.PostID == postID && rx.Status == models.ReactionLike {
			return true, nil
		}
	}
	return false, nil
}

func (r *memReactionRepo) DeleteReactionsByPostID(postID string) error {
	kept := r.reactions[:0]
	for _, rx := range r.reactions {
		if rx.PostID == postID {
			continue
		}
		kept = append(kept, rx)
	}
	r.reactions = kept
	return nil
}

func statusIn(status string, statuses []string) bool {
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
