package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/internal/feed"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/repositories"
)

// FeedHandler handles feed-related HTTP requests. Posts live in mongo and
// only carry the author id, so every feed page is hydrated with the author
// rows in one batched lookup.
type FeedHandler struct {
	composer       *feed.Composer
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(composer *feed.Composer, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		composer:       composer,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetGlobalFeed)
	g.GET("/feed/users/:id", h.GetAuthorFeed)
	g.GET("/feed/followers", h.GetFollowersFeed)
	g.GET("/feed/following", h.GetFolloweesFeed)
	g.GET("/feed/friends", h.GetFriendsFeed)
}

// GetGlobalFeed returns all posts, newest first
func (h *FeedHandler) GetGlobalFeed(c echo.Context) error {
	posts, err := h.composer.Global(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return h.writeFeed(c, posts)
}

// GetAuthorFeed returns the posts of a specific author
func (h *FeedHandler) GetAuthorFeed(c echo.Context) error {
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	posts, err := h.composer.ByAuthor(c.Request().Context(), uint(authorID))
	if err != nil {
		return writeError(c, err)
	}
	return h.writeFeed(c, posts)
}

// GetFollowersFeed returns the posts of the acting user's followers
func (h *FeedHandler) GetFollowersFeed(c echo.Context) error {
	return h.relationFeed(c, feed.RelationFollowers)
}

// GetFolloweesFeed returns the posts of the users the acting user follows
func (h *FeedHandler) GetFolloweesFeed(c echo.Context) error {
	return h.relationFeed(c, feed.RelationFollowees)
}

// GetFriendsFeed returns the posts of the acting user's friends
func (h *FeedHandler) GetFriendsFeed(c echo.Context) error {
	return h.relationFeed(c, feed.RelationFriends)
}

func (h *FeedHandler) relationFeed(c echo.Context, kind string) error {
	posts, err := h.composer.ForRelation(c.Request().Context(), middleware.UserID(c), kind)
	if err != nil {
		return writeError(c, err)
	}
	return h.writeFeed(c, posts)
}

// writeFeed responds with the posts plus the user rows of their distinct
// authors.
func (h *FeedHandler) writeFeed(c echo.Context, posts []models.Post) error {
	seen := map[uint]bool{}
	ids := []uint{}
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}
	authors, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts":   posts,
		"authors": authors,
	})
}
