package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/notifications"
	"github.com/sociumhq/social-api/internal/reactions"
)

// LikeHandler handles HTTP requests related to post reactions
type LikeHandler struct {
	ledger   *reactions.Ledger
	notifier *notifications.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(ledger *reactions.Ledger, notifier *notifications.Notifier) *LikeHandler {
	return &LikeHandler{ledger: ledger, notifier: notifier}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.GET("/posts/liked", h.ListLikedPosts)
	g.GET("/posts/:id/likes/count", h.GetLikesCount)
}

// LikePost records a like. Liking twice is a no-op and still returns 201.
func (h *LikeHandler) LikePost(c echo.Context) error {
	userID := middleware.UserID(c)
	post, created, err := h.ledger.Like(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if created {
		h.notifier.PostLiked(userID, post.AuthorID, post.ID.Hex())
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "Post liked"})
}

// UnlikePost removes the acting user's reactions from a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	if err := h.ledger.Unlike(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLikedPosts returns the acting user's reactions
func (h *LikeHandler) ListLikedPosts(c echo.Context) error {
	liked, err := h.ledger.LikedPosts(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, liked)
}

// GetLikesCount returns the number of likes on a post
func (h *LikeHandler) GetLikesCount(c echo.Context) error {
	count, err := h.ledger.LikesCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": c.Param("id"), "likes_count": count})
}
