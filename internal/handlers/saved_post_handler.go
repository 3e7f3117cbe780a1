package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/repositories"
)

// SavedPostHandler handles bookmark HTTP requests
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
	postRepository      repositories.PostRepository
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostRepo repositories.SavedPostRepository, postRepo repositories.PostRepository) *SavedPostHandler {
	return &SavedPostHandler{
		savedPostRepository: savedPostRepo,
		postRepository:      postRepo,
	}
}

// RegisterSavedPostRoutes registers bookmark routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.SavePost)
	g.DELETE("/posts/:id/save", h.UnsavePost)
	g.GET("/posts/saved", h.ListSavedPosts)
}

// SavePost bookmarks a post. Saving twice is a no-op and still returns 201.
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	if _, _, err := h.savedPostRepository.GetOrCreateSave(middleware.UserID(c), post.ID.Hex()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "Post saved"})
}

// UnsavePost removes a bookmark
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	if err := h.savedPostRepository.DeleteSave(middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSavedPosts returns the posts the acting user has bookmarked
func (h *SavedPostHandler) ListSavedPosts(c echo.Context) error {
	saved, err := h.savedPostRepository.GetSavedPostsByUser(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	ids := make([]string, 0, len(saved))
	for _, s := range saved {
		ids = append(ids, s.PostID)
	}

	posts, err := h.postRepository.GetPostsByIDs(c.Request().Context(), ids)
	if err != nil {
		return writeError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}
