package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/reactions"
	"github.com/sociumhq/social-api/internal/repositories"
	"github.com/sociumhq/social-api/pkg/storage"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository      repositories.PostRepository
	commentRepository   repositories.CommentRepository
	savedPostRepository repositories.SavedPostRepository
	ledger              *reactions.Ledger
	imageStore          storage.ImageStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, savedPostRepo repositories.SavedPostRepository, ledger *reactions.Ledger, imageStore storage.ImageStore) *PostHandler {
	return &PostHandler{
		postRepository:      postRepo,
		commentRepository:   commentRepo,
		savedPostRepository: savedPostRepo,
		ledger:              ledger,
		imageStore:          imageStore,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/image", h.UploadPostImage)
}

// CreatePost creates a post authored by the acting user
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID: middleware.UserID(c),
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by id, together with its like and comment
// counts and whether the acting user has liked or bookmarked it
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	postID := post.ID.Hex()
	userID := middleware.UserID(c)
	likes, err := h.ledger.LikesCount(c.Request().Context(), postID)
	if err != nil {
		return writeError(c, err)
	}
	comments, err := h.commentRepository.CountCommentsByPostID(postID)
	if err != nil {
		return writeError(c, err)
	}
	liked, err := h.ledger.HasLiked(userID, postID)
	if err != nil {
		return writeError(c, err)
	}
	saved, err := h.savedPostRepository.IsPostSaved(userID, postID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":           post,
		"likes_count":    likes,
		"comments_count": comments,
		"liked":          liked,
		"saved":          saved,
	})
}

// UpdatePost updates a post; only its author may do so
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.authoredPost(c)
	if err != nil {
		return writeError(c, err)
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Body != "" {
		post.Body = req.Body
	}
	if req.ImageURL != "" {
		post.ImageURL = req.ImageURL
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), post.ID.Hex(), post); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and cascades its reactions, comments and
// bookmarks; only its author may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	post, err := h.authoredPost(c)
	if err != nil {
		return writeError(c, err)
	}

	postID := post.ID.Hex()
	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return writeError(c, err)
	}
	if err := h.ledger.DropPost(c.Request().Context(), postID); err != nil {
		return writeError(c, err)
	}
	if err := h.commentRepository.DeleteCommentsByPostID(postID); err != nil {
		return writeError(c, err)
	}
	if err := h.savedPostRepository.DeleteSavesByPostID(postID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPostImage stores a post image in the image store and records its
// URL on the post; only the author may do so
func (h *PostHandler) UploadPostImage(c echo.Context) error {
	if h.imageStore == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "Image storage is not configured")
	}

	post, err := h.authoredPost(c)
	if err != nil {
		return writeError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}
	defer file.Close()

	objectName := fmt.Sprintf("posts/%s/%s%s", post.ID.Hex(), uuid.NewString(), filepath.Ext(fileHeader.Filename))
	url, err := h.imageStore.Upload(c.Request().Context(), objectName, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.SetImageURL(c.Request().Context(), post.ID.Hex(), url); err != nil {
		return writeError(c, err)
	}
	post.ImageURL = url
	return c.JSON(http.StatusOK, post)
}

// authoredPost loads the post from the path parameter and verifies the
// acting user is its author. Errors are raw; callers pass them through
// writeError.
func (h *PostHandler) authoredPost(c echo.Context) (*models.Post, error) {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if post.AuthorID != middleware.UserID(c) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Only the author may modify this post")
	}
	return post, nil
}
