package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/errs"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/notifications"
	"github.com/sociumhq/social-api/internal/repositories"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	notifier          *notifications.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, notifier *notifications.Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsByPost)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	comment := &models.Comment{
		PostID: post.ID.Hex(),
		UserID: middleware.UserID(c),
		Body:   req.Body,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return writeError(c, err)
	}

	h.notifier.PostCommented(comment.UserID, post.AuthorID, comment.PostID)

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPost retrieves the comments on a post, oldest first
func (h *CommentHandler) GetCommentsByPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID.Hex())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// UpdateComment edits one of the acting user's comments
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.ownedComment(c)
	if err != nil {
		return writeError(c, err)
	}

	comment.Body = req.Body
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes one of the acting user's comments
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comment, err := h.ownedComment(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ownedComment loads the comment from the :id param and checks that the
// acting user wrote it.
func (h *CommentHandler) ownedComment(c echo.Context) (*models.Comment, error) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, errs.Errorf(errs.EINVALID, "Invalid comment ID.")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "Comment not found.")
		}
		return nil, err
	}
	if comment.UserID != middleware.UserID(c) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "You are not the author of this comment")
	}
	return comment, nil
}
