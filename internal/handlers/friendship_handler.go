package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/notifications"
	"github.com/sociumhq/social-api/internal/relations"
	"github.com/sociumhq/social-api/internal/repositories"
)

// FriendshipHandler handles the friend-request workflow and the derived
// friends listings
type FriendshipHandler struct {
	mutator           *relations.Mutator
	resolver          *relations.Resolver
	profileRepository repositories.ProfileRepository
	notifier          *notifications.Notifier
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(mutator *relations.Mutator, resolver *relations.Resolver, profileRepo repositories.ProfileRepository, notifier *notifications.Notifier) *FriendshipHandler {
	return &FriendshipHandler{
		mutator:           mutator,
		resolver:          resolver,
		profileRepository: profileRepo,
		notifier:          notifier,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/users/:id/friend-request", h.SendFriendRequest)
	g.GET("/friend-requests", h.ListFriendRequests)
	g.GET("/friend-requests/pending", h.ListPendingFriendRequests)
	g.POST("/friend-requests/:id/accept", h.AcceptFriendRequest)
	g.POST("/friend-requests/:id/reject", h.RejectFriendRequest)
	g.GET("/friends", h.ListFriends)
	g.DELETE("/friends/:id", h.Unfriend)
}

// SendFriendRequest sends a friend request from the acting user to the
// target user
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	userID := middleware.UserID(c)
	if err := h.mutator.Request(userID, uint(targetID)); err != nil {
		return writeError(c, err)
	}
	h.notifier.FriendRequested(userID, uint(targetID))
	return c.JSON(http.StatusCreated, echo.Map{"status": "Friend request sent"})
}

// ListFriendRequests returns the profiles of every user that ever sent the
// acting user a friend request, whatever its status
func (h *FriendshipHandler) ListFriendRequests(c echo.Context) error {
	senders, err := h.resolver.Incoming(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.profilesOf(c, senders)
}

// ListPendingFriendRequests returns the profiles of users with an open
// request to the acting user
func (h *FriendshipHandler) ListPendingFriendRequests(c echo.Context) error {
	senders, err := h.resolver.PendingIncoming(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.profilesOf(c, senders)
}

// AcceptFriendRequest accepts the pending request sent by the user in the
// path parameter
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	senderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	userID := middleware.UserID(c)
	if err := h.mutator.Accept(userID, uint(senderID)); err != nil {
		return writeError(c, err)
	}
	h.notifier.FriendAccepted(userID, uint(senderID))
	return c.JSON(http.StatusCreated, echo.Map{"status": "Friend request accepted"})
}

// RejectFriendRequest rejects the pending request sent by the user in the
// path parameter
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	senderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if err := h.mutator.Reject(middleware.UserID(c), uint(senderID)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "Friend request rejected"})
}

// ListFriends returns the profiles of the acting user's current friends
func (h *FriendshipHandler) ListFriends(c echo.Context) error {
	friends, err := h.resolver.Friends(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.profilesOf(c, friends)
}

// Unfriend removes the accepted friendship with the user in the path
// parameter
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	friendID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if err := h.mutator.Unfriend(middleware.UserID(c), uint(friendID)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FriendshipHandler) profilesOf(c echo.Context, userIDs []uint) error {
	profiles, err := h.profileRepository.GetProfilesByUserIDs(userIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, profiles)
}
