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

// FollowHandler handles follow/unfollow HTTP requests and the derived
// follower/followee listings
type FollowHandler struct {
	mutator           *relations.Mutator
	resolver          *relations.Resolver
	profileRepository repositories.ProfileRepository
	notifier          *notifications.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(mutator *relations.Mutator, resolver *relations.Resolver, profileRepo repositories.ProfileRepository, notifier *notifications.Notifier) *FollowHandler {
	return &FollowHandler{
		mutator:           mutator,
		resolver:          resolver,
		profileRepository: profileRepo,
		notifier:          notifier,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/followers", h.ListFollowers)
	g.GET("/users/following", h.ListFollowing)
}

// FollowUser makes the acting user follow the target. Re-following is a
// no-op and still succeeds.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	userID := middleware.UserID(c)
	created, err := h.mutator.Follow(userID, uint(targetID))
	if err != nil {
		return writeError(c, err)
	}
	if created {
		h.notifier.Followed(userID, uint(targetID))
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "Follow successful"})
}

// UnfollowUser removes the acting user's follow edge to the target
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if err := h.mutator.Unfollow(middleware.UserID(c), uint(targetID)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFollowers returns the profiles of the users following the acting user
func (h *FollowHandler) ListFollowers(c echo.Context) error {
	peers, err := h.resolver.Followers(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.profilesOf(c, peers)
}

// ListFollowing returns the profiles of the users the acting user follows
func (h *FollowHandler) ListFollowing(c echo.Context) error {
	peers, err := h.resolver.Followees(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.profilesOf(c, peers)
}

func (h *FollowHandler) profilesOf(c echo.Context, userIDs []uint) error {
	profiles, err := h.profileRepository.GetProfilesByUserIDs(userIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, profiles)
}
