package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/internal/middleware"
	"github.com/sociumhq/social-api/internal/models"
	"github.com/sociumhq/social-api/internal/repositories"
	"github.com/sociumhq/social-api/pkg/storage"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users and profiles
type UserHandler struct {
	userRepository    repositories.UserRepository
	profileRepository repositories.ProfileRepository
	imageStore        storage.ImageStore
}

// NewUserHandler creates a new UserHandler. imageStore may be nil when no
// object store is configured; avatar uploads then return 501.
func NewUserHandler(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, imageStore storage.ImageStore) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		profileRepository: profileRepo,
		imageStore:        imageStore,
	}
}

// RegisterUserRoutes registers user and profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PUT("/me", h.UpdateMe)
	g.DELETE("/me", h.DeleteMe)
	g.PUT("/me/profile", h.UpdateProfile)
	g.POST("/me/avatar", h.UploadAvatar)
	g.GET("/users", h.ListUsers)
	g.GET("/users/profiles", h.ListProfiles)
	g.GET("/users/:id", h.GetUserProfile)
}

// GetMe returns the authenticated user's own record
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe updates the authenticated user's own record. Username changes
// are re-checked for uniqueness.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req models.UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
			return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
		}
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteMe removes the authenticated user's account together with its
// profile. Authored posts and relationship history are kept.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	userID := middleware.UserID(c)
	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err := h.profileRepository.DeleteProfileByUserID(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.DeleteUser(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile updates the authenticated user's profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.profileRepository.GetProfileByUserID(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	if req.Sex != "" {
		profile.Sex = req.Sex
	}
	if req.Age != 0 {
		profile.Age = req.Age
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.City != "" {
		profile.City = req.City
	}

	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// UploadAvatar stores an avatar image in the image store and records its
// URL on the profile
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	if h.imageStore == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "Image storage is not configured")
	}

	profile, err := h.profileRepository.GetProfileByUserID(middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
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

	objectName := fmt.Sprintf("avatars/%d/%s%s", profile.UserID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	url, err := h.imageStore.Upload(c.Request().Context(), objectName, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile.AvatarURL = url
	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// ListUsers retrieves all users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// ListProfiles retrieves all profiles
func (h *UserHandler) ListProfiles(c echo.Context) error {
	profiles, err := h.profileRepository.GetProfiles()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetUserProfile retrieves a user's profile by the user id
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	profile, err := h.profileRepository.GetProfileByUserID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}
