package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"profilehub/internal/auth"
	apierrors "profilehub/internal/errors"
	"profilehub/internal/model"
	"profilehub/internal/service"
)

// ProfileHandler handles profile CRUD endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpsertProfileRequest represents a create-or-update profile request.
type UpsertProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Username  string `json:"username" validate:"required"`
}

// ProfileUser is the public view of a profile's linked user.
type ProfileUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProfileResponse is the public view of a profile. The linked user is
// reduced to display fields only.
type ProfileResponse struct {
	ID        uuid.UUID   `json:"id"`
	User      ProfileUser `json:"user"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Username  string      `json:"username"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MessageResponse carries a single status message.
type MessageResponse struct {
	Msg string `json:"msg"`
}

func toProfileResponse(p *model.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		User:      ProfileUser{ID: p.UserID, Name: p.User.Name},
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
	}
}

// Upsert godoc
// @Summary Create or update the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body UpsertProfileRequest true "Profile fields"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierrors.New("Token is not valid"))
	}

	var req UpsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.New("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationResponse(err))
	}

	profile, err := h.profileService.Upsert(c.Request().Context(), userID, req.FirstName, req.LastName, req.Username)
	if err != nil {
		switch err {
		case service.ErrUserNotRegistered:
			return c.JSON(http.StatusBadRequest, apierrors.New("User not registered"))
		case service.ErrUsernameTaken:
			return c.JSON(http.StatusConflict, apierrors.New("Username already taken"))
		}
		log.Printf("upsert profile: %v", err)
		return c.JSON(http.StatusInternalServerError, apierrors.New("Server error"))
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierrors.New("Token is not valid"))
	}

	profile, err := h.profileService.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if err == service.ErrProfileNotFound {
			return c.JSON(http.StatusBadRequest, apierrors.New("There is no profile for this user"))
		}
		log.Printf("get own profile: %v", err)
		return c.JSON(http.StatusInternalServerError, apierrors.New("Server error"))
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// List godoc
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} ProfileResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.profileService.List(c.Request().Context())
	if err != nil {
		log.Printf("list profiles: %v", err)
		return c.JSON(http.StatusInternalServerError, apierrors.New("Server error"))
	}

	resp := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, toProfileResponse(&profiles[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByUser godoc
// @Summary Get a profile by user id
// @Tags profile
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile/user/{userId} [get]
func (h *ProfileHandler) GetByUser(c echo.Context) error {
	// A malformed id means no profile can reference it, same outcome as not
	// found.
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.New("Profile not found"))
	}

	profile, err := h.profileService.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if err == service.ErrProfileNotFound {
			return c.JSON(http.StatusBadRequest, apierrors.New("Profile not found"))
		}
		log.Printf("get profile by user: %v", err)
		return c.JSON(http.StatusInternalServerError, apierrors.New("Server error"))
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Delete godoc
// @Summary Delete the authenticated user's profile and account
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierrors.New("Token is not valid"))
	}

	if err := h.profileService.Delete(c.Request().Context(), userID); err != nil {
		log.Printf("delete profile: %v", err)
		return c.JSON(http.StatusInternalServerError, apierrors.New("Server error"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Msg: "User removed"})
}
