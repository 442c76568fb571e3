package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetHandler handles GET /profile, creating the profile with defaults on
// first access.
func (h *ProfileHandler) GetHandler(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	profile, err := h.svc.Get(c.Request().Context(), identity.Subject, identity.DefaultDisplayName())
	if err != nil {
		return mapError(c, err, "profile not found")
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateHandler handles PUT /profile.
func (h *ProfileHandler) UpdateHandler(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	var patch domain.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profile, err := h.svc.Update(c.Request().Context(), identity.Subject, patch)
	if err != nil {
		return mapError(c, err, "profile not found")
	}
	return c.JSON(http.StatusOK, profile)
}
