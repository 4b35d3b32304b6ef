package caregiver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carecall/carecall/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/me", h.GetMe)
}

// GetMe returns the caregiver profile for the authenticated account.
func (h *Handler) GetMe(c echo.Context) error {
	authUserID := auth.UserIDFromContext(c.Request().Context())
	if authUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	cg, err := h.svc.GetByAuthUserID(c.Request().Context(), authUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "caregiver not found")
	}
	return c.JSON(http.StatusOK, cg)
}
