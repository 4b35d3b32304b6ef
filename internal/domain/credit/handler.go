package credit

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carecall/carecall/internal/platform/auth"
	"github.com/carecall/carecall/pkg/pagination"
)

// CaregiverResolver maps an authenticated account to its caregiver id.
type CaregiverResolver interface {
	ResolveCaregiverID(ctx context.Context, authUserID string) (uuid.UUID, error)
}

type Handler struct {
	svc      *Service
	resolver CaregiverResolver
}

func NewHandler(svc *Service, resolver CaregiverResolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/credits/balance", h.GetBalance)
	api.GET("/credits/usage", h.ListUsage)
	api.GET("/credits/purchases", h.ListPurchases)
}

func (h *Handler) caregiverID(c echo.Context) (uuid.UUID, error) {
	authUserID := auth.UserIDFromContext(c.Request().Context())
	if authUserID == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	id, err := h.resolver.ResolveCaregiverID(c.Request().Context(), authUserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "caregiver not found")
	}
	return id, nil
}

func (h *Handler) GetBalance(c echo.Context) error {
	cgID, err := h.caregiverID(c)
	if err != nil {
		return err
	}
	b, err := h.svc.GetBalance(c.Request().Context(), cgID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListUsage(c echo.Context) error {
	cgID, err := h.caregiverID(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	usage, total, err := h.svc.ListUsage(c.Request().Context(), cgID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(usage, total, p.Limit, p.Offset))
}

func (h *Handler) ListPurchases(c echo.Context) error {
	cgID, err := h.caregiverID(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	purchases, total, err := h.svc.ListPurchases(c.Request().Context(), cgID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(purchases, total, p.Limit, p.Offset))
}
