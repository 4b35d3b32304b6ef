package setup

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/carecall/carecall/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/setup-patient", h.SetupPatient)
}

func (h *Handler) SetupPatient(c echo.Context) error {
	ctx := c.Request().Context()
	authUserID := auth.UserIDFromContext(ctx)
	if authUserID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Authentication required"})
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := h.svc.Provision(ctx, authUserID, auth.UserEmailFromContext(ctx), &req)
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": verr.Message})
	}
	if err != nil {
		log.Error().Err(err).Str("auth_user_id", authUserID).Msg("patient setup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":              true,
		"patient_id":           result.PatientID,
		"caregiver_id":         result.CaregiverID,
		"medication_id":        result.MedicationID,
		"first_call_scheduled": result.FirstCallScheduled.Format(time.RFC3339),
		"message":              fmt.Sprintf("Setup complete! First reminder call scheduled for %s", result.FirstCallScheduled.Format("Jan 2, 2006 at 15:04")),
	})
}
