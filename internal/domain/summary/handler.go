package summary

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/carecall/carecall/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterInternal mounts the service-to-service summarization endpoint.
// The voice pipeline calls it after every completed reminder call.
func (h *Handler) RegisterInternal(internal *echo.Group) {
	internal.POST("/post-call-summary", h.PostCallSummary)
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:patient_id/summaries", h.ListSummaries)
}

type postCallSummaryRequest struct {
	CallLogID string `json:"call_log_id"`
}

func (h *Handler) PostCallSummary(c echo.Context) error {
	var req postCallSummaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Valid call_log_id required"})
	}

	callLogID, err := uuid.Parse(req.CallLogID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Valid call_log_id required"})
	}

	result, err := h.svc.Summarize(c.Request().Context(), callLogID)
	if errors.Is(err, ErrLogNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Call log not found"})
	}
	if err != nil {
		log.Error().Err(err).Str("call_log_id", callLogID.String()).Msg("summarization failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	if result.Skipped {
		return c.JSON(http.StatusOK, echo.Map{"skipped": true, "reason": result.Reason})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"summary_id": result.SummaryID,
		"summary":    result.Digest,
	})
}

func (h *Handler) ListSummaries(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	p := pagination.FromContext(c)
	summaries, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(summaries, total, p.Limit, p.Offset))
}
