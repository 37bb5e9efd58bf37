package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/erpdash/user-directory/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditHandler exposes the directory's mutation trail to administrators.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List handles GET /v1/audit. Route is mounted admin-only.
//
// @Summary      List recent directory mutations
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries to return"
// @Success      200    {object}  listAuditResponse
// @Failure      403    {object}  map[string]string
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	entries, err := h.repo.FindRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	data := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, auditEntryResponse{
			ActorID:   e.ActorID,
			ActorRole: string(e.ActorRole),
			Action:    string(e.Action),
			TargetID:  e.TargetID,
			Timestamp: e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, listAuditResponse{Data: data})
}
