package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/models"
	"github.com/bagbupads/hiba-pneumo/internal/service"
)

// RosterHandler 医生端患者名单处理器
type RosterHandler struct {
	svc    service.RosterService
	logger *zap.Logger
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(svc service.RosterService, logger *zap.Logger) *RosterHandler {
	return &RosterHandler{
		svc:    svc,
		logger: logger,
	}
}

// ListRoster GET /api/v1/roster?doctor_id=
func (h *RosterHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctor_id")

	resp, err := h.svc.ListRoster(r.Context(), service.ListRosterRequest{
		DoctorID: models.DoctorID(doctorID),
	})
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}
