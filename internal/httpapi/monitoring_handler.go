package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/service"
)

// MonitoringHandler 生命体征提交/查询处理器
type MonitoringHandler struct {
	svc    service.MonitoringService
	logger *zap.Logger
}

// NewMonitoringHandler 创建 MonitoringHandler
func NewMonitoringHandler(svc service.MonitoringService, logger *zap.Logger) *MonitoringHandler {
	return &MonitoringHandler{
		svc:    svc,
		logger: logger,
	}
}

// SubmitVitalSigns POST /api/v1/vital-signs
func (h *MonitoringHandler) SubmitVitalSigns(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitVitalSignsRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.svc.SubmitVitalSigns(r.Context(), req)
	if err != nil {
		h.logger.Warn("submit vital signs failed",
			zap.String("patient_id", req.PatientID),
			zap.Error(err))
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// GetHistory GET /api/v1/vital-signs?patient_id=&count=
func (h *MonitoringHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")
	count := parseInt(r.URL.Query().Get("count"), 0)

	resp, err := h.svc.GetVitalSignsHistory(r.Context(), service.GetVitalSignsHistoryRequest{
		PatientID: patientID,
		Count:     count,
	})
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// GetByID GET /api/v1/vital-signs/{id}
func (h *MonitoringHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	resp, err := h.svc.GetVitalSigns(r.Context(), service.GetVitalSignsRequest{ID: id})
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// GetLatestAnalysis GET /api/v1/patients/{id}/analysis
func (h *MonitoringHandler) GetLatestAnalysis(w http.ResponseWriter, r *http.Request, patientID string) {
	resp, err := h.svc.GetLatestAnalysis(r.Context(), service.GetLatestAnalysisRequest{PatientID: patientID})
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// statusFor 根据错误内容映射 HTTP 状态码
func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "is required"), strings.Contains(msg, "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
