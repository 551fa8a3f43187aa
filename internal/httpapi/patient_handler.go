package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/service"
)

// PatientHandler 患者档案处理器
type PatientHandler struct {
	svc    service.PatientService
	logger *zap.Logger
}

// NewPatientHandler 创建 PatientHandler
func NewPatientHandler(svc service.PatientService, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{
		svc:    svc,
		logger: logger,
	}
}

// CreatePatient POST /api/v1/patients
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePatientRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.svc.CreatePatient(r.Context(), req)
	if err != nil {
		h.logger.Warn("create patient failed", zap.Error(err))
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// GetPatient GET /api/v1/patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request, patientID string) {
	resp, err := h.svc.GetPatient(r.Context(), service.GetPatientRequest{PatientID: patientID})
	if err != nil {
		writeJSON(w, statusFor(err), Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}
