package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/service"
)

// ExportHistory GET /api/v1/vital-signs/export?patient_id=&count=
// 返回 XLSX 文件，医生端下载用
func (h *MonitoringHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
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

	data, err := GenerateVitalSignsExport(resp.Items)
	if err != nil {
		h.logger.Error("failed to generate vital signs export",
			zap.String("patient_id", patientID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName(patientID)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
