package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler 支持 http.Handler 接口（用于 pprof 等）
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterMonitoringRoutes 注册测量提交/查询路由
func (r *Router) RegisterMonitoringRoutes(m *MonitoringHandler) {
	// 提交 + 历史
	r.Handle("/api/v1/vital-signs", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			m.SubmitVitalSigns(w, req)
		case http.MethodGet:
			m.GetHistory(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// 导出
	r.Handle("/api/v1/vital-signs/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		m.ExportHistory(w, req)
	})

	// vital-signs/{id}
	r.Handle("/api/v1/vital-signs/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(req.URL.Path, "/api/v1/vital-signs/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		m.GetByID(w, req, id)
	})
}

// RegisterPatientRoutes 注册患者档案路由
func (r *Router) RegisterPatientRoutes(p *PatientHandler, m *MonitoringHandler) {
	r.Handle("/api/v1/patients", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		p.CreatePatient(w, req)
	})

	// patients/{id} 和 patients/{id}/analysis
	r.Handle("/api/v1/patients/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(req.URL.Path, "/api/v1/patients/")
		switch {
		case rest == "":
			w.WriteHeader(http.StatusNotFound)
		case !strings.Contains(rest, "/"):
			p.GetPatient(w, req, rest)
		case strings.HasSuffix(rest, "/analysis"):
			patientID := strings.TrimSuffix(rest, "/analysis")
			if patientID == "" || strings.Contains(patientID, "/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			m.GetLatestAnalysis(w, req, patientID)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

// RegisterRosterRoutes 注册医生端名单路由
func (r *Router) RegisterRosterRoutes(h *RosterHandler) {
	r.Handle("/api/v1/roster", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListRoster(w, req)
	})
}
