package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/config"
	"github.com/bagbupads/hiba-pneumo/internal/models"
	"github.com/bagbupads/hiba-pneumo/internal/repository"
	"github.com/bagbupads/hiba-pneumo/internal/store"
	"github.com/bagbupads/hiba-pneumo/internal/triage"
)

// MonitoringService 生命体征监测服务接口
type MonitoringService interface {
	// SubmitVitalSigns 提交一次测量：评分、持久化、刷新危险标记缓存
	SubmitVitalSigns(ctx context.Context, req SubmitVitalSignsRequest) (*SubmitVitalSignsResponse, error)

	// 查询
	GetVitalSignsHistory(ctx context.Context, req GetVitalSignsHistoryRequest) (*GetVitalSignsHistoryResponse, error)
	GetVitalSigns(ctx context.Context, req GetVitalSignsRequest) (*GetVitalSignsResponse, error)
	GetLatestAnalysis(ctx context.Context, req GetLatestAnalysisRequest) (*GetLatestAnalysisResponse, error)
}

// monitoringService 实现
type monitoringService struct {
	patientsRepo repository.PatientsRepository
	vitalsRepo   repository.VitalSignsRepository
	analysesRepo repository.AnalysesRepository
	kv           store.KV
	cfg          *config.Config
	logger       *zap.Logger
}

// NewMonitoringService 创建 MonitoringService 实例
func NewMonitoringService(
	patientsRepo repository.PatientsRepository,
	vitalsRepo repository.VitalSignsRepository,
	analysesRepo repository.AnalysesRepository,
	kv store.KV,
	cfg *config.Config,
	logger *zap.Logger,
) MonitoringService {
	return &monitoringService{
		patientsRepo: patientsRepo,
		vitalsRepo:   vitalsRepo,
		analysesRepo: analysesRepo,
		kv:           kv,
		cfg:          cfg,
		logger:       logger,
	}
}

// ============================================
// Request/Response DTOs
// ============================================

// SubmitVitalSignsRequest 提交测量请求
// 数值字段可选（nil 表示未测量），枚举字段仅在对应 present 为 true 时校验
type SubmitVitalSignsRequest struct {
	PatientID string `json:"patient_id"`

	Temperature     *float64 `json:"temperature,omitempty"`
	SystolicBP      *int     `json:"systolic_bp,omitempty"`
	DiastolicBP     *int     `json:"diastolic_bp,omitempty"`
	HeartRate       *int     `json:"heart_rate,omitempty"`
	RespiratoryRate *int     `json:"respiratory_rate,omitempty"`
	SpO2            *int     `json:"spo2,omitempty"`

	SpO2OnOxygen   bool     `json:"spo2_on_oxygen"`
	OxygenFlowRate *float64 `json:"oxygen_flow_rate,omitempty"`

	HemoptysisPresent  bool                      `json:"hemoptysis_present"`
	HemoptysisQuantity models.HemoptysisQuantity `json:"hemoptysis_quantity,omitempty"`
	SputumPresent      bool                      `json:"sputum_present"`
	SputumColor        models.SputumColor        `json:"sputum_color,omitempty"`
	SputumAspect       models.SputumAspect       `json:"sputum_aspect,omitempty"`

	Notes *string `json:"notes,omitempty"`

	// RecordedAt 为空时取服务器当前时间
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
	CreatedBy  string     `json:"created_by"`
}

// SubmitVitalSignsResponse 提交测量响应：持久化后的测量与即时分析结果
type SubmitVitalSignsResponse struct {
	VitalSigns *models.VitalSigns `json:"vital_signs"`
	Analysis   *models.Analysis   `json:"analysis"`
}

// GetVitalSignsHistoryRequest 查询测量历史请求
type GetVitalSignsHistoryRequest struct {
	PatientID string
	Count     int // <=0 使用仓库默认上限
}

// GetVitalSignsHistoryResponse 查询测量历史响应（recorded_at 倒序）
type GetVitalSignsHistoryResponse struct {
	Items []models.VitalSigns `json:"items"`
	Total int                 `json:"total"`
}

// GetVitalSignsRequest 查询单条测量请求
type GetVitalSignsRequest struct {
	ID string
}

// GetVitalSignsResponse 查询单条测量响应
type GetVitalSignsResponse struct {
	VitalSigns *models.VitalSigns `json:"vital_signs"`
	Analysis   *models.Analysis   `json:"analysis,omitempty"`
}

// GetLatestAnalysisRequest 查询最近分析请求
type GetLatestAnalysisRequest struct {
	PatientID string
}

// GetLatestAnalysisResponse 查询最近分析响应
type GetLatestAnalysisResponse struct {
	Analysis *models.Analysis `json:"analysis"`
}

// dangerFlag 危险标记缓存值
type dangerFlag struct {
	InDanger bool `json:"in_danger"`
}

// ============================================
// 操作实现
// ============================================

// SubmitVitalSigns 提交一次测量
// 流程：校验 → 取历史（插入前，history[0] 为上一次测量）→ 评分 → 写测量 → 写分析 → 刷新危险缓存
func (s *monitoringService) SubmitVitalSigns(ctx context.Context, req SubmitVitalSignsRequest) (*SubmitVitalSignsResponse, error) {
	if req.PatientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if err := validateSymptoms(req); err != nil {
		return nil, err
	}

	// 患者必须存在
	if _, err := s.patientsRepo.GetPatient(ctx, req.PatientID); err != nil {
		return nil, err
	}

	now := time.Now()
	recordedAt := now
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = req.PatientID
	}

	vitals := &models.VitalSigns{
		ID:                 uuid.New().String(),
		PatientID:          req.PatientID,
		Temperature:        req.Temperature,
		SystolicBP:         req.SystolicBP,
		DiastolicBP:        req.DiastolicBP,
		HeartRate:          req.HeartRate,
		RespiratoryRate:    req.RespiratoryRate,
		SpO2:               req.SpO2,
		SpO2OnOxygen:       req.SpO2OnOxygen,
		OxygenFlowRate:     req.OxygenFlowRate,
		HemoptysisPresent:  req.HemoptysisPresent,
		HemoptysisQuantity: req.HemoptysisQuantity,
		SputumPresent:      req.SputumPresent,
		SputumColor:        req.SputumColor,
		SputumAspect:       req.SputumAspect,
		Notes:              req.Notes,
		RecordedAt:         recordedAt,
		CreatedBy:          createdBy,
	}

	// 插入前取历史，保证 history 不含本次测量
	history, err := s.vitalsRepo.GetLatestVitalSigns(ctx, req.PatientID, s.cfg.Monitoring.HistoryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	fields := triage.Analyze(*vitals, history)

	if err := s.vitalsRepo.CreateVitalSigns(ctx, vitals); err != nil {
		return nil, err
	}

	analysis := &models.Analysis{
		ID:             uuid.New().String(),
		VitalSignsID:   vitals.ID,
		PatientID:      vitals.PatientID,
		AnalysisFields: fields,
		CreatedAt:      now,
	}
	if err := s.analysesRepo.CreateAnalysis(ctx, analysis); err != nil {
		return nil, err
	}

	s.logger.Info("vital signs submitted",
		zap.String("patient_id", vitals.PatientID),
		zap.String("vital_signs_id", vitals.ID),
		zap.Int("health_score", fields.HealthScore),
		zap.String("overall_status", string(fields.OverallStatus)))

	// 缓存刷新失败不影响提交结果
	s.refreshDangerFlag(ctx, vitals.PatientID, append([]models.VitalSigns{*vitals}, history...))

	return &SubmitVitalSignsResponse{
		VitalSigns: vitals,
		Analysis:   analysis,
	}, nil
}

// GetVitalSignsHistory 查询某患者的测量历史
func (s *monitoringService) GetVitalSignsHistory(ctx context.Context, req GetVitalSignsHistoryRequest) (*GetVitalSignsHistoryResponse, error) {
	if req.PatientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	items, err := s.vitalsRepo.GetLatestVitalSigns(ctx, req.PatientID, req.Count)
	if err != nil {
		return nil, err
	}

	return &GetVitalSignsHistoryResponse{
		Items: items,
		Total: len(items),
	}, nil
}

// GetVitalSigns 查询单条测量及其分析
func (s *monitoringService) GetVitalSigns(ctx context.Context, req GetVitalSignsRequest) (*GetVitalSignsResponse, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	vitals, err := s.vitalsRepo.GetVitalSignsByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// 分析缺失时仍返回测量本身
	analysis, err := s.analysesRepo.GetAnalysisByVitalSigns(ctx, req.ID)
	if err != nil {
		s.logger.Warn("analysis not available for vital signs",
			zap.String("vital_signs_id", req.ID),
			zap.Error(err))
		analysis = nil
	}

	return &GetVitalSignsResponse{
		VitalSigns: vitals,
		Analysis:   analysis,
	}, nil
}

// GetLatestAnalysis 查询某患者最近一次分析
func (s *monitoringService) GetLatestAnalysis(ctx context.Context, req GetLatestAnalysisRequest) (*GetLatestAnalysisResponse, error) {
	if req.PatientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	analysis, err := s.analysesRepo.GetLatestAnalysis(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	return &GetLatestAnalysisResponse{Analysis: analysis}, nil
}

// refreshDangerFlag 重算并写入危险标记缓存
func (s *monitoringService) refreshDangerFlag(ctx context.Context, patientID string, recent []models.VitalSigns) {
	inDanger := triage.IsInDanger(recent)

	value, err := json.Marshal(dangerFlag{InDanger: inDanger})
	if err != nil {
		s.logger.Warn("failed to marshal danger flag",
			zap.String("patient_id", patientID),
			zap.Error(err))
		return
	}

	key := s.dangerKey(patientID)
	ttl := time.Duration(s.cfg.Monitoring.Cache.DangerTTL) * time.Second
	if err := s.kv.Set(ctx, key, string(value), ttl); err != nil {
		s.logger.Warn("failed to cache danger flag",
			zap.String("patient_id", patientID),
			zap.Error(err))
	}
}

func (s *monitoringService) dangerKey(patientID string) string {
	return s.cfg.Monitoring.Cache.DangerKeyPrefix + patientID + s.cfg.Monitoring.Cache.DangerSuffix
}

// validateSymptoms 校验症状枚举取值（仅在对应标记为 true 时要求）
func validateSymptoms(req SubmitVitalSignsRequest) error {
	if req.HemoptysisPresent && req.HemoptysisQuantity != "" {
		if !models.ValidHemoptysisQuantity(req.HemoptysisQuantity) {
			return fmt.Errorf("invalid hemoptysis_quantity: %s", req.HemoptysisQuantity)
		}
	}
	if req.SputumPresent {
		if req.SputumColor != "" && !models.ValidSputumColor(req.SputumColor) {
			return fmt.Errorf("invalid sputum_color: %s", req.SputumColor)
		}
		if req.SputumAspect != "" && !models.ValidSputumAspect(req.SputumAspect) {
			return fmt.Errorf("invalid sputum_aspect: %s", req.SputumAspect)
		}
	}
	return nil
}
