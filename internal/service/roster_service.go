package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/config"
	"github.com/bagbupads/hiba-pneumo/internal/models"
	"github.com/bagbupads/hiba-pneumo/internal/repository"
	"github.com/bagbupads/hiba-pneumo/internal/store"
	"github.com/bagbupads/hiba-pneumo/internal/triage"
)

// RosterService 医生端患者名单服务接口
type RosterService interface {
	// ListRoster 列出某医生名下患者，危险患者排在前面
	ListRoster(ctx context.Context, req ListRosterRequest) (*ListRosterResponse, error)
}

// rosterService 实现
type rosterService struct {
	patientsRepo repository.PatientsRepository
	vitalsRepo   repository.VitalSignsRepository
	analysesRepo repository.AnalysesRepository
	kv           store.KV
	cfg          *config.Config
	logger       *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(
	patientsRepo repository.PatientsRepository,
	vitalsRepo repository.VitalSignsRepository,
	analysesRepo repository.AnalysesRepository,
	kv store.KV,
	cfg *config.Config,
	logger *zap.Logger,
) RosterService {
	return &rosterService{
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

// ListRosterRequest 查询名单请求
type ListRosterRequest struct {
	DoctorID models.DoctorID
}

// ListRosterResponse 查询名单响应
type ListRosterResponse struct {
	Items []*RosterItemDTO `json:"items"`
	Total int              `json:"total"`
}

// RosterItemDTO 名单项：患者 + 危险标记 + 最近分析摘要
type RosterItemDTO struct {
	Patient  models.Patient `json:"patient"`
	InDanger bool           `json:"in_danger"`

	HealthScore   *int                  `json:"health_score,omitempty"`
	OverallStatus *models.OverallStatus `json:"overall_status,omitempty"`
	LastRecorded  *time.Time            `json:"last_recorded,omitempty"`
}

// ============================================
// 操作实现
// ============================================

// ListRoster 列出某医生名下患者
// 每个患者的危险标记和分析摘要并发评估（上限 RosterConcurrency），单个患者失败不影响整个名单
func (s *rosterService) ListRoster(ctx context.Context, req ListRosterRequest) (*ListRosterResponse, error) {
	if req.DoctorID == "" {
		return nil, fmt.Errorf("doctor_id is required")
	}
	if !models.ValidDoctorID(req.DoctorID) {
		return nil, fmt.Errorf("invalid doctor_id: %s", req.DoctorID)
	}

	patients, err := s.patientsRepo.ListPatientsByDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	items := make([]*RosterItemDTO, len(patients))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency())
	for i := range patients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			items[i] = s.buildRosterItem(ctx, patients[i])
		}(i)
	}
	wg.Wait()

	// 危险患者优先，其余保持姓名序
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].InDanger && !items[b].InDanger
	})

	return &ListRosterResponse{
		Items: items,
		Total: len(items),
	}, nil
}

// buildRosterItem 组装单个名单项，失败时降级为无摘要的安全默认值
func (s *rosterService) buildRosterItem(ctx context.Context, patient models.Patient) *RosterItemDTO {
	item := &RosterItemDTO{Patient: patient}

	item.InDanger = s.dangerFlagFor(ctx, patient.ID)

	analysis, err := s.analysesRepo.GetLatestAnalysis(ctx, patient.ID)
	if err != nil {
		// 无测量记录的患者没有分析，保持摘要为空
		s.logger.Debug("no analysis for roster item",
			zap.String("patient_id", patient.ID),
			zap.Error(err))
		return item
	}

	item.HealthScore = &analysis.HealthScore
	item.OverallStatus = &analysis.OverallStatus
	item.LastRecorded = &analysis.CreatedAt

	return item
}

// dangerFlagFor 读取危险标记：缓存命中直接用，未命中时从最近测量重算并回填
func (s *rosterService) dangerFlagFor(ctx context.Context, patientID string) bool {
	key := s.cfg.Monitoring.Cache.DangerKeyPrefix + patientID + s.cfg.Monitoring.Cache.DangerSuffix

	if cached, err := s.kv.Get(ctx, key); err == nil {
		var flag dangerFlag
		if err := json.Unmarshal([]byte(cached), &flag); err == nil {
			return flag.InDanger
		}
		s.logger.Warn("invalid danger flag cache entry",
			zap.String("patient_id", patientID))
	} else if err != store.ErrMiss {
		s.logger.Warn("danger flag cache read failed",
			zap.String("patient_id", patientID),
			zap.Error(err))
	}

	recent, err := s.vitalsRepo.GetLatestVitalSigns(ctx, patientID, s.cfg.Monitoring.HistoryCount)
	if err != nil {
		s.logger.Warn("failed to evaluate danger flag",
			zap.String("patient_id", patientID),
			zap.Error(err))
		return false
	}

	inDanger := triage.IsInDanger(recent)

	if value, err := json.Marshal(dangerFlag{InDanger: inDanger}); err == nil {
		ttl := time.Duration(s.cfg.Monitoring.Cache.DangerTTL) * time.Second
		if err := s.kv.Set(ctx, key, string(value), ttl); err != nil {
			s.logger.Warn("failed to backfill danger flag cache",
				zap.String("patient_id", patientID),
				zap.Error(err))
		}
	}

	return inDanger
}

func (s *rosterService) concurrency() int {
	if s.cfg.Monitoring.RosterConcurrency > 0 {
		return s.cfg.Monitoring.RosterConcurrency
	}
	return 1
}
