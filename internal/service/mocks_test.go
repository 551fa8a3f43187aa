package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bagbupads/hiba-pneumo/internal/config"
	"github.com/bagbupads/hiba-pneumo/internal/models"
	"github.com/bagbupads/hiba-pneumo/internal/store"
)

// MockPatientsRepo 是 PatientsRepository 的 mock 实现
type MockPatientsRepo struct {
	mock.Mock
}

func (m *MockPatientsRepo) CreatePatient(ctx context.Context, patient *models.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientsRepo) GetPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientsRepo) ListPatientsByDoctor(ctx context.Context, doctorID models.DoctorID) ([]models.Patient, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Patient), args.Error(1)
}

// MockVitalSignsRepo 是 VitalSignsRepository 的 mock 实现
type MockVitalSignsRepo struct {
	mock.Mock
}

func (m *MockVitalSignsRepo) CreateVitalSigns(ctx context.Context, vitals *models.VitalSigns) error {
	args := m.Called(ctx, vitals)
	return args.Error(0)
}

func (m *MockVitalSignsRepo) GetVitalSignsByID(ctx context.Context, id string) (*models.VitalSigns, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VitalSigns), args.Error(1)
}

func (m *MockVitalSignsRepo) GetLatestVitalSigns(ctx context.Context, patientID string, count int) ([]models.VitalSigns, error) {
	args := m.Called(ctx, patientID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VitalSigns), args.Error(1)
}

// MockAnalysesRepo 是 AnalysesRepository 的 mock 实现
type MockAnalysesRepo struct {
	mock.Mock
}

func (m *MockAnalysesRepo) CreateAnalysis(ctx context.Context, analysis *models.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysesRepo) GetAnalysisByVitalSigns(ctx context.Context, vitalSignsID string) (*models.Analysis, error) {
	args := m.Called(ctx, vitalSignsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

func (m *MockAnalysesRepo) GetLatestAnalysis(ctx context.Context, patientID string) (*models.Analysis, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

// fakeKV 内存 KV，测试用
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return val, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Monitoring.HistoryCount = 7
	cfg.Monitoring.Cache.DangerKeyPrefix = "telesuivi:patient:"
	cfg.Monitoring.Cache.DangerSuffix = ":danger"
	cfg.Monitoring.Cache.DangerTTL = 30
	cfg.Monitoring.RosterConcurrency = 4
	return cfg
}
