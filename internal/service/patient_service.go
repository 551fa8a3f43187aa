package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/models"
	"github.com/bagbupads/hiba-pneumo/internal/repository"
)

// PatientService 患者档案服务接口
type PatientService interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (*CreatePatientResponse, error)
	GetPatient(ctx context.Context, req GetPatientRequest) (*GetPatientResponse, error)
}

// patientService 实现
type patientService struct {
	patientsRepo repository.PatientsRepository
	logger       *zap.Logger
}

// NewPatientService 创建 PatientService 实例
func NewPatientService(patientsRepo repository.PatientsRepository, logger *zap.Logger) PatientService {
	return &patientService{
		patientsRepo: patientsRepo,
		logger:       logger,
	}
}

// ============================================
// Request/Response DTOs
// ============================================

// CreatePatientRequest 创建患者请求
type CreatePatientRequest struct {
	FullName         string          `json:"full_name"`
	DateOfBirth      *string         `json:"date_of_birth,omitempty"`
	Gender           *string         `json:"gender,omitempty"`
	PhoneNumber      *string         `json:"phone_number,omitempty"`
	EmergencyContact *string         `json:"emergency_contact,omitempty"`
	MedicalHistory   *string         `json:"medical_history,omitempty"`
	AssignedDoctor   models.DoctorID `json:"assigned_doctor"`
}

// CreatePatientResponse 创建患者响应
type CreatePatientResponse struct {
	Patient *models.Patient `json:"patient"`
}

// GetPatientRequest 查询患者请求
type GetPatientRequest struct {
	PatientID string
}

// GetPatientResponse 查询患者响应
type GetPatientResponse struct {
	Patient *models.Patient `json:"patient"`
}

// ============================================
// 操作实现
// ============================================

// CreatePatient 创建患者档案
func (s *patientService) CreatePatient(ctx context.Context, req CreatePatientRequest) (*CreatePatientResponse, error) {
	if req.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if !models.ValidDoctorID(req.AssignedDoctor) {
		return nil, fmt.Errorf("invalid assigned_doctor: %s", req.AssignedDoctor)
	}

	patient := &models.Patient{
		ID:               uuid.New().String(),
		FullName:         req.FullName,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		PhoneNumber:      req.PhoneNumber,
		EmergencyContact: req.EmergencyContact,
		MedicalHistory:   req.MedicalHistory,
		AssignedDoctor:   req.AssignedDoctor,
		CreatedAt:        time.Now(),
	}

	if err := s.patientsRepo.CreatePatient(ctx, patient); err != nil {
		return nil, err
	}

	s.logger.Info("patient created",
		zap.String("patient_id", patient.ID),
		zap.String("assigned_doctor", string(patient.AssignedDoctor)))

	return &CreatePatientResponse{Patient: patient}, nil
}

// GetPatient 查询患者档案
func (s *patientService) GetPatient(ctx context.Context, req GetPatientRequest) (*GetPatientResponse, error) {
	if req.PatientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	patient, err := s.patientsRepo.GetPatient(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	return &GetPatientResponse{Patient: patient}, nil
}
