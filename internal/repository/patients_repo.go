package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/models"
)

// PatientsRepository 患者仓库接口
type PatientsRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) error
	GetPatient(ctx context.Context, patientID string) (*models.Patient, error)
	ListPatientsByDoctor(ctx context.Context, doctorID models.DoctorID) ([]models.Patient, error)
}

// PostgresPatientsRepo 患者仓库 PostgreSQL 实现
type PostgresPatientsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresPatientsRepo 创建患者仓库
func NewPostgresPatientsRepo(db *sql.DB, logger *zap.Logger) *PostgresPatientsRepo {
	return &PostgresPatientsRepo{
		db:     db,
		logger: logger,
	}
}

// CreatePatient 创建患者
func (r *PostgresPatientsRepo) CreatePatient(ctx context.Context, patient *models.Patient) error {
	if patient == nil {
		return fmt.Errorf("patient is required")
	}
	if patient.ID == "" {
		return fmt.Errorf("patient id is required")
	}
	if patient.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if !models.ValidDoctorID(patient.AssignedDoctor) {
		return fmt.Errorf("invalid assigned_doctor: %s", patient.AssignedDoctor)
	}

	query := `
		INSERT INTO patients (
			id,
			full_name,
			date_of_birth,
			gender,
			phone_number,
			emergency_contact,
			medical_history,
			assigned_doctor,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FullName,
		patient.DateOfBirth,
		patient.Gender,
		patient.PhoneNumber,
		patient.EmergencyContact,
		patient.MedicalHistory,
		string(patient.AssignedDoctor),
		patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

// GetPatient 根据 id 获取患者
func (r *PostgresPatientsRepo) GetPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	query := `
		SELECT
			id,
			full_name,
			date_of_birth,
			gender,
			phone_number,
			emergency_contact,
			medical_history,
			assigned_doctor,
			created_at
		FROM patients
		WHERE id = $1
	`

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, patientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("patient not found: id=%s", patientID)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return patient, nil
}

// ListPatientsByDoctor 列出某医生名下的所有患者
func (r *PostgresPatientsRepo) ListPatientsByDoctor(ctx context.Context, doctorID models.DoctorID) ([]models.Patient, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("doctor_id is required")
	}

	query := `
		SELECT
			id,
			full_name,
			date_of_birth,
			gender,
			phone_number,
			emergency_contact,
			medical_history,
			assigned_doctor,
			created_at
		FROM patients
		WHERE assigned_doctor = $1
		ORDER BY full_name
	`

	rows, err := r.db.QueryContext(ctx, query, string(doctorID))
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}

	return patients, nil
}

// rowScanner 兼容 *sql.Row 和 *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*models.Patient, error) {
	var patient models.Patient
	var dateOfBirth, gender, phoneNumber, emergencyContact, medicalHistory sql.NullString
	var assignedDoctor string

	err := row.Scan(
		&patient.ID,
		&patient.FullName,
		&dateOfBirth,
		&gender,
		&phoneNumber,
		&emergencyContact,
		&medicalHistory,
		&assignedDoctor,
		&patient.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dateOfBirth.Valid {
		patient.DateOfBirth = &dateOfBirth.String
	}
	if gender.Valid {
		patient.Gender = &gender.String
	}
	if phoneNumber.Valid {
		patient.PhoneNumber = &phoneNumber.String
	}
	if emergencyContact.Valid {
		patient.EmergencyContact = &emergencyContact.String
	}
	if medicalHistory.Valid {
		patient.MedicalHistory = &medicalHistory.String
	}
	patient.AssignedDoctor = models.DoctorID(assignedDoctor)

	return &patient, nil
}
