package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/models"
)

func setupMockPatientsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresPatientsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	repo := NewPostgresPatientsRepo(db, logger)

	return db, mock, repo
}

var patientColumns = []string{
	"id", "full_name", "date_of_birth", "gender", "phone_number",
	"emergency_contact", "medical_history", "assigned_doctor", "created_at",
}

func TestCreatePatient_Success(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	ctx := context.Background()
	patientID := uuid.New().String()
	now := time.Now()
	phone := "+212600000000"

	patient := &models.Patient{
		ID:             patientID,
		FullName:       "Hiba Alaoui",
		PhoneNumber:    &phone,
		AssignedDoctor: models.DoctorAllali,
		CreatedAt:      now,
	}

	mock.ExpectExec(`INSERT INTO patients`).
		WithArgs(
			patientID, "Hiba Alaoui", nil, nil, phone,
			nil, nil, "allali", now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreatePatient(ctx, patient)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePatient_MissingName(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	patient := &models.Patient{
		ID:             uuid.New().String(),
		AssignedDoctor: models.DoctorKbida,
	}

	err := repo.CreatePatient(context.Background(), patient)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "full_name is required")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePatient_InvalidDoctor(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	patient := &models.Patient{
		ID:             uuid.New().String(),
		FullName:       "Hiba Alaoui",
		AssignedDoctor: models.DoctorID("unknown"),
	}

	err := repo.CreatePatient(context.Background(), patient)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assigned_doctor")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPatient_Success(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	ctx := context.Background()
	patientID := uuid.New().String()
	now := time.Now()

	rows := sqlmock.NewRows(patientColumns).AddRow(
		patientID, "Hiba Alaoui", "1998-04-12", "F", "+212600000000",
		nil, "Tuberculose pulmonaire", "allali", now,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs(patientID).
		WillReturnRows(rows)

	patient, err := repo.GetPatient(ctx, patientID)

	require.NoError(t, err)
	assert.NotNil(t, patient)
	assert.Equal(t, patientID, patient.ID)
	assert.Equal(t, "Hiba Alaoui", patient.FullName)
	assert.Equal(t, models.DoctorAllali, patient.AssignedDoctor)
	require.NotNil(t, patient.DateOfBirth)
	assert.Equal(t, "1998-04-12", *patient.DateOfBirth)
	assert.Nil(t, patient.EmergencyContact)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPatient_NotFound(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	ctx := context.Background()
	patientID := uuid.New().String()

	mock.ExpectQuery(`SELECT`).
		WithArgs(patientID).
		WillReturnError(sql.ErrNoRows)

	patient, err := repo.GetPatient(ctx, patientID)

	assert.Error(t, err)
	assert.Nil(t, patient)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPatient_EmptyID(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	patient, err := repo.GetPatient(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, patient)
	assert.Contains(t, err.Error(), "patient_id is required")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPatientsByDoctor_Success(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	patientID1 := uuid.New().String()
	patientID2 := uuid.New().String()

	rows := sqlmock.NewRows(patientColumns).
		AddRow(patientID1, "Amine Berrada", nil, "M", nil,
			nil, nil, "kbida", now).
		AddRow(patientID2, "Salma Idrissi", nil, "F", nil,
			nil, nil, "kbida", now)

	mock.ExpectQuery(`SELECT`).
		WithArgs("kbida").
		WillReturnRows(rows)

	patients, err := repo.ListPatientsByDoctor(ctx, models.DoctorKbida)

	require.NoError(t, err)
	assert.Len(t, patients, 2)
	assert.Equal(t, patientID1, patients[0].ID)
	assert.Equal(t, patientID2, patients[1].ID)
	assert.Equal(t, models.DoctorKbida, patients[0].AssignedDoctor)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPatientsByDoctor_Empty(t *testing.T) {
	db, mock, repo := setupMockPatientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("hlawa").
		WillReturnRows(sqlmock.NewRows(patientColumns))

	patients, err := repo.ListPatientsByDoctor(context.Background(), models.DoctorHlawa)

	require.NoError(t, err)
	assert.Empty(t, patients)

	require.NoError(t, mock.ExpectationsWereMet())
}
