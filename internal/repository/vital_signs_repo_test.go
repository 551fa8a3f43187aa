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

func setupMockVitalSignsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresVitalSignsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	repo := NewPostgresVitalSignsRepo(db, logger)

	return db, mock, repo
}

var vitalSignsTestColumns = []string{
	"id", "patient_id", "temperature", "systolic_bp", "diastolic_bp",
	"heart_rate", "respiratory_rate", "spo2", "spo2_on_oxygen", "oxygen_flow_rate",
	"hemoptysis_present", "hemoptysis_quantity", "sputum_present", "sputum_color",
	"sputum_aspect", "notes", "recorded_at", "created_by",
}

func TestCreateVitalSigns_Success(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New().String()
	patientID := uuid.New().String()
	now := time.Now()
	temp := 37.2
	hr := 78

	vitals := &models.VitalSigns{
		ID:          id,
		PatientID:   patientID,
		Temperature: &temp,
		HeartRate:   &hr,
		RecordedAt:  now,
		CreatedBy:   patientID,
	}

	mock.ExpectExec(`INSERT INTO vital_signs`).
		WithArgs(
			id, patientID, temp, nil, nil,
			hr, nil, nil, false, nil,
			false, nil, false, nil, nil,
			nil, now, patientID,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateVitalSigns(ctx, vitals)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVitalSigns_EnumsStoredWhenSet(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New().String()
	patientID := uuid.New().String()
	now := time.Now()

	vitals := &models.VitalSigns{
		ID:                 id,
		PatientID:          patientID,
		HemoptysisPresent:  true,
		HemoptysisQuantity: models.HemoptysisAbundant,
		SputumPresent:      true,
		SputumColor:        models.SputumColorGreen,
		SputumAspect:       models.SputumAspectThick,
		RecordedAt:         now,
		CreatedBy:          patientID,
	}

	mock.ExpectExec(`INSERT INTO vital_signs`).
		WithArgs(
			id, patientID, nil, nil, nil,
			nil, nil, nil, false, nil,
			true, "abondante", true, "vert", "epais",
			nil, now, patientID,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateVitalSigns(ctx, vitals)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVitalSigns_MissingPatientID(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	vitals := &models.VitalSigns{
		ID: uuid.New().String(),
	}

	err := repo.CreateVitalSigns(context.Background(), vitals)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "patient_id is required")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVitalSignsByID_Success(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	ctx := context.Background()
	id := uuid.New().String()
	patientID := uuid.New().String()
	now := time.Now()

	rows := sqlmock.NewRows(vitalSignsTestColumns).AddRow(
		id, patientID, 38.4, 135, 82,
		92, 18, 95, false, nil,
		false, nil, true, "jaunatre", "epais",
		nil, now, patientID,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs(id).
		WillReturnRows(rows)

	vitals, err := repo.GetVitalSignsByID(ctx, id)

	require.NoError(t, err)
	assert.NotNil(t, vitals)
	assert.Equal(t, id, vitals.ID)
	assert.Equal(t, patientID, vitals.PatientID)
	require.NotNil(t, vitals.Temperature)
	assert.Equal(t, 38.4, *vitals.Temperature)
	require.NotNil(t, vitals.SystolicBP)
	assert.Equal(t, 135, *vitals.SystolicBP)
	assert.Nil(t, vitals.OxygenFlowRate)
	assert.Equal(t, models.SputumColorYellow, vitals.SputumColor)
	assert.Equal(t, models.SputumAspectThick, vitals.SputumAspect)
	assert.Empty(t, vitals.HemoptysisQuantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVitalSignsByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	id := uuid.New().String()

	mock.ExpectQuery(`SELECT`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	vitals, err := repo.GetVitalSignsByID(context.Background(), id)

	assert.Error(t, err)
	assert.Nil(t, vitals)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestVitalSigns_Success(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	ctx := context.Background()
	patientID := uuid.New().String()
	now := time.Now()

	rows := sqlmock.NewRows(vitalSignsTestColumns).
		AddRow(uuid.New().String(), patientID, 37.1, nil, nil,
			72, nil, 97, false, nil,
			false, nil, false, nil, nil,
			nil, now, patientID).
		AddRow(uuid.New().String(), patientID, 36.9, nil, nil,
			70, nil, 98, false, nil,
			false, nil, false, nil, nil,
			nil, now.Add(-24*time.Hour), patientID)

	mock.ExpectQuery(`SELECT`).
		WithArgs(patientID, 7).
		WillReturnRows(rows)

	result, err := repo.GetLatestVitalSigns(ctx, patientID, 7)

	require.NoError(t, err)
	assert.Len(t, result, 2)
	require.NotNil(t, result[0].Temperature)
	assert.Equal(t, 37.1, *result[0].Temperature)
	assert.True(t, result[0].RecordedAt.After(result[1].RecordedAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestVitalSigns_DefaultCount(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	patientID := uuid.New().String()

	// count<=0 时退回默认上限
	mock.ExpectQuery(`SELECT`).
		WithArgs(patientID, DefaultHistoryCount).
		WillReturnRows(sqlmock.NewRows(vitalSignsTestColumns))

	result, err := repo.GetLatestVitalSigns(context.Background(), patientID, 0)

	require.NoError(t, err)
	assert.Empty(t, result)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestVitalSigns_EmptyPatientID(t *testing.T) {
	db, mock, repo := setupMockVitalSignsDB(t)
	defer db.Close()

	result, err := repo.GetLatestVitalSigns(context.Background(), "", 7)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "patient_id is required")

	require.NoError(t, mock.ExpectationsWereMet())
}
