package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/models"
)

// DefaultHistoryCount 未指定条数时的历史查询上限
const DefaultHistoryCount = 30

// VitalSignsRepository 生命体征测量仓库接口
type VitalSignsRepository interface {
	CreateVitalSigns(ctx context.Context, vitals *models.VitalSigns) error
	GetVitalSignsByID(ctx context.Context, id string) (*models.VitalSigns, error)
	// GetLatestVitalSigns 按 recorded_at 倒序返回最近 count 条测量
	GetLatestVitalSigns(ctx context.Context, patientID string, count int) ([]models.VitalSigns, error)
}

// PostgresVitalSignsRepo 生命体征仓库 PostgreSQL 实现
type PostgresVitalSignsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresVitalSignsRepo 创建生命体征仓库
func NewPostgresVitalSignsRepo(db *sql.DB, logger *zap.Logger) *PostgresVitalSignsRepo {
	return &PostgresVitalSignsRepo{
		db:     db,
		logger: logger,
	}
}

const vitalSignsColumns = `
			id,
			patient_id,
			temperature,
			systolic_bp,
			diastolic_bp,
			heart_rate,
			respiratory_rate,
			spo2,
			spo2_on_oxygen,
			oxygen_flow_rate,
			hemoptysis_present,
			hemoptysis_quantity,
			sputum_present,
			sputum_color,
			sputum_aspect,
			notes,
			recorded_at,
			created_by`

// CreateVitalSigns 创建测量记录（记录创建后不可变，仓库不提供更新）
func (r *PostgresVitalSignsRepo) CreateVitalSigns(ctx context.Context, vitals *models.VitalSigns) error {
	if vitals == nil {
		return fmt.Errorf("vitals is required")
	}
	if vitals.ID == "" {
		return fmt.Errorf("vitals id is required")
	}
	if vitals.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}

	query := `
		INSERT INTO vital_signs (` + vitalSignsColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		vitals.ID,
		vitals.PatientID,
		vitals.Temperature,
		vitals.SystolicBP,
		vitals.DiastolicBP,
		vitals.HeartRate,
		vitals.RespiratoryRate,
		vitals.SpO2,
		vitals.SpO2OnOxygen,
		vitals.OxygenFlowRate,
		vitals.HemoptysisPresent,
		nullEnum(string(vitals.HemoptysisQuantity)),
		vitals.SputumPresent,
		nullEnum(string(vitals.SputumColor)),
		nullEnum(string(vitals.SputumAspect)),
		vitals.Notes,
		vitals.RecordedAt,
		vitals.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create vital signs: %w", err)
	}

	return nil
}

// GetVitalSignsByID 根据 id 获取单条测量
func (r *PostgresVitalSignsRepo) GetVitalSignsByID(ctx context.Context, id string) (*models.VitalSigns, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	query := `
		SELECT ` + vitalSignsColumns + `
		FROM vital_signs
		WHERE id = $1
	`

	vitals, err := scanVitalSigns(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vital signs not found: id=%s", id)
		}
		return nil, fmt.Errorf("failed to get vital signs: %w", err)
	}

	return vitals, nil
}

// GetLatestVitalSigns 获取某患者最近的测量历史（recorded_at 倒序）
func (r *PostgresVitalSignsRepo) GetLatestVitalSigns(ctx context.Context, patientID string, count int) ([]models.VitalSigns, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if count <= 0 {
		count = DefaultHistoryCount
	}

	query := `
		SELECT ` + vitalSignsColumns + `
		FROM vital_signs
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, patientID, count)
	if err != nil {
		return nil, fmt.Errorf("failed to list vital signs: %w", err)
	}
	defer rows.Close()

	var result []models.VitalSigns
	for rows.Next() {
		vitals, err := scanVitalSigns(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vital signs: %w", err)
		}
		result = append(result, *vitals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vital signs: %w", err)
	}

	return result, nil
}

func scanVitalSigns(row rowScanner) (*models.VitalSigns, error) {
	var vitals models.VitalSigns
	var temperature, oxygenFlowRate sql.NullFloat64
	var systolicBP, diastolicBP, heartRate, respiratoryRate, spo2 sql.NullInt64
	var hemoptysisQuantity, sputumColor, sputumAspect, notes sql.NullString

	err := row.Scan(
		&vitals.ID,
		&vitals.PatientID,
		&temperature,
		&systolicBP,
		&diastolicBP,
		&heartRate,
		&respiratoryRate,
		&spo2,
		&vitals.SpO2OnOxygen,
		&oxygenFlowRate,
		&vitals.HemoptysisPresent,
		&hemoptysisQuantity,
		&vitals.SputumPresent,
		&sputumColor,
		&sputumAspect,
		&notes,
		&vitals.RecordedAt,
		&vitals.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	if temperature.Valid {
		vitals.Temperature = &temperature.Float64
	}
	if systolicBP.Valid {
		v := int(systolicBP.Int64)
		vitals.SystolicBP = &v
	}
	if diastolicBP.Valid {
		v := int(diastolicBP.Int64)
		vitals.DiastolicBP = &v
	}
	if heartRate.Valid {
		v := int(heartRate.Int64)
		vitals.HeartRate = &v
	}
	if respiratoryRate.Valid {
		v := int(respiratoryRate.Int64)
		vitals.RespiratoryRate = &v
	}
	if spo2.Valid {
		v := int(spo2.Int64)
		vitals.SpO2 = &v
	}
	if oxygenFlowRate.Valid {
		vitals.OxygenFlowRate = &oxygenFlowRate.Float64
	}
	if hemoptysisQuantity.Valid {
		vitals.HemoptysisQuantity = models.HemoptysisQuantity(hemoptysisQuantity.String)
	}
	if sputumColor.Valid {
		vitals.SputumColor = models.SputumColor(sputumColor.String)
	}
	if sputumAspect.Valid {
		vitals.SputumAspect = models.SputumAspect(sputumAspect.String)
	}
	if notes.Valid {
		vitals.Notes = &notes.String
	}

	return &vitals, nil
}

// nullEnum 空枚举值写入 NULL
func nullEnum(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
