package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/bagbupads/hiba-pneumo/internal/models"
)

// AnalysesRepository 分析结果仓库接口
type AnalysesRepository interface {
	CreateAnalysis(ctx context.Context, analysis *models.Analysis) error
	GetAnalysisByVitalSigns(ctx context.Context, vitalSignsID string) (*models.Analysis, error)
	// GetLatestAnalysis 获取某患者最近一次分析（created_at 倒序取第一条）
	GetLatestAnalysis(ctx context.Context, patientID string) (*models.Analysis, error)
}

// PostgresAnalysesRepo 分析结果仓库 PostgreSQL 实现
type PostgresAnalysesRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresAnalysesRepo 创建分析结果仓库
func NewPostgresAnalysesRepo(db *sql.DB, logger *zap.Logger) *PostgresAnalysesRepo {
	return &PostgresAnalysesRepo{
		db:     db,
		logger: logger,
	}
}

const analysisColumns = `
			id,
			vital_signs_id,
			patient_id,
			health_score,
			overall_status,
			daily_summary,
			temperature_status,
			temperature_message,
			bp_status,
			bp_message,
			heart_rate_status,
			heart_rate_message,
			respiratory_status,
			respiratory_message,
			spo2_status,
			spo2_message,
			sputum_analysis,
			hemoptysis_warning,
			created_at`

// CreateAnalysis 创建分析记录（与测量 1:1，不做更新）
func (r *PostgresAnalysesRepo) CreateAnalysis(ctx context.Context, analysis *models.Analysis) error {
	if analysis == nil {
		return fmt.Errorf("analysis is required")
	}
	if analysis.ID == "" {
		return fmt.Errorf("analysis id is required")
	}
	if analysis.VitalSignsID == "" {
		return fmt.Errorf("vital_signs_id is required")
	}
	if analysis.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}

	query := `
		INSERT INTO analyses (` + analysisColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		analysis.ID,
		analysis.VitalSignsID,
		analysis.PatientID,
		analysis.HealthScore,
		string(analysis.OverallStatus),
		analysis.DailySummary,
		string(analysis.TemperatureStatus),
		analysis.TemperatureMessage,
		string(analysis.BPStatus),
		analysis.BPMessage,
		string(analysis.HeartRateStatus),
		analysis.HeartRateMessage,
		string(analysis.RespiratoryStatus),
		analysis.RespiratoryMessage,
		string(analysis.SpO2Status),
		analysis.SpO2Message,
		analysis.SputumAnalysis,
		analysis.HemoptysisWarning,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

// GetAnalysisByVitalSigns 获取某次测量对应的分析
func (r *PostgresAnalysesRepo) GetAnalysisByVitalSigns(ctx context.Context, vitalSignsID string) (*models.Analysis, error) {
	if vitalSignsID == "" {
		return nil, fmt.Errorf("vital_signs_id is required")
	}

	query := `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE vital_signs_id = $1
	`

	analysis, err := scanAnalysis(r.db.QueryRowContext(ctx, query, vitalSignsID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analysis not found: vital_signs_id=%s", vitalSignsID)
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return analysis, nil
}

// GetLatestAnalysis 获取某患者最近一次分析
func (r *PostgresAnalysesRepo) GetLatestAnalysis(ctx context.Context, patientID string) (*models.Analysis, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	query := `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	analysis, err := scanAnalysis(r.db.QueryRowContext(ctx, query, patientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analysis not found: patient_id=%s", patientID)
		}
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}

	return analysis, nil
}

func scanAnalysis(row rowScanner) (*models.Analysis, error) {
	var analysis models.Analysis
	var overallStatus string
	var tempStatus, bpStatus, hrStatus, respStatus, spo2Status string
	var tempMsg, bpMsg, hrMsg, respMsg, spo2Msg sql.NullString
	var sputumAnalysis, hemoptysisWarning sql.NullString

	err := row.Scan(
		&analysis.ID,
		&analysis.VitalSignsID,
		&analysis.PatientID,
		&analysis.HealthScore,
		&overallStatus,
		&analysis.DailySummary,
		&tempStatus,
		&tempMsg,
		&bpStatus,
		&bpMsg,
		&hrStatus,
		&hrMsg,
		&respStatus,
		&respMsg,
		&spo2Status,
		&spo2Msg,
		&sputumAnalysis,
		&hemoptysisWarning,
		&analysis.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	analysis.OverallStatus = models.OverallStatus(overallStatus)
	analysis.TemperatureStatus = models.ParameterStatus(tempStatus)
	analysis.BPStatus = models.ParameterStatus(bpStatus)
	analysis.HeartRateStatus = models.ParameterStatus(hrStatus)
	analysis.RespiratoryStatus = models.ParameterStatus(respStatus)
	analysis.SpO2Status = models.ParameterStatus(spo2Status)

	if tempMsg.Valid {
		analysis.TemperatureMessage = &tempMsg.String
	}
	if bpMsg.Valid {
		analysis.BPMessage = &bpMsg.String
	}
	if hrMsg.Valid {
		analysis.HeartRateMessage = &hrMsg.String
	}
	if respMsg.Valid {
		analysis.RespiratoryMessage = &respMsg.String
	}
	if spo2Msg.Valid {
		analysis.SpO2Message = &spo2Msg.String
	}
	if sputumAnalysis.Valid {
		analysis.SputumAnalysis = &sputumAnalysis.String
	}
	if hemoptysisWarning.Valid {
		analysis.HemoptysisWarning = &hemoptysisWarning.String
	}

	return &analysis, nil
}
