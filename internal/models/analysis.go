package models

import (
	"time"
)

// OverallStatus 总体状态（三色）
type OverallStatus string

const (
	StatusGreen  OverallStatus = "green"
	StatusOrange OverallStatus = "orange"
	StatusRed    OverallStatus = "red"
)

// ParameterStatus 单参数分级
// 各参数使用的词表略有差异：体温/心率/血压用 high，SpO2 用 low
type ParameterStatus string

const (
	ParamNormal   ParameterStatus = "normal"
	ParamHigh     ParameterStatus = "high"
	ParamLow      ParameterStatus = "low"
	ParamWarning  ParameterStatus = "warning"
	ParamCritical ParameterStatus = "critical"
)

// AnalysisFields 评分引擎的输出（不含标识，由纯函数计算）
// 未测量的参数：status 保持 normal，message 为 nil
type AnalysisFields struct {
	HealthScore   int           `json:"health_score"`
	OverallStatus OverallStatus `json:"overall_status"`
	DailySummary  string        `json:"daily_summary"`

	TemperatureStatus  ParameterStatus `json:"temperature_status"`
	TemperatureMessage *string         `json:"temperature_message,omitempty"`
	BPStatus           ParameterStatus `json:"bp_status"`
	BPMessage          *string         `json:"bp_message,omitempty"`
	HeartRateStatus    ParameterStatus `json:"heart_rate_status"`
	HeartRateMessage   *string         `json:"heart_rate_message,omitempty"`
	RespiratoryStatus  ParameterStatus `json:"respiratory_status"`
	RespiratoryMessage *string         `json:"respiratory_message,omitempty"`
	SpO2Status         ParameterStatus `json:"spo2_status"`
	SpO2Message        *string         `json:"spo2_message,omitempty"`

	SputumAnalysis    *string `json:"sputum_analysis,omitempty"`
	HemoptysisWarning *string `json:"hemoptysis_warning,omitempty"`
}

// Analysis 持久化的分析记录（对应 analyses 表，与测量 1:1）
// 由来源测量 + 历史确定性推导，创建后不可变；新测量产生新分析，不做原地更新
type Analysis struct {
	ID           string `json:"id" db:"id"`
	VitalSignsID string `json:"vital_signs_id" db:"vital_signs_id"`
	PatientID    string `json:"patient_id" db:"patient_id"`

	AnalysisFields

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
