package models

import (
	"time"
)

// HemoptysisQuantity 咯血量分类（与前端问卷选项一致）
type HemoptysisQuantity string

const (
	HemoptysisTrace    HemoptysisQuantity = "stries"    // 痰中带血丝
	HemoptysisSpoonful HemoptysisQuantity = "cuilleree" // 约一勺
	HemoptysisAbundant HemoptysisQuantity = "abondante" // 大量（超过一勺）
)

// ValidHemoptysisQuantity 校验咯血量取值
func ValidHemoptysisQuantity(q HemoptysisQuantity) bool {
	switch q {
	case HemoptysisTrace, HemoptysisSpoonful, HemoptysisAbundant:
		return true
	}
	return false
}

// SputumColor 痰液颜色
type SputumColor string

const (
	SputumColorClear  SputumColor = "transparente"
	SputumColorWhite  SputumColor = "blanc"
	SputumColorYellow SputumColor = "jaunatre"
	SputumColorGreen  SputumColor = "vert"
	SputumColorBrown  SputumColor = "marron"
)

// ValidSputumColor 校验痰液颜色取值
func ValidSputumColor(c SputumColor) bool {
	switch c {
	case SputumColorClear, SputumColorWhite, SputumColorYellow, SputumColorGreen, SputumColorBrown:
		return true
	}
	return false
}

// SputumAspect 痰液性状
type SputumAspect string

const (
	SputumAspectFluid  SputumAspect = "fluide"
	SputumAspectThick  SputumAspect = "epais"
	SputumAspectSticky SputumAspect = "collant"
)

// ValidSputumAspect 校验痰液性状取值
func ValidSputumAspect(a SputumAspect) bool {
	switch a {
	case SputumAspectFluid, SputumAspectThick, SputumAspectSticky:
		return true
	}
	return false
}

// VitalSigns 单次生命体征测量（对应 vital_signs 表）
// 数值字段为可选（nil 表示本次未测量），创建后不可变
type VitalSigns struct {
	ID        string `json:"id" db:"id"`
	PatientID string `json:"patient_id" db:"patient_id"`

	// 生理参数
	Temperature     *float64 `json:"temperature,omitempty" db:"temperature"`           // °C
	SystolicBP      *int     `json:"systolic_bp,omitempty" db:"systolic_bp"`           // mmHg
	DiastolicBP     *int     `json:"diastolic_bp,omitempty" db:"diastolic_bp"`         // mmHg
	HeartRate       *int     `json:"heart_rate,omitempty" db:"heart_rate"`             // bpm
	RespiratoryRate *int     `json:"respiratory_rate,omitempty" db:"respiratory_rate"` // 次/分
	SpO2            *int     `json:"spo2,omitempty" db:"spo2"`                         // %

	// 吸氧情况
	SpO2OnOxygen   bool     `json:"spo2_on_oxygen" db:"spo2_on_oxygen"`
	OxygenFlowRate *float64 `json:"oxygen_flow_rate,omitempty" db:"oxygen_flow_rate"` // L/min

	// 症状
	HemoptysisPresent  bool               `json:"hemoptysis_present" db:"hemoptysis_present"`
	HemoptysisQuantity HemoptysisQuantity `json:"hemoptysis_quantity,omitempty" db:"hemoptysis_quantity"`
	SputumPresent      bool               `json:"sputum_present" db:"sputum_present"`
	SputumColor        SputumColor        `json:"sputum_color,omitempty" db:"sputum_color"`
	SputumAspect       SputumAspect       `json:"sputum_aspect,omitempty" db:"sputum_aspect"`

	Notes *string `json:"notes,omitempty" db:"notes"`

	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedBy  string    `json:"created_by" db:"created_by"`
}
