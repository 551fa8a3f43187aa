package triage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bagbupads/hiba-pneumo/internal/models"
)

// Analyze 对单次测量进行评分分析，返回完整的分析字段
// - current：本次测量；history：同一患者此前的测量（history[0] 为最近一次）
// - 纯函数：不修改入参、无 I/O，可并发调用
// - 所有参数均为可选，缺失的参数跳过，不会出错
// 参数按固定顺序评估：体温 → 心率 → SpO2 → 血压 → 呼吸 → 咯血；
// 每个参数从最重的档位开始匹配，red 状态一旦触发不再降级。
func Analyze(current models.VitalSigns, history []models.VitalSigns) models.AnalysisFields {
	score := 100
	status := models.StatusGreen
	var criticalAlerts []string
	var warnings []string

	var previous *models.VitalSigns
	if len(history) > 0 {
		previous = &history[0]
	}
	_ = previous // 趋势对比扩展点：上一次测量已取出，对比逻辑待实现

	fields := models.AnalysisFields{
		TemperatureStatus: models.ParamNormal,
		BPStatus:          models.ParamNormal,
		HeartRateStatus:   models.ParamNormal,
		RespiratoryStatus: models.ParamNormal,
		SpO2Status:        models.ParamNormal,
	}

	// 1. 体温
	if current.Temperature != nil {
		t := *current.Temperature
		cfg := Scoring.Temperature
		switch {
		case t > cfg.CriticalHigh || t < cfg.CriticalLow:
			fields.TemperatureStatus = models.ParamCritical
			fields.TemperatureMessage = strPtr(fmt.Sprintf("Température critique (%s°C) - Urgence médicale", formatFloat(t)))
			score -= cfg.Penalty.Critical
			criticalAlerts = append(criticalAlerts, fmt.Sprintf("Température %s°C", formatFloat(t)))
			status = models.StatusRed
		case t > cfg.WarningHigh || t < cfg.WarningLow:
			fields.TemperatureStatus = models.ParamWarning
			fields.TemperatureMessage = strPtr(fmt.Sprintf("Température anormale (%s°C) - Surveillance requise", formatFloat(t)))
			score -= cfg.Penalty.Warning
			warnings = append(warnings, fmt.Sprintf("Température %s°C", formatFloat(t)))
			if status != models.StatusRed {
				status = models.StatusOrange
			}
		case t > cfg.MildHigh:
			fields.TemperatureStatus = models.ParamHigh
			fields.TemperatureMessage = strPtr(fmt.Sprintf("Légère fièvre (%s°C)", formatFloat(t)))
			score -= cfg.Penalty.Mild
		default:
			fields.TemperatureMessage = strPtr(fmt.Sprintf("Température normale (%s°C)", formatFloat(t)))
		}
	}

	// 2. 心率
	if current.HeartRate != nil {
		hr := *current.HeartRate
		cfg := Scoring.HeartRate
		switch {
		case hr > cfg.CriticalHigh || hr < cfg.CriticalLow:
			fields.HeartRateStatus = models.ParamCritical
			fields.HeartRateMessage = strPtr(fmt.Sprintf("Fréquence cardiaque critique (%d bpm) - Urgence", hr))
			score -= cfg.Penalty.Critical
			criticalAlerts = append(criticalAlerts, fmt.Sprintf("FC %d bpm", hr))
			status = models.StatusRed
		case hr > cfg.WarningHigh || hr < cfg.WarningLow:
			fields.HeartRateStatus = models.ParamWarning
			fields.HeartRateMessage = strPtr(fmt.Sprintf("Fréquence cardiaque anormale (%d bpm)", hr))
			score -= cfg.Penalty.Warning
			warnings = append(warnings, fmt.Sprintf("FC %d bpm", hr))
			if status != models.StatusRed {
				status = models.StatusOrange
			}
		case hr > cfg.MildHigh || hr < cfg.MildLow:
			fields.HeartRateStatus = models.ParamHigh
			fields.HeartRateMessage = strPtr(fmt.Sprintf("Fréquence cardiaque élevée (%d bpm)", hr))
			score -= cfg.Penalty.Mild
		default:
			fields.HeartRateMessage = strPtr(fmt.Sprintf("Fréquence cardiaque normale (%d bpm)", hr))
		}
	}

	// 3. 血氧饱和度
	if current.SpO2 != nil {
		sp := *current.SpO2
		cfg := Scoring.SpO2
		switch {
		case sp < cfg.Critical:
			fields.SpO2Status = models.ParamCritical
			fields.SpO2Message = strPtr(fmt.Sprintf("SpO₂ critique (%d%%) - Oxygénation insuffisante", sp))
			score -= cfg.Penalty.Critical
			criticalAlerts = append(criticalAlerts, fmt.Sprintf("SpO2 %d%%", sp))
			status = models.StatusRed
		case sp < cfg.Warning:
			fields.SpO2Status = models.ParamWarning
			fields.SpO2Message = strPtr(fmt.Sprintf("SpO₂ basse (%d%%) - Surveillance nécessaire", sp))
			score -= cfg.Penalty.Warning
			warnings = append(warnings, fmt.Sprintf("SpO2 %d%%", sp))
			if status != models.StatusRed {
				status = models.StatusOrange
			}
		case sp < cfg.Mild:
			fields.SpO2Status = models.ParamLow
			fields.SpO2Message = strPtr(fmt.Sprintf("SpO₂ légèrement basse (%d%%)", sp))
			score -= cfg.Penalty.Mild
		default:
			fields.SpO2Message = strPtr(fmt.Sprintf("Oxygénation excellente (%d%%)", sp))
			score += cfg.NormalBonus // 氧合良好加分
		}
	}

	// 4. 血压（收缩压与舒张压都有值时才评估）
	if current.SystolicBP != nil && current.DiastolicBP != nil {
		sys := *current.SystolicBP
		dia := *current.DiastolicBP
		cfg := Scoring.BloodPressure
		switch {
		case sys > cfg.SysCriticalHigh || sys < cfg.SysCriticalLow || dia > cfg.DiaCriticalHigh || dia < cfg.DiaCriticalLow:
			fields.BPStatus = models.ParamCritical
			fields.BPMessage = strPtr(fmt.Sprintf("Tension critique (%d/%d mmHg)", sys, dia))
			score -= cfg.Penalty.Critical
			criticalAlerts = append(criticalAlerts, fmt.Sprintf("TA %d/%d mmHg", sys, dia))
			status = models.StatusRed
		case sys > cfg.SysWarningHigh || sys < cfg.SysWarningLow || dia > cfg.DiaWarningHigh || dia < cfg.DiaWarningLow:
			fields.BPStatus = models.ParamWarning
			fields.BPMessage = strPtr(fmt.Sprintf("Tension anormale (%d/%d mmHg)", sys, dia))
			score -= cfg.Penalty.Warning
			warnings = append(warnings, fmt.Sprintf("TA %d/%d mmHg", sys, dia))
			if status != models.StatusRed {
				status = models.StatusOrange
			}
		case sys > cfg.SysMildHigh || dia > cfg.DiaMildHigh:
			fields.BPStatus = models.ParamHigh
			fields.BPMessage = strPtr(fmt.Sprintf("Tension élevée (%d/%d mmHg)", sys, dia))
			score -= cfg.Penalty.Mild
		default:
			fields.BPMessage = strPtr(fmt.Sprintf("Tension normale (%d/%d mmHg)", sys, dia))
		}
	}

	// 5. 呼吸频率
	if current.RespiratoryRate != nil {
		rr := *current.RespiratoryRate
		cfg := Scoring.Respiratory
		switch {
		case rr > cfg.CriticalHigh || rr < cfg.CriticalLow:
			fields.RespiratoryStatus = models.ParamCritical
			fields.RespiratoryMessage = strPtr(fmt.Sprintf("Fréquence respiratoire critique (%d/min)", rr))
			score -= cfg.Penalty.Critical
			criticalAlerts = append(criticalAlerts, fmt.Sprintf("FR %d/min", rr))
			status = models.StatusRed
		case rr > cfg.WarningHigh || rr < cfg.WarningLow:
			fields.RespiratoryStatus = models.ParamWarning
			fields.RespiratoryMessage = strPtr(fmt.Sprintf("Fréquence respiratoire anormale (%d/min)", rr))
			score -= cfg.Penalty.Warning
			warnings = append(warnings, fmt.Sprintf("FR %d/min", rr))
			if status != models.StatusRed {
				status = models.StatusOrange
			}
		default:
			fields.RespiratoryMessage = strPtr(fmt.Sprintf("Respiration normale (%d/min)", rr))
		}
	}

	// 6. 咯血（恒定为 critical）
	if current.HemoptysisPresent {
		score -= Scoring.HemoptysisPenalty
		status = models.StatusRed
		fields.HemoptysisWarning = strPtr("ALERTE : Présence de sang dans les expectorations.")
		criticalAlerts = append(criticalAlerts, "Hémoptysie")
	}

	// 咯血之外的咳痰仅记录观察文本，不影响评分与状态
	if current.SputumPresent {
		fields.SputumAnalysis = strPtr("Présence d'expectorations.")
	}

	// 汇总
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	summary := "Vos paramètres vitaux sont dans les normes."
	switch {
	case len(criticalAlerts) > 0:
		summary = fmt.Sprintf("URGENCE : %s. Consultation médicale immédiate nécessaire.", strings.Join(criticalAlerts, ", "))
	case len(warnings) > 0:
		summary = fmt.Sprintf("Vigilance : %s. Surveillance médicale recommandée.", strings.Join(warnings, ", "))
	case score >= 90:
		summary = "Excellent état général. Paramètres vitaux stables."
	case score >= 70:
		summary = "État général correct. Quelques variations mineures."
	}

	fields.HealthScore = score
	fields.OverallStatus = status
	fields.DailySummary = summary

	return fields
}

// formatFloat 按原始值输出体温（40 → "40"，39.8 → "39.8"）
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func strPtr(s string) *string {
	return &s
}
