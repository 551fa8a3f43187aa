package triage

import (
	"github.com/bagbupads/hiba-pneumo/internal/models"
)

// IsInDanger 判断患者是否处于危险状态（医生端列表用的粗粒度信号）
// - 仅评估 recent 中时间最新的一条测量；列表为空返回 false
// - 阈值独立于评分引擎且口径更宽，任一条件命中即危险（纯或逻辑）
func IsInDanger(recent []models.VitalSigns) bool {
	if len(recent) == 0 {
		return false
	}

	latest := &recent[0]
	for i := 1; i < len(recent); i++ {
		if recent[i].RecordedAt.After(latest.RecordedAt) {
			latest = &recent[i]
		}
	}

	if latest.Temperature != nil && (*latest.Temperature < Danger.TempLow || *latest.Temperature > Danger.TempHigh) {
		return true
	}
	if latest.SpO2 != nil && *latest.SpO2 < Danger.SpO2Low {
		return true
	}
	if latest.HeartRate != nil && (*latest.HeartRate < Danger.HRLow || *latest.HeartRate > Danger.HRHigh) {
		return true
	}
	if latest.SystolicBP != nil && (*latest.SystolicBP < Danger.SysLow || *latest.SystolicBP > Danger.SysHigh) {
		return true
	}
	if latest.DiastolicBP != nil && (*latest.DiastolicBP < Danger.DiaLow || *latest.DiastolicBP > Danger.DiaHigh) {
		return true
	}
	if latest.RespiratoryRate != nil && (*latest.RespiratoryRate < Danger.RespLow || *latest.RespiratoryRate > Danger.RespHigh) {
		return true
	}
	if latest.HemoptysisPresent && latest.HemoptysisQuantity == models.HemoptysisAbundant {
		return true
	}

	return false
}
