package triage

// 本包维护三套相互独立的阈值表：
// - Scoring：评分引擎（Analyze）
// - Danger：危险状态判定（IsInDanger），口径更宽
// - Bands：展示色带（StatusColor）
// 三套阈值对同一生理参数的边界不同，这是产品既有口径，不做合并。

// TierPenalty 各级扣分
type TierPenalty struct {
	Critical int
	Warning  int
	Mild     int
}

// ScoringConfig 评分引擎阈值与扣分
type ScoringConfig struct {
	Temperature struct {
		CriticalHigh float64 // > 则 critical
		CriticalLow  float64 // < 则 critical
		WarningHigh  float64
		WarningLow   float64
		MildHigh     float64 // 仅有偏高档
		Penalty      TierPenalty
	}

	HeartRate struct {
		CriticalHigh int
		CriticalLow  int
		WarningHigh  int
		WarningLow   int
		MildHigh     int
		MildLow      int
		Penalty      TierPenalty
	}

	SpO2 struct {
		Critical    int // < 则 critical
		Warning     int
		Mild        int
		NormalBonus int // 氧合良好时加分（非对称，刻意保留）
		Penalty     TierPenalty
	}

	BloodPressure struct {
		SysCriticalHigh int
		SysCriticalLow  int
		DiaCriticalHigh int
		DiaCriticalLow  int
		SysWarningHigh  int
		SysWarningLow   int
		DiaWarningHigh  int
		DiaWarningLow   int
		SysMildHigh     int
		DiaMildHigh     int
		Penalty         TierPenalty
	}

	Respiratory struct {
		CriticalHigh int
		CriticalLow  int
		WarningHigh  int
		WarningLow   int
		Penalty      TierPenalty
	}

	// 咯血恒定为 critical
	HemoptysisPenalty int
}

// Scoring 默认评分阈值
var Scoring = defaultScoring()

func defaultScoring() ScoringConfig {
	var c ScoringConfig

	c.Temperature.CriticalHigh = 39.5
	c.Temperature.CriticalLow = 35
	c.Temperature.WarningHigh = 38.5
	c.Temperature.WarningLow = 36
	c.Temperature.MildHigh = 37.5
	c.Temperature.Penalty = TierPenalty{Critical: 30, Warning: 15, Mild: 5}

	c.HeartRate.CriticalHigh = 140
	c.HeartRate.CriticalLow = 40
	c.HeartRate.WarningHigh = 120
	c.HeartRate.WarningLow = 50
	c.HeartRate.MildHigh = 100
	c.HeartRate.MildLow = 60
	c.HeartRate.Penalty = TierPenalty{Critical: 30, Warning: 15, Mild: 5}

	c.SpO2.Critical = 90
	c.SpO2.Warning = 94
	c.SpO2.Mild = 96
	c.SpO2.NormalBonus = 5
	c.SpO2.Penalty = TierPenalty{Critical: 35, Warning: 20, Mild: 8}

	c.BloodPressure.SysCriticalHigh = 180
	c.BloodPressure.SysCriticalLow = 90
	c.BloodPressure.DiaCriticalHigh = 120
	c.BloodPressure.DiaCriticalLow = 50
	c.BloodPressure.SysWarningHigh = 160
	c.BloodPressure.SysWarningLow = 100
	c.BloodPressure.DiaWarningHigh = 100
	c.BloodPressure.DiaWarningLow = 60
	c.BloodPressure.SysMildHigh = 140
	c.BloodPressure.DiaMildHigh = 90
	c.BloodPressure.Penalty = TierPenalty{Critical: 25, Warning: 15, Mild: 8}

	c.Respiratory.CriticalHigh = 30
	c.Respiratory.CriticalLow = 8
	c.Respiratory.WarningHigh = 25
	c.Respiratory.WarningLow = 12
	c.Respiratory.Penalty = TierPenalty{Critical: 20, Warning: 12}

	c.HemoptysisPenalty = 40

	return c
}

// DangerConfig 危险状态判定阈值（仅看最近一条测量，任一越界即危险）
type DangerConfig struct {
	TempLow  float64
	TempHigh float64
	SpO2Low  int
	HRLow    int
	HRHigh   int
	SysLow   int
	SysHigh  int
	DiaLow   int
	DiaHigh  int
	RespLow  int
	RespHigh int
}

// Danger 默认危险判定阈值
var Danger = DangerConfig{
	TempLow:  36,
	TempHigh: 39,
	SpO2Low:  92,
	HRLow:    50,
	HRHigh:   120,
	SysLow:   90,
	SysHigh:  180,
	DiaLow:   50,
	DiaHigh:  110,
	RespLow:  10,
	RespHigh: 30,
}

// BandConfig 展示色带阈值（两档：正常/越界）
type BandConfig struct {
	TempLow  float64
	TempHigh float64
	SysLow   float64
	SysHigh  float64
	DiaLow   float64
	DiaHigh  float64
	HRLow    float64
	HRHigh   float64
	RespLow  float64
	RespHigh float64
	SpO2Low  float64
}

// Bands 默认色带阈值
var Bands = BandConfig{
	TempLow:  36.5,
	TempHigh: 37.8,
	SysLow:   100,
	SysHigh:  135,
	DiaLow:   60,
	DiaHigh:  85,
	HRLow:    55,
	HRHigh:   100,
	RespLow:  12,
	RespHigh: 22,
	SpO2Low:  95,
}
