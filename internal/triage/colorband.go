package triage

// Parameter 参数类型（色带查询用）
type Parameter string

const (
	ParamTemperature     Parameter = "temperature"
	ParamBloodPressure   Parameter = "bp"
	ParamHeartRate       Parameter = "heart_rate"
	ParamRespiratoryRate Parameter = "respiratory_rate"
	ParamSpO2            Parameter = "spo2"
)

// Band 展示色带标识（前端调色板令牌）
type Band string

const (
	BandNeutral  Band = "slate"   // 未测量/未知参数
	BandAlert    Band = "rose"    // 越界
	BandGood     Band = "emerald" // 体温、心率正常
	BandPressure Band = "indigo"  // 血压正常
	BandBreath   Band = "cyan"    // 呼吸正常
	BandOxygen   Band = "blue"    // SpO2 正常
)

// StatusColor 根据参数类型与取值返回展示色带
// - value 为主值（血压为收缩压），secondary 仅血压使用（舒张压）
// - value 为 0 视为未测量，返回中性色带（这些参数不存在生理意义上的 0 读数）
// 阈值独立于评分引擎与危险判定，仅用于展示分档
func StatusColor(param Parameter, value float64, secondary float64) Band {
	if value == 0 {
		return BandNeutral
	}

	switch param {
	case ParamTemperature:
		if value < Bands.TempLow || value > Bands.TempHigh {
			return BandAlert
		}
		return BandGood
	case ParamBloodPressure:
		if value < Bands.SysLow || value > Bands.SysHigh {
			return BandAlert
		}
		if secondary != 0 && (secondary < Bands.DiaLow || secondary > Bands.DiaHigh) {
			return BandAlert
		}
		return BandPressure
	case ParamHeartRate:
		if value < Bands.HRLow || value > Bands.HRHigh {
			return BandAlert
		}
		return BandGood
	case ParamRespiratoryRate:
		if value < Bands.RespLow || value > Bands.RespHigh {
			return BandAlert
		}
		return BandBreath
	case ParamSpO2:
		if value < Bands.SpO2Low {
			return BandAlert
		}
		return BandOxygen
	default:
		return BandNeutral
	}
}
