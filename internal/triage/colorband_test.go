package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 0 视为未测量：所有参数返回中性色带
func TestStatusColor_ZeroIsAbsent(t *testing.T) {
	for _, param := range []Parameter{
		ParamTemperature, ParamBloodPressure, ParamHeartRate, ParamRespiratoryRate, ParamSpO2,
	} {
		assert.Equal(t, BandNeutral, StatusColor(param, 0, 0), string(param))
	}
}

func TestStatusColor_Temperature(t *testing.T) {
	assert.Equal(t, BandGood, StatusColor(ParamTemperature, 37, 0))
	assert.Equal(t, BandAlert, StatusColor(ParamTemperature, 36.4, 0))
	assert.Equal(t, BandAlert, StatusColor(ParamTemperature, 37.9, 0))
}

func TestStatusColor_BloodPressure(t *testing.T) {
	assert.Equal(t, BandPressure, StatusColor(ParamBloodPressure, 120, 80))
	assert.Equal(t, BandAlert, StatusColor(ParamBloodPressure, 99, 80))
	assert.Equal(t, BandAlert, StatusColor(ParamBloodPressure, 136, 80))
	assert.Equal(t, BandAlert, StatusColor(ParamBloodPressure, 120, 59))
	assert.Equal(t, BandAlert, StatusColor(ParamBloodPressure, 120, 86))

	// 舒张压为 0 时只看收缩压
	assert.Equal(t, BandPressure, StatusColor(ParamBloodPressure, 120, 0))
}

func TestStatusColor_HeartRate(t *testing.T) {
	assert.Equal(t, BandGood, StatusColor(ParamHeartRate, 70, 0))
	assert.Equal(t, BandAlert, StatusColor(ParamHeartRate, 54, 0))
	assert.Equal(t, BandAlert, StatusColor(ParamHeartRate, 101, 0))
}

func TestStatusColor_RespiratoryRate(t *testing.T) {
	assert.Equal(t, BandBreath, StatusColor(ParamRespiratoryRate, 16, 0))
	assert.Equal(t, BandAlert, StatusColor(ParamRespiratoryRate, 11, 0))
	assert.Equal(t, BandAlert, StatusColor(ParamRespiratoryRate, 23, 0))
}

func TestStatusColor_SpO2(t *testing.T) {
	assert.Equal(t, BandOxygen, StatusColor(ParamSpO2, 97, 0))
	assert.Equal(t, BandOxygen, StatusColor(ParamSpO2, 95, 0))
	assert.Equal(t, BandAlert, StatusColor(ParamSpO2, 94, 0))
}

func TestStatusColor_UnknownParameter(t *testing.T) {
	assert.Equal(t, BandNeutral, StatusColor(Parameter("weight"), 70, 0))
}
