package config

import (
	"testing"
	"time"

	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalConfig(t *testing.T) {
	// GIVEN
	config := configuration.Configuration{
		TickPeriod: 100 * time.Millisecond,
		Analog: configuration.AnalogConfig{
			FullScale: 1023,
			Serial:    &configuration.SerialAnalogConfig{Port: "/dev/ttyACM0", BaudRate: 115200},
		},
		Duty: configuration.DutyConfig{DeadBand: 20, Ceiling: 95},
	}

	// WHEN
	text, err := marshalConfig(config)

	// THEN
	require.NoError(t, err)
	assert.Contains(t, text, "tickPeriod: 100ms")
	assert.Contains(t, text, "port: /dev/ttyACM0")
	assert.NotContains(t, text, "file:")

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, map[string]interface{}{"deadBand": 20, "ceiling": 95}, decoded["duty"])
}
