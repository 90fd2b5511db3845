package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/fanduty/fanduty/internal/duty"
	"github.com/mitchellh/mapstructure"
)

// PercentHookFunc returns a mapstructure decode hook that accepts duty cycle
// values either as plain numbers (20) or with a percent sign ("20%").
func PercentHookFunc() mapstructure.DecodeHookFuncType {
	percentType := reflect.TypeOf(duty.Percent(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != percentType {
			return data, nil
		}

		var value int
		switch v := data.(type) {
		case int:
			value = v
		case int64:
			value = int(v)
		case uint64:
			value = int(v)
		case float64:
			if v != float64(int(v)) {
				return nil, fmt.Errorf("duty cycle %v is not a whole percentage", v)
			}
			value = int(v)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%")))
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as duty cycle: %w", v, err)
			}
			value = n
		default:
			return data, nil
		}

		if value < int(duty.Off) || value > int(duty.Full) {
			return nil, fmt.Errorf("duty cycle %d%% is out of range [%d..%d]", value, duty.Off, duty.Full)
		}
		return duty.Percent(value), nil
	}
}

// DecodeHook is used for every configuration decode.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		PercentHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
