package configuration

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	TickPeriod      time.Duration `json:"tickPeriod" yaml:"tickPeriod"`
	HeartbeatPeriod time.Duration `json:"heartbeatPeriod" yaml:"heartbeatPeriod"`

	Analog     AnalogConfig     `json:"analog" yaml:"analog"`
	Duty       DutyConfig       `json:"duty" yaml:"duty"`
	Pwm        PwmConfig        `json:"pwm" yaml:"pwm"`
	Display    DisplayConfig    `json:"display" yaml:"display"`
	Indicator  IndicatorConfig  `json:"indicator" yaml:"indicator"`
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
	Api        ApiConfig        `json:"api" yaml:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("fanduty")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/fanduty/")
	}

	viper.SetEnvPrefix("FANDUTY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("tickPeriod", 100*time.Millisecond)
	viper.SetDefault("heartbeatPeriod", 1*time.Second)

	viper.SetDefault("analog.fullScale", 1023)
	viper.SetDefault("analog.windowSize", 10)

	viper.SetDefault("duty.deadBand", duty.DefaultThresholds.DeadBand)
	viper.SetDefault("duty.ceiling", duty.DefaultThresholds.Ceiling)

	viper.SetDefault("pwm.max", 255)
	viper.SetDefault("pwm.shutdownDuty", duty.Full)

	viper.SetDefault("display.enabled", true)
	viper.SetDefault("display.terminal", true)
	viper.SetDefault("display.width", 128)
	viper.SetDefault("display.height", 64)
	viper.SetDefault("display.label", "Fan Speed:")
	viper.SetDefault("display.labelOrigin.x", 0)
	viper.SetDefault("display.labelOrigin.y", 0)
	viper.SetDefault("display.region.x", 0)
	viper.SetDefault("display.region.y", 16)
	viper.SetDefault("display.region.width", 50)
	viper.SetDefault("display.region.height", 20)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 8080)
}

func ReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	ui.Info("Using configuration file at: %s", viper.ConfigFileUsed())

	LoadConfig()
	if err := Validate(viper.ConfigFileUsed()); err != nil {
		ui.Fatal("Config validation failed: %v", err)
	}
}

// LoadConfig decodes the current viper state into CurrentConfig.
func LoadConfig() {
	if err := loadInto(&CurrentConfig); err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func loadInto(config *Configuration) error {
	if err := viper.Unmarshal(config, viper.DecodeHook(DecodeHook())); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}
	return nil
}

// ReadOptionalConfigFile is like ReadConfigFile but falls back to the
// defaults if no config file can be found.
func ReadOptionalConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		ui.Debug("No config file loaded, using defaults: %v", err)
	} else {
		ui.Debug("Using configuration file at: %s", viper.ConfigFileUsed())
	}
	LoadConfig()
}
