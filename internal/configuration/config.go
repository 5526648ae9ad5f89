package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/opensmoker/smokerd/internal/ui"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Gpio   GpioConfig    `json:"gpio"`
	Probes []ProbeConfig `json:"probes"`

	Buttons ButtonsConfig `json:"buttons"`
	Switch  SwitchConfig  `json:"switch"`
	Relays  RelaysConfig  `json:"relays"`

	Control ControlConfig `json:"control"`
	Limits  LimitsConfig  `json:"limits"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Mqtt       MqttConfig       `json:"mqtt"`
	Bridge     BridgeConfig     `json:"bridge"`
	Overrides  OverridesConfig  `json:"overrides"`
	Alert      AlertConfig      `json:"alert"`
	Display    DisplayConfig    `json:"display"`
	History    HistoryConfig    `json:"history"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("smokerd")

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
		viper.AddConfigPath("/etc/smokerd/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/smokerd/smokerd.db")

	viper.SetDefault("gpio.chip", "gpiochip0")

	viper.SetDefault("probes", []ProbeConfig{})

	viper.SetDefault("buttons.menu", 26)
	viper.SetDefault("buttons.increase", 22)
	viper.SetDefault("buttons.decrease", 27)
	viper.SetDefault("switch.pin", 2)

	viper.SetDefault("relays.heater", 7)
	viper.SetDefault("relays.fan", 6)

	viper.SetDefault("control.controlLoopRate", 100*time.Millisecond)
	viper.SetDefault("control.inputLoopRate", 50*time.Millisecond)
	viper.SetDefault("control.pid.p", 2.0)
	viper.SetDefault("control.pid.i", 0.1)
	viper.SetDefault("control.pid.d", 1.0)
	viper.SetDefault("control.minHeaterCycleTime", 5*time.Second)
	viper.SetDefault("control.minFanCycleTime", 60*time.Second)
	viper.SetDefault("control.fanDeltaOn", 30)
	viper.SetDefault("control.fanDeltaOff", 15)
	viper.SetDefault("control.emergencyTemp", 500)

	viper.SetDefault("limits.air.min", 150)
	viper.SetDefault("limits.air.max", 300)
	viper.SetDefault("limits.air.default", 225)
	viper.SetDefault("limits.meat.min", 120)
	viper.SetDefault("limits.meat.max", 210)
	viper.SetDefault("limits.meat.default", 190)

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9428)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9429)

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.topicPrefix", "smoker")
	viper.SetDefault("mqtt.publishInterval", 10*time.Second)

	viper.SetDefault("bridge.enabled", false)
	viper.SetDefault("bridge.port", "/dev/ttyAMA0")
	viper.SetDefault("bridge.baudRate", 115200)

	viper.SetDefault("overrides.enabled", false)
	viper.SetDefault("overrides.path", "/etc/smokerd/parameters.json")
	viper.SetDefault("overrides.saveInterval", 10*time.Second)
	viper.SetDefault("overrides.pollInterval", 1*time.Second)
	viper.SetDefault("overrides.maxAge", 2*time.Hour)

	viper.SetDefault("alert.enabled", false)

	viper.SetDefault("display.enabled", true)

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.recordInterval", 10*time.Second)
	viper.SetDefault("history.retention", 168*time.Hour)
}

// DetectAndReadConfigFile detects the path of the first existing config file
// and reads it in
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %v", err)
	}
	return GetFilePath()
}

// GetFilePath this is only populated _after_ DetectAndReadConfigFile()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

// ReadConfigFileIfPresent reads the config file when one exists. Used by
// commands that are useful before a config file has been written.
func ReadConfigFileIfPresent() {
	if err := viper.ReadInConfig(); err == nil {
		ui.Debug("Using configuration file at: %s", GetFilePath())
	}
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(
			mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
