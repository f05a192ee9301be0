package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gr-butler/drumpads/env"
	"gopkg.in/yaml.v3"
)

// Config holds the deployment knobs. Anything not set in the file falls back
// to the defaults in the env package.
type Config struct {
	I2C       I2CConfig       `yaml:"i2c"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Detection DetectionConfig `yaml:"detection"`
	Playback  PlaybackConfig  `yaml:"playback"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	Reporting ReportingConfig `yaml:"reporting"`
}

// I2CConfig names the bus the ADC and DAC sit on. Empty means the platform
// default bus.
type I2CConfig struct {
	Bus string `yaml:"bus"`
}

type TelemetryConfig struct {
	Port     string `yaml:"port"` // empty disables serial telemetry
	BaudRate int    `yaml:"baud_rate"`
}

type DetectionConfig struct {
	ThresholdMillivolts uint32        `yaml:"threshold_millivolts"`
	Cooldown            time.Duration `yaml:"cooldown"`
	SamplePeriod        time.Duration `yaml:"sample_period"`
}

type PlaybackConfig struct {
	SampleRate int `yaml:"sample_rate"`
}

// MQTTConfig enables hit event publishing when a broker is set.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

// ReportingConfig enables the minute reporter's sinks when set.
type ReportingConfig struct {
	DatabaseURL string `yaml:"database_url"`
	StatsURL    string `yaml:"stats_url"`
}

func Default() *Config {
	return &Config{
		Telemetry: TelemetryConfig{
			Port:     "/dev/ttyAMA0",
			BaudRate: env.TelemetryBaudRate,
		},
		Detection: DetectionConfig{
			ThresholdMillivolts: env.HitThresholdMillivolts,
			Cooldown:            env.HitCooldown,
			SamplePeriod:        env.SamplePeriod,
		},
		Playback: PlaybackConfig{
			SampleRate: env.PlaybackSampleRate,
		},
		MQTT: MQTTConfig{
			ClientID: "drumpads",
			Topic:    "drumpads/hits",
		},
	}
}

// Load reads configuration from a YAML file. A missing file or missing fields
// fall back to defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

func (c *Config) ensureDefaults() {
	def := Default()

	if c.Telemetry.BaudRate == 0 {
		c.Telemetry.BaudRate = def.Telemetry.BaudRate
	}
	if c.Detection.ThresholdMillivolts == 0 {
		c.Detection.ThresholdMillivolts = def.Detection.ThresholdMillivolts
	}
	if c.Detection.Cooldown == 0 {
		c.Detection.Cooldown = def.Detection.Cooldown
	}
	if c.Detection.SamplePeriod == 0 {
		c.Detection.SamplePeriod = def.Detection.SamplePeriod
	}
	if c.Playback.SampleRate == 0 {
		c.Playback.SampleRate = def.Playback.SampleRate
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = def.MQTT.ClientID
	}
	if c.MQTT.Topic == "" {
		c.MQTT.Topic = def.MQTT.Topic
	}
}
