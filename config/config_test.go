package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, uint32(400), cfg.Detection.ThresholdMillivolts)
	assert.Equal(t, 100*time.Millisecond, cfg.Detection.Cooldown)
	assert.Equal(t, 50*time.Microsecond, cfg.Detection.SamplePeriod)
	assert.Equal(t, 8000, cfg.Playback.SampleRate)
	assert.Equal(t, 921600, cfg.Telemetry.BaudRate)
}

func TestLoadPartialFileKeepsDefaultsForRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drumpads.yaml")
	body := []byte("detection:\n  threshold_millivolts: 550\nmqtt:\n  broker: tcp://broker:1883\n")
	require.NoError(t, os.WriteFile(path, body, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(550), cfg.Detection.ThresholdMillivolts)
	assert.Equal(t, 100*time.Millisecond, cfg.Detection.Cooldown)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, "drumpads", cfg.MQTT.ClientID)
	assert.Equal(t, "drumpads/hits", cfg.MQTT.Topic)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drumpads.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detection: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
