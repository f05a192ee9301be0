package env

import "time"

const (
	GPIO01 = "GPIO01"
	GPIO02 = "GPIO02" // SDA
	GPIO03 = "GPIO03" // SDC
	GPIO04 = "GPIO04"
	GPIO05 = "GPIO05" // hit indicator LED
	GPIO06 = "GPIO06"
	GPIO12 = "GPIO12"
	GPIO19 = "GPIO19"
	GPIO20 = "GPIO20" // heartbeat LED
	GPIO21 = "GPIO21"

	HitLed       = GPIO05
	HeartbeatLed = GPIO20

	// ADC codes are treated as 12 bit, matching the conversion below.
	AdcMaxCode = 4095

	// Full scale in millivolts at the 3.3V reference: mv = raw * 3300 / 4095
	ReferenceMillivolts = 3300

	// A pad reading above this fires a hit, subject to the cooldown.
	HitThresholdMillivolts = 400

	// Minimum gap between two accepted hits on the same pad. A single
	// strike rings above the threshold for tens of milliseconds.
	HitCooldown = 100 * time.Millisecond

	// Sampling pass pacing. 50us = 20kHz polling of the pads.
	SamplePeriod = 50 * time.Microsecond

	// Playback rate of the stored drum samples.
	PlaybackSampleRate = 8000

	// How long the hit LED stays lit after a strike.
	FeedbackHold = 125 * time.Millisecond

	TelemetryBaudRate = 921600

	// Length of the recent level history kept per pad.
	LevelBufferLength = 256

	ReportFreqMin = 1
)

var Disabled = false
var Enabled = true
