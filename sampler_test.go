package main

import (
	"errors"
	"testing"
	"time"

	"github.com/gr-butler/drumpads/audio"
	"github.com/gr-butler/drumpads/config"
	"github.com/gr-butler/drumpads/env"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePadInput struct {
	raw uint16
	err error
}

func (f *fakePadInput) ReadRaw() (uint16, error) {
	return f.raw, f.err
}

type fakeLine struct {
	lines []string
}

func (f *fakeLine) SendLine(l string) error {
	f.lines = append(f.lines, l)
	return nil
}

type nullOutput struct{}

func (nullOutput) WriteSample(int16) error { return nil }
func (nullOutput) Silence() error          { return nil }

func testStation(clock clockwork.Clock) (*drumstation, *fakePadInput, *fakePadInput, *fakeLine) {
	inA := &fakePadInput{}
	inB := &fakePadInput{}
	line := &fakeLine{}

	d := &drumstation{
		clock: clock,
		cfg:   config.Default(),
		args:  env.Args{Test: &env.Enabled, Verbose: &env.Disabled, SoundOn: &env.Enabled, Levels: &env.Disabled},
		pads: []*pad{
			newPad("A", audio.SoundSnare, inA),
			newPad("B", audio.SoundHiHat, inB),
		},
		telem:  line,
		player: audio.NewPlayer(nullOutput{}, env.PlaybackSampleRate),
		hold:   env.FeedbackHold,
	}
	d.passMv = make([]uint32, len(d.pads))
	d.feedbackWake = make(chan struct{}, 1)
	return d, inA, inB, line
}

func TestHitFiresAboveThreshold(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d, inA, _, _ := testStation(clock)

	inA.raw = 2000 // 1611mV, over the 400mV threshold
	d.samplePass()

	assert.Equal(t, uint64(1), d.pads[0].hits.Load())
	assert.Equal(t, uint64(0), d.pads[1].hits.Load())
	assert.Len(t, d.feedbackWake, 1, "feedback task must be woken")
}

func TestNoHitBelowThreshold(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d, inA, _, _ := testStation(clock)

	inA.raw = 480 // 386mV, just under threshold
	d.samplePass()

	assert.Equal(t, uint64(0), d.pads[0].hits.Load())
	assert.True(t, d.pads[0].lastHit.IsZero(), "no state change on a non-firing pass")
	assert.Len(t, d.feedbackWake, 0)
}

func TestCooldownSuppressesRepeatHits(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d, inA, _, _ := testStation(clock)
	inA.raw = 2000

	// two passes inside the cooldown window: exactly one hit
	d.samplePass()
	d.samplePass()
	assert.Equal(t, uint64(1), d.pads[0].hits.Load())

	// still ringing halfway through the window
	clock.Advance(50 * time.Millisecond)
	d.samplePass()
	assert.Equal(t, uint64(1), d.pads[0].hits.Load())

	// window elapsed, next strike accepted
	clock.Advance(60 * time.Millisecond)
	d.samplePass()
	assert.Equal(t, uint64(2), d.pads[0].hits.Load())
}

func TestCalibrationScenario(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d, inA, _, _ := testStation(clock)

	inA.raw = 2000 // 1611mV -> hit
	d.samplePass()
	clock.Advance(env.HitCooldown + time.Millisecond)

	inA.raw = 500 // 402mV, still above 400 -> hit
	d.samplePass()
	clock.Advance(env.HitCooldown + time.Millisecond)

	inA.raw = 480 // 386mV -> no hit
	d.samplePass()

	assert.Equal(t, uint64(2), d.pads[0].hits.Load())
}

func TestBothPadsFireInOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d, _, _, _ := testStation(clock)

	d.passMv[0] = 1611
	d.passMv[1] = 900
	fired := d.detect(clock.Now())

	require.Len(t, fired, 2, "both pads over threshold fire independently")
	assert.Equal(t, "A", fired[0].name)
	assert.Equal(t, "B", fired[1].name)
}

func TestTelemetryLineMatchesPass(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d, inA, inB, line := testStation(clock)

	inA.raw = 2000
	inB.raw = 500
	d.samplePass()

	require.Len(t, line.lines, 1)
	assert.Equal(t, "A:1611,B:402\r\n", line.lines[0])

	// one line per pass, hits or not
	inA.raw = 0
	inB.raw = 0
	d.samplePass()
	require.Len(t, line.lines, 2)
	assert.Equal(t, "A:0,B:0\r\n", line.lines[1])
}

func TestReadErrorDropsPass(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d, inA, inB, line := testStation(clock)

	inA.raw = 2000
	inB.err = errors.New("i2c timeout")
	d.samplePass()

	assert.Empty(t, line.lines, "a dropped pass emits no telemetry")
	assert.Equal(t, uint64(0), d.pads[0].hits.Load(), "a dropped pass fires no hits")

	// loop keeps going once the read recovers
	inB.err = nil
	d.samplePass()
	assert.Len(t, line.lines, 1)
	assert.Equal(t, uint64(1), d.pads[0].hits.Load())
}
