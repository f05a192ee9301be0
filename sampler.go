package main

import (
	"sync/atomic"
	"time"

	"github.com/gr-butler/drumpads/audio"
	"github.com/gr-butler/drumpads/buffer"
	"github.com/gr-butler/drumpads/env"
	"github.com/gr-butler/drumpads/sensors"
	"github.com/gr-butler/drumpads/telemetry"
	logger "github.com/sirupsen/logrus"
)

type pad struct {
	name    string
	sound   audio.Sound
	input   sensors.PadInput
	lastHit time.Time
	hits    atomic.Uint64
	levels  *buffer.LevelBuffer
}

func newPad(name string, sound audio.Sound, input sensors.PadInput) *pad {
	return &pad{
		name:   name,
		sound:  sound,
		input:  input,
		levels: buffer.NewLevelBuffer(env.LevelBufferLength),
	}
}

type lineSender interface {
	SendLine(line string) error
}

// Start brings the tasks up in dependency order: the feedback and playback
// tasks must be running before the first strike can fire, and the sampling
// task must be draining its wake channel before the timer starts filling it.
func (d *drumstation) Start() {
	d.startFeedback()
	go d.player.Run()
	d.samplerWake = make(chan struct{}, 1)
	go d.samplingTask()
	go d.sampleTimer()
}

// sampleTimer is the heartbeat of the whole station. It does no reads itself,
// it only wakes the sampling task.
func (d *drumstation) sampleTimer() {
	logger.Infof("Sample timer started, period [%v]", d.cfg.Detection.SamplePeriod)
	tick := time.NewTicker(d.cfg.Detection.SamplePeriod)
	defer tick.Stop()
	for range tick.C {
		select {
		case d.samplerWake <- struct{}{}:
		default:
			// previous pass still running; one pending wake is enough
		}
	}
}

func (d *drumstation) samplingTask() {
	logger.Info("Sampling task started")
	for range d.samplerWake {
		d.samplePass()
	}
}

// samplePass reads both pads, always A then B, sends the telemetry line for
// the pass and then evaluates strikes. A failed read drops the whole pass so
// telemetry never mixes readings from different passes.
func (d *drumstation) samplePass() {
	for i, p := range d.pads {
		raw, err := p.input.ReadRaw()
		if err != nil {
			logger.Debugf("Pad %v read failed, pass dropped [%v]", p.name, err)
			return
		}
		mv := sensors.MillivoltsFromRaw(raw)
		d.passMv[i] = mv
		p.levels.Add(mv)
		Prom_padLevel.WithLabelValues(p.name).Set(float64(mv))
	}
	Prom_samplePasses.Inc()

	if *d.args.Levels {
		logger.Infof("Levels A [%v]mV B [%v]mV", d.passMv[0], d.passMv[1])
	}

	// the pass's telemetry goes out before any of its hit notifications
	if d.telem != nil {
		if err := d.telem.SendLine(telemetry.FormatPadLine(d.passMv[0], d.passMv[1])); err != nil {
			Prom_telemetryErrors.Inc()
			logger.Debugf("Telemetry write failed [%v]", err)
		}
	}

	now := d.clock.Now()
	for _, p := range d.detect(now) {
		d.fire(p, now)
	}
}

// detect applies threshold and cooldown to each pad in order and returns the
// pads that fired this pass. Pads that don't fire keep their state untouched.
func (d *drumstation) detect(now time.Time) []*pad {
	var fired []*pad
	for i, p := range d.pads {
		if d.passMv[i] <= d.cfg.Detection.ThresholdMillivolts {
			continue
		}
		if now.Sub(p.lastHit) <= d.cfg.Detection.Cooldown {
			// the same strike still ringing
			continue
		}
		p.lastHit = now
		fired = append(fired, p)
	}
	return fired
}

func (d *drumstation) fire(p *pad, now time.Time) {
	mv := p.levels.GetLast()
	p.hits.Add(1)
	Prom_padHits.WithLabelValues(p.name).Inc()
	logger.Debugf("Hit on pad %v [%vmV]", p.name, mv)

	d.wakeFeedback()
	if *d.args.SoundOn {
		d.player.Trigger(p.sound)
	}

	if d.events != nil {
		d.events.PublishHit(telemetry.HitEvent{
			Pad:        p.name,
			Millivolts: mv,
			Sound:      p.sound.String(),
			At:         now,
		})
	}
}
