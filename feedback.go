package main

import (
	logger "github.com/sirupsen/logrus"
)

// indicator is the visual hit feedback output, satisfied by led.LED.
type indicator interface {
	On()
	Off()
}

// startFeedback launches the visual feedback task. The wake channel holds at
// most one signal, so strikes landing while the LED is already lit collapse
// into a single hold cycle.
func (d *drumstation) startFeedback() {
	d.feedbackWake = make(chan struct{}, 1)
	go d.feedbackTask()
}

func (d *drumstation) wakeFeedback() {
	select {
	case d.feedbackWake <- struct{}{}:
	default:
	}
}

func (d *drumstation) feedbackTask() {
	logger.Info("Feedback task started")
	for range d.feedbackWake {
		d.indicator.On()
		d.clock.Sleep(d.hold)
		d.indicator.Off()
	}
}
