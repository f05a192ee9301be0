package led

import (
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

type LED struct {
	Name    string
	lock    *sync.Mutex
	on      bool
	gpioPin gpio.PinIO
}

func NewLED(name string, GPIOPin string) *LED {
	logger.Infof("Creating new LED on pin [%v] called [%v]", GPIOPin, name)
	l := &LED{
		Name: name,
		lock: &sync.Mutex{},
		on:   false,
	}
	l.gpioPin = gpioreg.ByName(GPIOPin)
	if l.gpioPin == nil {
		logger.Errorf("Failed to find %v pin", GPIOPin)
		// a missing indicator LED is not critical
	}

	// flicker to show it's working
	_ = l.set(gpio.High)
	time.Sleep(time.Millisecond * 100)
	_ = l.set(gpio.Low)
	time.Sleep(time.Millisecond * 100)
	_ = l.set(gpio.High)
	time.Sleep(time.Millisecond * 100)
	_ = l.set(gpio.Low)

	return l
}

func (l *LED) set(level gpio.Level) error {
	if l.gpioPin == nil {
		return nil
	}
	return l.gpioPin.Out(level)
}

func (l *LED) On() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.on = true
	_ = l.set(gpio.High)
}

func (l *LED) Off() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.on = false
	_ = l.set(gpio.Low)
}

// Hold lights the LED for the given duration then turns it off. If a hold is
// already in progress the request is discarded rather than queued; the caller
// only needs "the light came on recently", not one cycle per request.
func (l *LED) Hold(d time.Duration) {
	if !l.lock.TryLock() {
		return
	}
	defer l.lock.Unlock()
	l.on = true
	_ = l.set(gpio.High)
	time.Sleep(d)
	l.on = false
	_ = l.set(gpio.Low)
}

// Flash gives a short pulse, used by the heartbeat.
func (l *LED) Flash() {
	if !l.lock.TryLock() {
		// a flash is in progress, this request can be safely discarded
		return
	}
	defer l.lock.Unlock()
	_ = l.set(gpio.High)
	time.Sleep(time.Millisecond * 100)
	_ = l.set(gpio.Low)
}

func (l *LED) IsOn() bool {
	return l.on
}
