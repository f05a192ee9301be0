// padscope streams a single ADC channel over a serial link for the PC side
// plotter. Same pacing as the drum station's sampling task, no detection and
// no playback.
package main

import (
	"flag"
	"time"

	"github.com/gr-butler/drumpads/env"
	"github.com/gr-butler/drumpads/sensors"
	"github.com/gr-butler/drumpads/telemetry"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	logger "github.com/sirupsen/logrus"
)

func main() {
	logger.Info("Starting pad scope")

	portName := flag.String("port", "/dev/ttyAMA0", "serial port the plotter listens on")
	busName := flag.String("bus", "", "I²C bus (/dev/i2c-1)")
	baud := flag.Int("baud", env.TelemetryBaudRate, "serial baud rate")
	period := flag.Duration("period", env.SamplePeriod, "sampling period")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		logger.Errorf("Failed to init periph host [%v]", err)
		logger.Exit(1)
	}

	busCloser, err := i2creg.Open(*busName)
	if err != nil {
		logger.Fatalf("failed to open I²C: %v", err)
	}
	defer busCloser.Close()
	var bus i2c.Bus = busCloser

	pin, err := sensors.NewScopeInput(&bus)
	if err != nil {
		logger.Errorf("Failed to initialise scope input!! [%v]", err)
		logger.Exit(1)
	}

	telem, err := telemetry.Open(*portName, *baud)
	if err != nil {
		logger.Errorf("Failed to open telemetry port!! [%v]", err)
		logger.Exit(1)
	}
	defer telem.Close()

	// same timer-and-wake shape as the drum station: the ticker only signals,
	// the sampling loop does the reads
	wake := make(chan struct{}, 1)
	go func() {
		tick := time.NewTicker(*period)
		defer tick.Stop()
		for range tick.C {
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}()

	logger.Infof("Streaming at period [%v]", *period)
	for range wake {
		raw, err := pin.ReadRaw()
		if err != nil {
			logger.Debugf("Read failed, sample dropped [%v]", err)
			continue
		}
		mv := sensors.MillivoltsFromRaw(raw)
		if err := telem.SendLine(telemetry.FormatScopeLine(mv)); err != nil {
			logger.Debugf("Telemetry write failed [%v]", err)
		}
	}
}
