package telemetry

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// LineWriter pushes telemetry lines out of the UART the plotter listens on.
// The sampling task is its only writer.
type LineWriter struct {
	port serial.Port
	name string
}

func Open(portName string, baudRate int) (*LineWriter, error) {
	logger.Infof("Opening telemetry port [%v] at [%v] baud", portName, baudRate)
	mode := &serial.Mode{BaudRate: baudRate}
	port, err := serial.Open(portName, mode)
	if err != nil {
		logger.Errorf("Failed to open telemetry port [%v]", err)
		return nil, err
	}
	return &LineWriter{port: port, name: portName}, nil
}

func (w *LineWriter) SendLine(line string) error {
	_, err := w.port.Write([]byte(line))
	return err
}

func (w *LineWriter) Close() error {
	return w.port.Close()
}

// FormatPadLine is the dual channel line the drum pad plotter expects.
func FormatPadLine(mvA, mvB uint32) string {
	return fmt.Sprintf("A:%d,B:%d\r\n", mvA, mvB)
}

// FormatScopeLine is the single channel line for the serial oscilloscope.
func FormatScopeLine(mv uint32) string {
	return fmt.Sprintf("%d\r\n", mv)
}
