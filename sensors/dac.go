package sensors

import (
	logger "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
)

const (
	MCP4725_I2C = 0x60

	// writeDac is the MCP4725 "write DAC register" command byte.
	writeDac = 0x40

	// Mid scale on the 12 bit DAC, the output's silence level.
	DacNeutralCode = 2048
)

// AudioOut drives the MCP4725 DAC the speaker amp hangs off.
type AudioOut struct {
	dev *i2c.Dev
}

func NewAudioOut(bus *i2c.Bus) (*AudioOut, error) {
	logger.Infof("Starting audio DAC I2C [%x]", MCP4725_I2C)
	a := &AudioOut{dev: &i2c.Dev{Addr: MCP4725_I2C, Bus: *bus}}
	// park the output at silence and confirm the device answers
	if err := a.Silence(); err != nil {
		logger.Errorf("Audio DAC did not respond [%v]", err)
		return nil, err
	}
	return a, nil
}

// WriteSample scales one signed 16 bit sample to a 12 bit DAC code and
// writes it out.
func (a *AudioOut) WriteSample(s int16) error {
	code := uint16(int32(s)+32768) >> 4
	return a.writeCode(code)
}

// Silence parks the output at mid scale.
func (a *AudioOut) Silence() error {
	return a.writeCode(DacNeutralCode)
}

func (a *AudioOut) writeCode(code uint16) error {
	buf := []byte{writeDac, byte(code >> 4), byte((code & 0x0F) << 4)}
	return a.dev.Tx(buf, nil)
}
