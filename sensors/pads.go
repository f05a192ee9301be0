package sensors

import (
	"github.com/gr-butler/drumpads/env"
	logger "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// The ADS1115 tops out at 860 conversions a second. The sampling ticker can
// ask for passes faster than that, in which case conversion time paces the
// loop instead of the timer.
const adcDataRate = 860 * physic.Hertz

// PadInput is one piezo pad wired to an ADC channel.
type PadInput interface {
	ReadRaw() (uint16, error)
}

type adsPad struct {
	pin ads1x15.PinADC
}

// Pads holds both pad inputs in strike evaluation order: A then B.
type Pads struct {
	A PadInput
	B PadInput
}

// NewPads sets up the ADS1115 with pad A on channel 1 and pad B on channel 0,
// matching the wiring loom.
func NewPads(bus *i2c.Bus, args env.Args) (*Pads, error) {
	logger.Infof("Starting pad ADC I2C [%x]", ads1x15.DefaultOpts.I2cAddress)
	adc, err := ads1x15.NewADS1115(*bus, &ads1x15.DefaultOpts)
	if err != nil {
		logger.Errorf("Failed to open ADS1115 [%v]", err)
		return nil, err
	}

	pinA, err := adc.PinForChannel(ads1x15.Channel1, env.ReferenceMillivolts*physic.MilliVolt, adcDataRate, ads1x15.BestQuality)
	if err != nil {
		logger.Errorf("Failed to set up pad A channel [%v]", err)
		return nil, err
	}

	pinB, err := adc.PinForChannel(ads1x15.Channel0, env.ReferenceMillivolts*physic.MilliVolt, adcDataRate, ads1x15.BestQuality)
	if err != nil {
		logger.Errorf("Failed to set up pad B channel [%v]", err)
		return nil, err
	}

	return &Pads{A: &adsPad{pin: pinA}, B: &adsPad{pin: pinB}}, nil
}

// NewScopeInput sets up a single channel input for the serial oscilloscope
// build, potentiometer on channel 1.
func NewScopeInput(bus *i2c.Bus) (PadInput, error) {
	adc, err := ads1x15.NewADS1115(*bus, &ads1x15.DefaultOpts)
	if err != nil {
		logger.Errorf("Failed to open ADS1115 [%v]", err)
		return nil, err
	}
	pin, err := adc.PinForChannel(ads1x15.Channel1, env.ReferenceMillivolts*physic.MilliVolt, adcDataRate, ads1x15.BestQuality)
	if err != nil {
		logger.Errorf("Failed to set up scope channel [%v]", err)
		return nil, err
	}
	return &adsPad{pin: pin}, nil
}

// ReadRaw runs one conversion and maps the ADS1115 count down to the 12 bit
// range the millivolt conversion is defined over.
func (p *adsPad) ReadRaw() (uint16, error) {
	sample, err := p.pin.Read()
	if err != nil {
		return 0, err
	}
	raw := sample.Raw
	if raw < 0 {
		// piezo ringing can swing slightly below ground
		raw = 0
	}
	raw = raw >> 3 // 15 significant bits down to 12
	if raw > env.AdcMaxCode {
		raw = env.AdcMaxCode
	}
	return uint16(raw), nil
}

// MillivoltsFromRaw converts a 12 bit ADC code to millivolts at the 3.3V
// reference. Codes above the 12 bit range clamp to full scale.
func MillivoltsFromRaw(raw uint16) uint32 {
	if raw > env.AdcMaxCode {
		raw = env.AdcMaxCode
	}
	return uint32(raw) * env.ReferenceMillivolts / env.AdcMaxCode
}
