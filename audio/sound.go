package audio

import (
	_ "embed"
	"encoding/binary"
)

// Sound selects one of the built in drum samples.
type Sound uint8

const (
	SoundNone Sound = iota
	SoundSnare
	SoundHiHat
)

func (s Sound) String() string {
	switch s {
	case SoundSnare:
		return "snare"
	case SoundHiHat:
		return "hihat"
	default:
		return "none"
	}
}

// The drum voices are fixed 16 bit little endian PCM assets baked into the
// binary. They are decoded once at start up and never touched again.

//go:embed samples/snare.pcm
var snarePCM []byte

//go:embed samples/hihat.pcm
var hihatPCM []byte

var (
	snareSamples []int16
	hihatSamples []int16
)

func init() {
	snareSamples = decodePCM(snarePCM)
	hihatSamples = decodePCM(hihatPCM)
}

// Samples returns the sample buffer for a sound. Callers must not modify the
// returned slice. Unknown sounds return nil.
func Samples(s Sound) []int16 {
	switch s {
	case SoundSnare:
		return snareSamples
	case SoundHiHat:
		return hihatSamples
	default:
		return nil
	}
}

func decodePCM(raw []byte) []int16 {
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return out
}
