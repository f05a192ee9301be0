package audio

import (
	"time"

	logger "github.com/sirupsen/logrus"
)

// Output is the analog output the player streams to. Satisfied by
// sensors.AudioOut.
type Output interface {
	WriteSample(s int16) error
	Silence() error
}

// Player streams drum samples to the DAC. Run is the playback task: it waits
// on the mailbox, plays the requested buffer to completion and parks the
// output at silence. A strike landing mid stream only replaces the pending
// request, it never cuts the current sound short.
type Player struct {
	out    Output
	box    *Mailbox
	period time.Duration
	played func(Sound) // optional, called after each completed playback
}

func NewPlayer(out Output, sampleRate int) *Player {
	return &Player{
		out:    out,
		box:    NewMailbox(),
		period: time.Second / time.Duration(sampleRate),
	}
}

// OnPlayed registers a callback fired after each completed playback.
func (p *Player) OnPlayed(f func(Sound)) {
	p.played = f
}

// Trigger requests a sound. Never blocks; overwrite semantics via the mailbox.
func (p *Player) Trigger(s Sound) {
	p.box.Post(s)
}

func (p *Player) Run() {
	logger.Infof("Playback task started, sample period [%v]", p.period)
	for {
		p.play(p.box.Wait())
	}
}

func (p *Player) play(s Sound) {
	buf := Samples(s)
	if len(buf) == 0 {
		logger.Errorf("No sample buffer for sound [%v]", s)
		return
	}

	tick := time.NewTicker(p.period)
	defer tick.Stop()
	for _, v := range buf {
		if err := p.out.WriteSample(v); err != nil {
			// dropping one sample is better than stalling playback
			logger.Debugf("DAC write failed [%v]", err)
		}
		<-tick.C
	}
	if err := p.out.Silence(); err != nil {
		logger.Errorf("Failed to park DAC at silence [%v]", err)
	}
	if p.played != nil {
		p.played(s)
	}
}
