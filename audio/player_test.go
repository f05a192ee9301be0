package audio

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	mu       sync.Mutex
	samples  []int16
	silences int
}

func (f *fakeOutput) WriteSample(s int16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, s)
	return nil
}

func (f *fakeOutput) Silence() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.silences++
	return nil
}

func (f *fakeOutput) snapshot() ([]int16, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int16, len(f.samples))
	copy(out, f.samples)
	return out, f.silences
}

func TestPlayStreamsWholeBufferThenSilence(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(out, 8000)

	p.play(SoundHiHat)

	want := Samples(SoundHiHat)
	got, silences := out.snapshot()
	require.Equal(t, len(want), len(got), "every sample must be streamed exactly once")
	assert.Equal(t, want, got)
	assert.Equal(t, 1, silences, "output must be parked at silence after the buffer")
}

func TestPlayUnknownSoundWritesNothing(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(out, 8000)

	p.play(SoundNone)

	got, silences := out.snapshot()
	assert.Empty(t, got)
	assert.Equal(t, 0, silences)
}

func TestTriggerOverwritesPendingRequest(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(out, 8000)

	done := make(chan Sound, 4)
	p.OnPlayed(func(s Sound) { done <- s })

	// both posted before the playback task drains the mailbox
	p.Trigger(SoundSnare)
	p.Trigger(SoundHiHat)
	go p.Run()

	select {
	case s := <-done:
		assert.Equal(t, SoundHiHat, s, "only the most recent request is honoured")
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not complete")
	}

	// the overwritten snare must never play
	select {
	case s := <-done:
		t.Fatalf("unexpected second playback of [%v]", s)
	case <-time.After(100 * time.Millisecond):
	}

	got, _ := out.snapshot()
	assert.Equal(t, Samples(SoundHiHat), got)
}

func TestSamplesAreLoaded(t *testing.T) {
	require.NotEmpty(t, Samples(SoundSnare))
	require.NotEmpty(t, Samples(SoundHiHat))
	assert.Nil(t, Samples(SoundNone))
}
