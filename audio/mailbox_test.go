package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailboxOverwrite(t *testing.T) {
	m := NewMailbox()

	m.Post(SoundSnare)
	m.Post(SoundHiHat)

	assert.Equal(t, SoundHiHat, m.Wait())

	// slot must be empty again
	select {
	case s := <-m.slot:
		t.Fatalf("slot not drained, got [%v]", s)
	default:
	}
}

func TestMailboxSingleSlot(t *testing.T) {
	m := NewMailbox()

	// Post never blocks, however many requests pile up
	for i := 0; i < 100; i++ {
		m.Post(SoundSnare)
	}
	m.Post(SoundHiHat)

	assert.Equal(t, SoundHiHat, m.Wait())
}
