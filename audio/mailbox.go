package audio

// Mailbox is a single slot trigger channel with overwrite on write. If a new
// sound is posted before the player drains the slot, the older request is
// replaced; only the most recent strike matters.
type Mailbox struct {
	slot chan Sound
}

func NewMailbox() *Mailbox {
	return &Mailbox{slot: make(chan Sound, 1)}
}

// Post never blocks. It either fills the empty slot or replaces its content.
func (m *Mailbox) Post(s Sound) {
	for {
		select {
		case m.slot <- s:
			return
		default:
		}
		// slot full, evict the stale request and try again
		select {
		case <-m.slot:
		default:
		}
	}
}

// Wait blocks until a sound is posted.
func (m *Mailbox) Wait() Sound {
	return <-m.slot
}
