package buffer

import (
	"sync"
)

type Average float64
type Minimum uint32
type Maximum uint32

// LevelBuffer holds a fixed-size ring of recent pad readings in millivolts.
// The sampling task is the only writer; the status handler, live feed and
// reporting read from it.
type LevelBuffer struct {
	position int
	size     int
	data     []uint32
	lock     sync.Mutex
	first    bool
}

func NewLevelBuffer(size int) *LevelBuffer {
	b := LevelBuffer{}
	b.first = true
	b.size = size
	b.data = make([]uint32, size)
	return &b
}

func (b *LevelBuffer) Add(mv uint32) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.data[b.position] = mv
	b.position += 1
	if b.position == b.size {
		b.position = 0
	}
	if b.first {
		// fill buffer
		for i := 0; i < b.size; i++ {
			b.data[i] = mv
		}
		b.first = false
	}
}

func (b *LevelBuffer) GetAverageMinMax() (Average, Minimum, Maximum) {
	b.lock.Lock()
	defer b.lock.Unlock()

	var min uint32 = ^uint32(0)
	var max uint32 = 0
	var sum uint64 = 0

	for _, x := range b.data {
		if x > max {
			max = x
		}
		if x < min {
			min = x
		}
		sum += uint64(x)
	}

	return Average(float64(sum) / float64(b.size)), Minimum(min), Maximum(max)
}

// Peak returns the largest reading currently held.
func (b *LevelBuffer) Peak() uint32 {
	_, _, mx := b.GetAverageMinMax()
	return uint32(mx)
}

func (b *LevelBuffer) GetLast() uint32 {
	b.lock.Lock()
	defer b.lock.Unlock()
	index := b.position - 1
	if index < 0 {
		index += b.size
	}
	return b.data[index]
}

func (b *LevelBuffer) GetRawData() ([]uint32, int) {
	b.lock.Lock()
	defer b.lock.Unlock()
	out := make([]uint32, b.size)
	copy(out, b.data)
	return out, b.position
}

func (b *LevelBuffer) GetSize() int {
	return b.size
}
