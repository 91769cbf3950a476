package apu

// APU facade. The SPC700 and its DSP are not emulated: the four CPU-visible
// I/O ports ($2140-$2143) implement the acknowledge pattern ROM init code
// waits for, and the audio side paces silence samples into a ring buffer
// that the frontend drains. This keeps games booting and the audio pipeline
// real; actual sound synthesis is future work.

import (
	"zephyr-snes/internal/debug"
)

// bootSignature is what the SPC700 IPL ROM presents on ports 0/1 when it is
// ready for a transfer.
var bootSignature = [4]uint8{0xaa, 0xbb, 0x00, 0x00}

// APU implements the memory.IOHandler interface for $2140-$2143 and the
// sample source the frontend consumes.
type APU struct {
	// Ports as seen from the two sides
	toAPU   [4]uint8
	fromAPU [4]uint8

	SampleRate uint32

	// Fractional sample pacing: samples owed per stepped cycle
	cycleAccum uint64
	cyclesHz   uint64

	ring ringBuffer

	logger *debug.Logger
}

// NewAPU creates the facade. cyclesHz is the rate Step's cycle argument is
// counted in; sampleRate is the audio output rate.
func NewAPU(cyclesHz, sampleRate uint32, logger *debug.Logger) *APU {
	a := &APU{
		SampleRate: sampleRate,
		cyclesHz:   uint64(cyclesHz),
		ring:       newRingBuffer(int(sampleRate / 10)),
		logger:     logger,
	}
	a.Reset()
	return a
}

// Reset restores the boot handshake state.
func (a *APU) Reset() {
	a.toAPU = [4]uint8{}
	a.fromAPU = bootSignature
}

// Read8 reads an APU port from the CPU side.
func (a *APU) Read8(addr uint16) uint8 {
	return a.fromAPU[addr&0x03]
}

// Write8 writes an APU port from the CPU side. The stub acknowledges by
// echoing the written value, which satisfies the IPL upload loop and the
// common "wait for echo" idiom.
func (a *APU) Write8(addr uint16, value uint8) {
	port := addr & 0x03
	a.toAPU[port] = value
	a.fromAPU[port] = value
}

// Step paces the sample clock by the given number of cycles, pushing
// silence into the ring buffer.
func (a *APU) Step(cycles uint64) {
	a.cycleAccum += cycles * uint64(a.SampleRate)
	for a.cycleAccum >= a.cyclesHz {
		a.cycleAccum -= a.cyclesHz
		a.ring.push(0)
	}
}

// ReadSamples drains up to len(dst) samples and returns how many were
// copied. The frontend calls this once per frame.
func (a *APU) ReadSamples(dst []int16) int {
	return a.ring.pop(dst)
}

// BufferedSamples returns how many samples are waiting.
func (a *APU) BufferedSamples() int { return a.ring.len() }

// State is the serializable port state.
type State struct {
	ToAPU   [4]uint8
	FromAPU [4]uint8
}

// CaptureState snapshots the ports.
func (a *APU) CaptureState() State {
	return State{ToAPU: a.toAPU, FromAPU: a.fromAPU}
}

// RestoreState applies a snapshot.
func (a *APU) RestoreState(s State) {
	a.toAPU = s.ToAPU
	a.fromAPU = s.FromAPU
}

// ringBuffer is a fixed-size sample FIFO. Overflow drops the oldest
// samples so a stalled frontend cannot wedge the emulator.
type ringBuffer struct {
	buf  []int16
	r, w int
	n    int
}

func newRingBuffer(size int) ringBuffer {
	if size < 64 {
		size = 64
	}
	return ringBuffer{buf: make([]int16, size)}
}

func (rb *ringBuffer) len() int { return rb.n }

func (rb *ringBuffer) push(v int16) {
	if rb.n == len(rb.buf) {
		rb.r = (rb.r + 1) % len(rb.buf)
		rb.n--
	}
	rb.buf[rb.w] = v
	rb.w = (rb.w + 1) % len(rb.buf)
	rb.n++
}

func (rb *ringBuffer) pop(dst []int16) int {
	count := len(dst)
	if count > rb.n {
		count = rb.n
	}
	for i := 0; i < count; i++ {
		dst[i] = rb.buf[rb.r]
		rb.r = (rb.r + 1) % len(rb.buf)
	}
	rb.n -= count
	return count
}
