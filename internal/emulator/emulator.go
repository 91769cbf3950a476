package emulator

// The emulator owns every component and drives them through the master
// clock. Frame pacing against the host clock lives here too, so frontends
// only have to call RunFrame and present the framebuffer.

import (
	"fmt"
	"time"

	"zephyr-snes/internal/apu"
	"zephyr-snes/internal/clock"
	"zephyr-snes/internal/cpu"
	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/dma"
	"zephyr-snes/internal/input"
	"zephyr-snes/internal/memory"
	"zephyr-snes/internal/ppu"
	"zephyr-snes/internal/rom"
)

// AudioSampleRate is the output rate the APU paces and the frontend plays.
const AudioSampleRate = 32000

// Emulator is the assembled machine.
type Emulator struct {
	CPU    *cpu.CPU
	Bus    *memory.Bus
	PPU    *ppu.PPU
	APU    *apu.APU
	DMA    *dma.DMA
	Input  *input.InputSystem
	Cart   *rom.ROM
	Logger *debug.Logger

	Clock *clock.MasterClock

	// Frame pacing against the host clock
	FrameLimitEnabled bool
	frameTime         time.Duration
	lastFrameTime     time.Time

	// Performance tracking
	fps           float64
	frameCount    uint64
	fpsUpdateTime time.Time

	Running bool
	Paused  bool

	frameDone bool
}

// New assembles an emulator around a loaded cartridge.
func New(cart *rom.ROM, logger *debug.Logger) *Emulator {
	p := ppu.NewPPU(logger)
	a := apu.NewAPU(clock.MasterHz, AudioSampleRate, logger)
	d := dma.NewDMA(logger)
	in := input.NewInputSystem()

	bus := memory.NewBus(cart, logger)
	bus.PPU = p
	bus.APU = a
	bus.Input = in
	bus.DMA = d
	bus.Status = p
	d.SetMemory(bus)

	c := cpu.NewCPU(bus, logger)

	e := &Emulator{
		CPU:               c,
		Bus:               bus,
		PPU:               p,
		APU:               a,
		DMA:               d,
		Input:             in,
		Cart:              cart,
		Logger:            logger,
		Clock:             clock.NewMasterClock(),
		FrameLimitEnabled: true,
		frameTime:         time.Second / 60,
		lastFrameTime:     time.Now(),
		fpsUpdateTime:     time.Now(),
	}

	e.Clock.CPUStep = c.Step
	e.Clock.PPUStep = e.stepDot
	e.Clock.APUStep = a.Step

	return e
}

// stepDot advances the PPU by one dot and handles the per-line and
// per-frame side effects hanging off the video timing.
func (e *Emulator) stepDot() {
	// HDMA runs at the start of each visible line; the table latch
	// happens right before the first one.
	if e.PPU.HCounter() == 0 {
		line := e.PPU.VCounter()
		if line == 0 {
			e.DMA.HDMAInit()
		}
		if line < ppu.ScreenHeight {
			e.DMA.HDMAStep()
		}
	}

	e.PPU.Step()

	if e.PPU.FrameComplete {
		e.frameDone = true
		if err := e.Input.AutoRead(); err != nil {
			e.Logger.Logf(debug.ComponentInput, debug.LogLevelError,
				"input recording: %v", err)
		}
		if e.Bus.NMIEnabled() {
			e.CPU.NMI()
		}
	}
}

// RunFrame emulates until the PPU finishes the current frame.
func (e *Emulator) RunFrame() error {
	if !e.Running || e.Paused {
		return nil
	}

	e.frameDone = false
	for !e.frameDone {
		if _, err := e.Clock.Step(); err != nil {
			return fmt.Errorf("emulator: %w", err)
		}
	}

	e.frameCount++
	now := time.Now()
	if now.Sub(e.fpsUpdateTime) >= time.Second {
		e.fps = float64(e.frameCount) / now.Sub(e.fpsUpdateTime).Seconds()
		e.frameCount = 0
		e.fpsUpdateTime = now
	}

	if e.FrameLimitEnabled {
		elapsed := now.Sub(e.lastFrameTime)
		if elapsed < e.frameTime {
			time.Sleep(e.frameTime - elapsed)
		}
	}
	e.lastFrameTime = time.Now()

	return nil
}

// Start begins emulation.
func (e *Emulator) Start() {
	e.Running = true
	e.Paused = false
}

// Stop halts emulation.
func (e *Emulator) Stop() {
	e.Running = false
}

// Pause suspends emulation without losing state.
func (e *Emulator) Pause() { e.Paused = true }

// Resume continues after a pause.
func (e *Emulator) Resume() { e.Paused = false }

// Reset restarts the machine; memories and cartridge RAM survive the way
// they do on hardware.
func (e *Emulator) Reset() {
	e.CPU.Reset()
	e.APU.Reset()
	e.Clock.Reset()
	e.Logger.Log(debug.ComponentSystem, debug.LogLevelInfo, "machine reset")
}

// SetFrameLimit toggles pacing against the host clock.
func (e *Emulator) SetFrameLimit(enabled bool) {
	e.FrameLimitEnabled = enabled
}

// FPS returns the measured frame rate.
func (e *Emulator) FPS() float64 { return e.fps }

// Framebuffer returns the finished frame, 256x224 RGB24 row-major.
func (e *Emulator) Framebuffer() []uint8 {
	return e.PPU.Framebuf[:]
}
