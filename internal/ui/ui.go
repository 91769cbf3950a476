package ui

// SDL2 frontend: window, streaming RGB24 texture upload, keyboard input
// and the audio queue. One instance owns the SDL subsystems for the whole
// process.

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"zephyr-snes/internal/config"
	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/emulator"
	"zephyr-snes/internal/input"
	"zephyr-snes/internal/ppu"
)

// UI is the SDL frontend.
type UI struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	audioDev sdl.AudioDeviceID

	emulator *emulator.Emulator
	cfg      config.Config

	// statePath is where F5/F9 save and load the machine state.
	statePath string

	keymap map[sdl.Scancode]uint16

	audioBuf []int16

	running    bool
	fullscreen bool
}

// NewUI initializes SDL and creates the window, renderer, texture and
// audio device.
func NewUI(emu *emulator.Emulator, cfg config.Config, statePath string) (*UI, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("ui: initializing SDL: %w", err)
	}

	// Nearest-neighbour scaling keeps the pixels square
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	window, err := sdl.CreateWindow(
		"Zephyr",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(ppu.ScreenWidth*cfg.Scale),
		int32(ppu.ScreenHeight*cfg.Scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("ui: creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("ui: creating renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24,
		sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth,
		ppu.ScreenHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("ui: creating texture: %w", err)
	}

	audioSpec := sdl.AudioSpec{
		Freq:     emulator.AudioSampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  1024,
	}
	audioDev, err := sdl.OpenAudioDevice("", false, &audioSpec, nil, 0)
	if err != nil {
		// Audio is optional; run silent
		emu.Logger.Logf(debug.ComponentUI, debug.LogLevelWarning,
			"no audio device: %v", err)
		audioDev = 0
	} else {
		sdl.PauseAudioDevice(audioDev, false)
	}

	u := &UI{
		window:    window,
		renderer:  renderer,
		texture:   texture,
		audioDev:  audioDev,
		emulator:  emu,
		cfg:       cfg,
		statePath: statePath,
		audioBuf:  make([]int16, emulator.AudioSampleRate/30),
		running:   true,
	}
	u.buildKeymap()
	return u, nil
}

// buildKeymap resolves the configured key names to SDL scancodes.
func (u *UI) buildKeymap() {
	u.keymap = make(map[sdl.Scancode]uint16)
	bind := func(name string, button uint16) {
		sc := sdl.GetScancodeFromName(name)
		if sc == sdl.SCANCODE_UNKNOWN {
			u.emulator.Logger.Logf(debug.ComponentUI, debug.LogLevelWarning,
				"unknown key name %q", name)
			return
		}
		u.keymap[sc] = button
	}

	keys := u.cfg.Keys
	bind(keys.Up, input.ButtonUp)
	bind(keys.Down, input.ButtonDown)
	bind(keys.Left, input.ButtonLeft)
	bind(keys.Right, input.ButtonRight)
	bind(keys.A, input.ButtonA)
	bind(keys.B, input.ButtonB)
	bind(keys.X, input.ButtonX)
	bind(keys.Y, input.ButtonY)
	bind(keys.L, input.ButtonL)
	bind(keys.R, input.ButtonR)
	bind(keys.Start, input.ButtonStart)
	bind(keys.Select, input.ButtonSelect)
}

// Run drives the main loop until the window closes.
func (u *UI) Run() error {
	defer u.Cleanup()

	u.emulator.Start()

	for u.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			u.handleEvent(event)
		}

		u.updateInput()

		if err := u.emulator.RunFrame(); err != nil {
			return fmt.Errorf("ui: emulation error: %w", err)
		}

		u.queueAudio()

		if err := u.present(); err != nil {
			return fmt.Errorf("ui: render error: %w", err)
		}
	}

	return nil
}

func (u *UI) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		u.running = false
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			u.handleKeyDown(e.Keysym.Sym)
		}
	}
}

func (u *UI) handleKeyDown(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		u.running = false
	case sdl.K_SPACE:
		if u.emulator.Paused {
			u.emulator.Resume()
		} else {
			u.emulator.Pause()
		}
	case sdl.K_r:
		if sdl.GetModState()&sdl.KMOD_CTRL != 0 {
			u.emulator.Reset()
		}
	case sdl.K_f:
		if sdl.GetModState()&sdl.KMOD_ALT != 0 {
			u.toggleFullscreen()
		}
	case sdl.K_F5:
		u.saveState()
	case sdl.K_F9:
		u.loadState()
	}
}

// updateInput copies the keyboard state into joypad 1.
func (u *UI) updateInput() {
	// While a replay drives the pads, the keyboard stays out of the way
	if u.emulator.Input.Replaying() {
		return
	}

	keys := sdl.GetKeyboardState()
	var buttons uint16
	for sc, button := range u.keymap {
		if keys[sc] != 0 {
			buttons |= button
		}
	}
	u.emulator.Input.Joypads[0].Buttons = buttons
}

// queueAudio drains the APU ring into the SDL audio queue, dropping the
// frame's samples if the queue already holds enough.
func (u *UI) queueAudio() {
	if u.audioDev == 0 {
		return
	}
	n := u.emulator.APU.ReadSamples(u.audioBuf)
	if n == 0 {
		return
	}
	if sdl.GetQueuedAudioSize(u.audioDev) > uint32(len(u.audioBuf)*2*2) {
		return
	}
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&u.audioBuf[0])), n*2)
	if err := sdl.QueueAudio(u.audioDev, bytes); err != nil {
		u.emulator.Logger.Logf(debug.ComponentUI, debug.LogLevelWarning,
			"queueing audio: %v", err)
	}
}

// present uploads the framebuffer and shows it.
func (u *UI) present() error {
	fb := u.emulator.Framebuffer()
	if err := u.texture.Update(nil, unsafe.Pointer(&fb[0]), ppu.ScreenWidth*3); err != nil {
		return err
	}
	if err := u.renderer.Clear(); err != nil {
		return err
	}
	if err := u.renderer.Copy(u.texture, nil, nil); err != nil {
		return err
	}
	u.renderer.Present()
	return nil
}

func (u *UI) toggleFullscreen() {
	u.fullscreen = !u.fullscreen
	if u.fullscreen {
		u.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	} else {
		u.window.SetFullscreen(0)
	}
}

func (u *UI) saveState() {
	f, err := os.Create(u.statePath)
	if err != nil {
		u.emulator.Logger.Logf(debug.ComponentUI, debug.LogLevelError,
			"creating save state: %v", err)
		return
	}
	defer f.Close()
	if err := u.emulator.SaveStateTo(f); err != nil {
		u.emulator.Logger.Logf(debug.ComponentUI, debug.LogLevelError, "%v", err)
	}
}

func (u *UI) loadState() {
	f, err := os.Open(u.statePath)
	if err != nil {
		u.emulator.Logger.Logf(debug.ComponentUI, debug.LogLevelError,
			"opening save state: %v", err)
		return
	}
	defer f.Close()
	if err := u.emulator.LoadStateFrom(f); err != nil {
		u.emulator.Logger.Logf(debug.ComponentUI, debug.LogLevelError, "%v", err)
	}
}

// Cleanup tears down the SDL resources.
func (u *UI) Cleanup() {
	if u.audioDev != 0 {
		sdl.CloseAudioDevice(u.audioDev)
	}
	if u.texture != nil {
		u.texture.Destroy()
	}
	if u.renderer != nil {
		u.renderer.Destroy()
	}
	if u.window != nil {
		u.window.Destroy()
	}
	sdl.Quit()
}
