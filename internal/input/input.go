package input

// Joypad ports. The controllers use the hardware's serial shift-register
// interface: writing 1 then 0 to $4016 latches the button state, reads
// shift it out bit by bit. The auto-read registers $4218-$421B present the
// same words without the serial dance; the emulator refreshes them once
// per frame at VBlank.

// Button bit positions in the 16-bit joypad word (auto-read layout).
const (
	ButtonR uint16 = 1 << (iota + 4)
	ButtonL
	ButtonX
	ButtonA
	ButtonRight
	ButtonLeft
	ButtonDown
	ButtonUp
	ButtonStart
	ButtonSelect
	ButtonY
	ButtonB
)

// Joypad is one controller.
type Joypad struct {
	// Buttons is the live state, updated by the frontend.
	Buttons uint16

	// latched is the shift register captured at the last strobe.
	latched uint16
	// shift counts how many bits were read out.
	shift uint8
	// auto is the word presented at the auto-read registers.
	auto uint16
}

// InputSystem implements the memory.IOHandler interface for $4016/$4017
// and $4218-$421F.
type InputSystem struct {
	Joypads [2]Joypad

	strobe bool

	recorder *Recorder
	replayer *Replayer
}

// NewInputSystem creates the input system.
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// SetButton updates one button on a pad (0 or 1).
func (in *InputSystem) SetButton(pad int, button uint16, pressed bool) {
	if pressed {
		in.Joypads[pad].Buttons |= button
	} else {
		in.Joypads[pad].Buttons &^= button
	}
}

// Write8 handles the $4016 strobe.
func (in *InputSystem) Write8(addr uint16, value uint8) {
	if addr != 0x4016 {
		return
	}
	strobe := value&1 != 0
	if in.strobe && !strobe {
		// Falling edge: capture the buttons into the shift registers
		for i := range in.Joypads {
			in.Joypads[i].latched = in.Joypads[i].Buttons
			in.Joypads[i].shift = 0
		}
	}
	in.strobe = strobe
}

// Read8 handles serial reads and the auto-read registers.
func (in *InputSystem) Read8(addr uint16) uint8 {
	switch addr {
	case 0x4016:
		return in.serialBit(0)
	case 0x4017:
		return in.serialBit(1)
	case 0x4218:
		return uint8(in.Joypads[0].auto)
	case 0x4219:
		return uint8(in.Joypads[0].auto >> 8)
	case 0x421a:
		return uint8(in.Joypads[1].auto)
	case 0x421b:
		return uint8(in.Joypads[1].auto >> 8)
	default:
		// Ports 3 and 4 (multitap) are not connected
		return 0
	}
}

// serialBit shifts out the next bit, MSB first; exhausted pads return 1 the
// way disconnected hardware does.
func (in *InputSystem) serialBit(pad int) uint8 {
	j := &in.Joypads[pad]
	if in.strobe {
		// While the strobe is high, reads see the live B button
		return uint8(j.Buttons >> 15)
	}
	if j.shift >= 16 {
		return 1
	}
	bit := uint8(j.latched >> (15 - j.shift) & 1)
	j.shift++
	return bit
}

// AutoRead refreshes the $4218-$421B words. The emulator calls it at
// VBlank; replaying and recording hook in here so one call sees one frame.
func (in *InputSystem) AutoRead() error {
	if in.replayer != nil {
		p1, p2, err := in.replayer.ReadFrame()
		if err != nil {
			// End of the recording: detach and fall back to live input
			in.replayer = nil
		} else {
			in.Joypads[0].Buttons = p1
			in.Joypads[1].Buttons = p2
		}
	}

	for i := range in.Joypads {
		in.Joypads[i].auto = in.Joypads[i].Buttons
	}

	if in.recorder != nil {
		if err := in.recorder.WriteFrame(in.Joypads[0].Buttons, in.Joypads[1].Buttons); err != nil {
			return err
		}
	}
	return nil
}

// StartRecording attaches a recorder; every AutoRead appends one frame.
func (in *InputSystem) StartRecording(r *Recorder) { in.recorder = r }

// StartReplay attaches a replayer that overrides live input until the
// recording runs out.
func (in *InputSystem) StartReplay(r *Replayer) { in.replayer = r }

// Replaying reports whether a replay is still driving the pads.
func (in *InputSystem) Replaying() bool { return in.replayer != nil }

// State is the serializable input state.
type State struct {
	Buttons [2]uint16
	Latched [2]uint16
	Shift   [2]uint8
	Auto    [2]uint16
	Strobe  bool
}

// CaptureState snapshots the pads.
func (in *InputSystem) CaptureState() State {
	var s State
	for i := range in.Joypads {
		s.Buttons[i] = in.Joypads[i].Buttons
		s.Latched[i] = in.Joypads[i].latched
		s.Shift[i] = in.Joypads[i].shift
		s.Auto[i] = in.Joypads[i].auto
	}
	s.Strobe = in.strobe
	return s
}

// RestoreState applies a snapshot.
func (in *InputSystem) RestoreState(s State) {
	for i := range in.Joypads {
		in.Joypads[i].Buttons = s.Buttons[i]
		in.Joypads[i].latched = s.Latched[i]
		in.Joypads[i].shift = s.Shift[i]
		in.Joypads[i].auto = s.Auto[i]
	}
	in.strobe = s.Strobe
}
