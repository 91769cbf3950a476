package ppu

// State is a serializable snapshot of the PPU: memories, register file and
// scan position. The framebuffer and sprite cache are rebuilt by rendering
// and are deliberately not part of it.
type State struct {
	VRAM  [65536]uint8
	CGRAM [512]uint8
	OAM   [544]uint8

	Inidisp  uint8
	Obsel    uint8
	Bgmode   uint8
	Mosaic   uint8
	Bgsc     [4]uint8
	Bg12nba  uint8
	Bg34nba  uint8
	Bghofs   [4]uint16
	Bgvofs   [4]uint16
	OfsLatch uint8

	Vmain        uint8
	Vmaddr       uint16
	VramPrefetch uint16

	Oamaddr     uint16
	OamReload   uint16
	OamWriteLow uint8

	Cgadd      uint8
	CgLatch    bool
	CgLatchVal uint8

	W12sel, W34sel, Wobjsel uint8
	Wh                      [4]uint8
	Wbglog, Wobjlog         uint8

	Tm, Ts, Tmw, Tsw uint8

	Cgwsel, Cgadsub              uint8
	ColdataR, ColdataG, ColdataB uint8

	Setini uint8

	Dot  int
	Line int

	RangeOver  bool
	TimeOver   bool
	VBlankFlag bool
	NMIPending bool
}

// CaptureState snapshots the PPU for a save state.
func (p *PPU) CaptureState() State {
	return State{
		VRAM:  p.VRAM,
		CGRAM: p.CGRAM,
		OAM:   p.OAM,

		Inidisp:  p.inidisp,
		Obsel:    p.obsel,
		Bgmode:   p.bgmode,
		Mosaic:   p.mosaic,
		Bgsc:     p.bgsc,
		Bg12nba:  p.bg12nba,
		Bg34nba:  p.bg34nba,
		Bghofs:   p.bghofs,
		Bgvofs:   p.bgvofs,
		OfsLatch: p.ofsLatch,

		Vmain:        p.vmain,
		Vmaddr:       p.vmaddr,
		VramPrefetch: p.vramPrefetch,

		Oamaddr:     p.oamaddr,
		OamReload:   p.oamReload,
		OamWriteLow: p.oamWriteLow,

		Cgadd:      p.cgadd,
		CgLatch:    p.cgLatch,
		CgLatchVal: p.cgLatchVal,

		W12sel:  p.w12sel,
		W34sel:  p.w34sel,
		Wobjsel: p.wobjsel,
		Wh:      p.wh,
		Wbglog:  p.wbglog,
		Wobjlog: p.wobjlog,

		Tm:  p.tm,
		Ts:  p.ts,
		Tmw: p.tmw,
		Tsw: p.tsw,

		Cgwsel:   p.cgwsel,
		Cgadsub:  p.cgadsub,
		ColdataR: p.coldataR,
		ColdataG: p.coldataG,
		ColdataB: p.coldataB,

		Setini: p.setini,

		Dot:  p.dot,
		Line: p.line,

		RangeOver:  p.rangeOver,
		TimeOver:   p.timeOver,
		VBlankFlag: p.VBlankFlag,
		NMIPending: p.NMIPending,
	}
}

// RestoreState applies a previously captured snapshot.
func (p *PPU) RestoreState(s State) {
	p.VRAM = s.VRAM
	p.CGRAM = s.CGRAM
	p.OAM = s.OAM

	p.inidisp = s.Inidisp
	p.obsel = s.Obsel
	p.bgmode = s.Bgmode
	p.mosaic = s.Mosaic
	p.bgsc = s.Bgsc
	p.bg12nba = s.Bg12nba
	p.bg34nba = s.Bg34nba
	p.bghofs = s.Bghofs
	p.bgvofs = s.Bgvofs
	p.ofsLatch = s.OfsLatch

	p.vmain = s.Vmain
	p.vmaddr = s.Vmaddr
	p.vramPrefetch = s.VramPrefetch

	p.oamaddr = s.Oamaddr
	p.oamReload = s.OamReload
	p.oamWriteLow = s.OamWriteLow

	p.cgadd = s.Cgadd
	p.cgLatch = s.CgLatch
	p.cgLatchVal = s.CgLatchVal

	p.w12sel = s.W12sel
	p.w34sel = s.W34sel
	p.wobjsel = s.Wobjsel
	p.wh = s.Wh
	p.wbglog = s.Wbglog
	p.wobjlog = s.Wobjlog

	p.tm = s.Tm
	p.ts = s.Ts
	p.tmw = s.Tmw
	p.tsw = s.Tsw

	p.cgwsel = s.Cgwsel
	p.cgadsub = s.Cgadsub
	p.coldataR = s.ColdataR
	p.coldataG = s.ColdataG
	p.coldataB = s.ColdataB

	p.setini = s.Setini

	p.dot = s.Dot
	p.line = s.Line

	p.rangeOver = s.RangeOver
	p.timeOver = s.TimeOver
	p.VBlankFlag = s.VBlankFlag
	p.NMIPending = s.NMIPending

	p.spriteCount = 0
}
