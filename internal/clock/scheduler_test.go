package clock

import "testing"

// TestComponentRatios checks that the PPU runs one dot per 4 master cycles
// and the CPU is rescheduled by its consumed cycles.
func TestComponentRatios(t *testing.T) {
	c := NewMasterClock()

	var dots, instructions int
	c.PPUStep = func() { dots++ }
	c.CPUStep = func() uint64 { instructions++; return 2 }

	if err := c.RunFor(4 * 100); err != nil {
		t.Fatalf("RunFor: %v", err)
	}

	if dots < 100 {
		t.Errorf("%d dots after 400 master cycles, expected >= 100", dots)
	}
	// 2 CPU cycles = 12 master cycles per instruction
	expected := int(c.Cycle / 12)
	if instructions < expected-1 || instructions > expected+1 {
		t.Errorf("%d instructions, expected about %d", instructions, expected)
	}
}

// TestAPUSlices checks the coarse APU pacing.
func TestAPUSlices(t *testing.T) {
	c := NewMasterClock()
	c.PPUStep = func() {}
	c.CPUStep = func() uint64 { return 6 }

	var paced uint64
	c.APUStep = func(mc uint64) { paced += mc }

	if err := c.RunFor(apuSlice * 10); err != nil {
		t.Fatalf("RunFor: %v", err)
	}
	if paced < apuSlice*10 {
		t.Errorf("APU paced %d cycles, expected >= %d", paced, apuSlice*10)
	}
}

// TestUnattachedError checks the guard against a half-wired clock.
func TestUnattachedError(t *testing.T) {
	c := NewMasterClock()
	if _, err := c.Step(); err == nil {
		t.Error("expected an error with no step functions")
	}
}

// TestReset checks the timeline rewind.
func TestReset(t *testing.T) {
	c := NewMasterClock()
	c.PPUStep = func() {}
	c.CPUStep = func() uint64 { return 1 }
	if err := c.RunFor(100); err != nil {
		t.Fatalf("RunFor: %v", err)
	}
	c.Reset()
	if c.Cycle != 0 {
		t.Errorf("cycle = %d after reset, expected 0", c.Cycle)
	}
}
