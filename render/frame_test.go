package render

import (
	"testing"

	"github.com/oldwire/nesgo/ppu"
)

type testBus struct {
	chr [0x2000]uint8
}

func (tb *testBus) ChrRead(addr uint16) uint8 { return tb.chr[addr] }
func (tb *testBus) TriggerNMI()               {}

func TestFrameSkipsDisabledLayers(t *testing.T) {
	bus := &testBus{}
	p := ppu.New(bus)
	// PPUMASK left at 0: neither background nor sprites enabled.
	img := Frame(p)

	for _, px := range img.Pix {
		if px != 0 {
			t.Fatal("frame should be blank when both show-background and show-sprites are off")
		}
	}
}

func TestFrameDrawsOneBackgroundTile(t *testing.T) {
	bus := &testBus{}
	// Tile 1's pattern: every row's low bitplane all 1s, high bitplane 0 ->
	// color index 1 throughout the 8x8 tile.
	for row := 0; row < 8; row++ {
		bus.chr[16+row] = 0xFF
	}

	p := ppu.New(bus)
	p.WriteReg(ppu.PPUMASK, ppu.MASK_SHOW_BACKGROUND)

	// Nametable entry 0 (tile at 0,0) selects tile index 1.
	p.WriteReg(ppu.PPUADDR, 0x20)
	p.WriteReg(ppu.PPUADDR, 0x00)
	p.WriteReg(ppu.PPUDATA, 0x01)

	// Give palette group 0 (slots 1-3) a color 1 that differs from the
	// backdrop (slot 0 stays 0x00, which renders as SYSTEM_PALETTE[0x00]).
	p.WriteReg(ppu.PPUADDR, 0x3F)
	p.WriteReg(ppu.PPUADDR, 0x01)
	p.WriteReg(ppu.PPUDATA, 0x16)

	img := Frame(p)
	want := ppu.SYSTEM_PALETTE[0x16]
	if got := img.RGBAAt(0, 0); got.R != want[0] || got.G != want[1] || got.B != want[2] {
		t.Errorf("pixel (0,0) = %v, want SYSTEM_PALETTE[0x16] %v", got, want)
	}
}
