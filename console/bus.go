// Package console wires the CPU, PPU, cartridge mapper and controllers
// into a single addressable machine and drives the emulation loop.
package console

import (
	"fmt"
	"image"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/oldwire/nesgo/mappers"
	"github.com/oldwire/nesgo/mos6502"
	"github.com/oldwire/nesgo/ppu"
	"github.com/oldwire/nesgo/render"
)

const (
	baseRAMSize = 0x0800 // 2KiB built-in RAM

	ramMirrorEnd    = 0x1FFF
	ppuRegMirrorEnd = 0x3FFF
	apuIORegEnd     = 0x4017
	cartridgeStart  = 0x8000
)

const (
	controller1Port = 0x4016
	controller2Port = 0x4017
	oamDMAPort      = 0x4014
)

// Bus is the NES address space: it owns RAM and the controllers outright,
// borrows PRG/CHR access through the cartridge mapper, and drives the CPU
// and PPU in lockstep. It implements both mos6502.Bus and ppu.Bus, as well
// as ebiten.Game so it can drive the host render loop directly.
type Bus struct {
	cpu         *mos6502.CPU
	ppu         *ppu.PPU
	mapper      mappers.Mapper
	ram         [baseRAMSize]uint8
	controllers [2]*controller

	nmiPending bool

	frameMu  sync.Mutex
	frame    *image.RGBA
	frameImg *ebiten.Image
}

// New constructs a Bus wired to mapper m, resets the CPU, and configures
// the ebiten window for the resulting PPU resolution.
func New(m mappers.Mapper) *Bus {
	b := &Bus{
		mapper:      m,
		controllers: [2]*controller{{}, {}},
	}

	b.cpu = mos6502.New(b)
	b.ppu = ppu.New(b)
	b.ppu.SetMirrorMode(m.MirroringMode())
	b.cpu.Reset()

	w, h := b.ppu.GetResolution()
	b.frameImg = ebiten.NewImage(w, h)
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return b
}

// SetScale resizes the ebiten window to the PPU resolution times factor.
// Unused in headless mode, where no window is ever created.
func (b *Bus) SetScale(factor int) {
	if factor < 1 {
		factor = 1
	}
	w, h := b.ppu.GetResolution()
	ebiten.SetWindowSize(w*factor, h*factor)
}

func (b *Bus) MirrorMode() uint8 { return b.mapper.MirroringMode() }

// Layout reports the NES's native resolution; ebiten scales from there.
func (b *Bus) Layout(outsideWidth, outsideHeight int) (int, int) {
	return b.ppu.GetResolution()
}

// Draw blits the most recently completed frame into screen. It runs on
// ebiten's own goroutine while Run drives the emulation on its own, so
// access to the shared frame buffer is guarded by frameMu.
func (b *Bus) Draw(screen *ebiten.Image) {
	b.frameMu.Lock()
	f := b.frame
	b.frameMu.Unlock()
	if f == nil {
		return
	}
	b.frameImg.WritePixels(f.Pix)
	screen.DrawImage(b.frameImg, nil)
}

// Update is required by ebiten.Game but does no work: Run, not ebiten's
// own ticker, drives the emulation.
func (b *Bus) Update() error { return nil }

// TriggerNMI is called by the PPU on entering VBlank when NMI generation
// is enabled. It only ever flips a flag; the CPU polls it, it never holds
// a reference back into the PPU or bus.
func (b *Bus) TriggerNMI() { b.nmiPending = true }

// PollNMI reports and clears a pending NMI, satisfying mos6502.Bus.
func (b *Bus) PollNMI() bool {
	v := b.nmiPending
	b.nmiPending = false
	return v
}

// ChrRead satisfies ppu.Bus, routing pattern-table fetches to the
// cartridge mapper.
func (b *Bus) ChrRead(addr uint16) uint8 { return b.mapper.ChrRead(addr) }

// Read implements the CPU memory map. https://www.nesdev.org/wiki/CPU_memory_map
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&0x07FF]
	case addr <= ppuRegMirrorEnd:
		return b.ppu.ReadReg(0x2000 + addr%8)
	case addr == controller1Port:
		return b.controllers[0].read()
	case addr == controller2Port:
		return b.controllers[1].read()
	case addr <= apuIORegEnd:
		return 0 // audio registers: no-op
	case addr < cartridgeStart:
		return 0 // no save RAM modeled
	default:
		return b.mapper.PrgRead(addr - cartridgeStart)
	}
}

// Write implements the CPU memory map's write side, including OAM DMA.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&0x07FF] = val
	case addr <= ppuRegMirrorEnd:
		b.ppu.WriteReg(0x2000+addr%8, val)
	case addr == oamDMAPort:
		b.oamDMA(val)
	case addr == controller1Port:
		b.controllers[0].write(val)
	case addr == controller2Port:
		b.controllers[1].write(val)
	case addr <= apuIORegEnd:
		// audio registers: no-op
	case addr < cartridgeStart:
		// no save RAM modeled
	default:
		b.mapper.PrgWrite(addr-cartridgeStart, val)
	}
}

// oamDMA copies 256 bytes from CPU address page<<8 into OAM through the PPU's
// data port. It wraps after byte 255 and is modeled as free in CPU
// cycles rather than stalling 513-514 cycles, trading hardware fidelity
// for a simpler timing model.
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteReg(ppu.OAMDATA, b.Read(base+uint16(i)))
	}
}

// Run drives CPU/PPU co-simulation until stop is closed or the core
// raises a fault. Step order is fixed: poll-and-service NMI happens
// inside cpu.Step, then the PPU advances three dots per CPU cycle, and
// the frame callback fires synchronously the instant a field completes.
func (b *Bus) Run(stop <-chan struct{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*mos6502.FaultError); ok {
				err = fe
				return
			}
			panic(r)
		}
	}()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		cycles, stepErr := b.cpu.Step()
		if stepErr != nil {
			panic(stepErr)
		}

		for i := uint8(0); i < cycles*3; i++ {
			if b.ppu.Tick() {
				b.presentFrame()
			}
		}
	}
}

func (b *Bus) presentFrame() {
	f := render.Frame(b.ppu)
	b.frameMu.Lock()
	b.frame = f
	b.frameMu.Unlock()
}

func (b *Bus) String() string {
	return fmt.Sprintf("CPU: %s\nScanline: %d Dot: %d", b.cpu, b.ppu.Scanline(), b.ppu.Dot())
}

// DumpState pretty-prints the CPU and controller state for debugging. The
// PPU and its VRAM/CHR contents are omitted: spew would otherwise dump the
// whole pattern/nametable backing arrays.
func (b *Bus) DumpState() string {
	return spew.Sdump(b.cpu) + spew.Sdump(b.controllers)
}
