package mappers

import (
	"fmt"

	"github.com/oldwire/nesgo/mos6502"
)

func init() {
	RegisterMapper(0, &mapper0{baseMapper: newBaseMapper(0, "NROM")})
}

// mapper0 implements NROM: no bank switching, a single 16 or 32KiB PRG
// window and a fixed 8KiB CHR bank (ROM or RAM, either way addressed the
// same way).
type mapper0 struct {
	*baseMapper
}

// PrgRead takes addr relative to 0x8000 (0x0000-0x7FFF). A 16KiB cartridge
// mirrors that single bank across both halves of the window.
func (m *mapper0) PrgRead(addr uint16) uint8 {
	if m.rom.NumPrgBlocks() == 1 {
		addr %= 0x4000
	}
	return m.rom.PrgRead(addr)
}

// PrgWrite faults: NROM carries no PRG-RAM or bank-select registers, so a
// write anywhere in the 0x8000-0xFFFF window is illegal. The mapper has no
// view of the CPU's program counter, so PC and Addr both report the
// faulting CPU address (the cartridge-relative addr plus 0x8000).
func (m *mapper0) PrgWrite(addr uint16, val uint8) {
	panic(&mos6502.FaultError{
		Kind: mos6502.IllegalAccess,
		PC:   addr + 0x8000,
		Addr: addr + 0x8000,
		Msg:  fmt.Sprintf("write of 0x%02X to read-only PRG-ROM", val),
	})
}

func (m *mapper0) ChrRead(addr uint16) uint8       { return m.rom.ChrRead(addr) }
func (m *mapper0) ChrWrite(addr uint16, val uint8) { m.rom.ChrWrite(addr, val) }
