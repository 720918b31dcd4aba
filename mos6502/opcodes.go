package mos6502

// AddressMode is the closed set of addressing modes this CPU supports.
// Relative (branch) and indirect-JMP addressing are handled inline by
// their instructions rather than through resolveOperand, since neither
// produces an "operand address" in the general sense.
type AddressMode int

const (
	Implied AddressMode = iota
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	IndirectX
	IndirectY
)

type opcode struct {
	mnemonic string
	mode     AddressMode
	bytes    uint8
	cycles   uint8
	exec     func(c *CPU, mode AddressMode)
}

// opcodeTable is a 256-entry, process-lifetime-immutable dispatch table
// built once at package init. Bytes with no assigned descriptor keep the
// zero value (exec == nil), which Step treats as a decode fault.
var opcodeTable [256]opcode

func def(code uint8, mnemonic string, mode AddressMode, bytes, cycles uint8, exec func(c *CPU, mode AddressMode)) {
	opcodeTable[code] = opcode{mnemonic: mnemonic, mode: mode, bytes: bytes, cycles: cycles, exec: exec}
}

// Mnemonic returns the instruction name for opcode byte b, or "" if b
// has no descriptor.
func Mnemonic(b uint8) string { return opcodeTable[b].mnemonic }

// OperandBytes returns the total instruction length in bytes (1-3).
func OperandBytes(b uint8) uint8 { return opcodeTable[b].bytes }

// resolveOperand computes the effective address for mode given a base
// address. base is normally PC (pointing just past the opcode byte),
// but the trace disassembler calls this with an arbitrary base so it can
// describe an instruction without mutating CPU state.
func (c *CPU) resolveOperand(mode AddressMode, base uint16) uint16 {
	switch mode {
	case Immediate:
		return base
	case ZeroPage:
		return uint16(c.bus.Read(base))
	case ZeroPageX:
		return uint16(c.bus.Read(base) + c.X)
	case ZeroPageY:
		return uint16(c.bus.Read(base) + c.Y)
	case Absolute:
		return c.read16(base)
	case AbsoluteX:
		return c.read16(base) + uint16(c.X)
	case AbsoluteY:
		return c.read16(base) + uint16(c.Y)
	case IndirectX:
		p := c.bus.Read(base) + c.X
		lo := uint16(c.bus.Read(uint16(p)))
		hi := uint16(c.bus.Read(uint16(p + 1)))
		return hi<<8 | lo
	case IndirectY:
		p := c.bus.Read(base)
		lo := uint16(c.bus.Read(uint16(p)))
		hi := uint16(c.bus.Read(uint16(p + 1)))
		return (hi<<8 | lo) + uint16(c.Y)
	default:
		panic(fault(InvariantBreach, c.PC, base, "resolveOperand called with Implied mode"))
	}
}

// operand resolves the address for the current instruction, whose
// operand immediately follows the opcode byte at c.PC.
func (c *CPU) operand(mode AddressMode) uint16 {
	return c.resolveOperand(mode, c.PC)
}

func init() {
	// Official opcodes.
	def(0x69, "ADC", Immediate, 2, 2, adc)
	def(0x65, "ADC", ZeroPage, 2, 3, adc)
	def(0x75, "ADC", ZeroPageX, 2, 4, adc)
	def(0x6D, "ADC", Absolute, 3, 4, adc)
	def(0x7D, "ADC", AbsoluteX, 3, 4, adc)
	def(0x79, "ADC", AbsoluteY, 3, 4, adc)
	def(0x61, "ADC", IndirectX, 2, 6, adc)
	def(0x71, "ADC", IndirectY, 2, 5, adc)

	def(0x29, "AND", Immediate, 2, 2, and)
	def(0x25, "AND", ZeroPage, 2, 3, and)
	def(0x35, "AND", ZeroPageX, 2, 4, and)
	def(0x2D, "AND", Absolute, 3, 4, and)
	def(0x3D, "AND", AbsoluteX, 3, 4, and)
	def(0x39, "AND", AbsoluteY, 3, 4, and)
	def(0x21, "AND", IndirectX, 2, 6, and)
	def(0x31, "AND", IndirectY, 2, 5, and)

	def(0x0A, "ASL", Implied, 1, 2, aslAcc)
	def(0x06, "ASL", ZeroPage, 2, 5, asl)
	def(0x16, "ASL", ZeroPageX, 2, 6, asl)
	def(0x0E, "ASL", Absolute, 3, 6, asl)
	def(0x1E, "ASL", AbsoluteX, 3, 7, asl)

	def(0x90, "BCC", Implied, 2, 2, bcc)
	def(0xB0, "BCS", Implied, 2, 2, bcs)
	def(0xF0, "BEQ", Implied, 2, 2, beq)
	def(0x30, "BMI", Implied, 2, 2, bmi)
	def(0xD0, "BNE", Implied, 2, 2, bne)
	def(0x10, "BPL", Implied, 2, 2, bpl)
	def(0x50, "BVC", Implied, 2, 2, bvc)
	def(0x70, "BVS", Implied, 2, 2, bvs)

	def(0x24, "BIT", ZeroPage, 2, 3, bit)
	def(0x2C, "BIT", Absolute, 3, 4, bit)

	def(0x00, "BRK", Implied, 2, 7, brk)

	def(0x18, "CLC", Implied, 1, 2, clc)
	def(0xD8, "CLD", Implied, 1, 2, cld)
	def(0x58, "CLI", Implied, 1, 2, cli)
	def(0xB8, "CLV", Implied, 1, 2, clv)

	def(0xC9, "CMP", Immediate, 2, 2, cmp)
	def(0xC5, "CMP", ZeroPage, 2, 3, cmp)
	def(0xD5, "CMP", ZeroPageX, 2, 4, cmp)
	def(0xCD, "CMP", Absolute, 3, 4, cmp)
	def(0xDD, "CMP", AbsoluteX, 3, 4, cmp)
	def(0xD9, "CMP", AbsoluteY, 3, 4, cmp)
	def(0xC1, "CMP", IndirectX, 2, 6, cmp)
	def(0xD1, "CMP", IndirectY, 2, 5, cmp)

	def(0xE0, "CPX", Immediate, 2, 2, cpx)
	def(0xE4, "CPX", ZeroPage, 2, 3, cpx)
	def(0xEC, "CPX", Absolute, 3, 4, cpx)

	def(0xC0, "CPY", Immediate, 2, 2, cpy)
	def(0xC4, "CPY", ZeroPage, 2, 3, cpy)
	def(0xCC, "CPY", Absolute, 3, 4, cpy)

	def(0xC6, "DEC", ZeroPage, 2, 5, dec)
	def(0xD6, "DEC", ZeroPageX, 2, 6, dec)
	def(0xCE, "DEC", Absolute, 3, 6, dec)
	def(0xDE, "DEC", AbsoluteX, 3, 7, dec)
	def(0xCA, "DEX", Implied, 1, 2, dex)
	def(0x88, "DEY", Implied, 1, 2, dey)

	def(0x49, "EOR", Immediate, 2, 2, eor)
	def(0x45, "EOR", ZeroPage, 2, 3, eor)
	def(0x55, "EOR", ZeroPageX, 2, 4, eor)
	def(0x4D, "EOR", Absolute, 3, 4, eor)
	def(0x5D, "EOR", AbsoluteX, 3, 4, eor)
	def(0x59, "EOR", AbsoluteY, 3, 4, eor)
	def(0x41, "EOR", IndirectX, 2, 6, eor)
	def(0x51, "EOR", IndirectY, 2, 5, eor)

	def(0xE6, "INC", ZeroPage, 2, 5, inc)
	def(0xF6, "INC", ZeroPageX, 2, 6, inc)
	def(0xEE, "INC", Absolute, 3, 6, inc)
	def(0xFE, "INC", AbsoluteX, 3, 7, inc)
	def(0xE8, "INX", Implied, 1, 2, inx)
	def(0xC8, "INY", Implied, 1, 2, iny)

	def(0x4C, "JMP", Absolute, 3, 3, jmp)
	def(0x6C, "JMP", Absolute, 3, 5, jmpIndirect)
	def(0x20, "JSR", Absolute, 3, 6, jsr)

	def(0xA9, "LDA", Immediate, 2, 2, lda)
	def(0xA5, "LDA", ZeroPage, 2, 3, lda)
	def(0xB5, "LDA", ZeroPageX, 2, 4, lda)
	def(0xAD, "LDA", Absolute, 3, 4, lda)
	def(0xBD, "LDA", AbsoluteX, 3, 4, lda)
	def(0xB9, "LDA", AbsoluteY, 3, 4, lda)
	def(0xA1, "LDA", IndirectX, 2, 6, lda)
	def(0xB1, "LDA", IndirectY, 2, 5, lda)

	def(0xA2, "LDX", Immediate, 2, 2, ldx)
	def(0xA6, "LDX", ZeroPage, 2, 3, ldx)
	def(0xB6, "LDX", ZeroPageY, 2, 4, ldx)
	def(0xAE, "LDX", Absolute, 3, 4, ldx)
	def(0xBE, "LDX", AbsoluteY, 3, 4, ldx)

	def(0xA0, "LDY", Immediate, 2, 2, ldy)
	def(0xA4, "LDY", ZeroPage, 2, 3, ldy)
	def(0xB4, "LDY", ZeroPageX, 2, 4, ldy)
	def(0xAC, "LDY", Absolute, 3, 4, ldy)
	def(0xBC, "LDY", AbsoluteX, 3, 4, ldy)

	def(0x4A, "LSR", Implied, 1, 2, lsrAcc)
	def(0x46, "LSR", ZeroPage, 2, 5, lsr)
	def(0x56, "LSR", ZeroPageX, 2, 6, lsr)
	def(0x4E, "LSR", Absolute, 3, 6, lsr)
	def(0x5E, "LSR", AbsoluteX, 3, 7, lsr)

	def(0xEA, "NOP", Implied, 1, 2, nop)

	def(0x09, "ORA", Immediate, 2, 2, ora)
	def(0x05, "ORA", ZeroPage, 2, 3, ora)
	def(0x15, "ORA", ZeroPageX, 2, 4, ora)
	def(0x0D, "ORA", Absolute, 3, 4, ora)
	def(0x1D, "ORA", AbsoluteX, 3, 4, ora)
	def(0x19, "ORA", AbsoluteY, 3, 4, ora)
	def(0x01, "ORA", IndirectX, 2, 6, ora)
	def(0x11, "ORA", IndirectY, 2, 5, ora)

	def(0x48, "PHA", Implied, 1, 3, pha)
	def(0x08, "PHP", Implied, 1, 3, php)
	def(0x68, "PLA", Implied, 1, 4, pla)
	def(0x28, "PLP", Implied, 1, 4, plp)

	def(0x2A, "ROL", Implied, 1, 2, rolAcc)
	def(0x26, "ROL", ZeroPage, 2, 5, rol)
	def(0x36, "ROL", ZeroPageX, 2, 6, rol)
	def(0x2E, "ROL", Absolute, 3, 6, rol)
	def(0x3E, "ROL", AbsoluteX, 3, 7, rol)

	def(0x6A, "ROR", Implied, 1, 2, rorAcc)
	def(0x66, "ROR", ZeroPage, 2, 5, ror)
	def(0x76, "ROR", ZeroPageX, 2, 6, ror)
	def(0x6E, "ROR", Absolute, 3, 6, ror)
	def(0x7E, "ROR", AbsoluteX, 3, 7, ror)

	def(0x40, "RTI", Implied, 1, 6, rti)
	def(0x60, "RTS", Implied, 1, 6, rts)

	def(0xE9, "SBC", Immediate, 2, 2, sbc)
	def(0xE5, "SBC", ZeroPage, 2, 3, sbc)
	def(0xF5, "SBC", ZeroPageX, 2, 4, sbc)
	def(0xED, "SBC", Absolute, 3, 4, sbc)
	def(0xFD, "SBC", AbsoluteX, 3, 4, sbc)
	def(0xF9, "SBC", AbsoluteY, 3, 4, sbc)
	def(0xE1, "SBC", IndirectX, 2, 6, sbc)
	def(0xF1, "SBC", IndirectY, 2, 5, sbc)
	def(0xEB, "SBC", Immediate, 2, 2, sbc) // undocumented duplicate

	def(0x38, "SEC", Implied, 1, 2, sec)
	def(0xF8, "SED", Implied, 1, 2, sed)
	def(0x78, "SEI", Implied, 1, 2, sei)

	def(0x85, "STA", ZeroPage, 2, 3, sta)
	def(0x95, "STA", ZeroPageX, 2, 4, sta)
	def(0x8D, "STA", Absolute, 3, 4, sta)
	def(0x9D, "STA", AbsoluteX, 3, 5, sta)
	def(0x99, "STA", AbsoluteY, 3, 5, sta)
	def(0x81, "STA", IndirectX, 2, 6, sta)
	def(0x91, "STA", IndirectY, 2, 6, sta)

	def(0x86, "STX", ZeroPage, 2, 3, stx)
	def(0x96, "STX", ZeroPageY, 2, 4, stx)
	def(0x8E, "STX", Absolute, 3, 4, stx)

	def(0x84, "STY", ZeroPage, 2, 3, sty)
	def(0x94, "STY", ZeroPageX, 2, 4, sty)
	def(0x8C, "STY", Absolute, 3, 4, sty)

	def(0xAA, "TAX", Implied, 1, 2, tax)
	def(0xA8, "TAY", Implied, 1, 2, tay)
	def(0xBA, "TSX", Implied, 1, 2, tsx)
	def(0x8A, "TXA", Implied, 1, 2, txa)
	def(0x9A, "TXS", Implied, 1, 2, txs)
	def(0x98, "TYA", Implied, 1, 2, tya)

	defineIllegalOpcodes()
}

// defineIllegalOpcodes registers the documented unofficial opcodes: NOP
// variants, LAX, SAX, DCP, ISB, SLO, RLA, SRE, RRA, ALR, ANC.
func defineIllegalOpcodes() {
	// Single-byte NOP variants.
	for _, c := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(c, "NOP", Implied, 1, 2, nop)
	}
	// Two-byte (zero page / immediate) read-and-discard NOPs.
	for _, c := range []uint8{0x04, 0x44, 0x64} {
		def(c, "NOP", ZeroPage, 2, 3, nop)
	}
	for _, c := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		def(c, "NOP", ZeroPageX, 2, 4, nop)
	}
	def(0x80, "NOP", Immediate, 2, 2, nop)
	// Three-byte (absolute) read-and-discard NOPs.
	def(0x0C, "NOP", Absolute, 3, 4, nop)
	for _, c := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		def(c, "NOP", AbsoluteX, 3, 4, nop)
	}

	def(0xA7, "LAX", ZeroPage, 2, 3, lax)
	def(0xB7, "LAX", ZeroPageY, 2, 4, lax)
	def(0xAF, "LAX", Absolute, 3, 4, lax)
	def(0xBF, "LAX", AbsoluteY, 3, 4, lax)
	def(0xA3, "LAX", IndirectX, 2, 6, lax)
	def(0xB3, "LAX", IndirectY, 2, 5, lax)

	def(0x87, "SAX", ZeroPage, 2, 3, sax)
	def(0x97, "SAX", ZeroPageY, 2, 4, sax)
	def(0x8F, "SAX", Absolute, 3, 4, sax)
	def(0x83, "SAX", IndirectX, 2, 6, sax)

	def(0xC7, "DCP", ZeroPage, 2, 5, dcp)
	def(0xD7, "DCP", ZeroPageX, 2, 6, dcp)
	def(0xCF, "DCP", Absolute, 3, 6, dcp)
	def(0xDF, "DCP", AbsoluteX, 3, 7, dcp)
	def(0xDB, "DCP", AbsoluteY, 3, 7, dcp)
	def(0xC3, "DCP", IndirectX, 2, 8, dcp)
	def(0xD3, "DCP", IndirectY, 2, 8, dcp)

	def(0xE7, "ISB", ZeroPage, 2, 5, isb)
	def(0xF7, "ISB", ZeroPageX, 2, 6, isb)
	def(0xEF, "ISB", Absolute, 3, 6, isb)
	def(0xFF, "ISB", AbsoluteX, 3, 7, isb)
	def(0xFB, "ISB", AbsoluteY, 3, 7, isb)
	def(0xE3, "ISB", IndirectX, 2, 8, isb)
	def(0xF3, "ISB", IndirectY, 2, 8, isb)

	def(0x07, "SLO", ZeroPage, 2, 5, slo)
	def(0x17, "SLO", ZeroPageX, 2, 6, slo)
	def(0x0F, "SLO", Absolute, 3, 6, slo)
	def(0x1F, "SLO", AbsoluteX, 3, 7, slo)
	def(0x1B, "SLO", AbsoluteY, 3, 7, slo)
	def(0x03, "SLO", IndirectX, 2, 8, slo)
	def(0x13, "SLO", IndirectY, 2, 8, slo)

	def(0x27, "RLA", ZeroPage, 2, 5, rla)
	def(0x37, "RLA", ZeroPageX, 2, 6, rla)
	def(0x2F, "RLA", Absolute, 3, 6, rla)
	def(0x3F, "RLA", AbsoluteX, 3, 7, rla)
	def(0x3B, "RLA", AbsoluteY, 3, 7, rla)
	def(0x23, "RLA", IndirectX, 2, 8, rla)
	def(0x33, "RLA", IndirectY, 2, 8, rla)

	def(0x47, "SRE", ZeroPage, 2, 5, sre)
	def(0x57, "SRE", ZeroPageX, 2, 6, sre)
	def(0x4F, "SRE", Absolute, 3, 6, sre)
	def(0x5F, "SRE", AbsoluteX, 3, 7, sre)
	def(0x5B, "SRE", AbsoluteY, 3, 7, sre)
	def(0x43, "SRE", IndirectX, 2, 8, sre)
	def(0x53, "SRE", IndirectY, 2, 8, sre)

	def(0x67, "RRA", ZeroPage, 2, 5, rra)
	def(0x77, "RRA", ZeroPageX, 2, 6, rra)
	def(0x6F, "RRA", Absolute, 3, 6, rra)
	def(0x7F, "RRA", AbsoluteX, 3, 7, rra)
	def(0x7B, "RRA", AbsoluteY, 3, 7, rra)
	def(0x63, "RRA", IndirectX, 2, 8, rra)
	def(0x73, "RRA", IndirectY, 2, 8, rra)

	def(0x4B, "ALR", Immediate, 2, 2, alr)
	def(0x0B, "ANC", Immediate, 2, 2, anc)
	def(0x2B, "ANC", Immediate, 2, 2, anc)
}
