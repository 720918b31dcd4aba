package mos6502

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) addWithCarry(v uint8) {
	sum := uint16(c.A) + uint16(v) + uint16(b2u(c.flag(FlagC)))
	result := uint8(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^result)&(v^result)&0x80 != 0)
	c.A = result
	c.setNZ(c.A)
}

func adc(c *CPU, mode AddressMode) { c.addWithCarry(c.bus.Read(c.operand(mode))) }
func sbc(c *CPU, mode AddressMode) { c.addWithCarry(^c.bus.Read(c.operand(mode))) }

func and(c *CPU, mode AddressMode) { c.A &= c.bus.Read(c.operand(mode)); c.setNZ(c.A) }
func ora(c *CPU, mode AddressMode) { c.A |= c.bus.Read(c.operand(mode)); c.setNZ(c.A) }
func eor(c *CPU, mode AddressMode) { c.A ^= c.bus.Read(c.operand(mode)); c.setNZ(c.A) }

func asl(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.bus.Write(addr, v)
	c.setNZ(v)
}

func aslAcc(c *CPU, mode AddressMode) {
	c.setFlag(FlagC, c.A&0x80 != 0)
	c.A <<= 1
	c.setNZ(c.A)
}

func lsr(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.bus.Write(addr, v)
	c.setNZ(v)
}

func lsrAcc(c *CPU, mode AddressMode) {
	c.setFlag(FlagC, c.A&0x01 != 0)
	c.A >>= 1
	c.setNZ(c.A)
}

func rol(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	carryIn := b2u(c.flag(FlagC))
	c.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.bus.Write(addr, v)
	c.setNZ(v)
}

func rolAcc(c *CPU, mode AddressMode) {
	carryIn := b2u(c.flag(FlagC))
	c.setFlag(FlagC, c.A&0x80 != 0)
	c.A = (c.A << 1) | carryIn
	c.setNZ(c.A)
}

func ror(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	carryIn := b2u(c.flag(FlagC))
	c.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | (carryIn << 7)
	c.bus.Write(addr, v)
	c.setNZ(v)
}

func rorAcc(c *CPU, mode AddressMode) {
	carryIn := b2u(c.flag(FlagC))
	c.setFlag(FlagC, c.A&0x01 != 0)
	c.A = (c.A >> 1) | (carryIn << 7)
	c.setNZ(c.A)
}

func bit(c *CPU, mode AddressMode) {
	v := c.bus.Read(c.operand(mode))
	c.setFlag(FlagZ, c.A&v == 0)
	c.setFlag(FlagV, v&0x40 != 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

func compare(c *CPU, reg, v uint8) {
	c.setFlag(FlagC, reg >= v)
	c.setNZ(reg - v)
}

func cmp(c *CPU, mode AddressMode) { compare(c, c.A, c.bus.Read(c.operand(mode))) }
func cpx(c *CPU, mode AddressMode) { compare(c, c.X, c.bus.Read(c.operand(mode))) }
func cpy(c *CPU, mode AddressMode) { compare(c, c.Y, c.bus.Read(c.operand(mode))) }

func dec(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	c.setNZ(v)
}

func inc(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.setNZ(v)
}

func dex(c *CPU, mode AddressMode) { c.X--; c.setNZ(c.X) }
func dey(c *CPU, mode AddressMode) { c.Y--; c.setNZ(c.Y) }
func inx(c *CPU, mode AddressMode) { c.X++; c.setNZ(c.X) }
func iny(c *CPU, mode AddressMode) { c.Y++; c.setNZ(c.Y) }

// branch reads the signed relative offset at c.PC, always consuming that
// byte, then jumps relative to the byte following it when cond holds.
func branch(c *CPU, cond bool) {
	offset := int8(c.bus.Read(c.PC))
	c.PC++
	if cond {
		c.PC = uint16(int32(c.PC) + int32(offset))
	}
}

func bcc(c *CPU, mode AddressMode) { branch(c, !c.flag(FlagC)) }
func bcs(c *CPU, mode AddressMode) { branch(c, c.flag(FlagC)) }
func beq(c *CPU, mode AddressMode) { branch(c, c.flag(FlagZ)) }
func bne(c *CPU, mode AddressMode) { branch(c, !c.flag(FlagZ)) }
func bmi(c *CPU, mode AddressMode) { branch(c, c.flag(FlagN)) }
func bpl(c *CPU, mode AddressMode) { branch(c, !c.flag(FlagN)) }
func bvs(c *CPU, mode AddressMode) { branch(c, c.flag(FlagV)) }
func bvc(c *CPU, mode AddressMode) { branch(c, !c.flag(FlagV)) }

func jmp(c *CPU, mode AddressMode) { c.PC = c.operand(mode) }

// jmpIndirect reproduces the page-wrap bug: if the pointer's low byte is
// 0xFF, the high byte is fetched from the start of the same page rather
// than the next page.
func jmpIndirect(c *CPU, mode AddressMode) {
	ptr := c.operand(Absolute)
	lo := uint16(c.bus.Read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.bus.Read(hiAddr))
	c.PC = hi<<8 | lo
}

func jsr(c *CPU, mode AddressMode) {
	target := c.operand(mode)
	c.push16(c.PC + 1)
	c.PC = target
}

func rts(c *CPU, mode AddressMode) { c.PC = c.pull16() + 1 }

func brk(c *CPU, mode AddressMode) {
	c.push16(c.PC + 1)
	c.push(c.P | FlagB1 | FlagB2)
	c.setFlag(FlagI, true)
	c.PC = c.read16(vectorBRK)
}

func rti(c *CPU, mode AddressMode) {
	c.P = (c.pull() &^ FlagB1) | FlagB2
	c.PC = c.pull16()
}

func clc(c *CPU, mode AddressMode) { c.setFlag(FlagC, false) }
func cld(c *CPU, mode AddressMode) { c.setFlag(FlagD, false) }
func cli(c *CPU, mode AddressMode) { c.setFlag(FlagI, false) }
func clv(c *CPU, mode AddressMode) { c.setFlag(FlagV, false) }
func sec(c *CPU, mode AddressMode) { c.setFlag(FlagC, true) }
func sed(c *CPU, mode AddressMode) { c.setFlag(FlagD, true) }
func sei(c *CPU, mode AddressMode) { c.setFlag(FlagI, true) }

func lda(c *CPU, mode AddressMode) { c.A = c.bus.Read(c.operand(mode)); c.setNZ(c.A) }
func ldx(c *CPU, mode AddressMode) { c.X = c.bus.Read(c.operand(mode)); c.setNZ(c.X) }
func ldy(c *CPU, mode AddressMode) { c.Y = c.bus.Read(c.operand(mode)); c.setNZ(c.Y) }

func sta(c *CPU, mode AddressMode) { c.bus.Write(c.operand(mode), c.A) }
func stx(c *CPU, mode AddressMode) { c.bus.Write(c.operand(mode), c.X) }
func sty(c *CPU, mode AddressMode) { c.bus.Write(c.operand(mode), c.Y) }

func tax(c *CPU, mode AddressMode) { c.X = c.A; c.setNZ(c.X) }
func tay(c *CPU, mode AddressMode) { c.Y = c.A; c.setNZ(c.Y) }
func tsx(c *CPU, mode AddressMode) { c.X = c.S; c.setNZ(c.X) }
func txa(c *CPU, mode AddressMode) { c.A = c.X; c.setNZ(c.A) }
func txs(c *CPU, mode AddressMode) { c.S = c.X }
func tya(c *CPU, mode AddressMode) { c.A = c.Y; c.setNZ(c.A) }

func pha(c *CPU, mode AddressMode) { c.push(c.A) }
func php(c *CPU, mode AddressMode) { c.push(c.P | FlagB1 | FlagB2) }
func pla(c *CPU, mode AddressMode) { c.A = c.pull(); c.setNZ(c.A) }
func plp(c *CPU, mode AddressMode) { c.P = (c.pull() &^ FlagB1) | FlagB2 }

func nop(c *CPU, mode AddressMode) {}

// --- Undocumented opcodes ---

func lax(c *CPU, mode AddressMode) {
	v := c.bus.Read(c.operand(mode))
	c.A, c.X = v, v
	c.setNZ(v)
}

func sax(c *CPU, mode AddressMode) { c.bus.Write(c.operand(mode), c.A&c.X) }

func dcp(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	compare(c, c.A, v)
}

func isb(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.addWithCarry(^v)
}

func slo(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.bus.Write(addr, v)
	c.A |= v
	c.setNZ(c.A)
}

func rla(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	carryIn := b2u(c.flag(FlagC))
	c.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.bus.Write(addr, v)
	c.A &= v
	c.setNZ(c.A)
}

func sre(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.bus.Write(addr, v)
	c.A ^= v
	c.setNZ(c.A)
}

func rra(c *CPU, mode AddressMode) {
	addr := c.operand(mode)
	v := c.bus.Read(addr)
	carryIn := b2u(c.flag(FlagC))
	c.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | (carryIn << 7)
	c.bus.Write(addr, v)
	c.addWithCarry(v)
}

func alr(c *CPU, mode AddressMode) {
	c.A &= c.bus.Read(c.operand(mode))
	c.setFlag(FlagC, c.A&0x01 != 0)
	c.A >>= 1
	c.setNZ(c.A)
}

func anc(c *CPU, mode AddressMode) {
	c.A &= c.bus.Read(c.operand(mode))
	c.setNZ(c.A)
	c.setFlag(FlagC, c.A&0x80 != 0)
}
