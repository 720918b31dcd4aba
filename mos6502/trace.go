package mos6502

import "fmt"

var branchOpcodes = map[uint8]bool{
	0x90: true, 0xB0: true, 0xF0: true, 0x30: true,
	0xD0: true, 0x10: true, 0x50: true, 0x70: true,
}

// Trace renders one disassembled line for the instruction at c.PC, in the
// register-snapshot format used by step-log comparisons:
//
//	0064  A2 01     LDX #$01                        A:01 X:02 Y:03 P:24 SP:FD
//
// It only reads memory; it never mutates CPU state, so it is safe to call
// before executing the instruction it describes.
func (c *CPU) Trace() string {
	pc := c.PC
	code := c.bus.Read(pc)
	op := &opcodeTable[code]
	if op.exec == nil {
		return fmt.Sprintf("%04X  %02X        .byte $%02X", pc, code, code)
	}

	raw := []uint8{code}
	var operandStr string

	switch op.bytes {
	case 1:
		switch code {
		case 0x0A, 0x2A, 0x4A, 0x6A:
			operandStr = "A"
		}
	case 2:
		b := c.bus.Read(pc + 1)
		raw = append(raw, b)
		if branchOpcodes[code] {
			target := pc + 2 + uint16(int8(b))
			operandStr = fmt.Sprintf("$%04X", target)
		} else {
			operandStr = c.traceOperand(op.mode, pc+1, b)
		}
	case 3:
		lo := c.bus.Read(pc + 1)
		hi := c.bus.Read(pc + 2)
		raw = append(raw, lo, hi)
		word := uint16(hi)<<8 | uint16(lo)
		switch {
		case code == 0x4C || code == 0x20:
			operandStr = fmt.Sprintf("$%04X", word)
		case code == 0x6C:
			target := c.jmpIndirectTarget(word)
			operandStr = fmt.Sprintf("($%04X) = %04X", word, target)
		default:
			operandStr = c.traceOperand(op.mode, pc+1, 0)
		}
	}

	bytesStr := ""
	for i, b := range raw {
		if i > 0 {
			bytesStr += " "
		}
		bytesStr += fmt.Sprintf("%02X", b)
	}

	opLine := fmt.Sprintf("%04X  %-8s %4s %s", pc, bytesStr, op.mnemonic, operandStr)
	status := fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X", c.A, c.X, c.Y, c.P, c.S)
	return fmt.Sprintf("%-47s %s", opLine, status)
}

// jmpIndirectTarget mirrors jmpIndirect's page-wrap bug for display only.
func (c *CPU) jmpIndirectTarget(ptr uint16) uint16 {
	lo := uint16(c.bus.Read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.bus.Read(hiAddr))
	return hi<<8 | lo
}

// traceOperand formats a non-branch operand for the modes that carry one.
// base is the address of the instruction's first operand byte; it is fed
// straight into resolveOperand so the computed effective address matches
// what execution will use.
func (c *CPU) traceOperand(mode AddressMode, base uint16, byteVal uint8) string {
	switch mode {
	case Immediate:
		return fmt.Sprintf("#$%02X", byteVal)
	case ZeroPage:
		addr := c.resolveOperand(mode, base)
		return fmt.Sprintf("$%02X = %02X", byteVal, c.bus.Read(addr))
	case ZeroPageX:
		addr := c.resolveOperand(mode, base)
		return fmt.Sprintf("$%02X,X @ %02X = %02X", byteVal, addr, c.bus.Read(addr))
	case ZeroPageY:
		addr := c.resolveOperand(mode, base)
		return fmt.Sprintf("$%02X,Y @ %02X = %02X", byteVal, addr, c.bus.Read(addr))
	case IndirectX:
		addr := c.resolveOperand(mode, base)
		ptr := byteVal + c.X
		return fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", byteVal, ptr, addr, c.bus.Read(addr))
	case IndirectY:
		addr := c.resolveOperand(mode, base)
		return fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", byteVal, addr-uint16(c.Y), addr, c.bus.Read(addr))
	case Absolute:
		addr := c.resolveOperand(mode, base)
		return fmt.Sprintf("$%04X = %02X", addr, c.bus.Read(addr))
	case AbsoluteX:
		addr := c.resolveOperand(mode, base)
		return fmt.Sprintf("$%04X,X @ %04X = %02X", c.read16(base), addr, c.bus.Read(addr))
	case AbsoluteY:
		addr := c.resolveOperand(mode, base)
		return fmt.Sprintf("$%04X,Y @ %04X = %02X", c.read16(base), addr, c.bus.Read(addr))
	default:
		return ""
	}
}
