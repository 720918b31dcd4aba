package mappers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oldwire/nesgo/mos6502"
	"github.com/oldwire/nesgo/nesrom"
)

func writeTestROM(t *testing.T, prgBanks uint8) string {
	t.Helper()

	header := []byte{'N', 'E', 'S', 0x1A, prgBanks, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 16384*int(prgBanks))
	chr := make([]byte, 8192)
	prg[0] = 0x11
	if prgBanks == 1 {
		prg[16383] = 0x22 // last byte of the single bank
	}

	path := filepath.Join(t.TempDir(), "test.nes")
	data := append(append(header, prg...), chr...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("couldn't write test ROM: %v", err)
	}
	return path
}

func TestMapper0MirrorsSingleBank(t *testing.T) {
	path := writeTestROM(t, 1)
	rom, err := nesrom.New(path)
	if err != nil {
		t.Fatalf("couldn't load test ROM: %v", err)
	}

	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if got := m.PrgRead(0); got != 0x11 {
		t.Errorf("PrgRead(0) = %02x, want 0x11", got)
	}
	// A 16KiB cartridge mirrors its bank into both halves of 0x8000-0xFFFF.
	if got := m.PrgRead(0x4000); got != 0x11 {
		t.Errorf("PrgRead(0x4000) = %02x, want 0x11 (mirrored)", got)
	}
	if got := m.PrgRead(0x3FFF); got != 0x22 {
		t.Errorf("PrgRead(0x3FFF) = %02x, want 0x22", got)
	}
}

func TestMapper0NoMirrorForTwoBanks(t *testing.T) {
	path := writeTestROM(t, 2)
	rom, err := nesrom.New(path)
	if err != nil {
		t.Fatalf("couldn't load test ROM: %v", err)
	}

	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if got := m.PrgRead(0); got != 0x11 {
		t.Errorf("PrgRead(0) = %02x, want 0x11", got)
	}
	if m.PrgRead(0x4000) == 0x11 {
		t.Error("32KiB cartridge should not mirror bank 0 at 0x4000")
	}
}

func TestMapper0ChrReadWrite(t *testing.T) {
	path := writeTestROM(t, 1)
	rom, err := nesrom.New(path)
	if err != nil {
		t.Fatalf("couldn't load test ROM: %v", err)
	}

	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	m.ChrWrite(0x10, 0x55)
	if got := m.ChrRead(0x10); got != 0x55 {
		t.Errorf("ChrRead(0x10) = %02x, want 0x55", got)
	}
}

func TestMapper0PrgWriteFaults(t *testing.T) {
	path := writeTestROM(t, 1)
	rom, err := nesrom.New(path)
	if err != nil {
		t.Fatalf("couldn't load test ROM: %v", err)
	}

	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("PrgWrite should panic: NROM has no writable PRG window")
		}
		fe, ok := r.(*mos6502.FaultError)
		if !ok {
			t.Fatalf("recovered %T, want *mos6502.FaultError", r)
		}
		if fe.Kind != mos6502.IllegalAccess {
			t.Errorf("Kind = %v, want IllegalAccess", fe.Kind)
		}
	}()
	m.PrgWrite(0, 0x42)
}
