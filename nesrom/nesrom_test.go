package nesrom

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestROM assembles a minimal iNES file: header, 1 PRG bank, 1 CHR bank.
func writeTestROM(t *testing.T, mirroring uint8) string {
	t.Helper()

	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, mirroring, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, PRG_BLOCK_SIZE)
	chr := make([]byte, CHR_BLOCK_SIZE)
	prg[0] = 0xEA // a single NOP, just so the bytes aren't all zero

	path := filepath.Join(t.TempDir(), "test.nes")
	data := append(append(header, prg...), chr...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("couldn't write test ROM: %v", err)
	}
	return path
}

func TestNewParsesMinimalROM(t *testing.T) {
	path := writeTestROM(t, 0)

	r, err := New(path)
	if err != nil {
		t.Fatalf("couldn't parse test ROM: %v", err)
	}

	if r.NumPrgBlocks() != 1 {
		t.Errorf("NumPrgBlocks() = %d, want 1", r.NumPrgBlocks())
	}
	if got := r.PrgRead(0); got != 0xEA {
		t.Errorf("PrgRead(0) = %02x, want 0xEA", got)
	}
	if r.MirroringMode() != MIRROR_HORIZONTAL {
		t.Errorf("MirroringMode() = %d, want horizontal", r.MirroringMode())
	}
	if r.MapperNum() != 0 {
		t.Errorf("MapperNum() = %d, want 0", r.MapperNum())
	}
}

func TestPrgWriteChrReadWrite(t *testing.T) {
	path := writeTestROM(t, 1)
	r, err := New(path)
	if err != nil {
		t.Fatalf("couldn't parse test ROM: %v", err)
	}

	r.PrgWrite(5, 0x42)
	if got := r.PrgRead(5); got != 0x42 {
		t.Errorf("PrgRead(5) after write = %02x, want 0x42", got)
	}

	r.ChrWrite(3, 0x07)
	if got := r.ChrRead(3); got != 0x07 {
		t.Errorf("ChrRead(3) after write = %02x, want 0x07", got)
	}

	if r.MirroringMode() != MIRROR_VERTICAL {
		t.Errorf("MirroringMode() = %d, want vertical", r.MirroringMode())
	}
}
