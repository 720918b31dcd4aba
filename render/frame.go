// Package render turns a finished PPU field into pixels. It never reaches
// back into the PPU's mutable state beyond reading it: everything here is
// a pure function of a read-only snapshot, grounded on the nametable/
// attribute-table/pattern-table walk the hardware itself performs.
package render

import (
	"image"
	"image/color"

	"github.com/oldwire/nesgo/ppu"
)

const (
	nametableBytes = 0x03C0 // 32*30 tile entries
	attrTableBase  = 0x03C0
	tilesPerRow    = 32
)

// Frame reads p's current nametable, attribute table, pattern tables,
// palette RAM and OAM, and renders one full 256x240 field: background
// first, then all 64 sprites in reverse OAM order so lower-index sprites
// draw on top. Each layer is drawn only when its PPUMASK show bit is set;
// with neither set the image stays all zero (transparent black).
func Frame(p *ppu.PPU) *image.RGBA {
	w, h := p.GetResolution()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	if p.Mask()&ppu.MASK_SHOW_BACKGROUND != 0 {
		drawBackground(p, img)
	}
	if p.Mask()&ppu.MASK_SHOW_SPRITES != 0 {
		drawSprites(p, img)
	}

	return img
}

func drawBackground(p *ppu.PPU, img *image.RGBA) {
	bank := p.BackgroundPatternAddr()

	for i := 0; i < nametableBytes; i++ {
		tileIdx := uint16(p.Read(0x2000 + uint16(i)))
		tileX := i % tilesPerRow
		tileY := i / tilesPerRow

		tile := p.ReadCHR(bank, tileIdx)
		pal := backgroundPalette(p, tileX, tileY)

		for y := 0; y < 8; y++ {
			upper, lower := tile[y], tile[y+8]
			for x := 7; x >= 0; x-- {
				value := (1&lower)<<1 | (1 & upper)
				upper >>= 1
				lower >>= 1
				setPixel(img, tileX*8+x, tileY*8+y, systemColor(pal[value]))
			}
		}
	}
}

func drawSprites(p *ppu.PPU, img *image.RGBA) {
	bank := p.SpritePatternAddr()

	for i := ppu.SpriteCount() - 1; i >= 0; i-- {
		s := p.Sprite(i)
		pal := spritePalette(p, s.Palette)
		tile := p.ReadCHR(bank, uint16(s.Tile))
		spriteX, spriteY := int(s.X), int(s.Y)

		for y := 0; y < 8; y++ {
			upper, lower := tile[y], tile[y+8]
			for x := 7; x >= 0; x-- {
				value := (1&lower)<<1 | (1 & upper)
				upper >>= 1
				lower >>= 1
				if value == 0 {
					continue // color 0 is transparent for sprites
				}

				px, py := spriteX+x, spriteY+y
				if s.FlipH {
					px = spriteX + 7 - x
				}
				if s.FlipV {
					py = spriteY + 7 - y
				}
				setPixel(img, px, py, systemColor(pal[value]))
			}
		}
	}
}

// backgroundPalette resolves the 2-bit palette select from the attribute
// table byte covering this 4x4-tile quadrant.
func backgroundPalette(p *ppu.PPU, tileCol, tileRow int) [4]uint8 {
	attrIdx := tileRow/4*8 + tileCol/4
	attrByte := p.Read(0x2000 + attrTableBase + uint16(attrIdx))

	var shift uint
	switch {
	case tileCol%4/2 == 0 && tileRow%4/2 == 0:
		shift = 0
	case tileCol%4/2 == 1 && tileRow%4/2 == 0:
		shift = 2
	case tileCol%4/2 == 0 && tileRow%4/2 == 1:
		shift = 4
	default:
		shift = 6
	}
	palIdx := (attrByte >> shift) & 0x03

	start := 1 + int(palIdx)*4
	return [4]uint8{
		p.PaletteByte(0),
		p.PaletteByte(uint8(start)),
		p.PaletteByte(uint8(start + 1)),
		p.PaletteByte(uint8(start + 2)),
	}
}

func spritePalette(p *ppu.PPU, paletteIdx uint8) [4]uint8 {
	start := 0x11 + int(paletteIdx)*4
	return [4]uint8{
		0,
		p.PaletteByte(uint8(start)),
		p.PaletteByte(uint8(start + 1)),
		p.PaletteByte(uint8(start + 2)),
	}
}

func systemColor(idx uint8) color.RGBA {
	c := ppu.SYSTEM_PALETTE[idx]
	return color.RGBA{c[0], c[1], c[2], c[3]}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.SetRGBA(x, y, c)
}
