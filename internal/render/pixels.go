package render

import "image/color"

// SeatPalette colours the seating cell values: floor, empty seat, occupied seat.
var SeatPalette = []color.RGBA{
	{R: 24, G: 24, B: 28, A: 255},
	{R: 70, G: 160, B: 80, A: 255},
	{R: 210, G: 70, B: 60, A: 255},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. Values
// past the end of the palette use its last colour. When the palette is empty
// the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// highlightRGBA blends tint over the pixels at the given cell indices.
func highlightRGBA(buf []byte, indices []int, tint color.RGBA) {
	for _, idx := range indices {
		base := idx * 4
		if base < 0 || base+3 >= len(buf) {
			continue
		}
		buf[base+0] = uint8((uint16(buf[base+0]) + uint16(tint.R)) / 2)
		buf[base+1] = uint8((uint16(buf[base+1]) + uint16(tint.G)) / 2)
		buf[base+2] = uint8((uint16(buf[base+2]) + uint16(tint.B)) / 2)
		buf[base+3] = 255
	}
}
