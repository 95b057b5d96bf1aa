package tray

import "encoding/binary"

const iconSize = 16

// getIcon renders a 16x16 32-bit ICO: a rounded dark tile with a 3x3 grid
// of keys.
func getIcon() []byte {
	const (
		headerLen = 6 + 16
		dibLen    = 40
		pixelLen  = iconSize * iconSize * 4
		maskLen   = iconSize * 4 // 1bpp rows padded to 32 bits
	)
	icon := make([]byte, headerLen+dibLen+pixelLen+maskLen)

	// ICONDIR
	binary.LittleEndian.PutUint16(icon[2:], 1)
	binary.LittleEndian.PutUint16(icon[4:], 1)
	// ICONDIRENTRY
	icon[6], icon[7] = iconSize, iconSize
	binary.LittleEndian.PutUint16(icon[10:], 1)
	binary.LittleEndian.PutUint16(icon[12:], 32)
	binary.LittleEndian.PutUint32(icon[14:], dibLen+pixelLen+maskLen)
	binary.LittleEndian.PutUint32(icon[18:], headerLen)

	// BITMAPINFOHEADER, height doubled for the mask
	dib := icon[headerLen:]
	binary.LittleEndian.PutUint32(dib[0:], dibLen)
	binary.LittleEndian.PutUint32(dib[4:], iconSize)
	binary.LittleEndian.PutUint32(dib[8:], iconSize*2)
	binary.LittleEndian.PutUint16(dib[12:], 1)
	binary.LittleEndian.PutUint16(dib[14:], 32)
	binary.LittleEndian.PutUint32(dib[20:], pixelLen)

	pixels := dib[dibLen:]
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			b, g, r, a := iconPixel(x, y)
			// Rows are stored bottom-up.
			off := ((iconSize-1-y)*iconSize + x) * 4
			pixels[off], pixels[off+1], pixels[off+2], pixels[off+3] = b, g, r, a
		}
	}
	return icon
}

func iconPixel(x, y int) (b, g, r, a byte) {
	corner := (x == 0 || x == iconSize-1) && (y == 0 || y == iconSize-1)
	if corner {
		return 0, 0, 0, 0
	}
	// Keys are 3px squares at 2, 6, 10 with a 1px gutter.
	inKey := func(v int) bool { return v >= 2 && v <= 13 && (v-2)%4 != 3 }
	if inKey(x) && inKey(y) {
		return 0xD4, 0x78, 0x00, 0xFF
	}
	return 0x1E, 0x1E, 0x1E, 0xF2
}
