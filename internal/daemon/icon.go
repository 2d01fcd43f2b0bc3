//go:build windows

package daemon

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 32

// getCakeIcon returns a 32x32 .ico (PNG payload) showing a cake with a candle
func getCakeIcon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	cake := color.NRGBA{R: 0xE9, G: 0x6A, B: 0x8D, A: 0xFF}
	cream := color.NRGBA{R: 0xFF, G: 0xF4, B: 0xE0, A: 0xFF}
	candle := color.NRGBA{R: 0x4A, G: 0x90, B: 0xE2, A: 0xFF}
	flame := color.NRGBA{R: 0xFF, G: 0xB3, B: 0x00, A: 0xFF}

	fill := func(x0, y0, x1, y1 int, c color.NRGBA) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	fill(4, 16, 28, 30, cake)
	fill(4, 16, 28, 19, cream)
	fill(15, 8, 17, 16, candle)
	fill(15, 4, 17, 8, flame)

	var pngData bytes.Buffer
	if err := png.Encode(&pngData, img); err != nil {
		return nil
	}

	var ico bytes.Buffer
	// ICONDIR: reserved, type (1 = icon), image count
	binary.Write(&ico, binary.LittleEndian, []uint16{0, 1, 1})
	// ICONDIRENTRY
	ico.Write([]byte{iconSize, iconSize, 0, 0})
	binary.Write(&ico, binary.LittleEndian, []uint16{1, 32})
	binary.Write(&ico, binary.LittleEndian, []uint32{uint32(pngData.Len()), 6 + 16})
	ico.Write(pngData.Bytes())

	return ico.Bytes()
}
