package web

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
)

const contentTypePNG = "image/png"

// Muted palettes; a name always maps to the same one.
var palettes = [][3]color.RGBA{
	{{0x18, 0x14, 0x28, 255}, {0x45, 0x2c, 0x5c, 255}, {0xc4, 0x6c, 0x32, 255}},
	{{0x1c, 0x24, 0x2c, 255}, {0x2d, 0x3a, 0x5c, 255}, {0x8b, 0x73, 0x55, 255}},
	{{0x20, 0x20, 0x20, 255}, {0x55, 0x55, 0x66, 255}, {0x9c, 0x9c, 0xa8, 255}},
	{{0x14, 0x22, 0x18, 255}, {0x2d, 0x5a, 0x3d, 255}, {0x6b, 0x8c, 0x5a, 255}},
}

const (
	blockPx          = 8
	imgW, imgH       = 256, 192
	blocksW, blocksH = imgW / blockPx, imgH / blockPx
)

func fillBlock(img *image.RGBA, bx, by int, clr color.RGBA) {
	for dy := 0; dy < blockPx; dy++ {
		for dx := 0; dx < blockPx; dx++ {
			img.SetRGBA(bx*blockPx+dx, by*blockPx+dy, clr)
		}
	}
}

// placeholderImage draws a blocky horizon scene seeded by name: sky,
// ground, and a skyline whose heights come from the hash bits.
func placeholderImage(name string) *image.RGBA {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	seed := h.Sum64()
	pal := palettes[seed%uint64(len(palettes))]

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	horizon := blocksH/2 + int(seed>>8%4)
	for by := 0; by < blocksH; by++ {
		clr := pal[0]
		if by >= horizon {
			clr = pal[1]
		}
		for bx := 0; bx < blocksW; bx++ {
			fillBlock(img, bx, by, clr)
		}
	}
	for bx := 0; bx < blocksW; bx++ {
		height := int(seed>>(uint(bx)%48)) & 7
		for by := horizon - height; by < horizon; by++ {
			fillBlock(img, bx, by, pal[2])
		}
	}
	return img
}

func placeholderPNG(name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, placeholderImage(name)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
