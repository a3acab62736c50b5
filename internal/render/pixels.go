package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Ramp is a 256 entry palette indexed by cell density.
type Ramp [256]color.RGBA

// NewRamp interpolates linearly from off (density 0) to on (density 255).
func NewRamp(off, on color.Color) *Ramp {
	rOff, gOff, bOff, aOff := off.RGBA()
	rOn, gOn, bOn, aOn := on.RGBA()
	lerp := func(a, b uint32, i int) uint8 {
		return uint8((int(a>>8)*(255-i) + int(b>>8)*i) / 255)
	}
	var r Ramp
	for i := range r {
		r[i] = color.RGBA{
			R: lerp(rOff, rOn, i),
			G: lerp(gOff, gOn, i),
			B: lerp(bOff, bOn, i),
			A: lerp(aOff, aOn, i),
		}
	}
	return &r
}

// fillRampRGBA converts density values into RGBA pixels in buf. A nil ramp
// clears the buffer to transparent black.
func fillRampRGBA(buf []byte, cells []uint8, ramp *Ramp) {
	if ramp == nil {
		clear(buf[:4*len(cells)])
		return
	}
	for i, c := range cells {
		base := i * 4
		col := ramp[c]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// RGBAImage colours a w*h density map through ramp.
func RGBAImage(cells []uint8, w, h int, ramp *Ramp) (*image.RGBA, error) {
	if len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells for a %dx%d image", len(cells), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRampRGBA(img.Pix, cells, ramp)
	return img, nil
}

// GrayImage wraps a w*h density map as an image without copying it.
func GrayImage(cells []uint8, w, h int) (*image.Gray, error) {
	if len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells for a %dx%d image", len(cells), w, h)
	}
	return &image.Gray{Pix: cells, Stride: w, Rect: image.Rect(0, 0, w, h)}, nil
}

// WritePNG encodes a density map as a PNG. A nil ramp writes a grayscale
// image, anything else an RGBA one.
func WritePNG(out io.Writer, cells []uint8, w, h int, ramp *Ramp) error {
	var (
		img image.Image
		err error
	)
	if ramp == nil {
		img, err = GrayImage(cells, w, h)
	} else {
		img, err = RGBAImage(cells, w, h, ramp)
	}
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}
