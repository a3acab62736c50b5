package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRampEnds(t *testing.T) {
	r := NewRamp(color.Black, color.White)
	require.Equal(t, color.RGBA{A: 255}, r[0])
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, r[255])
	require.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, r[128])
}

func TestFillRampRGBA(t *testing.T) {
	buf := bytes.Repeat([]byte{7}, 8)
	fillRampRGBA(buf, []uint8{0, 255}, NewRamp(color.RGBA{B: 255, A: 255}, color.RGBA{R: 255, A: 255}))
	require.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, buf)

	fillRampRGBA(buf, []uint8{0, 255}, nil)
	require.Equal(t, make([]byte, 8), buf)
}

func TestWritePNG(t *testing.T) {
	cells := []uint8{0, 64, 128, 255, 10, 20}

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, cells, 3, 2, nil))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())
	require.Equal(t, color.Gray{Y: 255}, color.GrayModel.Convert(img.At(0, 1)))

	buf.Reset()
	require.NoError(t, WritePNG(&buf, cells, 3, 2, NewRamp(color.Black, color.White)))
	img, err = png.Decode(&buf)
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 1).RGBA()
	require.EqualValues(t, 0xffff, r)
}

func TestSizeMismatch(t *testing.T) {
	_, err := GrayImage(make([]uint8, 5), 2, 2)
	require.Error(t, err)
	require.Error(t, WritePNG(&bytes.Buffer{}, make([]uint8, 5), 2, 3, nil))
}
