package pbrmaps

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Pixel is a non-premultiplied RGBA value with components in [0,1].
type Pixel struct {
	R, G, B, A float32
}

// Image is a row-major RGBA float buffer.
// Operations in this package never modify an Image they receive; they always
// return a freshly allocated one.
type Image struct {
	W, H int
	Pix  []float32 // Interleaved RGBA in [0,1], len = W*H*4
}

// NewImage allocates a zeroed (transparent black) w×h image.
func NewImage(w, h int) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Image{W: w, H: h, Pix: make([]float32, w*h*4)}, nil
}

// FromImage converts any decoded raster into an Image.
// Colors are taken through the NRGBA64 model so alpha is not premultiplied.
func FromImage(src image.Image) (*Image, error) {
	if m, ok := src.(*Image); ok {
		if err := m.validate(); err != nil {
			return nil, err
		}
		return m.clone(), nil
	}
	b := src.Bounds()
	out, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(src.At(x, y)).(color.NRGBA64)
			out.Pix[i+0] = float32(c.R) / 65535
			out.Pix[i+1] = float32(c.G) / 65535
			out.Pix[i+2] = float32(c.B) / 65535
			out.Pix[i+3] = float32(c.A) / 65535
			i += 4
		}
	}
	return out, nil
}

func (m *Image) clone() *Image {
	pix := make([]float32, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{W: m.W, H: m.H, Pix: pix}
}

func (m *Image) pixOffset(x, y int) int {
	return (y*m.W + x) * 4
}

// Pixel returns the pixel at (x, y).
func (m *Image) Pixel(x, y int) Pixel {
	i := m.pixOffset(x, y)
	return Pixel{m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]}
}

// Len returns the number of pixels.
func (m *Image) Len() int {
	return m.W * m.H
}

func (m *Image) ColorModel() color.Model { return color.NRGBA64Model }

func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.W, m.H) }

// At quantizes the pixel to 16 bits per channel.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return color.NRGBA64{}
	}
	p := m.Pixel(x, y)
	return color.NRGBA64{
		R: quantize16(p.R),
		G: quantize16(p.G),
		B: quantize16(p.B),
		A: quantize16(p.A),
	}
}

// NRGBA64 returns a 16-bit copy suitable for lossless encoders.
func (m *Image) NRGBA64() *image.NRGBA64 {
	out := image.NewNRGBA64(m.Bounds())
	for y := range m.H {
		for x := range m.W {
			out.SetNRGBA64(x, y, m.At(x, y).(color.NRGBA64))
		}
	}
	return out
}

func quantize16(v float32) uint16 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return uint16(max(0, min(65535, float64(v)*65535+0.5)))
}

// validate checks that m has positive dimensions and a pixel slice that
// matches them.
func (m *Image) validate() error {
	if m == nil {
		return ErrMissingInput
	}
	if m.W <= 0 || m.H <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, m.W, m.H)
	}
	if len(m.Pix) != m.W*m.H*4 {
		return fmt.Errorf("%w: %dx%d image holds %d values", ErrInvalidSize, m.W, m.H, len(m.Pix))
	}
	return nil
}

// SameSize reports ErrDimensionMismatch unless every image has the size of
// the first one. Nil images are reported as ErrMissingInput, malformed ones
// as ErrInvalidSize.
func SameSize(imgs ...*Image) error {
	var ref *Image
	for i, m := range imgs {
		if err := m.validate(); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		if ref == nil {
			ref = m
			continue
		}
		if m.W != ref.W || m.H != ref.H {
			return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, ref.W, ref.H, m.W, m.H)
		}
	}
	return nil
}
