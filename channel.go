package pbrmaps

import (
	"fmt"
	"math"
	"strings"
)

type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Alpha:
		return "alpha"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ParseChannel accepts the full channel name or its first letter.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "r", "red":
		return Red, nil
	case "g", "green":
		return Green, nil
	case "b", "blue":
		return Blue, nil
	case "a", "alpha":
		return Alpha, nil
	}
	return 0, fmt.Errorf("pbrmaps: unknown channel %q", s)
}

// Luminosity weights used by Desaturate.
const (
	lumR = 0.3
	lumG = 0.59
	lumB = 0.11
)

// mapPixels builds a new image by applying fn to every pixel of src.
func mapPixels(src *Image, fn func(p Pixel) Pixel) *Image {
	out := &Image{W: src.W, H: src.H, Pix: make([]float32, len(src.Pix))}
	for i := 0; i < len(src.Pix); i += 4 {
		p := fn(Pixel{src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]})
		out.Pix[i+0] = p.R
		out.Pix[i+1] = p.G
		out.Pix[i+2] = p.B
		out.Pix[i+3] = p.A
	}
	return out
}

func gray(v float32) Pixel {
	return Pixel{v, v, v, 1}
}

// Desaturate replaces each pixel by its luminosity 0.3R + 0.59G + 0.11B.
// Alpha is kept.
func Desaturate(src *Image) (*Image, error) {
	if err := src.validate(); err != nil {
		return nil, fmt.Errorf("desaturate: %w", err)
	}
	return mapPixels(src, func(p Pixel) Pixel {
		l := p.R*lumR + p.G*lumG + p.B*lumB
		return Pixel{l, l, l, p.A}
	}), nil
}

// ExtractChannel returns an opaque grayscale image holding channel c of src.
func ExtractChannel(src *Image, c Channel) (*Image, error) {
	if err := src.validate(); err != nil {
		return nil, fmt.Errorf("extract %s: %w", c, err)
	}
	var pick func(Pixel) float32
	switch c {
	case Red:
		pick = func(p Pixel) float32 { return p.R }
	case Green:
		pick = func(p Pixel) float32 { return p.G }
	case Blue:
		pick = func(p Pixel) float32 { return p.B }
	case Alpha:
		pick = func(p Pixel) float32 { return p.A }
	default:
		return nil, fmt.Errorf("pbrmaps: unknown channel %d", int(c))
	}
	return mapPixels(src, func(p Pixel) Pixel { return gray(pick(p)) }), nil
}

// RoughnessToSmoothness returns 1 - R as an opaque grayscale image.
// Only the red channel of src is read.
func RoughnessToSmoothness(src *Image) (*Image, error) {
	if err := src.validate(); err != nil {
		return nil, fmt.Errorf("roughness to smoothness: %w", err)
	}
	return mapPixels(src, func(p Pixel) Pixel { return gray(1 - p.R) }), nil
}

// ConstantFill returns a w×h image where every pixel is (v, v, v, 1).
func ConstantFill(v float32, w, h int) (*Image, error) {
	if math.IsNaN(float64(v)) || v < 0 || v > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, v)
	}
	out, err := NewImage(w, h)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = v
		out.Pix[i+1] = v
		out.Pix[i+2] = v
		out.Pix[i+3] = 1
	}
	return out, nil
}

// ComposeChannels packs the red channel of r, g, b and a into the R, G, B and
// A channels of a new image. All four inputs must have the same size.
func ComposeChannels(r, g, b, a *Image) (*Image, error) {
	if err := SameSize(r, g, b, a); err != nil {
		return nil, fmt.Errorf("compose channels: %w", err)
	}
	out := &Image{W: r.W, H: r.H, Pix: make([]float32, len(r.Pix))}
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = r.Pix[i]
		out.Pix[i+1] = g.Pix[i]
		out.Pix[i+2] = b.Pix[i]
		out.Pix[i+3] = a.Pix[i]
	}
	return out, nil
}
