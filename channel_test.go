package pbrmaps

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func uniform(t *testing.T, w, h int, p Pixel) *Image {
	t.Helper()
	m, err := NewImage(w, h)
	require.NoError(t, err)
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = p.R, p.G, p.B, p.A
	}
	return m
}

// gradient fills every pixel with a distinct value derived from its index.
func gradient(t *testing.T, w, h int) *Image {
	t.Helper()
	m, err := NewImage(w, h)
	require.NoError(t, err)
	n := float32(len(m.Pix))
	for i := range m.Pix {
		m.Pix[i] = float32(i) / n
	}
	return m
}

func assertUniform(t *testing.T, m *Image, want Pixel) {
	t.Helper()
	for y := range m.H {
		for x := range m.W {
			got := m.Pixel(x, y)
			assert.InDelta(t, want.R, got.R, tolerance, "R at %d,%d", x, y)
			assert.InDelta(t, want.G, got.G, tolerance, "G at %d,%d", x, y)
			assert.InDelta(t, want.B, got.B, tolerance, "B at %d,%d", x, y)
			assert.InDelta(t, want.A, got.A, tolerance, "A at %d,%d", x, y)
		}
	}
}

func TestDesaturate(t *testing.T) {
	src := gradient(t, 5, 3)
	orig := append([]float32(nil), src.Pix...)

	out, err := Desaturate(src)
	require.NoError(t, err)
	require.Equal(t, src.W, out.W)
	require.Equal(t, src.H, out.H)

	for y := range src.H {
		for x := range src.W {
			in, got := src.Pixel(x, y), out.Pixel(x, y)
			l := 0.3*in.R + 0.59*in.G + 0.11*in.B
			assert.InDelta(t, l, got.R, tolerance)
			assert.InDelta(t, l, got.G, tolerance)
			assert.InDelta(t, l, got.B, tolerance)
			assert.Equal(t, in.A, got.A, "alpha must be preserved")
		}
	}
	assert.Equal(t, orig, src.Pix, "input must not be modified")

	_, err = Desaturate(nil)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestExtractChannel(t *testing.T) {
	src := uniform(t, 3, 3, Pixel{0.2, 0.4, 0.6, 0.8})
	orig := append([]float32(nil), src.Pix...)

	tests := []struct {
		channel Channel
		want    float32
	}{
		{Red, 0.2},
		{Green, 0.4},
		{Blue, 0.6},
		{Alpha, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.channel.String(), func(t *testing.T) {
			out, err := ExtractChannel(src, tt.channel)
			require.NoError(t, err)
			assertUniform(t, out, Pixel{tt.want, tt.want, tt.want, 1})
			assert.Equal(t, orig, src.Pix, "input must not be modified")
		})
	}

	t.Run("unknown channel", func(t *testing.T) {
		_, err := ExtractChannel(src, Channel(7))
		assert.Error(t, err)
	})
}

func TestRoughnessToSmoothness(t *testing.T) {
	rough := uniform(t, 2, 2, Pixel{0.25, 0.9, 0.1, 0.5})

	orig := append([]float32(nil), rough.Pix...)

	smooth, err := RoughnessToSmoothness(rough)
	require.NoError(t, err)
	assertUniform(t, smooth, Pixel{0.75, 0.75, 0.75, 1})
	assert.Equal(t, orig, rough.Pix, "input must not be modified")

	t.Run("self inverse", func(t *testing.T) {
		back, err := RoughnessToSmoothness(smooth)
		require.NoError(t, err)
		assertUniform(t, back, Pixel{0.25, 0.25, 0.25, 1})
	})
}

func TestConstantFill(t *testing.T) {
	m, err := ConstantFill(0.3, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, m.W)
	assert.Equal(t, 2, m.H)
	assertUniform(t, m, Pixel{0.3, 0.3, 0.3, 1})

	_, err = ConstantFill(1.5, 4, 2)
	assert.ErrorIs(t, err, ErrInvalidScalar)
	_, err = ConstantFill(-0.1, 4, 2)
	assert.ErrorIs(t, err, ErrInvalidScalar)
	_, err = ConstantFill(0.5, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidSize)

	black, err := ConstantFill(0, 2, 2)
	require.NoError(t, err)
	assertUniform(t, black, Pixel{0, 0, 0, 1})
}

func TestComposeChannels(t *testing.T) {
	r := uniform(t, 4, 4, Pixel{0.1, 0.9, 0.9, 0.9})
	g := uniform(t, 4, 4, Pixel{0.2, 0.8, 0.8, 0.8})
	b := uniform(t, 4, 4, Pixel{0.3, 0.7, 0.7, 0.7})
	a := uniform(t, 4, 4, Pixel{0.4, 0.6, 0.6, 0.6})

	t.Run("packs red channels", func(t *testing.T) {
		inputs := []*Image{r, g, b, a}
		origs := make([][]float32, len(inputs))
		for i, m := range inputs {
			origs[i] = append([]float32(nil), m.Pix...)
		}

		out, err := ComposeChannels(r, g, b, a)
		require.NoError(t, err)
		assertUniform(t, out, Pixel{0.1, 0.2, 0.3, 0.4})
		for i, m := range inputs {
			assert.Equal(t, origs[i], m.Pix, "input %d must not be modified", i)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		small := uniform(t, 2, 2, Pixel{0.4, 0, 0, 1})
		out, err := ComposeChannels(r, g, b, small)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Nil(t, out)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := ComposeChannels(r, nil, b, a)
		assert.ErrorIs(t, err, ErrMissingInput)
	})

	t.Run("malformed input", func(t *testing.T) {
		short := &Image{W: 4, H: 4, Pix: make([]float32, 8)}
		out, err := ComposeChannels(r, g, b, short)
		assert.ErrorIs(t, err, ErrInvalidSize)
		assert.Nil(t, out)

		_, err = ComposeChannels(&Image{}, &Image{}, &Image{}, &Image{})
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
}

func TestSingleInputOpsRejectMalformed(t *testing.T) {
	bad := &Image{W: 2, H: 2, Pix: make([]float32, 3)}

	_, err := Desaturate(bad)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = ExtractChannel(bad, Red)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = RoughnessToSmoothness(&Image{})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestParseChannel(t *testing.T) {
	for _, s := range []string{"g", "G", "green", "Green"} {
		c, err := ParseChannel(s)
		require.NoError(t, err)
		assert.Equal(t, Green, c)
	}
	_, err := ParseChannel("luma")
	assert.Error(t, err)
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	src.SetNRGBA(10, 20, color.NRGBA{R: 255, G: 0, B: 51, A: 128})
	src.SetNRGBA(11, 20, color.NRGBA{R: 0, G: 255, B: 0, A: 255})

	m, err := FromImage(src)
	require.NoError(t, err)
	require.Equal(t, 2, m.W)
	require.Equal(t, 1, m.H)
	p := m.Pixel(0, 0)
	assert.InDelta(t, 1.0, p.R, tolerance, "alpha must not be premultiplied")
	assert.InDelta(t, 0.2, p.B, 1e-3)
	assert.InDelta(t, 128.0/255, p.A, tolerance)
	assert.InDelta(t, 1.0, m.Pixel(1, 0).G, tolerance)

	t.Run("copies pbrmaps images", func(t *testing.T) {
		c, err := FromImage(m)
		require.NoError(t, err)
		c.Pix[0] = 0
		assert.InDelta(t, 1.0, m.Pix[0], tolerance)
	})

	t.Run("empty raster", func(t *testing.T) {
		out, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
		assert.ErrorIs(t, err, ErrInvalidSize)
		assert.Nil(t, out)

		_, err = FromImage(&Image{})
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
}

func TestImageAt(t *testing.T) {
	m := uniform(t, 1, 1, Pixel{0, 0.5, 1, 1})
	c := m.At(0, 0).(color.NRGBA64)
	assert.Equal(t, color.NRGBA64{R: 0, G: 32768, B: 65535, A: 65535}, c)
	assert.Equal(t, color.NRGBA64{}, m.At(5, 5))

	m.Pix[0] = float32(math.NaN())
	assert.Equal(t, uint16(0), m.At(0, 0).(color.NRGBA64).R)

	_, err := NewImage(-1, 3)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
