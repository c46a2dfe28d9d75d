package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/pbrmaps"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrIO is returned when a texture cannot be read or written.
var ErrIO = errors.New("pbrmaps: io failure")

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod maps "dominantcolor" and "kmeans" to a PaletteMethod.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// ReadImage decodes PNG, JPEG, GIF, WebP, BMP or TIFF files.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrIO, path, err)
	}
	return img, nil
}

// LoadImage reads a texture into a float buffer.
func LoadImage(path string) (*pbrmaps.Image, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	m, err := pbrmaps.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	pbrmaps.Logger().Debug("texture loaded", "path", path, "width", m.W, "height", m.H)
	return m, nil
}

// SaveImage writes img to <dir>/<name>.png, creating dir when missing and
// replacing any existing file. pbrmaps images are stored with 16 bits per
// channel. The written path is returned.
func SaveImage(dir, name string, img image.Image) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", ErrIO)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}
	if m, ok := img.(*pbrmaps.Image); ok {
		if err := pbrmaps.SameSize(m); err != nil {
			return "", fmt.Errorf("save %s: %w", name, err)
		}
		img = m.NRGBA64()
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%w: encode %s: %w", ErrIO, name, err)
	}
	path := filepath.Join(dir, name+".png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	pbrmaps.Logger().Info("texture saved", "path", path)
	return path, nil
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// ExtractPalette returns up to k representative packed values of img.
// Packed maps hold data rather than color, so every pixel counts
// regardless of its alpha.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		pbrmaps.Logger().Warn("kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(opaque{img}, max(16, k*4))
	if len(candidates) == 0 {
		// Flat maps can yield no candidates; report the corner value.
		b := img.Bounds()
		if b.Empty() {
			return nil
		}
		c := color.RGBAModel.Convert(opaque{img}.At(b.Min.X, b.Min.Y)).(color.RGBA)
		candidates = append(candidates, dominantcolor.Color{RGBA: c, Weight: 1})
	}
	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return selectDistinct(weighted, k)
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample large maps.
	maxSamples := 8000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}
	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := straight(img.At(x, y))
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 65535,
				float64(c.G) / 65535,
				float64(c.B) / 65535,
			})
		}
	}

	workK := min(k*2, len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}
	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return selectDistinct(weighted, k)
}

// selectDistinct greedily picks k colors, starting from the heaviest and
// then always taking the candidate farthest (in Lab) from those picked,
// scaled by its weight.
func selectDistinct(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	seed := 0
	for i, c := range cands {
		if c.Weight > maxW {
			maxW = c.Weight
			seed = i
		}
	}

	picked := []int{seed}
	used := make([]bool, len(cands))
	used[seed] = true
	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			d := math.MaxFloat64
			for _, p := range picked {
				d = min(d, c.Col.DistanceLab(cands[p].Col))
			}
			score := d * (0.5 + 0.5*math.Sqrt(c.Weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, len(picked))
	for i, p := range picked {
		out[i] = cands[p].Col
	}
	return out
}

// SavePalette writes the palette as a row of tileSize squares to
// <dir>/<name>.png.
func SavePalette(palette []colorful.Color, tileSize int, dir, name string) (string, error) {
	if len(palette) == 0 {
		return "", fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return SaveImage(dir, name, img)
}

// straight returns the stored, non-premultiplied value of c. Colors that
// are already non-premultiplied keep their RGB even at zero alpha.
func straight(c color.Color) color.NRGBA64 {
	switch v := c.(type) {
	case color.NRGBA64:
		return v
	case color.NRGBA:
		return color.NRGBA64{
			R: uint16(v.R) * 0x101,
			G: uint16(v.G) * 0x101,
			B: uint16(v.B) * 0x101,
			A: uint16(v.A) * 0x101,
		}
	}
	return color.NRGBA64Model.Convert(c).(color.NRGBA64)
}

// opaque drops alpha so packed maps contribute their stored RGB to the
// dominant color search even where alpha is zero.
type opaque struct {
	image.Image
}

func (o opaque) ColorModel() color.Model { return color.NRGBAModel }

func (o opaque) At(x, y int) color.Color {
	c := straight(o.Image.At(x, y))
	return color.NRGBA{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8), A: 255}
}
