package utils

import (
	"fmt"

	"github.com/setanarut/pbrmaps"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one channel of an image.
type Stats struct {
	Min, Max     float64
	Mean, StdDev float64
}

func (s Stats) String() string {
	return fmt.Sprintf("min=%.4f max=%.4f mean=%.4f stddev=%.4f", s.Min, s.Max, s.Mean, s.StdDev)
}

// ChannelStats returns Stats for the R, G, B and A channels of img.
func ChannelStats(img *pbrmaps.Image) [4]Stats {
	var out [4]Stats
	if img == nil || img.Len() == 0 {
		return out
	}
	vals := make([]float64, img.Len())
	for ch := range 4 {
		for i := range vals {
			vals[i] = float64(img.Pix[i*4+ch])
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if len(vals) == 1 {
			std = 0
		}
		out[ch] = Stats{
			Min:    floats.Min(vals),
			Max:    floats.Max(vals),
			Mean:   mean,
			StdDev: std,
		}
	}
	return out
}
