package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X(k)| for k in [0, n/2] of the series with its
// mean removed, so bin 0 is always zero.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	ps[0] = 0
	return ps
}

// DominantPeriod returns the period in samples of the strongest non-zero
// frequency and its magnitude. A flat or too-short series gives (0, 0).
func DominantPeriod(data []float64) (float64, float64) {
	ps := PowerSpectrum(data)
	best, power := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > power {
			best, power = k, ps[k]
		}
	}
	if best == 0 || power < 1e-9 {
		return 0, 0
	}
	return float64(len(data)) / float64(best), power
}

type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func Describe(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(data), Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range data {
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(data))

	for _, v := range data {
		d := v - s.Mean
		s.StdDev += d * d
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(len(data)))
	return s
}
