package core

import (
	"fmt"
)

// Frequency represents a frequency in Hz.
type Frequency int64

func (f Frequency) String() string {
	return fmt.Sprintf("%dHz", int64(f))
}

// FrequencyRange represents a range of frequencies.
type FrequencyRange struct {
	From, To Frequency
}

func (r FrequencyRange) String() string {
	return fmt.Sprintf("[%v,%v]", r.From, r.To)
}

// Center frequency of this range.
func (r FrequencyRange) Center() Frequency {
	return r.From + (r.To-r.From)/2
}

// Width of the frequency range.
func (r FrequencyRange) Width() Frequency {
	return r.To - r.From
}

// Contains the given frequency.
func (r FrequencyRange) Contains(f Frequency) bool {
	return f >= r.From && f <= r.To
}

// Shift the frequency range by the given Δ.
func (r *FrequencyRange) Shift(Δ Frequency) {
	r.From += Δ
	r.To += Δ
}

// Expanded returns a new expanded range.
func (r FrequencyRange) Expanded(Δ Frequency) FrequencyRange {
	return FrequencyRange{From: r.From - Δ, To: r.To + Δ}
}

// DB represents decibel (dB).
type DB float64

func (f DB) String() string {
	return fmt.Sprintf("%.2fdB", float64(f))
}

// DBRange represents a range of dB.
type DBRange struct {
	From, To DB
}

func (r DBRange) String() string {
	return fmt.Sprintf("[%v,%v]", r.From, r.To)
}

// Width of the dB range.
func (r DBRange) Width() DB {
	return r.To - r.From
}

// Contains the given value in dB.
func (r DBRange) Contains(value DB) bool {
	return value >= r.From && value <= r.To
}

// Normalized returns this range with From <= To.
func (r DBRange) Normalized() DBRange {
	if r.From > r.To {
		return DBRange{From: r.To, To: r.From}
	}
	return r
}

// Px unit for pixels
type Px float64

// PxPoint unit for pixel coordinates
type PxPoint struct {
	X, Y Px
}

// HzPerPx unit for resolution
type HzPerPx float64

// ToPx converts the given Frequency in Hz to Px
func (r HzPerPx) ToPx(f Frequency) Px {
	return Px(float64(f) / float64(r))
}

// ToHz converts the given Px to Hz
func (r HzPerPx) ToHz(x Px) Frequency {
	return Frequency(float64(x) * float64(r))
}

// FFT contains one frame of FFT data: linear power per bin with the DC
// bin at index Size/2. The Data slice is owned by the producer and only
// valid until the next frame arrives.
type FFT struct {
	Data []float64
	Size int
	Rate int
}

// VFO current state
type VFO struct {
	Frequency   Frequency
	FilterWidth Frequency
	Mode        string
}

// Configuration parameters of the application.
type Configuration struct {
	FrequencyCorrection int
	Testmode            bool
	VFOHost             string
	SampleRate          int
	CenterFrequency     Frequency
	FFTPerSecond        int
	FFTSize             int
	PlotIntervalMs      int
	Colormap            string
	DynamicRange        DBRange
}

// SamplesInput interface.
type SamplesInput interface {
	Samples() <-chan []complex128
	Close() error
}
