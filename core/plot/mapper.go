package plot

import (
	"math"

	"github.com/ftl/panafall/core"
)

// XFromFreq converts a frequency to the column of the display.
func (p *Plotter) XFromFreq(f core.Frequency) int {
	startFreq := float64(p.centerFreq) + float64(p.fftCenter) - float64(p.span)/2.0
	return int(math.Round(float64(p.width) * (float64(f) - startFreq) / float64(p.span)))
}

// FreqFromX converts a column of the display to a frequency.
func (p *Plotter) FreqFromX(x int) core.Frequency {
	ratio := 0.0
	if p.width > 0 {
		ratio = float64(x) / float64(p.width)
	}
	return core.Frequency(math.Round(float64(p.centerFreq) + float64(p.fftCenter) -
		float64(p.span)/2.0 + ratio*float64(p.span)))
}

// MsecFromY returns the capture time of the waterfall row at the given
// display y coordinate, in milliseconds of the plotter's time base.
// Rows above the waterfall return 0.
func (p *Plotter) MsecFromY(y int) int64 {
	if y < p.plotHeight {
		return 0
	}
	dy := float64(y - p.plotHeight)
	msecPerLine := p.msecPerLine
	if msecPerLine <= 0 {
		msecPerLine = float64(p.WaterfallTimeResolution())
	}
	return p.lastWfDrawnMs - int64(dy*msecPerLine)
}

// RoundFreq rounds the frequency to the given resolution.
func RoundFreq(freq, resolution core.Frequency) core.Frequency {
	delta := resolution
	delta2 := delta / 2
	if freq >= 0 {
		return freq - (freq+delta2)%delta + delta2
	}
	return freq - (freq+delta2)%delta - delta2
}
