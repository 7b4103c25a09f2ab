package plot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ftl/panafall/core"
)

func histogramSum(buf [][]float64) float64 {
	sum := 0.0
	for i := range buf {
		for _, v := range buf[i] {
			sum += v
		}
	}
	return sum
}

func TestHistogram_SplatConservesWeight(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.SetPlotMode(ModeHistogram)

	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithLevel(1600, -60))

	// 1600 bins map to 32 amplitude bins, bins 1..1599 are splatted and
	// each contributes exactly one histogram weight
	weight := 10e6 * (1.0 / 15.0) / 32.0 / 1600.0
	assert.InEpsilon(t, 1599*weight, histogramSum(p.histogram), 1e-9)
}

func TestHistogram_OutOfRangeValuesAreDropped(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.SetPlotMode(ModeHistogram)

	// everything below the displayed range
	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithLevel(1600, -140))

	assert.Zero(t, histogramSum(p.histogram))
}

func TestHistogram_FirstFrameSeedsTheIIR(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.SetPlotMode(ModeHistogram)
	p.SetFFTAvg(0.5)

	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithLevel(1600, -60))

	assert.InEpsilon(t, histogramSum(p.histogram), histogramSum(p.histIIR), 1e-9)
}

func TestHistogram_AttackAccumulates(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.SetPlotMode(ModeHistogram)
	p.SetFFTAvg(0.5)

	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithLevel(1600, -60))
	first := histogramSum(p.histIIR)

	// attack is instant, decay is slow: a constant signal piles up
	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithLevel(1600, -60))

	assert.True(t, histogramSum(p.histIIR) > first)
}

func TestHistogram_RangeChangeResetsTheIIR(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.SetPlotMode(ModeHistogram)
	p.SetFFTAvg(0.5)

	for i := 0; i < 5; i++ {
		clock.Advance(100 * time.Millisecond)
		p.NewFFTData(frameWithLevel(1600, -60))
	}
	assert.True(t, histogramSum(p.histIIR) > histogramSum(p.histogram))

	// the amplitude binning changed, the accumulated state is useless
	p.SetPandapterRange(core.DBRange{From: -100, To: -20})
	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithLevel(1600, -60))

	assert.InEpsilon(t, histogramSum(p.histogram), histogramSum(p.histIIR), 1e-9)
}

func TestHistogram_NormalizationFollowsTheMaximum(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.SetPlotMode(ModeHistogram)

	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithLevel(1600, -60))

	histMax := 0.0
	for i := range p.histIIR {
		for _, v := range p.histIIR[i] {
			if v > histMax {
				histMax = v
			}
		}
	}
	// at 15 fps the 5Hz time constant moves a third per frame
	assert.InEpsilon(t, histMax/3.0, p.histMaxIIR, 1e-6)
}
