package plot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ftl/panafall/core"
)

func TestZoomStepX_KeepsCursorFrequency(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.NewFFTData(frameWithLevel(2048, -50))

	anchor := p.FreqFromX(600)
	p.zoomStepX(0.5, 600)

	hzPerPx := float64(p.span) / float64(p.width)
	assert.InDelta(t, float64(anchor), float64(p.FreqFromX(600)), 2*hzPerPx)
	assert.Equal(t, core.Frequency(48000), p.span)
}

func TestZoomStepX_ZoomOutStopsAtFullSpan(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.NewFFTData(frameWithLevel(2048, -50))

	p.zoomStepX(2.0, 400)

	assert.Equal(t, core.Frequency(96000), p.span)
	assert.Equal(t, core.Frequency(0), p.fftCenter)
}

func TestZoomStepX_ZoomInStopsAtFourBins(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.NewFFTData(frameWithLevel(512, -50))

	for i := 0; i < 100; i++ {
		p.zoomStepX(0.5, 400)
	}

	assert.Equal(t, core.Frequency(750), p.span, "4 bins of 512 at 96kHz")
}

func TestZoomStepX_ShiftsViewAtTheEdge(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.NewFFTData(frameWithLevel(2048, -50))

	// zoom in at the left edge: the view cannot extend below -fs/2
	p.zoomStepX(0.5, 0)

	r := p.VisibleFrequencyRange()
	assert.True(t, r.From >= 144500000-48000, "view extends below the sampled range")
	assert.Equal(t, core.Frequency(48000), p.span)
}

func TestResetHorizontalZoom(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.NewFFTData(frameWithLevel(2048, -50))
	p.zoomStepX(0.25, 600)

	var zoom float64
	p.OnZoomChanged(func(z float64) { zoom = z })
	p.ResetHorizontalZoom()

	assert.Equal(t, core.Frequency(96000), p.span)
	assert.Equal(t, core.Frequency(0), p.fftCenter)
	assert.Equal(t, 1.0, zoom)
}

func TestClickToTune(t *testing.T) {
	p := newTestPlotter(newTestClock())

	var demod, delta core.Frequency
	p.OnDemodFreqChanged(func(d, Δ core.Frequency) { demod, delta = d, Δ })

	p.PointerPressed(500, 100, ButtonLeft, ModNone)

	assert.Equal(t, core.Frequency(144512000), demod)
	assert.Equal(t, core.Frequency(12000), delta)
	assert.Equal(t, core.Frequency(144512000), p.DemodCenterFrequency())
}

func TestMiddleClickRetunesCenter(t *testing.T) {
	p := newTestPlotter(newTestClock())

	p.PointerPressed(500, 100, ButtonMiddle, ModNone)

	assert.Equal(t, core.Frequency(144512000), p.CenterFrequency())
	assert.Equal(t, core.Frequency(144512000), p.DemodCenterFrequency())
}

func TestRightClickResetsZoom(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.NewFFTData(frameWithLevel(2048, -50))
	p.zoomStepX(0.25, 600)

	p.PointerPressed(500, 100, ButtonRight, ModNone)

	assert.Equal(t, core.Frequency(96000), p.span)
}

func TestWheelAccumulatesSubDetentSteps(t *testing.T) {
	p := newTestPlotter(newTestClock())
	before := p.DemodCenterFrequency()

	p.WheelTurned(500, 100, 40, ModNone)
	assert.Equal(t, before, p.DemodCenterFrequency(), "sub-detent step must not retune")
	p.WheelTurned(500, 100, 40, ModNone)
	assert.Equal(t, before, p.DemodCenterFrequency())
	p.WheelTurned(500, 100, 40, ModNone)

	assert.Equal(t, before+100, p.DemodCenterFrequency(), "accumulated full step retunes")
}

func TestWheelWithCtrlChangesFilterWidth(t *testing.T) {
	p := newTestPlotter(newTestClock())

	p.WheelTurned(500, 100, 120, ModCtrl)

	low, high := p.FilterFrequencies()
	assert.Equal(t, core.Frequency(-5100), low)
	assert.Equal(t, core.Frequency(5100), high)
}

func TestWheelWithShiftShiftsPassband(t *testing.T) {
	p := newTestPlotter(newTestClock())

	p.WheelTurned(500, 100, 120, ModShift)

	low, high := p.FilterFrequencies()
	assert.Equal(t, core.Frequency(-4900), low)
	assert.Equal(t, core.Frequency(5100), high)
}

func TestFilterDrag_Symmetric(t *testing.T) {
	p := newTestPlotter(newTestClock())

	var low, high core.Frequency
	p.OnFilterChanged(func(l, h core.Frequency) { low, high = l, h })

	// grab the high cut edge (at +5000 Hz = column 442)
	highX := p.demodHighCutX
	p.PointerMoved(highX+2, 100, ButtonNone, ModNone)
	assert.Equal(t, capFilterHigh, p.capture)
	p.PointerPressed(highX+2, 100, ButtonLeft, ModNone)
	// the first drag movement only establishes the grab offset
	p.PointerMoved(highX+2, 100, ButtonLeft, ModNone)

	// drag to +8000 Hz
	target := p.XFromFreq(144508000) + 2
	p.PointerMoved(target, 100, ButtonLeft, ModNone)

	assert.Equal(t, core.Frequency(8000), high)
	assert.Equal(t, core.Frequency(-8000), low, "left drag adjusts symmetrically")
}

func TestFilterDrag_ClampsToRanges(t *testing.T) {
	p := newTestPlotter(newTestClock())

	highX := p.demodHighCutX
	p.PointerMoved(highX+2, 100, ButtonNone, ModNone)
	p.PointerPressed(highX+2, 100, ButtonLeft, ModNone)
	p.PointerMoved(highX+2, 100, ButtonLeft, ModNone)

	// way beyond the +25 kHz limit
	p.PointerMoved(p.XFromFreq(144540000), 100, ButtonLeft, ModNone)

	_, high := p.FilterFrequencies()
	assert.Equal(t, core.Frequency(25000), high)
}

func TestFilterDrag_KeepsMinimumWidth(t *testing.T) {
	p := newTestPlotter(newTestClock())
	p.SetFilterRanges(-25000, 25000, -25000, 25000, false)
	p.SetFilterFrequencies(-5000, 5000)

	lowX := p.demodLowCutX
	p.PointerMoved(lowX+2, 100, ButtonNone, ModNone)
	assert.Equal(t, capFilterLow, p.capture)
	p.PointerPressed(lowX+2, 100, ButtonLeft, ModNone)
	p.PointerMoved(lowX+2, 100, ButtonLeft, ModNone)

	// drag the low cut far beyond the high cut
	p.PointerMoved(p.XFromFreq(144520000), 100, ButtonLeft, ModNone)

	low, high := p.FilterFrequencies()
	assert.Equal(t, core.Frequency(5000), high)
	assert.Equal(t, high-filterWidthMin, low)
}

func TestDragXAxis_PansTheView(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.NewFFTData(frameWithLevel(2048, -50))
	p.zoomStepX(0.5, 400)

	xAxisY := p.plotHeight - charHeight/2
	p.PointerMoved(400, xAxisY, ButtonNone, ModNone)
	assert.Equal(t, capXAxis, p.capture)
	p.PointerPressed(400, xAxisY, ButtonLeft, ModNone)
	p.PointerMoved(300, xAxisY, ButtonLeft, ModNone)

	// dragged left by 100 px of 60 Hz each
	assert.Equal(t, core.Frequency(6000), p.fftCenter)
}

func TestDragYAxis_ShiftsTheRange(t *testing.T) {
	p := newTestPlotter(newTestClock())

	p.PointerMoved(10, 100, ButtonNone, ModNone)
	assert.Equal(t, capYAxis, p.capture)
	p.PointerPressed(10, 100, ButtonLeft, ModNone)
	p.PointerMoved(10, 121, ButtonLeft, ModNone)

	// 21 px of 120dB/210px, dragging down moves the range up
	r := p.PandapterRange()
	assert.InDelta(t, -108, float64(r.From), 0.001)
	assert.InDelta(t, 12, float64(r.To), 0.001)
}

func TestMarkerDrag(t *testing.T) {
	p := newTestPlotter(newTestClock())
	p.EnableMarkers(true)
	p.SetMarkers(144480000, 144520000)

	aX := p.markerAX
	p.PointerMoved(aX+2, 100, ButtonNone, ModNone)
	assert.Equal(t, capMarkerA, p.capture)

	p.PointerMoved(aX+50, 100, ButtonLeft, ModNone)

	a, b := p.Markers()
	assert.Equal(t, p.FreqFromX(aX+50), a)
	assert.Equal(t, core.Frequency(144520000), b)
}

func TestMarkerDrag_ShiftMovesBoth(t *testing.T) {
	p := newTestPlotter(newTestClock())
	p.EnableMarkers(true)
	p.SetMarkers(144480000, 144520000)

	aX := p.markerAX
	p.PointerMoved(aX+2, 100, ButtonNone, ModNone)
	p.PointerMoved(aX+50, 100, ButtonLeft, ModShift)

	a, b := p.Markers()
	df := a - 144480000
	assert.Equal(t, core.Frequency(144520000)+df, b)
}

func TestLobeSelect(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.EnableMarkers(true)

	// signal lobe from bin 600 to 700 of 1600, -40 dB over a -90 dB floor
	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithSignal(1600, -90, -40, 600, 700))

	// shift-click inside the lobe at the -60 dB level
	py := int(60.0 * float64(p.plotHeight) / 120.0)
	p.PointerPressed(320, py, ButtonLeft, ModShift)

	a, b := p.Markers()
	assert.InDelta(t, 144487880, float64(a), 300, "marker A at the left lobe edge")
	assert.InDelta(t, 144494120, float64(b), 300, "marker B at the right lobe edge")
}

func TestClickToTune_SnapsToNearestPeak(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)
	p.EnablePeakDetect(true)

	// bins 650 and 651 of 1600 both map to column 325
	clock.Advance(100 * time.Millisecond)
	p.NewFFTData(frameWithSignal(1600, -90, -40, 650, 651))
	assert.Contains(t, p.peaks, 325)

	// -40 dB in the default range of -120..0 dB is at y = 70
	p.PointerPressed(320, 70, ButtonLeft, ModNone)

	assert.Equal(t, p.FreqFromX(325), p.DemodCenterFrequency())
}
