// Package plot contains the reduction and rendering core of the
// panadapter: it turns incoming FFT frames into the plot line buffers,
// the amplitude histogram, the waterfall raster and the detected peaks,
// and it owns all view state (frequency window, amplitude ranges, demod
// filter, markers). The Plotter is not safe for concurrent use, it is
// owned by the application's mainloop.
package plot

import (
	"image"
	"math"
	"time"

	"github.com/ftl/panafall/core"
	"github.com/ftl/panafall/core/bandplan"
	"github.com/ftl/panafall/core/bookmarks"
	"github.com/ftl/panafall/core/colormap"
)

const (
	fftMinDB      core.DB = -160
	fftMaxDB      core.DB = 30
	fftMinDBRange core.DB = 2

	filterWidthMin      core.Frequency = 200
	clickFreqResolution core.Frequency = 100

	defaultCursorCaptureDelta = 5
	defaultPercent2D          = 35
	defaultPlotIntervalMs     = 25

	maxHistogramBins = 256

	peakWindowHalfWidth   = 10
	peakUpdatePeriodMs    = 500
	peakClickMaxHDistance = 10
	peakClickMaxVDistance = 20

	vdivDelta   = 30
	horzDivsMax = 20
	vertDivsMin = 5

	yAxisLabelChars = 4
	charWidth       = 8
	charHeight      = 14
	horMargin       = 5
	verMargin       = 5
)

// MarkerOff indicates that a marker is not placed.
const MarkerOff core.Frequency = -1

// Mode selects what the 2D plot shows per column.
type Mode int

const (
	ModeMax Mode = iota
	ModeAvg
	ModeFilled
	ModeHistogram
)

// Scale selects the power scale of the plot.
type Scale int

const (
	ScaleDBFS Scale = iota
	ScaleDBV
	ScaleDBm
)

// WaterfallMode selects the data source of the waterfall.
type WaterfallMode int

const (
	WaterfallMax WaterfallMode = iota
	WaterfallAvg
	WaterfallSync
)

// Bands provides the band plan shown on the frequency scale.
type Bands interface {
	BandsInRange(core.FrequencyRange) []bandplan.Band
}

// Tags provides the frequency annotations shown above the plot.
type Tags interface {
	EntriesInRange(core.FrequencyRange) []bookmarks.Entry
}

// Plotter reduces FFT frames to drawable data and tracks the view state.
type Plotter struct {
	now   func() time.Time
	start time.Time

	width      int
	height     int
	percent2D  int
	plotHeight int
	wfHeight   int

	fftSize    int
	sampleRate int
	fftRate    int
	alpha      float64
	fftData    []float64
	fftIIR     []float64
	iirValid   bool

	centerFreq core.Frequency
	fftCenter  core.Frequency
	span       core.Frequency
	freqUnits  int64
	freqDigits int

	demodCenter  core.Frequency
	demodLowCut  core.Frequency
	demodHighCut core.Frequency
	lowCutMin    core.Frequency
	lowCutMax    core.Frequency
	highCutMin   core.Frequency
	highCutMax   core.Frequency
	symmetric    bool

	clickResolution       core.Frequency
	filterClickResolution core.Frequency

	pandMin core.DB
	pandMax core.DB
	wfMin   core.DB
	wfMax   core.DB

	plotMode Mode
	scale    Scale
	perHz    bool
	wfMode   WaterfallMode
	running  bool

	maxHoldActive bool
	maxHoldValid  bool
	minHoldActive bool
	minHoldValid  bool
	peaksActive   bool

	maxBuf     []float64
	avgBuf     []float64
	wfMaxBuf   []float64
	wfAvgBuf   []float64
	maxHoldBuf []float64
	minHoldBuf []float64
	smoothBuf  []float64
	xmin, xmax int
	numBins    int

	histBins     int
	histogram    [][]float64
	histIIR      [][]float64
	histIIRValid bool
	histMaxIIR   float64

	waterfall      *image.RGBA
	colors         *colormap.Table
	wfBuf          []float64
	wfAvgCount     int
	wfCount        int64
	msecPerLine    float64
	wfSpanMs       int64
	wfEpochMs      int64
	wfValidSinceMs int64
	lastWfDrawnMs  int64

	plotIntervalMs  int64
	lastPlotDrawnMs int64
	plotStale       bool

	peaks       map[int]float64
	lastPeaksMs int64

	markersEnabled bool
	markerA        core.Frequency
	markerB        core.Frequency

	filterBoxEnabled  bool
	centerLineEnabled bool
	bandplanEnabled   bool
	tagsEnabled       bool
	bands             Bands
	tags              Tags

	capture            capture
	grab               int
	yZero              int
	xZero              int
	cumWheelDelta      int
	cursorCaptureDelta int
	invertScrolling    bool

	overlayStale   bool
	yAxisWidth     int
	xAxisHeight    int
	demodFreqX     int
	demodLowCutX   int
	demodHighCutX  int
	markerAX       int
	markerBX       int
	tagBoxes       []TagBox
	bandPlanHeight int

	demodFreqCallbacks      []func(demod core.Frequency, delta core.Frequency)
	filterCallbacks         []func(lowCut, highCut core.Frequency)
	zoomCallbacks           []func(zoom float64)
	pandapterRangeCallbacks []func(core.DBRange)
	markerACallbacks        []func(core.Frequency)
	markerBCallbacks        []func(core.Frequency)
	sizeCallbacks           []func(width, height int)
}

// New returns a plotter with the given clock. The clock is the time
// base of the waterfall and all rate limiting.
func New(now func() time.Time) *Plotter {
	if now == nil {
		now = time.Now
	}
	result := &Plotter{
		now:   now,
		alpha: 1.0,

		centerFreq:   144500000,
		demodCenter:  144500000,
		demodLowCut:  -5000,
		demodHighCut: 5000,
		lowCutMin:    -25000,
		lowCutMax:    -1000,
		highCutMin:   1000,
		highCutMax:   25000,
		symmetric:    true,

		clickResolution:       clickFreqResolution,
		filterClickResolution: clickFreqResolution,
		cursorCaptureDelta:    defaultCursorCaptureDelta,

		span:       96000,
		sampleRate: 96000,
		freqUnits:  1000000,
		freqDigits: 6,

		pandMin: -120,
		pandMax: 0,
		wfMin:   -120,
		wfMax:   0,

		plotMode: ModeMax,
		scale:    ScaleDBFS,
		wfMode:   WaterfallMax,

		percent2D:      defaultPercent2D,
		plotIntervalMs: defaultPlotIntervalMs,
		fftRate:        15,

		filterBoxEnabled:  true,
		centerLineEnabled: true,
		bandplanEnabled:   true,
		tagsEnabled:       true,

		markerA: MarkerOff,
		markerB: MarkerOff,

		colors:       colormap.Get(""),
		peaks:        map[int]float64{},
		lastPeaksMs:  -peakUpdatePeriodMs,
		overlayStale: true,
	}
	result.start = now()
	return result
}

func (p *Plotter) nowMs() int64 {
	return p.now().Sub(p.start).Milliseconds()
}

// OnDemodFreqChanged registers a callback for demod frequency changes
// caused by user interaction. delta is the offset to the hardware
// center frequency.
func (p *Plotter) OnDemodFreqChanged(f func(demod core.Frequency, delta core.Frequency)) {
	p.demodFreqCallbacks = append(p.demodFreqCallbacks, f)
}

// OnFilterChanged registers a callback for filter edge changes.
func (p *Plotter) OnFilterChanged(f func(lowCut, highCut core.Frequency)) {
	p.filterCallbacks = append(p.filterCallbacks, f)
}

// OnZoomChanged registers a callback for horizontal zoom changes.
func (p *Plotter) OnZoomChanged(f func(zoom float64)) {
	p.zoomCallbacks = append(p.zoomCallbacks, f)
}

// OnPandapterRangeChanged registers a callback for amplitude range changes.
func (p *Plotter) OnPandapterRangeChanged(f func(core.DBRange)) {
	p.pandapterRangeCallbacks = append(p.pandapterRangeCallbacks, f)
}

// OnMarkerA registers a callback for changes of marker A.
func (p *Plotter) OnMarkerA(f func(core.Frequency)) {
	p.markerACallbacks = append(p.markerACallbacks, f)
}

// OnMarkerB registers a callback for changes of marker B.
func (p *Plotter) OnMarkerB(f func(core.Frequency)) {
	p.markerBCallbacks = append(p.markerBCallbacks, f)
}

// OnSizeChanged registers a callback for size changes.
func (p *Plotter) OnSizeChanged(f func(width, height int)) {
	p.sizeCallbacks = append(p.sizeCallbacks, f)
}

func (p *Plotter) emitDemodFreq() {
	for _, f := range p.demodFreqCallbacks {
		f(p.demodCenter, p.demodCenter-p.centerFreq)
	}
}

func (p *Plotter) emitFilter() {
	for _, f := range p.filterCallbacks {
		f(p.demodLowCut, p.demodHighCut)
	}
}

func (p *Plotter) emitZoom() {
	zoom := float64(p.sampleRate) / float64(p.span)
	for _, f := range p.zoomCallbacks {
		f(zoom)
	}
}

func (p *Plotter) emitPandapterRange() {
	for _, f := range p.pandapterRangeCallbacks {
		f(core.DBRange{From: p.pandMin, To: p.pandMax})
	}
}

func (p *Plotter) emitMarkerA() {
	for _, f := range p.markerACallbacks {
		f(p.markerA)
	}
}

func (p *Plotter) emitMarkerB() {
	for _, f := range p.markerBCallbacks {
		f(p.markerB)
	}
}

// SetBandplan sets the band plan provider for the overlay.
func (p *Plotter) SetBandplan(bands Bands) {
	p.bands = bands
	p.updateOverlay()
}

// SetTags sets the tag provider for the overlay.
func (p *Plotter) SetTags(tags Tags) {
	p.tags = tags
	p.updateOverlay()
}

func (p *Plotter) updateOverlay() {
	p.overlayStale = true
	p.process(false)
}

func (p *Plotter) invalidateHolds() {
	p.maxHoldValid = false
	p.minHoldValid = false
}

func (p *Plotter) invalidateHistogram() {
	p.histIIRValid = false
}

func (p *Plotter) resetHistogramNormalization() {
	p.histIIRValid = false
	p.histMaxIIR = math.SmallestNonzeroFloat64
}

// SetSize sets the pixel size of the whole display. The upper part of
// the height is the 2D plot, the rest is the waterfall. The waterfall
// keeps its history across a resize, the raster is rescaled to the new
// width.
func (p *Plotter) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width = width
	p.height = height
	p.plotHeight = int(math.Round(float64(p.percent2D) * float64(height) / 100.0))
	p.wfHeight = height - p.plotHeight

	p.maxBuf = make([]float64, width)
	p.avgBuf = make([]float64, width)
	p.wfMaxBuf = make([]float64, width)
	p.wfAvgBuf = make([]float64, width)
	p.maxHoldBuf = make([]float64, width)
	p.minHoldBuf = make([]float64, width)
	p.smoothBuf = make([]float64, width)
	p.wfBuf = make([]float64, width)
	p.histogram = makeHistogramBuf(width)
	p.histIIR = makeHistogramBuf(width)

	p.resizeWaterfall(width, p.wfHeight)

	p.invalidateHolds()
	p.invalidateHistogram()
	if p.msecPerLine > 0 {
		p.clearWaterfallBuf()
	}

	p.updateOverlay()
	for _, f := range p.sizeCallbacks {
		f(width, height)
	}
}

func makeHistogramBuf(width int) [][]float64 {
	result := make([][]float64, width)
	for i := range result {
		result[i] = make([]float64, maxHistogramBins)
	}
	return result
}

// Size returns the current pixel size.
func (p *Plotter) Size() (width, height int) {
	return p.width, p.height
}

// PlotHeight returns the height of the 2D plot area in pixels.
func (p *Plotter) PlotHeight() int {
	return p.plotHeight
}

// SetPercent2D sets the percentage of the height used for the 2D plot.
func (p *Plotter) SetPercent2D(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent == p.percent2D {
		return
	}
	p.percent2D = percent
	width, height := p.width, p.height
	p.width, p.height = 0, 0
	p.SetSize(width, height)
}

// SetSampleRate sets the sample rate of the incoming FFT frames in Hz.
func (p *Plotter) SetSampleRate(rate int) {
	if rate <= 0 {
		return
	}
	p.sampleRate = rate
	if p.span > core.Frequency(rate) || p.span == 0 {
		p.span = core.Frequency(rate)
	}
	p.setFftCenterFreq(p.fftCenter)
	p.invalidateHolds()
	p.invalidateHistogram()
	p.updateOverlay()
}

// SetCenterFrequency retunes the hardware center frequency. The demod
// frequency keeps its offset to the center.
func (p *Plotter) SetCenterFrequency(f core.Frequency) {
	if f == p.centerFreq {
		return
	}
	offset := p.centerFreq - p.demodCenter
	p.centerFreq = f
	p.demodCenter = p.centerFreq - offset

	p.invalidateHolds()
	p.invalidateHistogram()
	p.iirValid = false

	p.updateOverlay()
}

// CenterFrequency returns the hardware center frequency.
func (p *Plotter) CenterFrequency() core.Frequency {
	return p.centerFreq
}

// SetDemodCenterFrequency moves the demod frequency without touching
// the center frequency.
func (p *Plotter) SetDemodCenterFrequency(f core.Frequency) {
	p.demodCenter = f
	p.updateOverlay()
}

// DemodCenterFrequency returns the demod frequency.
func (p *Plotter) DemodCenterFrequency() core.Frequency {
	return p.demodCenter
}

// SetFilterFrequencies sets the demod filter edges relative to the
// demod frequency.
func (p *Plotter) SetFilterFrequencies(lowCut, highCut core.Frequency) {
	p.demodLowCut = lowCut
	p.demodHighCut = highCut
	p.clampDemodParameters()
	p.updateOverlay()
}

// FilterFrequencies returns the demod filter edges.
func (p *Plotter) FilterFrequencies() (lowCut, highCut core.Frequency) {
	return p.demodLowCut, p.demodHighCut
}

// SetFilterRanges sets the valid ranges of the filter edges and whether
// dragging one edge adjusts the other symmetrically.
func (p *Plotter) SetFilterRanges(lowCutMin, lowCutMax, highCutMin, highCutMax core.Frequency, symmetric bool) {
	p.lowCutMin = lowCutMin
	p.lowCutMax = lowCutMax
	p.highCutMin = highCutMin
	p.highCutMax = highCutMax
	p.symmetric = symmetric
	p.clampDemodParameters()
	p.updateOverlay()
}

func (p *Plotter) clampDemodParameters() {
	if p.demodLowCut < p.lowCutMin {
		p.demodLowCut = p.lowCutMin
	}
	if p.demodLowCut > p.lowCutMax {
		p.demodLowCut = p.lowCutMax
	}
	if p.demodHighCut < p.highCutMin {
		p.demodHighCut = p.highCutMin
	}
	if p.demodHighCut > p.highCutMax {
		p.demodHighCut = p.highCutMax
	}
}

// SetClickResolution sets the rounding applied to click-to-tune and
// wheel tuning.
func (p *Plotter) SetClickResolution(resolution core.Frequency) {
	if resolution <= 0 {
		return
	}
	p.clickResolution = resolution
}

// SetFilterClickResolution sets the rounding applied to filter edge
// dragging.
func (p *Plotter) SetFilterClickResolution(resolution core.Frequency) {
	if resolution <= 0 {
		return
	}
	p.filterClickResolution = resolution
}

func outOfRange(min, max core.DB) bool {
	return min < fftMinDB || min > fftMaxDB ||
		max < fftMinDB || max > fftMaxDB ||
		max < min+fftMinDBRange
}

// SetPandapterRange sets the amplitude range of the 2D plot. Values
// outside [-160dB, 30dB] or a range narrower than 2dB are rejected.
func (p *Plotter) SetPandapterRange(r core.DBRange) {
	if outOfRange(r.From, r.To) {
		return
	}
	p.pandMin = r.From
	p.pandMax = r.To
	p.invalidateHistogram()
	p.updateOverlay()
}

// PandapterRange returns the amplitude range of the 2D plot.
func (p *Plotter) PandapterRange() core.DBRange {
	return core.DBRange{From: p.pandMin, To: p.pandMax}
}

// SetWaterfallRange sets the amplitude range of the waterfall color
// mapping. The same limits as for SetPandapterRange apply.
func (p *Plotter) SetWaterfallRange(r core.DBRange) {
	if outOfRange(r.From, r.To) {
		return
	}
	p.wfMin = r.From
	p.wfMax = r.To
}

// WaterfallRange returns the amplitude range of the waterfall.
func (p *Plotter) WaterfallRange() core.DBRange {
	return core.DBRange{From: p.wfMin, To: p.wfMax}
}

// SetPlotMode switches the 2D plot mode. The IIR state survives the
// switch, only the hold lines are re-seeded.
func (p *Plotter) SetPlotMode(mode Mode) {
	p.plotMode = mode
	p.invalidateHolds()
	p.updateOverlay()
}

// PlotMode returns the current 2D plot mode.
func (p *Plotter) PlotMode() Mode {
	return p.plotMode
}

// SetPlotScale switches the power scale and the per-Hz normalization.
func (p *Plotter) SetPlotScale(scale Scale, perHz bool) {
	p.scale = scale
	p.perHz = perHz
	p.invalidateHolds()
	p.iirValid = false
	p.invalidateHistogram()
}

// SetWaterfallMode switches the data source of the waterfall.
func (p *Plotter) SetWaterfallMode(mode WaterfallMode) {
	p.wfMode = mode
}

// SetFFTRate announces the FFT frame rate in frames per second.
func (p *Plotter) SetFFTRate(rate int) {
	if rate <= 0 {
		return
	}
	p.fftRate = rate
	p.wfValidSinceMs = p.nowMs()
	p.clearWaterfallBuf()
}

// SetFFTAvg sets the averaging factor in [0, 1]. 1 disables averaging.
func (p *Plotter) SetFFTAvg(alpha float64) {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	p.alpha = alpha
}

// SetColormap selects the color table by name.
func (p *Plotter) SetColormap(name string) {
	p.colors = colormap.Get(name)
}

// SetRunningState starts or stops display updates. Starting resets the
// waterfall time base, since the time axis is no longer contiguous.
func (p *Plotter) SetRunningState(running bool) {
	if running && !p.running {
		p.SetWaterfallSpan(p.wfSpanMs)

		p.invalidateHolds()
		p.iirValid = false
		p.resetHistogramNormalization()
	}
	p.running = running
}

// EnableMaxHold switches the max hold line on or off.
func (p *Plotter) EnableMaxHold(enabled bool) {
	p.maxHoldActive = enabled
	p.maxHoldValid = false
}

// EnableMinHold switches the min hold line on or off.
func (p *Plotter) EnableMinHold(enabled bool) {
	p.minHoldActive = enabled
	p.minHoldValid = false
}

// EnablePeakDetect switches peak detection on or off.
func (p *Plotter) EnablePeakDetect(enabled bool) {
	p.peaksActive = enabled
	if !enabled {
		p.peaks = map[int]float64{}
	}
}

// EnableMarkers switches the A/B markers on or off.
func (p *Plotter) EnableMarkers(enabled bool) {
	p.markersEnabled = enabled
}

// SetMarkers places both markers. Use MarkerOff to clear a marker.
func (p *Plotter) SetMarkers(a, b core.Frequency) {
	p.markerAX = -1
	p.markerBX = -1
	p.markerA = a
	p.markerB = b
	p.updateOverlay()
}

// Markers returns both marker frequencies.
func (p *Plotter) Markers() (a, b core.Frequency) {
	return p.markerA, p.markerB
}

// EnableBandplan switches the band plan overlay on or off.
func (p *Plotter) EnableBandplan(enabled bool) {
	p.bandplanEnabled = enabled
	p.updateOverlay()
}

// EnableTags switches the bookmark/spot tags on or off.
func (p *Plotter) EnableTags(enabled bool) {
	p.tagsEnabled = enabled
	p.updateOverlay()
}

// EnableFilterBox switches the demod filter box on or off.
func (p *Plotter) EnableFilterBox(enabled bool) {
	p.filterBoxEnabled = enabled
	p.updateOverlay()
}

// EnableCenterLine switches the center frequency line on or off.
func (p *Plotter) EnableCenterLine(enabled bool) {
	p.centerLineEnabled = enabled
	p.updateOverlay()
}

// EnableInvertScrolling inverts the wheel direction.
func (p *Plotter) EnableInvertScrolling(enabled bool) {
	p.invertScrolling = enabled
}

// SetPlotInterval limits the rate of 2D plot updates.
func (p *Plotter) SetPlotInterval(d time.Duration) {
	if d < 0 {
		return
	}
	p.plotIntervalMs = d.Milliseconds()
}

func (p *Plotter) setFftCenterFreq(f core.Frequency) {
	limit := (core.Frequency(p.sampleRate) - p.span) / 2
	if limit < 0 {
		limit = 0
	}
	if f < -limit {
		f = -limit
	}
	if f > limit {
		f = limit
	}
	p.fftCenter = f
}

// MoveToCenterFreq centers the view on the hardware center frequency.
func (p *Plotter) MoveToCenterFreq() {
	p.setFftCenterFreq(0)
	p.invalidateHolds()
	p.invalidateHistogram()
	p.updateOverlay()
}

// MoveToDemodFreq centers the view on the demod frequency.
func (p *Plotter) MoveToDemodFreq() {
	p.setFftCenterFreq(p.demodCenter - p.centerFreq)
	p.invalidateHolds()
	p.invalidateHistogram()
	p.updateOverlay()
}

// ResetHorizontalZoom shows the full sample rate centered around the
// center frequency.
func (p *Plotter) ResetHorizontalZoom() {
	p.span = core.Frequency(p.sampleRate)
	p.setFftCenterFreq(0)
	for _, f := range p.zoomCallbacks {
		f(1.0)
	}
	p.invalidateHolds()
	p.invalidateHistogram()
	p.updateOverlay()
}

// VisibleFrequencyRange returns the frequency range currently shown.
func (p *Plotter) VisibleFrequencyRange() core.FrequencyRange {
	start := p.centerFreq + p.fftCenter - p.span/2
	return core.FrequencyRange{From: start, To: start + p.span}
}

// NewFFTData feeds the next FFT frame into the plotter. The frame's
// Data contains linear power per bin with DC at the center.
func (p *Plotter) NewFFTData(frame core.FFT) {
	size := len(frame.Data)
	if size == 0 {
		return
	}
	if frame.Rate > 0 && frame.Rate != p.fftRate {
		p.fftRate = frame.Rate
	}

	if size != p.fftSize {
		p.fftData = make([]float64, size)
		p.fftIIR = make([]float64, size)

		p.invalidateHolds()
		p.iirValid = false
		p.resetHistogramNormalization()

		p.fftSize = size

		// Zoom out if needed to keep about 4 points on the screen.
		currentZoom := float64(p.sampleRate) / float64(p.span)
		maxZoom := float64(size) / 4.0
		if currentZoom > maxZoom {
			p.zoomStepX(currentZoom/maxZoom, p.width/2)
		}
	}

	// A 1.0 FS peak sine is 0 dBFS, full scale is peak, not RMS.
	pwrScale := 1.0 / (float64(size) * float64(size))
	switch p.scale {
	case ScaleDBV:
		// 1V peak is -3.01 dBV, RMS is 0.707 * peak.
		pwrScale *= 1.0 / 2.0
	case ScaleDBm:
		// Into 50 Ohm, a 1V peak sine is 10mW or 10 dBm.
		pwrScale *= 1000.0 / (2.0 * 50.0)
	}
	// Per-Hz rescales by 1/RBW, used for noise spectral density.
	if p.perHz && p.scale != ScaleDBFS {
		pwrScale *= float64(size) / float64(p.sampleRate)
	}

	const fmin = 1e-20 // keep zeros out of the log calcs
	for i, v := range frame.Data {
		p.fftData[i] = math.Max(v*pwrScale, fmin)
	}

	// The IIR works on linear data, but attack and decay should look
	// symmetric on the logarithmic y axis, so the filter multiplies
	// instead of adding. The time constant takes the frame rate into
	// account so that the visible rate of change in dB/s stays the
	// same across FFT rates.
	a := math.Pow(math.Pow(float64(p.fftRate), -1.75*(1.0-p.alpha)), 0.7)
	if p.iirValid && a != 1.0 {
		for i := range p.fftIIR {
			p.fftIIR[i] *= math.Pow(p.fftData[i]/p.fftIIR[i], a)
		}
	} else {
		copy(p.fftIIR, p.fftData)
	}
	p.iirValid = true

	p.process(true)
}

func (p *Plotter) process(newData bool) {
	if p.width == 0 || p.plotHeight == 0 {
		return
	}

	tnow := p.nowMs()

	if p.fftSize > 0 {
		g := p.reduce(newData)

		if p.wfHeight > 0 && p.running && newData {
			p.advanceWaterfall(g, tnow)
		}

		if g.doHistogram {
			p.mergeHistogramIIR(g)
		}

		if p.peaksActive && (tnow > p.lastPeaksMs+peakUpdatePeriodMs || p.overlayStale) {
			p.detectPeaks(g, tnow)
		}
	}

	if tnow >= p.lastPlotDrawnMs+p.plotIntervalMs {
		p.lastPlotDrawnMs = tnow
		p.plotStale = true
	}

	if p.overlayStale {
		p.layoutOverlay()
		p.overlayStale = false
	}
}
