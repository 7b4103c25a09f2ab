package plot

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

var waterfallBackground = color.RGBA{A: 0xff}

// Waterfall returns the waterfall raster. Row 0 is the newest line. The
// image is owned by the plotter and must not be modified.
func (p *Plotter) Waterfall() *image.RGBA {
	return p.waterfall
}

func (p *Plotter) resizeWaterfall(width, height int) {
	if height == 0 {
		p.waterfall = nil
		return
	}

	old := p.waterfall
	p.waterfall = image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(p.waterfall, p.waterfall.Bounds(), image.NewUniform(waterfallBackground), image.Point{}, stddraw.Src)

	if old == nil {
		return
	}

	// Rescale the history to the new width. The height is never
	// rescaled, that would falsify the time axis.
	oldHeight := old.Bounds().Dy()
	scaled := image.NewRGBA(image.Rect(0, 0, width, oldHeight))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), old, old.Bounds(), xdraw.Src, nil)
	keep := min(height, oldHeight)
	stddraw.Draw(p.waterfall, image.Rect(0, 0, width, keep), scaled, image.Point{}, stddraw.Src)
}

// SetWaterfallSpan sets the time span of the full waterfall height in
// milliseconds. 0 selects auto mode: one line per FFT frame.
func (p *Plotter) SetWaterfallSpan(spanMs int64) {
	p.wfSpanMs = spanMs
	tnow := p.nowMs()
	if p.waterfall != nil {
		p.wfEpochMs = tnow
		p.wfCount = 0
		p.msecPerLine = float64(p.wfSpanMs) / float64(p.waterfall.Bounds().Dy())
	}
	p.wfValidSinceMs = tnow
	p.clearWaterfallBuf()
}

// WaterfallTimeResolution returns the time per waterfall line in
// milliseconds.
func (p *Plotter) WaterfallTimeResolution() int64 {
	if p.msecPerLine > 0 {
		return int64(p.msecPerLine)
	}
	// auto mode, rounded down to the nearest integer
	return int64(1000 / p.fftRate)
}

// ClearWaterfall erases the waterfall history.
func (p *Plotter) ClearWaterfall() {
	if p.waterfall == nil {
		return
	}
	stddraw.Draw(p.waterfall, p.waterfall.Bounds(), image.NewUniform(waterfallBackground), image.Point{}, stddraw.Src)
}

func (p *Plotter) clearWaterfallBuf() {
	for i := range p.wfBuf {
		p.wfBuf[i] = 0
	}
	p.wfAvgCount = 0
}

// advanceWaterfall accumulates the current frame and scrolls the raster
// by one line when it is due.
func (p *Plotter) advanceWaterfall(g frameGeometry, tnow int64) {
	var dataSource []float64
	switch p.wfMode {
	case WaterfallAvg:
		dataSource = p.wfAvgBuf
	case WaterfallSync:
		if p.plotMode == ModeMax {
			dataSource = p.maxBuf
		} else {
			dataSource = p.avgBuf
		}
	default:
		dataSource = p.wfMaxBuf
	}

	npts := g.xmax - g.xmin

	// In manual mode the frames between two lines are accumulated: the
	// average of the frames in avg/sync mode, the maximum in max mode.
	if p.msecPerLine > 0 {
		if p.wfMode != WaterfallMax {
			p.wfAvgCount++
			for i := 0; i < npts; i++ {
				p.wfBuf[i+g.xmin] += dataSource[i+g.xmin]
			}
		} else {
			for i := 0; i < npts; i++ {
				ix := i + g.xmin
				p.wfBuf[ix] = math.Max(p.wfBuf[ix], dataSource[ix])
			}
		}
	}

	// msecPerLine is 0 in auto mode, every frame produces a line.
	if float64(tnow-p.wfEpochMs) <= float64(p.wfCount)*p.msecPerLine {
		return
	}
	p.wfCount++

	if p.wfValidSinceMs == 0 {
		p.wfValidSinceMs = tnow
	}
	p.lastWfDrawnMs = tnow

	p.scrollWaterfallDown()

	useWfBuf := p.msecPerLine > 0
	lineFactor := 1.0
	if useWfBuf && p.wfMode != WaterfallMax {
		lineFactor = 1.0 / float64(p.wfAvgCount)
	}
	p.wfAvgCount = 0

	gain := 256.0 / math.Abs(float64(p.wfMax)-float64(p.wfMin))
	for i := 0; i < npts; i++ {
		ix := i + g.xmin
		v := dataSource[ix]
		if useWfBuf {
			v = p.wfBuf[ix] * lineFactor
		}
		cidx := int(math.Round((float64(p.wfMax) - 10.0*math.Log10(v)) * gain))
		cidx = max(min(cidx, 255), 0)
		p.waterfall.SetRGBA(ix, 0, p.colors[255-cidx])
	}

	if p.msecPerLine > 0 {
		p.clearWaterfallBuf()
	}
}

// scrollWaterfallDown moves all lines down by one and blanks the top
// line, including the areas left and right of the visible span.
func (p *Plotter) scrollWaterfallDown() {
	stride := p.waterfall.Stride
	pix := p.waterfall.Pix
	copy(pix[stride:], pix[:len(pix)-stride])
	black := waterfallBackground
	for x := 0; x < p.waterfall.Bounds().Dx(); x++ {
		p.waterfall.SetRGBA(x, 0, black)
	}
}
