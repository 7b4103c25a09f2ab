package plot

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/ftl/panafall/core"
	"github.com/ftl/panafall/core/bookmarks"
)

// GridLine is one line of the frequency or amplitude grid, with its
// label.
type GridLine struct {
	Pos   core.Px
	Label string
}

// TagBox is the hit box of one frequency tag, stacked into levels so
// that labels do not overlap.
type TagBox struct {
	Entry  bookmarks.Entry
	X      int
	Y      int
	Width  int
	Height int
	Level  int
}

// BandRect is the visible part of one band of the band plan.
type BandRect struct {
	FromX int
	ToX   int
	Label string
	Color color.RGBA
}

// FilterBox is the demod filter region in display columns.
type FilterBox struct {
	CenterX int
	LowX    int
	HighX   int
}

// RenderData is a snapshot of everything a paint layer needs to draw
// one frame. All lines are per-column y coordinates over [XMin, XMax).
type RenderData struct {
	Width      int
	Height     int
	PlotHeight int
	XMin       int
	XMax       int

	YAxisWidth  int
	XAxisHeight int

	MaxLine     []core.Px
	AvgLine     []core.Px
	MaxHoldLine []core.Px
	MinHoldLine []core.Px
	ShowMax     bool
	ShowAvg     bool
	FillToAvg   bool

	Histogram     [][]color.RGBA
	HistogramTop  []core.Px
	ShowHistogram bool

	Peaks []core.PxPoint

	FrequencyGrid []GridLine
	DBGrid        []GridLine

	CenterLineX int
	ShowCenter  bool

	Filter     FilterBox
	ShowFilter bool

	MarkerAX    int
	MarkerBX    int
	ShowMarkers bool

	Tags  []TagBox
	Bands []BandRect

	Waterfall *image.RGBA
}

// Dirty indicates that new data arrived since the last Render call and
// the plot update interval has passed.
func (p *Plotter) Dirty() bool {
	return p.plotStale
}

// Render builds the snapshot for the paint layer.
func (p *Plotter) Render() RenderData {
	p.plotStale = false

	result := RenderData{
		Width:       p.width,
		Height:      p.height,
		PlotHeight:  p.plotHeight,
		XMin:        p.xmin,
		XMax:        p.xmax,
		YAxisWidth:  p.yAxisWidth,
		XAxisHeight: p.xAxisHeight,
		CenterLineX: p.XFromFreq(p.centerFreq),
		ShowCenter:  p.centerLineEnabled,
		ShowFilter:  p.filterBoxEnabled,
		ShowMarkers: p.markersEnabled,
		Waterfall:   p.waterfall,
	}

	npts := p.xmax - p.xmin
	if npts < 0 {
		npts = 0
	}

	gain := float64(p.plotHeight) / math.Abs(float64(p.pandMax)-float64(p.pandMin))

	showHistHighlights := p.histBins >= maxHistogramBins/2
	result.ShowMax = p.plotMode != ModeAvg && p.plotMode != ModeHistogram
	result.ShowAvg = p.plotMode != ModeMax && (p.plotMode != ModeHistogram || showHistHighlights)
	result.FillToAvg = p.plotMode == ModeFilled
	result.ShowHistogram = p.plotMode == ModeHistogram

	if result.ShowMax || result.FillToAvg {
		result.MaxLine = p.lineFromBuf(p.maxBuf, gain, npts)
	}
	if result.ShowAvg || result.FillToAvg {
		result.AvgLine = p.lineFromBuf(p.avgBuf, gain, npts)
	}
	if p.maxHoldActive {
		result.MaxHoldLine = p.lineFromBuf(p.maxHoldBuf, gain, npts)
	}
	if p.minHoldActive {
		result.MinHoldLine = p.lineFromBuf(p.minHoldBuf, gain, npts)
	}

	if result.ShowHistogram && p.histIIRValid {
		result.Histogram, result.HistogramTop = p.renderHistogram(npts)
	}

	if p.peaksActive {
		result.Peaks = make([]core.PxPoint, 0, len(p.peaks))
		for x, y := range p.peaks {
			result.Peaks = append(result.Peaks, core.PxPoint{X: core.Px(x), Y: core.Px(y)})
		}
	}

	result.FrequencyGrid = p.frequencyGrid()
	result.DBGrid = p.dbGrid()

	result.Filter = FilterBox{
		CenterX: p.demodFreqX,
		LowX:    p.demodLowCutX,
		HighX:   p.demodHighCutX,
	}
	result.MarkerAX = p.markerAX
	result.MarkerBX = p.markerBX

	result.Tags = p.tagBoxes
	result.Bands = p.bandRects()

	return result
}

func (p *Plotter) lineFromBuf(buf []float64, gain float64, npts int) []core.Px {
	result := make([]core.Px, npts)
	for i := 0; i < npts; i++ {
		result[i] = core.Px(p.plotY(gain, buf[i+p.xmin]))
	}
	return result
}

// renderHistogram maps the histogram IIR to colors, normalized to the
// running maximum. The brightest cell per column is returned separately
// as the highlight line.
func (p *Plotter) renderHistogram(npts int) ([][]color.RGBA, []core.Px) {
	columns := make([][]color.RGBA, npts)
	top := make([]core.Px, npts)
	binSizeY := float64(p.plotHeight) / float64(p.histBins)

	for i := 0; i < npts; i++ {
		ix := i + p.xmin
		cells := make([]color.RGBA, p.histBins)
		topBin := float64(p.plotHeight)
		for j := 0; j < p.histBins; j++ {
			cidx := int(math.Round(p.histIIR[ix][j] / p.histMaxIIR * 255.0 * 0.7))
			if cidx <= 0 {
				continue
			}
			cidx += 65
			// the IIR can overshoot the running maximum
			cidx = max(min(cidx, 255), 0)
			cells[j] = p.colors[cidx]
			topBin = math.Min(topBin, binSizeY*float64(j))
		}
		columns[i] = cells
		top[i] = core.Px(topBin)
	}
	return columns, top
}

func (p *Plotter) frequencyGrid() []GridLine {
	startFreq := int64(p.centerFreq+p.fftCenter) - int64(p.span)/2
	labelWidth := (p.freqDigits + 4) * charWidth
	divsWanted := min(p.width/max(labelWidth, 1), horzDivsMax)

	adjlow, step, divs := CalcDivSize(startFreq, startFreq+int64(p.span), divsWanted)
	if step == 0 {
		return nil
	}
	labels := FrequencyLabels(adjlow, step, p.freqUnits, divs, p.freqDigits)

	pixPerDiv := float64(p.width) * float64(step) / float64(p.span)
	adjOffset := pixPerDiv * float64(adjlow-startFreq) / float64(step)

	result := make([]GridLine, 0, divs+1)
	for i := 0; i <= divs; i++ {
		x := float64(i)*pixPerDiv + adjOffset
		if x <= float64(p.yAxisWidth) {
			continue
		}
		result = append(result, GridLine{Pos: core.Px(x), Label: labels[i]})
	}
	return result
}

func (p *Plotter) dbGrid() []GridLine {
	h := float64(p.plotHeight)
	dbSpan := int64(p.pandMax - p.pandMin)
	divsWanted := max(p.plotHeight/vdivDelta, vertDivsMin)

	adjlow, step, divs := CalcDivSize(int64(p.pandMin), int64(p.pandMin)+dbSpan, divsWanted)
	if step == 0 {
		return nil
	}

	pixPerDiv := h * float64(step) / float64(p.pandMax-p.pandMin)
	adjOffset := h * (float64(adjlow) - float64(p.pandMin)) / float64(p.pandMax-p.pandMin)

	result := make([]GridLine, 0, divs+1)
	for i := 0; i <= divs; i++ {
		y := h - (float64(i)*pixPerDiv + adjOffset)
		if y >= h-float64(p.xAxisHeight) || y <= charHeight/2 {
			continue
		}
		label := int64(adjlow) + step*int64(i)
		result = append(result, GridLine{Pos: core.Px(y), Label: formatDB(label)})
	}
	return result
}

func formatDB(v int64) string {
	return strconv.FormatInt(v, 10)
}

// layoutOverlay recalculates the grab regions and the stacked tags.
// It runs whenever the view changed.
func (p *Plotter) layoutOverlay() {
	p.yAxisWidth = yAxisLabelChars*charWidth + 2*horMargin
	p.xAxisHeight = charHeight + 2*verMargin

	p.demodFreqX = p.XFromFreq(p.demodCenter)
	p.demodLowCutX = p.XFromFreq(p.demodCenter + p.demodLowCut)
	p.demodHighCutX = p.XFromFreq(p.demodCenter + p.demodHighCut)

	if p.markersEnabled && p.markerA != MarkerOff {
		p.markerAX = p.XFromFreq(p.markerA)
	} else {
		p.markerAX = -1
	}
	if p.markersEnabled && p.markerB != MarkerOff {
		p.markerBX = p.XFromFreq(p.markerB)
	} else {
		p.markerBX = -1
	}

	p.layoutTags()
}

// layoutTags stacks the visible tags greedily: each tag takes the first
// level whose last tag ends left of it. When all levels are occupied it
// goes back to level 0, or is dropped if even level 0 has no room.
func (p *Plotter) layoutTags() {
	p.tagBoxes = nil
	if !p.tagsEnabled || p.tags == nil {
		return
	}

	const slant = 5
	fontHeight := charHeight
	levelHeight := fontHeight + 5
	nLevels := p.plotHeight / (levelHeight + slant)
	if nLevels <= 0 {
		return
	}

	entries := p.tags.EntriesInRange(p.VisibleFrequencyRange())
	tagEnd := make([]int, nLevels+1)
	for _, entry := range entries {
		x := p.XFromFreq(entry.Frequency)
		nameWidth := len(entry.Label) * charWidth

		level := 0
		for level < nLevels && tagEnd[level] > x {
			level++
		}
		if level >= nLevels {
			level = 0
			if tagEnd[level] > x {
				continue
			}
		}
		tagEnd[level] = x + nameWidth + slant - 1

		p.tagBoxes = append(p.tagBoxes, TagBox{
			Entry:  entry,
			X:      x,
			Y:      level * levelHeight,
			Width:  nameWidth + slant,
			Height: fontHeight,
			Level:  level,
		})
	}
}

func (p *Plotter) bandRects() []BandRect {
	if !p.bandplanEnabled || p.bands == nil {
		return nil
	}
	bands := p.bands.BandsInRange(p.VisibleFrequencyRange())
	result := make([]BandRect, 0, len(bands))
	for _, band := range bands {
		left := max(p.XFromFreq(band.From), 0)
		right := min(p.XFromFreq(band.To), p.width)
		if right <= left {
			continue
		}
		result = append(result, BandRect{
			FromX: left,
			ToX:   right,
			Label: string(band.Name) + " (" + string(band.Mode) + ")",
			Color: band.Color,
		})
	}
	return result
}
