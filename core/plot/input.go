package plot

import (
	"math"

	"github.com/ftl/panafall/core"
	"github.com/ftl/panafall/core/bookmarks"
)

// Button is a bitmask of pressed pointer buttons.
type Button int

const (
	ButtonNone   Button = 0
	ButtonLeft   Button = 1 << 0
	ButtonMiddle Button = 1 << 1
	ButtonRight  Button = 1 << 2
)

// Modifiers is a bitmask of pressed keyboard modifiers.
type Modifiers int

const (
	ModNone  Modifiers = 0
	ModShift Modifiers = 1 << 0
	ModCtrl  Modifiers = 1 << 1
)

// capture tells which element of the display the cursor has grabbed.
type capture int

const (
	capNone capture = iota
	capFilterLow
	capFilterHigh
	capFilterCenter
	capYAxis
	capXAxis
	capMarkerA
	capMarkerB
	capTag
)

// wheel deltas are in eighths of a degree, one step is 15 degrees
const wheelStep = 8 * 15

func isPointCloseTo(x, xr, delta int) bool {
	return x > xr-delta && x < xr+delta
}

// PointerMoved handles pointer movement. Without buttons it updates the
// grab region under the cursor, with buttons it drags the grabbed
// element.
func (p *Plotter) PointerMoved(px, py int, buttons Button, mods Modifiers) {
	if py < p.plotHeight {
		if buttons == ButtonNone {
			p.updateCaptureRegion(px, py)
			p.grab = 0
		}
	} else if buttons == ButtonNone {
		p.capture = capNone
		p.grab = 0
	}

	switch p.capture {
	case capYAxis:
		if buttons&ButtonLeft != 0 {
			p.dragYAxis(py)
		}
	case capXAxis:
		if buttons&(ButtonLeft|ButtonMiddle) != 0 {
			p.dragXAxis(px, buttons)
		}
	case capFilterLow:
		if buttons&(ButtonLeft|ButtonRight) != 0 {
			p.dragFilterLow(px, buttons)
		} else if buttons != ButtonNone {
			p.capture = capNone
		}
	case capFilterHigh:
		if buttons&(ButtonLeft|ButtonRight) != 0 {
			p.dragFilterHigh(px, buttons)
		} else if buttons != ButtonNone {
			p.capture = capNone
		}
	case capFilterCenter:
		if buttons&ButtonLeft != 0 {
			p.dragFilterCenter(px)
		} else if buttons != ButtonNone {
			p.capture = capNone
		}
	case capMarkerA:
		if px < p.width-p.cursorCaptureDelta && px > p.yAxisWidth+p.cursorCaptureDelta {
			if buttons&ButtonLeft != 0 {
				p.dragMarkerA(px, mods)
			} else if buttons != ButtonNone {
				p.capture = capNone
			}
		}
	case capMarkerB:
		if px < p.width-p.cursorCaptureDelta && px > p.yAxisWidth+p.cursorCaptureDelta {
			if buttons&ButtonLeft != 0 {
				p.dragMarkerB(px, mods)
			} else if buttons != ButtonNone {
				p.capture = capNone
			}
		}
	default:
		p.grab = 0
	}

	if px < 0 || px >= p.width || py < 0 || py >= p.height {
		p.capture = capNone
	}
}

func (p *Plotter) updateCaptureRegion(px, py int) {
	switch {
	case p.tagsEnabled && p.tagAt(px, py) != nil:
		p.capture = capTag
	case isPointCloseTo(px, p.yAxisWidth/2, p.yAxisWidth/2):
		p.capture = capYAxis
	case isPointCloseTo(py, p.plotHeight-charHeight/2, p.cursorCaptureDelta+20):
		p.capture = capXAxis
	case isPointCloseTo(px, p.demodFreqX, p.cursorCaptureDelta):
		p.capture = capFilterCenter
	case isPointCloseTo(px, p.demodHighCutX, p.cursorCaptureDelta):
		p.capture = capFilterHigh
	case isPointCloseTo(px, p.demodLowCutX, p.cursorCaptureDelta):
		p.capture = capFilterLow
	case p.markersEnabled && p.markerA != MarkerOff && isPointCloseTo(px, p.markerAX, p.cursorCaptureDelta):
		p.capture = capMarkerA
	case p.markersEnabled && p.markerB != MarkerOff && isPointCloseTo(px, p.markerBX, p.cursorCaptureDelta):
		p.capture = capMarkerB
	default:
		p.capture = capNone
	}
}

func (p *Plotter) dragYAxis(py int) {
	deltaPx := float64(p.yZero - py)
	deltaDb := core.DB(deltaPx * math.Abs(float64(p.pandMin)-float64(p.pandMax)) / float64(p.plotHeight))
	newMin := p.pandMin - deltaDb
	newMax := p.pandMax - deltaDb
	if outOfRange(newMin, newMax) {
		return
	}
	p.pandMin = newMin
	p.pandMax = newMax
	p.emitPandapterRange()
	p.invalidateHistogram()
	p.yZero = py
	p.updateOverlay()
}

func (p *Plotter) dragXAxis(px int, buttons Button) {
	deltaPx := p.xZero - px
	deltaHz := core.Frequency(math.Round(float64(deltaPx) * float64(p.span) / float64(p.width)))
	if deltaHz == 0 {
		return
	}
	if buttons&ButtonMiddle != 0 {
		p.centerFreq += deltaHz
		p.demodCenter += deltaHz
		p.emitDemodFreq()
	} else {
		p.setFftCenterFreq(p.fftCenter + deltaHz)
	}

	p.invalidateHolds()
	p.invalidateHistogram()
	p.xZero = px
	p.updateOverlay()
}

func (p *Plotter) dragFilterLow(px int, buttons Button) {
	if p.grab == 0 {
		p.grab = px - p.demodLowCutX
		return
	}
	p.demodLowCut = p.FreqFromX(px-p.grab) - p.demodCenter
	if p.demodLowCut > p.demodHighCut-filterWidthMin {
		p.demodLowCut = p.demodHighCut - filterWidthMin
	}
	p.demodLowCut = RoundFreq(p.demodLowCut, p.filterClickResolution)
	if p.symmetric && buttons&ButtonLeft != 0 {
		p.demodHighCut = -p.demodLowCut
	}
	p.clampDemodParameters()
	p.emitFilter()
	p.updateOverlay()
}

func (p *Plotter) dragFilterHigh(px int, buttons Button) {
	if p.grab == 0 {
		p.grab = px - p.demodHighCutX
		return
	}
	p.demodHighCut = p.FreqFromX(px-p.grab) - p.demodCenter
	if p.demodHighCut < p.demodLowCut+filterWidthMin {
		p.demodHighCut = p.demodLowCut + filterWidthMin
	}
	p.demodHighCut = RoundFreq(p.demodHighCut, p.filterClickResolution)
	if p.symmetric && buttons&ButtonLeft != 0 {
		p.demodLowCut = -p.demodHighCut
	}
	p.clampDemodParameters()
	p.emitFilter()
	p.updateOverlay()
}

func (p *Plotter) dragFilterCenter(px int) {
	if p.grab == 0 {
		p.grab = px - p.demodFreqX
		return
	}
	p.demodCenter = RoundFreq(p.FreqFromX(px-p.grab), p.clickResolution)
	p.emitDemodFreq()
	p.updateOverlay()
}

func (p *Plotter) dragMarkerA(px int, mods Modifiers) {
	prev := p.markerA
	p.markerA = p.FreqFromX(px)
	p.emitMarkerA()
	// shift drags both markers
	if mods&ModShift != 0 && p.markerB != MarkerOff {
		p.markerB += p.markerA - prev
		p.emitMarkerB()
	}
	p.updateOverlay()
}

func (p *Plotter) dragMarkerB(px int, mods Modifiers) {
	prev := p.markerB
	p.markerB = p.FreqFromX(px)
	p.emitMarkerB()
	if mods&ModShift != 0 && p.markerA != MarkerOff {
		p.markerA += p.markerB - prev
		p.emitMarkerA()
	}
	p.updateOverlay()
}

// PointerPressed handles a button press.
func (p *Plotter) PointerPressed(px, py int, buttons Button, mods Modifiers) {
	if p.capture == capNone {
		switch {
		case isPointCloseTo(px, p.demodFreqX, p.cursorCaptureDelta):
			p.capture = capFilterCenter
			p.grab = px - p.demodFreqX
		case isPointCloseTo(px, p.demodLowCutX, p.cursorCaptureDelta):
			p.capture = capFilterLow
			p.grab = px - p.demodLowCutX
		case isPointCloseTo(px, p.demodHighCutX, p.cursorCaptureDelta):
			p.capture = capFilterHigh
			p.grab = px - p.demodHighCutX
		default:
			p.pressUncaptured(px, py, buttons, mods)
		}
		return
	}

	switch p.capture {
	case capYAxis:
		p.yZero = py
	case capXAxis:
		p.xZero = px
		if buttons == ButtonRight {
			p.ResetHorizontalZoom()
		}
	case capTag:
		if tag := p.tagAt(px, py); tag != nil {
			p.demodCenter = tag.Frequency
			p.emitDemodFreq()
			p.updateOverlay()
		}
	}
}

func (p *Plotter) pressUncaptured(px, py int, buttons Button, mods Modifiers) {
	switch buttons {
	case ButtonLeft:
		selectMods := mods & (ModShift | ModCtrl)
		if p.markersEnabled && selectMods != 0 {
			p.selectLobe(px, py, selectMods)
			return
		}
		if selectMods != 0 {
			return
		}

		// plain left click tunes, snapping to a close peak
		best := -1
		if p.peaksActive {
			best = p.NearestPeak(px, py)
		}
		if best != -1 {
			p.demodCenter = p.FreqFromX(best)
		} else {
			p.demodCenter = RoundFreq(p.FreqFromX(px), p.clickResolution)
		}
		p.emitDemodFreq()
		p.capture = capFilterCenter
		p.grab = 1
		p.updateOverlay()
	case ButtonMiddle:
		p.centerFreq = RoundFreq(p.FreqFromX(px), p.clickResolution)
		p.demodCenter = p.centerFreq
		p.emitDemodFreq()
		p.updateOverlay()
	case ButtonRight:
		p.ResetHorizontalZoom()
	}
}

// selectLobe places the markers around the signal lobe at the click
// position: it walks left and right from the click column until the
// selected curve crosses the clicked amplitude.
func (p *Plotter) selectLobe(px, py int, mods Modifiers) {
	var selectBuf []float64
	switch {
	case p.maxHoldActive && mods == ModShift|ModCtrl:
		selectBuf = p.maxHoldBuf
	case p.plotMode == ModeMax && mods == ModShift:
		selectBuf = p.maxBuf
	case p.plotMode == ModeAvg && mods == ModShift:
		selectBuf = p.avgBuf
	case p.plotMode == ModeFilled || p.plotMode == ModeHistogram:
		if mods == ModShift {
			selectBuf = p.avgBuf
		} else if mods == ModCtrl {
			selectBuf = p.maxBuf
		}
	}
	if p.fftSize == 0 || selectBuf == nil {
		return
	}
	if px < 0 || px >= len(selectBuf) {
		return
	}

	gain := float64(p.plotHeight) / math.Abs(float64(p.pandMax)-float64(p.pandMin))
	vlog := float64(p.pandMax) - float64(py)/gain
	v := math.Pow(10.0, vlog/10.0)

	if v == selectBuf[px] || py >= p.plotHeight {
		return
	}

	xLeft := px
	xRight := px
	if v < selectBuf[px] {
		// clicked below the curve, select the span above the level
		for xLeft > 0 && selectBuf[xLeft] > v {
			xLeft--
		}
		for xRight < len(selectBuf)-1 && selectBuf[xRight] > v {
			xRight++
		}
	} else {
		// clicked above the curve, select the dip
		for xLeft > 0 && selectBuf[xLeft] < v {
			xLeft--
		}
		for xRight < len(selectBuf)-1 && selectBuf[xRight] < v {
			xRight++
		}
	}

	p.markerA = p.FreqFromX(xLeft)
	p.markerB = p.FreqFromX(xRight)
	p.emitMarkerA()
	p.emitMarkerB()
	p.updateOverlay()
}

// PointerReleased handles a button release.
func (p *Plotter) PointerReleased(px, py int) {
	if py >= p.plotHeight {
		p.capture = capNone
		p.grab = 0
		return
	}
	switch p.capture {
	case capYAxis:
		p.yZero = -1
	case capXAxis:
		p.xZero = -1
	}
}

// WheelTurned handles wheel movement. delta is in eighths of a degree,
// one step is 120.
func (p *Plotter) WheelTurned(px, py int, delta int, mods Modifiers) {
	if p.invertScrolling {
		delta = -delta
	}
	numSteps := float64(delta) / wheelStep
	// zoom faster with ctrl held
	zoomBase := 0.9
	if mods&ModCtrl != 0 {
		zoomBase = 0.7
	}

	switch {
	case p.capture == capYAxis:
		p.zoomYAxis(py, math.Pow(zoomBase, numSteps))
	case p.capture == capXAxis:
		p.zoomStepX(math.Pow(zoomBase, numSteps), px)
	case mods&ModCtrl != 0:
		// filter width
		p.demodLowCut -= core.Frequency(numSteps * float64(p.clickResolution))
		p.demodHighCut += core.Frequency(numSteps * float64(p.clickResolution))
		p.clampDemodParameters()
		p.emitFilter()
	case mods&ModShift != 0:
		// filter shift
		p.demodLowCut += core.Frequency(numSteps * float64(p.clickResolution))
		p.demodHighCut += core.Frequency(numSteps * float64(p.clickResolution))
		p.clampDemodParameters()
		p.emitFilter()
	default:
		// small steps get lost in the rounding, let them accumulate
		p.cumWheelDelta += delta
		if p.cumWheelDelta > -wheelStep && p.cumWheelDelta < wheelStep {
			return
		}
		numSteps = float64(p.cumWheelDelta) / wheelStep

		p.demodCenter += core.Frequency(numSteps * float64(p.clickResolution))
		p.demodCenter = RoundFreq(p.demodCenter, p.clickResolution)
		p.emitDemodFreq()
	}

	p.updateOverlay()
	p.cumWheelDelta = 0
}

// zoomYAxis zooms the amplitude range, keeping the dB value under the
// cursor fixed.
func (p *Plotter) zoomYAxis(py int, zoomFac float64) {
	h := float64(p.plotHeight)
	ratio := float64(py) / h
	dbRange := float64(p.pandMax - p.pandMin)
	dbPerPix := dbRange / h
	fixedDb := float64(p.pandMax) - float64(py)*dbPerPix

	dbRange = math.Min(math.Max(dbRange*zoomFac, float64(fftMinDBRange)), float64(fftMaxDB-fftMinDB))
	p.pandMax = core.DB(fixedDb + ratio*dbRange)
	if p.pandMax > fftMaxDB {
		p.pandMax = fftMaxDB
	}
	p.pandMin = p.pandMax - core.DB(dbRange)
	if p.pandMin < fftMinDB {
		p.pandMin = fftMinDB
	}

	p.invalidateHistogram()
	p.emitPandapterRange()
}

// zoomStepX makes a single horizontal zoom step, keeping the frequency
// at column x fixed. Zoom out stops at the full sample rate, zoom in
// stops where about 4 FFT bins remain on the screen.
func (p *Plotter) zoomStepX(step float64, x int) {
	if p.fftSize != 0 {
		currentZoom := float64(p.sampleRate) / float64(p.span)
		if (step >= 1.0 && currentZoom <= 1.0) ||
			(step < 1.0 && currentZoom >= float64(p.fftSize)/4.0) {
			return
		}
	}

	newSpan := math.Min(float64(p.span)*step, float64(p.sampleRate))

	// Keep the frequency under the pointer fixed and derive the new
	// offset of the view center.
	offset := float64(p.FreqFromX(x) - p.centerFreq - p.fftCenter)
	newFftCenter := float64(p.fftCenter) + offset*(1.0-step)

	// Keep the edges of the view in the valid frequency range, panning
	// if necessary.
	maxLimit := float64(p.sampleRate) / 2.0
	minLimit := -maxLimit
	fMax := newFftCenter + newSpan/2.0
	fMin := newFftCenter - newSpan/2.0
	if fMin < minLimit {
		fMin = minLimit
		fMax = fMin + newSpan
	}
	if fMax > maxLimit {
		fMax = maxLimit
		fMin = fMax - newSpan
	}

	spanInt := int64(math.Round(fMax - fMin))
	if spanInt&1 == 1 {
		spanInt--
	}

	p.span = core.Frequency(spanInt)
	p.setFftCenterFreq(core.Frequency(math.Round((fMax + fMin) / 2.0)))

	p.invalidateHolds()
	p.invalidateHistogram()

	p.updateOverlay()
	p.emitZoom()
}

// ZoomOnXAxis sets the horizontal zoom to an absolute level, anchored
// at the center of the display.
func (p *Plotter) ZoomOnXAxis(level float64) {
	if level <= 0 {
		return
	}
	currentLevel := float64(p.sampleRate) / float64(p.span)
	p.zoomStepX(currentLevel/level, p.width/2)
	p.updateOverlay()
}

func (p *Plotter) tagAt(px, py int) *bookmarks.Entry {
	for i := range p.tagBoxes {
		box := &p.tagBoxes[i]
		if px >= box.X && px < box.X+box.Width && py >= box.Y && py < box.Y+box.Height {
			return &box.Entry
		}
	}
	return nil
}
