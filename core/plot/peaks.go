package plot

import "math"

// detectPeaks finds signal peaks in the currently displayed data and
// replaces the peak map. A first pass over a narrow sliding window
// finds narrow peaks and produces a smoothed curve, a second pass over
// the smoothed curve finds wider peaks that have no narrow peak close
// by. The map key is the column, the value the y coordinate on the
// plot.
func (p *Plotter) detectPeaks(g frameGeometry, tnow int64) {
	p.lastPeaksMs = tnow

	// max hold shows the most history, prefer it when active
	var source []float64
	if p.maxHoldActive {
		source = p.maxHoldBuf
	} else if p.plotMode == ModeAvg {
		source = p.avgBuf
	} else {
		source = p.maxBuf
	}

	gain := float64(p.plotHeight) / math.Abs(float64(p.pandMax)-float64(p.pandMin))
	npts := g.xmax - g.xmin
	peaks := map[int]float64{}

	const pw = peakWindowHalfWidth
	for i := pw; i < npts-pw; i++ {
		ix := i + g.xmin
		vi := source[ix]
		sumV := 0.0
		minV := vi
		maxV := 0.0
		for j := -pw; j <= pw; j++ {
			vj := source[ix+j]
			minV = math.Min(minV, vj)
			maxV = math.Max(maxV, vj)
			sumV += vj
		}
		avgV := sumV / float64(pw*2+1)
		p.smoothBuf[ix] = avgV
		if vi == maxV && vi > 2.0*avgV && vi > 4.0*minV {
			peaks[ix] = p.plotY(gain, vi)
		}
	}

	const pw2 = pw * 5
	for i := pw2; i < npts-pw2; i++ {
		ix := i + g.xmin
		vi := p.smoothBuf[ix]
		sumV := 0.0
		minV := vi
		maxV := 0.0
		for j := -pw2; j <= pw2; j++ {
			vj := p.smoothBuf[ix+j]
			minV = math.Min(minV, vj)
			maxV = math.Max(maxV, vj)
			sumV += vj
		}
		avgV := sumV / float64(pw2*2)
		if vi == maxV && vi > 2.0*avgV && vi > 4.0*minV {
			// show the wider peak only if there is no narrow peak
			// very close by
			found := false
			for j := -pw; j <= pw; j++ {
				if _, ok := peaks[ix+j]; ok {
					found = true
					break
				}
			}
			if !found {
				peaks[ix] = p.plotY(gain, vi)
			}
		}
	}

	p.peaks = peaks
}

// plotY converts a linear power value to a y coordinate on the plot,
// clamped to the plot height.
func (p *Plotter) plotY(gain, v float64) float64 {
	y := gain * (float64(p.pandMax) - 10.0*math.Log10(v))
	return math.Max(math.Min(y, float64(p.plotHeight)), 0.0)
}

// NearestPeak returns the column of the detected peak closest to the
// given point, or -1 if there is none within the click distance.
func (p *Plotter) NearestPeak(px, py int) int {
	dist := math.MaxFloat64
	best := -1
	for x, y := range p.peaks {
		if x < px-peakClickMaxHDistance || x > px+peakClickMaxHDistance {
			continue
		}
		if math.Abs(y-float64(py)) > peakClickMaxVDistance {
			continue
		}
		d := (y-float64(py))*(y-float64(py)) + float64((x-px)*(x-px))
		if d < dist {
			dist = d
			best = x
		}
	}
	return best
}
