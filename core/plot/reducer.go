package plot

import "math"

// frameGeometry is the mapping of the current frame onto the display,
// recalculated per frame since view and size may change between frames.
type frameGeometry struct {
	startBin  int
	startBinD float64
	numBins   int
	xScale    float64
	xmin      int
	xmax      int
	frameTime float64

	doHistogram bool
	histBins    int
	histWeight  float64
	histGain    float64
}

// reduce maps the FFT bins of the current frame onto the display
// columns and fills the line buffers: raw max/avg for the waterfall,
// IIR max/avg for the plot, and the hold lines. In histogram mode it
// also splats the frame into the histogram scratch buffer.
func (p *Plotter) reduce(newData bool) frameGeometry {
	fftSize := float64(p.fftSize)
	sampleFreq := float64(p.sampleRate)
	span := float64(p.span)
	startFreq := float64(p.fftCenter) - span/2.0
	binsPerHz := fftSize / sampleFreq
	w := float64(p.width)

	// pixels per bin
	xScale := sampleFreq * w / fftSize / span

	// Center of the fft is the center of the DC bin. The Nyquist bin
	// (index 0 after the shift) is not used.
	startBinD := startFreq*binsPerHz + fftSize/2.0
	startBin := min(int(math.Round(startBinD)), p.fftSize-1)
	numBins := int(math.Ceil(span * binsPerHz))
	endBin := startBin + numBins
	minbin := max(startBin, 1)
	maxbin := min(endBin+1, p.fftSize-1)

	xmin := int(math.Round(float64(minbin-startBin) * xScale))
	xmax := min(int(math.Round(float64(maxbin-startBin)*xScale)), p.width)

	g := frameGeometry{
		startBin:  startBin,
		startBinD: startBinD,
		numBins:   numBins,
		xScale:    xScale,
		xmin:      xmin,
		xmax:      xmax,
		frameTime: 1.0 / float64(p.fftRate),
	}

	g.doHistogram = p.plotMode == ModeHistogram && (!p.histIIRValid || newData)

	// Use fewer histogram bins when statistics are sparse.
	g.histBins = min(maxHistogramBins, max(32, int(math.Round(32.0*float64(numBins)/2048.0))))
	g.histWeight = 10e6 * g.frameTime / float64(g.histBins) / fftSize
	g.histGain = float64(g.histBins) / math.Abs(float64(p.pandMax)-float64(p.pandMin))

	if g.doHistogram {
		for i := range p.histogram {
			for j := range p.histogram[i] {
				p.histogram[i][j] = 0
			}
		}
	}

	// "Peak" means peak of average in avg mode, else peak of max.
	peakIsAverage := p.plotMode == ModeAvg
	// "Min" means min of max in max mode, else min of average.
	minIsAverage := p.plotMode != ModeMax

	const fmin = math.SmallestNonzeroFloat64

	if float64(numBins) >= w {
		// more bins than columns, aggregate bins per column
		var vmax, vmaxIIR, vsum, vsumIIR float64
		count := 0
		xprev := xmin
		first := true

		for i := minbin; i <= maxbin; i++ {
			xD := float64(i-startBin) * xScale
			x := int(math.Round(xD))

			// The plot uses the IIR output, histogram and waterfall
			// use the raw fft data.
			v := p.fftData[i]
			viir := p.fftIIR[i]

			if first {
				vmax, vmaxIIR, vsum, vsumIIR, count = v, viir, v, viir, 1
			}

			if g.doHistogram {
				p.splatHistogram(g, xD, v)
			}

			if x != xprev || i == maxbin {
				p.wfMaxBuf[xprev] = math.Max(vmax, fmin)
				p.maxBuf[xprev] = math.Max(vmaxIIR, fmin)
				vavg := math.Max(vsum/float64(count), fmin)
				p.wfAvgBuf[xprev] = vavg
				vavgIIR := math.Max(vsumIIR/float64(count), fmin)
				p.avgBuf[xprev] = vavgIIR

				newPeak := p.maxBuf[xprev]
				if peakIsAverage {
					newPeak = vavgIIR
				}
				if p.maxHoldValid {
					p.maxHoldBuf[xprev] = math.Max(p.maxHoldBuf[xprev], newPeak)
				} else {
					p.maxHoldBuf[xprev] = newPeak
				}

				newMin := p.maxBuf[xprev]
				if minIsAverage {
					newMin = vavgIIR
				}
				if p.minHoldValid {
					p.minHoldBuf[xprev] = math.Min(p.minHoldBuf[xprev], newMin)
				} else {
					p.minHoldBuf[xprev] = newMin
				}

				vmax, vmaxIIR, vsum, vsumIIR, count = v, viir, v, viir, 1
				xprev = x
			} else if !first {
				vmax = math.Max(v, vmax)
				vmaxIIR = math.Max(viir, vmaxIIR)
				vsum += v
				vsumIIR += viir
				count++
			}

			first = false
		}

		p.maxHoldValid = true
		p.minHoldValid = true
	} else {
		// fewer bins than columns, pick the nearest bin per column
		for i := xmin; i < xmax; i++ {
			j := int(math.Round(float64(i)/xScale + startBinD))

			v := p.fftData[j]
			viir := p.fftIIR[j]

			p.wfMaxBuf[i] = v
			p.wfAvgBuf[i] = v
			p.maxBuf[i] = viir
			p.avgBuf[i] = viir

			if p.maxHoldValid {
				p.maxHoldBuf[i] = math.Max(p.maxHoldBuf[i], viir)
			} else {
				p.maxHoldBuf[i] = viir
			}
			if p.minHoldValid {
				p.minHoldBuf[i] = math.Min(p.minHoldBuf[i], viir)
			} else {
				p.minHoldBuf[i] = viir
			}

			if g.doHistogram {
				p.splatHistogramColumn(g, i, v)
			}
		}
		p.maxHoldValid = true
		p.minHoldValid = true
	}

	p.xmin = g.xmin
	p.xmax = g.xmax
	p.numBins = g.numBins
	p.histBins = g.histBins

	return g
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
