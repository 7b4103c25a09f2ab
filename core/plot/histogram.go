package plot

import "math"

// splatHistogram adds one bin value to the histogram scratch buffer,
// distributed over the two closest columns and the two closest
// amplitude bins by linear interpolation. Out-of-range values are
// ignored rather than clipped.
func (p *Plotter) splatHistogram(g frameGeometry, xD, v float64) {
	binD := g.histGain * (float64(p.pandMax) - 10.0*math.Log10(v))
	if binD <= 0.0 || binD >= float64(g.histBins) {
		return
	}
	binLeft := min(max(int(xD-0.5), 0), p.width-1)
	binRight := min(binLeft+1, p.width-1)
	binLow := min(max(int(binD-0.5), 0), g.histBins-1)
	binHigh := min(binLow+1, g.histBins-1)
	wgtH := (xD - float64(binLeft)) / 2.0
	wgtV := (binD - float64(binLow)) / 2.0
	p.histogram[binLeft][binLow] += (1.0 - wgtV) * (1.0 - wgtH) * g.histWeight
	p.histogram[binLeft][binHigh] += wgtV * (1.0 - wgtH) * g.histWeight
	p.histogram[binRight][binLow] += (1.0 - wgtV) * wgtH * g.histWeight
	p.histogram[binRight][binHigh] += wgtV * wgtH * g.histWeight
}

// splatHistogramColumn adds one value to the histogram at a fixed
// column, interpolating only between the two closest amplitude bins.
func (p *Plotter) splatHistogramColumn(g frameGeometry, x int, v float64) {
	binD := g.histGain * (float64(p.pandMax) - 10.0*math.Log10(v))
	if binD <= 0.0 || binD >= float64(g.histBins) {
		return
	}
	binLow := min(max(int(binD-0.5), 0), g.histBins-1)
	binHigh := min(binLow+1, g.histBins-1)
	wgt := (binD - float64(binLow)) / 2.0
	p.histogram[x][binLow] += (1.0 - wgt) * g.histWeight
	p.histogram[x][binHigh] += wgt * g.histWeight
}

// mergeHistogramIIR merges the scratch buffer into the histogram IIR:
// instant attack, decay with a time constant derived from the averaging
// factor. The running maximum drives the colormap normalization with a
// 5Hz time constant.
func (p *Plotter) mergeHistogramIIR(g frameGeometry) {
	a := 1.0 - p.alpha
	aAttack := 1.0
	aDecay := 1.0 - math.Pow(a, 4.0*g.frameTime)

	histMax := 0.0
	for i := g.xmin; i < g.xmax; i++ {
		for j := 0; j < g.histBins; j++ {
			var histV float64
			histPrev := p.histIIR[i][j]
			histNew := p.histogram[i][j]
			if !p.histIIRValid {
				histV = histNew
			} else {
				histV = histPrev + aAttack*histNew - aDecay*histPrev
			}
			p.histIIR[i][j] = math.Max(histV, 0.0)
			histMax = math.Max(histMax, histV)
		}
	}
	p.histIIRValid = true

	histMaxAlpha := math.Min(5.0*g.frameTime, 1.0)
	p.histMaxIIR = p.histMaxIIR*(1.0-histMaxAlpha) + histMax*histMaxAlpha
}
