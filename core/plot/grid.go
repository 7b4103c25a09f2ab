package plot

import (
	"strconv"
	"strings"
)

// CalcDivSize calculates the grid division for the range [low, high]
// with at most divswanted divisions. The step size follows a 1-2-5
// progression, adjlow is the first division at or above low.
func CalcDivSize(low, high int64, divswanted int) (adjlow, step int64, divs int) {
	if divswanted == 0 {
		return 0, 0, 0
	}

	stepTable := [3]int64{1, 2, 5}
	multiplier := int64(1)
	step = 1
	divs = int(high - low)
	index := 0
	adjlow = (low / step) * step

	for divs > divswanted {
		step = stepTable[index] * multiplier
		divs = int((high - low) / step)
		adjlow = (low / step) * step
		index++
		if index == len(stepTable) {
			index = 0
			multiplier *= 10
		}
	}
	if adjlow < low {
		adjlow += step
	}
	return adjlow, step, divs
}

// FrequencyLabels formats the grid frequencies starting at adjlow with
// the given step, in the given units (e.g. 1000000 for MHz). All labels
// carry the same number of fractional digits: the longest non-zero
// fraction of any label, at most digits.
func FrequencyLabels(adjlow, step, units int64, divs, digits int) []string {
	result := make([]string, divs+1)

	if units == 1 || digits == 0 {
		freq := adjlow
		for i := range result {
			result[i] = strconv.FormatInt(freq/units, 10)
			freq += step
		}
		return result
	}

	freq := adjlow
	for i := range result {
		result[i] = strconv.FormatFloat(float64(freq)/float64(units), 'f', digits, 64)
		freq += step
	}

	// longest non-zero fraction of any label
	max := 0
	for _, label := range result {
		dp := strings.IndexByte(label, '.')
		j := len(label) - 1
		for ; j > dp; j-- {
			if label[j] != '0' {
				break
			}
		}
		if j-dp > max {
			max = j - dp
		}
	}

	freq = adjlow
	for i := range result {
		result[i] = strconv.FormatFloat(float64(freq)/float64(units), 'f', max, 64)
		freq += step
	}
	return result
}
