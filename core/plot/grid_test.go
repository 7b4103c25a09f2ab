package plot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcDivSize(t *testing.T) {
	tt := []struct {
		low, high   int64
		divswanted  int
		expadjlow   int64
		expstep     int64
		expdivs     int
	}{
		{144452000, 144548000, 12, 144460000, 10000, 9},
		{-120, 0, 10, -120, 20, 6},
		{0, 30, 5, 0, 10, 3},
		{7000000, 7200000, 10, 7000000, 20000, 10},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			adjlow, step, divs := CalcDivSize(tc.low, tc.high, tc.divswanted)
			assert.Equal(t, tc.expadjlow, adjlow, "adjlow")
			assert.Equal(t, tc.expstep, step, "step")
			assert.Equal(t, tc.expdivs, divs, "divs")
		})
	}
}

func TestCalcDivSize_Properties(t *testing.T) {
	tt := []struct {
		low, high  int64
		divswanted int
	}{
		{144452000, 144548000, 12},
		{-160, 30, 6},
		{0, 1000000, 20},
		{-48000, 48000, 7},
		{3500000, 3800000, 15},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			adjlow, step, divs := CalcDivSize(tc.low, tc.high, tc.divswanted)

			assert.True(t, divs <= tc.divswanted, "divs %d > wanted %d", divs, tc.divswanted)
			assert.True(t, adjlow >= tc.low, "adjlow below low")
			assert.True(t, adjlow < tc.low+step, "adjlow not the first division")
			assert.Zero(t, adjlow%step, "adjlow not aligned to step")

			// step follows the 1-2-5 progression
			mantissa := step
			for mantissa >= 10 && mantissa%10 == 0 {
				mantissa /= 10
			}
			assert.Contains(t, []int64{1, 2, 5}, mantissa, "step %d", step)
		})
	}
}

func TestCalcDivSize_ZeroDivsWanted(t *testing.T) {
	adjlow, step, divs := CalcDivSize(0, 100, 0)
	assert.Zero(t, adjlow)
	assert.Zero(t, step)
	assert.Zero(t, divs)
}

func TestFrequencyLabels_TrimsToCommonFraction(t *testing.T) {
	labels := FrequencyLabels(144460000, 10000, 1000000, 9, 6)
	assert.Equal(t, []string{
		"144.46", "144.47", "144.48", "144.49", "144.50",
		"144.51", "144.52", "144.53", "144.54", "144.55",
	}, labels)
}

func TestFrequencyLabels_WholeUnits(t *testing.T) {
	labels := FrequencyLabels(7000000, 1000000, 1000000, 2, 6)
	assert.Equal(t, []string{"7", "8", "9"}, labels)
}

func TestFrequencyLabels_HzUnits(t *testing.T) {
	labels := FrequencyLabels(7000000, 100000, 1, 2, 6)
	assert.Equal(t, []string{"7000000", "7100000", "7200000"}, labels)
}
