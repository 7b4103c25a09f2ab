package plot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ftl/panafall/core"
)

func TestXFromFreq(t *testing.T) {
	p := newTestPlotter(newTestClock())

	// 800 px, 96 kHz span centered at 144.5 MHz
	assert.Equal(t, 0, p.XFromFreq(144452000))
	assert.Equal(t, 400, p.XFromFreq(144500000))
	assert.Equal(t, 800, p.XFromFreq(144548000))
	assert.Equal(t, 450, p.XFromFreq(144506000))
}

func TestFreqFromX(t *testing.T) {
	p := newTestPlotter(newTestClock())

	assert.Equal(t, core.Frequency(144452000), p.FreqFromX(0))
	assert.Equal(t, core.Frequency(144500000), p.FreqFromX(400))
	assert.Equal(t, core.Frequency(144548000), p.FreqFromX(800))
}

func TestMapping_RoundTrip(t *testing.T) {
	p := newTestPlotter(newTestClock())

	for _, x := range []int{0, 1, 13, 399, 400, 401, 666, 799, 800} {
		t.Run(fmt.Sprintf("%d", x), func(t *testing.T) {
			assert.InDelta(t, x, p.XFromFreq(p.FreqFromX(x)), 1)
		})
	}
}

func TestMapping_RoundTripZoomed(t *testing.T) {
	p := newTestPlotter(newTestClock())
	p.zoomStepX(0.25, 600)

	for _, x := range []int{0, 100, 400, 600, 799} {
		t.Run(fmt.Sprintf("%d", x), func(t *testing.T) {
			assert.InDelta(t, x, p.XFromFreq(p.FreqFromX(x)), 1)
		})
	}
}

func TestRoundFreq(t *testing.T) {
	tt := []struct {
		freq       core.Frequency
		resolution core.Frequency
		expected   core.Frequency
	}{
		{12345, 100, 12300},
		{12355, 100, 12400},
		{12350, 100, 12400},
		{-12345, 100, -12300},
		{-12355, 100, -12400},
		{144512040, 100, 144512000},
		{0, 100, 0},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert.Equal(t, tc.expected, RoundFreq(tc.freq, tc.resolution))
		})
	}
}

func TestMsecFromY(t *testing.T) {
	clock := newTestClock()
	p := newTestPlotter(clock)

	clock.Advance(1 * time.Second)
	p.NewFFTData(frameWithLevel(512, -50))

	assert.Equal(t, int64(0), p.MsecFromY(p.plotHeight-1), "plot area has no time")

	// auto mode: 1000/15 ms per line
	assert.Equal(t, int64(1000), p.MsecFromY(p.plotHeight))
	assert.Equal(t, int64(1000-66), p.MsecFromY(p.plotHeight+1))
}
