package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyRange_Center(t *testing.T) {
	tt := []struct {
		from     Frequency
		to       Frequency
		expected Frequency
	}{
		{144452000, 144548000, 144500000},
		{0, 96000, 48000},
		{7000000, 7200000, 7100000},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			actual := FrequencyRange{tc.from, tc.to}.Center()
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFrequencyRange_Shift(t *testing.T) {
	r := FrequencyRange{From: 144452000, To: 144548000}
	r.Shift(-2000)
	assert.Equal(t, FrequencyRange{From: 144450000, To: 144546000}, r)
}

func TestDBRange_Width(t *testing.T) {
	tt := []struct {
		from     DB
		to       DB
		expected DB
	}{
		{-180, 10, 190},
		{-180, 0, 180},
		{0, 30, 30},
		{-100, -20, 80},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			actual := DBRange{tc.from, tc.to}.Width()
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestDBRange_Normalized(t *testing.T) {
	tt := []struct {
		value    DBRange
		expected DBRange
	}{
		{DBRange{10, -180}, DBRange{-180, 10}},
		{DBRange{-180, 10}, DBRange{-180, 10}},
		{DBRange{0, 0}, DBRange{0, 0}},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.Normalized())
		})
	}
}

func TestHzPerPx_RoundTrip(t *testing.T) {
	r := HzPerPx(120)
	assert.Equal(t, Px(100), r.ToPx(12000))
	assert.Equal(t, Frequency(12000), r.ToHz(100))
}
