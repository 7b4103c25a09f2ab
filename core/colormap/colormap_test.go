package colormap

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_KnownNames(t *testing.T) {
	for _, name := range []string{"gqrx", "whitehot", "blackhot", "whitehotcompressed"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, Get(name))
		})
	}
}

func TestGet_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Get("whitehot"), Get("WhiteHot"))
}

func TestGet_UnknownFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Get("gqrx"), Get("no such colormap"))
	assert.Equal(t, Get("gqrx"), Get(""))
}

func TestGqrxAnchors(t *testing.T) {
	table := Get("gqrx")
	tt := []struct {
		index    int
		expected color.RGBA
	}{
		{0, color.RGBA{0, 0, 0, 0xff}},
		{19, color.RGBA{0, 0, 0, 0xff}},
		{69, color.RGBA{0, 0, 137, 0xff}},
		{149, color.RGBA{251, 252, 6, 0xff}},
		{255, color.RGBA{255, 255, 255, 0xff}},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert.Equal(t, tc.expected, table[tc.index])
		})
	}
}

func TestBlackHotIsInvertedWhiteHot(t *testing.T) {
	white := Get("whitehot")
	black := Get("blackhot")
	for i := 0; i < 256; i++ {
		assert.Equal(t, white[255-i].R, black[i].R)
	}
}
