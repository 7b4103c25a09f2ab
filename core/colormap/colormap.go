// Package colormap provides the color tables for the waterfall and the
// histogram plot mode. A table maps an amplitude index in [0, 255] to a
// color, index 0 being the weakest signal.
package colormap

import (
	"image/color"
	"strings"
	"sync"
)

// Table is an immutable 256-entry color table.
type Table [256]color.RGBA

var (
	once   sync.Once
	tables map[string]*Table
)

// Get returns the color table with the given name, case-insensitive.
// Unknown names fall back to the default "gqrx" table.
func Get(name string) *Table {
	once.Do(buildTables)
	if table, ok := tables[strings.ToLower(name)]; ok {
		return table
	}
	return tables["gqrx"]
}

// Names returns the available table names.
func Names() []string {
	once.Do(buildTables)
	result := make([]string, 0, len(tables))
	for name := range tables {
		result = append(result, name)
	}
	return result
}

func buildTables() {
	tables = map[string]*Table{
		"gqrx":               buildGqrx(),
		"whitehot":           buildRamp(func(i int) (int, int, int) { return i, i, i }),
		"blackhot":           buildRamp(func(i int) (int, int, int) { return 255 - i, 255 - i, 255 - i }),
		"whitehotcompressed": buildRamp(whiteHotCompressed),
	}
}

func buildGqrx() *Table {
	var table Table
	for i := 0; i < 256; i++ {
		var r, g, b int
		switch {
		case i < 20: // black background
			r, g, b = 0, 0, 0
		case i < 70: // black -> blue
			r, g, b = 0, 0, 140*(i-20)/50
		case i < 100: // blue -> light blue
			r, g, b = 60*(i-70)/30, 125*(i-70)/30, 115*(i-70)/30+140
		case i < 150: // light blue -> yellow
			r, g, b = 195*(i-100)/50+60, 130*(i-100)/50+125, 255-(255*(i-100)/50)
		case i < 250: // yellow -> red
			r, g, b = 255, 255-255*(i-150)/100, 0
		default: // red -> white
			r, g, b = 255, 255*(i-250)/5, 255*(i-250)/5
		}
		table[i] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
	}
	return &table
}

func buildRamp(rgb func(i int) (int, int, int)) *Table {
	var table Table
	for i := 0; i < 256; i++ {
		r, g, b := rgb(i)
		table[i] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
	}
	return &table
}

func whiteHotCompressed(i int) (int, int, int) {
	if i < 64 {
		return i * 4, i * 4, i * 4
	}
	return 255, 255, 255
}
