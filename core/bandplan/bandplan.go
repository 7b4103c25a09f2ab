package bandplan

import (
	"image/color"
	"sort"

	"github.com/ftl/panafall/core"
)

// Band represents a frequency band with its dominant modulation and the
// color used to mark it on the frequency scale.
type Band struct {
	core.FrequencyRange
	Name  BandName
	Mode  Mode
	Color color.RGBA
}

// Contains indicates if the band contains the given frequency.
func (b *Band) Contains(f core.Frequency) bool {
	return f >= b.From && f <= b.To
}

// Overlaps indicates if the band overlaps the given frequency range.
func (b *Band) Overlaps(r core.FrequencyRange) bool {
	return b.From <= r.To && b.To >= r.From
}

// UnknownBand is the unknown band that contains no frequency.
var UnknownBand = Band{Name: BandUnknown}

// BandName is the name of a frequency band.
type BandName string

// All HF and low VHF bands.
const (
	BandUnknown BandName = "Unknown"
	Band160m    BandName = "160m"
	Band80m     BandName = "80m"
	Band60m     BandName = "60m"
	Band40m     BandName = "40m"
	Band30m     BandName = "30m"
	Band20m     BandName = "20m"
	Band17m     BandName = "17m"
	Band15m     BandName = "15m"
	Band12m     BandName = "12m"
	Band10m     BandName = "10m"
	Band6m      BandName = "6m"
	Band2m      BandName = "2m"
)

// Mode type
type Mode string

// All modes.
const (
	ModeCW      Mode = "CW"
	ModeSSB     Mode = "SSB"
	ModeFM      Mode = "FM"
	ModeDigital Mode = "Digital"
	ModeBeacon  Mode = "Beacon"
	ModeContest Mode = "Contest"
)

var (
	colorCW      = color.RGBA{0x5e, 0x81, 0xac, 0xff}
	colorSSB     = color.RGBA{0xa3, 0xbe, 0x8c, 0xff}
	colorFM      = color.RGBA{0xb4, 0x8e, 0xad, 0xff}
	colorDigital = color.RGBA{0xd0, 0x87, 0x70, 0xff}
)

func modeColor(mode Mode) color.RGBA {
	switch mode {
	case ModeCW:
		return colorCW
	case ModeFM:
		return colorFM
	case ModeDigital:
		return colorDigital
	default:
		return colorSSB
	}
}

// Bandplan type.
type Bandplan map[BandName]Band

// ByFrequency returns the band for the matching frequency.
func (p Bandplan) ByFrequency(f core.Frequency) Band {
	for _, b := range p {
		if b.Contains(f) {
			return b
		}
	}
	return UnknownBand
}

// BandsInRange returns all bands overlapping the given frequency range,
// sorted by their lower bound.
func (p Bandplan) BandsInRange(r core.FrequencyRange) []Band {
	result := make([]Band, 0, len(p))
	for _, b := range p {
		if b.Overlaps(r) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].From < result[j].From
	})
	return result
}

func band(name BandName, from, to core.Frequency, mode Mode) Band {
	return Band{
		Name:           name,
		FrequencyRange: core.FrequencyRange{From: from, To: to},
		Mode:           mode,
		Color:          modeColor(mode),
	}
}

// IARURegion1 is the bandplan for IARU Region 1
var IARURegion1 = Bandplan{
	Band160m: band(Band160m, 1810000, 2000000, ModeCW),
	Band80m:  band(Band80m, 3500000, 3800000, ModeSSB),
	Band60m:  band(Band60m, 5351500, 5366500, ModeDigital),
	Band40m:  band(Band40m, 7000000, 7200000, ModeSSB),
	Band30m:  band(Band30m, 10100000, 10150000, ModeCW),
	Band20m:  band(Band20m, 14000000, 14350000, ModeSSB),
	Band17m:  band(Band17m, 18068000, 18168000, ModeSSB),
	Band15m:  band(Band15m, 21000000, 21450000, ModeSSB),
	Band12m:  band(Band12m, 24890000, 24990000, ModeSSB),
	Band10m:  band(Band10m, 28000000, 29700000, ModeSSB),
	Band6m:   band(Band6m, 50000000, 52000000, ModeSSB),
	Band2m:   band(Band2m, 144000000, 146000000, ModeFM),
}
