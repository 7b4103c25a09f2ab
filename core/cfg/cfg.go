// Package cfg loads the application configuration from the hamradio
// configuration file in the user's home directory.
package cfg

import (
	"github.com/ftl/hamradio/cfg"

	"github.com/ftl/panafall/core"
)

const (
	testmode            cfg.Key = "panafall.testmode"
	frequencyCorrection cfg.Key = "panafall.frequencyCorrection"
	vfoHost             cfg.Key = "panafall.vfoHost"
	sampleRate          cfg.Key = "panafall.sampleRate"
	centerFrequency     cfg.Key = "panafall.centerFrequency"
	fftPerSecond        cfg.Key = "panafall.fftPerSecond"
	fftSize             cfg.Key = "panafall.fftSize"
	plotIntervalMs      cfg.Key = "panafall.plotIntervalMs"
	colormap            cfg.Key = "panafall.colormap"
	dynamicRangeFrom    cfg.Key = "panafall.dynamicRange.from"
	dynamicRangeTo      cfg.Key = "panafall.dynamicRange.to"
)

// Load the configuration from the default location.
func Load() (core.Configuration, error) {
	configuration, err := cfg.LoadDefault()
	if err != nil {
		return core.Configuration{}, err
	}

	result := core.Configuration{
		Testmode:            configuration.Get(testmode, false).(bool),
		FrequencyCorrection: int(configuration.Get(frequencyCorrection, 0.0).(float64)),
		VFOHost:             configuration.Get(vfoHost, "").(string),
		SampleRate:          int(configuration.Get(sampleRate, 2048000.0).(float64)),
		CenterFrequency:     core.Frequency(configuration.Get(centerFrequency, 144500000.0).(float64)),
		FFTPerSecond:        int(configuration.Get(fftPerSecond, 25.0).(float64)),
		FFTSize:             int(configuration.Get(fftSize, 4096.0).(float64)),
		PlotIntervalMs:      int(configuration.Get(plotIntervalMs, 25.0).(float64)),
		Colormap:            configuration.Get(colormap, "gqrx").(string),
		DynamicRange: core.DBRange{
			From: core.DB(configuration.Get(dynamicRangeFrom, -120.0).(float64)),
			To:   core.DB(configuration.Get(dynamicRangeTo, 0.0).(float64)),
		}.Normalized(),
	}

	return result, nil
}

// Static returns a default configuration for when there is no
// configuration file, running on synthetic input.
func Static() core.Configuration {
	return core.Configuration{
		Testmode:        true,
		SampleRate:      2048000,
		CenterFrequency: 144500000,
		FFTPerSecond:    25,
		FFTSize:         4096,
		PlotIntervalMs:  25,
		Colormap:        "gqrx",
		DynamicRange:    core.DBRange{From: -120, To: 0},
	}
}
