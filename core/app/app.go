// Package app wires the sample input, the DSP worker, the VFO and the
// plotter into a single-threaded mainloop.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ftl/panafall/core"
	"github.com/ftl/panafall/core/bandplan"
	"github.com/ftl/panafall/core/bookmarks"
	"github.com/ftl/panafall/core/dsp"
	"github.com/ftl/panafall/core/plot"
	"github.com/ftl/panafall/core/rtlsdr"
	"github.com/ftl/panafall/core/vfo"
)

// New returns the application controller for the given configuration.
func New(configuration core.Configuration) *Controller {
	return &Controller{
		configuration: configuration,
		bookmarks:     bookmarks.NewStore(),
	}
}

// Controller of the application.
type Controller struct {
	configuration core.Configuration

	done         chan struct{}
	subProcesses *sync.WaitGroup

	input     core.SamplesInput
	dsp       *dsp.DSP
	vfo       *vfo.VFO
	plotter   *plot.Plotter
	bookmarks *bookmarks.Store

	*mainLoop
}

// Startup the application.
func (c *Controller) Startup() error {
	c.done = make(chan struct{})
	c.subProcesses = new(sync.WaitGroup)

	cfg := c.configuration
	var err error
	if cfg.Testmode {
		c.input = dsp.NewSweepInput(cfg.FFTSize, cfg.SampleRate,
			-float64(cfg.SampleRate)/4.0, float64(cfg.SampleRate)/4.0, float64(cfg.SampleRate)/1000.0)
	} else {
		c.input, err = rtlsdr.Open(cfg.CenterFrequency, cfg.SampleRate, cfg.FrequencyCorrection, cfg.FFTSize)
		if err != nil {
			return errors.Wrap(err, "cannot open sample input")
		}
	}

	c.dsp = dsp.New(cfg.SampleRate, cfg.FFTSize, cfg.FFTPerSecond)

	c.plotter = plot.New(time.Now)
	c.plotter.SetSampleRate(cfg.SampleRate)
	c.plotter.SetCenterFrequency(cfg.CenterFrequency)
	c.plotter.SetDemodCenterFrequency(cfg.CenterFrequency)
	c.plotter.SetFFTRate(cfg.FFTPerSecond)
	c.plotter.SetPlotInterval(time.Duration(cfg.PlotIntervalMs) * time.Millisecond)
	c.plotter.SetColormap(cfg.Colormap)
	c.plotter.SetPandapterRange(cfg.DynamicRange)
	c.plotter.SetWaterfallRange(cfg.DynamicRange)
	c.plotter.SetBandplan(bandplan.IARURegion1)
	c.plotter.SetTags(c.bookmarks)

	var rig vfoType = noopVFO{}
	if cfg.VFOHost != "" {
		c.vfo, err = vfo.Open(cfg.VFOHost)
		if err != nil {
			log.Print("Cannot open VFO, tuning locally only: ", err)
		} else {
			rig = c.vfo
		}
	}

	c.mainLoop = newMainLoop(c.input, c.dsp, rig, c.plotter, cfg.FFTPerSecond)

	c.plotter.OnDemodFreqChanged(func(f core.Frequency, Δ core.Frequency) {
		rig.SetFrequency(f)
	})
	if c.vfo != nil {
		c.vfo.OnFrequencyChange(func(f core.Frequency) {
			c.mainLoop.SetDialFrequency(f)
		})
		c.vfo.Run(c.done, c.subProcesses)
	}

	c.subProcesses.Add(1)
	go func() {
		defer c.subProcesses.Done()
		c.dsp.Run(c.done)
	}()

	c.subProcesses.Add(1)
	go func() {
		defer c.subProcesses.Done()
		c.mainLoop.Run(c.done)
	}()

	c.mainLoop.SetRunningState(true)

	return nil
}

// Shutdown the application.
func (c *Controller) Shutdown() {
	c.input.Close()
	close(c.done)
	c.subProcesses.Wait()
}

// Bookmarks of the application.
func (c *Controller) Bookmarks() *bookmarks.Store {
	return c.bookmarks
}
