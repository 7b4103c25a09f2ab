package app

import (
	"log"
	"time"

	"github.com/ftl/panafall/core"
	"github.com/ftl/panafall/core/plot"
)

func newMainLoop(samplesInput core.SamplesInput, dsp dspType, vfo vfoType, plotter *plot.Plotter, redrawPerSecond int) *mainLoop {
	redrawInterval := (1 * time.Second) / time.Duration(redrawPerSecond)
	result := &mainLoop{
		samplesInput: samplesInput,
		dsp:          dsp,
		vfo:          vfo,
		plotter:      plotter,

		redrawTick: time.NewTicker(redrawInterval),
		command:    make(chan command, 16),

		renderData: make(chan plot.RenderData, 1),
	}

	return result
}

type command func()

// mainLoop owns the plotter. All access to it goes through the loop,
// input events and setters are queued as commands.
type mainLoop struct {
	samplesInput core.SamplesInput
	dsp          dspType
	vfo          vfoType
	plotter      *plot.Plotter

	redrawTick *time.Ticker
	command    chan command

	renderData chan plot.RenderData
}

type dspType interface {
	ProcessSamples(samples []complex128)
	FFT() chan core.FFT
	SetFFTSize(size int)
	SetFFTRate(rate int)
}

type vfoType interface {
	SetFrequency(f core.Frequency)
}

type noopVFO struct{}

func (v noopVFO) SetFrequency(core.Frequency) {}

func (m *mainLoop) Run(stop chan struct{}) {
	defer log.Print("main loop shutdown")
	for {
		select {
		case samples, ok := <-m.samplesInput.Samples():
			if !ok {
				continue
			}
			m.dsp.ProcessSamples(samples)
		case frame, ok := <-m.dsp.FFT():
			if !ok {
				continue
			}
			m.plotter.NewFFTData(frame)
		case <-m.redrawTick.C:
			if !m.plotter.Dirty() {
				continue
			}
			select {
			case m.renderData <- m.plotter.Render():
			default:
				log.Print("trigger redraw hangs")
			}
		case command := <-m.command:
			command()
		case <-stop:
			m.redrawTick.Stop()
			return
		}
	}
}

// RenderData for the paint adapter.
func (m *mainLoop) RenderData() <-chan plot.RenderData {
	return m.renderData
}

func (m *mainLoop) q(cmd command) {
	select {
	case m.command <- cmd:
	default:
		log.Print("Mainloop.q hangs")
	}
}

// SetSize of the display in pixels.
func (m *mainLoop) SetSize(width, height int) {
	m.q(func() {
		m.plotter.SetSize(width, height)
	})
}

// PointerMoved event from the UI adapter.
func (m *mainLoop) PointerMoved(x, y int, buttons plot.Button, mods plot.Modifiers) {
	m.q(func() {
		m.plotter.PointerMoved(x, y, buttons, mods)
	})
}

// PointerPressed event from the UI adapter.
func (m *mainLoop) PointerPressed(x, y int, buttons plot.Button, mods plot.Modifiers) {
	m.q(func() {
		m.plotter.PointerPressed(x, y, buttons, mods)
	})
}

// PointerReleased event from the UI adapter.
func (m *mainLoop) PointerReleased(x, y int) {
	m.q(func() {
		m.plotter.PointerReleased(x, y)
	})
}

// WheelTurned event from the UI adapter.
func (m *mainLoop) WheelTurned(x, y int, delta int, mods plot.Modifiers) {
	m.q(func() {
		m.plotter.WheelTurned(x, y, delta, mods)
	})
}

// TuneTo the given frequency.
func (m *mainLoop) TuneTo(f core.Frequency) {
	m.q(func() {
		m.plotter.SetDemodCenterFrequency(f)
		m.vfo.SetFrequency(f)
	})
}

// TuneBy the given offset.
func (m *mainLoop) TuneBy(Δf core.Frequency) {
	m.q(func() {
		f := m.plotter.DemodCenterFrequency() + Δf
		m.plotter.SetDemodCenterFrequency(f)
		m.vfo.SetFrequency(f)
	})
}

// SetDialFrequency from the rig, without feeding it back.
func (m *mainLoop) SetDialFrequency(f core.Frequency) {
	m.q(func() {
		m.plotter.SetDemodCenterFrequency(f)
	})
}

// SetPlotMode of the 2D plot.
func (m *mainLoop) SetPlotMode(mode plot.Mode) {
	m.q(func() {
		m.plotter.SetPlotMode(mode)
	})
}

// SetPlotScale of the 2D plot.
func (m *mainLoop) SetPlotScale(scale plot.Scale, perHz bool) {
	m.q(func() {
		m.plotter.SetPlotScale(scale, perHz)
	})
}

// SetWaterfallMode of the waterfall.
func (m *mainLoop) SetWaterfallMode(mode plot.WaterfallMode) {
	m.q(func() {
		m.plotter.SetWaterfallMode(mode)
	})
}

// SetPandapterRange of the 2D plot.
func (m *mainLoop) SetPandapterRange(r core.DBRange) {
	m.q(func() {
		m.plotter.SetPandapterRange(r)
	})
}

// SetWaterfallRange of the waterfall colors.
func (m *mainLoop) SetWaterfallRange(r core.DBRange) {
	m.q(func() {
		m.plotter.SetWaterfallRange(r)
	})
}

// SetFFTSize reconfigures the FFT frame size.
func (m *mainLoop) SetFFTSize(size int) {
	m.q(func() {
		m.dsp.SetFFTSize(size)
	})
}

// SetFFTRate reconfigures the FFT frame rate.
func (m *mainLoop) SetFFTRate(rate int) {
	m.q(func() {
		m.dsp.SetFFTRate(rate)
		m.plotter.SetFFTRate(rate)
	})
}

// SetFFTAvg sets the averaging factor of the plot.
func (m *mainLoop) SetFFTAvg(alpha float64) {
	m.q(func() {
		m.plotter.SetFFTAvg(alpha)
	})
}

// EnableMaxHold line.
func (m *mainLoop) EnableMaxHold(enabled bool) {
	m.q(func() {
		m.plotter.EnableMaxHold(enabled)
	})
}

// EnableMinHold line.
func (m *mainLoop) EnableMinHold(enabled bool) {
	m.q(func() {
		m.plotter.EnableMinHold(enabled)
	})
}

// EnablePeakDetect markers.
func (m *mainLoop) EnablePeakDetect(enabled bool) {
	m.q(func() {
		m.plotter.EnablePeakDetect(enabled)
	})
}

// EnableMarkers A and B.
func (m *mainLoop) EnableMarkers(enabled bool) {
	m.q(func() {
		m.plotter.EnableMarkers(enabled)
	})
}

// SetRunningState starts or stops display updates.
func (m *mainLoop) SetRunningState(running bool) {
	m.q(func() {
		m.plotter.SetRunningState(running)
	})
}

// MoveToCenterFreq centers the view on the center frequency.
func (m *mainLoop) MoveToCenterFreq() {
	m.q(func() {
		m.plotter.MoveToCenterFreq()
	})
}

// MoveToDemodFreq centers the view on the demod frequency.
func (m *mainLoop) MoveToDemodFreq() {
	m.q(func() {
		m.plotter.MoveToDemodFreq()
	})
}

// ResetHorizontalZoom shows the full span.
func (m *mainLoop) ResetHorizontalZoom() {
	m.q(func() {
		m.plotter.ResetHorizontalZoom()
	})
}

// ZoomOnXAxis sets an absolute zoom level.
func (m *mainLoop) ZoomOnXAxis(level float64) {
	m.q(func() {
		m.plotter.ZoomOnXAxis(level)
	})
}
