// Package dsp turns the incoming stream of complex baseband samples
// into FFT frames for the plotter: Hann window, FFT, linear power per
// bin with DC at the center of the frame.
package dsp

import (
	"log"
	"time"

	"github.com/mjibson/go-dsp/dsputils"
	fourier "github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/ftl/panafall/core"
)

const maxFFTSize = 32768

// New returns a DSP worker producing frames of the given size at most
// fftRate times per second. The size is rounded up to a power of two.
func New(sampleRate, fftSize, fftRate int) *DSP {
	result := &DSP{
		workInput:   make(chan []complex128, 1),
		configInput: make(chan config, 1),
		fft:         make(chan core.FFT, 1),

		sampleRate: sampleRate,
	}
	result.reconfigure(config{fftSize: fftSize, fftRate: fftRate})
	return result
}

type DSP struct {
	workInput   chan []complex128
	configInput chan config
	fft         chan core.FFT

	sampleRate int
	fftSize    int
	fftRate    int

	buf      []complex128
	bufIndex int
	win      []float64
	winGain  float64

	lastFrame time.Time
}

type config struct {
	fftSize int
	fftRate int
}

// Run processes incoming sample blocks until stop is closed.
func (d *DSP) Run(stop chan struct{}) {
	for {
		select {
		case samples := <-d.workInput:
			d.processBlock(samples)
		case config := <-d.configInput:
			d.reconfigure(config)
		case <-stop:
			close(d.fft)
			return
		}
	}
}

// ProcessSamples hands a block of samples to the worker. Blocks are
// dropped when the worker cannot keep up.
func (d *DSP) ProcessSamples(samples []complex128) {
	select {
	case d.workInput <- samples:
	default:
		log.Print("sample processing lags, dropping block")
	}
}

// FFT returns the channel of produced frames.
func (d *DSP) FFT() chan core.FFT {
	return d.fft
}

// SetFFTSize changes the frame size, rounded up to a power of two.
func (d *DSP) SetFFTSize(size int) {
	select {
	case d.configInput <- config{fftSize: size}:
	default:
	}
}

// SetFFTRate changes the maximum frame rate.
func (d *DSP) SetFFTRate(rate int) {
	select {
	case d.configInput <- config{fftRate: rate}:
	default:
	}
}

func findBlocksize(width, max int) int {
	result := dsputils.NextPowerOf2(width)
	if result > max {
		return max
	}
	return result
}

func (d *DSP) reconfigure(config config) {
	if config.fftSize == 0 {
		config.fftSize = d.fftSize
	}
	if config.fftRate == 0 {
		config.fftRate = d.fftRate
	}
	if config.fftSize < 16 {
		config.fftSize = 16
	}
	if config.fftRate < 1 {
		config.fftRate = 1
	}

	size := findBlocksize(config.fftSize, maxFFTSize)
	if size != d.fftSize {
		d.buf = make([]complex128, size)
		d.bufIndex = 0
		d.win = window.Hann(size)

		// Compensate the coherent gain of the window so that a full
		// scale tone still reaches 0 dBFS after the plotter's 1/N²
		// scaling.
		winSum := 0.0
		for _, w := range d.win {
			winSum += w
		}
		d.winGain = (float64(size) / winSum) * (float64(size) / winSum)
	}

	d.fftSize = size
	d.fftRate = config.fftRate
	log.Printf("dsp: %d bins, %d frames/s", d.fftSize, d.fftRate)
}

func (d *DSP) processBlock(samples []complex128) {
	for _, s := range samples {
		d.buf[d.bufIndex] = s * complex(d.win[d.bufIndex], 0)
		d.bufIndex++
		if d.bufIndex == d.fftSize {
			d.bufIndex = 0
			d.emitFrame()
		}
	}
}

func (d *DSP) emitFrame() {
	now := time.Now()
	if now.Sub(d.lastFrame) < time.Second/time.Duration(d.fftRate) {
		return
	}
	d.lastFrame = now

	spectrum := fourier.FFT(d.buf)
	data := make([]float64, d.fftSize)
	center := d.fftSize / 2
	for i, v := range spectrum {
		var resultIndex int
		if i < center {
			resultIndex = i + center
		} else {
			resultIndex = i - center
		}
		re, im := real(v), imag(v)
		data[resultIndex] = (re*re + im*im) * d.winGain
	}

	select {
	case d.fft <- core.FFT{Data: data, Size: d.fftSize, Rate: d.fftRate}:
	default:
		log.Print("FFT consumer lags, dropping frame")
	}
}
