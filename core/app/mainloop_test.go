package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ftl/panafall/core"
	"github.com/ftl/panafall/core/plot"
)

func TestStopAndDone(t *testing.T) {
	m := newMainLoop(&mockInput{samples: make(chan []complex128)}, newMockDSP(), noopVFO{}, plot.New(nil), 25)

	stop := make(chan struct{})
	start := time.Now()
	go func() {
		time.Sleep(100 * time.Millisecond)
		close(stop)
	}()
	m.Run(stop)
	duration := time.Since(start)

	assert.True(t, duration > 100*time.Millisecond)
}

func TestSamplesAreForwardedToTheDSP(t *testing.T) {
	input := &mockInput{samples: make(chan []complex128, 1)}
	dsp := newMockDSP()
	m := newMainLoop(input, dsp, noopVFO{}, plot.New(nil), 25)

	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	input.samples <- make([]complex128, 512)

	select {
	case block := <-dsp.processed:
		assert.Len(t, block, 512)
	case <-time.After(100 * time.Millisecond):
		assert.Fail(t, "samples did not reach the DSP")
	}
}

func TestFramesProduceRenderData(t *testing.T) {
	input := &mockInput{samples: make(chan []complex128)}
	dsp := newMockDSP()
	m := newMainLoop(input, dsp, noopVFO{}, plot.New(nil), 25)

	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	m.SetSize(800, 600)
	m.SetRunningState(true)
	time.Sleep(50 * time.Millisecond)

	frame := core.FFT{Data: make([]float64, 512), Size: 512, Rate: 15}
	for i := range frame.Data {
		frame.Data[i] = 1e-6
	}
	dsp.fft <- frame

	select {
	case rd := <-m.RenderData():
		assert.Equal(t, 800, rd.Width)
	case <-time.After(500 * time.Millisecond):
		assert.Fail(t, "no render data after an FFT frame")
	}
}

func TestTuneToReachesTheVFO(t *testing.T) {
	input := &mockInput{samples: make(chan []complex128)}
	rig := &mockVFO{frequencies: make(chan core.Frequency, 1)}
	m := newMainLoop(input, newMockDSP(), rig, plot.New(nil), 25)

	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	m.TuneTo(7035000)

	select {
	case f := <-rig.frequencies:
		assert.Equal(t, core.Frequency(7035000), f)
	case <-time.After(100 * time.Millisecond):
		assert.Fail(t, "frequency did not reach the VFO")
	}
}

type mockInput struct {
	samples chan []complex128
}

func (m *mockInput) Samples() <-chan []complex128 {
	return m.samples
}

func (m *mockInput) Close() error {
	return nil
}

func newMockDSP() *mockDSP {
	return &mockDSP{
		processed: make(chan []complex128, 1),
		fft:       make(chan core.FFT),
	}
}

type mockDSP struct {
	processed chan []complex128
	fft       chan core.FFT
}

func (m *mockDSP) ProcessSamples(samples []complex128) {
	select {
	case m.processed <- samples:
	default:
	}
}

func (m *mockDSP) FFT() chan core.FFT {
	return m.fft
}

func (m *mockDSP) SetFFTSize(size int) {}

func (m *mockDSP) SetFFTRate(rate int) {}

type mockVFO struct {
	frequencies chan core.Frequency
}

func (m *mockVFO) SetFrequency(f core.Frequency) {
	select {
	case m.frequencies <- f:
	default:
	}
}
