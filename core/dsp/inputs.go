package dsp

import (
	"log"
	"math"
	"math/rand"
	"time"
)

// NewNoiseInput returns a SamplesInput producing white noise with the
// given peak amplitude.
func NewNoiseInput(blockSize int, sampleRate int, amplitude float64) *NoiseInput {
	result := NoiseInput{
		samples: make(chan []complex128, 1),
		done:    make(chan struct{}),
	}

	go func() {
		defer log.Print("NoiseInput shutdown")
		for {
			nextBlock := make([]complex128, blockSize)
			for i := range nextBlock {
				nextBlock[i] = complex(
					(rand.Float64()*2.0-1.0)*amplitude,
					(rand.Float64()*2.0-1.0)*amplitude,
				)
			}
			select {
			case result.samples <- nextBlock:
				time.Sleep(blockDuration(blockSize, sampleRate))
			case <-result.done:
				close(result.samples)
				return
			}
		}
	}()

	return &result
}

type NoiseInput struct {
	samples chan []complex128
	done    chan struct{}
}

func (i *NoiseInput) Samples() <-chan []complex128 {
	return i.samples
}

func (i *NoiseInput) Close() error {
	close(i.done)
	return nil
}

// NewToneInput returns a SamplesInput producing a complex sine wave
// with the given frequency offset from the center.
func NewToneInput(blockSize int, sampleRate int, f float64, amplitude float64) *ToneInput {
	result := ToneInput{
		samples: make(chan []complex128, 1),
		done:    make(chan struct{}),
	}
	ω := 2.0 * math.Pi * f / float64(sampleRate)

	go func() {
		defer log.Print("ToneInput shutdown")
		for {
			nextBlock := make([]complex128, blockSize)
			for i := range nextBlock {
				t := float64(i)
				nextBlock[i] = complex(amplitude*math.Cos(ω*t), amplitude*math.Sin(ω*t))
			}
			select {
			case result.samples <- nextBlock:
				time.Sleep(blockDuration(blockSize, sampleRate))
			case <-result.done:
				close(result.samples)
				return
			}
		}
	}()

	return &result
}

type ToneInput struct {
	samples chan []complex128
	done    chan struct{}
}

func (i *ToneInput) Samples() <-chan []complex128 {
	return i.samples
}

func (i *ToneInput) Close() error {
	close(i.done)
	return nil
}

// NewSweepInput returns a SamplesInput producing a tone that sweeps
// from one frequency offset to another and starts over.
func NewSweepInput(blockSize int, sampleRate int, from, to, step float64) *SweepInput {
	result := SweepInput{
		samples: make(chan []complex128, 1),
		done:    make(chan struct{}),
	}

	go func() {
		defer log.Print("SweepInput shutdown")
		f := from
		for {
			ω := 2.0 * math.Pi * f / float64(sampleRate)
			nextBlock := make([]complex128, blockSize)
			for i := range nextBlock {
				t := float64(i)
				nextBlock[i] = complex(math.Cos(ω*t), math.Sin(ω*t))
			}
			select {
			case result.samples <- nextBlock:
				time.Sleep(blockDuration(blockSize, sampleRate))
			case <-result.done:
				close(result.samples)
				return
			}
			f += step
			if f > to {
				f = from
			}
		}
	}()

	return &result
}

type SweepInput struct {
	samples chan []complex128
	done    chan struct{}
}

func (i *SweepInput) Samples() <-chan []complex128 {
	return i.samples
}

func (i *SweepInput) Close() error {
	close(i.done)
	return nil
}

func blockDuration(blockSize, sampleRate int) time.Duration {
	return time.Duration(float64(blockSize) / float64(sampleRate) * float64(time.Second))
}
