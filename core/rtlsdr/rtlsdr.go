// Package rtlsdr reads complex baseband samples from an RTL-SDR dongle.
package rtlsdr

import (
	"log"
	"math"
	"sync"

	rtl "github.com/jpoirier/gortlsdr"
	"github.com/pkg/errors"

	"github.com/ftl/panafall/core"
)

// Open the RTL-SDR dongle as a sample source. The dongle delivers
// blocks of blockSize complex samples through Samples.
func Open(centerFrequency core.Frequency, sampleRate int, frequencyCorrection int, blockSize int) (*Dongle, error) {
	device, err := rtl.Open(0)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open RTL-SDR dongle")
	}

	err = device.SetSampleRate(sampleRate)
	if err != nil {
		device.Close()
		return nil, errors.Wrap(err, "SetSampleRate failed")
	}
	log.Printf("GetSampleRate: %d", device.GetSampleRate())

	err = device.SetCenterFreq(int(centerFrequency))
	if err != nil {
		device.Close()
		return nil, errors.Wrap(err, "SetCenterFreq failed")
	}

	err = device.SetFreqCorrection(frequencyCorrection)
	if err != nil {
		device.Close()
		return nil, errors.Wrap(err, "SetFreqCorrection failed")
	}

	err = device.ResetBuffer()
	if err != nil {
		device.Close()
		return nil, errors.Wrap(err, "ResetBuffer failed")
	}

	result := Dongle{
		device:    device,
		samples:   make(chan []complex128, 1),
		block:     make([]complex128, blockSize),
		asyncRead: new(sync.WaitGroup),
	}

	result.asyncRead.Add(1)
	go func() {
		defer result.asyncRead.Done()
		result.device.ReadAsync(result.incomingData, nil, 0, 0)
	}()

	return &result, nil
}

// Dongle represents the opened RTL-SDR dongle.
type Dongle struct {
	device     *rtl.Context
	samples    chan []complex128
	block      []complex128
	blockIndex int
	asyncRead  *sync.WaitGroup
}

// Samples delivers the incoming sample blocks.
func (d *Dongle) Samples() <-chan []complex128 {
	return d.samples
}

// Close the dongle.
func (d *Dongle) Close() error {
	d.device.CancelAsync()
	d.asyncRead.Wait()
	close(d.samples)
	return d.device.Close()
}

// incomingData is called from the rtlsdr read loop with interleaved
// 8-bit I/Q data.
func (d *Dongle) incomingData(data []byte) {
	for i := 0; i+1 < len(data); i += 2 {
		iSample := normalizeSampleUint8(data[i])
		qSample := normalizeSampleUint8(data[i+1])
		d.block[d.blockIndex] = complex(iSample, qSample)
		d.blockIndex++
		if d.blockIndex == len(d.block) {
			d.blockIndex = 0
			next := make([]complex128, len(d.block))
			copy(next, d.block)
			select {
			case d.samples <- next:
			default:
				log.Print("sample consumer lags, dropping block")
			}
		}
	}
}

func normalizeSampleUint8(s byte) float64 {
	return (float64(s) - float64(math.MaxInt8)) / float64(math.MaxInt8)
}
