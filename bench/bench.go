// Package bench measures the packing variants on synthetic datasets and
// derives when compressing before transmission pays off.
package bench

import (
	"fmt"
	"time"

	"github.com/packio/bitpack"
	"github.com/packio/bitpack/shared"
)

// maxGetSamples caps the indices probed when timing random access.
const maxGetSamples = 1000

// Result holds the measurements of one variant over one dataset. Durations
// are means: one full pass for Compress and Decompress, one call for Get.
type Result struct {
	Dataset     string
	Variant     bitpack.Variant
	Count       int
	RawBytes    uint64
	PackedBytes uint64
	Ratio       float64
	Compress    time.Duration
	Decompress  time.Duration
	Get         time.Duration
}

// Measure times one codec over one dataset. The round trip is verified
// before anything is timed; a mismatch fails the measurement.
func Measure(codec bitpack.Codec, dataset string, values []uint32, iterations int) (*Result, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: invalid `iterations`; expected: > 0, given: %d",
			shared.ErrInvalidConfig, iterations)
	}

	block, err := codec.Compress(values)
	if err != nil {
		return nil, err
	}
	decoded, err := codec.Decompress(block)
	if err != nil {
		return nil, err
	}
	if len(decoded) != len(values) {
		return nil, fmt.Errorf("round-trip mismatch on %q: %d elements in, %d out", dataset, len(values), len(decoded))
	}
	for i := range values {
		if decoded[i] != values[i] {
			return nil, fmt.Errorf("round-trip mismatch on %q at element %d", dataset, i)
		}
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := codec.Compress(values); err != nil {
			return nil, err
		}
	}
	compress := time.Since(start) / time.Duration(iterations)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := codec.Decompress(block); err != nil {
			return nil, err
		}
	}
	decompress := time.Since(start) / time.Duration(iterations)

	step := 1
	if len(values) > maxGetSamples {
		step = len(values) / maxGetSamples
	}
	var samples int
	start = time.Now()
	for i := 0; i < len(values); i += step {
		if _, err := codec.Get(block, i); err != nil {
			return nil, err
		}
		samples++
	}
	var get time.Duration
	if samples > 0 {
		get = time.Since(start) / time.Duration(samples)
	}

	return &Result{
		Dataset:     dataset,
		Variant:     codec.Variant(),
		Count:       len(values),
		RawBytes:    block.RawBytes(),
		PackedBytes: block.PayloadBytes(),
		Ratio:       block.Ratio(),
		Compress:    compress,
		Decompress:  decompress,
		Get:         get,
	}, nil
}

// TransmissionThreshold relates the codec overhead to the transmit time a
// link of the given speed saves on the packed form: it returns
// overhead / (saved - overhead), where saved is the raw-versus-packed
// transmit-time difference and overhead is the compress plus decompress
// time. The second return is false when saved <= overhead; on such a link
// compression never pays off.
func TransmissionThreshold(r *Result, bytesPerSec float64) (float64, bool) {
	if bytesPerSec <= 0 {
		return 0, false
	}
	saved := (float64(r.RawBytes) - float64(r.PackedBytes)) / bytesPerSec
	overhead := (r.Compress + r.Decompress).Seconds()
	if saved <= overhead {
		return 0, false
	}
	return overhead / (saved - overhead), true
}

// Suite runs every variant over a list of datasets.
type Suite struct {
	iterations int
	logger     shared.Logger
}

// NewSuite returns a suite timing each measurement over the given number of
// iterations.
func NewSuite(iterations int, logger shared.Logger) (*Suite, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: invalid `iterations`; expected: > 0, given: %d",
			shared.ErrInvalidConfig, iterations)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: invalid `logger`; expected: a logger, given: nil",
			shared.ErrInvalidConfig)
	}
	return &Suite{iterations: iterations, logger: logger}, nil
}

// Run measures every variant over every dataset, in order.
func (s *Suite) Run(datasets []Dataset) ([]*Result, error) {
	codecs := make([]bitpack.Codec, 0, 3)
	for _, variant := range []bitpack.Variant{bitpack.Simple, bitpack.Aligned, bitpack.Overflow} {
		codec, err := bitpack.New(variant)
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, codec)
	}

	results := make([]*Result, 0, len(datasets)*len(codecs))
	for _, dataset := range datasets {
		for _, codec := range codecs {
			s.logger.Debug("measuring %s over %q (%d values, %d iterations)",
				codec.Variant(), dataset.Name, len(dataset.Values), s.iterations)
			r, err := Measure(codec, dataset.Name, dataset.Values, s.iterations)
			if err != nil {
				return nil, err
			}
			s.logger.Info("%s over %q: ratio %.2f, compress %v, decompress %v, get %v",
				r.Variant, r.Dataset, r.Ratio, r.Compress, r.Decompress, r.Get)
			results = append(results, r)
		}
	}
	return results, nil
}
