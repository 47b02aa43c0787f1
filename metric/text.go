// SPDX-License-Identifier: MIT

package metric

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/katalvlaran/consistency/filter"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Levenshtein is the edit distance between the canonical serializations of
// the two representations (sorted terms concatenated).
type Levenshtein struct{}

// Distance implements Metric.
func (Levenshtein) Distance(a, b filter.Representation) float64 {
	return float64(levenshtein.ComputeDistance(a.Canonical(), b.Canonical()))
}

// Compression selects the compressor NCD approximates Kolmogorov complexity with.
type Compression int

// Supported compressors.
const (
	Deflate Compression = iota
	Gzip
	Zstd
	S2
)

var compressionNames = map[Compression]string{
	Deflate: "deflate",
	Gzip:    "gzip",
	Zstd:    "zstd",
	S2:      "s2",
}

// String returns the configuration name of the compressor.
func (c Compression) String() string {
	if n, ok := compressionNames[c]; ok {
		return n
	}

	return fmt.Sprintf("Compression(%d)", int(c))
}

// ParseCompression maps a configuration name onto a Compression.
func ParseCompression(name string) (Compression, error) {
	for c, n := range compressionNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// NCD is the normalized compression distance
//
//	NCD(x,y) = (C(xy) − min(C(x),C(y))) / max(C(x),C(y))
//
// over the canonical serializations. The pair is concatenated in
// lexicographic order so NCD(x,y) == NCD(y,x); identical inputs are 0 and
// compressor overhead never drives the value below 0.
type NCD struct {
	Compression Compression
}

// Distance implements Metric. An unsupported Compression yields NaN, which
// the engine rejects through Validate.
func (m NCD) Distance(a, b filter.Representation) float64 {
	x, y := a.Canonical(), b.Canonical()
	if x == y {
		return 0
	}
	if y < x {
		x, y = y, x
	}

	cx, err := compressedLen(m.Compression, x)
	if err != nil {
		return math.NaN()
	}
	cy, err := compressedLen(m.Compression, y)
	if err != nil {
		return math.NaN()
	}
	cxy, err := compressedLen(m.Compression, x+y)
	if err != nil {
		return math.NaN()
	}

	small, large := min(cx, cy), max(cx, cy)
	if large == 0 {
		return 0
	}

	return max(0, float64(cxy-small)/float64(large))
}

var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdErr  error
)

// compressedLen returns the compressed size of s in bytes.
func compressedLen(c Compression, s string) (int, error) {
	switch c {
	case Deflate:
		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.BestCompression)
		if err != nil {
			return 0, err
		}
		if _, err = w.Write([]byte(s)); err != nil {
			return 0, err
		}
		if err = w.Close(); err != nil {
			return 0, err
		}

		return buf.Len(), nil
	case Gzip:
		var buf bytes.Buffer
		w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return 0, err
		}
		if _, err = w.Write([]byte(s)); err != nil {
			return 0, err
		}
		if err = w.Close(); err != nil {
			return 0, err
		}

		return buf.Len(), nil
	case Zstd:
		zstdOnce.Do(func() {
			zstdEnc, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		})
		if zstdErr != nil {
			return 0, zstdErr
		}

		return len(zstdEnc.EncodeAll([]byte(s), nil)), nil
	case S2:
		return len(s2.EncodeBest(nil, []byte(s))), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
	}
}
