// SPDX-License-Identifier: MIT

package metric

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Registered metric names, as used in configuration files.
const (
	NameDiscrete            = "discrete"
	NameSymmetricDifference = "symmetric-difference"
	NameWeightedDifference  = "weighted-difference"
	NameLevenshtein         = "levenshtein"
	NameNCD                 = "ncd"
)

// Options parameterize the metrics built by ByName. Fields that do not apply
// to the selected metric are ignored.
type Options struct {
	Normalized  bool        // symmetric-difference
	Compression Compression // ncd
}

var constructors = map[string]func(Options) Metric{
	NameDiscrete:            func(Options) Metric { return Discrete{} },
	NameSymmetricDifference: func(o Options) Metric { return SymmetricDifference{Normalized: o.Normalized} },
	NameWeightedDifference:  func(Options) Metric { return WeightedDifference{} },
	NameLevenshtein:         func(Options) Metric { return Levenshtein{} },
	NameNCD:                 func(o Options) Metric { return NCD{Compression: o.Compression} },
}

// ByName builds a registered metric. Names are case-insensitive.
func ByName(name string, opts Options) (Metric, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownMetric, name, strings.Join(Names(), ", "))
	}
	if _, ok := compressionNames[opts.Compression]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, opts.Compression)
	}

	return ctor(opts), nil
}

// Names lists the registered metric names in sorted order.
func Names() []string {
	names := lo.Keys(constructors)
	slices.Sort(names)

	return names
}
