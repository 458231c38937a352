package alloc

import "math"

// SizeClassConfig defines the size-class strategy used by the Pool manager.
// Different configurations trade internal fragmentation against the number
// of pools maintained.
type SizeClassConfig struct {
	// Name for this configuration (for benchmarking)
	Name string

	// Small allocation settings (linear increments, in code units)
	SmallMin       int // Minimum class size
	SmallMax       int // Max for linear increments
	SmallIncrement int // Increment between small classes

	// Medium/Large allocation settings (logarithmic growth)
	MediumMax    int     // Max before allocations bypass the pools
	GrowthFactor float64 // Exponential growth factor between classes
}

// Predefined configurations.
var (
	// ConfigFineGrained: many small buckets, good for varied lengths.
	ConfigFineGrained = SizeClassConfig{
		Name:           "FineGrained",
		SmallMin:       8,
		SmallMax:       256,
		SmallIncrement: 8,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// ConfigCoarse: fewer buckets, faster class lookup, more slack per
	// buffer.
	ConfigCoarse = SizeClassConfig{
		Name:           "Coarse",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 32,
		MediumMax:      16384,
		GrowthFactor:   2.0,
	}

	// DefaultConfig balances pool count against slack for typical string
	// workloads.
	DefaultConfig = SizeClassConfig{
		Name:           "Balanced",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 16,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}
)

// sizeClassTable holds the computed size class boundaries.
type sizeClassTable struct {
	config     SizeClassConfig
	boundaries []int // upper bound (inclusive) for each size class
	numClasses int
}

// newSizeClassTable computes size class boundaries from config.
func newSizeClassTable(config SizeClassConfig) *sizeClassTable {
	table := &sizeClassTable{
		config:     config,
		boundaries: make([]int, 0, 64),
	}

	// Phase 1: small classes, linear increments.
	for size := config.SmallMin; size < config.SmallMax; size += config.SmallIncrement {
		table.boundaries = append(table.boundaries, size+config.SmallIncrement-1)
	}

	// Phase 2: medium classes, logarithmic growth.
	if config.SmallMax < config.MediumMax {
		size := config.SmallMax
		for size < config.MediumMax {
			nextSize := int(math.Ceil(float64(size) * config.GrowthFactor))
			if nextSize <= size {
				nextSize = size + 1 // ensure progress
			}
			bound := nextSize - 1
			if bound > config.MediumMax {
				bound = config.MediumMax // classes never cover bypass sizes
			}
			table.boundaries = append(table.boundaries, bound)
			size = nextSize
		}
	}

	table.numClasses = len(table.boundaries)
	return table
}

// classOf returns the size class index for an allocation of size units.
// Returns numClasses for sizes beyond MediumMax, which bypass the pools.
func (t *sizeClassTable) classOf(size int) int {
	lo, hi := 0, t.numClasses-1

	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			if mid == 0 || size > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	return t.numClasses
}

// NumClasses returns the number of pooled size classes.
func (t *sizeClassTable) NumClasses() int {
	return t.numClasses
}
