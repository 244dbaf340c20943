// Package perf holds the frame-time budgets of the pinentry render paths
// and the benchmarks that measure them.
package perf

import (
	"sort"
	"testing"
	"time"
)

// FrameBudget is the time one animation frame may take at 60 fps.
const FrameBudget = 16 * time.Millisecond

// Threshold defines a performance budget for a named operation. Benchmarks
// that exceed it indicate a regression that should be investigated before
// merging.
type Threshold struct {
	// Name identifies the operation.
	Name string

	// MaxNs is the maximum allowed nanoseconds per operation.
	MaxNs int64

	// MaxAlloc is the maximum allowed bytes allocated per operation.
	MaxAlloc int64
}

// Violation records a threshold breach for a specific benchmark.
type Violation struct {
	// Threshold is the budget that was exceeded.
	Threshold Threshold

	// Actual is the measured value that exceeded the threshold.
	Actual int64

	// Field is "ns" for time or "alloc" for memory.
	Field string
}

// DefaultThresholds returns the budgets for the paths run on every frame.
// Each is a small fraction of FrameBudget since a screen holds several
// fields.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Name: "core_draw", MaxNs: 200_000, MaxAlloc: 8192},
		{Name: "core_type", MaxNs: 100_000, MaxAlloc: 8192},
		{Name: "layout_compute", MaxNs: 50_000, MaxAlloc: 2048},
		{Name: "mask_resolve", MaxNs: 50_000, MaxAlloc: 1024},
		{Name: "grid_draw", MaxNs: 500_000, MaxAlloc: 65536},
		{Name: "grid_render", MaxNs: 2_000_000, MaxAlloc: 1 << 20},
		{Name: "frame_render", MaxNs: 1_000_000, MaxAlloc: 262144},
	}
}

// CheckRegression compares named benchmark results against thresholds and
// returns the violations, ordered by name. Results without a threshold and
// thresholds without a result are ignored.
func CheckRegression(results map[string]testing.BenchmarkResult, thresholds []Threshold) []Violation {
	var violations []Violation
	for _, t := range thresholds {
		r, ok := results[t.Name]
		if !ok || r.N == 0 {
			continue
		}
		if ns := r.NsPerOp(); t.MaxNs > 0 && ns > t.MaxNs {
			violations = append(violations, Violation{Threshold: t, Actual: ns, Field: "ns"})
		}
		if alloc := r.AllocedBytesPerOp(); t.MaxAlloc > 0 && alloc > t.MaxAlloc {
			violations = append(violations, Violation{Threshold: t, Actual: alloc, Field: "alloc"})
		}
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Threshold.Name < violations[j].Threshold.Name
	})
	return violations
}
