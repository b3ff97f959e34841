// Package telemetry holds the lock-free counters the dashboard reads while
// the search loop keeps running on its own goroutine. The planner core never
// reads these back; they exist purely so an HTTP handler can observe search
// progress without taking a lock against the hot loop.
package telemetry

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Notes:
// - consider gc side effects
// - consider race conditions
// This code 'checks out' despite the code-smell of using the unsafe package.
// But beware the tight guidelines, and minimize critical regions and pointers.
// For example, no unsafe pointer should be stored for more than a few lines of context,
// since the gc may move the original variable around, such that the original pointer
// no longer refers to the variable's location:
// 	tmp := unintptr(unsafe.Pointer(&x)) + unsafe.Offsetof(x.b)
// In this code the gc may run, see that &x is no longer referenced, move it,
// and thus tmp refers to a stale location.

// Gauge is a single float64 that supports lock-free reads and writes across
// goroutines. The search loop is the sole writer; dashboard handlers are the
// readers.
type Gauge struct {
	val float64
}

// NewGauge wraps an initial value for atomic access.
func NewGauge(val float64) *Gauge {
	return &Gauge{val: val}
}

// Read atomically loads the current value, so a reader never observes a
// torn/partial write from a concurrent Set or Add.
func (g *Gauge) Read() (value float64) {
	bits := atomic.LoadUint64((*uint64)(unsafe.Pointer(&g.val)))
	return math.Float64frombits(bits)
}

// Add atomically adds addend to the gauge. If the value changed underneath
// the read, the caller is told to retry rather than silently clobbering the
// concurrent update.
func (g *Gauge) Add(addend float64) (newVal float64, succeeded bool) {
	old := g.Read()
	newVal = old + addend
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&g.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return
}

// Set atomically overwrites the gauge, returning true on success.
func (g *Gauge) Set(newVal float64) (succeeded bool) {
	old := g.Read()
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&g.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return
}

// Snapshot is the set of gauges a single planning run publishes. The search
// driver owns the writer side; server.Server owns the reader side.
type Snapshot struct {
	BestCost      *Gauge
	NodesExpanded *Gauge
	FrontierSize  *Gauge
	ElapsedSecs   *Gauge
}

// NewSnapshot starts every gauge at its natural "nothing happened yet" value.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		BestCost:      NewGauge(math.Inf(1)),
		NodesExpanded: NewGauge(0),
		FrontierSize:  NewGauge(0),
		ElapsedSecs:   NewGauge(0),
	}
}
