package htnplan

import (
	"container/heap"
	"math"
)

var posInf = math.Inf(1)

// Frontier is the pending-node container the anytime DFS driver pops from
// and pushes batches of successors into. Its discipline — LIFO, min-cost
// heap, or Monte-Carlo-rated heap — defines the search strategy; the driver
// itself never inspects which one it holds.
type Frontier[S any] interface {
	EnqueueAll(items []*PlanStep[S])
	Dequeue() (*PlanStep[S], bool)
	Empty() bool
}

// Stack is a LIFO frontier: depth-first, left-biased option order, default
// for the anytime DFS driver. Each batch is pushed in reverse, so the first
// successor of a node is the first one popped.
type Stack[S any] struct {
	items []*PlanStep[S]
}

// NewStack returns an empty LIFO frontier.
func NewStack[S any]() *Stack[S] {
	return &Stack[S]{}
}

func (s *Stack[S]) EnqueueAll(items []*PlanStep[S]) {
	for i := len(items) - 1; i >= 0; i-- {
		s.items = append(s.items, items[i])
	}
}

func (s *Stack[S]) Dequeue() (*PlanStep[S], bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	last := len(s.items) - 1
	item := s.items[last]
	s.items = s.items[:last]
	return item, true
}

func (s *Stack[S]) Empty() bool {
	return len(s.items) == 0
}

// costHeap is a container/heap min-heap ordered by PlanStep.totalCost.
type costHeap[S any] []*PlanStep[S]

func (h costHeap[S]) Len() int            { return len(h) }
func (h costHeap[S]) Less(i, j int) bool  { return h[i].totalCost < h[j].totalCost }
func (h costHeap[S]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *costHeap[S]) Push(x interface{}) { *h = append(*h, x.(*PlanStep[S])) }
func (h *costHeap[S]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// HybridQueue orders nodes by total_cost globally but keeps a single
// "next-to-pop" cache slot holding the most recently enqueued sibling, so a
// freshly expanded node's own children get a DFS-like first-child
// preference even while the queue otherwise explores cheapest-first. It may
// only receive one batch between dequeues — EnqueueAll panics if called
// while a cached slot is still unconsumed, since the anytime driver always
// dequeues exactly once before enqueueing the next batch.
type HybridQueue[S any] struct {
	heap    costHeap[S]
	nextPop *PlanStep[S]
	hasNext bool
}

// NewHybridQueue returns an empty min-cost heap frontier with a one-slot
// DFS-preference cache.
func NewHybridQueue[S any]() *HybridQueue[S] {
	h := &HybridQueue[S]{}
	heap.Init(&h.heap)
	return h
}

func (q *HybridQueue[S]) EnqueueAll(items []*PlanStep[S]) {
	if q.hasNext {
		panic("htnplan: HybridQueue.EnqueueAll called with an unconsumed next-to-pop slot")
	}
	if len(items) == 0 {
		return
	}
	for _, item := range items[:len(items)-1] {
		heap.Push(&q.heap, item)
	}
	q.nextPop = items[len(items)-1]
	q.hasNext = true
}

func (q *HybridQueue[S]) Dequeue() (*PlanStep[S], bool) {
	if q.hasNext {
		item := q.nextPop
		q.nextPop = nil
		q.hasNext = false
		return item, true
	}
	if q.heap.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.heap).(*PlanStep[S]), true
}

func (q *HybridQueue[S]) Empty() bool {
	return q.heap.Len() == 0 && !q.hasNext
}

// ratedItem pairs a PlanStep with its Monte-Carlo rating for the rated heap.
type ratedItem[S any] struct {
	step   *PlanStep[S]
	rating float64
}

type ratedHeap[S any] []ratedItem[S]

func (h ratedHeap[S]) Len() int            { return len(h) }
func (h ratedHeap[S]) Less(i, j int) bool  { return h[i].rating < h[j].rating }
func (h ratedHeap[S]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ratedHeap[S]) Push(x interface{}) { *h = append(*h, x.(ratedItem[S])) }
func (h *ratedHeap[S]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MonteCarloHeap rates every enqueued node by averaging cost over a fixed
// number of random rollouts launched from it, then serves the
// cheapest-rated node first. A node from which zero rollouts complete is
// rated +Inf rather than causing a division by zero. Unlike HybridQueue,
// this frontier keeps no separate DFS-preference slot.
type MonteCarloHeap[S any] struct {
	reg        *Registry[S]
	numSamples int
	heap       ratedHeap[S]
}

// NewMonteCarloHeap returns a rated-heap frontier that samples numSamples
// random rollouts per enqueued node to compute its rating.
func NewMonteCarloHeap[S any](reg *Registry[S], numSamples int) *MonteCarloHeap[S] {
	h := &MonteCarloHeap[S]{reg: reg, numSamples: numSamples}
	heap.Init(&h.heap)
	return h
}

func (q *MonteCarloHeap[S]) EnqueueAll(items []*PlanStep[S]) {
	for _, step := range items {
		heap.Push(&q.heap, ratedItem[S]{step: step, rating: q.rate(step)})
	}
}

func (q *MonteCarloHeap[S]) rate(step *PlanStep[S]) float64 {
	results := NRandom(q.reg, step.state, step.tasks, q.numSamples)
	if len(results) == 0 {
		return posInf
	}
	var sum float64
	for _, r := range results {
		sum += r.Cost
	}
	return sum / float64(len(results))
}

func (q *MonteCarloHeap[S]) Dequeue() (*PlanStep[S], bool) {
	if q.heap.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(&q.heap).(ratedItem[S])
	return item.step, true
}

func (q *MonteCarloHeap[S]) Empty() bool {
	return q.heap.Len() == 0
}
