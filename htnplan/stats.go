package htnplan

import "math"

// OutcomeCounter summarizes the observed costs of choosing a particular
// decision-point option: how many rollouts through it succeeded (with what
// total/min/max cost) and how many dead-ended. Comparisons between two
// counters favor any successes over none, then break zero-success ties by
// fewest failures, then fall back to a penalized mean that charges each
// failure the worse of the two counters' max cost, doubled — so a
// never-succeeding option never looks artificially cheap just because it
// was never costed.
type OutcomeCounter struct {
	Total        float64
	NumSucceeded int
	Min, Max     float64
	NumFailed    int
	seen         bool // true once Record has been called at least once
}

// NewOutcomeCounter returns a fresh, empty counter.
func NewOutcomeCounter() *OutcomeCounter {
	return &OutcomeCounter{}
}

// Record logs a successful rollout with the given total cost.
func (c *OutcomeCounter) Record(outcome float64) {
	c.Total += outcome
	c.NumSucceeded++
	if !c.seen || c.Min > outcome {
		c.Min = outcome
	}
	if !c.seen || c.Max < outcome {
		c.Max = outcome
	}
	c.seen = true
}

// Failure logs a dead-ended rollout.
func (c *OutcomeCounter) Failure() {
	c.NumFailed++
}

// Mean is the plain average of successful outcomes. Only meaningful when
// NumSucceeded > 0.
func (c *OutcomeCounter) Mean() float64 {
	if c.NumSucceeded == 0 {
		return math.Inf(1)
	}
	return c.Total / float64(c.NumSucceeded)
}

// TestMean is the penalized mean used to compare counters: every failure is
// charged failurePenalty instead of a recorded cost.
func (c *OutcomeCounter) TestMean(failurePenalty float64) float64 {
	denom := float64(c.NumSucceeded + c.NumFailed)
	if denom == 0 {
		return math.Inf(1)
	}
	return (c.Total + float64(c.NumFailed)*failurePenalty) / denom
}

// Less implements the counter ordering: a counter with no successes is
// worse than one with successes; two all-failure counters compare by fewest
// failures; otherwise compare by penalized mean with a shared failure
// penalty of 2*max(a.Max, b.Max).
func (c *OutcomeCounter) Less(other *OutcomeCounter) bool {
	if c.NumSucceeded == 0 && other.NumSucceeded == 0 {
		return c.NumFailed < other.NumFailed
	}
	if c.NumSucceeded == 0 {
		return false
	}
	if other.NumSucceeded == 0 {
		return true
	}
	failurePenalty := 2 * math.Max(c.Max, other.Max)
	return c.TestMean(failurePenalty) < other.TestMean(failurePenalty)
}

// ConfidenceInterval computes a 95% confidence interval for the mean of
// values, using Student's t distribution for small samples (n <= 30) and a
// normal approximation otherwise. Go's standard library has no
// distribution-quantile functions, so the t critical values for 95%
// confidence come from the standard printed table for df = 1..29, with
// 1.96 (the normal approximation) beyond that.
func ConfidenceInterval(values []float64) (lo, mean, hi float64) {
	n := len(values)
	if n == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	mean = 0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	if n == 1 {
		return mean, mean, mean
	}

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	variance := sumSq / float64(n-1)
	stderr := math.Sqrt(variance / float64(n))

	critical := tCritical95(n - 1)
	margin := critical * stderr
	return mean - margin, mean, mean + margin
}

// tCritical95 returns the two-sided 95%-confidence critical value for a
// t-distribution with df degrees of freedom, falling back to the normal
// approximation (1.96) for df >= 30.
func tCritical95(df int) float64 {
	if df < 1 {
		df = 1
	}
	if df-1 < len(tTable95) {
		return tTable95[df-1]
	}
	return 1.96
}

// tTable95 holds the two-sided 95% critical values for df = 1..29.
var tTable95 = [29]float64{
	12.706, 4.303, 3.182, 2.776, 2.571, 2.447, 2.365, 2.306, 2.262, 2.228,
	2.201, 2.179, 2.160, 2.145, 2.131, 2.120, 2.110, 2.101, 2.093, 2.086,
	2.080, 2.074, 2.069, 2.064, 2.060, 2.056, 2.052, 2.048, 2.045,
}
