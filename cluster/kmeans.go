// Package cluster provides one-dimensional clustering for column
// detection. The Clusterer interface keeps the algorithm swappable;
// the built-in k-means is deterministic (quantile initialization, no
// random seeding) so that repeated runs over identical input produce
// identical results, and callers always have a dependency-free
// single-cluster fallback.
package cluster

import (
	"errors"
	"math"
	"sort"
)

// ErrDegenerate is returned when the input cannot support the
// requested cluster count. Callers treat it as "fall back to a single
// cluster", never as a pipeline failure.
var ErrDegenerate = errors.New("cluster: degenerate input")

// Result holds one clustering outcome.
type Result struct {
	// Assignments maps each input value index to a cluster index.
	Assignments []int

	// Centers are the cluster centers, in assignment index order.
	Centers []float64

	// Inertia is the sum of squared distances to assigned centers.
	Inertia float64
}

// Clusterer partitions one-dimensional values into k groups.
type Clusterer interface {
	Cluster(values []float64, k int) (*Result, error)
}

// KMeans is a deterministic 1-D k-means implementation.
type KMeans struct {
	// MaxIterations bounds the refinement loop. Default 50.
	MaxIterations int
}

// NewKMeans returns a k-means clusterer with default iteration bound.
func NewKMeans() *KMeans {
	return &KMeans{MaxIterations: 50}
}

// Cluster runs k-means on values. Centers are initialized at evenly
// spaced quantiles of the sorted values, which makes the outcome a
// pure function of the input.
func (km *KMeans) Cluster(values []float64, k int) (*Result, error) {
	if k <= 0 || len(values) == 0 || k > len(values) {
		return nil, ErrDegenerate
	}
	maxIter := km.MaxIterations
	if maxIter <= 0 {
		maxIter = 50
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	centers := make([]float64, k)
	for i := 0; i < k; i++ {
		// Quantile position for center i of k.
		pos := float64(i*2+1) / float64(k*2) * float64(len(sorted)-1)
		centers[i] = sorted[int(math.Round(pos))]
	}

	assignments := make([]int, len(values))
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range values {
			best := nearestCenter(centers, v)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[assignments[i]] += v
			counts[assignments[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centers[c] = sums[c] / float64(counts[c])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}

	// An empty cluster means k was too ambitious for this data.
	counts := make([]int, k)
	for _, a := range assignments {
		counts[a]++
	}
	for _, c := range counts {
		if c == 0 {
			return nil, ErrDegenerate
		}
	}

	inertia := 0.0
	for i, v := range values {
		d := v - centers[assignments[i]]
		inertia += d * d
	}

	return &Result{
		Assignments: assignments,
		Centers:     centers,
		Inertia:     inertia,
	}, nil
}

func nearestCenter(centers []float64, v float64) int {
	best := 0
	bestDist := math.Abs(centers[0] - v)
	for c := 1; c < len(centers); c++ {
		if d := math.Abs(centers[c] - v); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// SelectK picks a cluster count in 1..maxK using the elbow heuristic:
// the k with the maximum second difference of inertia. When fewer than
// three candidate counts exist, or the second-difference signal is too
// flat to be meaningful, it returns flatK (capped to the candidate
// range). flatK defaulting to 2 is an inherited policy, not a proven
// optimum; see config.Thresholds.FlatSignalColumns.
func SelectK(c Clusterer, values []float64, maxK, flatK int) (int, *Result) {
	if len(values) == 0 {
		return 0, nil
	}
	if maxK > len(values) {
		maxK = len(values)
	}
	if maxK < 1 {
		maxK = 1
	}
	if flatK < 1 {
		flatK = 1
	}
	if flatK > maxK {
		flatK = maxK
	}

	results := make([]*Result, maxK+1)
	inertias := make([]float64, maxK+1)
	for k := 1; k <= maxK; k++ {
		res, err := c.Cluster(values, k)
		if err != nil {
			// Degenerate at this k: larger k will be no better.
			maxK = k - 1
			break
		}
		results[k] = res
		inertias[k] = res.Inertia
	}
	if maxK < 1 {
		return 0, nil
	}
	if maxK == 1 {
		return 1, results[1]
	}
	if inertias[1] == 0 {
		// All values identical: one column.
		return 1, results[1]
	}
	if maxK == 2 {
		k := flatK
		if k > 2 {
			k = 2
		}
		return k, results[k]
	}

	bestK := 0
	bestSignal := 0.0
	for k := 2; k < maxK; k++ {
		signal := inertias[k-1] - 2*inertias[k] + inertias[k+1]
		if signal > bestSignal {
			bestSignal = signal
			bestK = k
		}
	}

	// Require the elbow to explain a meaningful share of the total
	// inertia, otherwise the signal is flat.
	if bestK == 0 || bestSignal < 0.05*inertias[1] {
		return flatK, results[flatK]
	}
	return bestK, results[bestK]
}
