// Package usecases contains the multi-provider test orchestration.
package usecases

import (
	"math"

	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// Weights tunes the recommendation. All components are non-negative;
// latency and cost favor lower values, quality favors higher.
type Weights struct {
	Latency float64
	Cost    float64
	Quality float64
}

func DefaultWeights() Weights {
	return Weights{Latency: 1, Cost: 1, Quality: 1}
}

// Analysis is the comparative verdict over one test run.
type Analysis struct {
	Successful   []string `json:"successful"`
	Failed       []string `json:"failed"`
	Fastest      string   `json:"fastest,omitempty"`
	FastestMs    int64    `json:"fastest_ms,omitempty"`
	AvgLatencyMs int64    `json:"avg_latency_ms,omitempty"`
	Cheapest     string   `json:"cheapest,omitempty"`
	Recommended  string   `json:"recommended,omitempty"`
	AllFailed    bool     `json:"all_failed"`
}

// Analyze compares the successful results of one run. Latency and cost
// are min-max normalized across the successes; the recommended provider
// maximizes the weighted score. With zero successes there is no
// recommendation and AllFailed is set.
func Analyze(results []*models.TestResult, w Weights) Analysis {
	var a Analysis

	var successes []*models.TestResult
	for _, r := range results {
		if r.Succeeded() {
			successes = append(successes, r)
			a.Successful = append(a.Successful, r.Provider)
		} else {
			a.Failed = append(a.Failed, r.Provider)
		}
	}

	if len(successes) == 0 {
		a.AllFailed = true
		return a
	}

	minLat, maxLat := successes[0].LatencyMs, successes[0].LatencyMs
	minCost, maxCost := successes[0].CostUSD, successes[0].CostUSD
	var totalLat int64
	for _, r := range successes {
		totalLat += r.LatencyMs
		if r.LatencyMs < minLat {
			minLat = r.LatencyMs
			a.Fastest = r.Provider
		}
		if r.LatencyMs > maxLat {
			maxLat = r.LatencyMs
		}
		if r.CostUSD < minCost {
			minCost = r.CostUSD
			a.Cheapest = r.Provider
		}
		if r.CostUSD > maxCost {
			maxCost = r.CostUSD
		}
	}
	if a.Fastest == "" {
		a.Fastest = successes[0].Provider
	}
	if a.Cheapest == "" {
		a.Cheapest = successes[0].Provider
	}
	a.FastestMs = minLat
	a.AvgLatencyMs = totalLat / int64(len(successes))

	best := math.Inf(-1)
	for _, r := range successes {
		// normalized to [0,1] where 1 is best
		latScore := 1 - normalize(float64(r.LatencyMs), float64(minLat), float64(maxLat))
		costScore := 1 - normalize(r.CostUSD, minCost, maxCost)
		score := w.Latency*latScore + w.Cost*costScore + w.Quality*r.QualityScore
		if score > best {
			best = score
			a.Recommended = r.Provider
		}
	}

	return a
}

// normalize maps v into [0,1] over [min,max]; a degenerate range maps
// everything to 0 so equal values never dominate the score.
func normalize(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return (v - min) / (max - min)
}
