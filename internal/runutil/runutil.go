// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"math"
	"runtime"
)

// SlowCandidates is the candidate count above which a run is worth a warning.
const SlowCandidates = 1e8

// EffectiveThreads returns the worker count for a requested value:
// 0 means one per CPU.
func EffectiveThreads(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}

// CandidateSpace is the number of assignments an exact run scores for n
// individuals of whom known have trait evidence: 3^n gene labelings times
// 2^(n-known) trait subsets.
func CandidateSpace(n, known int) float64 {
	return math.Pow(3, float64(n)) * math.Pow(2, float64(n-known))
}

// PlanWarnings returns human-readable warnings about the run size.
func PlanWarnings(n, known, threads int) []string {
	var warns []string
	c := CandidateSpace(n, known)
	if c > SlowCandidates {
		warns = append(warns, fmt.Sprintf("%d individuals need %.3g candidate assignments; this may take a while", n, c))
	}
	if g := math.Pow(3, float64(n)); float64(threads) > g {
		warns = append(warns, fmt.Sprintf("--threads %d exceeds the %.0f gene labelings; extra workers stay idle", threads, g))
	}
	return warns
}
