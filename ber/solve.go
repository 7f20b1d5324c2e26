package ber

import (
	"math"

	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/pkg/errors"
)

const (
	searchLowDB     = -5.0
	searchHighDB    = 50.0
	searchMaxIter   = 100
	searchTolerance = 1e-6 // relative BER error
)

var (
	ErrInvalidTarget = errors.New("target BER must be in (0, 0.5]")
	ErrNotConverged  = errors.New("required Eb/No search did not converge")
)

// Solution is the outcome of the bisection in Solve. Converged is false when
// the iteration budget ran out before the relative error dropped below 1e-6;
// EbNoDB then holds the final midpoint.
type Solution struct {
	EbNoDB     float64
	Iterations int
	Converged  bool
}

// Solve bisects Eb/No over [-5, 50] dB for the point where the BER curve of
// mod crosses target. BER falls as Eb/No rises, so a midpoint BER above the
// target raises the lower bound. The only error is ErrInvalidTarget.
func Solve(target float64, mod modulation.Modulation) (Solution, error) {
	if math.IsNaN(target) || target <= 0 || target > 0.5 {
		return Solution{}, errors.Wrapf(ErrInvalidTarget, "got %g", target)
	}

	lo, hi := searchLowDB, searchHighDB
	for i := 1; i <= searchMaxIter; i++ {
		mid := (lo + hi) / 2.0
		berMid := FromDB(mid, mod)
		if math.Abs(berMid-target)/target < searchTolerance {
			return Solution{EbNoDB: mid, Iterations: i, Converged: true}, nil
		}
		if berMid > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Solution{EbNoDB: (lo + hi) / 2.0, Iterations: searchMaxIter}, nil
}

// RequiredEbNoDB returns the uncoded Eb/No in dB that mod needs to reach
// target. Unlike Solve it treats an exhausted search as a failure and
// returns ErrNotConverged.
func RequiredEbNoDB(target float64, mod modulation.Modulation) (float64, error) {
	sol, err := Solve(target, mod)
	if err != nil {
		return 0, err
	}
	if !sol.Converged {
		return 0, errors.Wrapf(ErrNotConverged, "%s at BER %g (best effort %.4f dB)", mod, target, sol.EbNoDB)
	}
	return sol.EbNoDB, nil
}
