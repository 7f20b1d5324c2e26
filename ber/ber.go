// Package ber implements closed-form bit-error-rate curves for the supported
// modulation families and the inverse search for the Eb/No a target BER needs.
//
// Eb/No arguments are linear unless the name says DB.
package ber

import (
	"math"

	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/jrwynneiii/linkbudget/units"
)

// Erfc is the complementary error function using Abramowitz & Stegun 7.1.26
// (max absolute error about 1.5e-7). Erfc(-x) = 2 - Erfc(x).
func Erfc(x float64) float64 {
	if x < 0 {
		return 2.0 - Erfc(-x)
	}
	t := 1.0 / (1.0 + 0.3275911*x)
	poly := t * (0.254829592 +
		t*(-0.284496736+
			t*(1.421413741+
				t*(-1.453152027+
					t*1.061405429))))
	return poly * math.Exp(-x*x)
}

// Q is the Gaussian tail probability, 0.5*erfc(x/sqrt(2)).
func Q(x float64) float64 {
	return 0.5 * Erfc(x/math.Sqrt2)
}

// BPSK returns Q(sqrt(2 Eb/No)). QPSK and MSK share this curve.
func BPSK(ebno float64) float64 {
	return Q(math.Sqrt(2.0 * ebno))
}

// MPSK is the Gray-coded M-PSK approximation (2/k) Q(sqrt(2k Eb/No) sin(pi/M)).
func MPSK(ebno float64, m int) float64 {
	if m == 2 {
		return BPSK(ebno)
	}
	k := math.Log2(float64(m))
	sinTerm := math.Sin(math.Pi / float64(m))
	return (2.0 / k) * Q(math.Sqrt(2.0*k*ebno)*sinTerm)
}

// MQAM is the Gray-coded rectangular M-QAM approximation
// (4/k)(1-1/sqrt(M)) Q(sqrt(3k Eb/No/(M-1))). 4-QAM is QPSK.
func MQAM(ebno float64, m int) float64 {
	if m == 4 {
		return BPSK(ebno)
	}
	k := math.Log2(float64(m))
	coeff := (4.0 / k) * (1.0 - 1.0/math.Sqrt(float64(m)))
	arg := math.Sqrt(3.0 * k * ebno / (float64(m) - 1.0))
	return coeff * Q(arg)
}

// BER dispatches to the curve for mod. MSK is approximated by the BPSK curve.
func BER(ebno float64, mod modulation.Modulation) float64 {
	switch mod.Scheme {
	case modulation.SchemeMPSK:
		return MPSK(ebno, mod.Order())
	case modulation.SchemeMQAM:
		return MQAM(ebno, mod.Order())
	default:
		// BPSK, QPSK and MSK
		return BPSK(ebno)
	}
}

// FromDB is BER with Eb/No given in dB.
func FromDB(ebnoDB float64, mod modulation.Modulation) float64 {
	return BER(units.DbToLinear(ebnoDB), mod)
}
