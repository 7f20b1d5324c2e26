// Package evm converts between error vector magnitude and SNR, the two ways
// a modem's signal quality is usually quoted.
package evm

import "math"

// FromSNRDB returns the RMS EVM as a fraction for an SNR in dB.
func FromSNRDB(snrDB float64) float64 {
	return math.Pow(10, -snrDB/20.0)
}

func PercentFromSNRDB(snrDB float64) float64 {
	return FromSNRDB(snrDB) * 100.0
}

// SNRDBFromEVM is the inverse of FromSNRDB. evmRMS must be > 0.
func SNRDBFromEVM(evmRMS float64) float64 {
	return -20.0 * math.Log10(evmRMS)
}

func SNRDBFromPercent(evmPct float64) float64 {
	return SNRDBFromEVM(evmPct / 100.0)
}

func FromSNRLinear(snrLinear float64) float64 {
	return 1.0 / math.Sqrt(snrLinear)
}

// Margin compares a measured EVM against a requirement, both in percent.
// The margin is the SNR-equivalent difference; the check passes when the
// measured EVM is no worse than required.
func Margin(measuredPct, requiredPct float64) (pass bool, marginDB float64) {
	measured := SNRDBFromPercent(measuredPct)
	required := SNRDBFromPercent(requiredPct)
	return measured >= required, measured - required
}
