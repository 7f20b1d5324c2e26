// Package sensitivity computes the minimum received power a receiver needs
// to hit a target BER, from the thermal noise floor and the BER engine.
package sensitivity

import (
	"math"

	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/jrwynneiii/linkbudget/units"
	"github.com/pkg/errors"
)

var ErrInvalidInput = errors.New("invalid sensitivity input")

// NoiseFloorDBm is kT0 (-174 dBm/Hz) integrated over bandwidthHz, plus the
// receiver noise figure.
func NoiseFloorDBm(bandwidthHz, noiseFigureDB float64) float64 {
	return units.ThermalNoiseDensityDbmHz + 10.0*math.Log10(bandwidthHz) + noiseFigureDB
}

// MatchedFilterDBm is the sensitivity of an ideal matched-filter receiver:
//
//	-174 + NF + Eb/No_req + 10log10(Rb) + L_impl
//
// codeRate is accepted but not applied: the required Eb/No is the uncoded
// one. Use coding.CodedModulation.RequiredEbNoDB and FromEbNoDBm for a coded
// figure.
func MatchedFilterDBm(mod modulation.Modulation, infoBitRateBps, codeRate, noiseFigureDB, targetBER, implLossDB float64) (float64, error) {
	if err := mod.Validate(); err != nil {
		return 0, err
	}
	if !(infoBitRateBps > 0) {
		return 0, errors.Wrapf(ErrInvalidInput, "bit rate %g bps", infoBitRateBps)
	}
	required, err := ber.RequiredEbNoDB(targetBER, mod)
	if err != nil {
		return 0, err
	}
	return FromEbNoDBm(infoBitRateBps, noiseFigureDB, required, implLossDB), nil
}

// BandpassDBm adds the roll-off penalty to the matched-filter sensitivity,
// for a receiver whose filter is Rs*(1+rolloff) wide instead of matched.
func BandpassDBm(mod modulation.Modulation, infoBitRateBps, codeRate, noiseFigureDB, targetBER, implLossDB, rolloff float64) (float64, error) {
	if !(rolloff >= 0) {
		return 0, errors.Wrapf(ErrInvalidInput, "roll-off %g", rolloff)
	}
	mf, err := MatchedFilterDBm(mod, infoBitRateBps, codeRate, noiseFigureDB, targetBER, implLossDB)
	if err != nil {
		return 0, err
	}
	return mf + RolloffPenaltyDB(rolloff), nil
}

// SensitivityDBm is the matched-filter sensitivity. rolloff is ignored; it is
// kept so older callers that passed it still compile.
//
// Deprecated: use MatchedFilterDBm or BandpassDBm.
func SensitivityDBm(mod modulation.Modulation, infoBitRateBps, codeRate, noiseFigureDB, targetBER, implLossDB, rolloff float64) (float64, error) {
	return MatchedFilterDBm(mod, infoBitRateBps, codeRate, noiseFigureDB, targetBER, implLossDB)
}

// RolloffPenaltyDB is the extra noise, 10log10(1+rolloff), let in by a
// raised-cosine bandpass filter relative to a matched filter.
func RolloffPenaltyDB(rolloff float64) float64 {
	return 10.0 * math.Log10(1.0+rolloff)
}

// FromSNRDBm is the sensitivity for a required SNR in bandwidthHz. It
// bypasses the modulation and BER model entirely.
func FromSNRDBm(bandwidthHz, noiseFigureDB, requiredSNRDB, implLossDB float64) float64 {
	return NoiseFloorDBm(bandwidthHz, noiseFigureDB) + requiredSNRDB + implLossDB
}

// FromEbNoDBm is the sensitivity for an already known required Eb/No, such
// as a coded requirement.
func FromEbNoDBm(infoBitRateBps, noiseFigureDB, requiredEbNoDB, implLossDB float64) float64 {
	return units.ThermalNoiseDensityDbmHz + noiseFigureDB + requiredEbNoDB + 10.0*math.Log10(infoBitRateBps) + implLossDB
}
