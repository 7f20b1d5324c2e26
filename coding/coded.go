package coding

import (
	"fmt"

	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/modulation"
)

// CodedModulation is a modulation carrying an FEC code. Coding gain is applied
// as a flat dB shift of the uncoded BER curve, not a true coded-BER curve.
type CodedModulation struct {
	Modulation modulation.Modulation
	FEC        Code
}

func New(mod modulation.Modulation, fec Code) CodedModulation {
	return CodedModulation{Modulation: mod, FEC: fec}
}

func (cm CodedModulation) CodeRate() float64 {
	return cm.FEC.Rate()
}

func (cm CodedModulation) CodingGainDB() float64 {
	return cm.FEC.CodingGainDB()
}

// SpectralEfficiency is k*R in bits/s/Hz.
func (cm CodedModulation) SpectralEfficiency() float64 {
	return cm.Modulation.SpectralEfficiency(cm.FEC.Rate())
}

// ThroughputBps is the information rate carried by a channel of bandwidthHz.
func (cm CodedModulation) ThroughputBps(bandwidthHz float64) float64 {
	return bandwidthHz * cm.SpectralEfficiency()
}

// RequiredEbNoDB is the uncoded requirement less the coding gain. It may be
// negative.
func (cm CodedModulation) RequiredEbNoDB(targetBER float64) (float64, error) {
	uncoded, err := ber.RequiredEbNoDB(targetBER, cm.Modulation)
	if err != nil {
		return 0, err
	}
	return uncoded - cm.FEC.CodingGainDB(), nil
}

// BERFromDB evaluates the uncoded curve at ebnoDB plus the coding gain.
func (cm CodedModulation) BERFromDB(ebnoDB float64) float64 {
	return ber.FromDB(ebnoDB+cm.FEC.CodingGainDB(), cm.Modulation)
}

// LinkMarginDB is actualEbNoDB minus the Eb/No required for targetBER.
// Positive margin means the link closes.
func (cm CodedModulation) LinkMarginDB(actualEbNoDB, targetBER float64) (float64, error) {
	required, err := cm.RequiredEbNoDB(targetBER)
	if err != nil {
		return 0, err
	}
	return actualEbNoDB - required, nil
}

func (cm CodedModulation) SymbolRate(infoBitRateBps float64) float64 {
	return cm.Modulation.SymbolRate(infoBitRateBps, cm.FEC.Rate())
}

func (cm CodedModulation) Validate() error {
	if err := cm.Modulation.Validate(); err != nil {
		return err
	}
	return cm.FEC.Validate()
}

func (cm CodedModulation) String() string {
	return fmt.Sprintf("%s + %s", cm.Modulation, cm.FEC)
}
