package budget

import (
	"math"

	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/coding"
	"github.com/jrwynneiii/linkbudget/energy"
	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/jrwynneiii/linkbudget/units"
	"github.com/pkg/errors"
)

var ErrInvalidBudget = errors.New("invalid link budget")

// LinkBudget is a one-way link. Every derived quantity is recomputed from the
// fields on each call.
type LinkBudget struct {
	Name        string
	BandwidthHz float64
	Transmitter Transmitter
	Receiver    Receiver
	PathLoss    PathLoss

	// FadeMarginDB is an optional frequency dependent loss (rain fade,
	// obstructions) added on top of free-space loss.
	FadeMarginDB *float64
}

// FadeMargin is a helper for filling LinkBudget.FadeMarginDB.
func FadeMargin(db float64) *float64 {
	return &db
}

func (lb LinkBudget) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"bandwidth", lb.BandwidthHz},
		{"receiver bandwidth", lb.Receiver.BandwidthHz},
		{"receiver temperature", lb.Receiver.TemperatureK},
		{"frequency", lb.PathLoss.FrequencyHz},
		{"distance", lb.PathLoss.DistanceM},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return errors.Wrapf(ErrInvalidBudget, "%s: %s must be positive, got %g", lb.Name, c.name, c.value)
		}
	}
	if lb.FadeMarginDB != nil && math.IsNaN(*lb.FadeMarginDB) {
		return errors.Wrapf(ErrInvalidBudget, "%s: fade margin is NaN", lb.Name)
	}
	return nil
}

// PathLossDB is free-space loss plus the fade margin, if any.
func (lb LinkBudget) PathLossDB() float64 {
	loss := lb.PathLoss.CalculateDB()
	if lb.FadeMarginDB != nil {
		loss += *lb.FadeMarginDB
	}
	return loss
}

func (lb LinkBudget) PinAtReceiverDBm() float64 {
	return lb.Transmitter.EIRPDBm() - lb.PathLossDB() + lb.Receiver.GainDB
}

func (lb LinkBudget) SNRDB() float64 {
	return lb.Receiver.SNRDB(lb.PinAtReceiverDBm())
}

func (lb LinkBudget) SNRLinear() float64 {
	return units.DbToLinear(lb.SNRDB())
}

// COverNo is in dB-Hz, referenced to the receiver bandwidth.
func (lb LinkBudget) COverNo() float64 {
	return energy.SNRToCOverNo(lb.SNRDB(), lb.Receiver.BandwidthHz)
}

// EbNoDB is the uncoded Eb/No, SNR less 10log10(bits per symbol).
func (lb LinkBudget) EbNoDB(mod modulation.Modulation) float64 {
	return lb.SNRDB() - 10.0*math.Log10(mod.BitsPerSymbol())
}

// EbNoCodedDB is SNR less 10log10 of the coded spectral efficiency.
func (lb LinkBudget) EbNoCodedDB(cm coding.CodedModulation) float64 {
	return lb.SNRDB() - 10.0*math.Log10(cm.SpectralEfficiency())
}

func (lb LinkBudget) BER(mod modulation.Modulation) float64 {
	return ber.FromDB(lb.EbNoDB(mod), mod)
}

func (lb LinkBudget) BERCoded(cm coding.CodedModulation) float64 {
	return cm.BERFromDB(lb.EbNoCodedDB(cm))
}

func (lb LinkBudget) LinkMarginDB(mod modulation.Modulation, targetBER float64) (float64, error) {
	required, err := ber.RequiredEbNoDB(targetBER, mod)
	if err != nil {
		return 0, err
	}
	return lb.EbNoDB(mod) - required, nil
}

func (lb LinkBudget) LinkMarginCodedDB(cm coding.CodedModulation, targetBER float64) (float64, error) {
	return cm.LinkMarginDB(lb.EbNoCodedDB(cm), targetBER)
}

// ThroughputBps is the information rate cm carries in the link bandwidth.
func (lb LinkBudget) ThroughputBps(cm coding.CodedModulation) float64 {
	return cm.ThroughputBps(lb.BandwidthHz)
}

// PHYRate is the Shannon bound for the link bandwidth at the current SNR.
func (lb LinkBudget) PHYRate() PHYRate {
	return PHYRate{BandwidthHz: lb.BandwidthHz, SNR: lb.SNRLinear()}
}
