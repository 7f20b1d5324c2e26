// Package coding models forward error correction as a code rate plus a flat
// coding gain, and pairs it with a modulation into a CodedModulation.
//
// Coding gains are typical values at BER ~1e-5:
//
//	Code                  Rate  Gain
//	Convolutional (K=7)   1/2   5.0 dB
//	Convolutional (K=7)   3/4   3.5 dB
//	Turbo                 1/2   7.5 dB
//	Turbo                 3/4   5.5 dB
//	LDPC (DVB-S2)         1/2   8.0 dB
//	LDPC (DVB-S2)         2/3   7.0 dB
//	LDPC (DVB-S2)         3/4   6.5 dB
//	LDPC (DVB-S2)         5/6   5.5 dB
//	LDPC (DVB-S2)         9/10  5.0 dB
package coding

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
)

var (
	ErrInvalidRate  = errors.New("code rate must be in (0, 1]")
	ErrNegativeGain = errors.New("coding gain must not be negative")
)

const (
	GainConvR12K7 = 5.0
	GainConvR34K7 = 3.5
	GainTurboR12  = 7.5
	GainTurboR34  = 5.5
	GainLDPCR12   = 8.0
	GainLDPCR23   = 7.0
	GainLDPCR34   = 6.5
	GainLDPCR56   = 5.5
	GainLDPCR910  = 5.0
)

type Family int

const (
	FamilyUncoded Family = iota
	FamilyConvolutional
	FamilyTurbo
	FamilyLDPC
	FamilyCustom
)

var familyNames = map[Family]string{
	FamilyUncoded:       "Uncoded",
	FamilyConvolutional: "Convolutional",
	FamilyTurbo:         "Turbo",
	FamilyLDPC:          "LDPC",
	FamilyCustom:        "Custom",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Code is an FEC code. Only Custom codes carry an explicit gain; the others
// derive it from their rate. The zero value is Uncoded.
type Code struct {
	Family Family
	rate   float64
	gainDB float64
}

func Uncoded() Code { return Code{Family: FamilyUncoded} }
func Convolutional(rate float64) Code { return Code{Family: FamilyConvolutional, rate: rate} }
func Turbo(rate float64) Code { return Code{Family: FamilyTurbo, rate: rate} }
func LDPC(rate float64) Code { return Code{Family: FamilyLDPC, rate: rate} }

func Custom(rate, codingGainDB float64) Code {
	return Code{Family: FamilyCustom, rate: rate, gainDB: codingGainDB}
}

// Rate returns R, 1 for an uncoded link.
func (c Code) Rate() float64 {
	if c.Family == FamilyUncoded {
		return 1.0
	}
	return c.rate
}

// CodingGainDB returns the reduction in required Eb/No the code buys.
func (c Code) CodingGainDB() float64 {
	switch c.Family {
	case FamilyConvolutional:
		return lerpGain(c.rate, 0.5, GainConvR12K7, 0.75, GainConvR34K7)
	case FamilyTurbo:
		return lerpGain(c.rate, 0.5, GainTurboR12, 0.75, GainTurboR34)
	case FamilyLDPC:
		return ldpcGain.Predict(c.rate)
	case FamilyCustom:
		return c.gainDB
	default:
		return 0
	}
}

// Validate checks 0 < R <= 1 and, for custom codes, a non-negative gain.
func (c Code) Validate() error {
	r := c.Rate()
	if math.IsNaN(r) || r <= 0 || r > 1 {
		return errors.Wrapf(ErrInvalidRate, "%s: rate %g", c.Family, r)
	}
	if c.Family == FamilyCustom && c.gainDB < 0 {
		return errors.Wrapf(ErrNegativeGain, "%s: gain %g dB", c.Family, c.gainDB)
	}
	return nil
}

func (c Code) String() string {
	switch c.Family {
	case FamilyUncoded:
		return "Uncoded"
	case FamilyCustom:
		return fmt.Sprintf("Custom (R=%v, gain=%v dB)", c.rate, c.gainDB)
	}
	return fmt.Sprintf("%s (R=%v)", c.Family, c.rate)
}

// Parse builds a Code from a family name and its parameters. gainDB is only
// used by "custom". The result is validated.
func Parse(family string, rate, gainDB float64) (Code, error) {
	var c Code
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "", "none", "uncoded":
		c = Uncoded()
	case "conv", "convolutional":
		c = Convolutional(rate)
	case "turbo":
		c = Turbo(rate)
	case "ldpc":
		c = LDPC(rate)
	case "custom":
		c = Custom(rate, gainDB)
	default:
		return Code{}, errors.Errorf("unknown FEC family %q", family)
	}
	if err := c.Validate(); err != nil {
		return Code{}, err
	}
	return c, nil
}

// lerpGain interpolates between (r1, g1) and (r2, g2) with the interpolation
// parameter clamped to [0, 1], so rates outside the pair hold the end value.
func lerpGain(rate, r1, g1, r2, g2 float64) float64 {
	if math.Abs(r2-r1) < 1e-10 {
		return g1
	}
	t := (rate - r1) / (r2 - r1)
	t = math.Max(0, math.Min(1, t))
	return g1 + t*(g2-g1)
}

// ldpcGain is the DVB-S2 rate/gain table. PiecewiseLinear holds the end
// values outside [1/2, 9/10].
var ldpcGain = mustFit(
	[]float64{0.5, 2.0 / 3.0, 0.75, 5.0 / 6.0, 0.9},
	[]float64{GainLDPCR12, GainLDPCR23, GainLDPCR34, GainLDPCR56, GainLDPCR910},
)

func mustFit(rates, gains []float64) *interp.PiecewiseLinear {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(rates, gains); err != nil {
		panic(err)
	}
	return &pl
}
