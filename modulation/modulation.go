// Package modulation describes the digital modulation families a link can
// carry and the symbol-rate and bandwidth relationships that follow from them.
package modulation

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidOrder = errors.New("invalid modulation order")

type Scheme int

const (
	SchemeBPSK Scheme = iota
	SchemeQPSK
	SchemeMPSK
	SchemeMQAM
	SchemeMSK
)

// Modulation is a closed set of schemes. BPSK, QPSK and MSK have a fixed
// order; M-PSK and M-QAM carry theirs explicitly. The zero value is BPSK.
type Modulation struct {
	Scheme Scheme
	m      int
}

func BPSK() Modulation { return Modulation{Scheme: SchemeBPSK} }
func QPSK() Modulation { return Modulation{Scheme: SchemeQPSK} }
func MSK() Modulation { return Modulation{Scheme: SchemeMSK} }

// MPSK returns an M-ary PSK modulation. The order is not checked here, call
// Validate before handing user input to the BER engine.
func MPSK(m int) Modulation { return Modulation{Scheme: SchemeMPSK, m: m} }

// MQAM returns a rectangular M-ary QAM modulation.
func MQAM(m int) Modulation { return Modulation{Scheme: SchemeMQAM, m: m} }

// Order returns M.
func (mod Modulation) Order() int {
	switch mod.Scheme {
	case SchemeQPSK:
		return 4
	case SchemeMPSK, SchemeMQAM:
		return mod.m
	default:
		return 2
	}
}

// BitsPerSymbol returns k = log2(M). Non power-of-two orders give a fractional k.
func (mod Modulation) BitsPerSymbol() float64 {
	return math.Log2(float64(mod.Order()))
}

// SymbolRate returns Rs = (Rb / R) / k for an information bit rate Rb and code rate R.
func (mod Modulation) SymbolRate(infoBitRateBps, codeRate float64) float64 {
	codedBitRate := infoBitRateBps / codeRate
	return codedBitRate / mod.BitsPerSymbol()
}

// OccupiedBandwidth is the raised-cosine bandwidth Rs*(1+alpha).
func (mod Modulation) OccupiedBandwidth(symbolRate, rolloff float64) float64 {
	return symbolRate * (1.0 + rolloff)
}

// NullBandwidth is the null-to-null bandwidth without pulse shaping.
func (mod Modulation) NullBandwidth(symbolRate float64) float64 {
	if mod.Scheme == SchemeMSK {
		return 1.5 * symbolRate
	}
	return 2.0 * symbolRate
}

// SpectralEfficiency is k*R in bits/s/Hz, ignoring roll-off.
func (mod Modulation) SpectralEfficiency(codeRate float64) float64 {
	return mod.BitsPerSymbol() * codeRate
}

// Validate rejects orders below 2 and orders that are not a power of two.
func (mod Modulation) Validate() error {
	m := mod.Order()
	if m < 2 {
		return errors.Wrapf(ErrInvalidOrder, "%s: order %d is below 2", mod, m)
	}
	if bits.OnesCount(uint(m)) != 1 {
		return errors.Wrapf(ErrInvalidOrder, "%s: order %d is not a power of two", mod, m)
	}
	return nil
}

func (mod Modulation) String() string {
	switch mod.Scheme {
	case SchemeBPSK:
		return "BPSK"
	case SchemeQPSK:
		return "QPSK"
	case SchemeMPSK:
		return fmt.Sprintf("%d-PSK", mod.m)
	case SchemeMQAM:
		return fmt.Sprintf("%d-QAM", mod.m)
	case SchemeMSK:
		return "MSK"
	}
	return fmt.Sprintf("Scheme(%d)", int(mod.Scheme))
}

// Parse turns a name such as "qpsk", "8psk", "16-QAM" or "mqam" into a
// Modulation. A numeric prefix in the name wins over order; order is only
// consulted for the bare "psk"/"mpsk"/"qam"/"mqam" forms. The result is validated.
func Parse(name string, order int) (Modulation, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", "")

	prefix := 0
	for prefix < len(s) && s[prefix] >= '0' && s[prefix] <= '9' {
		prefix++
	}
	if prefix > 0 {
		n, err := strconv.Atoi(s[:prefix])
		if err != nil {
			return Modulation{}, errors.Wrapf(err, "parsing modulation %q", name)
		}
		order = n
		s = s[prefix:]
	}

	var mod Modulation
	switch s {
	case "bpsk":
		mod = BPSK()
	case "qpsk":
		mod = QPSK()
	case "msk":
		mod = MSK()
	case "psk", "mpsk":
		mod = MPSK(order)
	case "qam", "mqam":
		mod = MQAM(order)
	default:
		return Modulation{}, errors.Errorf("unknown modulation %q", name)
	}
	if err := mod.Validate(); err != nil {
		return Modulation{}, err
	}
	return mod, nil
}
