// Package budget composes a transmitter, a free-space path and a receiver
// into a link budget, and derives SNR, BER, margin and throughput from it.
package budget

import (
	"math"

	"github.com/jrwynneiii/linkbudget/units"
)

type Transmitter struct {
	OutputPowerDBm float64 `yaml:"output_power_dbm"`
	GainDB         float64 `yaml:"gain_db"`
	BandwidthHz    float64 `yaml:"bandwidth_hz"`
}

// EIRPDBm is output power plus antenna gain. Pointing and feed losses are
// expected to be folded into GainDB.
func (tx Transmitter) EIRPDBm() float64 {
	return tx.OutputPowerDBm + tx.GainDB
}

type Receiver struct {
	GainDB        float64 `yaml:"gain_db"`
	TemperatureK  float64 `yaml:"temperature_k"`
	NoiseFigureDB float64 `yaml:"noise_figure_db"`
	BandwidthHz   float64 `yaml:"bandwidth_hz"`
}

// NoiseFloorDBm is kTB at the receiver temperature, before the noise figure.
func (rx Receiver) NoiseFloorDBm() float64 {
	return units.WattsToDbm(units.NoisePowerWatts(rx.TemperatureK, rx.BandwidthHz))
}

// NoisePowerDBm is the noise floor plus the noise figure.
func (rx Receiver) NoisePowerDBm() float64 {
	return rx.NoiseFloorDBm() + rx.NoiseFigureDB
}

func (rx Receiver) SNRDB(inputPowerDBm float64) float64 {
	return inputPowerDBm - rx.NoisePowerDBm()
}

// GOverTDB is the figure of merit G/T in dB/K.
func (rx Receiver) GOverTDB() float64 {
	return rx.GainDB - 10.0*math.Log10(rx.TemperatureK)
}

// PathLoss is the free-space loss between isotropic antennas.
type PathLoss struct {
	FrequencyHz float64 `yaml:"frequency_hz"`
	DistanceM   float64 `yaml:"distance_m"`
}

// CalculateDB returns 20log10(4*pi*d/lambda).
func (p PathLoss) CalculateDB() float64 {
	wavelength := units.Wavelength(p.FrequencyHz)
	return 20.0 * math.Log10(4.0*math.Pi*p.DistanceM/wavelength)
}
