package units

import "math"

// NoisePowerWatts is the thermal noise power k*T*B.
func NoisePowerWatts(temperatureK, bandwidthHz float64) float64 {
	return Boltzmann * temperatureK * bandwidthHz
}

func NoiseFactorFromFigure(noiseFigureDb float64) float64 {
	return math.Pow(10, noiseFigureDb/10.0)
}

func NoiseFigureFromFactor(noiseFactor float64) float64 {
	return 10.0 * math.Log10(noiseFactor)
}

// NoiseTemperatureFromFactor returns the equivalent noise temperature T0*(F-1).
func NoiseTemperatureFromFactor(noiseFactor float64) float64 {
	return ReferenceTemperatureK * (noiseFactor - 1.0)
}

func NoiseFactorFromTemperature(noiseTemperatureK float64) float64 {
	return 1.0 + noiseTemperatureK/ReferenceTemperatureK
}

func NoiseTemperatureFromFigure(noiseFigureDb float64) float64 {
	return NoiseTemperatureFromFactor(NoiseFactorFromFigure(noiseFigureDb))
}

func NoiseFigureFromTemperature(noiseTemperatureK float64) float64 {
	return NoiseFigureFromFactor(NoiseFactorFromTemperature(noiseTemperatureK))
}
