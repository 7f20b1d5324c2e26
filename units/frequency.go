package units

import "math"

// Wavelength returns the free-space wavelength in metres for a frequency in Hz.
func Wavelength(frequencyHz float64) float64 {
	return SpeedOfLight / frequencyHz
}

func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
