// Package units holds the physical constants shared by every calculation in
// the module, plus the dB/linear and power/noise conversions built on them.
package units

const (
	SpeedOfLight = 299792458.0 // m/s
	Boltzmann    = 1.38e-23    // J/K

	// ReferenceTemperatureK is T0, the temperature noise figures are quoted against.
	ReferenceTemperatureK = 290.0

	// ThermalNoiseDensityDbmHz is kT0 rounded the way link budgets quote it.
	ThermalNoiseDensityDbmHz = -174.0

	// Body constants for the circular-orbit and slant-range helpers.
	GravitationalConstant = 6.6743e-11 // m^3 kg^-1 s^-2
	EarthMassKg           = 5.972e24
	EarthRadiusM          = 6371000.0
)
