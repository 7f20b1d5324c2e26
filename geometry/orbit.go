// Package geometry supplies the distance and velocity a link budget needs:
// spherical-Earth slant range, circular orbits, Doppler, and SGP4 tracking
// of a TLE from a ground station.
package geometry

import (
	"math"

	"github.com/jrwynneiii/linkbudget/units"
)

// SlantRange is the distance from a ground station to a satellite at
// Altitude above a spherical body, seen at ElevationDeg. Distances in metres.
type SlantRange struct {
	ElevationDeg float64
	Altitude     float64
	BodyRadius   float64
}

// EarthSlantRange is a SlantRange over the mean Earth radius.
func EarthSlantRange(elevationDeg, altitudeM float64) SlantRange {
	return SlantRange{ElevationDeg: elevationDeg, Altitude: altitudeM, BodyRadius: units.EarthRadiusM}
}

// Meters returns R*(sqrt((r/R)^2 - cos^2 e) - sin e) with r = R + altitude.
func (s SlantRange) Meters() float64 {
	e := units.DegreesToRadians(s.ElevationDeg)
	ratio := (s.Altitude + s.BodyRadius) / s.BodyRadius
	inner := math.Sqrt(ratio*ratio - math.Cos(e)*math.Cos(e))
	return s.BodyRadius * (inner - math.Sin(e))
}

// CircularOrbitSpeed is sqrt(GM/r) in m/s, r measured from the body centre.
func CircularOrbitSpeed(bodyMassKg, radiusM float64) float64 {
	return math.Sqrt(units.GravitationalConstant * bodyMassKg / radiusM)
}

// CircularOrbitPeriod is 2*pi*sqrt(r^3/GM) in seconds.
func CircularOrbitPeriod(bodyMassKg, radiusM float64) float64 {
	return 2.0 * math.Pi * math.Sqrt(math.Pow(radiusM, 3)/(units.GravitationalConstant*bodyMassKg))
}

// EarthOrbitSpeed is CircularOrbitSpeed at altitudeM above the mean Earth radius.
func EarthOrbitSpeed(altitudeM float64) float64 {
	return CircularOrbitSpeed(units.EarthMassKg, units.EarthRadiusM+altitudeM)
}

func EarthOrbitPeriod(altitudeM float64) float64 {
	return CircularOrbitPeriod(units.EarthMassKg, units.EarthRadiusM+altitudeM)
}
