package geometry

import (
	"math"

	"github.com/jrwynneiii/linkbudget/units"
)

// DopplerShiftHz is f*v/c. Positive velocity means the transmitter is
// approaching.
func DopplerShiftHz(frequencyHz, radialVelocityMS float64) float64 {
	return frequencyHz * radialVelocityMS / units.SpeedOfLight
}

func DopplerReceivedFrequency(frequencyHz, radialVelocityMS float64) float64 {
	return frequencyHz + DopplerShiftHz(frequencyHz, radialVelocityMS)
}

// MaxRadialVelocity is the line-of-sight component of a circular orbit's
// speed at the given elevation: the full speed on the horizon, zero overhead.
func MaxRadialVelocity(orbitalSpeedMS, elevationDeg float64) float64 {
	return orbitalSpeedMS * math.Cos(units.DegreesToRadians(elevationDeg))
}
