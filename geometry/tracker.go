package geometry

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/jrwynneiii/linkbudget/units"
	"github.com/pkg/errors"
)

const tleLineLength = 69

var ErrInvalidTLE = errors.New("invalid TLE")

// Station is a ground station on the WGS72 ellipsoid.
type Station struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeM    float64
}

// Look is where a tracked satellite appears from the station at one instant.
// RangeRateMS is positive while the satellite approaches, matching the
// sign convention of DopplerShiftHz.
type Look struct {
	Time         time.Time
	AzimuthDeg   float64
	ElevationDeg float64
	RangeM       float64
	RangeRateMS  float64
}

// Visible reports whether the satellite is above the horizon.
func (l Look) Visible() bool {
	return l.ElevationDeg > 0
}

// Tracker propagates a TLE with SGP4 and turns the result into look angles
// from a fixed station.
type Tracker struct {
	sat     satellite.Satellite
	station Station
}

func NewTracker(line1, line2 string, station Station) (*Tracker, error) {
	line1, line2 = strings.TrimSpace(line1), strings.TrimSpace(line2)
	if len(line1) != tleLineLength || !strings.HasPrefix(line1, "1 ") {
		return nil, errors.Wrapf(ErrInvalidTLE, "line 1 %q", line1)
	}
	if len(line2) != tleLineLength || !strings.HasPrefix(line2, "2 ") {
		return nil, errors.Wrapf(ErrInvalidTLE, "line 2 %q", line2)
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	log.Debugf("Loaded TLE for catalog number %s", strings.TrimSpace(line1[2:7]))
	return &Tracker{sat: sat, station: station}, nil
}

// LookAt propagates to at and returns the look angles. The range rate is
// taken from the range one second later.
func (t *Tracker) LookAt(at time.Time) (Look, error) {
	at = at.UTC()
	az, el, rng, err := t.lookAngles(at)
	if err != nil {
		return Look{}, err
	}
	_, _, next, err := t.lookAngles(at.Add(time.Second))
	if err != nil {
		return Look{}, err
	}
	look := Look{
		Time:         at,
		AzimuthDeg:   units.RadiansToDegrees(az),
		ElevationDeg: units.RadiansToDegrees(el),
		RangeM:       rng,
		RangeRateMS:  rng - next,
	}
	log.Debugf("Look at %s: az %.2f el %.2f range %.1f km", at.Format(time.RFC3339), look.AzimuthDeg, look.ElevationDeg, look.RangeM/1000.0)
	return look, nil
}

// RangeAt is the station-to-satellite distance in metres.
func (t *Tracker) RangeAt(at time.Time) (float64, error) {
	_, _, rng, err := t.lookAngles(at.UTC())
	return rng, err
}

// lookAngles returns azimuth and elevation in radians and range in metres.
// go-satellite works in kilometres.
func (t *Tracker) lookAngles(at time.Time) (float64, float64, float64, error) {
	year, month, day := at.Date()
	hour, minute, sec := at.Clock()

	posECI, _ := satellite.Propagate(t.sat, year, int(month), day, hour, minute, sec)
	if math.IsNaN(posECI.X) || math.IsNaN(posECI.Y) || math.IsNaN(posECI.Z) {
		return 0, 0, 0, errors.Errorf("SGP4 propagation failed at %s", at.Format(time.RFC3339))
	}
	jd := satellite.JDay(year, int(month), day, hour, minute, sec)
	obs := satellite.LatLong{
		Latitude:  units.DegreesToRadians(t.station.LatitudeDeg),
		Longitude: units.DegreesToRadians(t.station.LongitudeDeg),
	}
	la := satellite.ECIToLookAngles(posECI, obs, t.station.AltitudeM/1000.0, jd)

	const kmToM = 1000.0
	return la.Az, la.El, la.Rg * kmToM, nil
}
