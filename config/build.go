package config

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jrwynneiii/linkbudget/budget"
	"github.com/jrwynneiii/linkbudget/coding"
	"github.com/jrwynneiii/linkbudget/geometry"
	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/jrwynneiii/linkbudget/units"
	"github.com/pkg/errors"
)

var (
	ErrMissingKey        = errors.New("missing config key")
	ErrUnknownModulation = errors.New("unknown modulation")
	ErrUnknownFEC        = errors.New("unknown FEC")
)

const (
	defaultTargetBER    = 1e-5
	defaultRolloff      = 0.35
	defaultRefreshMs    = 500
	defaultMarginWarnDB = 3.0
	defaultMarginCritDB = 0.0
)

// DistanceSource records which part of the path section produced the distance.
type DistanceSource string

const (
	DistanceExplicit   DistanceSource = "distance_m"
	DistanceTLE        DistanceSource = "tle"
	DistanceSlantRange DistanceSource = "slant_range"
)

// Analysis is the analysis section with defaults applied.
type Analysis struct {
	TargetBER            float64
	InfoBitRateBps       float64
	ImplementationLossDB float64
	Rolloff              float64
	RequiredEVMPct       float64
	MeasuredEVMPct       float64
}

// Tui is the tui section with defaults applied.
type Tui struct {
	RefreshMs    int
	MarginWarnDB float64
	MarginCritDB float64
}

// Link is a scenario turned into core values, ready to evaluate.
type Link struct {
	Budget         budget.LinkBudget
	ModCod         coding.CodedModulation
	Analysis       Analysis
	Tui            Tui
	DistanceSource DistanceSource

	// Look is set when the distance came from a TLE.
	Look *geometry.Look
}

// Build fills defaults, validates and resolves the scenario.
func (s Scenario) Build() (Link, error) {
	s.applyDefaults()

	if s.Link.BandwidthHz <= 0 {
		return Link{}, errors.Wrap(ErrMissingKey, "link.bandwidth_hz")
	}
	if s.Path.FrequencyHz <= 0 {
		return Link{}, errors.Wrap(ErrMissingKey, "path.frequency_hz")
	}

	cm, err := s.ModCod.build()
	if err != nil {
		return Link{}, err
	}

	link := Link{
		ModCod:   cm,
		Analysis: s.Analysis.resolve(),
		Tui:      s.Tui.resolve(),
		Budget: budget.LinkBudget{
			Name:        s.Link.Name,
			BandwidthHz: s.Link.BandwidthHz,
			Transmitter: budget.Transmitter{
				OutputPowerDBm: s.Transmitter.OutputPowerDBm,
				GainDB:         s.Transmitter.GainDB,
				BandwidthHz:    s.Transmitter.BandwidthHz,
			},
			Receiver: budget.Receiver{
				GainDB:        s.Receiver.GainDB,
				TemperatureK:  s.Receiver.TemperatureK,
				NoiseFigureDB: s.Receiver.NoiseFigureDB,
				BandwidthHz:   s.Receiver.BandwidthHz,
			},
			PathLoss:     budget.PathLoss{FrequencyHz: s.Path.FrequencyHz},
			FadeMarginDB: s.Link.FadeMarginDB,
		},
	}

	distance, source, look, err := s.Path.resolveDistance()
	if err != nil {
		return Link{}, err
	}
	link.Budget.PathLoss.DistanceM = distance
	link.DistanceSource = source
	link.Look = look
	log.Debugf("Resolved distance for %s from %s: %.1f m", s.Link.Name, source, distance)

	if err := link.Budget.Validate(); err != nil {
		return Link{}, err
	}
	return link, nil
}

func (s *Scenario) applyDefaults() {
	if s.Link.Name == "" {
		s.Link.Name = "link"
	}
	if s.Transmitter.BandwidthHz == 0 {
		s.Transmitter.BandwidthHz = s.Link.BandwidthHz
	}
	if s.Receiver.BandwidthHz == 0 {
		s.Receiver.BandwidthHz = s.Link.BandwidthHz
	}
	if s.Receiver.TemperatureK == 0 {
		s.Receiver.TemperatureK = units.ReferenceTemperatureK
	}
}

func (a AnalysisConf) resolve() Analysis {
	return Analysis{
		TargetBER:            orDefault(a.TargetBER, defaultTargetBER),
		InfoBitRateBps:       a.InfoBitRateBps,
		ImplementationLossDB: a.ImplementationLossDB,
		Rolloff:              orDefault(a.Rolloff, defaultRolloff),
		RequiredEVMPct:       a.RequiredEVMPct,
		MeasuredEVMPct:       a.MeasuredEVMPct,
	}
}

func (t TuiConf) resolve() Tui {
	refresh := t.RefreshMs
	if refresh <= 0 {
		refresh = defaultRefreshMs
	}
	return Tui{
		RefreshMs:    refresh,
		MarginWarnDB: orDefault(t.MarginWarnDB, defaultMarginWarnDB),
		MarginCritDB: orDefault(t.MarginCritDB, defaultMarginCritDB),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (m ModCodConf) build() (coding.CodedModulation, error) {
	if m.Preset != "" {
		cm, ok := coding.LookupPreset(m.Preset)
		if !ok {
			return coding.CodedModulation{}, errors.Wrapf(ErrUnknownModulation, "modcod.preset %q", m.Preset)
		}
		return cm, nil
	}
	if m.Modulation == "" {
		return coding.CodedModulation{}, errors.Wrap(ErrMissingKey, "modcod.modulation or modcod.preset")
	}

	mod, err := modulation.Parse(m.Modulation, m.Order)
	if err != nil {
		if errors.Is(err, modulation.ErrInvalidOrder) {
			return coding.CodedModulation{}, errors.Wrap(err, "modcod")
		}
		return coding.CodedModulation{}, errors.Wrapf(ErrUnknownModulation, "modcod.modulation %q", m.Modulation)
	}
	fec, err := coding.Parse(m.FEC, m.CodeRate, m.CodingGainDB)
	if err != nil {
		if errors.Is(err, coding.ErrInvalidRate) || errors.Is(err, coding.ErrNegativeGain) {
			return coding.CodedModulation{}, errors.Wrap(err, "modcod")
		}
		return coding.CodedModulation{}, errors.Wrapf(ErrUnknownFEC, "modcod.fec %q", m.FEC)
	}
	return coding.New(mod, fec), nil
}

func (p PathConf) resolveDistance() (float64, DistanceSource, *geometry.Look, error) {
	if p.DistanceM > 0 {
		return p.DistanceM, DistanceExplicit, nil, nil
	}

	if strings.TrimSpace(p.TLELine1) != "" || strings.TrimSpace(p.TLELine2) != "" {
		epoch := time.Now().UTC()
		if p.Epoch != "" {
			t, err := time.Parse(time.RFC3339, p.Epoch)
			if err != nil {
				return 0, "", nil, errors.Wrapf(err, "path.epoch %q", p.Epoch)
			}
			epoch = t
		}
		tracker, err := geometry.NewTracker(p.TLELine1, p.TLELine2, geometry.Station{
			LatitudeDeg:  p.StationLatDeg,
			LongitudeDeg: p.StationLonDeg,
			AltitudeM:    p.StationAltM,
		})
		if err != nil {
			return 0, "", nil, err
		}
		look, err := tracker.LookAt(epoch)
		if err != nil {
			return 0, "", nil, err
		}
		if !look.Visible() {
			log.Debugf("Satellite is below the horizon at %s (elevation %.1f deg)", epoch.Format(time.RFC3339), look.ElevationDeg)
		}
		return look.RangeM, DistanceTLE, &look, nil
	}

	if p.AltitudeM > 0 {
		return geometry.EarthSlantRange(p.ElevationDeg, p.AltitudeM).Meters(), DistanceSlantRange, nil, nil
	}
	return 0, "", nil, errors.Wrap(ErrMissingKey, "path.distance_m, path.tle_line1/tle_line2 or path.altitude_m")
}
