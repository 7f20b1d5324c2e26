// Package report evaluates a configured link once and keeps the results as a
// flat snapshot that can be printed, encoded or shown in the dashboard.
package report

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/config"
	"github.com/jrwynneiii/linkbudget/evm"
	"github.com/jrwynneiii/linkbudget/geometry"
	"github.com/jrwynneiii/linkbudget/sensitivity"
	"github.com/pkg/errors"
)

// Report is one evaluation of a link. Pointer fields are absent when the
// required Eb/No search did not converge or the input was not configured.
type Report struct {
	Name           string  `yaml:"name"`
	ModCod         string  `yaml:"modcod"`
	FrequencyHz    float64 `yaml:"frequency_hz"`
	DistanceM      float64 `yaml:"distance_m"`
	DistanceSource string  `yaml:"distance_source"`
	BandwidthHz    float64 `yaml:"bandwidth_hz"`

	EIRPDBm         float64  `yaml:"eirp_dbm"`
	FreeSpaceLossDB float64  `yaml:"free_space_loss_db"`
	FadeMarginDB    *float64 `yaml:"fade_margin_db,omitempty"`
	PathLossDB      float64  `yaml:"path_loss_db"`
	PFDDBWPerM2     float64  `yaml:"pfd_dbw_per_m2"`
	PinDBm          float64  `yaml:"pin_dbm"`

	NoiseFloorDBm float64 `yaml:"noise_floor_dbm"`
	NoisePowerDBm float64 `yaml:"noise_power_dbm"`
	GOverTDB      float64 `yaml:"g_over_t_db"`

	SNRDB       float64 `yaml:"snr_db"`
	COverNoDBHz float64 `yaml:"c_over_no_dbhz"`
	EbNoDB      float64 `yaml:"eb_no_db"`
	EbNoCodedDB float64 `yaml:"eb_no_coded_db"`

	TargetBER           float64  `yaml:"target_ber"`
	BERUncoded          float64  `yaml:"ber_uncoded"`
	BERCoded            float64  `yaml:"ber_coded"`
	RequiredEbNoDB      *float64 `yaml:"required_eb_no_db,omitempty"`
	RequiredEbNoCodedDB *float64 `yaml:"required_eb_no_coded_db,omitempty"`
	MarginDB            *float64 `yaml:"margin_db,omitempty"`
	MarginCodedDB       *float64 `yaml:"margin_coded_db,omitempty"`

	SpectralEfficiency float64 `yaml:"spectral_efficiency"`
	ThroughputBps      float64 `yaml:"throughput_bps"`
	ShannonBps         float64 `yaml:"shannon_bps"`

	Sensitivity *SensitivityReport `yaml:"sensitivity,omitempty"`
	EVM         EVMReport          `yaml:"evm"`
	Tracking    *TrackingReport    `yaml:"tracking,omitempty"`
}

type SensitivityReport struct {
	InfoBitRateBps       float64  `yaml:"info_bit_rate_bps"`
	ImplementationLossDB float64  `yaml:"implementation_loss_db"`
	Rolloff              float64  `yaml:"rolloff"`
	MatchedFilterDBm     *float64 `yaml:"matched_filter_dbm,omitempty"`
	BandpassDBm          *float64 `yaml:"bandpass_dbm,omitempty"`
	CodedDBm             *float64 `yaml:"coded_dbm,omitempty"`
	MarginDB             *float64 `yaml:"margin_db,omitempty"`
}

type EVMReport struct {
	LinkEVMPct  float64  `yaml:"link_evm_pct"`
	RequiredPct float64  `yaml:"required_pct,omitempty"`
	MeasuredPct float64  `yaml:"measured_pct,omitempty"`
	Pass        *bool    `yaml:"pass,omitempty"`
	MarginDB    *float64 `yaml:"margin_db,omitempty"`
}

type TrackingReport struct {
	Time           string  `yaml:"time"`
	AzimuthDeg     float64 `yaml:"azimuth_deg"`
	ElevationDeg   float64 `yaml:"elevation_deg"`
	RangeRateMS    float64 `yaml:"range_rate_m_s"`
	DopplerShiftHz float64 `yaml:"doppler_shift_hz"`
	Visible        bool    `yaml:"visible"`
}

// Evaluate runs every calculation for link. An invalid target BER is an
// error; a search that does not converge only leaves the dependent fields
// empty.
func Evaluate(link config.Link) (Report, error) {
	lb := link.Budget
	cm := link.ModCod
	a := link.Analysis

	r := Report{
		Name:           lb.Name,
		ModCod:         cm.String(),
		FrequencyHz:    lb.PathLoss.FrequencyHz,
		DistanceM:      lb.PathLoss.DistanceM,
		DistanceSource: string(link.DistanceSource),
		BandwidthHz:    lb.BandwidthHz,

		EIRPDBm:         lb.Transmitter.EIRPDBm(),
		FreeSpaceLossDB: lb.PathLoss.CalculateDB(),
		FadeMarginDB:    lb.FadeMarginDB,
		PathLossDB:      lb.PathLossDB(),
		PFDDBWPerM2:     lb.PFDDBWPerM2(),
		PinDBm:          lb.PinAtReceiverDBm(),

		NoiseFloorDBm: lb.Receiver.NoiseFloorDBm(),
		NoisePowerDBm: lb.Receiver.NoisePowerDBm(),
		GOverTDB:      lb.Receiver.GOverTDB(),

		SNRDB:       lb.SNRDB(),
		COverNoDBHz: lb.COverNo(),
		EbNoDB:      lb.EbNoDB(cm.Modulation),
		EbNoCodedDB: lb.EbNoCodedDB(cm),

		TargetBER:  a.TargetBER,
		BERUncoded: lb.BER(cm.Modulation),
		BERCoded:   lb.BERCoded(cm),

		SpectralEfficiency: cm.SpectralEfficiency(),
		ThroughputBps:      lb.ThroughputBps(cm),
		ShannonBps:         lb.PHYRate().Bps(),
	}

	var err error
	if r.RequiredEbNoDB, err = absent(ber.RequiredEbNoDB(a.TargetBER, cm.Modulation)); err != nil {
		return Report{}, err
	}
	if r.RequiredEbNoCodedDB, err = absent(cm.RequiredEbNoDB(a.TargetBER)); err != nil {
		return Report{}, err
	}
	if r.RequiredEbNoDB != nil {
		r.MarginDB = ptr(r.EbNoDB - *r.RequiredEbNoDB)
	}
	if r.RequiredEbNoCodedDB != nil {
		r.MarginCodedDB = ptr(r.EbNoCodedDB - *r.RequiredEbNoCodedDB)
	}

	if a.InfoBitRateBps > 0 {
		if r.Sensitivity, err = evaluateSensitivity(link, r); err != nil {
			return Report{}, err
		}
	}

	r.EVM.LinkEVMPct = evm.PercentFromSNRDB(r.SNRDB)
	if a.RequiredEVMPct > 0 && a.MeasuredEVMPct > 0 {
		pass, margin := evm.Margin(a.MeasuredEVMPct, a.RequiredEVMPct)
		r.EVM.RequiredPct = a.RequiredEVMPct
		r.EVM.MeasuredPct = a.MeasuredEVMPct
		r.EVM.Pass = &pass
		r.EVM.MarginDB = &margin
	}

	if link.Look != nil {
		r.Tracking = evaluateTracking(*link.Look, r.FrequencyHz)
	}

	log.Debugf("Evaluated %s: SNR %.2f dB, coded BER %.3g", r.Name, r.SNRDB, r.BERCoded)
	return r, nil
}

func evaluateSensitivity(link config.Link, r Report) (*SensitivityReport, error) {
	a := link.Analysis
	cm := link.ModCod
	nf := link.Budget.Receiver.NoiseFigureDB

	s := &SensitivityReport{
		InfoBitRateBps:       a.InfoBitRateBps,
		ImplementationLossDB: a.ImplementationLossDB,
		Rolloff:              a.Rolloff,
	}
	var err error
	s.MatchedFilterDBm, err = absent(sensitivity.MatchedFilterDBm(cm.Modulation, a.InfoBitRateBps, cm.CodeRate(), nf, a.TargetBER, a.ImplementationLossDB))
	if err != nil {
		return nil, err
	}
	s.BandpassDBm, err = absent(sensitivity.BandpassDBm(cm.Modulation, a.InfoBitRateBps, cm.CodeRate(), nf, a.TargetBER, a.ImplementationLossDB, a.Rolloff))
	if err != nil {
		return nil, err
	}
	if r.RequiredEbNoCodedDB != nil {
		coded := sensitivity.FromEbNoDBm(a.InfoBitRateBps, nf, *r.RequiredEbNoCodedDB, a.ImplementationLossDB)
		s.CodedDBm = &coded
		s.MarginDB = ptr(r.PinDBm - coded)
	}
	return s, nil
}

func evaluateTracking(look geometry.Look, frequencyHz float64) *TrackingReport {
	return &TrackingReport{
		Time:           look.Time.Format(time.RFC3339),
		AzimuthDeg:     look.AzimuthDeg,
		ElevationDeg:   look.ElevationDeg,
		RangeRateMS:    look.RangeRateMS,
		DopplerShiftHz: geometry.DopplerShiftHz(frequencyHz, look.RangeRateMS),
		Visible:        look.Visible(),
	}
}

// absent turns a non-converged search into a nil result and passes any other
// error through.
func absent(v float64, err error) (*float64, error) {
	if err == nil {
		return &v, nil
	}
	if errors.Is(err, ber.ErrNotConverged) {
		log.Debugf("%v", err)
		return nil, nil
	}
	return nil, err
}

// Warnings lists the conditions in r a user should hear about: a required
// Eb/No search that did not converge and a satellite below the horizon.
func (r Report) Warnings() []string {
	var out []string
	if r.RequiredEbNoDB == nil || r.RequiredEbNoCodedDB == nil {
		out = append(out, fmt.Sprintf("Required Eb/No for %s at BER %g did not converge, margins are unavailable", r.ModCod, r.TargetBER))
	}
	if r.Tracking != nil && !r.Tracking.Visible {
		out = append(out, fmt.Sprintf("Satellite is below the horizon at %s (elevation %.1f deg)", r.Tracking.Time, r.Tracking.ElevationDeg))
	}
	return out
}

func ptr(v float64) *float64 {
	return &v
}
