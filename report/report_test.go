package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/budget"
	"github.com/jrwynneiii/linkbudget/coding"
	"github.com/jrwynneiii/linkbudget/config"
	"github.com/jrwynneiii/linkbudget/geometry"
	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func kaBandLink() config.Link {
	return config.Link{
		Budget: budget.LinkBudget{
			Name:         "Ka-band LEO downlink",
			BandwidthHz:  36e6,
			Transmitter:  budget.Transmitter{OutputPowerDBm: 10.0, GainDB: 35.0, BandwidthHz: 36e6},
			Receiver:     budget.Receiver{GainDB: 40.0, TemperatureK: 290.0, NoiseFigureDB: 2.0, BandwidthHz: 36e6},
			PathLoss:     budget.PathLoss{FrequencyHz: 20e9, DistanceM: 550e3},
			FadeMarginDB: budget.FadeMargin(3.0),
		},
		ModCod: coding.DVBS2QPSK34(),
		Analysis: config.Analysis{
			TargetBER:            1e-5,
			InfoBitRateBps:       54e6,
			ImplementationLossDB: 1.0,
			Rolloff:              0.35,
			RequiredEVMPct:       8.0,
			MeasuredEVMPct:       5.0,
		},
		DistanceSource: config.DistanceExplicit,
	}
}

func TestEvaluateKaBand(t *testing.T) {
	link := kaBandLink()
	r, err := Evaluate(link)
	require.NoError(t, err)

	assert.Equal(t, "QPSK + LDPC (R=0.75)", r.ModCod)
	assert.Equal(t, 45.0, r.EIRPDBm)
	assert.InDelta(t, r.FreeSpaceLossDB+3.0, r.PathLossDB, 1e-12)
	assert.Greater(t, r.PathLossDB, 170.0)
	assert.Equal(t, link.Budget.SNRDB(), r.SNRDB)
	assert.InDelta(t, 54e6, r.ThroughputBps, 1.0)
	assert.Equal(t, 1.5, r.SpectralEfficiency)

	require.NotNil(t, r.MarginDB)
	require.NotNil(t, r.MarginCodedDB)
	assert.Greater(t, *r.MarginCodedDB, *r.MarginDB)
	assert.Less(t, r.BERCoded, r.BERUncoded)

	require.NotNil(t, r.Sensitivity)
	require.NotNil(t, r.Sensitivity.MatchedFilterDBm)
	require.NotNil(t, r.Sensitivity.BandpassDBm)
	assert.InDelta(t, 1.303, *r.Sensitivity.BandpassDBm-*r.Sensitivity.MatchedFilterDBm, 0.001)
	require.NotNil(t, r.Sensitivity.CodedDBm)
	assert.InDelta(t, 6.5, *r.Sensitivity.MatchedFilterDBm-*r.Sensitivity.CodedDBm, 1e-9)

	require.NotNil(t, r.EVM.Pass)
	assert.True(t, *r.EVM.Pass)
	assert.Nil(t, r.Tracking)
}

func TestEvaluateWithoutOptionalInputs(t *testing.T) {
	link := kaBandLink()
	link.Analysis.InfoBitRateBps = 0
	link.Analysis.MeasuredEVMPct = 0
	link.Budget.FadeMarginDB = nil

	r, err := Evaluate(link)
	require.NoError(t, err)
	assert.Nil(t, r.Sensitivity)
	assert.Nil(t, r.EVM.Pass)
	assert.Nil(t, r.FadeMarginDB)
	assert.Equal(t, r.FreeSpaceLossDB, r.PathLossDB)
}

func TestEvaluateUnreachableTarget(t *testing.T) {
	link := kaBandLink()
	link.Analysis.TargetBER = 0.4

	r, err := Evaluate(link)
	require.NoError(t, err)
	assert.Nil(t, r.RequiredEbNoDB)
	assert.Nil(t, r.MarginDB)
	assert.Nil(t, r.MarginCodedDB)
	require.NotNil(t, r.Sensitivity)
	assert.Nil(t, r.Sensitivity.MatchedFilterDBm)
	assert.Nil(t, r.Sensitivity.CodedDBm)
}

func TestEvaluateInvalidTarget(t *testing.T) {
	link := kaBandLink()
	link.Analysis.TargetBER = 0
	_, err := Evaluate(link)
	assert.True(t, errors.Is(err, ber.ErrInvalidTarget))
}

const zeroAnalysisHCL = `
link {
  name         = "zero analysis"
  bandwidth_hz = 36000000
}

transmitter {
  output_power_dbm = 10
  gain_db          = 35
}

receiver {
  gain_db         = 40
  noise_figure_db = 2
}

path {
  frequency_hz = 20000000000
  distance_m   = 550000
}

modcod {
  modulation = "qpsk"
}

analysis {
  target_ber        = 0
  rolloff           = 0
  info_bit_rate_bps = 1000000
}
`

func buildFromHCL(t *testing.T, body string) config.Link {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	k, err := config.Load(path)
	require.NoError(t, err)
	s, err := config.Unmarshal(k)
	require.NoError(t, err)
	link, err := s.Build()
	require.NoError(t, err)
	return link
}

func TestEvaluateConfiguredZeroTarget(t *testing.T) {
	link := buildFromHCL(t, zeroAnalysisHCL)
	_, err := Evaluate(link)
	assert.True(t, errors.Is(err, ber.ErrInvalidTarget))
}

func TestEvaluateConfiguredZeroRolloff(t *testing.T) {
	link := buildFromHCL(t, zeroAnalysisHCL)
	link.Analysis.TargetBER = 1e-5
	r, err := Evaluate(link)
	require.NoError(t, err)

	require.NotNil(t, r.Sensitivity)
	assert.Equal(t, 0.0, r.Sensitivity.Rolloff)
	require.NotNil(t, r.Sensitivity.MatchedFilterDBm)
	require.NotNil(t, r.Sensitivity.BandpassDBm)
	assert.Equal(t, *r.Sensitivity.MatchedFilterDBm, *r.Sensitivity.BandpassDBm)
}

func TestWarnings(t *testing.T) {
	r, err := Evaluate(kaBandLink())
	require.NoError(t, err)
	assert.Empty(t, r.Warnings())

	link := kaBandLink()
	link.Analysis.TargetBER = 0.4
	r, err = Evaluate(link)
	require.NoError(t, err)
	require.Len(t, r.Warnings(), 1)
	assert.Contains(t, r.Warnings()[0], "did not converge")

	link = kaBandLink()
	link.Look = &geometry.Look{
		Time:         time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC),
		ElevationDeg: -12,
		RangeM:       550e3,
	}
	r, err = Evaluate(link)
	require.NoError(t, err)
	require.Len(t, r.Warnings(), 1)
	assert.Contains(t, r.Warnings()[0], "below the horizon")
}

func TestEvaluateTracking(t *testing.T) {
	link := kaBandLink()
	link.Look = &geometry.Look{
		Time:         time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC),
		ElevationDeg: 35,
		RangeM:       550e3,
		RangeRateMS:  7000,
	}
	r, err := Evaluate(link)
	require.NoError(t, err)
	require.NotNil(t, r.Tracking)
	assert.True(t, r.Tracking.Visible)
	assert.Equal(t, "2021-10-02T00:00:00Z", r.Tracking.Time)
	assert.InDelta(t, geometry.DopplerShiftHz(20e9, 7000), r.Tracking.DopplerShiftHz, 1e-9)
}

func TestWriteText(t *testing.T) {
	r, err := Evaluate(kaBandLink())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	for _, want := range []string{"[Link]", "[Performance]", "[Sensitivity]", "[EVM]", "Ka-band LEO downlink", "54 Mbps", "PASS"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "[Tracking]")
}

func TestWriteYAML(t *testing.T) {
	r, err := Evaluate(kaBandLink())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, r))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Ka-band LEO downlink", decoded["name"])
	assert.Contains(t, decoded, "margin_coded_db")
	assert.NotContains(t, decoded, "tracking")
	assert.True(t, strings.HasPrefix(buf.String(), "name: "))
}

func TestCurve(t *testing.T) {
	points := Curve(coding.DVBS2QPSK12(), 0, 10, 5)
	require.Len(t, points, 5)
	assert.Equal(t, 0.0, points[0].EbNoDB)
	assert.Equal(t, 2.5, points[1].EbNoDB)
	assert.Equal(t, 10.0, points[4].EbNoDB)
	for i, p := range points {
		assert.Equal(t, ber.FromDB(p.EbNoDB, modulation.QPSK()), p.BERUncoded)
		assert.Less(t, p.BERCoded, p.BERUncoded)
		if i > 0 {
			assert.Less(t, p.BERUncoded, points[i-1].BERUncoded)
		}
	}

	lo, hi := Range(points)
	assert.Equal(t, points[0].BERUncoded, hi)
	assert.Greater(t, lo, 0.0)
	assert.LessOrEqual(t, lo, points[4].BERCoded)

	uncoded, coded := Log10Series(points, -12)
	assert.InDelta(t, math.Log10(points[0].BERUncoded), uncoded[0], 1e-12)
	for _, v := range coded {
		assert.GreaterOrEqual(t, v, -12.0)
	}
}

func TestRangeEmpty(t *testing.T) {
	lo, hi := Range(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestModCodTable(t *testing.T) {
	rows, err := ModCodTable(1e-5, 36e6)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "QPSK 1/2", rows[0].Name)
	require.NotNil(t, rows[0].RequiredEbNoDB)
	uncoded, err := ber.RequiredEbNoDB(1e-5, modulation.QPSK())
	require.NoError(t, err)
	assert.InDelta(t, uncoded-8.0, *rows[0].RequiredEbNoDB, 1e-9)
	assert.InDelta(t, 54e6, rows[1].ThroughputBps, 1.0)

	_, err = ModCodTable(-1, 36e6)
	assert.True(t, errors.Is(err, ber.ErrInvalidTarget))
}
