package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrwynneiii/linkbudget/coding"
	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kaBandHCL = `
link {
  name           = "Ka-band LEO downlink"
  bandwidth_hz   = 36000000
  fade_margin_db = 3
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
  fec        = "ldpc"
  code_rate  = 0.75
}

analysis {
  target_ber = 0.00001
}
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func loadScenario(t *testing.T, body string) Scenario {
	t.Helper()
	k, err := Load(writeConfig(t, body))
	require.NoError(t, err)
	s, err := Unmarshal(k)
	require.NoError(t, err)
	return s
}

func TestLoadHCL(t *testing.T) {
	k, err := Load(writeConfig(t, kaBandHCL))
	require.NoError(t, err)
	assert.Equal(t, "Ka-band LEO downlink", k.String("link.name"))
	assert.Equal(t, 2.0, k.Float64("receiver.noise_figure_db"))
	assert.Equal(t, "ldpc", k.String("modcod.fec"))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	assert.Error(t, err)
}

func TestBuildKaBand(t *testing.T) {
	link, err := loadScenario(t, kaBandHCL).Build()
	require.NoError(t, err)

	lb := link.Budget
	assert.Equal(t, "Ka-band LEO downlink", lb.Name)
	assert.Equal(t, 36e6, lb.BandwidthHz)
	assert.Equal(t, 36e6, lb.Receiver.BandwidthHz)
	assert.Equal(t, 36e6, lb.Transmitter.BandwidthHz)
	assert.Equal(t, 290.0, lb.Receiver.TemperatureK)
	assert.Equal(t, 45.0, lb.Transmitter.EIRPDBm())
	require.NotNil(t, lb.FadeMarginDB)
	assert.Equal(t, 3.0, *lb.FadeMarginDB)
	assert.Equal(t, 550e3, lb.PathLoss.DistanceM)
	assert.Equal(t, DistanceExplicit, link.DistanceSource)
	assert.Nil(t, link.Look)

	assert.Equal(t, coding.New(modulation.QPSK(), coding.LDPC(0.75)), link.ModCod)
	assert.Equal(t, 1e-5, link.Analysis.TargetBER)
	assert.Equal(t, 0.35, link.Analysis.Rolloff)
	assert.Equal(t, 500, link.Tui.RefreshMs)
	assert.Equal(t, 3.0, link.Tui.MarginWarnDB)
	assert.Equal(t, 0.0, link.Tui.MarginCritDB)
}

func TestBuildKeepsExplicitZeros(t *testing.T) {
	body := strings.Replace(kaBandHCL, "analysis {\n  target_ber = 0.00001\n}", `analysis {
  target_ber = 0
  rolloff    = 0
}

tui {
  margin_warn_db = 0
  margin_crit_db = -2
}`, 1)
	require.NotEqual(t, kaBandHCL, body)
	s := loadScenario(t, body)
	require.NotNil(t, s.Analysis.TargetBER)
	require.NotNil(t, s.Analysis.Rolloff)

	link, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 0.0, link.Analysis.TargetBER)
	assert.Equal(t, 0.0, link.Analysis.Rolloff)
	assert.Equal(t, 0.0, link.Tui.MarginWarnDB)
	assert.Equal(t, -2.0, link.Tui.MarginCritDB)
}

func TestBuildWithoutFadeMargin(t *testing.T) {
	s := loadScenario(t, kaBandHCL)
	s.Link.FadeMarginDB = nil
	link, err := s.Build()
	require.NoError(t, err)
	assert.Nil(t, link.Budget.FadeMarginDB)
}

func TestBuildPreset(t *testing.T) {
	s := loadScenario(t, kaBandHCL)
	s.ModCod = ModCodConf{Preset: "8PSK 2/3"}
	link, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, coding.DVBS28PSK23(), link.ModCod)

	s.ModCod = ModCodConf{Preset: "64APSK 9/10"}
	_, err = s.Build()
	assert.True(t, errors.Is(err, ErrUnknownModulation))
}

func TestBuildSlantRange(t *testing.T) {
	s := loadScenario(t, kaBandHCL)
	s.Path.DistanceM = 0
	s.Path.AltitudeM = 550e3
	s.Path.ElevationDeg = 35
	link, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, DistanceSlantRange, link.DistanceSource)
	assert.InDelta(t, 891531.9238, link.Budget.PathLoss.DistanceM, 1e-3)
}

func TestBuildTLE(t *testing.T) {
	s := loadScenario(t, kaBandHCL)
	s.Path.DistanceM = 0
	s.Path.AltitudeM = 550e3
	s.Path.TLELine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	s.Path.TLELine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
	s.Path.StationLatDeg = 38.8
	s.Path.StationLonDeg = -77.0
	s.Path.Epoch = "2021-10-02T00:00:00Z"

	link, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, DistanceTLE, link.DistanceSource)
	require.NotNil(t, link.Look)
	assert.Equal(t, link.Look.RangeM, link.Budget.PathLoss.DistanceM)

	s.Path.Epoch = "yesterday"
	_, err = s.Build()
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Scenario)
		want   error
	}{
		{"no bandwidth", func(s *Scenario) { s.Link.BandwidthHz = 0 }, ErrMissingKey},
		{"no frequency", func(s *Scenario) { s.Path.FrequencyHz = 0 }, ErrMissingKey},
		{"no distance", func(s *Scenario) { s.Path.DistanceM = 0 }, ErrMissingKey},
		{"no modulation", func(s *Scenario) { s.ModCod.Modulation = "" }, ErrMissingKey},
		{"unknown modulation", func(s *Scenario) { s.ModCod.Modulation = "ofdm" }, ErrUnknownModulation},
		{"bad order", func(s *Scenario) { s.ModCod.Modulation = "qam"; s.ModCod.Order = 12 }, modulation.ErrInvalidOrder},
		{"unknown fec", func(s *Scenario) { s.ModCod.FEC = "polar" }, ErrUnknownFEC},
		{"bad rate", func(s *Scenario) { s.ModCod.CodeRate = 1.5 }, coding.ErrInvalidRate},
	}
	for _, c := range cases {
		s := loadScenario(t, kaBandHCL)
		c.mutate(&s)
		_, err := s.Build()
		assert.True(t, errors.Is(err, c.want), "%s: %v", c.name, err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LINKBUDGET_LINK_BANDWIDTH_HZ", "36000000")
	t.Setenv("LINKBUDGET_LINK_NAME", "env-link")
	t.Setenv("LINKBUDGET_RECEIVER_NOISE_FIGURE_DB", "2.5")
	t.Setenv("LINKBUDGET_PATH_FREQUENCY_HZ", "20000000000")
	t.Setenv("LINKBUDGET_PATH_DISTANCE_M", "550000")
	t.Setenv("LINKBUDGET_MODCOD_PRESET", "QPSK 3/4")

	k := koanf.New(".")
	require.NoError(t, LoadEnv(k))
	assert.Equal(t, "2.5", k.String("receiver.noise_figure_db"))

	s, err := Unmarshal(k)
	require.NoError(t, err)
	assert.Equal(t, 2.5, s.Receiver.NoiseFigureDB)

	link, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, "env-link", link.Budget.Name)
	assert.Equal(t, coding.DVBS2QPSK34(), link.ModCod)
	assert.Equal(t, 550e3, link.Budget.PathLoss.DistanceM)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/etc/linkbudget/config.hcl", expandHome("/etc/linkbudget/config.hcl"))
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/linkbudget/config.hcl"), expandHome("~/.config/linkbudget/config.hcl"))
}
