package budget

import (
	"math"
	"testing"

	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/coding"
	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kaBandLEO() LinkBudget {
	return LinkBudget{
		Name:         "Ka-band LEO downlink",
		BandwidthHz:  36e6,
		Transmitter:  Transmitter{OutputPowerDBm: 10.0, GainDB: 35.0, BandwidthHz: 36e6},
		Receiver:     Receiver{GainDB: 40.0, TemperatureK: 290.0, NoiseFigureDB: 2.0, BandwidthHz: 36e6},
		PathLoss:     PathLoss{FrequencyHz: 20e9, DistanceM: 550e3},
		FadeMarginDB: FadeMargin(3.0),
	}
}

func TestTransmitterEIRP(t *testing.T) {
	assert.Equal(t, 45.0, kaBandLEO().Transmitter.EIRPDBm())
}

func TestReceiver(t *testing.T) {
	rx := Receiver{GainDB: 10.0, TemperatureK: 290.0, NoiseFigureDB: 3.0, BandwidthHz: 100e6}
	assert.InDelta(t, -93.97722915699808, rx.NoiseFloorDBm(), 1e-9)
	assert.InDelta(t, -90.97722915699808, rx.NoisePowerDBm(), 1e-9)
	assert.InDelta(t, 20.977229156998078, rx.SNRDB(-70.0), 1e-9)

	assert.InDelta(t, 15.38, kaBandLEO().Receiver.GOverTDB(), 0.01)
}

func TestFreeSpacePathLoss(t *testing.T) {
	cases := []struct {
		name     string
		freq     float64
		distance float64
		want     float64
	}{
		{"60 GHz indoor", 60e9, 50, 101.9902},
		{"Ku LEO", 14e9, 340e3, 165.9999},
		{"Ka MEO", 28e9, 8062e3, 199.5198},
		{"Ka GEO", 28e9, 35786e3, 212.4652},
	}
	for _, c := range cases {
		p := PathLoss{FrequencyHz: c.freq, DistanceM: c.distance}
		assert.InDelta(t, c.want, p.CalculateDB(), 1e-3, c.name)
	}
}

func TestPathLossIncludesFadeMargin(t *testing.T) {
	lb := kaBandLEO()
	free := lb.PathLoss.CalculateDB()
	assert.InDelta(t, free+3.0, lb.PathLossDB(), 1e-12)

	lb.FadeMarginDB = nil
	assert.Equal(t, free, lb.PathLossDB())
}

func TestPinAndSNR(t *testing.T) {
	lb := kaBandLEO()
	assert.InDelta(t, 45.0-lb.PathLossDB()+40.0, lb.PinAtReceiverDBm(), 1e-12)
	assert.InDelta(t, lb.PinAtReceiverDBm()-lb.Receiver.NoisePowerDBm(), lb.SNRDB(), 1e-12)
	assert.InDelta(t, math.Pow(10, lb.SNRDB()/10), lb.SNRLinear(), 1e-9)
	assert.InDelta(t, lb.SNRDB()+10*math.Log10(36e6), lb.COverNo(), 0.01)
}

func TestEbNo(t *testing.T) {
	lb := kaBandLEO()
	assert.InDelta(t, lb.SNRDB()-10*math.Log10(2), lb.EbNoDB(modulation.QPSK()), 0.01)
	assert.InDelta(t, lb.SNRDB(), lb.EbNoDB(modulation.BPSK()), 1e-12)
	assert.InDelta(t, lb.SNRDB()-10*math.Log10(1.5), lb.EbNoCodedDB(coding.DVBS2QPSK34()), 1e-12)
}

func TestKaBandLEOEndToEnd(t *testing.T) {
	lb := kaBandLEO()
	require.NoError(t, lb.Validate())

	assert.Greater(t, lb.PathLossDB(), 170.0)

	snr := lb.SNRDB()
	assert.Greater(t, snr, -50.0)
	assert.Less(t, snr, 100.0)

	b := lb.BER(modulation.QPSK())
	assert.GreaterOrEqual(t, b, 0.0)
	assert.LessOrEqual(t, b, 0.5)

	cm := coding.DVBS2QPSK34()
	assert.InDelta(t, 54e6, lb.ThroughputBps(cm), 1.0)

	uncoded, err := lb.LinkMarginDB(modulation.QPSK(), 1e-5)
	require.NoError(t, err)
	assert.Greater(t, uncoded, -50.0)
	assert.Less(t, uncoded, 100.0)

	coded, err := lb.LinkMarginCodedDB(cm, 1e-5)
	require.NoError(t, err)
	assert.Greater(t, coded, uncoded)

	assert.Less(t, lb.BERCoded(cm), b)
}

func TestLinkMarginPropagatesSearchErrors(t *testing.T) {
	lb := kaBandLEO()
	_, err := lb.LinkMarginDB(modulation.QPSK(), 0.0)
	assert.True(t, errors.Is(err, ber.ErrInvalidTarget))

	_, err = lb.LinkMarginCodedDB(coding.DVBS2QPSK34(), 0.4)
	assert.True(t, errors.Is(err, ber.ErrNotConverged))
}

func TestValidate(t *testing.T) {
	lb := kaBandLEO()
	lb.PathLoss.DistanceM = 0
	assert.True(t, errors.Is(lb.Validate(), ErrInvalidBudget))

	lb = kaBandLEO()
	lb.Receiver.TemperatureK = -4
	assert.True(t, errors.Is(lb.Validate(), ErrInvalidBudget))

	lb = kaBandLEO()
	lb.BandwidthHz = math.NaN()
	assert.True(t, errors.Is(lb.Validate(), ErrInvalidBudget))

	lb = kaBandLEO()
	lb.FadeMarginDB = nil
	assert.NoError(t, lb.Validate())
}

func TestPHYRate(t *testing.T) {
	p := PHYRate{BandwidthHz: 20e6, SNR: 15.0}
	assert.Equal(t, 80e6, p.Bps())
	assert.Equal(t, 80.0, p.Mbps())
	assert.InDelta(t, 0.08, p.Gbps(), 1e-12)

	lb := kaBandLEO()
	shannon := lb.PHYRate()
	assert.Equal(t, lb.BandwidthHz, shannon.BandwidthHz)
	assert.InDelta(t, 36e6*math.Log2(1+lb.SNRLinear()), shannon.Bps(), 1e-3)
}

func TestPFD(t *testing.T) {
	eirp, d := 50.0, 35786e3
	pfd := PFDDBWPerM2(eirp, d)
	assert.InDelta(t, eirp-10*math.Log10(4*math.Pi*d*d), pfd, 1e-10)
	assert.InDelta(t, pfd-10*math.Log10(36), PFDPerMHz(eirp, d, 36), 1e-10)

	lb := kaBandLEO()
	assert.InDelta(t, PFDDBWPerM2(15.0, 550e3), lb.PFDDBWPerM2(), 1e-10)
}
