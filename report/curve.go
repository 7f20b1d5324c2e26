package report

import (
	"math"

	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/coding"
	"gonum.org/v1/gonum/floats"
)

type CurvePoint struct {
	EbNoDB     float64 `yaml:"eb_no_db"`
	BERUncoded float64 `yaml:"ber_uncoded"`
	BERCoded   float64 `yaml:"ber_coded"`
}

// Curve samples the uncoded and coded BER of cm at n evenly spaced Eb/No
// points from fromDB to toDB inclusive. n must be at least 2.
func Curve(cm coding.CodedModulation, fromDB, toDB float64, n int) []CurvePoint {
	grid := floats.Span(make([]float64, n), fromDB, toDB)
	points := make([]CurvePoint, n)
	for i, ebno := range grid {
		points[i] = CurvePoint{
			EbNoDB:     ebno,
			BERUncoded: ber.FromDB(ebno, cm.Modulation),
			BERCoded:   cm.BERFromDB(ebno),
		}
	}
	return points
}

// Log10Series returns log10 of the uncoded and coded BER, floored at
// floorLog10 so that points that underflow to zero still plot.
func Log10Series(points []CurvePoint, floorLog10 float64) (uncoded, coded []float64) {
	uncoded = make([]float64, len(points))
	coded = make([]float64, len(points))
	for i, p := range points {
		uncoded[i] = math.Max(floorLog10, math.Log10(p.BERUncoded))
		coded[i] = math.Max(floorLog10, math.Log10(p.BERCoded))
	}
	return uncoded, coded
}

// Range is the span of BER values in a curve, ignoring zeros.
func Range(points []CurvePoint) (lo, hi float64) {
	var vals []float64
	for _, p := range points {
		for _, b := range []float64{p.BERUncoded, p.BERCoded} {
			if b > 0 {
				vals = append(vals, b)
			}
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}
	return floats.Min(vals), floats.Max(vals)
}

// ModCodRow is one line of the ModCod comparison table.
type ModCodRow struct {
	Name               string   `yaml:"name"`
	ModCod             string   `yaml:"modcod"`
	SpectralEfficiency float64  `yaml:"spectral_efficiency"`
	CodingGainDB       float64  `yaml:"coding_gain_db"`
	RequiredEbNoDB     *float64 `yaml:"required_eb_no_db,omitempty"`
	ThroughputBps      float64  `yaml:"throughput_bps"`
}

// ModCodTable compares the DVB-S2 presets at targetBER in a channel of
// bandwidthHz.
func ModCodTable(targetBER, bandwidthHz float64) ([]ModCodRow, error) {
	presets := coding.DVBS2Presets()
	rows := make([]ModCodRow, 0, len(presets))
	for _, p := range presets {
		req, err := absent(p.ModCod.RequiredEbNoDB(targetBER))
		if err != nil {
			return nil, err
		}
		rows = append(rows, ModCodRow{
			Name:               p.Name,
			ModCod:             p.ModCod.String(),
			SpectralEfficiency: p.ModCod.SpectralEfficiency(),
			CodingGainDB:       p.ModCod.CodingGainDB(),
			RequiredEbNoDB:     req,
			ThroughputBps:      p.ModCod.ThroughputBps(bandwidthHz),
		})
	}
	return rows, nil
}
