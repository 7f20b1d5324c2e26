package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Row is a labelled value as shown in the text report and the dashboard.
type Row struct {
	Section string
	Label   string
	Value   string
	Unit    string
}

func dB(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optDB(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return dB(*v)
}

// SI formats v with an SI prefix, "54 Mbps".
func SI(v float64, unit string) string {
	return humanize.SIWithDigits(v, 3, unit)
}

// Rows flattens the report in display order.
func (r Report) Rows() []Row {
	rows := []Row{
		{"Link", "Name", r.Name, ""},
		{"Link", "ModCod", r.ModCod, ""},
		{"Link", "Frequency", SI(r.FrequencyHz, "Hz"), ""},
		{"Link", "Bandwidth", SI(r.BandwidthHz, "Hz"), ""},
		{"Link", "Distance", SI(r.DistanceM, "m"), ""},
		{"Link", "Distance source", r.DistanceSource, ""},

		{"Path", "EIRP", dB(r.EIRPDBm), "dBm"},
		{"Path", "Free-space loss", dB(r.FreeSpaceLossDB), "dB"},
		{"Path", "Fade margin", optDB(r.FadeMarginDB), "dB"},
		{"Path", "Total path loss", dB(r.PathLossDB), "dB"},
		{"Path", "PFD", dB(r.PFDDBWPerM2), "dBW/m^2"},
		{"Path", "Received power", dB(r.PinDBm), "dBm"},

		{"Receiver", "Noise floor", dB(r.NoiseFloorDBm), "dBm"},
		{"Receiver", "Noise power", dB(r.NoisePowerDBm), "dBm"},
		{"Receiver", "G/T", dB(r.GOverTDB), "dB/K"},

		{"Signal", "SNR", dB(r.SNRDB), "dB"},
		{"Signal", "C/No", dB(r.COverNoDBHz), "dB-Hz"},
		{"Signal", "Eb/No (uncoded)", dB(r.EbNoDB), "dB"},
		{"Signal", "Eb/No (coded)", dB(r.EbNoCodedDB), "dB"},

		{"Performance", "Target BER", fmt.Sprintf("%.1e", r.TargetBER), ""},
		{"Performance", "BER (uncoded)", fmt.Sprintf("%.3e", r.BERUncoded), ""},
		{"Performance", "BER (coded)", fmt.Sprintf("%.3e", r.BERCoded), ""},
		{"Performance", "Required Eb/No (uncoded)", optDB(r.RequiredEbNoDB), "dB"},
		{"Performance", "Required Eb/No (coded)", optDB(r.RequiredEbNoCodedDB), "dB"},
		{"Performance", "Margin (uncoded)", optDB(r.MarginDB), "dB"},
		{"Performance", "Margin (coded)", optDB(r.MarginCodedDB), "dB"},
		{"Performance", "Spectral efficiency", dB(r.SpectralEfficiency), "bit/s/Hz"},
		{"Performance", "Throughput", SI(r.ThroughputBps, "bps"), ""},
		{"Performance", "Shannon limit", SI(r.ShannonBps, "bps"), ""},
	}

	if s := r.Sensitivity; s != nil {
		rows = append(rows,
			Row{"Sensitivity", "Info bit rate", SI(s.InfoBitRateBps, "bps"), ""},
			Row{"Sensitivity", "Matched filter", optDB(s.MatchedFilterDBm), "dBm"},
			Row{"Sensitivity", "Bandpass", optDB(s.BandpassDBm), "dBm"},
			Row{"Sensitivity", "Coded", optDB(s.CodedDBm), "dBm"},
			Row{"Sensitivity", "Margin", optDB(s.MarginDB), "dB"},
		)
	}

	rows = append(rows, Row{"EVM", "Link EVM", dB(r.EVM.LinkEVMPct), "%"})
	if r.EVM.Pass != nil {
		verdict := "FAIL"
		if *r.EVM.Pass {
			verdict = "PASS"
		}
		rows = append(rows,
			Row{"EVM", "Measured", dB(r.EVM.MeasuredPct), "%"},
			Row{"EVM", "Required", dB(r.EVM.RequiredPct), "%"},
			Row{"EVM", "Margin", optDB(r.EVM.MarginDB), "dB"},
			Row{"EVM", "Result", verdict, ""},
		)
	}

	if tr := r.Tracking; tr != nil {
		rows = append(rows,
			Row{"Tracking", "Time", tr.Time, ""},
			Row{"Tracking", "Azimuth", dB(tr.AzimuthDeg), "deg"},
			Row{"Tracking", "Elevation", dB(tr.ElevationDeg), "deg"},
			Row{"Tracking", "Range rate", dB(tr.RangeRateMS), "m/s"},
			Row{"Tracking", "Doppler", SI(tr.DopplerShiftHz, "Hz"), ""},
		)
	}
	return rows
}

// WriteText prints the report as an aligned table grouped by section.
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	section := ""
	for _, row := range r.Rows() {
		if row.Section != section {
			if section != "" {
				fmt.Fprintln(tw)
			}
			section = row.Section
			fmt.Fprintf(tw, "[%s]\n", section)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.Label, row.Value, row.Unit)
	}
	return errors.Wrap(tw.Flush(), "could not write report")
}

// WriteYAML encodes v, a Report or any of the tables in this package.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "could not encode YAML")
	}
	return errors.Wrap(enc.Close(), "could not encode YAML")
}
