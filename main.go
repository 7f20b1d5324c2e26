package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/jrwynneiii/linkbudget/ber"
	"github.com/jrwynneiii/linkbudget/budget"
	"github.com/jrwynneiii/linkbudget/coding"
	"github.com/jrwynneiii/linkbudget/config"
	"github.com/jrwynneiii/linkbudget/evm"
	"github.com/jrwynneiii/linkbudget/geometry"
	"github.com/jrwynneiii/linkbudget/modulation"
	"github.com/jrwynneiii/linkbudget/report"
	"github.com/jrwynneiii/linkbudget/sensitivity"
	"github.com/jrwynneiii/linkbudget/tui"
	"github.com/pkg/errors"
)

func (f ModCodFlags) build() (coding.CodedModulation, error) {
	mod, err := modulation.Parse(f.Modulation, f.Order)
	if err != nil {
		return coding.CodedModulation{}, err
	}
	fec, err := coding.Parse(f.FEC, f.CodeRate, f.CodingGainDB)
	if err != nil {
		return coding.CodedModulation{}, err
	}
	return coding.New(mod, fec), nil
}

func loadLink() (config.Scenario, config.Link) {
	k, err := config.Load(cli.Config)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	scenario, err := config.Unmarshal(k)
	if err != nil {
		log.Fatalf("%v", err)
	}
	link, err := scenario.Build()
	if err != nil {
		log.Fatalf("Invalid scenario: %v", err)
	}
	log.Infof("Loaded link %s (%s)", link.Budget.Name, link.ModCod)
	return scenario, link
}

func writeOut(format string, v any, text func() error) error {
	if format == "yaml" {
		return report.WriteYAML(os.Stdout, v)
	}
	return text()
}

func main() {
	flags := kong.Parse(&cli,
		kong.Name("linkbudget"),
		kong.Description("RF link budget calculator"),
	)
	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cli.Profile {
		prof, err := os.Create("./cpu.pprof")
		if err != nil {
			log.Fatalf("Could not create profile: %v", err)
		}
		pprof.StartCPUProfile(prof)
		defer pprof.StopCPUProfile()
	}

	var err error
	switch flags.Command() {
	case "budget":
		_, link := loadLink()
		var r report.Report
		if r, err = report.Evaluate(link); err == nil {
			for _, w := range r.Warnings() {
				log.Warn(w)
			}
			err = writeOut(cli.Budget.Format, r, func() error { return r.WriteText(os.Stdout) })
		}

	case "ber":
		err = runBER()

	case "required":
		err = runRequired()

	case "sensitivity":
		err = runSensitivity()

	case "evm":
		err = runEVM()

	case "modcods":
		var rows []report.ModCodRow
		if rows, err = report.ModCodTable(cli.Modcods.TargetBER, cli.Modcods.BandwidthHz); err == nil {
			err = writeOut(cli.Modcods.Format, rows, func() error { return writeModCods(rows) })
		}

	case "curve":
		err = runCurve()

	case "orbit":
		runOrbit()

	case "view":
		scenario, link := loadLink()
		modcods, err := report.ModCodTable(link.Analysis.TargetBER, link.Budget.BandwidthHz)
		if err != nil {
			log.Fatalf("%v", err)
		}
		curve := report.Curve(link.ModCod, -2, 14, 65)
		tui.StartUI(func() (report.Report, error) {
			link, err := scenario.Build()
			if err != nil {
				return report.Report{}, err
			}
			return report.Evaluate(link)
		}, modcods, curve, link.Tui)

	default:
		log.Info("Command not recognized")
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func runBER() error {
	cm, err := cli.Ber.build()
	if err != nil {
		return err
	}
	fmt.Printf("%s at Eb/No %.2f dB\n", cm, cli.Ber.EbNoDB)
	fmt.Printf("  uncoded BER  %.4e\n", ber.FromDB(cli.Ber.EbNoDB, cm.Modulation))
	if cm.FEC.Family != coding.FamilyUncoded {
		fmt.Printf("  coded BER    %.4e\n", cm.BERFromDB(cli.Ber.EbNoDB))
	}
	return nil
}

func runRequired() error {
	cm, err := cli.Required.build()
	if err != nil {
		return err
	}
	sol, err := ber.Solve(cli.Required.TargetBER, cm.Modulation)
	if err != nil {
		return err
	}
	if !sol.Converged {
		return errors.Wrapf(ber.ErrNotConverged, "%s at BER %g: best effort %.4f dB after %d iterations",
			cm.Modulation, cli.Required.TargetBER, sol.EbNoDB, sol.Iterations)
	}
	log.Debugf("Converged in %d iterations", sol.Iterations)
	fmt.Printf("%s at BER %g\n", cm, cli.Required.TargetBER)
	fmt.Printf("  uncoded Eb/No  %.3f dB\n", sol.EbNoDB)
	if cm.FEC.Family != coding.FamilyUncoded {
		fmt.Printf("  coding gain    %.3f dB\n", cm.CodingGainDB())
		fmt.Printf("  coded Eb/No    %.3f dB\n", sol.EbNoDB-cm.CodingGainDB())
	}
	return nil
}

func runSensitivity() error {
	c := cli.Sensitivity
	if c.RequiredSNRDB != nil {
		if !(c.BandwidthHz > 0) {
			return errors.Wrap(sensitivity.ErrInvalidInput, "--required-snr-db needs --bandwidth")
		}
		fmt.Printf("Noise floor        %.2f dBm\n", sensitivity.NoiseFloorDBm(c.BandwidthHz, c.NoiseFigureDB))
		fmt.Printf("Sensitivity (SNR)  %.2f dBm\n", sensitivity.FromSNRDBm(c.BandwidthHz, c.NoiseFigureDB, *c.RequiredSNRDB, c.ImplLossDB))
		return nil
	}

	cm, err := c.build()
	if err != nil {
		return err
	}
	mf, err := sensitivity.MatchedFilterDBm(cm.Modulation, c.BitRate, cm.CodeRate(), c.NoiseFigureDB, c.TargetBER, c.ImplLossDB)
	if err != nil {
		return err
	}
	bp, err := sensitivity.BandpassDBm(cm.Modulation, c.BitRate, cm.CodeRate(), c.NoiseFigureDB, c.TargetBER, c.ImplLossDB, c.Rolloff)
	if err != nil {
		return err
	}
	fmt.Printf("%s, %s, BER %g\n", cm, report.SI(c.BitRate, "bps"), c.TargetBER)
	fmt.Printf("  matched filter   %.2f dBm\n", mf)
	fmt.Printf("  bandpass (a=%.2f) %.2f dBm\n", c.Rolloff, bp)
	if cm.FEC.Family != coding.FamilyUncoded {
		req, err := cm.RequiredEbNoDB(c.TargetBER)
		if err != nil {
			return err
		}
		fmt.Printf("  coded            %.2f dBm\n", sensitivity.FromEbNoDBm(c.BitRate, c.NoiseFigureDB, req, c.ImplLossDB))
	}
	return nil
}

func runEVM() error {
	c := cli.Evm
	var snr float64
	switch {
	case c.SNRDB != nil:
		snr = *c.SNRDB
		fmt.Printf("SNR %.2f dB -> EVM %.3f%%\n", snr, evm.PercentFromSNRDB(snr))
	case c.EVMPct != nil:
		snr = evm.SNRDBFromPercent(*c.EVMPct)
		fmt.Printf("EVM %.3f%% -> SNR %.2f dB\n", *c.EVMPct, snr)
	default:
		return errors.New("one of --snr-db or --evm-pct is required")
	}

	if c.RequiredPct > 0 {
		measured := evm.PercentFromSNRDB(snr)
		pass, margin := evm.Margin(measured, c.RequiredPct)
		verdict := "FAIL"
		if pass {
			verdict = "PASS"
		}
		fmt.Printf("Required %.3f%%: %s, margin %.2f dB\n", c.RequiredPct, verdict, margin)
	}
	if c.ADCBits > 0 {
		q := evm.QuantizationSNRDB(c.ADCBits)
		fmt.Printf("%.0f-bit ADC limit %.2f dB (EVM %.3f%%)\n", c.ADCBits, q, evm.PercentFromSNRDB(q))
		fmt.Printf("ENOB at %.2f dB: %.2f bits\n", snr, evm.ENOB(snr))
	}
	return nil
}

func writeModCods(rows []report.ModCodRow) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODCOD\tBIT/S/HZ\tGAIN\tEB/NO REQ\tTHROUGHPUT")
	for _, r := range rows {
		req := "n/a"
		if r.RequiredEbNoDB != nil {
			req = fmt.Sprintf("%.2f dB", *r.RequiredEbNoDB)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.1f dB\t%s\t%s\n", r.Name, r.ModCod, r.SpectralEfficiency, r.CodingGainDB, req, report.SI(r.ThroughputBps, "bps"))
	}
	return tw.Flush()
}

func runCurve() error {
	c := cli.Curve
	cm, err := c.build()
	if err != nil {
		return err
	}
	if c.Points < 2 {
		return errors.Errorf("--points must be at least 2, got %d", c.Points)
	}
	points := report.Curve(cm, c.FromDB, c.ToDB, c.Points)
	return writeOut(c.Format, points, func() error {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "EB/NO (dB)\tUNCODED\t%s\n", cm)
		for _, p := range points {
			fmt.Fprintf(tw, "%.2f\t%.3e\t%.3e\n", p.EbNoDB, p.BERUncoded, p.BERCoded)
		}
		return tw.Flush()
	})
}

func runOrbit() {
	c := cli.Orbit
	speed := geometry.EarthOrbitSpeed(c.AltitudeM)
	slant := geometry.EarthSlantRange(c.ElevationDeg, c.AltitudeM).Meters()
	fmt.Printf("Altitude          %s\n", report.SI(c.AltitudeM, "m"))
	fmt.Printf("Orbital speed     %.1f m/s\n", speed)
	fmt.Printf("Orbital period    %.2f min\n", geometry.EarthOrbitPeriod(c.AltitudeM)/60.0)
	fmt.Printf("Slant range       %s at %.1f deg\n", report.SI(slant, "m"), c.ElevationDeg)
	if c.FrequencyHz > 0 {
		loss := budget.PathLoss{FrequencyHz: c.FrequencyHz, DistanceM: slant}.CalculateDB()
		radial := geometry.MaxRadialVelocity(speed, c.ElevationDeg)
		fmt.Printf("Free-space loss   %.2f dB\n", loss)
		fmt.Printf("Max Doppler       %s\n", report.SI(geometry.DopplerShiftHz(c.FrequencyHz, radial), "Hz"))
	}
}
