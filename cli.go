package main

type ModCodFlags struct {
	Modulation   string  `help:"bpsk, qpsk, msk, 8psk, 16qam, psk, qam" default:"qpsk" short:"m"`
	Order        int     `help:"Order for bare psk/qam"`
	FEC          string  `help:"none, conv, turbo, ldpc, custom" default:"none" name:"fec"`
	CodeRate     float64 `help:"FEC code rate" default:"1.0"`
	CodingGainDB float64 `help:"Coding gain for --fec=custom" name:"coding-gain-db"`
}

var cli struct {
	Verbose bool   `help:"Prints debug output by default"`
	Profile bool   `help:"Output a pprof profile"`
	Config  string `help:"Path to an HCL scenario, overrides the search path" type:"path"`

	Budget struct {
		Format string `help:"Output format" enum:"text,yaml" default:"text"`
	} `cmd:"" help:"Evaluate the configured link budget"`

	Ber struct {
		ModCodFlags `embed:""`
		EbNoDB      float64 `help:"Eb/No in dB" required:"" name:"ebno-db"`
	} `cmd:"" help:"BER of a modulation, coded or not, at a given Eb/No"`

	Required struct {
		ModCodFlags `embed:""`
		TargetBER   float64 `help:"Target BER" default:"1e-5" name:"target-ber"`
	} `cmd:"" help:"Eb/No needed to reach a target BER"`

	Sensitivity struct {
		ModCodFlags   `embed:""`
		BitRate       float64  `help:"Information bit rate in bps" required:""`
		NoiseFigureDB float64  `help:"Receiver noise figure in dB" default:"3" name:"nf-db"`
		TargetBER     float64  `help:"Target BER" default:"1e-5" name:"target-ber"`
		ImplLossDB    float64  `help:"Implementation loss in dB" name:"impl-loss-db"`
		Rolloff       float64  `help:"Raised-cosine roll-off" default:"0.35"`
		BandwidthHz   float64  `help:"Bandwidth for --required-snr-db" name:"bandwidth"`
		RequiredSNRDB *float64 `help:"Bypass the BER model and use this SNR in --bandwidth" name:"required-snr-db"`
	} `cmd:"" help:"Minimum received power for a target BER"`

	Evm struct {
		SNRDB       *float64 `help:"Convert an SNR in dB to EVM" name:"snr-db" xor:"input"`
		EVMPct      *float64 `help:"Convert an EVM in percent to SNR" name:"evm-pct" xor:"input"`
		RequiredPct float64  `help:"Required EVM in percent, checked against the measured value" name:"required-pct"`
		ADCBits     float64  `help:"Also show the quantization limit of an ADC with this many bits" name:"adc-bits"`
	} `cmd:"" help:"EVM and SNR conversions"`

	Modcods struct {
		TargetBER   float64 `help:"Target BER" default:"1e-5" name:"target-ber"`
		BandwidthHz float64 `help:"Channel bandwidth in Hz" default:"36e6" name:"bandwidth"`
		Format      string  `help:"Output format" enum:"text,yaml" default:"text"`
	} `cmd:"" help:"List the DVB-S2 ModCods"`

	Curve struct {
		ModCodFlags `embed:""`
		FromDB      float64 `help:"First Eb/No point in dB" default:"-2" name:"from"`
		ToDB        float64 `help:"Last Eb/No point in dB" default:"14" name:"to"`
		Points      int     `help:"Number of points" default:"17"`
		Format      string  `help:"Output format" enum:"text,yaml" default:"text"`
	} `cmd:"" help:"Tabulate the BER waterfall"`

	Orbit struct {
		AltitudeM    float64 `help:"Circular orbit altitude in metres" required:"" name:"altitude"`
		ElevationDeg float64 `help:"Elevation angle seen from the ground" default:"90" name:"elevation"`
		FrequencyHz  float64 `help:"Carrier frequency, enables path loss and Doppler" name:"frequency"`
	} `cmd:"" help:"Slant range, orbital speed and Doppler of a circular Earth orbit"`

	View struct {
	} `cmd:"" help:"Starts the TUI dashboard for the configured link"`
}
